package binding

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"control-resolver/internal/datacontext"
	"control-resolver/internal/diagnostic"
	"control-resolver/internal/tree"
)

func TestEvaluate(t *testing.T) {
	f := newFixture()

	var (
		gotContexts []any
		gotControl  tree.Node
	)

	b := &Binding{
		Kind:        Value,
		Expression:  "Name",
		DataContext: f.itemStack,
		Eval: func(contexts []any, control tree.Node) (any, error) {
			gotContexts, gotControl = contexts, control
			return contexts[0].(itemVM).Name, nil
		},
	}

	v, err := Evaluate(b, f.label)
	require.NoError(t, err)
	assert.Equal(t, "second", v)
	assert.Same(t, f.item, gotControl)
	assert.Equal(t, []any{f.page.Items[1], f.page}, gotContexts)
}

func TestEvaluate_DelegateErrorPassesThrough(t *testing.T) {
	f := newFixture()

	boom := errors.New("boom")
	b := &Binding{
		DataContext: f.itemStack,
		Eval:        func([]any, tree.Node) (any, error) { return nil, boom },
	}

	_, err := Evaluate(b, f.label)
	assert.True(t, err == boom, "delegate error must not be wrapped, got %v", err)
}

func TestEvaluate_Errors(t *testing.T) {
	f := newFixture()

	_, err := Evaluate(&Binding{DataContext: f.itemStack}, f.label)
	assert.ErrorIs(t, err, ErrNotEvaluable)

	called := false
	b := &Binding{
		DataContext: datacontext.For[detailVM](nil),
		Eval: func([]any, tree.Node) (any, error) {
			called = true
			return nil, nil
		},
	}

	_, err = Evaluate(b, f.label)
	assert.ErrorIs(t, err, diagnostic.ErrDataContextSpaceNotFound)
	assert.False(t, called)
}

func TestUpdateSource(t *testing.T) {
	f := newFixture()

	b := &Binding{
		Kind:        Value,
		Expression:  "Title",
		DataContext: f.rootStack,
		Update: func(contexts []any, control tree.Node, value any) error {
			assert.Same(t, f.root, control)
			contexts[0].(*pageVM).Title = value.(string)
			return nil
		},
	}

	require.NoError(t, UpdateSource(b, f.label, "Invoices"))
	assert.Equal(t, "Invoices", f.page.Title)

	boom := errors.New("boom")
	b.Update = func([]any, tree.Node, any) error { return boom }
	assert.True(t, UpdateSource(b, f.label, "x") == boom)

	b.Update = nil
	assert.ErrorIs(t, UpdateSource(b, f.label, "x"), ErrReadOnly)
}

func TestEvaluateCommand(t *testing.T) {
	f := newFixture()
	boom := errors.New("boom")

	var calls int

	tests := []struct {
		name    string
		command any
		args    []any
		want    any
		wantErr error
	}{
		{name: "nil", command: nil, wantErr: ErrNotCommand},
		{name: "nil action", command: (func())(nil), wantErr: ErrNotCommand},
		{name: "nil reflective", command: (func(int) string)(nil), args: []any{1}, wantErr: ErrNotCommand},
		{name: "action", command: func() { calls++ }},
		{name: "action with error", command: func() error { return boom }, wantErr: boom},
		{name: "func", command: func() any { return 42 }, want: 42},
		{name: "variadic", command: func(a ...any) any { return len(a) }, args: []any{1, 2}, want: 2},
		{
			name:    "variadic with error",
			command: func(a ...any) (any, error) { return a[0], boom },
			args:    []any{"x"},
			want:    "x",
			wantErr: boom,
		},
		{
			name:    "reflective",
			command: func(n int, s string) string { return s + "!" },
			args:    []any{int64(3), "go"},
			want:    "go!",
		},
		{
			name:    "reflective nil arg",
			command: func(err error) bool { return err == nil },
			args:    []any{nil},
			want:    true,
		},
		{
			name:    "reflective error",
			command: func() (int, error) { return 0, boom },
			want:    0,
			wantErr: boom,
		},
		{name: "arity mismatch", command: func(int) {}, wantErr: ErrNotCommand},
		{name: "bad argument", command: func(int) {}, args: []any{"x"}, wantErr: ErrNotCommand},
		{name: "not callable", command: "submit", wantErr: ErrNotCommand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Binding{
				Kind:        Command,
				DataContext: f.itemStack,
				Eval:        func([]any, tree.Node) (any, error) { return tt.command, nil },
			}

			got, err := EvaluateCommand(b, f.label, tt.args...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, 1, calls)
}
