package control

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"control-resolver/internal/mapping"
	"control-resolver/internal/property"
)

type baseControl struct{}

type button struct {
	baseControl
	Text string
}

type textBox struct {
	attrs map[string]any
}

func (t *textBox) HTMLAttributes() map[string]any { return t.attrs }

type grid struct{}

var (
	visibleProp = property.New[baseControl]("Visible", property.WithDefault(true))
	textProp    = property.New[button]("Text")
	clickProp   = property.New[button]("Click")
	valueProp   = property.New[textBox]("Value")
	rowsProp    = property.New[grid]("Rows")
)

// inits counts property initializer runs per control name.
type inits struct {
	mu     sync.Mutex
	counts map[string]int
}

func (c *inits) fn(name string, props ...*property.Property) InitFunc {
	return func(r *property.Registry) error {
		c.mu.Lock()
		c.counts[name]++
		c.mu.Unlock()

		return r.Register(props...)
	}
}

func (c *inits) count(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.counts[name]
}

func newTestRegistry(t *testing.T) (*Registry, *inits) {
	t.Helper()

	c := &inits{counts: map[string]int{}}
	r := NewRegistry(nil)

	require.NoError(t, r.Register(
		Registration{
			Assembly:  "App",
			Namespace: "App.Controls",
			Name:      "BaseControl",
			Type:      reflect.TypeFor[baseControl](),
			Init:      c.fn("BaseControl", visibleProp),
		},
		Registration{
			Assembly:  "App",
			Namespace: "App.Controls",
			Name:      "Button",
			Type:      reflect.TypeFor[button](),
			Base:      reflect.TypeFor[baseControl](),
			New:       func() any { return &button{} },
			Init:      c.fn("Button", textProp, clickProp),
		},
		Registration{
			Assembly:  "App",
			Namespace: "App.Controls",
			Name:      "TextBox",
			Type:      reflect.TypeFor[textBox](),
			Init:      c.fn("TextBox", valueProp),
		},
		Registration{
			Assembly:  "Other",
			Namespace: "Other.Controls",
			Name:      "Grid",
			Type:      reflect.TypeFor[grid](),
			Init:      c.fn("Grid", rowsProp),
		},
	))

	return r, c
}

const testRules = `
version: "1"
controls:
  - tagPrefix: cc
    tagName: Card
    src: markup/Card.html
  - tagPrefix: cc
    tagName: Plain
    src: /markup/Plain.html
  - tagPrefix: cc
    tagName: Missing
    src: markup/Missing.html
  - tagPrefix: cc
    namespace: App.Controls
    assembly: App
  - tagPrefix: bad
    tagName: Broken
`

func testFile(t *testing.T) *mapping.File {
	t.Helper()

	f, err := mapping.Parse([]byte(testRules))
	require.NoError(t, err)

	return f
}

func testMarkup() MarkupLoader {
	return FSLoader{FS: fstest.MapFS{
		"markup/Card.html": {Data: []byte("@baseType App.Controls.TextBox, App\n<div><cc:Button /></div>\n")},
		"markup/Plain.html": {Data: []byte("<p>plain</p>")},
	}}
}

// countingLookup counts compiled control lookups.
type countingLookup struct {
	inner TypeLookup
	calls atomic.Int32
}

func (c *countingLookup) LookupKey(key string) (Registration, bool) {
	c.calls.Add(1)
	return c.inner.LookupKey(key)
}

var errInit = errors.New("init failed")
