package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)

	return code, stdout.String(), stderr.String()
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestRun_Usage(t *testing.T) {
	code, _, stderr := runCLI(t)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "Usage:")

	code, stdout, _ := runCLI(t, "help")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "resolve")

	code, _, stderr = runCLI(t, "frobnicate")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, `unknown command "frobnicate"`)
}

func TestCheck_DefaultRules(t *testing.T) {
	code, stdout, _ := runCLI(t, "check")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "ok: 3 rules")
}

func TestCheck_InvalidRules(t *testing.T) {
	cfg := writeFile(t, "rules.yaml", `
version: "1"
controls:
  - tagPrefix: cc
    tagName: Broken
  - tagPrefix: cc
    namespace: Nowhere
    assembly: Sample
`)

	code, stdout, _ := runCLI(t, "check", "-config", cfg)
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "missing_src")
	assert.Contains(t, stdout, "unknown_control_namespace")
}

func TestResolve(t *testing.T) {
	code, stdout, _ := runCLI(t, "resolve", "cc:Button", "cc:Card", "div")
	require.Equal(t, 0, code, stdout)

	assert.Contains(t, stdout, "cc:Button -> Sample.Controls.Button")
	assert.Contains(t, stdout, "cc:Card -> Sample.Controls.Panel")
	assert.Contains(t, stdout, "div -> ")
	assert.Contains(t, stdout, "activation: [div]")
}

func TestResolve_Dump(t *testing.T) {
	code, stdout, _ := runCLI(t, "resolve", "-dump", "cc:TextBox")
	require.Equal(t, 0, code, stdout)
	assert.Contains(t, stdout, "HasHTMLAttributes: (bool) true")
}

func TestResolve_Unknown(t *testing.T) {
	code, stdout, _ := runCLI(t, "resolve", "cc:Buton")
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "cc:Buton")
	assert.Contains(t, stdout, "did you mean")
}

func TestResolve_NoTags(t *testing.T) {
	code, _, stderr := runCLI(t, "resolve")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "no tags given")
}

func TestScan(t *testing.T) {
	page := writeFile(t, "page.html", `@baseType Sample.Controls.Panel, Sample

<div>
  <cc:Button Text="{valuee: Title}" />
  <cc:Nope />
  <cc:Literal Text="{value: Title}" />
</div>
`)

	code, stdout, _ := runCLI(t, "scan", page)
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "page.html:4:")
	assert.Contains(t, stdout, "valuee")
	assert.Contains(t, stdout, "page.html:5:")
	assert.Contains(t, stdout, "cc:Nope")
	assert.Contains(t, stdout, "3 tags, 2 problems")
}

func TestScan_Clean(t *testing.T) {
	page := writeFile(t, "page.html", `<cc:Literal Text="{resource: Greeting}" /><cc:Summary />`)

	code, stdout, _ := runCLI(t, "scan", page)
	assert.Equal(t, 0, code, stdout)
	assert.Contains(t, stdout, "2 tags, 0 problems")
}

func TestEval(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"member of _this", []string{"-expr", "Number", "-index", "1"}, "A-2\n"},
		{"root", []string{"-expr", "_root.Title + ': ' + Number", "-index", "2"}, "Orders: B-7\n"},
		{"parent collection", []string{"-expr", "len(_parent)"}, "3\n"},
		{"index parameter", []string{"-expr", "_index", "-index", "2"}, "2\n"},
		{"page level", []string{"-level", "page", "-expr", "Title"}, "Orders\n"},
		{"orders level", []string{"-level", "orders", "-expr", "len(_this)"}, "3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, append([]string{"eval"}, tt.args...)...)
			require.Equal(t, 0, code, stdout+stderr)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestEval_Set(t *testing.T) {
	code, stdout, _ := runCLI(t, "eval", "-expr", "Number", "-index", "1", "-set", "Z-9")
	require.Equal(t, 0, code, stdout)
	assert.Equal(t, "Z-9\n", stdout)
}

func TestEval_Target(t *testing.T) {
	code, stdout, _ := runCLI(t, "eval", "-v", "-level", "page", "-expr", "Title")
	require.Equal(t, 0, code, stdout)
	assert.Contains(t, stdout, "2 context changes up")
}

func TestEval_Errors(t *testing.T) {
	code, _, stderr := runCLI(t, "eval")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "-expr is required")

	code, _, stderr = runCLI(t, "eval", "-expr", "Number", "-level", "galaxy")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "unknown level")

	code, _, stderr = runCLI(t, "eval", "-expr", "Number", "-index", "9")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "out of range")

	code, stdout, _ := runCLI(t, "eval", "-expr", "_parent3")
	assert.Equal(t, 1, code)
	assert.NotEmpty(t, stdout)
}
