package render

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/contextweave/contextweave/constants"
	"github.com/contextweave/contextweave/graph"
	"github.com/contextweave/contextweave/model"
	"github.com/contextweave/contextweave/resolver"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func buildNetwork(t *testing.T, root string) *graph.NodeNetwork {
	t.Helper()
	builder := graph.NewBuilder(resolver.NewFileResolver(nil), model.NetworkConfig{})
	result, err := builder.Build(context.Background(), root)
	require.NoError(t, err)
	return result.Network
}

func renderString(t *testing.T, n *graph.NodeNetwork, opts Options) string {
	t.Helper()
	out, err := NewRenderer(n).Render(context.Background(), opts)
	require.NoError(t, err)
	return out
}

func TestRender_SimpleSubstitution(t *testing.T) {
	dir := t.TempDir()
	root := writeFile(t, dir, "root.md", "Hello {{user_name}}!")
	n := buildNetwork(t, root)

	out := renderString(t, n, Options{
		TargetFormat: constants.FormatMarkdown,
		Mode:         constants.RenderModeFull,
		Variables:    map[string]string{"user_name": "Alice"},
	})
	require.Equal(t, "Hello Alice!", out)
}

func TestRender_NoCrossCallStateLeakage(t *testing.T) {
	dir := t.TempDir()
	root := writeFile(t, dir, "root.md", "Hello {{user_name}}!")
	n := buildNetwork(t, root)
	r := NewRenderer(n)

	first, err := r.Render(context.Background(), Options{
		TargetFormat: constants.FormatMarkdown,
		Mode:         constants.RenderModeFull,
		Variables:    map[string]string{"user_name": "Alice"},
	})
	require.NoError(t, err)
	require.Equal(t, "Hello Alice!", first)

	second, err := r.Render(context.Background(), Options{
		TargetFormat: constants.FormatMarkdown,
		Mode:         constants.RenderModeFull,
		Variables:    map[string]string{"user_name": "Bob"},
	})
	require.NoError(t, err)
	require.Equal(t, "Hello Bob!", second)
}

func TestRender_ConcurrentRendersIndependent(t *testing.T) {
	dir := t.TempDir()
	root := writeFile(t, dir, "root.md", "Hello {{user_name}}!")
	n := buildNetwork(t, root)

	names := []string{"Alice", "Bob", "Carol", "Dave"}
	out := make([]string, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			// Each goroutine gets its own renderer and variable map.
			s, err := NewRenderer(n).Render(context.Background(), Options{
				TargetFormat: constants.FormatMarkdown,
				Mode:         constants.RenderModeFull,
				Variables:    map[string]string{"user_name": name},
			})
			if err == nil {
				out[i] = s
			}
		}(i, name)
	}
	wg.Wait()
	for i, name := range names {
		require.Equal(t, "Hello "+name+"!", out[i])
	}
}

func TestRender_SingleNodeModesAgree(t *testing.T) {
	dir := t.TempDir()
	root := writeFile(t, dir, "root.md", "No references here, just {{x}}.")
	n := buildNetwork(t, root)

	vars := map[string]string{"x": "text"}
	full := renderString(t, n, Options{TargetFormat: constants.FormatMarkdown, Mode: constants.RenderModeFull, Variables: vars})
	fileFirst := renderString(t, n, Options{TargetFormat: constants.FormatMarkdown, Mode: constants.RenderModeFileFirst, Variables: vars})
	require.Equal(t, full, fileFirst)
}

func TestRender_URLNeverInlined(t *testing.T) {
	dir := t.TempDir()
	root := writeFile(t, dir, "root.md", "Visit [text](http://example.com) now.")
	n := buildNetwork(t, root)

	for _, mode := range []string{constants.RenderModeFull, constants.RenderModeFileFirst} {
		out := renderString(t, n, Options{TargetFormat: constants.FormatMarkdown, Mode: mode})
		require.Equal(t, "Visit [text](http://example.com) now.", out, mode)
	}
}

func TestRender_UnknownVariableVerbatim(t *testing.T) {
	dir := t.TempDir()
	root := writeFile(t, dir, "root.md", "Hello {{unknown_var}}!")
	n := buildNetwork(t, root)

	out := renderString(t, n, Options{TargetFormat: constants.FormatMarkdown, Mode: constants.RenderModeFull})
	require.Equal(t, "Hello {{unknown_var}}!", out)
}

func TestRender_FullInlinesChain(t *testing.T) {
	dir := t.TempDir()
	root := writeFile(t, dir, "root.md", "Intro\n[child](child.md)\nOutro")
	writeFile(t, dir, "child.md", "Child says {{greeting}}")
	n := buildNetwork(t, root)

	out := renderString(t, n, Options{
		TargetFormat: constants.FormatMarkdown,
		Mode:         constants.RenderModeFull,
		Variables:    map[string]string{"greeting": "hi"},
	})
	require.Equal(t, "Intro\nChild says hi\nOutro", out)
}

func TestRender_FileFirstKeepsMarkers(t *testing.T) {
	dir := t.TempDir()
	root := writeFile(t, dir, "root.md", "Intro [child](child.md)")
	writeFile(t, dir, "child.md", "Child content")
	n := buildNetwork(t, root)

	out := renderString(t, n, Options{TargetFormat: constants.FormatMarkdown, Mode: constants.RenderModeFileFirst})
	require.Equal(t, "Intro [child](child.md)", out)
}

func TestRender_SharedNodeRenderedPerPath(t *testing.T) {
	dir := t.TempDir()
	root := writeFile(t, dir, "root.md", "[left](left.md)\n[right](right.md)")
	writeFile(t, dir, "left.md", "[s](shared.md)")
	writeFile(t, dir, "right.md", "[s](shared.md)")
	writeFile(t, dir, "shared.md", "v={{shared_var}}")
	n := buildNetwork(t, root)

	out := renderString(t, n, Options{
		TargetFormat: constants.FormatMarkdown,
		Mode:         constants.RenderModeFull,
		Variables: map[string]string{
			"shared_var":                  "plain",
			"root.left.shared.shared_var": "via-left",
			// right path falls back to the simple entry
		},
	})
	require.Equal(t, "v=via-left\nv=plain", out)
}

func TestRender_ScopePrecedenceEndToEnd(t *testing.T) {
	dir := t.TempDir()
	root := writeFile(t, dir, "root.md", "[child](child.md)")
	writeFile(t, dir, "child.md", "{{shared_var}}")
	n := buildNetwork(t, root)

	out := renderString(t, n, Options{
		TargetFormat: constants.FormatMarkdown,
		Mode:         constants.RenderModeFull,
		Variables: map[string]string{
			"shared_var":            "A",
			"child.shared_var":      "B",
			"root.child.shared_var": "C",
		},
	})
	require.Equal(t, "C", out)
}

func TestRender_JinjaReferences(t *testing.T) {
	dir := t.TempDir()
	root := writeFile(t, dir, "page.jinja", "{# ref: header.md #}\nbody")
	writeFile(t, dir, "header.md", "HEADER")
	n := buildNetwork(t, root)

	out := renderString(t, n, Options{TargetFormat: constants.FormatMarkdown, Mode: constants.RenderModeFull})
	require.Equal(t, "HEADER\nbody", out)
}

func TestRender_StructuralInlining(t *testing.T) {
	dir := t.TempDir()
	root := writeFile(t, dir, "root.yaml", "title: \"{{title}}\"\nbody:\n  type: reference\n  path: child.md\n")
	writeFile(t, dir, "child.md", "child text")
	n := buildNetwork(t, root)

	out := renderString(t, n, Options{
		TargetFormat: constants.FormatJSON,
		Mode:         constants.RenderModeFull,
		Variables:    map[string]string{"title": "T"},
	})
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Equal(t, "T", doc["title"])
	require.Equal(t, "child text", doc["body"])
}

func TestRender_StructuralFileFirstKeepsRefObjects(t *testing.T) {
	dir := t.TempDir()
	root := writeFile(t, dir, "root.yaml", "body:\n  type: reference\n  path: child.md\n")
	writeFile(t, dir, "child.md", "child text")
	n := buildNetwork(t, root)

	out := renderString(t, n, Options{TargetFormat: constants.FormatYAML, Mode: constants.RenderModeFileFirst})
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	body, ok := doc["body"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "reference", body["type"])
	require.Equal(t, "child.md", body["path"])
}

func TestRender_YAMLTargetWrapsRawRoot(t *testing.T) {
	dir := t.TempDir()
	root := writeFile(t, dir, "root.md", "raw text")
	n := buildNetwork(t, root)

	out := renderString(t, n, Options{TargetFormat: constants.FormatYAML, Mode: constants.RenderModeFull})
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	require.Equal(t, "raw text", doc[constants.RawContentKey])
}

func TestRender_MarkdownTargetSerializesStructuralRoot(t *testing.T) {
	dir := t.TempDir()
	root := writeFile(t, dir, "root.yaml", "a: 1\n")
	n := buildNetwork(t, root)

	out := renderString(t, n, Options{TargetFormat: constants.FormatMarkdown, Mode: constants.RenderModeFull})
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.EqualValues(t, 1, doc["a"])
}

func TestRender_UnsupportedModeAndFormat(t *testing.T) {
	dir := t.TempDir()
	root := writeFile(t, dir, "root.md", "x")
	n := buildNetwork(t, root)
	r := NewRenderer(n)

	_, err := r.Render(context.Background(), Options{TargetFormat: constants.FormatMarkdown, Mode: "sideways"})
	require.Error(t, err)
	_, err = r.Render(context.Background(), Options{TargetFormat: "xml", Mode: constants.RenderModeFull})
	require.Error(t, err)
}

func TestRender_NestedInlining(t *testing.T) {
	dir := t.TempDir()
	root := writeFile(t, dir, "root.md", "[a](a.md)")
	writeFile(t, dir, "a.md", "A ([b](b.md))")
	writeFile(t, dir, "b.md", "B")
	n := buildNetwork(t, root)

	out := renderString(t, n, Options{TargetFormat: constants.FormatMarkdown, Mode: constants.RenderModeFull})
	require.Equal(t, "A (B)", out)
}
