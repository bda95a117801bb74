package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/contextweave/contextweave/constants"
	"github.com/contextweave/contextweave/errors"
	"github.com/contextweave/contextweave/model"
)

func TestRegistry_Dispatch(t *testing.T) {
	reg := NewRegistry()
	cases := []struct {
		path   string
		format string
	}{
		{"/docs/readme.md", constants.FormatMarkdown},
		{"/docs/readme.markdown", constants.FormatMarkdown},
		{"/conf/base.yaml", constants.FormatYAML},
		{"/conf/base.yml", constants.FormatYAML},
		{"/conf/base.json", constants.FormatJSON},
		{"/tpl/prompt.jinja", constants.FormatJinja},
		{"/tpl/prompt.jinja2", constants.FormatJinja},
		{"/conf/base.jsonnet", constants.FormatJsonnet},
	}
	for _, c := range cases {
		p, err := reg.ForFile(nil, c.path)
		require.NoError(t, err, c.path)
		require.Equal(t, c.format, p.Format(), c.path)
	}
}

func TestRegistry_NoMatch(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.ForFile([]byte("hello"), "/docs/readme.txt")
	var detErr *errors.FormatDetectionError
	require.ErrorAs(t, err, &detErr)
	require.Equal(t, "/docs/readme.txt", detErr.Path)
}

func TestRegistry_EmptyThenRegister(t *testing.T) {
	reg := NewEmptyRegistry()
	_, err := reg.ForFile(nil, "/docs/readme.md")
	var detErr *errors.FormatDetectionError
	require.ErrorAs(t, err, &detErr)

	reg.Register(&MarkdownParser{})
	p, err := reg.ForFile(nil, "/docs/readme.md")
	require.NoError(t, err)
	require.Equal(t, constants.FormatMarkdown, p.Format())
}

func TestSemanticTypeFromStructure(t *testing.T) {
	content := []byte("semantic_type: guide\ntitle: T\n")
	node, err := NewRegistry().ParseFile(content, "/docs/meta.yaml")
	require.NoError(t, err)
	require.Equal(t, "guide", node.SemanticType)

	raw, err := NewRegistry().ParseFile([]byte("# Plain"), "/docs/plain.md")
	require.NoError(t, err)
	require.Empty(t, raw.SemanticType)
}

func TestMarkdown_References(t *testing.T) {
	content := []byte("See [intro](intro.md) and [site](https://example.com) " +
		"and ![logo](logo.png) and [mail](mailto:a@b.c).")
	node, err := NewRegistry().ParseFile(content, "/docs/readme.md")
	require.NoError(t, err)
	require.Equal(t, string(content), node.RawContent())
	require.Len(t, node.References, 3) // image excluded entirely
	require.Equal(t, model.NodeReference{Path: "intro.md", Type: model.RefTypeFile, Label: "intro"}, node.References[0])
	require.Equal(t, model.RefTypeURL, node.References[1].Type)
	require.Equal(t, model.RefTypeURL, node.References[2].Type)
	require.Len(t, node.FileReferences(), 1)
}

func TestYAML_StructuralReferences(t *testing.T) {
	content := []byte(`
title: root
sections:
  - type: reference
    path: child.md
    label: the child
  - nested:
      "$ref": other.yaml
  - type: reference
    path: https://example.com/doc
    ref_type: url
`)
	node, err := NewRegistry().ParseFile(content, "/conf/root.yaml")
	require.NoError(t, err)
	require.Len(t, node.References, 3)
	require.Len(t, node.FileReferences(), 2)
	require.Equal(t, "child.md", node.References[0].Path)
	require.Equal(t, "the child", node.References[0].Label)
}

func TestJSON_RefShorthand(t *testing.T) {
	content := []byte(`{"intro": {"$ref": "intro.md"}, "deep": [{"x": {"$ref": "a.json"}}]}`)
	node, err := NewRegistry().ParseFile(content, "/conf/root.json")
	require.NoError(t, err)
	require.Len(t, node.References, 2)
}

func TestJSON_Malformed(t *testing.T) {
	_, err := NewRegistry().ParseFile([]byte(`{"unbalanced":`), "/conf/bad.json")
	var parseErr *errors.FormatParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, constants.FormatJSON, parseErr.Format)
}

func TestYAML_Malformed(t *testing.T) {
	_, err := NewRegistry().ParseFile([]byte("a: [unbalanced"), "/conf/bad.yaml")
	var parseErr *errors.FormatParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestYAML_NonMapTopLevel(t *testing.T) {
	node, err := NewRegistry().ParseFile([]byte("- a\n- b\n"), "/conf/list.yaml")
	require.NoError(t, err)
	require.Contains(t, node.Content, constants.ContentKey)
}

func TestJinja_References(t *testing.T) {
	content := []byte(`{# ref: header.md #}
Body {{ body_text }}
{{ include('footer.jinja') }}
{# ref: https://example.com #}`)
	node, err := NewRegistry().ParseFile(content, "/tpl/page.jinja")
	require.NoError(t, err)
	require.Len(t, node.References, 3)
	require.Len(t, node.FileReferences(), 2)
	require.Equal(t, "header.md", node.References[0].Path)
	require.Equal(t, "footer.jinja", node.References[1].Path)
}

func TestJsonnet_Evaluates(t *testing.T) {
	content := []byte(`{ greeting: "hi " + "there", child: { "$ref": "child.json" } }`)
	node, err := NewRegistry().ParseFile(content, "/conf/root.jsonnet")
	require.NoError(t, err)
	require.Equal(t, "hi there", node.Content["greeting"])
	require.Len(t, node.References, 1)
}

func TestJsonnet_Malformed(t *testing.T) {
	_, err := NewRegistry().ParseFile([]byte(`{ nope`), "/conf/bad.jsonnet")
	var parseErr *errors.FormatParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestParseFile_SizeRecorded(t *testing.T) {
	content := []byte("plain markdown")
	node, err := NewRegistry().ParseFile(content, "/docs/a.md")
	require.NoError(t, err)
	require.Equal(t, len(content), node.Size)
	require.Equal(t, "a", node.Name())
}
