package parser

import (
	"regexp"

	"github.com/contextweave/contextweave/constants"
	"github.com/contextweave/contextweave/model"
)

// Template reference syntaxes: comment form and call form.
var (
	jinjaRefCommentRe = regexp.MustCompile(`\{#\s*ref:\s*(.+?)\s*#\}`)
	jinjaIncludeRe    = regexp.MustCompile(`include\(\s*['"]([^'"]+)['"]\s*\)`)
)

// JinjaParser handles .jinja/.jinja2 template files. Like markdown this
// is a raw format: the template text is preserved verbatim so reference
// scanning and later substitution see the original source.
type JinjaParser struct{}

func (p *JinjaParser) Format() string { return constants.FormatJinja }

func (p *JinjaParser) Detect(content []byte, path string) bool {
	return hasExt(path, ".jinja", ".jinja2")
}

func (p *JinjaParser) Parse(content []byte, path string) (model.Structure, error) {
	return model.Structure{constants.RawContentKey: string(content)}, nil
}

func (p *JinjaParser) ToJSON(parsed model.Structure) (model.Structure, error) {
	return parsed, nil
}

func (p *JinjaParser) ExtractReferences(parsed model.Structure) ([]model.NodeReference, error) {
	raw, _ := parsed[constants.RawContentKey].(string)
	return extractJinjaRefs(raw), nil
}

func extractJinjaRefs(raw string) []model.NodeReference {
	var refs []model.NodeReference
	add := func(path string) {
		refType := model.RefTypeFile
		if model.IsURLPath(path) {
			refType = model.RefTypeURL
		}
		refs = append(refs, model.NodeReference{Path: path, Type: refType})
	}
	for _, m := range jinjaRefCommentRe.FindAllStringSubmatch(raw, -1) {
		add(m[1])
	}
	for _, m := range jinjaIncludeRe.FindAllStringSubmatch(raw, -1) {
		add(m[1])
	}
	return refs
}
