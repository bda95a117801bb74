package parser

import (
	"regexp"

	"github.com/contextweave/contextweave/constants"
	"github.com/contextweave/contextweave/model"
)

// mdLinkRe matches [label](path). The optional leading bang captures
// image links so they can be skipped.
var mdLinkRe = regexp.MustCompile(`(!?)\[([^\]]*)\]\(([^)\s]+)\)`)

// MarkdownParser handles .md/.markdown files. Markdown is a raw format:
// content is preserved verbatim under raw_content, no structural parsing.
type MarkdownParser struct{}

func (p *MarkdownParser) Format() string { return constants.FormatMarkdown }

func (p *MarkdownParser) Detect(content []byte, path string) bool {
	return hasExt(path, ".md", ".markdown")
}

func (p *MarkdownParser) Parse(content []byte, path string) (model.Structure, error) {
	return model.Structure{constants.RawContentKey: string(content)}, nil
}

func (p *MarkdownParser) ToJSON(parsed model.Structure) (model.Structure, error) {
	return parsed, nil
}

func (p *MarkdownParser) ExtractReferences(parsed model.Structure) ([]model.NodeReference, error) {
	raw, _ := parsed[constants.RawContentKey].(string)
	return extractMarkdownRefs(raw), nil
}

func extractMarkdownRefs(raw string) []model.NodeReference {
	var refs []model.NodeReference
	for _, m := range mdLinkRe.FindAllStringSubmatch(raw, -1) {
		if m[1] == "!" {
			continue // image, not a reference
		}
		label, path := m[2], m[3]
		refType := model.RefTypeFile
		if model.IsURLPath(path) {
			refType = model.RefTypeURL
		}
		refs = append(refs, model.NodeReference{Path: path, Type: refType, Label: label})
	}
	return refs
}
