// Package parser turns source files into canonical structures and
// extracts their cross-file references. One parser per format; a
// registry dispatches by extension, first match wins.
package parser

import (
	"github.com/contextweave/contextweave/constants"
	"github.com/contextweave/contextweave/errors"
	"github.com/contextweave/contextweave/model"
)

// Parser is the per-format contract. Implementations are stateless.
type Parser interface {
	// Format returns the canonical format tag (constants.Format*).
	Format() string
	// Detect reports whether this parser handles the file. Detection is
	// extension-based; content is available for formats that need it.
	Detect(content []byte, path string) bool
	// Parse produces the canonical structure, failing on malformed input.
	Parse(content []byte, path string) (model.Structure, error)
	// ToJSON converts the parsed structure to its JSON-compatible form.
	// Identity for structural formats; raw formats are already wrapped.
	ToJSON(parsed model.Structure) (model.Structure, error)
	// ExtractReferences returns all references found in the parsed
	// structure, URLs included (the builder follows only file refs).
	ExtractReferences(parsed model.Structure) ([]model.NodeReference, error)
}

// Registry holds the ordered parser list. It is populated at process
// init and never mutated afterwards; dispatch is first-match-wins.
type Registry struct {
	parsers []Parser
}

// NewRegistry creates a registry with the default parser set.
func NewRegistry() *Registry {
	return &Registry{parsers: []Parser{
		&MarkdownParser{},
		&YAMLParser{},
		&JSONParser{},
		&JinjaParser{},
		&JsonnetParser{},
	}}
}

// NewEmptyRegistry creates a registry with no parsers registered.
func NewEmptyRegistry() *Registry {
	return &Registry{}
}

// Register appends a parser to the dispatch list.
func (r *Registry) Register(p Parser) {
	r.parsers = append(r.parsers, p)
}

// ForFile returns the first parser whose Detect accepts the file, or a
// FormatDetectionError if none does.
func (r *Registry) ForFile(content []byte, path string) (Parser, error) {
	for _, p := range r.parsers {
		if p.Detect(content, path) {
			return p, nil
		}
	}
	return nil, &errors.FormatDetectionError{Path: path}
}

// ParseFile runs detection, parsing and reference extraction in one step.
func (r *Registry) ParseFile(content []byte, path string) (*model.ContextNode, error) {
	p, err := r.ForFile(content, path)
	if err != nil {
		return nil, err
	}
	parsed, err := p.Parse(content, path)
	if err != nil {
		return nil, &errors.FormatParseError{Path: path, Format: p.Format(), Err: err}
	}
	canonical, err := p.ToJSON(parsed)
	if err != nil {
		return nil, &errors.JSONConversionError{Path: path, Format: p.Format(), Err: err}
	}
	refs, err := p.ExtractReferences(canonical)
	if err != nil {
		return nil, err
	}
	// Optional metadata tag, carried through untouched.
	semanticType, _ := canonical[constants.SemanticTypeKey].(string)
	return &model.ContextNode{
		ID:           path,
		Content:      canonical,
		Format:       p.Format(),
		References:   refs,
		SemanticType: semanticType,
		Size:         len(content),
	}, nil
}

func hasExt(path string, exts ...string) bool {
	for _, ext := range exts {
		if len(path) > len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}
