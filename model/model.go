package model

import (
	"path/filepath"
	"strings"

	"github.com/contextweave/contextweave/constants"
)

// Structure is the canonical parsed representation of a source file.
// Structural formats (JSON/YAML/Jsonnet) map directly; raw formats
// (markdown, jinja) wrap their text under the raw_content key.
type Structure map[string]any

// RefType distinguishes graph edges from external links.
type RefType string

const (
	RefTypeFile RefType = constants.RefTypeFile
	RefTypeURL  RefType = constants.RefTypeURL
)

// NodeReference is a cross-file reference as written in a source file.
type NodeReference struct {
	Path  string  `yaml:"path" json:"path"`
	Type  RefType `yaml:"type" json:"type"`
	Label string  `yaml:"label,omitempty" json:"label,omitempty"`
}

// IsURL reports whether the reference path targets an external URL
// rather than a file in the network.
func (r NodeReference) IsURL() bool {
	return IsURLPath(r.Path)
}

// IsURLPath reports whether a raw path string is an external URL.
func IsURLPath(path string) bool {
	for _, prefix := range constants.URLPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// ContextNode is a single parsed source file plus its extracted references.
// Nodes are created during network build and never mutated afterwards.
type ContextNode struct {
	ID           string          `json:"id"` // resolved absolute path
	Content      Structure       `json:"content"`
	Format       string          `json:"format"`
	References   []NodeReference `json:"references"`
	SemanticType string          `json:"semantic_type,omitempty"` // metadata only
	Checksum     string          `json:"checksum,omitempty"`
	SourceURI    string          `json:"source_uri,omitempty"`
	Size         int             `json:"size"` // raw byte length of the source file
}

// Name returns the node's display name: base filename without extension.
// Used as the NODE-scope qualifier and as a hierarchical path segment.
func (n *ContextNode) Name() string {
	base := filepath.Base(n.ID)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// RawContent returns the verbatim text of a raw-format node, or the
// empty string for structural formats.
func (n *ContextNode) RawContent() string {
	if s, ok := n.Content[constants.RawContentKey].(string); ok {
		return s
	}
	return ""
}

// FileReferences returns only the references that are graph edges
// (URLs are links, not edges).
func (n *ContextNode) FileReferences() []NodeReference {
	var refs []NodeReference
	for _, r := range n.References {
		if r.Type == RefTypeFile {
			refs = append(refs, r)
		}
	}
	return refs
}

// NetworkConfig bounds network construction. All limits are inclusive
// upper bounds; zero values are replaced by defaults at build time.
type NetworkConfig struct {
	MaxDepth       int  `yaml:"max_depth" json:"max_depth"`
	MaxNodeSize    int  `yaml:"max_node_size" json:"max_node_size"`
	MaxNetworkSize int  `yaml:"max_network_size" json:"max_network_size"`
	BestEffort     bool `yaml:"best_effort,omitempty" json:"best_effort,omitempty"`
}

// DefaultNetworkConfig returns the default construction limits.
func DefaultNetworkConfig() NetworkConfig {
	return NetworkConfig{
		MaxDepth:       constants.DefaultMaxDepth,
		MaxNodeSize:    constants.DefaultMaxNodeSize,
		MaxNetworkSize: constants.DefaultMaxNetworkSize,
	}
}

// WithDefaults fills any zero limits from the defaults.
func (c NetworkConfig) WithDefaults() NetworkConfig {
	d := DefaultNetworkConfig()
	if c.MaxDepth == 0 {
		c.MaxDepth = d.MaxDepth
	}
	if c.MaxNodeSize == 0 {
		c.MaxNodeSize = d.MaxNodeSize
	}
	if c.MaxNetworkSize == 0 {
		c.MaxNetworkSize = d.MaxNetworkSize
	}
	return c
}

// VariableScope is the specificity tier governing substitution precedence.
type VariableScope int

const (
	// ScopeSimple matches unqualified keys.
	ScopeSimple VariableScope = iota
	// ScopeNode matches keys qualified by a node name.
	ScopeNode
	// ScopePath matches keys qualified by a full hierarchical path.
	ScopePath
)

func (s VariableScope) String() string {
	switch s {
	case ScopeNode:
		return "node"
	case ScopePath:
		return "path"
	default:
		return "simple"
	}
}

// SubstitutionContext carries everything variable substitution needs to
// render one node at one position in the traversal.
type SubstitutionContext struct {
	NodeID           string
	NodeName         string
	HierarchicalPath string // dot-joined node names along the traversal edges
	Content          string
	Format           string
	Variables        map[string]string
}

// ChildPath extends a hierarchical path with a child node name.
func ChildPath(parent, child string) string {
	if parent == "" {
		return child
	}
	return parent + constants.PathSeparator + child
}
