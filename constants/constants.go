package constants

// ============================================================================
// CONFIGURATION
// ============================================================================

// Configuration Files
const (
	ConfigFileName = "weave.config.json"
)

// Environment Variables
const (
	EnvDebug          = "WEAVE_DEBUG"
	EnvMaxDepth       = "WEAVE_MAX_DEPTH"
	EnvMaxNodeSize    = "WEAVE_MAX_NODE_SIZE"
	EnvMaxNetworkSize = "WEAVE_MAX_NETWORK_SIZE"
	EnvBestEffort     = "WEAVE_BEST_EFFORT"
)

// Network Limits (defaults, all inclusive upper bounds)
const (
	DefaultMaxDepth       = 32
	DefaultMaxNodeSize    = 1 << 20  // 1 MiB per node
	DefaultMaxNetworkSize = 16 << 20 // 16 MiB aggregate
)

// ============================================================================
// FORMATS
// ============================================================================

// Format Names
const (
	FormatMarkdown = "markdown"
	FormatYAML     = "yaml"
	FormatJSON     = "json"
	FormatJinja    = "jinja"
	FormatJsonnet  = "jsonnet"
)

// Render Modes
const (
	RenderModeFull      = "full"
	RenderModeFileFirst = "file_first"
)

// Structure Keys
const (
	RawContentKey   = "raw_content"
	ContentKey      = "content"
	SemanticTypeKey = "semantic_type"
	RefTypeKey      = "type"
	RefPathKey      = "path"
	RefLabelKey     = "label"
	RefKindKey      = "ref_type"
	RefMarker       = "reference"
	JSONRefKey      = "$ref"
)

// Reference Types
const (
	RefTypeFile = "file"
	RefTypeURL  = "url"
)

// URL Prefixes excluded from graph edges
var URLPrefixes = []string{"http://", "https://", "mailto:"}

// Resource Limit Kinds
const (
	LimitKindNodeSize    = "node_size"
	LimitKindNetworkSize = "network_size"
	LimitKindDepth       = "depth"
)

// ============================================================================
// MISC
// ============================================================================

// JSON Output
const (
	JSONIndent = "  "
)

// Hierarchical path separator (traversal-graph path, not a filesystem path)
const (
	PathSeparator = "."
)
