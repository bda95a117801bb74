// Package errors provides error handling for contextweave.
//
// It re-exports the parts of github.com/cockroachdb/errors the codebase
// uses (wrapping, hints, Is/As) and defines the typed build/render error
// taxonomy. Outer layers report these structurally; none of them is a
// bare string.
package errors

import (
	"fmt"
	"strings"

	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New    = crdb.New
	Newf   = crdb.Newf
	Wrap   = crdb.Wrap
	Wrapf  = crdb.Wrapf
	Is     = crdb.Is
	As     = crdb.As
	Unwrap = crdb.Unwrap
)

// User-facing hints (resolution suggestions ride on these)
var (
	WithHint     = crdb.WithHint
	WithHintf    = crdb.WithHintf
	GetAllHints  = crdb.GetAllHints
	FlattenHints = crdb.FlattenHints
)

// FormatDetectionError means no registered parser claimed a file.
// This is a configuration error, fatal to the whole build.
type FormatDetectionError struct {
	Path string
}

func (e *FormatDetectionError) Error() string {
	return fmt.Sprintf("no format parser matches %q", e.Path)
}

// FormatParseError wraps a parser failure on malformed input.
type FormatParseError struct {
	Path   string
	Format string
	Err    error
}

func (e *FormatParseError) Error() string {
	return fmt.Sprintf("parse %s as %s: %v", e.Path, e.Format, e.Err)
}

func (e *FormatParseError) Unwrap() error { return e.Err }

// JSONConversionError wraps a failure converting a parsed structure to
// its canonical JSON-compatible form.
type JSONConversionError struct {
	Path   string
	Format string
	Err    error
}

func (e *JSONConversionError) Error() string {
	return fmt.Sprintf("convert %s (%s) to canonical structure: %v", e.Path, e.Format, e.Err)
}

func (e *JSONConversionError) Unwrap() error { return e.Err }

// ReferenceSyntaxError means a reference token was recognized but malformed.
type ReferenceSyntaxError struct {
	Path  string
	Token string
}

func (e *ReferenceSyntaxError) Error() string {
	return fmt.Sprintf("malformed reference %q in %s", e.Token, e.Path)
}

// NodeReferenceNotFoundError means a reference could not be resolved to
// an existing file. Suggestions list similarly named siblings.
type NodeReferenceNotFoundError struct {
	Path        string
	Base        string
	Suggestions []string
}

func (e *NodeReferenceNotFoundError) Error() string {
	return fmt.Sprintf("node reference %q not found (base %s)", e.Path, e.Base)
}

// NewNodeReferenceNotFound builds the not-found error. Suggestions ride
// on a hint so outer layers surface them separately from the message.
func NewNodeReferenceNotFound(path, base string, suggestions []string) error {
	err := &NodeReferenceNotFoundError{Path: path, Base: base, Suggestions: suggestions}
	if len(suggestions) > 0 {
		return WithHintf(err, "did you mean: %s", strings.Join(suggestions, ", "))
	}
	return err
}

// PathResolutionError wraps a failure turning a reference path into an
// absolute location.
type PathResolutionError struct {
	Path string
	Base string
	Err  error
}

func (e *PathResolutionError) Error() string {
	return fmt.Sprintf("resolve %q against %s: %v", e.Path, e.Base, e.Err)
}

func (e *PathResolutionError) Unwrap() error { return e.Err }

// NodeNetworkValidationError reports a reference cycle. CyclePath runs
// root → … → repeated node; the first and last ids are equal.
type NodeNetworkValidationError struct {
	CyclePath []string
}

func (e *NodeNetworkValidationError) Error() string {
	return fmt.Sprintf("reference cycle: %s", strings.Join(e.CyclePath, " -> "))
}

// NodeNetworkDepthExceededError reports a traversal deeper than the
// configured inclusive bound.
type NodeNetworkDepthExceededError struct {
	Current int
	Max     int
}

func (e *NodeNetworkDepthExceededError) Error() string {
	return fmt.Sprintf("network depth %d exceeds maximum %d", e.Current, e.Max)
}

// NodeResourceLimitExceededError reports a node or network size over its
// limit. Kind is one of node_size, network_size, depth.
type NodeResourceLimitExceededError struct {
	Kind    string
	Path    string
	Current int
	Max     int
}

func (e *NodeResourceLimitExceededError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s limit exceeded at %s: %d > %d", e.Kind, e.Path, e.Current, e.Max)
	}
	return fmt.Sprintf("%s limit exceeded: %d > %d", e.Kind, e.Current, e.Max)
}

// IsNotFound reports whether err is (or wraps) an unresolvable-reference
// error. Best-effort builds downgrade exactly these to warnings.
func IsNotFound(err error) bool {
	var nf *NodeReferenceNotFoundError
	var pr *PathResolutionError
	return As(err, &nf) || As(err, &pr)
}
