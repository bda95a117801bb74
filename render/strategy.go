package render

import (
	"regexp"
	"strings"

	"github.com/contextweave/contextweave/model"
)

// LookupFunc resolves a reference path written in a node's content to
// the target node, if the builder resolved that edge.
type LookupFunc func(refPath string) (*model.ContextNode, bool)

// InlineFunc renders a looked-up node to text for inlining.
type InlineFunc func(node *model.ContextNode) (string, error)

// Strategy owns one reference syntax family. Strategies are stateless
// and idempotent on content lacking their syntax, so several may run
// over the same content without interference.
type Strategy interface {
	// CanProcess reports whether content contains this strategy's syntax.
	CanProcess(content string) bool
	// ProcessString replaces each matched reference span with the
	// rendered form of the looked-up node. Spans whose lookup fails are
	// left verbatim.
	ProcessString(content string, lookup LookupFunc, inline InlineFunc) (string, error)
}

var (
	mdLinkRe          = regexp.MustCompile(`(!?)\[([^\]]*)\]\(([^)\s]+)\)`)
	jinjaRefCommentRe = regexp.MustCompile(`\{#\s*ref:\s*(.+?)\s*#\}`)
	jinjaIncludeRe    = regexp.MustCompile(`include\(\s*['"]([^'"]+)['"]\s*\)`)
)

// MarkdownStrategy inlines [label](path) links. URL links and images
// are never references and stay verbatim.
type MarkdownStrategy struct{}

func (s *MarkdownStrategy) CanProcess(content string) bool {
	return mdLinkRe.MatchString(content)
}

func (s *MarkdownStrategy) ProcessString(content string, lookup LookupFunc, inline InlineFunc) (string, error) {
	var firstErr error
	out := mdLinkRe.ReplaceAllStringFunc(content, func(span string) string {
		m := mdLinkRe.FindStringSubmatch(span)
		if m[1] == "!" || model.IsURLPath(m[3]) {
			return span
		}
		node, ok := lookup(m[3])
		if !ok {
			return span
		}
		rendered, err := inline(node)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return span
		}
		return rendered
	})
	if firstErr != nil {
		return "", firstErr
	}
	return out, nil
}

// JinjaStrategy inlines template references in both the comment form
// {# ref: path #} and the call form include('path').
type JinjaStrategy struct{}

func (s *JinjaStrategy) CanProcess(content string) bool {
	return jinjaRefCommentRe.MatchString(content) || jinjaIncludeRe.MatchString(content)
}

func (s *JinjaStrategy) ProcessString(content string, lookup LookupFunc, inline InlineFunc) (string, error) {
	var firstErr error
	replace := func(re *regexp.Regexp, in string) string {
		return re.ReplaceAllStringFunc(in, func(span string) string {
			m := re.FindStringSubmatch(span)
			path := strings.TrimSpace(m[1])
			if model.IsURLPath(path) {
				return span
			}
			node, ok := lookup(path)
			if !ok {
				return span
			}
			rendered, err := inline(node)
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return span
			}
			return rendered
		})
	}
	out := replace(jinjaRefCommentRe, content)
	out = replace(jinjaIncludeRe, out)
	if firstErr != nil {
		return "", firstErr
	}
	return out, nil
}

// DefaultStrategies returns the strategy set for raw-format content, in
// application order.
func DefaultStrategies() []Strategy {
	return []Strategy{&MarkdownStrategy{}, &JinjaStrategy{}}
}
