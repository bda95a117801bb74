// Package vars implements scoped variable substitution. Raw variable
// maps mix three scopes: unqualified keys (SIMPLE), node-qualified keys
// (NODE, "<node_name>.<key>") and path-qualified keys (PATH,
// "<hierarchical_path>.<key>"). Precedence is PATH > NODE > SIMPLE.
package vars

import (
	"regexp"
	"strings"

	"github.com/contextweave/contextweave/constants"
	"github.com/contextweave/contextweave/model"
)

// tokenRe matches {{identifier[.identifier]*}} substitution tokens.
var tokenRe = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z_][A-Za-z0-9_]*)*)\s*\}\}`)

// ScopeResolver classifies raw variable keys by matching their
// qualifying prefix against the known node names and hierarchical paths
// of a network, then computes the effective map for one node at one
// traversal position.
type ScopeResolver struct {
	nodeNames map[string]bool
	paths     map[string]bool
}

// NewScopeResolver creates a resolver that recognizes the given node
// names and hierarchical paths as scope qualifiers.
func NewScopeResolver(nodeNames, paths []string) *ScopeResolver {
	r := &ScopeResolver{
		nodeNames: make(map[string]bool, len(nodeNames)),
		paths:     make(map[string]bool, len(paths)),
	}
	for _, n := range nodeNames {
		r.nodeNames[n] = true
	}
	for _, p := range paths {
		r.paths[p] = true
	}
	return r
}

// Scope infers the scope of a raw key. A key qualifies as PATH or NODE
// only when its prefix names a known hierarchical path or node name;
// everything else is SIMPLE, dots included.
func (r *ScopeResolver) Scope(key string) model.VariableScope {
	if prefix, _, ok := r.splitByPaths(key); ok && prefix != "" {
		return model.ScopePath
	}
	if prefix, _, ok := r.splitByNodeNames(key); ok && prefix != "" {
		return model.ScopeNode
	}
	return model.ScopeSimple
}

// Resolve computes the effective variables for a node reached at the
// given hierarchical path. SIMPLE entries form the base; NODE entries
// for this node name overlay them; PATH entries for exactly this path
// overlay both.
func (r *ScopeResolver) Resolve(nodeName, hierarchicalPath string, raw map[string]string) map[string]string {
	effective := make(map[string]string, len(raw))
	// SIMPLE base
	for k, v := range raw {
		if r.Scope(k) == model.ScopeSimple {
			effective[k] = v
		}
	}
	// NODE overlay
	nodePrefix := nodeName + constants.PathSeparator
	for k, v := range raw {
		if r.Scope(k) == model.ScopeNode && strings.HasPrefix(k, nodePrefix) {
			effective[strings.TrimPrefix(k, nodePrefix)] = v
		}
	}
	// PATH overlay, exact path match only
	pathPrefix := hierarchicalPath + constants.PathSeparator
	for k, v := range raw {
		if r.Scope(k) == model.ScopePath && strings.HasPrefix(k, pathPrefix) {
			rest := strings.TrimPrefix(k, pathPrefix)
			if prefix, _, _ := r.splitByPaths(k); prefix == hierarchicalPath {
				effective[rest] = v
			}
		}
	}
	return effective
}

// splitByPaths finds the longest known hierarchical path prefixing key.
func (r *ScopeResolver) splitByPaths(key string) (prefix, rest string, ok bool) {
	return longestPrefix(key, r.paths)
}

// splitByNodeNames finds the known node name prefixing key.
func (r *ScopeResolver) splitByNodeNames(key string) (prefix, rest string, ok bool) {
	return longestPrefix(key, r.nodeNames)
}

func longestPrefix(key string, known map[string]bool) (string, string, bool) {
	best := ""
	for p := range known {
		if strings.HasPrefix(key, p+constants.PathSeparator) && len(p) > len(best) {
			best = p
		}
	}
	if best == "" {
		return "", "", false
	}
	return best, key[len(best)+1:], true
}

// Substitutor replaces {{token}} occurrences with variable values.
type Substitutor struct{}

// NewSubstitutor creates a Substitutor.
func NewSubstitutor() *Substitutor {
	return &Substitutor{}
}

// Apply replaces every token with a matching key's value. Tokens with no
// matching key are left unchanged; this pass never fails.
func (s *Substitutor) Apply(content string, effective map[string]string) string {
	return tokenRe.ReplaceAllStringFunc(content, func(tok string) string {
		key := strings.TrimSpace(tok[2 : len(tok)-2])
		if v, ok := effective[key]; ok {
			return v
		}
		return tok
	})
}

// Apply is the package-level convenience form.
func Apply(content string, effective map[string]string) string {
	return NewSubstitutor().Apply(content, effective)
}
