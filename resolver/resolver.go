// Package resolver turns reference paths into parsed context nodes.
// Parsed nodes are cached by absolute path, so a file referenced from
// several places is read and parsed exactly once per resolver.
package resolver

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/contextweave/contextweave/errors"
	"github.com/contextweave/contextweave/model"
	"github.com/contextweave/contextweave/parser"
	"github.com/contextweave/contextweave/utils"
)

const maxSuggestions = 3

// Resolver resolves a reference path against a base location.
type Resolver interface {
	// Resolve returns the parsed node for path. basePath is the absolute
	// path of the referring file; relative paths resolve against its
	// directory. Fails with NodeReferenceNotFoundError or
	// PathResolutionError.
	Resolve(path, basePath string) (*model.ContextNode, error)
	// Validate reports whether path would resolve without error.
	Validate(path, basePath string) bool
}

// FileResolver reads nodes from the local filesystem.
type FileResolver struct {
	registry *parser.Registry
	cache    map[string]*model.ContextNode
}

// NewFileResolver creates a resolver over the given parser registry.
func NewFileResolver(registry *parser.Registry) *FileResolver {
	if registry == nil {
		registry = parser.NewRegistry()
	}
	return &FileResolver{
		registry: registry,
		cache:    make(map[string]*model.ContextNode),
	}
}

// AbsolutePath resolves a reference path to an absolute location without
// reading the file.
func (r *FileResolver) AbsolutePath(path, basePath string) (string, error) {
	var abs string
	var err error
	if filepath.IsAbs(path) {
		abs = filepath.Clean(path)
	} else if basePath != "" {
		abs = filepath.Join(filepath.Dir(basePath), path)
	} else {
		abs, err = filepath.Abs(path)
		if err != nil {
			return "", &errors.PathResolutionError{Path: path, Base: basePath, Err: err}
		}
	}
	return abs, nil
}

// Resolve implements Resolver.
func (r *FileResolver) Resolve(path, basePath string) (*model.ContextNode, error) {
	abs, err := r.AbsolutePath(path, basePath)
	if err != nil {
		return nil, err
	}
	if node, ok := r.cache[abs]; ok {
		utils.Debug("resolver: cache hit for %s", abs)
		return node, nil
	}
	content, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNodeReferenceNotFound(path, basePath, r.suggestions(abs))
		}
		return nil, &errors.PathResolutionError{Path: path, Base: basePath, Err: err}
	}
	node, err := r.registry.ParseFile(content, abs)
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(content)
	node.Checksum = hex.EncodeToString(sum[:])
	node.SourceURI = "file://" + abs
	r.cache[abs] = node
	return node, nil
}

// Validate implements Resolver.
func (r *FileResolver) Validate(path, basePath string) bool {
	abs, err := r.AbsolutePath(path, basePath)
	if err != nil {
		return false
	}
	if _, ok := r.cache[abs]; ok {
		return true
	}
	info, err := os.Stat(abs)
	return err == nil && !info.IsDir()
}

// suggestions lists similarly named files next to the missing target,
// closest first.
func (r *FileResolver) suggestions(abs string) []string {
	entries, err := os.ReadDir(filepath.Dir(abs))
	if err != nil {
		return nil
	}
	target := filepath.Base(abs)
	type candidate struct {
		name string
		dist int
	}
	var candidates []candidate
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		d := editDistance(strings.ToLower(target), strings.ToLower(e.Name()))
		if d <= len(target)/2 {
			candidates = append(candidates, candidate{e.Name(), d})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		return candidates[i].name < candidates[j].name
	})
	var out []string
	for _, c := range candidates {
		out = append(out, c.name)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}

// editDistance is plain Levenshtein over bytes; filenames are short so
// the quadratic cost is irrelevant.
func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
