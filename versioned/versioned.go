// Package versioned picks among sibling version files before the
// network builder runs. A file stem.md may have versioned siblings
// named stem@<version>.md; a version tag (a semver constraint) selects
// the highest satisfying sibling. The builder itself is version-unaware
// and only ever sees the resolved path.
package versioned

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/contextweave/contextweave/errors"
	"github.com/contextweave/contextweave/utils"
)

// Selector resolves version-tagged paths. Tags map relative paths (as
// written in references) to semver constraints, e.g. ">=1.2.0 <2".
type Selector struct {
	tags map[string]string
}

// NewSelector creates a selector over the given tag map. A nil map
// selects plain files only.
func NewSelector(tags map[string]string) *Selector {
	return &Selector{tags: tags}
}

// SelectRoot resolves the entry path to the concrete absolute file the
// builder should start from.
func (s *Selector) SelectRoot(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &errors.PathResolutionError{Path: path, Err: err}
	}
	return s.Select(path, abs)
}

// Select resolves one reference path (relative form, as written) to its
// concrete absolute location, honoring a version tag if one is set.
func (s *Selector) Select(relPath, absPath string) (string, error) {
	tag, ok := s.tags[relPath]
	if !ok {
		return absPath, nil
	}
	constraint, err := semver.NewConstraint(tag)
	if err != nil {
		return "", utils.Errorf("invalid version tag %q for %s: %w", tag, relPath, err)
	}
	chosen, err := s.pickSibling(absPath, constraint)
	if err != nil {
		return "", err
	}
	if chosen != "" {
		utils.Debug("versioned: %s resolved to %s (tag %q)", relPath, chosen, tag)
		return chosen, nil
	}
	// No satisfying sibling: fall back to the plain file.
	return absPath, nil
}

// pickSibling returns the highest-versioned sibling of absPath whose
// version satisfies the constraint, or "" if none does.
func (s *Selector) pickSibling(absPath string, constraint *semver.Constraints) (string, error) {
	dir := filepath.Dir(absPath)
	base := filepath.Base(absPath)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", &errors.PathResolutionError{Path: absPath, Err: err}
	}
	var bestName string
	var bestVersion *semver.Version
	prefix := stem + "@"
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ext) {
			continue
		}
		raw := strings.TrimSuffix(strings.TrimPrefix(name, prefix), ext)
		v, err := semver.NewVersion(raw)
		if err != nil {
			continue // not a version-tagged sibling
		}
		if !constraint.Check(v) {
			continue
		}
		if bestVersion == nil || v.GreaterThan(bestVersion) {
			bestVersion = v
			bestName = name
		}
	}
	if bestName == "" {
		return "", nil
	}
	return filepath.Join(dir, bestName), nil
}
