package cli

import (
	"fmt"
	"path"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExcludes are pruned from every scan: pipeline work and staging
// directories hold intermediate copies of the same documents.
var DefaultExcludes = []string{"work/**", ".nextflow/**"}

// docScanner expands glob patterns under a results tree. Matches come back
// sorted, which fixes the merge order of discovered documents.
type docScanner struct {
	root string
}

func newDocScanner(root string) *docScanner {
	return &docScanner{root: root}
}

// Scan expands the include globs relative to the root, drops matches hitting
// an exclude pattern (DefaultExcludes always apply) and returns the rest
// sorted.
func (s *docScanner) Scan(includes, excludes []string) ([]string, error) {
	if len(includes) == 0 {
		return []string{}, nil
	}
	for _, pattern := range includes {
		if err := checkPattern(pattern); err != nil {
			return nil, err
		}
	}
	prune := append(slices.Clone(DefaultExcludes), excludes...)
	for i, pattern := range prune {
		prune[i] = filepath.ToSlash(pattern)
	}
	seen := make(map[string]struct{})
	found := []string{}
	for _, pattern := range includes {
		matches, err := doublestar.FilepathGlob(filepath.Join(s.root, pattern))
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		for _, match := range matches {
			rel, relErr := filepath.Rel(s.root, match)
			if relErr != nil || filepath.IsAbs(rel) || strings.HasPrefix(rel, "..") {
				return nil, fmt.Errorf("match %q escapes scan root %q", match, s.root)
			}
			if _, dup := seen[match]; dup {
				continue
			}
			seen[match] = struct{}{}
			if pruned(filepath.ToSlash(rel), prune) {
				continue
			}
			found = append(found, match)
		}
	}
	sort.Strings(found)
	return found, nil
}

// checkPattern blocks traversal and absolute-path injection so a scan cannot
// leave its root.
func checkPattern(pattern string) error {
	clean := filepath.Clean(pattern)
	if filepath.IsAbs(clean) {
		return fmt.Errorf("invalid glob pattern %q: absolute paths not allowed", pattern)
	}
	if slices.Contains(strings.Split(clean, string(filepath.Separator)), "..") {
		return fmt.Errorf("invalid glob pattern %q: parent directory references not allowed", pattern)
	}
	return nil
}

// pruned matches the slash-form relative path and its base name against the
// exclude patterns.
func pruned(rel string, patterns []string) bool {
	base := path.Base(rel)
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}
