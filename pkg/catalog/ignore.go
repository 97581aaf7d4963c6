// File: pkg/catalog/ignore.go
package catalog

import (
	"path/filepath"
	"strings"
)

// IgnoreSet holds directory names pruned during traversal.
type IgnoreSet map[string]struct{}

// NewIgnoreSet builds a set from directory names. Blank names and
// trailing separators are dropped, so "dist/" and "dist" are the same entry.
func NewIgnoreSet(names ...string) IgnoreSet {
	set := make(IgnoreSet, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		name = strings.TrimRight(filepath.ToSlash(name), "/")
		if name == "" {
			continue
		}
		set[name] = struct{}{}
	}
	return set
}

// Matches reports whether a directory with the given base name is ignored.
func (s IgnoreSet) Matches(name string) bool {
	_, ok := s[name]
	return ok
}
