// File: pkg/catalog/traversal.go
package catalog

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// ResolveRepo returns the absolute repository root, or an error wrapping
// ErrNotADirectory when it does not exist or is not a directory.
func ResolveRepo(repo string) (string, error) {
	absRepo, err := filepath.Abs(repo)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	info, err := os.Stat(absRepo)
	if err != nil || !info.IsDir() {
		return absRepo, fmt.Errorf("%w: %s", ErrNotADirectory, absRepo)
	}
	return absRepo, nil
}

// ResolveRoots selects the subtrees to walk. Without include names every
// top-level directory not in the ignore set is used. Include names are kept in
// the given order and bypass the top-level ignore check.
func ResolveRoots(repo string, include []string, ignore IgnoreSet, logger *zap.Logger) ([]Root, error) {
	if len(include) > 0 {
		return resolveIncludedRoots(repo, include, logger), nil
	}

	entries, err := os.ReadDir(repo)
	if err != nil {
		logger.Error("Failed to read repository root", zap.String("repo", repo), zap.Error(err))
		return nil, fmt.Errorf("failed to read repository root '%s': %w", repo, err)
	}

	var roots []Root
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if ignore.Matches(entry.Name()) {
			logger.Debug("Skipping ignored top-level directory", zap.String("directory", entry.Name()))
			continue
		}
		roots = append(roots, Root{Name: entry.Name(), Path: filepath.Join(repo, entry.Name())})
	}
	return roots, nil
}

func resolveIncludedRoots(repo string, include []string, logger *zap.Logger) []Root {
	seen := make(map[string]bool, len(include))
	var roots []Root
	for _, name := range include {
		clean := filepath.Clean(name)
		if !filepath.IsLocal(clean) {
			logger.Warn("Include path escapes the repository, skipping", zap.String("include", name))
			continue
		}
		if seen[clean] {
			continue
		}
		seen[clean] = true

		path := filepath.Join(repo, clean)
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			logger.Warn("Include path is not a directory, skipping", zap.String("include", name), zap.String("path", path))
			continue
		}
		roots = append(roots, Root{Name: filepath.ToSlash(clean), Path: path})
	}
	return roots
}

// CollectFiles walks each root and returns every regular file below it,
// pruning directories in the ignore set at any depth. When rootFiles is true
// the regular files directly inside repo are collected too. Paths in skip
// (absolute) are never returned. The result is sorted by relative path,
// compared component by component.
func CollectFiles(repo string, roots []Root, rootFiles bool, ignore IgnoreSet, skip map[string]bool, logger *zap.Logger) ([]FileCandidate, error) {
	seen := make(map[string]bool)
	var files []FileCandidate

	add := func(path string) {
		if skip[path] || seen[path] {
			return
		}
		rel, err := filepath.Rel(repo, path)
		if err != nil {
			logger.Warn("Unable to determine relative path, skipping", zap.String("path", path), zap.Error(err))
			return
		}
		seen[path] = true
		files = append(files, FileCandidate{
			Path: path,
			Rel:  filepath.ToSlash(rel),
			Dir:  filepath.Base(filepath.Dir(path)),
		})
	}

	if rootFiles {
		entries, err := os.ReadDir(repo)
		if err != nil {
			return nil, fmt.Errorf("failed to read repository root '%s': %w", repo, err)
		}
		for _, entry := range entries {
			path := filepath.Join(repo, entry.Name())
			if !entry.IsDir() && isRegularFile(path, entry) {
				add(path)
			}
		}
	}

	for _, root := range roots {
		logger.Debug("Walking root", zap.String("root", root.Name))
		err := filepath.WalkDir(root.Path, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				logger.Warn("Error accessing path during traversal", zap.String("path", path), zap.Error(err))
				if d != nil && d.IsDir() && path != root.Path {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				if path != root.Path && ignore.Matches(d.Name()) {
					logger.Debug("Skipping ignored directory during traversal", zap.String("directory", path))
					return filepath.SkipDir
				}
				return nil
			}
			if isRegularFile(path, d) {
				add(path)
			}
			return nil
		})
		if err != nil {
			logger.Error("Error during file traversal", zap.String("root", root.Path), zap.Error(err))
			return nil, fmt.Errorf("failed to walk '%s': %w", root.Path, err)
		}
	}

	sort.Slice(files, func(i, j int) bool {
		return lessRelPath(files[i].Rel, files[j].Rel)
	})
	logger.Debug("Completed file traversal", zap.Int("candidates", len(files)))
	return files, nil
}

// lessRelPath orders slash-separated paths component by component, so
// "a/x.ts" sorts before "a-b.ts" even though '-' is below '/'.
func lessRelPath(a, b string) bool {
	pa, pb := strings.Split(a, "/"), strings.Split(b, "/")
	for i := 0; i < len(pa) && i < len(pb); i++ {
		if pa[i] != pb[i] {
			return pa[i] < pb[i]
		}
	}
	return len(pa) < len(pb)
}

// isRegularFile follows symlinks so that links to regular files are kept
// while sockets, pipes and devices are skipped.
func isRegularFile(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
