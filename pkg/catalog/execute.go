// File: pkg/catalog/execute.go
package catalog

import (
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// Run walks the repository, keeps the textual files, reads them with the byte
// cap and writes the catalog. Per-file read failures are recorded in the
// catalog; only an invalid root or an unwritable output is returned as an error.
func Run(args Arguments, logger *zap.Logger) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	startTime := time.Now()

	if err := args.Validate(); err != nil {
		return Result{}, fmt.Errorf("invalid arguments: %w", err)
	}

	repo, err := ResolveRepo(args.Repo)
	if err != nil {
		logger.Error("Invalid repository root", zap.String("repo", args.Repo), zap.Error(err))
		return Result{}, err
	}

	output, err := filepath.Abs(args.Output)
	if err != nil {
		return Result{}, fmt.Errorf("failed to resolve output path: %w", err)
	}

	logger.Info("Starting catalog", zap.String("repo", repo), zap.String("output", output))

	// Created before roots are resolved so a new output directory inside the
	// repo is listed the same way on every run.
	if err := ensureDirectory(filepath.Dir(output), logger); err != nil {
		return Result{}, fmt.Errorf("failed to create output directory: %w", err)
	}

	ignore := args.ignoreSet()
	roots, err := ResolveRoots(repo, args.Include, ignore, logger)
	if err != nil {
		return Result{}, err
	}

	candidates, err := CollectFiles(repo, roots, len(args.Include) == 0, ignore, map[string]bool{output: true}, logger)
	if err != nil {
		return Result{}, fmt.Errorf("failed to collect files: %w", err)
	}

	classifier := NewClassifier(append(append([]string{}, TextExtensions...), args.ExtraTextExts...),
		args.SampleSize, args.NonPrintRatio, logger)

	var textFiles []FileCandidate
	for _, candidate := range candidates {
		if !classifier.IsText(candidate.Path) {
			logger.Debug("Skipping non-text file", zap.String("file", candidate.Rel))
			continue
		}
		textFiles = append(textFiles, candidate)
	}
	logger.Debug("Classified files",
		zap.Int("candidates", len(candidates)),
		zap.Int("textFiles", len(textFiles)))

	extracted := ReadFiles(textFiles, args.MaxBytes, args.Workers, logger)

	include := make([]string, 0, len(roots))
	for _, root := range roots {
		include = append(include, root.Name)
	}

	c := Catalog{Repo: repo, Include: include, Files: extracted}
	if err := WriteCatalogFile(output, args.Gzip, c, logger); err != nil {
		return Result{}, fmt.Errorf("failed to write catalog: %w", err)
	}

	result := Result{
		Repo:      repo,
		Output:    args.Output,
		FileCount: len(extracted),
		Elapsed:   time.Since(startTime),
	}
	for _, file := range extracted {
		if file.Truncated {
			result.Truncated++
		}
		if file.Err != nil {
			result.ReadErrors++
		}
	}

	logger.Info("Catalog completed",
		zap.String("output", output),
		zap.Int("totalFiles", result.FileCount),
		zap.Int("truncated", result.Truncated),
		zap.Int("readErrors", result.ReadErrors),
		zap.Duration("elapsed", result.Elapsed))
	return result, nil
}
