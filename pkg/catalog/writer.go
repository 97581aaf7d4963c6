// File: pkg/catalog/writer.go
package catalog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"
)

// separatorLine frames the catalog header.
var separatorLine = strings.Repeat("-", 80)

// WriteCatalog writes the header block followed by one delimited entry per file.
func WriteCatalog(w io.Writer, c Catalog) error {
	header := fmt.Sprintf("%s\nREPO: %s\nINCLUDE: %s\nFILES: %d\n%s\n",
		separatorLine, c.Repo, strings.Join(c.Include, ", "), len(c.Files), separatorLine)
	if _, err := io.WriteString(w, header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, file := range c.Files {
		if _, err := fmt.Fprintf(w, "\n--- FILE: %s ---\n", file.Rel); err != nil {
			return fmt.Errorf("failed to write marker for %s: %w", file.Rel, err)
		}
		if _, err := io.WriteString(w, file.Content); err != nil {
			return fmt.Errorf("failed to write content for %s: %w", file.Rel, err)
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return fmt.Errorf("failed to write content for %s: %w", file.Rel, err)
		}
	}
	return nil
}

// WriteCatalogFile creates outputPath (and its parent directories) and writes
// the catalog to it, gzip-compressed when compress is set.
func WriteCatalogFile(outputPath string, compress bool, c Catalog, logger *zap.Logger) (err error) {
	logger.Debug("Writing catalog to output file", zap.String("output", outputPath), zap.Bool("gzip", compress))

	if err := ensureDirectory(filepath.Dir(outputPath), logger); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		logger.Error("Failed to create output file", zap.String("file", outputPath), zap.Error(err))
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := outFile.Close(); closeErr != nil && err == nil {
			logger.Error("Failed to close output file", zap.String("file", outputPath), zap.Error(closeErr))
			err = fmt.Errorf("failed to close output file: %w", closeErr)
		}
	}()

	writer := bufio.NewWriter(outFile)

	var dst io.Writer = writer
	var zw *gzip.Writer
	if compress {
		// Zero header: no name and no mtime, so repeated runs are byte-identical.
		zw = gzip.NewWriter(writer)
		dst = zw
	}

	if err := WriteCatalog(dst, c); err != nil {
		logger.Error("Failed to write catalog", zap.String("file", outputPath), zap.Error(err))
		return err
	}

	if zw != nil {
		if err := zw.Close(); err != nil {
			logger.Error("Failed to finish gzip stream", zap.String("file", outputPath), zap.Error(err))
			return fmt.Errorf("failed to finish gzip stream: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		logger.Error("Failed to flush output file", zap.String("file", outputPath), zap.Error(err))
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

// ensureDirectory ensures a directory exists, creating it if necessary.
func ensureDirectory(path string, logger *zap.Logger) error {
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		logger.Error("Failed to create directory", zap.String("path", path), zap.Error(err))
		return err
	}
	logger.Debug("Ensured directory exists", zap.String("path", path))
	return nil
}
