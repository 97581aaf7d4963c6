// File: pkg/catalog/classify.go
package catalog

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Classifier decides whether a file belongs in the catalog. Known text
// extensions are accepted without reading; anything else is sampled.
type Classifier struct {
	extensions map[string]bool
	sampleSize int
	threshold  float64
	logger     *zap.Logger
}

// NewClassifier builds a classifier from the allow-list extensions, the
// number of bytes to sample and the maximum non-printable ratio.
func NewClassifier(extensions []string, sampleSize int, threshold float64, logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	exts := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts[ext] = true
	}
	return &Classifier{
		extensions: exts,
		sampleSize: sampleSize,
		threshold:  threshold,
		logger:     logger,
	}
}

// IsText reports whether the file at path should be included. A file that
// cannot be sampled is rejected.
func (c *Classifier) IsText(path string) bool {
	if c.extensions[strings.ToLower(suffix(path))] {
		return true
	}

	sample, err := readSample(path, c.sampleSize)
	if err != nil {
		c.logger.Debug("Failed to sample file, treating as binary", zap.String("file", path), zap.Error(err))
		return false
	}
	return LooksTextual(sample, c.threshold)
}

// suffix is the extension of the base name. A dotfile with no further dot,
// such as ".env", has none.
func suffix(path string) string {
	name := filepath.Base(path)
	ext := filepath.Ext(name)
	if ext == name {
		return ""
	}
	return ext
}

// readSample reads up to n bytes from the start of the file.
func readSample(path string, n int) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	buffer := make([]byte, n)
	read, err := io.ReadFull(file, buffer)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, err
	}
	return buffer[:read], nil
}

// LooksTextual applies the byte heuristic: a null byte means binary, an empty
// sample is text, otherwise the share of non-printable bytes must not exceed
// threshold.
func LooksTextual(sample []byte, threshold float64) bool {
	if bytes.IndexByte(sample, 0) >= 0 {
		return false
	}
	if len(sample) == 0 {
		return true
	}

	nonPrintable := 0
	for _, b := range sample {
		if !isPrintable(b) {
			nonPrintable++
		}
	}
	return float64(nonPrintable)/float64(len(sample)) <= threshold
}

// isPrintable checks if a byte represents a printable ASCII character
func isPrintable(b byte) bool {
	return (b >= 32 && b <= 126) || b == '\n' || b == '\r' || b == '\t'
}
