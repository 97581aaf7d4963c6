// File: pkg/catalog/reader.go
package catalog

import (
	"fmt"
	"io"
	"math"
	"os"

	"golang.org/x/text/encoding/unicode"
)

// truncationMarker is appended to content cut at the byte cap.
const truncationMarker = "\n\n[... TRUNCATED: file exceeds %d bytes ...]"

// readBounded reads at most maxBytes of the file and decodes them as UTF-8,
// replacing invalid sequences. Failures are returned as inline content.
func readBounded(candidate FileCandidate, maxBytes int) ExtractedFile {
	extracted := ExtractedFile{FileCandidate: candidate}

	// One byte past the cap tells a file at the cap apart from a longer one.
	limit := int64(maxBytes)
	if limit < math.MaxInt64 {
		limit++
	}
	data, err := readPrefix(candidate.Path, limit)
	if err != nil {
		extracted.Err = err
		extracted.Content = fmt.Sprintf("[Error reading file: %v]", err)
		return extracted
	}

	if int64(len(data)) > int64(maxBytes) {
		extracted.Truncated = true
		data = data[:maxBytes]
	}
	extracted.Content = decodeText(data)
	if extracted.Truncated {
		extracted.Content += fmt.Sprintf(truncationMarker, maxBytes)
	}
	return extracted
}

func readPrefix(path string, limit int64) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(io.LimitReader(file, limit))
}

// decodeText converts raw bytes to a string, mapping every invalid UTF-8
// sequence to U+FFFD.
func decodeText(data []byte) string {
	decoded, err := unicode.UTF8.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}
