package catalog

import (
	"errors"
	"time"
)

// ErrNotADirectory is returned when the repository root is missing or is not a directory.
var ErrNotADirectory = errors.New("not a directory")

// Root is one subtree selected for walking.
type Root struct {
	Name string // Name as listed in the catalog header.
	Path string // Absolute path of the subtree.
}

// FileCandidate is a file discovered during the walk.
type FileCandidate struct {
	Path string // Absolute path.
	Rel  string // Slash-separated path relative to the repository root.
	Dir  string // Name of the parent directory.
}

// ExtractedFile is a candidate plus its decoded, capped content.
type ExtractedFile struct {
	FileCandidate
	Content   string // Decoded content, truncation marker or inline error text.
	Truncated bool   // The source was larger than the byte cap.
	Err       error  // Read failure captured in Content, if any.
}

// Catalog is everything the writer needs to produce the output.
type Catalog struct {
	Repo    string          // Absolute repository root.
	Include []string        // Names of the walked roots.
	Files   []ExtractedFile // Entries in output order.
}

// Result summarises a completed run.
type Result struct {
	Repo       string
	Output     string
	FileCount  int
	Truncated  int
	ReadErrors int
	Elapsed    time.Duration
}
