package catalog

import "io"

// Resource is a single entry in the knowledge bank. Resources have no
// identifier beyond their position in the stored sequence and are never
// mutated or deleted once created.
type Resource struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	Tags        []string `json:"tags"`
	URL         string   `json:"url"`
	File        string   `json:"file,omitempty"`
}

// ResourceStore defines the interface for persisting the resource sequence
type ResourceStore interface {
	// LoadAll returns every stored resource in insertion order
	LoadAll() ([]Resource, error)

	// Append persists a new resource at the end of the sequence
	Append(resource Resource) error
}

// FileSink defines the interface for persisting uploaded files
type FileSink interface {
	// Store writes content under a name derived from originalName and
	// returns the name actually used
	Store(originalName string, content io.Reader) (string, error)
}
