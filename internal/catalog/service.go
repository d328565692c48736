package catalog

import (
	"fmt"
	"io"
	"strings"
)

// Service provides application-level catalog operations
type Service struct {
	store ResourceStore
	sink  FileSink
}

// NewService creates a new catalog service
func NewService(store ResourceStore, sink FileSink) *Service {
	return &Service{
		store: store,
		sink:  sink,
	}
}

// Attachment carries an uploaded file from the request boundary
type Attachment struct {
	OriginalName string
	Content      io.Reader
}

// Submission represents a decoded resource creation request
type Submission struct {
	Title       string
	Description string
	Type        string
	Tags        string // comma-separated
	URL         string
	Attachment  *Attachment
}

// List loads the catalog and applies the query predicates
func (s *Service) List(query Query) ([]Resource, error) {
	resources, err := s.store.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load resources: %w", err)
	}
	return Filter(resources, query), nil
}

// Create stores any attached file, appends the new resource to the
// catalog and returns it. When no title is supplied and a file is
// attached, the attachment's original name becomes the title.
func (s *Service) Create(sub Submission) (*Resource, error) {
	resource := Resource{
		Title:       sub.Title,
		Description: sub.Description,
		Type:        sub.Type,
		Tags:        SplitTags(sub.Tags),
		URL:         sub.URL,
	}

	if sub.Attachment != nil {
		storedName, err := s.sink.Store(sub.Attachment.OriginalName, sub.Attachment.Content)
		if err != nil {
			return nil, fmt.Errorf("failed to store attachment: %w", err)
		}
		resource.File = storedName
		if resource.Title == "" {
			resource.Title = sub.Attachment.OriginalName
		}
	}

	if err := s.store.Append(resource); err != nil {
		return nil, fmt.Errorf("failed to append resource: %w", err)
	}

	return &resource, nil
}

// SplitTags turns a comma-separated tags field into a list, trimming
// whitespace and discarding empty segments. The result is never nil so
// tags always serialize as a JSON array.
func SplitTags(raw string) []string {
	tags := make([]string, 0)
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
