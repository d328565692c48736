package catalog

import "strings"

// Query holds the optional listing predicates. An empty value imposes no
// constraint for that dimension; supplied predicates are combined with AND.
type Query struct {
	Text string // case-insensitive substring of title or description
	Type string // case-insensitive exact match
	Tag  string // case-insensitive membership in tags
}

// Filter returns the resources matching every supplied predicate,
// preserving their relative order. The result is never nil.
func Filter(resources []Resource, query Query) []Resource {
	matched := make([]Resource, 0, len(resources))
	for _, r := range resources {
		if matches(r, query) {
			matched = append(matched, r)
		}
	}
	return matched
}

func matches(r Resource, q Query) bool {
	if q.Text != "" {
		term := strings.ToLower(q.Text)
		if !strings.Contains(strings.ToLower(r.Title), term) &&
			!strings.Contains(strings.ToLower(r.Description), term) {
			return false
		}
	}
	if q.Type != "" && !strings.EqualFold(r.Type, q.Type) {
		return false
	}
	if q.Tag != "" && !containsFold(r.Tags, q.Tag) {
		return false
	}
	return true
}

func containsFold(tags []string, tag string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
