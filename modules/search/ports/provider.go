package ports

import "context"

// RawResult is one organic result from the external search provider,
// before any filtering or domain extraction.
type RawResult struct {
	Title   string
	Link    string
	Snippet string
}

// SearchProvider pages through an external web-search API. Page numbers
// are 1-indexed; an implementation returns at most one provider page's
// worth of results per call (up to 100 per spec).
type SearchProvider interface {
	Search(ctx context.Context, query string, page int) ([]RawResult, error)
}
