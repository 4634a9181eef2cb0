package model

import (
	"net/url"
	"strings"
)

// Candidate is a search result that has passed C2's pre-LLM filter but
// has not yet been cleansed.
type Candidate struct {
	CompanyName string
	URL         string
	Domain      string
	Snippet     string
}

// New builds a Candidate from a raw search result, deriving Domain as the
// authority component of URL, lower-cased, without a "www." prefix.
func New(title, rawURL, snippet string) (*Candidate, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}

	domain := strings.ToLower(parsed.Hostname())
	domain = strings.TrimPrefix(domain, "www.")

	return &Candidate{
		CompanyName: title,
		URL:         rawURL,
		Domain:      domain,
		Snippet:     snippet,
	}, nil
}
