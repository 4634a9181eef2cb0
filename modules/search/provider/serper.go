package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/yamada-labo/prospectline/modules/search/ports"
)

const serperEndpoint = "https://google.serper.dev/search"

// searchTimeout is the per-call timeout from spec §5 (30s for the search
// provider).
const searchTimeout = 30 * time.Second

// SerperClient implements ports.SearchProvider against the Serper.dev
// Google-search API, the same provider the original implementation's
// services/serper.py wraps.
type SerperClient struct {
	apiKey          string
	resultsPerQuery int
	httpClient      *http.Client
}

// NewSerperClient creates a new Serper-backed search provider.
func NewSerperClient(apiKey string, resultsPerQuery int) *SerperClient {
	if resultsPerQuery <= 0 {
		resultsPerQuery = 100
	}
	return &SerperClient{
		apiKey:          apiKey,
		resultsPerQuery: resultsPerQuery,
		httpClient:      &http.Client{Timeout: searchTimeout},
	}
}

type serperRequest struct {
	Query string `json:"q"`
	Page  int    `json:"page"`
	Num   int    `json:"num"`
}

type serperOrganicResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

type serperResponse struct {
	Organic []serperOrganicResult `json:"organic"`
}

// Search requests one page of organic results for query.
func (c *SerperClient) Search(ctx context.Context, query string, page int) ([]ports.RawResult, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("serper: API key not configured")
	}

	body, err := json.Marshal(serperRequest{Query: query, Page: page, Num: c.resultsPerQuery})
	if err != nil {
		return nil, fmt.Errorf("serper: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, serperEndpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("serper: build request: %w", err)
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("serper: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serper: unexpected status %d", resp.StatusCode)
	}

	var parsed serperResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("serper: decode response: %w", err)
	}

	results := make([]ports.RawResult, 0, len(parsed.Organic))
	for _, r := range parsed.Organic {
		results = append(results, ports.RawResult{Title: r.Title, Link: r.Link, Snippet: r.Snippet})
	}
	return results, nil
}
