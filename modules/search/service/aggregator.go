package service

import (
	"context"

	"github.com/yamada-labo/prospectline/modules/search/model"
	"github.com/yamada-labo/prospectline/modules/search/ports"
	"go.uber.org/zap"
)

// Aggregator runs queries against an external search provider with
// pre-LLM filtering and cross-query deduplication.
type Aggregator struct {
	provider ports.SearchProvider
	log      *zap.Logger
}

// NewAggregator creates a new search aggregator.
func NewAggregator(provider ports.SearchProvider, log *zap.Logger) *Aggregator {
	return &Aggregator{provider: provider, log: log}
}

// Search pages through queries in order, applying the ordered per-result
// filter and accumulating distinct-domain Candidates until targetCount is
// reached or all queries are exhausted. pagesPerQuery is P from spec §4.2
// (2 for round-0 broad queries, 1 for retry batches).
func (a *Aggregator) Search(ctx context.Context, queries []string, targetCount int, existingDomains map[string]struct{}, pagesPerQuery int) []*model.Candidate {
	seen := make(map[string]struct{}, len(existingDomains))
	for d := range existingDomains {
		seen[d] = struct{}{}
	}

	var candidates []*model.Candidate

	for _, query := range queries {
		if len(candidates) >= targetCount {
			break
		}

		for page := 1; page <= pagesPerQuery; page++ {
			results, err := a.provider.Search(ctx, query, page)
			if err != nil {
				if a.log != nil {
					a.log.Warn("search provider call failed",
						zap.String("query", query), zap.Int("page", page), zap.Error(err))
				}
				break
			}
			if len(results) == 0 {
				break
			}

			added := 0
			for _, r := range results {
				candidate, err := model.New(r.Title, r.Link, r.Snippet)
				if err != nil {
					continue
				}
				if !acceptResult(candidate.Domain, candidate.CompanyName, seen) {
					continue
				}
				seen[candidate.Domain] = struct{}{}
				candidates = append(candidates, candidate)
				added++

				if len(candidates) >= targetCount {
					break
				}
			}

			if len(candidates) >= targetCount {
				break
			}
			if added == 0 {
				// further pages of this query have diminishing yield
				break
			}
		}
	}

	return candidates
}
