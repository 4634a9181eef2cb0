package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yamada-labo/prospectline/modules/search/ports"
)

type stubProvider struct {
	pages map[string][][]ports.RawResult // query -> pages (1-indexed via page-1)
	calls int
}

func (s *stubProvider) Search(ctx context.Context, query string, page int) ([]ports.RawResult, error) {
	s.calls++
	pages, ok := s.pages[query]
	if !ok || page > len(pages) {
		return nil, nil
	}
	return pages[page-1], nil
}

func TestAggregator_Search_FiltersDenylistedDomains(t *testing.T) {
	provider := &stubProvider{pages: map[string][][]ports.RawResult{
		"東京 IT企業": {{
			{Title: "転職サイトまとめ", Link: "https://indeed.com/jobs/1"},
			{Title: "アルファ株式会社 | 公式サイト", Link: "https://alpha.co.jp/"},
		}},
	}}
	agg := NewAggregator(provider, nil)

	candidates := agg.Search(context.Background(), []string{"東京 IT企業"}, 10, nil, 1)

	require.Len(t, candidates, 1)
	assert.Equal(t, "alpha.co.jp", candidates[0].Domain)
}

func TestAggregator_Search_DedupsAcrossQueries(t *testing.T) {
	provider := &stubProvider{pages: map[string][][]ports.RawResult{
		"query-a": {{{Title: "アルファ株式会社", Link: "https://alpha.co.jp/"}}},
		"query-b": {{{Title: "アルファ株式会社 別ページ", Link: "https://alpha.co.jp/about"}}},
	}}
	agg := NewAggregator(provider, nil)

	candidates := agg.Search(context.Background(), []string{"query-a", "query-b"}, 10, nil, 1)

	assert.Len(t, candidates, 1)
}

func TestAggregator_Search_HonoursExistingDomains(t *testing.T) {
	provider := &stubProvider{pages: map[string][][]ports.RawResult{
		"query-a": {{{Title: "アルファ株式会社", Link: "https://alpha.co.jp/"}}},
	}}
	agg := NewAggregator(provider, nil)
	existing := map[string]struct{}{"alpha.co.jp": {}}

	candidates := agg.Search(context.Background(), []string{"query-a"}, 10, existing, 1)

	assert.Empty(t, candidates)
}

func TestAggregator_Search_StopsAtTargetCount(t *testing.T) {
	provider := &stubProvider{pages: map[string][][]ports.RawResult{
		"query-a": {{
			{Title: "アルファ株式会社", Link: "https://alpha.co.jp/"},
			{Title: "ベータ株式会社", Link: "https://beta.co.jp/"},
			{Title: "ガンマ株式会社", Link: "https://gamma.co.jp/"},
		}},
	}}
	agg := NewAggregator(provider, nil)

	candidates := agg.Search(context.Background(), []string{"query-a"}, 2, nil, 1)

	assert.Len(t, candidates, 2)
}

func TestAggregator_Search_E2_FiltersGovernmentAndRecruitmentNoise(t *testing.T) {
	var results []ports.RawResult
	for i := 0; i < 10; i++ {
		results = append(results, ports.RawResult{Title: "公共団体X", Link: "https://city-x.go.jp/"})
	}
	for i := 0; i < 5; i++ {
		results = append(results, ports.RawResult{Title: "転職情報サイトY", Link: "https://jobsite-y.example.com/"})
	}
	for i := 0; i < 15; i++ {
		results = append(results, ports.RawResult{Title: "株式会社サンプル", Link: "https://sample-company.co.jp/"})
	}

	provider := &stubProvider{pages: map[string][][]ports.RawResult{"X": {results}}}
	agg := NewAggregator(provider, nil)

	candidates := agg.Search(context.Background(), []string{"X"}, 30, nil, 1)

	assert.LessOrEqual(t, len(candidates), 15)
}

func TestAggregator_Search_StopsPagingOnZeroNewCandidates(t *testing.T) {
	provider := &stubProvider{pages: map[string][][]ports.RawResult{
		"query-a": {
			{{Title: "転職まとめ記事", Link: "https://indeed.com/1"}},
			{{Title: "アルファ株式会社", Link: "https://alpha.co.jp/"}},
		},
	}}
	agg := NewAggregator(provider, nil)

	candidates := agg.Search(context.Background(), []string{"query-a"}, 10, nil, 2)

	// page 1 yields zero accepted candidates, so paging stops before page 2
	assert.Empty(t, candidates)
}
