package querypool

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"
)

// Pool is the materialized set of queries for one keyword. Queries is
// fixed after construction and shuffled once; Used grows monotonically
// as callers draw batches.
type Pool struct {
	Keyword        string
	ParsedRegion   string
	ParsedIndustry string
	Queries        []string
	Used           map[string]struct{}
}

// New builds one query pool for a keyword: parses region/industry, crosses
// them with industry variants and attribute suffixes per spec §4.1, then
// shuffles once with a seed derived from the keyword so repeated runs for
// the same keyword are reproducible without biasing any one region.
func New(keyword string) *Pool {
	region, industry := Parse(keyword)
	queries := buildQueries(keyword, region, industry)

	seed := int64(fnvHash(keyword))
	rand.New(rand.NewSource(seed)).Shuffle(len(queries), func(i, j int) {
		queries[i], queries[j] = queries[j], queries[i]
	})

	return &Pool{
		Keyword:        keyword,
		ParsedRegion:   region,
		ParsedIndustry: industry,
		Queries:        queries,
		Used:           make(map[string]struct{}),
	}
}

func fnvHash(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}

// buildQueries crosses region x industry-variant, region x industry-variant
// x attribute-suffix, keyword x attribute-suffix, industry-variant x
// "corporate-form + site:co.jp", and region x list-keyword, per spec §4.1.
func buildQueries(keyword, region, industry string) []string {
	seen := make(map[string]struct{})
	var queries []string

	add := func(q string) {
		q = strings.TrimSpace(q)
		if q == "" {
			return
		}
		if _, ok := seen[q]; ok {
			return
		}
		seen[q] = struct{}{}
		queries = append(queries, q)
	}

	regions := []string{""}
	if region != "" {
		regions = ExpandRegion(region)
	}
	industryVariants := ExpandIndustry(industry)

	for _, r := range regions {
		for _, iv := range industryVariants {
			add(joinNonEmpty(r, iv))

			for _, attr := range attributeSuffixes {
				add(joinNonEmpty(r, iv, attr))
			}
		}
		for _, lk := range listKeywords {
			if r != "" {
				add(joinNonEmpty(r, lk))
			}
		}
	}

	for _, attr := range attributeSuffixes {
		add(joinNonEmpty(keyword, attr))
	}

	for _, iv := range industryVariants {
		for _, marker := range CorporateFormMarkers {
			add(fmt.Sprintf("%s %s site:co.jp", marker, iv))
		}
	}

	return queries
}

func joinNonEmpty(parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " ")
}

// NextBatch returns up to size unused queries, in the pool's (already
// shuffled) insertion order, and marks them used. usedElsewhere lets a
// caller fold in queries it generated itself (e.g. the initial-round
// fixed patterns) so the pool does not hand them out again.
func (p *Pool) NextBatch(size int, usedElsewhere map[string]struct{}) []string {
	var batch []string
	for _, q := range p.Queries {
		if len(batch) >= size {
			break
		}
		if _, used := p.Used[q]; used {
			continue
		}
		if usedElsewhere != nil {
			if _, used := usedElsewhere[q]; used {
				p.Used[q] = struct{}{}
				continue
			}
		}
		p.Used[q] = struct{}{}
		batch = append(batch, q)
	}
	return batch
}
