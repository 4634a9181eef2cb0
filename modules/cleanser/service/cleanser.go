package service

import (
	"context"
	"net/url"
	"strings"

	"github.com/yamada-labo/prospectline/modules/cleanser/model"
	"github.com/yamada-labo/prospectline/modules/cleanser/ports"
	searchmodel "github.com/yamada-labo/prospectline/modules/search/model"
	"go.uber.org/zap"
)

const (
	// DefaultBatchSize is B from §4.3: candidates per chat-completion call.
	DefaultBatchSize = 50
	// DefaultMaxRetries is R from §4.3: retries per batch before it is dropped.
	DefaultMaxRetries = 2
	// temperature is held low for stable, deterministic-leaning output.
	temperature = 0.1
)

// Cleanser rewrites search candidates to canonical legal-entity names via
// a batched chat-completion call, then drops everything that still fails
// the deterministic invalidity predicate.
type Cleanser struct {
	chat       ports.ChatCompleter
	batchSize  int
	maxRetries int
	log        *zap.Logger
}

// NewCleanser builds a Cleanser. A non-positive batchSize falls back to
// DefaultBatchSize and a negative maxRetries to DefaultMaxRetries; a zero
// maxRetries means a single attempt per batch. chat may be nil: per spec, the LLM
// credential is optional, and a nil ChatCompleter makes Cleanse skip the
// chat-completion call entirely and pass candidates straight through the
// deterministic normalization/invalidity gate instead.
func NewCleanser(chat ports.ChatCompleter, batchSize, maxRetries int, log *zap.Logger) *Cleanser {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if maxRetries < 0 {
		maxRetries = DefaultMaxRetries
	}
	return &Cleanser{chat: chat, batchSize: batchSize, maxRetries: maxRetries, log: log}
}

// Cleanse processes candidates in batches of up to batchSize, concatenating
// surviving entries in batch order. A batch that exhausts its retries is
// dropped entirely rather than falling back to its raw, uncleansed input.
func (c *Cleanser) Cleanse(ctx context.Context, candidates []*searchmodel.Candidate, keyword string, existingDomains []string) []*model.Cleansed {
	if c.chat == nil {
		return c.passThrough(candidates, existingDomains)
	}

	var out []*model.Cleansed

	for start := 0; start < len(candidates); start += c.batchSize {
		end := min(start+c.batchSize, len(candidates))
		batch := candidates[start:end]

		cleansed, ok := c.cleanseBatchWithRetry(ctx, batch, keyword, existingDomains)
		if !ok {
			if c.log != nil {
				c.log.Error("cleanse batch exhausted retries, dropping batch",
					zap.Int("batch_size", len(batch)))
			}
			continue
		}
		out = append(out, cleansed...)
	}

	return out
}

// passThrough is the no-LLM-configured path: candidates still clear the
// deterministic normalizer and invalidity predicate, and are still
// deduplicated by domain against existingDomains and the rest of the
// batch, but no chat-completion call is made.
func (c *Cleanser) passThrough(candidates []*searchmodel.Candidate, existingDomains []string) []*model.Cleansed {
	seenDomains := make(map[string]struct{}, len(existingDomains)+len(candidates))
	for _, d := range existingDomains {
		seenDomains[d] = struct{}{}
	}

	out := make([]*model.Cleansed, 0, len(candidates))
	for _, cand := range candidates {
		name := NormalizeCompanyName(cand.CompanyName)
		if name == "" || IsInvalidCompanyName(name) {
			continue
		}

		domain := cand.Domain
		if domain == "" {
			domain = extractDomain(cand.URL)
		}
		if domain == "" {
			continue
		}
		if _, dup := seenDomains[domain]; dup {
			continue
		}
		seenDomains[domain] = struct{}{}

		out = append(out, &model.Cleansed{
			CompanyName: name,
			URL:         cand.URL,
			Domain:      domain,
		})
	}

	return out
}

func (c *Cleanser) cleanseBatchWithRetry(ctx context.Context, batch []*searchmodel.Candidate, keyword string, existingDomains []string) ([]*model.Cleansed, bool) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		cleansed, err := c.cleanseBatch(ctx, batch, keyword, existingDomains)
		if err == nil {
			return cleansed, true
		}
		lastErr = err
		if c.log != nil {
			c.log.Warn("cleanse batch attempt failed",
				zap.Int("attempt", attempt+1), zap.Int("max_attempts", c.maxRetries+1), zap.Error(err))
		}
	}
	_ = lastErr
	return nil, false
}

func (c *Cleanser) cleanseBatch(ctx context.Context, batch []*searchmodel.Candidate, keyword string, existingDomains []string) ([]*model.Cleansed, error) {
	userPrompt, err := buildUserPrompt(batch, keyword, existingDomains)
	if err != nil {
		return nil, err
	}

	raw, err := c.chat.Complete(ctx, systemPrompt, userPrompt, temperature)
	if err != nil {
		return nil, err
	}

	envelope, err := parseEnvelope(raw)
	if err != nil {
		return nil, err
	}

	seenDomains := make(map[string]struct{}, len(envelope.CleanedCompanies))
	result := make([]*model.Cleansed, 0, len(envelope.CleanedCompanies))
	for _, entry := range envelope.CleanedCompanies {
		name := strings.TrimSpace(entry.CompanyName)
		link := strings.TrimSpace(entry.URL)
		if name == "" || link == "" {
			continue
		}

		name = NormalizeCompanyName(name)
		if IsInvalidCompanyName(name) {
			continue
		}

		domain := strings.TrimSpace(entry.Domain)
		if domain == "" {
			domain = extractDomain(link)
		}
		if _, dup := seenDomains[domain]; dup {
			continue
		}
		seenDomains[domain] = struct{}{}

		result = append(result, &model.Cleansed{
			CompanyName:    name,
			URL:            link,
			Domain:         domain,
			RelevanceScore: entry.RelevanceScore,
		})
	}

	return result, nil
}

func extractDomain(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
}
