package ports

import "context"

// ChatCompleter abstracts a single-turn chat-completion call so the batch
// cleansing loop does not depend on a specific LLM provider's SDK.
type ChatCompleter interface {
	// Complete sends systemPrompt and userPrompt at the given temperature
	// and returns the raw assistant text (expected to be a JSON envelope).
	Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float64) (string, error)
}
