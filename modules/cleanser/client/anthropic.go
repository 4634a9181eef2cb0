package client

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// defaultModel is Claude's fast, cheap-per-token tier — batches here are
// classification-and-rewrite, not reasoning, so the cheaper model suffices.
const defaultModel = anthropic.ModelClaude3_5HaikuLatest

const defaultMaxTokens = 4096

// AnthropicChatCompleter implements ports.ChatCompleter against the
// Claude Messages API.
type AnthropicChatCompleter struct {
	client    anthropic.Client
	model     anthropic.Model
	maxTokens int64
}

// NewAnthropicChatCompleter builds a chat completer backed by apiKey. An
// empty model falls back to defaultModel.
func NewAnthropicChatCompleter(apiKey string, model anthropic.Model) *AnthropicChatCompleter {
	if model == "" {
		model = defaultModel
	}
	return &AnthropicChatCompleter{
		client:    anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:     model,
		maxTokens: defaultMaxTokens,
	}
}

// Complete sends a single user turn with systemPrompt as the system
// instruction and returns the concatenated text of the reply.
func (a *AnthropicChatCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float64) (string, error) {
	message, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     a.model,
		MaxTokens: a.maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
		Temperature: anthropic.Float(temperature),
	})
	if err != nil {
		return "", fmt.Errorf("anthropic messages.new: %w", err)
	}

	var text string
	for _, block := range message.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if text == "" {
		return "", fmt.Errorf("anthropic: empty response")
	}
	return text, nil
}
