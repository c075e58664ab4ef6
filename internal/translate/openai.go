package translate

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements translation via a chat completion. Useful
// when the public translate endpoint is blocked or rate limited.
type OpenAIProvider struct {
	client *openai.Client
}

// NewOpenAIProvider creates an OpenAI translation provider.
func NewOpenAIProvider(apiKey string) *OpenAIProvider {
	return &OpenAIProvider{client: openai.NewClient(apiKey)}
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Translate renders text into targetLang.
func (p *OpenAIProvider) Translate(ctx context.Context, text, targetLang string) (string, error) {
	if text == "" {
		return "", nil
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: fmt.Sprintf("You are a translator. Translate the user's text into the language with ISO 639-1 code %q. Reply with the translation only.", targetLang),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: text,
			},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("OpenAI returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Detect infers the language of text with a short classification prompt.
func (p *OpenAIProvider) Detect(ctx context.Context, text string) (Detection, error) {
	if text == "" {
		return Detection{}, nil
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "Identify the language of the user's text. Reply with its ISO 639-1 code only, e.g. \"hi\". Reply \"und\" if unsure.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: text,
			},
		},
		Temperature: 0,
	})
	if err != nil {
		return Detection{}, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Detection{}, fmt.Errorf("OpenAI returned no choices")
	}

	code := strings.ToLower(strings.Trim(strings.TrimSpace(resp.Choices[0].Message.Content), `"`))
	if code == "" || code == "und" || len(code) > 3 {
		return Detection{}, nil
	}
	return Detection{Code: code, Known: true}, nil
}
