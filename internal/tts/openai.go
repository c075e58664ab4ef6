package tts

import (
	"context"
	"fmt"
	"io"

	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements speech synthesis using the OpenAI speech
// API. The voice is language-agnostic; the model speaks whatever
// language the input text is in.
type OpenAIProvider struct {
	client *openai.Client
}

// NewOpenAIProvider creates an OpenAI TTS provider.
func NewOpenAIProvider(apiKey string) *OpenAIProvider {
	return &OpenAIProvider{client: openai.NewClient(apiKey)}
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Synthesize renders text as MP3 bytes.
func (p *OpenAIProvider) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	if text == "" {
		// The speech API rejects empty input; an empty transcript
		// still yields an (empty) artifact.
		return nil, nil
	}

	resp, err := p.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.TTSModel1,
		Input:          text,
		Voice:          openai.VoiceAlloy,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI speech error for language %q: %w", lang, err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read OpenAI speech response: %w", err)
	}
	return audio, nil
}
