package asr

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/312006Swetha/speech-recognition/internal/audio"
)

// OpenAIProvider implements speech recognition using the OpenAI
// transcription API.
type OpenAIProvider struct {
	client *openai.Client
}

// NewOpenAIProvider creates an OpenAI Whisper API provider.
func NewOpenAIProvider(apiKey string) *OpenAIProvider {
	return &OpenAIProvider{client: openai.NewClient(apiKey)}
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Recognize sends one chunk as an in-memory WAV to the transcription API.
func (p *OpenAIProvider) Recognize(ctx context.Context, chunk audio.Chunk) (string, error) {
	wav, err := audio.EncodeWAV(chunk)
	if err != nil {
		return "", fmt.Errorf("failed to encode chunk %d: %w", chunk.Index, err)
	}

	resp, err := p.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: fmt.Sprintf("chunk_%03d.wav", chunk.Index),
		Reader:   bytes.NewReader(wav),
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI transcription error: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}
