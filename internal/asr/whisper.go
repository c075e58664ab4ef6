package asr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/312006Swetha/speech-recognition/internal/audio"
)

// WhisperProvider implements speech recognition against a local
// whisper.cpp server (the /inference endpoint).
type WhisperProvider struct {
	url    string
	client *http.Client
}

// NewWhisperProvider creates a whisper.cpp server provider.
func NewWhisperProvider(url string) *WhisperProvider {
	return &WhisperProvider{
		url:    strings.TrimSuffix(url, "/") + "/inference",
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

// Name returns the provider name.
func (p *WhisperProvider) Name() string {
	return "whisper"
}

// whisperResponse represents the whisper.cpp server response.
type whisperResponse struct {
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

// Recognize posts one chunk as a WAV upload and returns the decoded text.
func (p *WhisperProvider) Recognize(ctx context.Context, chunk audio.Chunk) (string, error) {
	wav, err := audio.EncodeWAV(chunk)
	if err != nil {
		return "", fmt.Errorf("failed to encode chunk %d: %w", chunk.Index, err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", fmt.Sprintf("chunk_%03d.wav", chunk.Index))
	if err != nil {
		return "", fmt.Errorf("failed to build multipart request: %w", err)
	}
	if _, err := part.Write(wav); err != nil {
		return "", fmt.Errorf("failed to build multipart request: %w", err)
	}
	if err := mw.WriteField("response_format", "json"); err != nil {
		return "", fmt.Errorf("failed to build multipart request: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("failed to build multipart request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach whisper server: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read whisper response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("whisper server returned status %d: %s", resp.StatusCode, string(raw))
	}

	var wr whisperResponse
	if err := json.Unmarshal(raw, &wr); err != nil {
		return "", fmt.Errorf("failed to parse whisper response: %w", err)
	}
	if wr.Error != "" {
		return "", fmt.Errorf("whisper server error: %s", wr.Error)
	}

	text := strings.TrimSpace(wr.Text)
	log.Printf("[Whisper] chunk %d (%.1fs) decoded in %v: %d chars",
		chunk.Index, chunk.Duration(), time.Since(start), len(text))
	return text, nil
}
