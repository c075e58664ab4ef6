package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// GoogleProvider implements translation and language detection using
// the public Google Translate endpoint (the same backend the original
// frontend relied on). One call returns both the rendered text and the
// detected source language.
type GoogleProvider struct {
	baseURL string
	client  *http.Client
}

// NewGoogleProvider creates a Google Translate provider. baseURL is
// overridable for tests; empty selects the public endpoint.
func NewGoogleProvider(baseURL string) *GoogleProvider {
	if baseURL == "" {
		baseURL = "https://translate.googleapis.com"
	}
	return &GoogleProvider{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Name returns the provider name.
func (p *GoogleProvider) Name() string {
	return "google"
}

// Translate renders text into targetLang.
func (p *GoogleProvider) Translate(ctx context.Context, text, targetLang string) (string, error) {
	if text == "" {
		return "", nil
	}
	translated, _, err := p.call(ctx, text, targetLang)
	return translated, err
}

// Detect returns the source language the translate backend inferred.
func (p *GoogleProvider) Detect(ctx context.Context, text string) (Detection, error) {
	if text == "" {
		return Detection{}, nil
	}
	_, lang, err := p.call(ctx, text, "en")
	if err != nil {
		return Detection{}, err
	}
	if lang == "" {
		return Detection{}, nil
	}
	return Detection{Code: lang, Known: true}, nil
}

// call hits the translate_a/single endpoint. The response is a nested
// JSON array: index 0 holds the translated segments, index 2 the
// detected source language.
func (p *GoogleProvider) call(ctx context.Context, text, targetLang string) (string, string, error) {
	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", "auto")
	q.Set("tl", targetLang)
	q.Set("dt", "t")
	q.Set("q", text)

	endpoint := p.baseURL + "/translate_a/single?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("failed to reach translate endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", fmt.Errorf("failed to read translate response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("translate endpoint returned status %d: %s", resp.StatusCode, string(body))
	}

	var payload []json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", "", fmt.Errorf("failed to parse translate response: %w", err)
	}
	if len(payload) == 0 {
		return "", "", fmt.Errorf("empty translate response")
	}

	var segments [][]json.RawMessage
	if err := json.Unmarshal(payload[0], &segments); err != nil {
		return "", "", fmt.Errorf("failed to parse translate segments: %w", err)
	}

	var sb strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		var part string
		if err := json.Unmarshal(seg[0], &part); err != nil {
			continue
		}
		sb.WriteString(part)
	}

	var detected string
	if len(payload) > 2 {
		// Best effort: absent or malformed detection stays empty and
		// the caller falls back.
		_ = json.Unmarshal(payload[2], &detected)
	}

	return sb.String(), detected, nil
}
