package tts

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

// maxSegmentRunes is the per-request text limit the translate_tts
// endpoint enforces. Longer transcripts are split on word boundaries
// and the resulting MP3 frames concatenated.
const maxSegmentRunes = 180

// GoogleProvider implements speech synthesis via the Google Translate
// TTS endpoint, the same voice backend the original service used.
type GoogleProvider struct {
	baseURL string
	client  *http.Client
}

// NewGoogleProvider creates a Google TTS provider. baseURL is
// overridable for tests; empty selects the public endpoint.
func NewGoogleProvider(baseURL string) *GoogleProvider {
	if baseURL == "" {
		baseURL = "https://translate.google.com"
	}
	return &GoogleProvider{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// Name returns the provider name.
func (p *GoogleProvider) Name() string {
	return "google"
}

// Synthesize renders text in lang as MP3 bytes.
func (p *GoogleProvider) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		// The endpoint rejects empty input; an empty transcript still
		// yields an (empty) artifact.
		return nil, nil
	}

	var out bytes.Buffer
	for i, seg := range segmentText(text, maxSegmentRunes) {
		audio, err := p.fetchSegment(ctx, seg, lang)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		out.Write(audio)
	}
	return out.Bytes(), nil
}

func (p *GoogleProvider) fetchSegment(ctx context.Context, text, lang string) ([]byte, error) {
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("tl", lang)
	q.Set("q", text)

	endpoint := p.baseURL + "/translate_tts?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach TTS endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read TTS response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		// A 404 here is how the endpoint reports an unsupported
		// language code.
		return nil, fmt.Errorf("TTS endpoint returned status %d for language %q: %s",
			resp.StatusCode, lang, truncate(string(body), 200))
	}
	return body, nil
}

// segmentText splits text into pieces of at most maxRunes runes,
// preferring word boundaries.
func segmentText(text string, maxRunes int) []string {
	if utf8.RuneCountInString(text) <= maxRunes {
		return []string{text}
	}

	var segments []string
	words := strings.Fields(text)
	var cur strings.Builder
	curLen := 0
	for _, w := range words {
		wl := utf8.RuneCountInString(w)
		if curLen > 0 && curLen+1+wl > maxRunes {
			segments = append(segments, cur.String())
			cur.Reset()
			curLen = 0
		}
		if curLen > 0 {
			cur.WriteByte(' ')
			curLen++
		}
		cur.WriteString(w)
		curLen += wl
	}
	if cur.Len() > 0 {
		segments = append(segments, cur.String())
	}
	return segments
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
