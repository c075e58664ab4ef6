package tts

import "context"

// Synthesizer defines the interface for text-to-speech providers.
type Synthesizer interface {
	// Synthesize renders text as spoken audio (MP3 bytes) in the
	// given language. Unsupported language codes surface as errors.
	Synthesize(ctx context.Context, text, lang string) ([]byte, error)

	// Name returns the name of the provider (e.g., "google", "openai").
	Name() string
}
