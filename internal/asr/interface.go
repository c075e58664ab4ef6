package asr

import (
	"context"

	"github.com/312006Swetha/speech-recognition/internal/audio"
)

// Recognizer defines the interface for speech-to-text providers.
// Implementations are stateless per call from the orchestrator's
// viewpoint but may hold device or model state internally; wrap with
// Serialized before sharing across requests.
type Recognizer interface {
	// Recognize decodes one audio chunk into text.
	Recognize(ctx context.Context, chunk audio.Chunk) (string, error)

	// Name returns the name of the provider (e.g., "whisper", "openai").
	Name() string
}
