package asr

import (
	"context"
	"sync"

	"github.com/312006Swetha/speech-recognition/internal/audio"
)

// Serialized wraps a Recognizer with a mutex so that a model bound to
// one accelerator device is never invoked concurrently. Other pipeline
// stages of concurrent requests still run in parallel; only the
// recognition call itself is single file.
func Serialized(r Recognizer) Recognizer {
	return &serialized{inner: r}
}

type serialized struct {
	mu    sync.Mutex
	inner Recognizer
}

func (s *serialized) Recognize(ctx context.Context, chunk audio.Chunk) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.inner.Recognize(ctx, chunk)
}

func (s *serialized) Name() string {
	return s.inner.Name()
}
