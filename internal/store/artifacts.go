package store

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when an artifact id has no stored audio.
var ErrNotFound = errors.New("artifact not found")

type artifact struct {
	Path      string
	Language  string
	CreatedAt time.Time
}

// Store keeps synthesized audio artifacts on disk under random,
// collision-free identifiers. It is append-only: artifacts are never
// overwritten or mutated, and are retrievable until the optional
// retention sweep evicts them.
type Store struct {
	dir string

	mu        sync.Mutex
	artifacts map[string]*artifact
}

// New creates a Store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create artifact directory: %w", err)
	}
	return &Store{
		dir:       dir,
		artifacts: make(map[string]*artifact),
	}, nil
}

// Save writes audio bytes under a fresh identifier and returns it.
// role names the artifact's purpose (trans for the original voice, tts
// for the translated voice) and kind the request source (upload,
// youtube, video); both prefix the id for debuggability.
func (s *Store) Save(role, kind, lang string, data []byte) (string, error) {
	id := fmt.Sprintf("%s_%s_%s.mp3", role, kind, uuid.New().String())
	path := filepath.Join(s.dir, id)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write artifact: %w", err)
	}

	s.mu.Lock()
	s.artifacts[id] = &artifact{
		Path:      path,
		Language:  lang,
		CreatedAt: time.Now(),
	}
	s.mu.Unlock()

	return id, nil
}

// Open resolves an artifact id to its on-disk path.
func (s *Store) Open(id string) (string, error) {
	// Reject anything that could escape the artifact directory.
	if id != filepath.Base(id) || strings.HasPrefix(id, ".") {
		return "", ErrNotFound
	}

	s.mu.Lock()
	art, ok := s.artifacts[id]
	s.mu.Unlock()
	if !ok {
		return "", ErrNotFound
	}

	if _, err := os.Stat(art.Path); err != nil {
		return "", ErrNotFound
	}
	return art.Path, nil
}

// Language reports the language code an artifact was synthesized in.
func (s *Store) Language(id string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	art, ok := s.artifacts[id]
	if !ok {
		return "", false
	}
	return art.Language, true
}

// StartRetention begins a background sweep evicting artifacts older
// than ttl. A zero ttl keeps the baseline behavior of unbounded
// retention and starts nothing. The returned stop function ends the
// sweep.
func (s *Store) StartRetention(ttl time.Duration) (stop func()) {
	if ttl <= 0 {
		return func() {}
	}

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(ttl / 2)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				s.evictOlderThan(ttl)
			}
		}
	}()
	return func() { close(done) }
}

func (s *Store) evictOlderThan(ttl time.Duration) {
	cutoff := time.Now().Add(-ttl)

	s.mu.Lock()
	var expired []*artifact
	for id, art := range s.artifacts {
		if art.CreatedAt.Before(cutoff) {
			expired = append(expired, art)
			delete(s.artifacts, id)
		}
	}
	s.mu.Unlock()

	for _, art := range expired {
		if err := os.Remove(art.Path); err != nil && !os.IsNotExist(err) {
			log.Printf("[Store] Failed to evict %s: %v", art.Path, err)
		}
	}
}
