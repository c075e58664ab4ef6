package media

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os/exec"
	"path/filepath"
	"strings"
)

// Converter normalizes arbitrary media containers into the canonical
// recognizer input: 16 kHz mono 16-bit PCM WAV. The actual decode and
// resample is delegated to ffmpeg; this type's job is invocation
// discipline — build the output path, run the tool, and surface its
// stderr on failure instead of returning empty audio.
type Converter struct {
	ffmpegPath string
}

// NewConverter creates a Converter using the given ffmpeg binary.
// An empty path falls back to "ffmpeg" on PATH.
func NewConverter(ffmpegPath string) *Converter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &Converter{ffmpegPath: ffmpegPath}
}

// ToPCM16k converts inputPath to a 16 kHz mono WAV next to the input
// and returns the output path. One intermediate file is written per
// invocation; nothing is cached across requests.
func (c *Converter) ToPCM16k(ctx context.Context, inputPath string) (string, error) {
	outPath := strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".wav"

	cmd := exec.CommandContext(ctx, c.ffmpegPath,
		"-y",
		"-i", inputPath,
		"-ar", "16000",
		"-ac", "1",
		outPath,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	log.Printf("[Media] Converting %s -> %s", inputPath, outPath)
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("ffmpeg failed: %w: %s", err, tail(stderr.String(), 500))
	}
	return outPath, nil
}

// tail returns the last n characters of s; ffmpeg puts the useful
// diagnostic at the end of its stderr.
func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
