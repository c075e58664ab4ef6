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

// Downloader fetches best-available audio for a remote video URL via
// yt-dlp and transcodes it to MP3. A bad URL, network failure, or
// unsupported site surfaces as an error carrying yt-dlp's stderr.
type Downloader struct {
	ytdlpPath string
	outDir    string
}

// NewDownloader creates a Downloader writing into outDir. An empty
// binary path falls back to "yt-dlp" on PATH.
func NewDownloader(ytdlpPath, outDir string) *Downloader {
	if ytdlpPath == "" {
		ytdlpPath = "yt-dlp"
	}
	return &Downloader{ytdlpPath: ytdlpPath, outDir: outDir}
}

// FetchAudio downloads the URL's audio track as MP3 and returns the
// local file path. yt-dlp prints the final path after its extract-audio
// postprocessor has moved the file, so the returned path accounts for
// the container swap.
func (d *Downloader) FetchAudio(ctx context.Context, url string) (string, error) {
	outTemplate := filepath.Join(d.outDir, "%(id)s.%(ext)s")

	cmd := exec.CommandContext(ctx, d.ytdlpPath,
		"--no-playlist",
		"-f", "bestaudio/best",
		"-x", "--audio-format", "mp3",
		"--audio-quality", "192K",
		"-o", outTemplate,
		"--print", "after_move:filepath",
		"--no-simulate",
		"--quiet",
		url,
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Printf("[Media] Downloading audio from %s", url)
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("yt-dlp failed: %w: %s", err, tail(stderr.String(), 500))
	}

	path := strings.TrimSpace(stdout.String())
	if path == "" {
		return "", fmt.Errorf("yt-dlp produced no output file for %s", url)
	}
	return path, nil
}
