package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port          string
	UploadDir     string
	TTSDir        string
	WindowSeconds int
	FFmpegPath    string
	YtdlpPath     string
	ArtifactTTL   time.Duration
}

// Load loads configuration from environment variables. Provider
// selection (ASR_PROVIDER, TRANSLATE_PROVIDER, TTS_PROVIDER) is read
// by the individual provider factories.
func Load() (*Config, error) {
	cfg := &Config{
		Port:       getEnv("PORT", "5000"),
		UploadDir:  getEnv("UPLOAD_DIR", "uploads"),
		TTSDir:     getEnv("TTS_DIR", "tts_audio"),
		FFmpegPath: getEnv("FFMPEG_PATH", "ffmpeg"),
		YtdlpPath:  getEnv("YTDLP_PATH", "yt-dlp"),
	}

	window := getEnv("CHUNK_WINDOW_SECONDS", "30")
	w, err := strconv.Atoi(window)
	if err != nil || w <= 0 {
		return nil, fmt.Errorf("CHUNK_WINDOW_SECONDS must be a positive integer, got %q", window)
	}
	cfg.WindowSeconds = w

	// Zero keeps artifacts forever (baseline behavior).
	if ttl := os.Getenv("ARTIFACT_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("ARTIFACT_TTL must be a duration like 24h, got %q", ttl)
		}
		cfg.ArtifactTTL = d
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
