package asr

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// CreateRecognizer creates a speech recognizer based on environment
// configuration. The returned recognizer is already wrapped for
// serialized access so callers can share it across requests.
func CreateRecognizer() (Recognizer, error) {
	providerName := strings.ToLower(os.Getenv("ASR_PROVIDER"))

	// Default to a local whisper.cpp server if not specified.
	if providerName == "" {
		providerName = "whisper"
		log.Printf("[ASR Factory] ASR_PROVIDER not set, defaulting to 'whisper'")
	}

	switch providerName {
	case "whisper":
		return createWhisperProvider()
	case "openai":
		return createOpenAIProvider()
	default:
		return nil, fmt.Errorf("unsupported ASR provider: %s. Supported: whisper, openai", providerName)
	}
}

func createWhisperProvider() (Recognizer, error) {
	url := os.Getenv("WHISPER_SERVER_URL")
	if url == "" {
		url = "http://127.0.0.1:8178"
		log.Printf("[ASR Factory] WHISPER_SERVER_URL not set, using default: %s", url)
	}

	log.Printf("[ASR Factory] Creating whisper.cpp server provider")
	return Serialized(NewWhisperProvider(url)), nil
}

func createOpenAIProvider() (Recognizer, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
	}

	log.Printf("[ASR Factory] Creating OpenAI transcription provider")
	return Serialized(NewOpenAIProvider(apiKey)), nil
}
