package tts

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// CreateProvider creates a speech synthesizer based on environment
// configuration.
func CreateProvider() (Synthesizer, error) {
	providerName := strings.ToLower(os.Getenv("TTS_PROVIDER"))

	// Default to the Google endpoint if not specified.
	if providerName == "" {
		providerName = "google"
		log.Printf("[TTS Factory] TTS_PROVIDER not set, defaulting to 'google'")
	}

	switch providerName {
	case "google":
		log.Printf("[TTS Factory] Creating Google TTS provider")
		return NewGoogleProvider(""), nil
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
		}
		log.Printf("[TTS Factory] Creating OpenAI TTS provider")
		return NewOpenAIProvider(apiKey), nil
	default:
		return nil, fmt.Errorf("unsupported TTS provider: %s. Supported: google, openai", providerName)
	}
}
