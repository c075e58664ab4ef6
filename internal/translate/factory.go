package translate

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// CreateProvider creates a translation provider based on environment
// configuration. Both providers also implement Detector.
func CreateProvider() (Translator, Detector, error) {
	providerName := strings.ToLower(os.Getenv("TRANSLATE_PROVIDER"))

	// Default to the public Google endpoint if not specified.
	if providerName == "" {
		providerName = "google"
		log.Printf("[Translate Factory] TRANSLATE_PROVIDER not set, defaulting to 'google'")
	}

	switch providerName {
	case "google":
		log.Printf("[Translate Factory] Creating Google Translate provider")
		p := NewGoogleProvider("")
		return p, p, nil
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
		}
		log.Printf("[Translate Factory] Creating OpenAI translation provider")
		p := NewOpenAIProvider(apiKey)
		return p, p, nil
	default:
		return nil, nil, fmt.Errorf("unsupported translation provider: %s. Supported: google, openai", providerName)
	}
}
