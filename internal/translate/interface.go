package translate

import "context"

// Translator defines the interface for translation providers.
type Translator interface {
	// Translate renders text into the target language. Empty input is
	// a valid identity case and must return empty output without error.
	Translate(ctx context.Context, text, targetLang string) (string, error)

	// Name returns the name of the provider (e.g., "google", "openai").
	Name() string
}

// Detection is the outcome of language detection. Known reports
// whether the detector produced a usable code at all, so callers can
// tell "confidently English" apart from "detection failed".
type Detection struct {
	Code  string
	Known bool
}

// Detector infers the language of a piece of text.
type Detector interface {
	// Detect returns the detected language code, or an error when the
	// underlying collaborator fails. Callers must treat any error as
	// an unknown language.
	Detect(ctx context.Context, text string) (Detection, error)
}
