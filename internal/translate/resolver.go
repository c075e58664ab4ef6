package translate

import "context"

// voiceLanguages is the set of language codes the speech synthesizer
// has voices for. Emitting anything outside this set would make
// synthesis fail downstream.
var voiceLanguages = map[string]bool{
	"en": true, "hi": true, "ta": true, "te": true,
	"kn": true, "ml": true, "mr": true, "gu": true,
	"bn": true, "ur": true, "ne": true, "pa": true,
}

// FallbackLanguage is used whenever detection fails or lands outside
// the supported voice set.
const FallbackLanguage = "en"

// ResolveVoice maps a transcript onto a synthesizable language code.
// Any detector error, an unknown outcome, or a code without a voice
// collapses deterministically to the fallback.
func ResolveVoice(ctx context.Context, d Detector, text string) string {
	det, err := d.Detect(ctx, text)
	if err != nil || !det.Known {
		return FallbackLanguage
	}
	if !voiceLanguages[det.Code] {
		return FallbackLanguage
	}
	return det.Code
}
