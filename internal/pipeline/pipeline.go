package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/312006Swetha/speech-recognition/internal/asr"
	"github.com/312006Swetha/speech-recognition/internal/audio"
	"github.com/312006Swetha/speech-recognition/internal/store"
	"github.com/312006Swetha/speech-recognition/internal/translate"
	"github.com/312006Swetha/speech-recognition/internal/tts"
)

// Converter normalizes an arbitrary media file into 16 kHz mono WAV.
type Converter interface {
	ToPCM16k(ctx context.Context, inputPath string) (string, error)
}

// Result is everything a successful pipeline run hands back to the
// route layer.
type Result struct {
	Transcription      string
	Translation        string
	TranscriptAudioID  string
	TranslationAudioID string
	VoiceLanguage      string
	TargetLanguage     string
}

// Pipeline turns one normalized-ready media file into a transcript, a
// translation, and two stored audio artifacts. Stages run strictly in
// sequence within a request; the recognizer is expected to already be
// serialized across requests.
type Pipeline struct {
	Converter     Converter
	Recognizer    asr.Recognizer
	Translator    translate.Translator
	Detector      translate.Detector
	Synthesizer   tts.Synthesizer
	Artifacts     *store.Store
	WindowSeconds int

	// loadWaveform is swappable in tests; defaults to reading the
	// converter's WAV output.
	loadWaveform func(path string) (audio.Waveform, error)
}

// New wires a Pipeline from its collaborators.
func New(conv Converter, rec asr.Recognizer, tr translate.Translator, det translate.Detector, syn tts.Synthesizer, artifacts *store.Store, windowSeconds int) *Pipeline {
	if windowSeconds <= 0 {
		windowSeconds = audio.DefaultWindowSeconds
	}
	return &Pipeline{
		Converter:     conv,
		Recognizer:    rec,
		Translator:    tr,
		Detector:      det,
		Synthesizer:   syn,
		Artifacts:     artifacts,
		WindowSeconds: windowSeconds,
		loadWaveform:  audio.LoadWAV,
	}
}

// Run executes the full pipeline for one media file. kind labels the
// request source (upload, youtube, video) and ends up in the artifact
// ids for debuggability.
func (p *Pipeline) Run(ctx context.Context, mediaPath, kind, targetLang string) (*Result, error) {
	wavPath, err := p.Converter.ToPCM16k(ctx, mediaPath)
	if err != nil {
		return nil, &StageError{Stage: StageConversion, Err: err}
	}

	waveform, err := p.loadWaveform(wavPath)
	if err != nil {
		return nil, &StageError{Stage: StageConversion, Err: err}
	}

	chunks := audio.Split(waveform, p.WindowSeconds)
	log.Printf("[Pipeline] %s: %d samples -> %d chunks", kind, len(waveform.Samples), len(chunks))

	transcription, err := p.transcribe(ctx, chunks)
	if err != nil {
		return nil, err
	}

	voiceLang := translate.ResolveVoice(ctx, p.Detector, transcription)

	translation, err := p.Translator.Translate(ctx, transcription, targetLang)
	if err != nil {
		return nil, &StageError{Stage: StageTranslation, Err: err}
	}

	transcriptID, err := p.voice(ctx, transcription, voiceLang, "trans", kind, ArtifactTranscript)
	if err != nil {
		return nil, err
	}
	translationID, err := p.voice(ctx, translation, targetLang, "tts", kind, ArtifactTranslation)
	if err != nil {
		return nil, err
	}

	return &Result{
		Transcription:      transcription,
		Translation:        translation,
		TranscriptAudioID:  transcriptID,
		TranslationAudioID: translationID,
		VoiceLanguage:      voiceLang,
		TargetLanguage:     targetLang,
	}, nil
}

// transcribe feeds chunks to the recognizer strictly in index order
// and joins the per-chunk texts with a single space. Order matters for
// transcript correctness, and the recognizer may hold exclusive device
// state, so there is no chunk-level concurrency. The first failing
// chunk aborts the whole transcription.
func (p *Pipeline) transcribe(ctx context.Context, chunks []audio.Chunk) (string, error) {
	texts := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return "", &StageError{Stage: StageRecognition, Err: err}
		}
		text, err := p.Recognizer.Recognize(ctx, chunk)
		if err != nil {
			return "", &StageError{
				Stage: StageRecognition,
				Err:   fmt.Errorf("chunk %d: %w", chunk.Index, err),
			}
		}
		texts = append(texts, text)
	}
	return strings.Join(texts, " "), nil
}

// voice synthesizes one artifact and stores it. Each of the two
// per-request artifacts is independent: a failure here names its
// artifact, and an already-stored transcript artifact survives a later
// translation-voice failure.
func (p *Pipeline) voice(ctx context.Context, text, lang, role, kind, artifact string) (string, error) {
	data, err := p.Synthesizer.Synthesize(ctx, text, lang)
	if err != nil {
		return "", &StageError{Stage: StageSynthesis, Artifact: artifact, Err: err}
	}
	id, err := p.Artifacts.Save(role, kind, lang, data)
	if err != nil {
		return "", &StageError{Stage: StageSynthesis, Artifact: artifact, Err: err}
	}
	return id, nil
}
