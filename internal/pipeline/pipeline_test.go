package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/312006Swetha/speech-recognition/internal/audio"
	"github.com/312006Swetha/speech-recognition/internal/store"
	"github.com/312006Swetha/speech-recognition/internal/translate"
)

type fakeConverter struct {
	err error
}

func (f fakeConverter) ToPCM16k(_ context.Context, inputPath string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return inputPath, nil
}

type fakeRecognizer struct {
	texts  []string
	failAt int // chunk index to fail on, -1 for never
	order  []int
}

func (f *fakeRecognizer) Recognize(_ context.Context, chunk audio.Chunk) (string, error) {
	f.order = append(f.order, chunk.Index)
	if chunk.Index == f.failAt {
		return "", errors.New("decoder exploded")
	}
	if chunk.Index < len(f.texts) {
		return f.texts[chunk.Index], nil
	}
	return fmt.Sprintf("text%d", chunk.Index), nil
}

func (f *fakeRecognizer) Name() string { return "fake" }

type fakeTranslator struct {
	err   error
	got   string
	lang  string
	calls int
}

func (f *fakeTranslator) Translate(_ context.Context, text, targetLang string) (string, error) {
	f.calls++
	f.got, f.lang = text, targetLang
	if f.err != nil {
		return "", f.err
	}
	if text == "" {
		return "", nil
	}
	return "[" + targetLang + "] " + text, nil
}

func (f *fakeTranslator) Name() string { return "fake" }

type fakeDetector struct {
	det translate.Detection
	err error
}

func (f fakeDetector) Detect(_ context.Context, _ string) (translate.Detection, error) {
	return f.det, f.err
}

type synthCall struct {
	text string
	lang string
}

type fakeSynthesizer struct {
	failOnCall int // 1-based call number to fail on, 0 for never
	calls      []synthCall
}

func (f *fakeSynthesizer) Synthesize(_ context.Context, text, lang string) ([]byte, error) {
	f.calls = append(f.calls, synthCall{text, lang})
	if f.failOnCall == len(f.calls) {
		return nil, fmt.Errorf("no voice for language %q", lang)
	}
	return []byte("AUDIO:" + lang), nil
}

func (f *fakeSynthesizer) Name() string { return "fake" }

type fixture struct {
	pipeline   *Pipeline
	recognizer *fakeRecognizer
	translator *fakeTranslator
	synth      *fakeSynthesizer
	artifacts  *store.Store
	dir        string
}

func newFixture(t *testing.T, samples int) *fixture {
	t.Helper()
	dir := t.TempDir()
	artifacts, err := store.New(dir)
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}

	rec := &fakeRecognizer{failAt: -1}
	tr := &fakeTranslator{}
	syn := &fakeSynthesizer{}
	det := fakeDetector{det: translate.Detection{Code: "hi", Known: true}}

	p := New(fakeConverter{}, rec, tr, det, syn, artifacts, 30)
	p.loadWaveform = func(string) (audio.Waveform, error) {
		return audio.Waveform{
			Samples:    make([]int16, samples),
			SampleRate: audio.DefaultSampleRate,
		}, nil
	}

	return &fixture{pipeline: p, recognizer: rec, translator: tr, synth: syn, artifacts: artifacts, dir: dir}
}

func TestRunEndToEnd(t *testing.T) {
	// 65 seconds at 16 kHz with a 30s window: chunks of 30s, 30s, 5s.
	f := newFixture(t, audio.DefaultSampleRate*65)
	f.recognizer.texts = []string{"hello", "world", "end"}

	result, err := f.pipeline.Run(context.Background(), "in.webm", "upload", "hi")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Transcription != "hello world end" {
		t.Errorf("transcription = %q, want %q", result.Transcription, "hello world end")
	}
	if got := fmt.Sprint(f.recognizer.order); got != "[0 1 2]" {
		t.Errorf("recognition order = %s, want [0 1 2]", got)
	}
	if result.Translation != "[hi] hello world end" {
		t.Errorf("translation = %q", result.Translation)
	}
	if result.VoiceLanguage != "hi" {
		t.Errorf("voice language = %q, want hi", result.VoiceLanguage)
	}

	if result.TranscriptAudioID == result.TranslationAudioID {
		t.Errorf("artifact ids must be distinct, both %q", result.TranscriptAudioID)
	}
	for _, id := range []string{result.TranscriptAudioID, result.TranslationAudioID} {
		if _, err := f.artifacts.Open(id); err != nil {
			t.Errorf("artifact %q not retrievable: %v", id, err)
		}
	}
	if !strings.HasPrefix(result.TranscriptAudioID, "trans_upload_") {
		t.Errorf("transcript artifact id = %q", result.TranscriptAudioID)
	}
	if !strings.HasPrefix(result.TranslationAudioID, "tts_upload_") {
		t.Errorf("translation artifact id = %q", result.TranslationAudioID)
	}

	if len(f.synth.calls) != 2 {
		t.Fatalf("synthesizer called %d times, want 2", len(f.synth.calls))
	}
	if f.synth.calls[0].lang != "hi" || f.synth.calls[0].text != "hello world end" {
		t.Errorf("transcript voice call = %+v", f.synth.calls[0])
	}
	if f.synth.calls[1].lang != "hi" || f.synth.calls[1].text != "[hi] hello world end" {
		t.Errorf("translation voice call = %+v", f.synth.calls[1])
	}
}

func TestTranscriptOrderingIsNotIdempotent(t *testing.T) {
	f := newFixture(t, audio.DefaultSampleRate*65)
	f.recognizer.texts = []string{"end", "hello", "world"}

	result, err := f.pipeline.Run(context.Background(), "in.webm", "upload", "en")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Transcription == "hello world end" {
		t.Fatal("reordered chunk outputs must change the transcript")
	}
	if result.Transcription != "end hello world" {
		t.Fatalf("transcription = %q, want chunk order preserved", result.Transcription)
	}
}

func TestEmptyWaveformIdentity(t *testing.T) {
	f := newFixture(t, 0)

	result, err := f.pipeline.Run(context.Background(), "in.webm", "upload", "hi")
	if err != nil {
		t.Fatalf("empty input must not fail: %v", err)
	}
	if result.Transcription != "" {
		t.Errorf("transcription = %q, want empty", result.Transcription)
	}
	if result.Translation != "" {
		t.Errorf("translation = %q, want empty", result.Translation)
	}
	if f.translator.calls != 1 {
		t.Errorf("translator called %d times, want 1 (empty-to-empty identity)", f.translator.calls)
	}
	if len(f.recognizer.order) != 0 {
		t.Errorf("recognizer called for %d chunks, want 0", len(f.recognizer.order))
	}
	// Both artifacts still exist, just silent.
	if result.TranscriptAudioID == "" || result.TranslationAudioID == "" {
		t.Errorf("expected two artifact ids, got %q and %q",
			result.TranscriptAudioID, result.TranslationAudioID)
	}
}

func TestChunkFailureAbortsTranscription(t *testing.T) {
	f := newFixture(t, audio.DefaultSampleRate*65)
	f.recognizer.failAt = 1

	_, err := f.pipeline.Run(context.Background(), "in.webm", "upload", "en")
	var stageErr *StageError
	if !errors.As(err, &stageErr) {
		t.Fatalf("err = %v, want StageError", err)
	}
	if stageErr.Stage != StageRecognition {
		t.Fatalf("stage = %s, want %s", stageErr.Stage, StageRecognition)
	}
	if !strings.Contains(stageErr.Error(), "chunk 1") {
		t.Errorf("error should name the failing chunk: %v", stageErr)
	}
	// No best-effort partial transcript: nothing synthesized or stored.
	if len(f.synth.calls) != 0 {
		t.Errorf("synthesizer called %d times after recognition failure", len(f.synth.calls))
	}
	if entries, _ := os.ReadDir(f.dir); len(entries) != 0 {
		t.Errorf("%d artifacts stored after recognition failure, want 0", len(entries))
	}
}

func TestConversionFailure(t *testing.T) {
	f := newFixture(t, 100)
	f.pipeline.Converter = fakeConverter{err: errors.New("ffmpeg failed: exit status 1")}

	_, err := f.pipeline.Run(context.Background(), "in.webm", "upload", "en")
	var stageErr *StageError
	if !errors.As(err, &stageErr) || stageErr.Stage != StageConversion {
		t.Fatalf("err = %v, want conversion stage error", err)
	}
}

func TestTranslationFailure(t *testing.T) {
	f := newFixture(t, audio.DefaultSampleRate*5)
	f.translator.err = errors.New("quota exceeded")

	_, err := f.pipeline.Run(context.Background(), "in.webm", "upload", "en")
	var stageErr *StageError
	if !errors.As(err, &stageErr) || stageErr.Stage != StageTranslation {
		t.Fatalf("err = %v, want translation stage error", err)
	}
	if len(f.synth.calls) != 0 {
		t.Errorf("synthesis ran after translation failure")
	}
}

func TestTwoArtifactIndependence(t *testing.T) {
	f := newFixture(t, audio.DefaultSampleRate*5)
	f.recognizer.texts = []string{"hello"}
	f.synth.failOnCall = 2 // translation voice fails, transcript voice succeeds

	_, err := f.pipeline.Run(context.Background(), "in.webm", "upload", "zz")
	var stageErr *StageError
	if !errors.As(err, &stageErr) {
		t.Fatalf("err = %v, want StageError", err)
	}
	if stageErr.Stage != StageSynthesis {
		t.Fatalf("stage = %s, want %s", stageErr.Stage, StageSynthesis)
	}
	if stageErr.Artifact != ArtifactTranslation {
		t.Fatalf("artifact = %q, want %q", stageErr.Artifact, ArtifactTranslation)
	}

	// The transcript artifact was already produced and stored.
	entries, err2 := os.ReadDir(f.dir)
	if err2 != nil {
		t.Fatalf("ReadDir: %v", err2)
	}
	if len(entries) != 1 || !strings.HasPrefix(entries[0].Name(), "trans_") {
		t.Fatalf("expected exactly the transcript artifact on disk, got %v", entries)
	}
}

func TestTranscriptArtifactFailureIsDistinguishable(t *testing.T) {
	f := newFixture(t, audio.DefaultSampleRate*5)
	f.synth.failOnCall = 1

	_, err := f.pipeline.Run(context.Background(), "in.webm", "upload", "en")
	var stageErr *StageError
	if !errors.As(err, &stageErr) {
		t.Fatalf("err = %v, want StageError", err)
	}
	if stageErr.Artifact != ArtifactTranscript {
		t.Fatalf("artifact = %q, want %q", stageErr.Artifact, ArtifactTranscript)
	}
}

func TestDetectionFallbackToEnglish(t *testing.T) {
	f := newFixture(t, audio.DefaultSampleRate*5)
	f.pipeline.Detector = fakeDetector{err: errors.New("detector down")}

	result, err := f.pipeline.Run(context.Background(), "in.webm", "upload", "hi")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.VoiceLanguage != "en" {
		t.Fatalf("voice language = %q, want fallback en", result.VoiceLanguage)
	}
}

func TestCancelledContextStopsRecognition(t *testing.T) {
	f := newFixture(t, audio.DefaultSampleRate*65)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.pipeline.Run(ctx, "in.webm", "upload", "en")
	var stageErr *StageError
	if !errors.As(err, &stageErr) || stageErr.Stage != StageRecognition {
		t.Fatalf("err = %v, want recognition stage error from cancellation", err)
	}
	if len(f.recognizer.order) != 0 {
		t.Errorf("recognizer invoked %d times after cancellation", len(f.recognizer.order))
	}
}
