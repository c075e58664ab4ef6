package pipeline

import "fmt"

// Stage identifies which pipeline stage a failure came from. Six
// external collaborators can fail independently; the caller-visible
// error names the one that did.
type Stage string

const (
	StageSource      Stage = "source_acquisition"
	StageConversion  Stage = "media_conversion"
	StageRecognition Stage = "recognition"
	StageTranslation Stage = "translation"
	StageSynthesis   Stage = "synthesis"
)

// Artifact roles for synthesis failures, so a transcript-voice failure
// is distinguishable from a translation-voice failure.
const (
	ArtifactTranscript  = "transcript"
	ArtifactTranslation = "translation"
)

// StageError wraps a collaborator failure with the stage (and, for
// synthesis, the artifact) it occurred in. A stage error aborts the
// request's pipeline; there is no partial-success path.
type StageError struct {
	Stage    Stage
	Artifact string
	Err      error
}

func (e *StageError) Error() string {
	if e.Artifact != "" {
		return fmt.Sprintf("%s (%s artifact): %v", e.Stage, e.Artifact, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// SourceError marks an acquisition failure (bad upload, unreachable
// URL) coming from outside the pipeline core.
func SourceError(err error) *StageError {
	return &StageError{Stage: StageSource, Err: err}
}
