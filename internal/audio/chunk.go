package audio

// Waveform is normalized audio ready for recognition: mono 16-bit PCM
// samples at a fixed rate.
type Waveform struct {
	Samples    []int16
	SampleRate int
}

// DefaultSampleRate is the canonical recognizer input rate in Hz.
const DefaultSampleRate = 16000

// DefaultWindowSeconds is the recognition window length per chunk.
const DefaultWindowSeconds = 30

// Chunk is one bounded window of a waveform. Index defines processing
// order; concatenating chunks in index order reproduces the source
// waveform exactly.
type Chunk struct {
	Index      int
	Samples    []int16
	SampleRate int
}

// Duration returns the chunk length in seconds.
func (c Chunk) Duration() float64 {
	if c.SampleRate == 0 {
		return 0
	}
	return float64(len(c.Samples)) / float64(c.SampleRate)
}

// Split partitions a waveform into consecutive windows of
// windowSeconds each. The final chunk holds the remainder and may be
// shorter; it is never padded or dropped. An empty waveform yields no
// chunks.
func Split(w Waveform, windowSeconds int) []Chunk {
	if len(w.Samples) == 0 {
		return nil
	}
	size := windowSeconds * w.SampleRate
	if size <= 0 {
		return nil
	}

	chunks := make([]Chunk, 0, (len(w.Samples)+size-1)/size)
	for i := 0; i < len(w.Samples); i += size {
		end := i + size
		if end > len(w.Samples) {
			end = len(w.Samples)
		}
		chunks = append(chunks, Chunk{
			Index:      len(chunks),
			Samples:    w.Samples[i:end],
			SampleRate: w.SampleRate,
		})
	}
	return chunks
}
