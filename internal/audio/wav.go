package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// EncodeWAV writes a chunk as a 16-bit PCM mono WAV byte stream so it
// can be posted to HTTP recognizers.
func EncodeWAV(c Chunk) ([]byte, error) {
	var buf bytes.Buffer
	dataSize := len(c.Samples) * 2
	if err := writeWAVHeader(&buf, dataSize, c.SampleRate); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, binary.LittleEndian, c.Samples); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeWAVHeader writes a minimal 44-byte WAV header for 16-bit mono PCM.
func writeWAVHeader(w io.Writer, dataSize, sampleRate int) error {
	totalSize := 36 + dataSize

	if _, err := w.Write([]byte("RIFF")); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(totalSize)); err != nil {
		return err
	}
	if _, err := w.Write([]byte("WAVE")); err != nil {
		return err
	}

	if _, err := w.Write([]byte("fmt ")); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(16)); err != nil { // sub-chunk size
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(1)); err != nil { // PCM format
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(1)); err != nil { // mono
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(sampleRate)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(sampleRate*2)); err != nil { // byte rate
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(2)); err != nil { // block align
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(16)); err != nil { // bits per sample
		return err
	}

	if _, err := w.Write([]byte("data")); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, uint32(dataSize))
}

// LoadWAV reads a 16-bit PCM mono WAV file produced by the normalizer.
// It walks the RIFF chunks so fmt/data do not need to sit at fixed
// offsets (ffmpeg inserts a LIST chunk on some builds).
func LoadWAV(path string) (Waveform, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Waveform{}, fmt.Errorf("failed to read wav file: %w", err)
	}
	return DecodeWAV(raw)
}

// DecodeWAV parses 16-bit PCM mono WAV bytes into a Waveform.
func DecodeWAV(raw []byte) (Waveform, error) {
	if len(raw) < 12 || string(raw[0:4]) != "RIFF" || string(raw[8:12]) != "WAVE" {
		return Waveform{}, fmt.Errorf("not a RIFF/WAVE stream")
	}

	var (
		sampleRate int
		channels   int
		bits       int
		data       []byte
	)

	pos := 12
	for pos+8 <= len(raw) {
		id := string(raw[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(raw[pos+4 : pos+8]))
		body := pos + 8
		if body+size > len(raw) {
			size = len(raw) - body
		}

		switch id {
		case "fmt ":
			if size < 16 {
				return Waveform{}, fmt.Errorf("wav fmt chunk too short (%d bytes)", size)
			}
			format := int(binary.LittleEndian.Uint16(raw[body : body+2]))
			if format != 1 {
				return Waveform{}, fmt.Errorf("unsupported wav format %d, expected PCM", format)
			}
			channels = int(binary.LittleEndian.Uint16(raw[body+2 : body+4]))
			sampleRate = int(binary.LittleEndian.Uint32(raw[body+4 : body+8]))
			bits = int(binary.LittleEndian.Uint16(raw[body+14 : body+16]))
		case "data":
			data = raw[body : body+size]
		}

		pos = body + size
		if size%2 == 1 { // RIFF chunks are word-aligned
			pos++
		}
	}

	if sampleRate == 0 {
		return Waveform{}, fmt.Errorf("wav fmt chunk missing")
	}
	if channels != 1 || bits != 16 {
		return Waveform{}, fmt.Errorf("expected 16-bit mono wav, got %d-bit %d-channel", bits, channels)
	}

	samples := make([]int16, len(data)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(data[i*2 : i*2+2]))
	}

	return Waveform{Samples: samples, SampleRate: sampleRate}, nil
}
