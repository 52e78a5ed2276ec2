// Package export writes sample traces to formats understood by general
// audio tools.
package export

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"gonum.org/v1/gonum/floats"
)

const (
	bitDepth  = 16
	pcmFormat = 1
	fullScale = 1<<(bitDepth-1) - 1
)

var (
	// ErrNoSamples is returned for an empty trace.
	ErrNoSamples = errors.New("export: no samples")
	// ErrInvalidWAV is returned when the input is not a RIFF/WAVE stream.
	ErrInvalidWAV = errors.New("export: invalid WAV file")
)

// WriteWAV stores in as a mono 16-bit PCM WAV stream. Values are scaled so
// that peak maps to full scale and clipped beyond it. A peak <= 0 uses the
// largest absolute value of in.
func WriteWAV(w io.WriteSeeker, in []float64, sampleRate int, peak float64) error {
	if len(in) == 0 {
		return ErrNoSamples
	}
	if sampleRate <= 0 {
		return fmt.Errorf("export: invalid sample rate %d", sampleRate)
	}
	if peak <= 0 {
		peak = math.Max(floats.Max(in), -floats.Min(in))
	}
	gain := 0.0
	if peak > 0 {
		gain = fullScale / peak
	}

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           make([]int, len(in)),
		SourceBitDepth: bitDepth,
	}
	for i, v := range in {
		buf.Data[i] = int(math.Round(math.Max(-fullScale, math.Min(fullScale, v*gain))))
	}

	enc := wav.NewEncoder(w, sampleRate, bitDepth, 1, pcmFormat)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("encoding WAV: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finishing WAV: %w", err)
	}
	return nil
}

// ReadWAV reads the first channel of a PCM WAV stream scaled to [-1, 1]
// and returns it with the sample rate.
func ReadWAV(r io.ReadSeeker) ([]float64, int, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, 0, ErrInvalidWAV
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("reading WAV PCM data: %w", err)
	}
	channels := int(dec.NumChans)
	if channels < 1 {
		return nil, 0, ErrInvalidWAV
	}
	scale := 1 / float64(int(1)<<(dec.BitDepth-1)-1)

	out := make([]float64, len(buf.Data)/channels)
	for i := range out {
		out[i] = float64(buf.Data[i*channels]) * scale
	}
	return out, int(dec.SampleRate), nil
}
