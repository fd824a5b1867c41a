// Package wavio writes synthesized waveforms as PCM WAV files.
//
// Samples arrive as float64 in nominal [-1, 1]; they are optionally peak
// normalized, clamped, converted to 16- or 24-bit integers and encoded
// with the go-audio WAV encoder. WriteStereo interleaves two channels for
// A/B listening, partial sum against reference.
package wavio

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/tphakala/simd/f64"
)

var (
	// ErrInvalidFormat is returned for unsupported sample rates or depths.
	ErrInvalidFormat = errors.New("invalid WAV format")

	// ErrNoSamples is returned when there is nothing to write.
	ErrNoSamples = errors.New("no samples")
)

// Options select the PCM encoding.
type Options struct {
	// SampleRate in Hz.
	SampleRate int

	// BitDepth of the output PCM stream, 16 or 24.
	BitDepth int

	// Normalize scales the peak to just below full scale before writing.
	// Without it samples are only clamped.
	Normalize bool
}

// Validate reports whether the options describe an encodable stream.
func (o *Options) Validate() error {
	if o.SampleRate < minSampleRate || o.SampleRate > maxSampleRate {
		return fmt.Errorf("%w: sample rate %d Hz out of range [%d, %d]",
			ErrInvalidFormat, o.SampleRate, minSampleRate, maxSampleRate)
	}
	if o.BitDepth != bitsPerSample16 && o.BitDepth != bitsPerSample24 {
		return fmt.Errorf("%w: bit depth %d (want %d or %d)",
			ErrInvalidFormat, o.BitDepth, bitsPerSample16, bitsPerSample24)
	}
	return nil
}

// WriteMono writes samples as a mono PCM WAV stream.
func WriteMono(w io.WriteSeeker, samples []float64, o Options) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if len(samples) == 0 {
		return ErrNoSamples
	}

	data := prepare(samples, o.Normalize)
	return encode(w, data, monoChannels, o)
}

// WriteStereo writes left and right as an interleaved stereo PCM WAV
// stream. Channels are truncated to the shorter of the two and share one
// normalization factor so their relative level survives.
func WriteStereo(w io.WriteSeeker, left, right []float64, o Options) error {
	if err := o.Validate(); err != nil {
		return err
	}
	n := min(len(left), len(right))
	if n == 0 {
		return ErrNoSamples
	}
	left, right = left[:n], right[:n]

	if o.Normalize {
		scale := normScale(math.Max(peak(left), peak(right)))
		left = scaled(left, scale)
		right = scaled(right, scale)
	}

	interleaved := make([]float64, stereoChannels*n)
	f64.Interleave2(interleaved, left, right)
	return encode(w, interleaved, stereoChannels, o)
}

// Tile repeats one cycle until n samples are produced. The final cycle
// may be cut short.
func Tile(cycle []float64, n int) []float64 {
	out := make([]float64, n)
	if len(cycle) == 0 {
		return out
	}
	for i := 0; i < n; i += len(cycle) {
		copy(out[i:], cycle)
	}
	return out
}

// prepare returns samples ready for conversion, normalized when asked.
// The input slice is never mutated.
func prepare(samples []float64, normalize bool) []float64 {
	if !normalize {
		return samples
	}
	return scaled(samples, normScale(peak(samples)))
}

func peak(samples []float64) float64 {
	var p float64
	for _, s := range samples {
		if a := math.Abs(s); a > p {
			p = a
		}
	}
	return p
}

// normScale maps a peak to the gain that lands it on peakTarget. Silence
// and non-finite peaks pass through unscaled.
func normScale(p float64) float64 {
	if p == 0 || math.IsNaN(p) || math.IsInf(p, 0) {
		return 1
	}
	return peakTarget / p
}

func scaled(samples []float64, scale float64) []float64 {
	out := append([]float64(nil), samples...)
	f64.Scale(out, out, scale)
	return out
}

// encode clamps, denormalizes to integer PCM and writes through the
// go-audio encoder.
func encode(w io.WriteSeeker, interleaved []float64, channels int, o Options) error {
	maxVal := maxInt16
	if o.BitDepth == bitsPerSample24 {
		maxVal = maxInt24
	}

	data := make([]int, len(interleaved))
	for i, s := range interleaved {
		if s > 1.0 {
			s = 1.0
		} else if s < -1.0 {
			s = -1.0
		}
		data[i] = int(s * maxVal)
	}

	enc := wav.NewEncoder(w, o.SampleRate, o.BitDepth, channels, wavFormatPCM)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: o.SampleRate},
		Data:           data,
		SourceBitDepth: o.BitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("writing WAV data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing WAV: %w", err)
	}
	return nil
}
