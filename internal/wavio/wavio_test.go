package wavio

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testRate      = 44100
	testCount     = 512
	testTolerance = 1e-4
)

func testOptions() Options {
	return Options{SampleRate: testRate, BitDepth: bitsPerSample16}
}

func sineSamples(n int, amplitude float64) []float64 {
	out := make([]float64, n)
	for i := range n {
		out[i] = amplitude * math.Sin(2*math.Pi*float64(i)/64)
	}
	return out
}

func constSamples(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func writeTemp(t *testing.T, write func(*os.File) error) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "out.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, write(f))
	require.NoError(t, f.Close())
	return path
}

func readBack(t *testing.T, path string) (rate, channels, bits int, data []int) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	dec := wav.NewDecoder(f)
	require.True(t, dec.IsValidFile(), "invalid WAV file")
	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)
	return buf.Format.SampleRate, buf.Format.NumChannels, int(dec.BitDepth), buf.Data
}

func TestWriteMono_RoundTrip(t *testing.T) {
	samples := sineSamples(testCount, 0.5)
	path := writeTemp(t, func(f *os.File) error {
		return WriteMono(f, samples, testOptions())
	})

	rate, channels, bits, data := readBack(t, path)
	assert.Equal(t, testRate, rate)
	assert.Equal(t, monoChannels, channels)
	assert.Equal(t, bitsPerSample16, bits)
	require.Len(t, data, testCount)

	for i := range samples {
		got := float64(data[i]) / maxInt16
		assert.InDelta(t, samples[i], got, testTolerance, "sample %d", i)
	}
}

func TestWriteMono_24Bit(t *testing.T) {
	samples := sineSamples(testCount, 0.5)
	o := Options{SampleRate: testRate, BitDepth: bitsPerSample24}
	path := writeTemp(t, func(f *os.File) error {
		return WriteMono(f, samples, o)
	})

	_, _, bits, data := readBack(t, path)
	assert.Equal(t, bitsPerSample24, bits)
	require.Len(t, data, testCount)

	for i := range samples {
		got := float64(data[i]) / maxInt24
		assert.InDelta(t, samples[i], got, 1e-6, "sample %d", i)
	}
}

func TestWriteMono_Normalize(t *testing.T) {
	samples := sineSamples(testCount, 0.25)
	o := testOptions()
	o.Normalize = true
	path := writeTemp(t, func(f *os.File) error {
		return WriteMono(f, samples, o)
	})

	_, _, _, data := readBack(t, path)
	var peak float64
	for _, s := range data {
		peak = math.Max(peak, math.Abs(float64(s))/maxInt16)
	}
	assert.InDelta(t, peakTarget, peak, testTolerance)
}

func TestWriteMono_DoesNotMutateInput(t *testing.T) {
	samples := sineSamples(testCount, 0.25)
	original := append([]float64(nil), samples...)
	o := testOptions()
	o.Normalize = true

	writeTemp(t, func(f *os.File) error {
		return WriteMono(f, samples, o)
	})
	assert.Equal(t, original, samples)
}

func TestWriteMono_ClampsOverdrive(t *testing.T) {
	samples := constSamples(16, 1.5)
	path := writeTemp(t, func(f *os.File) error {
		return WriteMono(f, samples, testOptions())
	})

	_, _, _, data := readBack(t, path)
	for i, s := range data {
		assert.Equal(t, int(maxInt16), s, "sample %d", i)
	}
}

func TestWriteMono_NoSamples(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.wav"))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	err = WriteMono(f, nil, testOptions())
	assert.ErrorIs(t, err, ErrNoSamples)
}

func TestWriteStereo_InterleavesChannels(t *testing.T) {
	const n = 32
	left := constSamples(n, 0.5)
	right := constSamples(n, -0.25)
	path := writeTemp(t, func(f *os.File) error {
		return WriteStereo(f, left, right, testOptions())
	})

	_, channels, _, data := readBack(t, path)
	assert.Equal(t, stereoChannels, channels)
	require.Len(t, data, stereoChannels*n)

	assert.InDelta(t, 0.5, float64(data[0])/maxInt16, testTolerance)
	assert.InDelta(t, -0.25, float64(data[1])/maxInt16, testTolerance)
}

func TestWriteStereo_JointNormalization(t *testing.T) {
	const n = 32
	left := constSamples(n, 0.5)
	right := constSamples(n, 0.25)
	o := testOptions()
	o.Normalize = true
	path := writeTemp(t, func(f *os.File) error {
		return WriteStereo(f, left, right, o)
	})

	_, _, _, data := readBack(t, path)
	assert.InDelta(t, peakTarget, float64(data[0])/maxInt16, testTolerance, "left scales to target")
	assert.InDelta(t, peakTarget/2, float64(data[1])/maxInt16, testTolerance, "right keeps relative level")
}

func TestWriteStereo_TruncatesToShorter(t *testing.T) {
	left := sineSamples(100, 0.5)
	right := sineSamples(80, 0.5)
	path := writeTemp(t, func(f *os.File) error {
		return WriteStereo(f, left, right, testOptions())
	})

	_, _, _, data := readBack(t, path)
	assert.Len(t, data, stereoChannels*80)
}

func TestWriteStereo_NoSamples(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.wav"))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	err = WriteStereo(f, nil, sineSamples(8, 1), testOptions())
	assert.ErrorIs(t, err, ErrNoSamples)
}

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		o       Options
		wantErr bool
	}{
		{"valid 16-bit", Options{SampleRate: 44100, BitDepth: 16}, false},
		{"valid 24-bit", Options{SampleRate: 48000, BitDepth: 24}, false},
		{"rate too low", Options{SampleRate: 100, BitDepth: 16}, true},
		{"rate too high", Options{SampleRate: 400000, BitDepth: 16}, true},
		{"8-bit", Options{SampleRate: 44100, BitDepth: 8}, true},
		{"32-bit", Options{SampleRate: 44100, BitDepth: 32}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.o.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFormat)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTile(t *testing.T) {
	tests := []struct {
		name  string
		cycle []float64
		n     int
		want  []float64
	}{
		{"whole cycles plus partial", []float64{1, 2, 3}, 8, []float64{1, 2, 3, 1, 2, 3, 1, 2}},
		{"shorter than cycle", []float64{1, 2, 3}, 2, []float64{1, 2}},
		{"zero length", []float64{1, 2, 3}, 0, []float64{}},
		{"empty cycle", nil, 4, []float64{0, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tile(tt.cycle, tt.n))
		})
	}
}
