package preset

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-fourier-series/internal/expr"
	"github.com/tphakala/go-fourier-series/internal/harmonics"
	"github.com/tphakala/go-fourier-series/internal/window"
)

const (
	testFilename  = "presets.hcl"
	testTolerance = 1e-12
)

const testSource = `
waveform "soft_square" {
  kind      = "square"
  amplitude = 2
  period    = 2 * pi
  interval  = [-pi, pi]
  harmonics = 50
  taper     = "kaiser:8.6"
}

waveform "custom_saw" {
  dc   = "0"
  term = "i*pow(-1, n)/(pi*n)"
}

render {
  samples = 500
  ladder  = [1, 5, 25]
  width   = 640
  height  = 480
  format  = "SVG"
}
`

func TestLoadBytes_Waveforms(t *testing.T) {
	lib, err := LoadBytes([]byte(testSource), testFilename)
	require.NoError(t, err)

	assert.Equal(t, []string{"soft_square", "custom_saw"}, lib.Names())

	sq, ok := lib.Waveform("soft_square")
	require.True(t, ok)
	assert.Equal(t, "square", sq.Kind)
	assert.InDelta(t, 2.0, sq.Amplitude, testTolerance)
	assert.InDelta(t, 2*math.Pi, sq.Period, testTolerance)
	assert.InDelta(t, -math.Pi, sq.Interval[0], testTolerance)
	assert.InDelta(t, math.Pi, sq.Interval[1], testTolerance)
	assert.Equal(t, 50, sq.Harmonics)
	assert.Equal(t, window.ShapeKaiser, sq.Taper.Shape)
	assert.InDelta(t, 8.6, sq.Taper.Beta, testTolerance)
	require.NotNil(t, sq.Provider())
	require.NotNil(t, sq.Reference())

	// fundamental of an amplitude-2 square: c1 = -4i/π
	c1 := sq.Provider()(1)
	assert.InDelta(t, 0, real(c1), testTolerance)
	assert.InDelta(t, -4/math.Pi, imag(c1), testTolerance)

	saw, ok := lib.Waveform("custom_saw")
	require.True(t, ok)
	assert.Empty(t, saw.Kind)
	assert.Equal(t, "i*pow(-1, n)/(pi*n)", saw.Term)
	assert.Nil(t, saw.Reference())
	assert.InDelta(t, 2*math.Pi, saw.Period, testTolerance)
	assert.Equal(t, 100, saw.Harmonics)
}

func TestLoadBytes_RenderBlock(t *testing.T) {
	lib, err := LoadBytes([]byte(testSource), testFilename)
	require.NoError(t, err)

	r := lib.Render()
	assert.Equal(t, 500, r.Samples)
	assert.Equal(t, []int{1, 5, 25}, r.Ladder)
	assert.Equal(t, 640, r.Width)
	assert.Equal(t, 480, r.Height)
	assert.Equal(t, FormatSVG, r.Format)

	// returned settings are a copy
	r.Ladder[0] = 99
	assert.Equal(t, []int{1, 5, 25}, lib.Render().Ladder)
}

func TestLoadBytes_AppliesDefaults(t *testing.T) {
	src := `
waveform "sq" {
  kind = "square"
}
`
	lib, err := LoadBytes([]byte(src), testFilename)
	require.NoError(t, err)

	w, ok := lib.Waveform("sq")
	require.True(t, ok)
	assert.InDelta(t, 1.0, w.Amplitude, testTolerance)
	assert.InDelta(t, 2*math.Pi, w.Period, testTolerance)
	assert.InDelta(t, -math.Pi, w.Interval[0], testTolerance)
	assert.InDelta(t, math.Pi, w.Interval[1], testTolerance)
	assert.Equal(t, 100, w.Harmonics)
	assert.Equal(t, window.ShapeNone, w.Taper.Shape)

	assert.Equal(t, DefaultRender(), lib.Render())
}

func TestLoadBytes_PulseDuty(t *testing.T) {
	src := `
waveform "narrow" {
  kind = "pulse"
  duty = 0.25
}
`
	lib, err := LoadBytes([]byte(src), testFilename)
	require.NoError(t, err)

	w, ok := lib.Waveform("narrow")
	require.True(t, ok)
	assert.InDelta(t, 0.25, w.Duty, testTolerance)
	assert.InDelta(t, 0.25, real(w.Provider()(0)), testTolerance)
}

func TestLoadBytes_Invalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"duplicate name", `
waveform "w" {
  kind = "square"
}
waveform "w" {
  kind = "sawtooth"
}
`},
		{"unknown kind", `
waveform "w" {
  kind = "wiggle"
}
`},
		{"unknown taper", `
waveform "w" {
  kind  = "square"
  taper = "blackman"
}
`},
		{"kind and term", `
waveform "w" {
  kind = "square"
  term = "1/n"
}
`},
		{"neither kind nor term", `
waveform "w" {
  harmonics = 10
}
`},
		{"dc with kind", `
waveform "w" {
  kind = "square"
  dc   = "1"
}
`},
		{"duty without pulse", `
waveform "w" {
  kind = "square"
  duty = 0.5
}
`},
		{"duty out of range", `
waveform "w" {
  kind = "pulse"
  duty = 1.5
}
`},
		{"negative period", `
waveform "w" {
  kind   = "square"
  period = -1
}
`},
		{"inverted interval", `
waveform "w" {
  kind     = "square"
  interval = [pi, -pi]
}
`},
		{"negative harmonics", `
waveform "w" {
  kind      = "square"
  harmonics = -3
}
`},
		{"interval arity", `
waveform "w" {
  kind     = "square"
  interval = [0, 1, 2]
}
`},
		{"empty ladder", `
render {
  ladder = []
}
`},
		{"bad format", `
render {
  format = "bmp"
}
`},
		{"tiny sample count", `
render {
  samples = 1
}
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadBytes([]byte(tt.src), testFilename)
			assert.ErrorIs(t, err, ErrInvalidPreset)
		})
	}
}

func TestLoadBytes_BadTermExpression(t *testing.T) {
	src := `
waveform "w" {
  term = "n**2"
}
`
	_, err := LoadBytes([]byte(src), testFilename)
	assert.ErrorIs(t, err, expr.ErrBadExpression)
}

func TestLoadBytes_MalformedHCL(t *testing.T) {
	_, err := LoadBytes([]byte(`waveform "w" {`), testFilename)
	assert.Error(t, err)
}

func TestLoadBytes_UnknownAttribute(t *testing.T) {
	src := `
waveform "w" {
  kind      = "square"
  frequency = 440
}
`
	_, err := LoadBytes([]byte(src), testFilename)
	assert.Error(t, err)
}

// TestWaveform_SpectrumMatchesClosedForm checks an expression-defined
// sawtooth against the built-in closed form.
func TestWaveform_SpectrumMatchesClosedForm(t *testing.T) {
	lib, err := LoadBytes([]byte(testSource), testFilename)
	require.NoError(t, err)

	w, ok := lib.Waveform("custom_saw")
	require.True(t, ok)

	const n = 6
	got, err := w.Spectrum(n)
	require.NoError(t, err)
	want := harmonics.Amplitudes(harmonics.NewSawtooth(1, 2*math.Pi).Provider, n)

	assert.InDelta(t, want.DC, got.DC, testTolerance)
	for k := range n {
		assert.InDelta(t, want.Cos[k], got.Cos[k], testTolerance, "Cos[%d]", k)
		assert.InDelta(t, want.Sin[k], got.Sin[k], testTolerance, "Sin[%d]", k)
	}
}

// TestWaveform_SpectrumTaperApplied checks the Fejér ramp lands on the
// projected amplitudes.
func TestWaveform_SpectrumTaperApplied(t *testing.T) {
	src := `
waveform "damped" {
  kind  = "square"
  taper = "fejer"
}
`
	lib, err := LoadBytes([]byte(src), testFilename)
	require.NoError(t, err)
	w, _ := lib.Waveform("damped")

	const n = 4
	got, err := w.Spectrum(n)
	require.NoError(t, err)
	raw := harmonics.Amplitudes(w.Provider(), n)
	weights := []float64{0.8, 0.6, 0.4, 0.2}

	for k := range n {
		assert.InDelta(t, raw.Sin[k]*weights[k], got.Sin[k], testTolerance, "Sin[%d]", k)
	}
}

func TestWaveform_SpectrumNonFinite(t *testing.T) {
	src := `
waveform "w" {
  term = "log(n-1)"
}
`
	lib, err := LoadBytes([]byte(src), testFilename)
	require.NoError(t, err)
	w, _ := lib.Waveform("w")

	_, err = w.Spectrum(3)
	assert.ErrorIs(t, err, ErrInvalidPreset)
}

func TestWaveform_SpectrumNegativeCount(t *testing.T) {
	lib, err := LoadBytes([]byte(testSource), testFilename)
	require.NoError(t, err)
	w, _ := lib.Waveform("soft_square")

	_, err = w.Spectrum(-1)
	assert.ErrorIs(t, err, ErrInvalidPreset)
}

func TestLoad_Directory(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "a.hcl", `
waveform "a" {
  kind = "square"
}
`)
	writePreset(t, dir, "b.hcl", `
waveform "b" {
  kind = "triangle"
}
`)

	lib, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, lib.Names())
}

func TestLoad_DuplicateAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "a.hcl", `
waveform "w" {
  kind = "square"
}
`)
	writePreset(t, dir, "b.hcl", `
waveform "w" {
  kind = "triangle"
}
`)

	_, err := Load(dir)
	assert.ErrorIs(t, err, ErrInvalidPreset)
}

func TestLoad_MissingPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.hcl"))
	assert.Error(t, err)
}

func TestLoad_NoPaths(t *testing.T) {
	lib, err := Load()
	require.NoError(t, err)
	assert.Empty(t, lib.Names())
	assert.Equal(t, DefaultRender(), lib.Render())
}

func writePreset(t *testing.T, dir, name, src string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644))
}
