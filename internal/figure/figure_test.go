package figure

import (
	"bytes"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-fourier-series/internal/harmonics"
	"github.com/tphakala/go-fourier-series/internal/preset"
	"github.com/tphakala/go-fourier-series/internal/render"
	"github.com/tphakala/go-fourier-series/internal/window"
)

const (
	testWidth   = 480
	testHeight  = 360
	testSamples = 256
)

func squareRequest(f render.Format) Request {
	w := harmonics.NewSquare(1, 2*math.Pi)
	return Request{
		Provider:  w.Provider,
		Reference: w.Reference,
		Period:    2 * math.Pi,
		Start:     -math.Pi,
		End:       math.Pi,
		Harmonics: 10,
		Samples:   testSamples,
		Width:     testWidth,
		Height:    testHeight,
		Format:    f,
	}
}

func TestRenderSinglePNG(t *testing.T) {
	data, err := Render(squareRequest(render.FormatPNG))
	require.NoError(t, err)

	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, testWidth, cfg.Width)
	assert.Equal(t, testHeight, cfg.Height)
}

func TestRenderLadderSVG(t *testing.T) {
	req := squareRequest(render.FormatSVG)
	req.Ladder = []int{1, 2, 5, 10}

	data, err := Render(req)
	require.NoError(t, err)
	svg := string(data)
	assert.True(t, strings.Contains(svg, "<svg"), "no svg root element")
	for _, title := range []string{"N = 1", "N = 2", "N = 5", "N = 10"} {
		assert.Contains(t, svg, title)
	}
}

func TestRenderTaperedLadder(t *testing.T) {
	req := squareRequest(render.FormatPNG)
	req.Ladder = []int{5, 50}
	req.Taper = window.Spec{Shape: window.ShapeLanczos}

	data, err := Render(req)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestRenderErrors(t *testing.T) {
	t.Run("nil provider", func(t *testing.T) {
		req := squareRequest(render.FormatPNG)
		req.Provider = nil
		_, err := Render(req)
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("negative ladder count", func(t *testing.T) {
		req := squareRequest(render.FormatPNG)
		req.Ladder = []int{1, -3}
		_, err := Render(req)
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("inverted interval", func(t *testing.T) {
		req := squareRequest(render.FormatPNG)
		req.Start, req.End = req.End, req.Start
		_, err := Render(req)
		assert.Error(t, err)
	})
}

func TestFromWaveform(t *testing.T) {
	w, err := preset.Builtin("sawtooth")
	require.NoError(t, err)

	req := FromWaveform(w, preset.DefaultRender())
	assert.Equal(t, "sawtooth", req.Title)
	assert.Equal(t, w.Period, req.Period)
	assert.Equal(t, w.Harmonics, req.Harmonics)
	assert.NotNil(t, req.Provider)
	assert.NotNil(t, req.Reference)

	req.Format = render.FormatPNG
	req.Samples = testSamples
	req.Width, req.Height = testWidth, testHeight
	data, err := Render(req)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
