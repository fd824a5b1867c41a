// Package figure composes synthesis and rendering into finished images:
// a Request names a waveform and a view, Render returns encoded bytes.
// Both the CLI and the HTTP render jobs go through this package so a
// preset file, a command line and an API body all produce the same image.
package figure

import (
	"errors"
	"fmt"

	fourier "github.com/tphakala/go-fourier-series"
	"github.com/tphakala/go-fourier-series/internal/harmonics"
	"github.com/tphakala/go-fourier-series/internal/preset"
	"github.com/tphakala/go-fourier-series/internal/render"
	"github.com/tphakala/go-fourier-series/internal/window"
)

// ErrInvalidRequest is returned for requests that cannot describe a figure.
var ErrInvalidRequest = errors.New("invalid figure request")

// Request describes one figure: the waveform, the view interval and grid,
// and the output canvas. A non-empty Ladder renders one panel per harmonic
// count; otherwise a single panel at Harmonics is drawn.
type Request struct {
	// Provider yields the waveform coefficients. Required.
	Provider harmonics.Provider

	// Reference is the exact time-domain function, drawn dashed behind
	// the approximation when non-nil.
	Reference func(t float64) float64

	// Title overrides the default single-panel title "N = <n>".
	Title string

	Period     float64
	Start, End float64
	Harmonics  int
	Ladder     []int
	Samples    int
	Taper      window.Spec

	Width  int
	Height int
	Format render.Format
}

// order is the synthesis truncation order: the largest ladder count, or
// Harmonics for single-panel requests.
func (r *Request) order() int {
	if len(r.Ladder) == 0 {
		return r.Harmonics
	}
	n := 0
	for _, c := range r.Ladder {
		if c > n {
			n = c
		}
	}
	return n
}

// FromWaveform seeds a request from a waveform definition and render
// settings. The caller picks the format and may set a ladder or override
// any field before rendering.
func FromWaveform(w *preset.Waveform, rs preset.RenderSettings) Request {
	return Request{
		Provider:  w.Provider(),
		Reference: w.Reference(),
		Title:     w.Name,
		Period:    w.Period,
		Start:     w.Interval[0],
		End:       w.Interval[1],
		Harmonics: w.Harmonics,
		Samples:   rs.Samples,
		Taper:     w.Taper,
		Width:     rs.Width,
		Height:    rs.Height,
	}
}

// Render synthesizes the partial sums and encodes the figure.
func Render(req Request) ([]byte, error) {
	if req.Provider == nil {
		return nil, fmt.Errorf("%w: coefficient provider is required", ErrInvalidRequest)
	}
	for _, n := range req.Ladder {
		if n < 0 {
			return nil, fmt.Errorf("%w: negative ladder count %d", ErrInvalidRequest, n)
		}
	}

	taper := ""
	if req.Taper.Shape != window.ShapeNone {
		taper = req.Taper.String()
	}
	config := fourier.Config{
		Provider:  fourier.Provider(req.Provider),
		Period:    req.Period,
		Harmonics: req.order(),
		Start:     req.Start,
		End:       req.End,
		Samples:   req.Samples,
		Taper:     taper,
		EnableFFT: true,
		Parallel:  true,
	}
	s, err := fourier.New(&config)
	if err != nil {
		return nil, err
	}

	x := s.Points()
	var reference []float64
	if req.Reference != nil {
		reference = make([]float64, len(x))
		for i, t := range x {
			reference[i] = req.Reference(t)
		}
	}

	o := render.Options{Width: req.Width, Height: req.Height, Format: req.Format}

	if len(req.Ladder) > 0 {
		byCount, err := s.SampleLadder(req.Ladder)
		if err != nil {
			return nil, err
		}
		panels := render.LadderPanels(x, byCount, req.Ladder, reference)
		return render.LadderGrid(panels, o)
	}

	samples, err := s.Sample()
	if err != nil {
		return nil, err
	}
	title := req.Title
	if title == "" {
		title = fmt.Sprintf("N = %d", req.Harmonics)
	}
	return render.Single(render.Panel{
		Title:     title,
		X:         x,
		Approx:    samples,
		Reference: reference,
	}, o)
}
