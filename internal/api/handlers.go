// Package api serves the waveform catalog and asynchronous render jobs
// over HTTP. Handlers are huma operations; rendering itself runs in the
// jobs worker pool and is polled by the client.
package api

import (
	"context"
	"fmt"
	"math/cmplx"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog/log"

	fourier "github.com/tphakala/go-fourier-series"
	"github.com/tphakala/go-fourier-series/internal/config"
	"github.com/tphakala/go-fourier-series/internal/expr"
	"github.com/tphakala/go-fourier-series/internal/figure"
	"github.com/tphakala/go-fourier-series/internal/harmonics"
	"github.com/tphakala/go-fourier-series/internal/jobs"
	"github.com/tphakala/go-fourier-series/internal/preset"
	"github.com/tphakala/go-fourier-series/internal/render"
	"github.com/tphakala/go-fourier-series/internal/window"
)

// Handler serves waveform and render requests.
type Handler struct {
	library *preset.Library
	jobs    *jobs.Manager
	limits  config.RenderConfig
}

// NewHandler creates a handler over a preset library and a job manager.
func NewHandler(library *preset.Library, manager *jobs.Manager, limits config.RenderConfig) *Handler {
	return &Handler{
		library: library,
		jobs:    manager,
		limits:  limits,
	}
}

// ListWaveforms returns preset-file waveforms followed by the built-in
// kinds not shadowed by a preset of the same name.
func (h *Handler) ListWaveforms(ctx context.Context, _ *struct{}) (*ListWaveformsResponse, error) {
	resp := &ListWaveformsResponse{}
	resp.Body.Waveforms = []WaveformInfo{}

	for _, name := range h.library.Names() {
		w, _ := h.library.Waveform(name)
		resp.Body.Waveforms = append(resp.Body.Waveforms, waveformInfo(w, false))
	}
	for _, name := range preset.BuiltinNames() {
		if _, shadowed := h.library.Waveform(name); shadowed {
			continue
		}
		w, err := preset.Builtin(name)
		if err != nil {
			return nil, huma.Error500InternalServerError("listing built-in waveforms", err)
		}
		resp.Body.Waveforms = append(resp.Body.Waveforms, waveformInfo(w, true))
	}
	return resp, nil
}

// GetCoefficients returns harmonics 1..n of the named waveform in both
// coefficient forms, after the waveform's default taper.
func (h *Handler) GetCoefficients(ctx context.Context, req *GetCoefficientsRequest) (*GetCoefficientsResponse, error) {
	w, err := h.library.Resolve(req.Name)
	if err != nil {
		return nil, huma.Error404NotFound(fmt.Sprintf("no waveform %q", req.Name), err)
	}
	if req.N > h.limits.MaxHarmonics {
		return nil, huma.Error422UnprocessableEntity(
			fmt.Sprintf("n exceeds the harmonic limit %d", h.limits.MaxHarmonics), nil)
	}

	s, err := w.Spectrum(req.N)
	if err != nil {
		return nil, huma.Error400BadRequest("computing coefficients", err)
	}

	resp := &GetCoefficientsResponse{}
	resp.Body.Name = w.Name
	resp.Body.DC = s.DC
	resp.Body.Taper = taperLabel(w.Taper)
	resp.Body.Coefficients = coefficientRows(s)
	return resp, nil
}

// CreateRender validates the request, queues a render job and returns its
// id for polling.
func (h *Handler) CreateRender(ctx context.Context, req *CreateRenderRequest) (*CreateRenderResponse, error) {
	fr, err := h.buildRequest(req)
	if err != nil {
		return nil, err
	}

	contentType := fr.Format.ContentType()
	job, err := h.jobs.Submit(func(ctx context.Context, progress func(int)) ([]byte, string, error) {
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}
		progress(renderStartProgress)
		data, err := figure.Render(fr)
		if err != nil {
			return nil, "", err
		}
		return data, contentType, nil
	})
	if err != nil {
		return nil, huma.Error503ServiceUnavailable("render queue is full, retry later", err)
	}

	log.Info().
		Str("job_id", job.ID).
		Int("harmonics", fr.Harmonics).
		Ints("ladder", fr.Ladder).
		Str("format", fr.Format.String()).
		Msg("render job created")

	resp := &CreateRenderResponse{Status: 202}
	resp.Body.ID = job.ID
	resp.Body.Status = string(job.Status)
	return resp, nil
}

// GetRender reports render job state.
func (h *Handler) GetRender(ctx context.Context, req *GetRenderRequest) (*GetRenderResponse, error) {
	job, ok := h.jobs.Get(req.ID)
	if !ok {
		return nil, huma.Error404NotFound("render job not found or expired", nil)
	}

	resp := &GetRenderResponse{}
	resp.Body.ID = job.ID
	resp.Body.Status = string(job.Status)
	resp.Body.Progress = job.Progress
	resp.Body.Error = job.Error
	if job.Status == jobs.StatusCompleted {
		url := fmt.Sprintf("/api/renders/%s/image", job.ID)
		resp.Body.ImageURL = &url
	}
	return resp, nil
}

// GetRenderImage serves the finished image bytes.
func (h *Handler) GetRenderImage(ctx context.Context, req *GetRenderImageRequest) (*GetRenderImageResponse, error) {
	data, contentType, ok := h.jobs.Image(req.ID)
	if !ok {
		job, exists := h.jobs.Get(req.ID)
		if !exists {
			return nil, huma.Error404NotFound("render job not found or expired", nil)
		}
		return nil, huma.Error409Conflict(
			fmt.Sprintf("render not completed, status is %s", job.Status), nil)
	}
	return &GetRenderImageResponse{ContentType: contentType, Body: data}, nil
}

// buildRequest resolves the waveform and folds body overrides over its
// defaults, enforcing the configured limits.
func (h *Handler) buildRequest(req *CreateRenderRequest) (figure.Request, error) {
	body := &req.Body

	var fr figure.Request
	switch {
	case body.Waveform != "" && body.Term != "":
		return figure.Request{}, huma.Error400BadRequest("waveform and term are mutually exclusive", nil)

	case body.Waveform != "":
		w, err := h.library.Resolve(body.Waveform)
		if err != nil {
			return figure.Request{}, huma.Error404NotFound(fmt.Sprintf("no waveform %q", body.Waveform), err)
		}
		fr = figure.FromWaveform(w, h.library.Render())

	case body.Term != "":
		p, err := compileTerm(body)
		if err != nil {
			return figure.Request{}, err
		}
		rs := h.library.Render()
		fr = figure.Request{
			Provider:  p,
			Title:     body.Term,
			Period:    fourier.DefaultPeriod,
			Start:     fourier.DefaultIntervalStart,
			End:       fourier.DefaultIntervalEnd,
			Harmonics: fourier.DefaultHarmonics,
			Samples:   rs.Samples,
			Width:     rs.Width,
			Height:    rs.Height,
		}

	default:
		return figure.Request{}, huma.Error400BadRequest("waveform or term is required", nil)
	}

	if body.Period > 0 {
		fr.Period = body.Period
	}
	if len(body.Interval) == 2 {
		fr.Start, fr.End = body.Interval[0], body.Interval[1]
	}
	if body.Harmonics > 0 {
		fr.Harmonics = body.Harmonics
	}
	if len(body.Ladder) > 0 {
		fr.Ladder = append([]int(nil), body.Ladder...)
	}
	if body.Samples > 0 {
		fr.Samples = body.Samples
	}
	if body.Taper != "" {
		spec, err := window.ParseSpec(body.Taper)
		if err != nil {
			return figure.Request{}, huma.Error400BadRequest("invalid taper", err)
		}
		fr.Taper = spec
	}
	if body.Width > 0 {
		fr.Width = body.Width
	}
	if body.Height > 0 {
		fr.Height = body.Height
	}
	if !body.Reference {
		fr.Reference = nil
	}

	format := h.library.Render().Format
	if body.Format != "" {
		format = body.Format
	}
	f, err := render.ParseFormat(format)
	if err != nil {
		return figure.Request{}, huma.Error400BadRequest("invalid format", err)
	}
	fr.Format = f

	return fr, h.checkLimits(fr)
}

// compileTerm builds a provider from the request's coefficient formulas.
func compileTerm(body *RenderSpec) (harmonics.Provider, error) {
	p, err := expr.Compile(body.Term)
	if err != nil {
		return nil, huma.Error400BadRequest("invalid term", err)
	}
	var dc complex128
	if body.DC != "" {
		dcProvider, err := expr.Compile(body.DC)
		if err != nil {
			return nil, huma.Error400BadRequest("invalid dc", err)
		}
		if dc = dcProvider(0); cmplx.IsNaN(dc) || cmplx.IsInf(dc) {
			return nil, huma.Error400BadRequest("dc is not finite", nil)
		}
	}
	p = harmonics.WithDC(dc, p)
	if body.Amplitude != 0 && body.Amplitude != 1 {
		p = harmonics.Scaled(p, body.Amplitude)
	}
	return p, nil
}

func (h *Handler) checkLimits(fr figure.Request) error {
	order := fr.Harmonics
	for _, n := range fr.Ladder {
		if n > order {
			order = n
		}
	}
	switch {
	case order > h.limits.MaxHarmonics:
		return huma.Error422UnprocessableEntity(
			fmt.Sprintf("harmonic count %d exceeds the limit %d", order, h.limits.MaxHarmonics), nil)
	case fr.Samples > h.limits.MaxSamples:
		return huma.Error422UnprocessableEntity(
			fmt.Sprintf("sample count %d exceeds the limit %d", fr.Samples, h.limits.MaxSamples), nil)
	case fr.Width*fr.Height > h.limits.MaxImagePixels:
		return huma.Error422UnprocessableEntity(
			fmt.Sprintf("canvas %dx%d exceeds the pixel limit %d", fr.Width, fr.Height, h.limits.MaxImagePixels), nil)
	}
	return nil
}

func waveformInfo(w *preset.Waveform, builtin bool) WaveformInfo {
	return WaveformInfo{
		Name:      w.Name,
		Kind:      w.Kind,
		Term:      w.Term,
		Builtin:   builtin,
		Period:    w.Period,
		Harmonics: w.Harmonics,
		Taper:     taperLabel(w.Taper),
	}
}

func coefficientRows(s harmonics.Spectrum) []CoefficientRow {
	rows := make([]CoefficientRow, len(s.Cos))
	for k := range s.Cos {
		a, b := s.Cos[k], s.Sin[k]
		c := complex(a/2, -b/2)
		rows[k] = CoefficientRow{
			N:         k + 1,
			A:         a,
			B:         b,
			Re:        real(c),
			Im:        imag(c),
			Magnitude: cmplx.Abs(c),
		}
	}
	return rows
}

// taperLabel formats a taper spec for responses, empty when none.
func taperLabel(spec window.Spec) string {
	if spec.Shape == window.ShapeNone {
		return ""
	}
	return spec.String()
}

// renderStartProgress is reported as soon as a job leaves the queue.
const renderStartProgress = 10
