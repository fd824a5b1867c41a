// Package preset loads waveform and render definitions from HCL files.
//
// A preset file holds any number of labeled waveform blocks and at most
// one render block:
//
//	waveform "soft_square" {
//	  kind      = "square"
//	  period    = 2 * pi
//	  interval  = [-pi, pi]
//	  harmonics = 100
//	  taper     = "lanczos"
//	}
//
//	waveform "custom" {
//	  dc   = "1/2"
//	  term = "-2*i/(pi*n)"
//	}
//
//	render {
//	  samples = 1000
//	  ladder  = [1, 2, 5, 10, 100, 1000]
//	  width   = 1280
//	  height  = 720
//	  format  = "png"
//	}
//
// Numeric attributes are HCL expressions evaluated with pi, tau and e in
// scope. Coefficient formulas (dc, term) are quoted strings compiled by
// internal/expr; without an explicit dc the constant term is zero.
package preset

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/tphakala/go-fourier-series/internal/expr"
	"github.com/tphakala/go-fourier-series/internal/harmonics"
	"github.com/tphakala/go-fourier-series/internal/series"
	"github.com/tphakala/go-fourier-series/internal/window"
)

// ErrInvalidPreset is returned for structural preset errors: duplicate
// names, unknown kinds or tapers, out-of-range attribute values.
var ErrInvalidPreset = errors.New("invalid preset")

// Waveform is a fully resolved waveform definition. Either Kind (built-in)
// or Term (coefficient formula) is set, never both.
type Waveform struct {
	Name      string
	Kind      string
	DC        string
	Term      string
	Amplitude float64
	Period    float64
	Interval  [2]float64
	Harmonics int
	Duty      float64 // pulse trains only, 0 otherwise
	Taper     window.Spec

	provider  harmonics.Provider
	reference func(float64) float64
}

// Provider returns the coefficient provider built at load time.
func (w *Waveform) Provider() harmonics.Provider { return w.provider }

// Reference returns the closed-form time-domain reference, or nil for
// expression waveforms.
func (w *Waveform) Reference() func(float64) float64 { return w.reference }

// Spectrum projects the waveform onto n harmonics and applies its taper.
func (w *Waveform) Spectrum(n int) (harmonics.Spectrum, error) {
	if n < 0 {
		return harmonics.Spectrum{}, fmt.Errorf("%w: waveform %q: negative harmonic count %d", ErrInvalidPreset, w.Name, n)
	}
	s := harmonics.Amplitudes(w.provider, n)
	if err := checkFinite(s); err != nil {
		return harmonics.Spectrum{}, fmt.Errorf("waveform %q: %w", w.Name, err)
	}
	return window.Apply(s, w.Taper)
}

// RenderSettings is the render block of a preset file.
type RenderSettings struct {
	Samples int
	Ladder  []int
	Width   int
	Height  int
	Format  string
}

// DefaultRender returns the settings used when no preset file carries a
// render block.
func DefaultRender() RenderSettings {
	return RenderSettings{
		Samples: series.DefaultSamples,
		Ladder:  series.DefaultLadder(),
		Width:   defaultWidth,
		Height:  defaultHeight,
		Format:  defaultFormat,
	}
}

// Library is an ordered collection of waveform definitions plus render
// settings, merged from one or more preset files.
type Library struct {
	waveforms map[string]*Waveform
	order     []string
	render    RenderSettings
	renderSet bool
}

// Load reads and merges the given preset files. A directory contributes
// its *.hcl files in lexical order. Loading no paths yields an empty
// library with default render settings.
func Load(paths ...string) (*Library, error) {
	lib := newLibrary()
	parser := hclparse.NewParser()
	for _, path := range paths {
		files, err := expand(path)
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			src, err := os.ReadFile(file)
			if err != nil {
				return nil, fmt.Errorf("reading preset: %w", err)
			}
			if err := lib.merge(src, file, parser); err != nil {
				return nil, err
			}
		}
	}
	return lib, nil
}

// LoadBytes parses a single in-memory preset source.
func LoadBytes(src []byte, filename string) (*Library, error) {
	lib := newLibrary()
	if err := lib.merge(src, filename, hclparse.NewParser()); err != nil {
		return nil, err
	}
	return lib, nil
}

// Waveform returns the named waveform definition.
func (l *Library) Waveform(name string) (*Waveform, bool) {
	w, ok := l.waveforms[name]
	return w, ok
}

// Names lists waveform names in definition order.
func (l *Library) Names() []string {
	return append([]string(nil), l.order...)
}

// Render returns the merged render settings.
func (l *Library) Render() RenderSettings {
	r := l.render
	r.Ladder = append([]int(nil), l.render.Ladder...)
	return r
}

func newLibrary() *Library {
	return &Library{
		waveforms: make(map[string]*Waveform),
		render:    DefaultRender(),
	}
}

// hclFile is the top-level structure of a preset file for decoding.
type hclFile struct {
	Waveforms []*hclWaveform `hcl:"waveform,block"`
	Render    *hclRender     `hcl:"render,block"`
}

type hclWaveform struct {
	Name      string    `hcl:"name,label"`
	Kind      *string   `hcl:"kind,optional"`
	DC        *string   `hcl:"dc,optional"`
	Term      *string   `hcl:"term,optional"`
	Amplitude *float64  `hcl:"amplitude,optional"`
	Period    *float64  `hcl:"period,optional"`
	Interval  []float64 `hcl:"interval,optional"`
	Harmonics *int      `hcl:"harmonics,optional"`
	Duty      *float64  `hcl:"duty,optional"`
	Taper     *string   `hcl:"taper,optional"`
}

type hclRender struct {
	Samples *int    `hcl:"samples,optional"`
	Ladder  []int   `hcl:"ladder,optional"`
	Width   *int    `hcl:"width,optional"`
	Height  *int    `hcl:"height,optional"`
	Format  *string `hcl:"format,optional"`
}

// evalContext carries the constants preset attribute expressions may
// reference, so files can write period = 2 * pi.
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"pi":  cty.NumberFloatVal(math.Pi),
			"tau": cty.NumberFloatVal(2 * math.Pi),
			"e":   cty.NumberFloatVal(math.E),
		},
	}
}

func (l *Library) merge(src []byte, filename string, parser *hclparse.Parser) error {
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return fmt.Errorf("parsing preset %s: %w", filename, diags)
	}

	var parsed hclFile
	diags = gohcl.DecodeBody(file.Body, evalContext(), &parsed)
	if diags.HasErrors() {
		return fmt.Errorf("decoding preset %s: %w", filename, diags)
	}

	for _, def := range parsed.Waveforms {
		w, err := buildWaveform(def)
		if err != nil {
			return err
		}
		if _, dup := l.waveforms[w.Name]; dup {
			return fmt.Errorf("%w: waveform %q redefined in %s", ErrInvalidPreset, w.Name, filename)
		}
		l.waveforms[w.Name] = w
		l.order = append(l.order, w.Name)
	}

	if parsed.Render != nil {
		if l.renderSet {
			return fmt.Errorf("%w: render block redefined in %s", ErrInvalidPreset, filename)
		}
		r, err := buildRender(parsed.Render)
		if err != nil {
			return err
		}
		l.render = r
		l.renderSet = true
	}
	return nil
}

func expand(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("preset path: %w", err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	files, err := filepath.Glob(filepath.Join(path, "*.hcl"))
	if err != nil {
		return nil, fmt.Errorf("preset path %s: %w", path, err)
	}
	return files, nil
}

func buildWaveform(def *hclWaveform) (*Waveform, error) {
	w := &Waveform{
		Name:      def.Name,
		Amplitude: defaultAmplitude,
		Period:    series.DefaultPeriod,
		Interval:  [2]float64{series.DefaultIntervalStart, series.DefaultIntervalEnd},
		Harmonics: series.DefaultHarmonics,
	}
	if def.Amplitude != nil {
		w.Amplitude = *def.Amplitude
	}
	if def.Period != nil {
		w.Period = *def.Period
	}
	if def.Harmonics != nil {
		w.Harmonics = *def.Harmonics
	}
	if def.Interval != nil {
		if len(def.Interval) != 2 {
			return nil, fmt.Errorf("%w: waveform %q: interval needs [start, end]", ErrInvalidPreset, def.Name)
		}
		w.Interval = [2]float64{def.Interval[0], def.Interval[1]}
	}

	switch {
	case math.IsNaN(w.Period) || math.IsInf(w.Period, 0) || w.Period <= 0:
		return nil, fmt.Errorf("%w: waveform %q: period must be positive", ErrInvalidPreset, def.Name)
	case w.Harmonics < 0:
		return nil, fmt.Errorf("%w: waveform %q: harmonics must not be negative", ErrInvalidPreset, def.Name)
	case w.Interval[1] <= w.Interval[0]:
		return nil, fmt.Errorf("%w: waveform %q: interval end must exceed start", ErrInvalidPreset, def.Name)
	}

	if def.Taper != nil {
		spec, err := window.ParseSpec(*def.Taper)
		if err != nil {
			return nil, fmt.Errorf("%w: waveform %q: %v", ErrInvalidPreset, def.Name, err)
		}
		w.Taper = spec
	}

	switch {
	case def.Kind != nil && def.Term != nil:
		return nil, fmt.Errorf("%w: waveform %q: kind and term are mutually exclusive", ErrInvalidPreset, def.Name)

	case def.Kind != nil:
		if def.DC != nil {
			return nil, fmt.Errorf("%w: waveform %q: dc applies only to expression waveforms", ErrInvalidPreset, def.Name)
		}
		kind, err := harmonics.ParseKind(*def.Kind)
		if err != nil {
			return nil, fmt.Errorf("%w: waveform %q: %v", ErrInvalidPreset, def.Name, err)
		}
		var hw harmonics.Waveform
		switch {
		case kind == harmonics.KindPulse && def.Duty != nil:
			hw, err = harmonics.NewPulse(w.Amplitude, w.Period, *def.Duty)
		case def.Duty != nil:
			return nil, fmt.Errorf("%w: waveform %q: duty applies only to pulse trains", ErrInvalidPreset, def.Name)
		default:
			hw, err = harmonics.New(kind, w.Amplitude, w.Period)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: waveform %q: %v", ErrInvalidPreset, def.Name, err)
		}
		w.Kind = kind.String()
		w.Duty = hw.Duty
		w.provider = hw.Provider
		w.reference = hw.Reference

	case def.Term != nil:
		p, err := expr.Compile(*def.Term)
		if err != nil {
			return nil, fmt.Errorf("waveform %q: %w", def.Name, err)
		}
		w.Term = *def.Term
		var dc complex128
		if def.DC != nil {
			dcProvider, err := expr.Compile(*def.DC)
			if err != nil {
				return nil, fmt.Errorf("waveform %q: dc: %w", def.Name, err)
			}
			dc = dcProvider(0)
			if cmplx.IsNaN(dc) || cmplx.IsInf(dc) {
				return nil, fmt.Errorf("%w: waveform %q: dc is not finite", ErrInvalidPreset, def.Name)
			}
			w.DC = *def.DC
		}
		p = harmonics.WithDC(dc, p)
		if w.Amplitude != 1 {
			p = harmonics.Scaled(p, w.Amplitude)
		}
		w.provider = p

	default:
		return nil, fmt.Errorf("%w: waveform %q: needs kind or term", ErrInvalidPreset, def.Name)
	}

	return w, nil
}

func buildRender(def *hclRender) (RenderSettings, error) {
	r := DefaultRender()
	if def.Samples != nil {
		r.Samples = *def.Samples
	}
	if def.Ladder != nil {
		r.Ladder = append([]int(nil), def.Ladder...)
	}
	if def.Width != nil {
		r.Width = *def.Width
	}
	if def.Height != nil {
		r.Height = *def.Height
	}
	if def.Format != nil {
		r.Format = strings.ToLower(*def.Format)
	}

	switch {
	case r.Samples < 2:
		return RenderSettings{}, fmt.Errorf("%w: render: samples must be at least 2", ErrInvalidPreset)
	case len(r.Ladder) == 0:
		return RenderSettings{}, fmt.Errorf("%w: render: ladder must not be empty", ErrInvalidPreset)
	case r.Width <= 0 || r.Height <= 0:
		return RenderSettings{}, fmt.Errorf("%w: render: width and height must be positive", ErrInvalidPreset)
	case r.Format != FormatPNG && r.Format != FormatSVG:
		return RenderSettings{}, fmt.Errorf("%w: render: format must be %s or %s", ErrInvalidPreset, FormatPNG, FormatSVG)
	}
	for _, n := range r.Ladder {
		if n < 0 {
			return RenderSettings{}, fmt.Errorf("%w: render: ladder counts must not be negative", ErrInvalidPreset)
		}
	}
	return r, nil
}

func checkFinite(s harmonics.Spectrum) error {
	bad := func(v float64) bool { return math.IsNaN(v) || math.IsInf(v, 0) }
	if bad(s.DC) {
		return fmt.Errorf("%w: constant term is not finite", ErrInvalidPreset)
	}
	for i := range s.Cos {
		if bad(s.Cos[i]) || bad(s.Sin[i]) {
			return fmt.Errorf("%w: coefficient %d is not finite", ErrInvalidPreset, i+1)
		}
	}
	return nil
}
