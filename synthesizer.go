package fourier

import (
	"fmt"
	"math"
	"runtime"

	"github.com/tphakala/go-fourier-series/internal/harmonics"
	"github.com/tphakala/go-fourier-series/internal/series"
	"github.com/tphakala/go-fourier-series/internal/window"
)

// synthesizer is the concrete Synthesizer behind New. The provider is
// projected onto synthesis amplitudes at construction; Evaluate, Sample and
// SampleLadder all read the same tapered spectrum.
type synthesizer struct {
	spectrum harmonics.Spectrum
	period   float64
	grid     series.Grid
	taper    string
	parallel bool

	direct *series.Direct
	fft    *series.FFTSynth // nil when the direct path was selected
}

// newSynthesizer builds the spectrum and picks the synthesis path.
// The config has already been validated.
func newSynthesizer(config *Config) (*synthesizer, error) {
	spec, err := projectSpectrum(config.Provider, config.Harmonics)
	if err != nil {
		return nil, err
	}

	if config.Taper != "" {
		ts, err := window.ParseSpec(config.Taper)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		spec, err = window.Apply(spec, ts)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}

	s := &synthesizer{
		spectrum: spec,
		period:   config.Period,
		grid:     series.Grid{Start: config.Start, End: config.End, Count: config.Samples},
		taper:    config.Taper,
		parallel: config.Parallel,
		direct:   series.NewDirect(spec, config.Period),
	}

	// FFT synthesis renders one endpoint-exclusive period of Samples-1
	// points; the final grid point then repeats the first by periodicity.
	// It only pays off past the crossover harmonic count.
	if config.EnableFFT &&
		config.Harmonics >= series.FFTCrossoverHarmonics &&
		s.grid.SpansOnePeriod(config.Period) {
		if fs, err := series.NewFFTSynth(config.Samples - 1); err == nil && config.Harmonics <= fs.MaxHarmonics() {
			s.fft = fs
		}
	}

	return s, nil
}

// projectSpectrum projects the provider onto real synthesis amplitudes and
// rejects non-finite coefficients up front.
func projectSpectrum(p Provider, n int) (harmonics.Spectrum, error) {
	spec := harmonics.Amplitudes(harmonics.Provider(p), n)

	if !isFinite(spec.DC) {
		return harmonics.Spectrum{}, fmt.Errorf("%w: DC term is %g", ErrBadCoefficient, spec.DC)
	}
	for k := range spec.Cos {
		if !isFinite(spec.Cos[k]) || !isFinite(spec.Sin[k]) {
			return harmonics.Spectrum{}, fmt.Errorf("%w: harmonic %d", ErrBadCoefficient, k+1)
		}
	}

	return spec, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Evaluate computes the partial sum at a single time point.
func (s *synthesizer) Evaluate(t float64) float64 {
	return series.EvaluateAt(s.spectrum, s.period, t)
}

// Sample renders the partial sum across the configured grid.
func (s *synthesizer) Sample() ([]float64, error) {
	out := make([]float64, s.grid.Count)

	if s.fft != nil {
		if _, err := s.fft.Synthesize(out[:s.grid.Count-1], s.spectrum, s.period, s.grid.Start); err != nil {
			return nil, err
		}
		// periodic wrap of the duplicated endpoint
		out[s.grid.Count-1] = out[0]
		return out, nil
	}

	if s.parallel {
		return s.direct.SampleParallel(out, s.grid, runtime.GOMAXPROCS(0))
	}
	return s.direct.Sample(out, s.grid)
}

// SampleLadder renders partial-sum snapshots at several harmonic counts in
// one accumulation pass over the grid.
func (s *synthesizer) SampleLadder(counts []int) (map[int][]float64, error) {
	out, err := series.Ladder(s.spectrum, s.period, s.grid, counts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return out, nil
}

// Coefficients returns a copy of the synthesis amplitudes in use.
func (s *synthesizer) Coefficients() Spectrum {
	c := s.spectrum.Clone()
	return Spectrum{DC: c.DC, Cos: c.Cos, Sin: c.Sin}
}

// Points returns the time values of the sample grid.
func (s *synthesizer) Points() []float64 {
	return s.grid.Points(nil)
}

// Info reports the synthesis setup chosen at construction.
func (s *synthesizer) Info() Info {
	algorithm := algorithmDirect
	if s.fft != nil {
		algorithm = algorithmFFT
	}
	return Info{
		Algorithm: algorithm,
		Harmonics: s.spectrum.Harmonics(),
		Samples:   s.grid.Count,
		Taper:     s.taper,
		Parallel:  s.parallel,
	}
}
