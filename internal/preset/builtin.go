package preset

import (
	"fmt"

	"github.com/tphakala/go-fourier-series/internal/harmonics"
	"github.com/tphakala/go-fourier-series/internal/series"
)

// Builtin returns the waveform definition of a built-in kind with default
// amplitude, period, interval and harmonic count. Pulse trains get the
// default duty cycle; preset files are the way to other duties.
func Builtin(name string) (*Waveform, error) {
	kind, err := harmonics.ParseKind(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPreset, err)
	}
	hw, err := harmonics.New(kind, defaultAmplitude, series.DefaultPeriod)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPreset, err)
	}
	return &Waveform{
		Name:      kind.String(),
		Kind:      kind.String(),
		Amplitude: defaultAmplitude,
		Period:    series.DefaultPeriod,
		Interval:  [2]float64{series.DefaultIntervalStart, series.DefaultIntervalEnd},
		Harmonics: series.DefaultHarmonics,
		Duty:      hw.Duty,
		provider:  hw.Provider,
		reference: hw.Reference,
	}, nil
}

// BuiltinNames lists the built-in waveform kinds.
func BuiltinNames() []string {
	return harmonics.KindNames()
}

// FromTerm builds an expression waveform outside a preset file, from a
// coefficient formula in n and an optional constant-term formula. A zero
// amplitude means the default of 1.
func FromTerm(term, dc string, amplitude float64) (*Waveform, error) {
	def := &hclWaveform{Name: term, Term: &term}
	if dc != "" {
		def.DC = &dc
	}
	if amplitude != 0 {
		def.Amplitude = &amplitude
	}
	return buildWaveform(def)
}

// Resolve returns the named waveform from the library, falling back to the
// built-in kinds. File definitions shadow built-ins of the same name.
func (l *Library) Resolve(name string) (*Waveform, error) {
	if w, ok := l.waveforms[name]; ok {
		return w, nil
	}
	w, err := Builtin(name)
	if err != nil {
		return nil, fmt.Errorf("%w: no waveform %q (built-ins: %v)", ErrInvalidPreset, name, BuiltinNames())
	}
	return w, nil
}
