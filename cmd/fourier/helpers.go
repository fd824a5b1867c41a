package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/tphakala/go-fourier-series/internal/preset"
	"github.com/tphakala/go-fourier-series/internal/window"
)

// waveformFlags select the waveform a subcommand works on: a named
// waveform (built-in or preset) or an ad-hoc coefficient formula.
type waveformFlags struct {
	name      string
	term      string
	dc        string
	amplitude float64
	taper     string
}

func (wf *waveformFlags) register(f *pflag.FlagSet) {
	f.StringVarP(&wf.name, "waveform", "w", "",
		"waveform name, built-in kind or preset definition")
	f.StringVarP(&wf.term, "term", "t", "",
		`coefficient formula in n, e.g. "-2*i/(pi*n)"`)
	f.StringVar(&wf.dc, "dc", "",
		"constant-term formula for --term waveforms")
	f.Float64VarP(&wf.amplitude, "amplitude", "a", 1,
		"amplitude scale for --term waveforms")
	f.StringVar(&wf.taper, "taper", "",
		"taper damping Gibbs overshoot: lanczos, fejer, hann, hamming, kaiser[:beta]")
}

// resolve loads the preset library and produces the selected waveform.
// Flag-level taper and amplitude override the definition.
func (wf *waveformFlags) resolve() (*preset.Waveform, *preset.Library, error) {
	lib, err := preset.Load(presetPaths...)
	if err != nil {
		return nil, nil, err
	}

	var w *preset.Waveform
	switch {
	case wf.name != "" && wf.term != "":
		return nil, nil, fmt.Errorf("--waveform and --term are mutually exclusive")
	case wf.term != "":
		w, err = preset.FromTerm(wf.term, wf.dc, wf.amplitude)
	case wf.name != "":
		w, err = lib.Resolve(wf.name)
	default:
		w, err = lib.Resolve(defaultWaveform)
	}
	if err != nil {
		return nil, nil, err
	}

	if wf.taper != "" {
		spec, err := window.ParseSpec(wf.taper)
		if err != nil {
			return nil, nil, err
		}
		w.Taper = spec
	}
	return w, lib, nil
}

// outputPath derives the output file name: the explicit flag when given,
// otherwise the waveform name with the extension for the format.
func outputPath(flag, waveformName, extension string) string {
	if flag != "" {
		return flag
	}
	base := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, waveformName)
	if base == "" {
		base = "fourier"
	}
	return base + extension
}
