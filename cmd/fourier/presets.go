package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tphakala/go-fourier-series/internal/preset"
	"github.com/tphakala/go-fourier-series/internal/window"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List available waveforms",
	Long: `Presets lists the waveforms defined in --preset files followed by the
built-in kinds, with their defaults.`,
	RunE: runPresets,
}

func runPresets(cmd *cobra.Command, args []string) error {
	lib, err := preset.Load(presetPaths...)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if names := lib.Names(); len(names) > 0 {
		fmt.Fprintln(out, headerStyle.Render("Preset waveforms"))
		printWaveformHeader(out)
		for _, name := range names {
			w, _ := lib.Waveform(name)
			printWaveformRow(out, w)
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, headerStyle.Render("Built-in waveforms"))
	printWaveformHeader(out)
	for _, name := range preset.BuiltinNames() {
		w, err := preset.Builtin(name)
		if err != nil {
			return err
		}
		printWaveformRow(out, w)
	}

	settings := lib.Render()
	fmt.Fprintln(out)
	fmt.Fprintln(out, headerStyle.Render("Render settings"))
	fmt.Fprintf(out, "  samples %d, ladder %v, canvas %dx%d, format %s\n",
		settings.Samples, settings.Ladder, settings.Width, settings.Height, settings.Format)
	return nil
}

func printWaveformHeader(out io.Writer) {
	fmt.Fprintln(out, labelStyle.Render(fmt.Sprintf("  %-16s %-24s %9s %10s %-12s",
		"NAME", "DEFINITION", "PERIOD", "HARMONICS", "TAPER")))
}

func printWaveformRow(out io.Writer, w *preset.Waveform) {
	taper := ""
	if w.Taper.Shape != window.ShapeNone {
		taper = w.Taper.String()
	}
	fmt.Fprintf(out, "  %-16s %-24s %9.4g %10d %-12s\n",
		w.Name, describeWaveform(w.Kind, w.Term), w.Period, w.Harmonics, taper)
}
