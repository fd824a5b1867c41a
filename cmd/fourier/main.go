// Command fourier is the Fourier series multitool: it renders waveform
// approximations to PNG or SVG, prints coefficient tables, synthesizes
// audible WAV files and lists available waveforms.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	presetPaths []string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "fourier",
	Short: "Fourier series synthesis and visualization toolkit",
	Long: `fourier computes truncated Fourier series of periodic waveforms and
renders the approximations.

Waveforms come from three sources: built-in kinds (square, sawtooth,
triangle, pulse, rectsine), definitions in HCL preset files, and ad-hoc
coefficient formulas in the harmonic index n, e.g. "-2*i/(pi*n)".

Examples:
  fourier render --waveform square --ladder 1,2,5,10,100,1000 -o ladder.png
  fourier render --term "-2*i/(pi*n)" -n 50 --taper lanczos -o square.svg
  fourier coeffs --waveform sawtooth -n 8
  fourier wav --waveform square -n 30 --freq 220 -o square.wav
  fourier presets --preset waves.hcl`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.InfoLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)
	},
}

func init() {
	rootCmd.PersistentFlags().StringSliceVarP(&presetPaths, "preset", "p", nil,
		"preset file or directory, repeatable")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")

	rootCmd.AddCommand(renderCmd, coeffsCmd, wavCmd, presetsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
