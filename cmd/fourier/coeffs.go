package main

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/tphakala/go-fourier-series/internal/harmonics"
)

var coeffsFlags = struct {
	waveformFlags
	count int
	form  string
}{}

var coeffsCmd = &cobra.Command{
	Use:   "coeffs",
	Short: "Print the leading Fourier coefficients of a waveform",
	Long: `Coeffs prints harmonics 1..n of a waveform after its taper, either as
trigonometric amplitudes aₙ, bₙ (--form real) or as complex coefficients
cₙ = (aₙ - i·bₙ)/2 (--form complex).`,
	RunE: runCoeffs,
}

func init() {
	f := coeffsCmd.Flags()
	coeffsFlags.register(f)
	f.IntVarP(&coeffsFlags.count, "harmonics", "n", defaultCoeffCount,
		"number of harmonics to print")
	f.StringVar(&coeffsFlags.form, "form", "real",
		"coefficient form, real or complex")
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	labelStyle  = lipgloss.NewStyle().Bold(true)
	faintStyle  = lipgloss.NewStyle().Faint(true)
)

func runCoeffs(cmd *cobra.Command, args []string) error {
	if coeffsFlags.count < 0 {
		return fmt.Errorf("--harmonics must not be negative")
	}
	if coeffsFlags.form != "real" && coeffsFlags.form != "complex" {
		return fmt.Errorf("--form must be real or complex, got %q", coeffsFlags.form)
	}

	w, _, err := coeffsFlags.resolve()
	if err != nil {
		return err
	}
	s, err := w.Spectrum(coeffsFlags.count)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("Coefficients of %q", w.Name)))
	if label := describeWaveform(w.Kind, w.Term); label != "" {
		fmt.Fprintln(out, faintStyle.Render(label))
	}
	fmt.Fprintf(out, "%s %.*g\n", labelStyle.Render("c0 ="), coeffPrecision, s.DC)
	fmt.Fprintln(out)

	if coeffsFlags.form == "real" {
		printRealTable(out, s)
	} else {
		printComplexTable(out, s)
	}
	return nil
}

func printRealTable(out io.Writer, s harmonics.Spectrum) {
	fmt.Fprintln(out, labelStyle.Render(fmt.Sprintf("%4s  %*s  %*s", "n", coeffColWidth, "a_n", coeffColWidth, "b_n")))
	fmt.Fprintln(out, faintStyle.Render(strings.Repeat("-", 4+2*(coeffColWidth+2))))
	for k := range s.Cos {
		fmt.Fprintf(out, "%4d  %*.*g  %*.*g\n",
			k+1, coeffColWidth, coeffPrecision, s.Cos[k], coeffColWidth, coeffPrecision, s.Sin[k])
	}
}

func printComplexTable(out io.Writer, s harmonics.Spectrum) {
	fmt.Fprintln(out, labelStyle.Render(fmt.Sprintf("%4s  %*s  %*s  %*s",
		"n", coeffColWidth, "Re(c_n)", coeffColWidth, "Im(c_n)", coeffColWidth, "|c_n|")))
	fmt.Fprintln(out, faintStyle.Render(strings.Repeat("-", 4+3*(coeffColWidth+2))))
	for k := range s.Cos {
		re, im := s.Cos[k]/2, -s.Sin[k]/2
		mag := math.Hypot(re, im)
		fmt.Fprintf(out, "%4d  %*.*g  %*.*g  %*.*g\n",
			k+1,
			coeffColWidth, coeffPrecision, re,
			coeffColWidth, coeffPrecision, im,
			coeffColWidth, coeffPrecision, mag)
	}
}

func describeWaveform(kind, term string) string {
	switch {
	case kind != "":
		return "built-in " + kind
	case term != "":
		return "c_n = " + term
	default:
		return ""
	}
}
