package main

import (
	"fmt"
	"math"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	fourier "github.com/tphakala/go-fourier-series"
	"github.com/tphakala/go-fourier-series/internal/wavio"
	"github.com/tphakala/go-fourier-series/internal/window"
)

var wavFlags = struct {
	waveformFlags
	harmonics int
	frequency float64
	rate      int
	duration  float64
	bits      int
	stereo    bool
	raw       bool
	output    string
}{}

var wavCmd = &cobra.Command{
	Use:   "wav",
	Short: "Synthesize a waveform approximation as a WAV file",
	Long: `Wav renders one cycle of the truncated series at the given fundamental
frequency, tiles it for the duration and writes PCM WAV. With --stereo the
left channel carries the partial sum and the right channel the exact
waveform, for A/B listening of the truncation error.`,
	RunE: runWav,
}

func init() {
	f := wavCmd.Flags()
	wavFlags.register(f)
	f.IntVarP(&wavFlags.harmonics, "harmonics", "n", 0,
		"truncation order (default from the waveform definition)")
	f.Float64Var(&wavFlags.frequency, "freq", defaultFrequency,
		"fundamental frequency in Hz")
	f.IntVar(&wavFlags.rate, "rate", defaultSampleRate,
		"sample rate in Hz")
	f.Float64Var(&wavFlags.duration, "duration", defaultDuration,
		"duration in seconds")
	f.IntVar(&wavFlags.bits, "bits", defaultBitDepth,
		"bit depth, 16 or 24")
	f.BoolVar(&wavFlags.stereo, "stereo", false,
		"partial sum left, exact waveform right")
	f.BoolVar(&wavFlags.raw, "raw", false,
		"skip peak normalization, clamp only")
	f.StringVarP(&wavFlags.output, "output", "o", "",
		"output file (default <waveform>.wav)")
}

func runWav(cmd *cobra.Command, args []string) error {
	if wavFlags.frequency <= 0 {
		return fmt.Errorf("--freq must be positive")
	}
	if wavFlags.duration <= 0 {
		return fmt.Errorf("--duration must be positive")
	}
	if wavFlags.frequency > float64(wavFlags.rate)/2 {
		return fmt.Errorf("--freq %g exceeds the Nyquist limit for %d Hz", wavFlags.frequency, wavFlags.rate)
	}

	w, _, err := wavFlags.resolve()
	if err != nil {
		return err
	}
	if wavFlags.stereo && w.Reference() == nil {
		return fmt.Errorf("--stereo needs a waveform with a closed form; expression waveforms have none")
	}

	harmonicCount := w.Harmonics
	if wavFlags.harmonics > 0 {
		harmonicCount = wavFlags.harmonics
	}

	// One endpoint-exclusive cycle of the series at the synthesis pitch.
	cycleLen := int(math.Round(float64(wavFlags.rate) / wavFlags.frequency))
	if cycleLen < 2 {
		return fmt.Errorf("sample rate %d cannot represent %g Hz", wavFlags.rate, wavFlags.frequency)
	}

	taper := ""
	if w.Taper.Shape != window.ShapeNone {
		taper = w.Taper.String()
	}
	config := fourier.Config{
		Provider:  fourier.Provider(w.Provider()),
		Period:    w.Period,
		Harmonics: harmonicCount,
		Start:     0,
		End:       w.Period,
		Samples:   cycleLen + 1,
		Taper:     taper,
		EnableFFT: true,
	}
	s, err := fourier.New(&config)
	if err != nil {
		return err
	}
	samples, err := s.Sample()
	if err != nil {
		return err
	}
	cycle := samples[:cycleLen]

	total := int(wavFlags.duration * float64(wavFlags.rate))
	left := wavio.Tile(cycle, total)

	options := wavio.Options{
		SampleRate: wavFlags.rate,
		BitDepth:   wavFlags.bits,
		Normalize:  !wavFlags.raw,
	}

	out := outputPath(wavFlags.output, w.Name, ".wav")
	file, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", out, err)
	}
	defer file.Close()

	if wavFlags.stereo {
		reference := w.Reference()
		points := s.Points()
		refCycle := make([]float64, cycleLen)
		for i := range refCycle {
			refCycle[i] = reference(points[i])
		}
		err = wavio.WriteStereo(file, left, wavio.Tile(refCycle, total), options)
	} else {
		err = wavio.WriteMono(file, left, options)
	}
	if err != nil {
		return err
	}

	log.Info().
		Str("waveform", w.Name).
		Int("harmonics", harmonicCount).
		Float64("freq_hz", wavFlags.frequency).
		Int("rate_hz", wavFlags.rate).
		Float64("duration_s", wavFlags.duration).
		Bool("stereo", wavFlags.stereo).
		Str("output", out).
		Msg("WAV written")
	return nil
}
