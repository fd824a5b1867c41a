package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tphakala/go-fourier-series/internal/figure"
	"github.com/tphakala/go-fourier-series/internal/render"
)

var renderFlags = struct {
	waveformFlags
	harmonics int
	ladder    []int
	single    bool
	samples   int
	interval  []float64
	period    float64
	width     int
	height    int
	format    string
	output    string
	noRef     bool
	watch     bool
}{}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a waveform approximation to PNG or SVG",
	Long: `Render draws the truncated Fourier series of a waveform. With --ladder
it tiles one panel per harmonic count, titled "N = <n>"; otherwise it
draws a single panel at the truncation order.

With --watch the command keeps running and re-renders whenever a preset
file changes.`,
	RunE: runRender,
}

func init() {
	f := renderCmd.Flags()
	renderFlags.register(f)
	f.IntVarP(&renderFlags.harmonics, "harmonics", "n", 0,
		"truncation order for single-panel renders")
	f.IntSliceVarP(&renderFlags.ladder, "ladder", "l", nil,
		"harmonic counts, one panel each (default 1,2,5,10,100,1000)")
	f.BoolVar(&renderFlags.single, "single", false,
		"force a single panel even when render settings carry a ladder")
	f.IntVar(&renderFlags.samples, "samples", 0,
		"evaluation grid size")
	f.Float64SliceVar(&renderFlags.interval, "interval", nil,
		"evaluation interval start,end")
	f.Float64Var(&renderFlags.period, "period", 0,
		"fundamental period")
	f.IntVar(&renderFlags.width, "width", 0,
		"canvas width in pixels")
	f.IntVar(&renderFlags.height, "height", 0,
		"canvas height in pixels")
	f.StringVarP(&renderFlags.format, "format", "f", "",
		"image format, png or svg")
	f.StringVarP(&renderFlags.output, "output", "o", "",
		"output file (default <waveform>.<format>)")
	f.BoolVar(&renderFlags.noRef, "no-reference", false,
		"omit the dashed exact-waveform reference")
	f.BoolVar(&renderFlags.watch, "watch", false,
		"re-render when preset files change")
}

func runRender(cmd *cobra.Command, args []string) error {
	if renderFlags.watch && len(presetPaths) == 0 {
		return fmt.Errorf("--watch needs at least one --preset path")
	}

	if err := renderOnce(); err != nil {
		return err
	}
	if !renderFlags.watch {
		return nil
	}
	return watchPresets(renderOnce)
}

// renderOnce resolves flags against the current preset files and writes
// one image.
func renderOnce() error {
	w, lib, err := renderFlags.resolve()
	if err != nil {
		return err
	}

	settings := lib.Render()
	fr := figure.FromWaveform(w, settings)

	switch {
	case renderFlags.single:
		// keep the single panel
	case len(renderFlags.ladder) > 0:
		fr.Ladder = renderFlags.ladder
	case len(settings.Ladder) > 0 && renderFlags.harmonics == 0:
		fr.Ladder = settings.Ladder
	}
	if renderFlags.harmonics > 0 {
		fr.Harmonics = renderFlags.harmonics
	}
	if renderFlags.samples > 0 {
		fr.Samples = renderFlags.samples
	}
	if renderFlags.period > 0 {
		fr.Period = renderFlags.period
	}
	if len(renderFlags.interval) > 0 {
		if len(renderFlags.interval) != 2 {
			return fmt.Errorf("--interval needs exactly start,end")
		}
		fr.Start, fr.End = renderFlags.interval[0], renderFlags.interval[1]
	}
	if renderFlags.width > 0 {
		fr.Width = renderFlags.width
	}
	if renderFlags.height > 0 {
		fr.Height = renderFlags.height
	}
	if renderFlags.noRef {
		fr.Reference = nil
	}

	name := settings.Format
	if renderFlags.format != "" {
		name = renderFlags.format
	}
	format, err := render.ParseFormat(name)
	if err != nil {
		return err
	}
	fr.Format = format

	start := time.Now()
	data, err := figure.Render(fr)
	if err != nil {
		return err
	}

	out := outputPath(renderFlags.output, w.Name, format.Extension())
	if err := os.WriteFile(out, data, outputFileMode); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}

	log.Info().
		Str("waveform", w.Name).
		Ints("ladder", fr.Ladder).
		Int("harmonics", fr.Harmonics).
		Str("output", out).
		Int("bytes", len(data)).
		Dur("took", time.Since(start)).
		Msg("Rendered")
	return nil
}

// watchTargets resolves preset paths into the directories to watch and the
// set of absolute file paths whose events matter. Editors commonly save by
// writing a temporary file and renaming it over the original, which drops an
// fsnotify watch held on the file itself; watching the containing directory
// survives the inode swap.
func watchTargets(paths []string) (dirs []string, files map[string]bool, err error) {
	files = make(map[string]bool, len(paths))
	seen := make(map[string]bool)
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, nil, fmt.Errorf("resolving %s: %w", path, err)
		}
		files[abs] = true
		if dir := filepath.Dir(abs); !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs, files, nil
}

// watchPresets re-runs redraw whenever a preset path changes, debounced,
// until interrupted.
func watchPresets(redraw func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dirs, files, err := watchTargets(presetPaths)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}
	log.Info().Strs("paths", presetPaths).Msg("Watching presets, Ctrl-C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	debounce := time.NewTimer(0)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case event := <-watcher.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if abs, err := filepath.Abs(event.Name); err != nil || !files[abs] {
				continue
			}
			log.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("Preset change")
			debounce.Reset(watchDebounce)
		case <-debounce.C:
			if err := redraw(); err != nil {
				log.Error().Err(err).Msg("Re-render failed")
			}
		case err := <-watcher.Errors:
			log.Warn().Err(err).Msg("Watcher error")
		case <-quit:
			return nil
		}
	}
}
