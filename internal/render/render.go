// Package render draws waveform approximations with gonum/plot.
//
// A Panel is one waveform view: x values, the partial-sum samples and an
// optional dashed reference curve. Single renders one panel; LadderGrid
// tiles one panel per harmonic count the way the classic approximation
// ladder is shown, titles "N = <n>", two panels per row.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"
)

var (
	// ErrUnknownFormat is returned for image formats other than png and svg.
	ErrUnknownFormat = errors.New("unknown image format")

	// ErrInvalidPanel is returned when panel data is missing or mismatched.
	ErrInvalidPanel = errors.New("invalid panel")

	// ErrInvalidCanvas is returned for non-positive canvas dimensions.
	ErrInvalidCanvas = errors.New("invalid canvas size")
)

// Format selects the image encoding.
type Format int

const (
	FormatPNG Format = iota
	FormatSVG
)

// ParseFormat maps a format name to a Format, case-insensitively.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "png":
		return FormatPNG, nil
	case "svg":
		return FormatSVG, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatSVG:
		return "svg"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ContentType returns the MIME type served for the encoding.
func (f Format) ContentType() string {
	if f == FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// Extension returns the file extension including the dot.
func (f Format) Extension() string {
	if f == FormatSVG {
		return ".svg"
	}
	return ".png"
}

// Options control the output canvas. Width and Height are pixels.
type Options struct {
	Width  int
	Height int
	Format Format
}

// Validate reports whether the options describe a drawable canvas.
func (o *Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidCanvas, o.Width, o.Height)
	}
	if o.Format != FormatPNG && o.Format != FormatSVG {
		return fmt.Errorf("%w: %d", ErrUnknownFormat, int(o.Format))
	}
	return nil
}

// Panel is one waveform view.
type Panel struct {
	Title  string
	X      []float64
	Approx []float64
	// Reference is drawn dashed behind the approximation when non-nil.
	Reference []float64
}

func (p *Panel) validate() error {
	switch {
	case len(p.X) < minPanelPoints:
		return fmt.Errorf("%w: need at least %d points, got %d", ErrInvalidPanel, minPanelPoints, len(p.X))
	case len(p.Approx) != len(p.X):
		return fmt.Errorf("%w: %d x values against %d approximation samples", ErrInvalidPanel, len(p.X), len(p.Approx))
	case p.Reference != nil && len(p.Reference) != len(p.X):
		return fmt.Errorf("%w: %d x values against %d reference samples", ErrInvalidPanel, len(p.X), len(p.Reference))
	}
	return nil
}

// Single renders one panel with a legend.
func Single(panel Panel, o Options) ([]byte, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := panel.validate(); err != nil {
		return nil, err
	}

	p, err := newPanelPlot(panel, true)
	if err != nil {
		return nil, err
	}
	return encode(o, func(dc draw.Canvas) {
		p.Draw(dc)
	})
}

// LadderGrid renders one panel per harmonic count on a tiled grid, two
// panels per row. Panels build concurrently; drawing is sequential.
func LadderGrid(panels []Panel, o Options) ([]byte, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if len(panels) == 0 {
		return nil, fmt.Errorf("%w: no panels", ErrInvalidPanel)
	}
	for i := range panels {
		if err := panels[i].validate(); err != nil {
			return nil, fmt.Errorf("panel %d: %w", i, err)
		}
	}

	cols := min(gridCols, len(panels))
	rows := (len(panels) + cols - 1) / cols

	plots := make([][]*plot.Plot, rows)
	for r := range plots {
		plots[r] = make([]*plot.Plot, cols)
	}

	var wg sync.WaitGroup
	var buildErr error
	var errMu sync.Mutex

	for i := range panels {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			p, err := newPanelPlot(panels[idx], false)
			if err != nil {
				errMu.Lock()
				if buildErr == nil {
					buildErr = fmt.Errorf("panel %d: %w", idx, err)
				}
				errMu.Unlock()
				return
			}
			plots[idx/cols][idx%cols] = p
		}(i)
	}
	wg.Wait()

	if buildErr != nil {
		return nil, buildErr
	}

	tiles := draw.Tiles{
		Rows: rows, Cols: cols,
		PadX: vg.Points(tilePadPoints), PadY: vg.Points(tilePadPoints),
		PadTop: vg.Points(tilePadPoints), PadBottom: vg.Points(tilePadPoints),
		PadLeft: vg.Points(tilePadPoints), PadRight: vg.Points(tilePadPoints),
	}
	return encode(o, func(dc draw.Canvas) {
		canvases := plot.Align(plots, tiles, dc)
		for r := range plots {
			for c := range plots[r] {
				if plots[r][c] != nil {
					plots[r][c].Draw(canvases[r][c])
				}
			}
		}
	})
}

// LadderPanels builds "N = <n>" titled panels from ladder snapshots, in
// the order counts are listed. Counts without a snapshot and duplicates
// are skipped.
func LadderPanels(x []float64, byCount map[int][]float64, counts []int, reference []float64) []Panel {
	panels := make([]Panel, 0, len(counts))
	seen := make(map[int]bool, len(counts))
	for _, n := range counts {
		samples, ok := byCount[n]
		if !ok || seen[n] {
			continue
		}
		seen[n] = true
		panels = append(panels, Panel{
			Title:     fmt.Sprintf("N = %d", n),
			X:         x,
			Approx:    samples,
			Reference: reference,
		})
	}
	return panels
}

func newPanelPlot(panel Panel, legend bool) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = panel.Title
	p.X.Label.Text = "t"
	p.Y.Label.Text = "f(t)"
	p.Add(plotter.NewGrid())

	var ref *plotter.Line
	if panel.Reference != nil {
		line, err := plotter.NewLine(curve(panel.X, panel.Reference))
		if err != nil {
			return nil, fmt.Errorf("building reference line: %w", err)
		}
		line.LineStyle.Width = vg.Points(referenceLineWidth)
		line.LineStyle.Color = referenceColor
		line.LineStyle.Dashes = []vg.Length{vg.Points(referenceDashOn), vg.Points(referenceDashOff)}
		p.Add(line)
		ref = line
	}

	approx, err := plotter.NewLine(curve(panel.X, panel.Approx))
	if err != nil {
		return nil, fmt.Errorf("building approximation line: %w", err)
	}
	approx.LineStyle.Width = vg.Points(approxLineWidth)
	approx.LineStyle.Color = approxColor
	p.Add(approx)

	if legend {
		p.Legend.Add("partial sum", approx)
		if ref != nil {
			p.Legend.Add("reference", ref)
		}
		p.Legend.Top = true
	}
	return p, nil
}

func curve(x, y []float64) plotter.XYs {
	xys := make(plotter.XYs, len(x))
	for i := range x {
		xys[i] = plotter.XY{X: x[i], Y: y[i]}
	}
	return xys
}

func encode(o Options, render func(draw.Canvas)) ([]byte, error) {
	w := vg.Length(o.Width)
	h := vg.Length(o.Height)
	var buf bytes.Buffer

	switch o.Format {
	case FormatPNG:
		c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(renderDPI))
		render(draw.New(c))
		png := vgimg.PngCanvas{Canvas: c}
		if _, err := png.WriteTo(&buf); err != nil {
			return nil, fmt.Errorf("encoding png: %w", err)
		}
	case FormatSVG:
		c := vgsvg.New(w, h)
		render(draw.New(c))
		if _, err := c.WriteTo(&buf); err != nil {
			return nil, fmt.Errorf("encoding svg: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, int(o.Format))
	}
	return buf.Bytes(), nil
}
