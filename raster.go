package shapefield

import (
	"image"
	"image/color"
	"strings"

	"github.com/gogpu/shapefield/text"
)

// RasterOptions describes how a text block is rendered into its
// coverage mask.
type RasterOptions struct {
	// Width and Height size the mask, matching the canvas.
	Width, Height int

	// FontSize in pixels.
	FontSize float64

	// LineHeight is a multiplier of FontSize that sets the vertical
	// distance between consecutive baselines. Values <= 0 mean 1.2.
	LineHeight float64

	// OffsetX and OffsetY shift the centered block in pixels.
	// Positive x moves right, positive y moves down (raster space).
	OffsetX, OffsetY float64
}

func (o RasterOptions) lineHeight() float64 {
	lh := o.LineHeight
	if lh <= 0 {
		lh = 1.2
	}
	return o.FontSize * lh
}

// TextRasterizer renders a multi-line text block into an alpha coverage
// mask. The default implementation draws with the text subpackage;
// callers can substitute their own backend (a vector library, a
// headless browser engine) without touching the sampling logic.
type TextRasterizer interface {
	Rasterize(s string, opts RasterOptions) *image.Alpha
}

// NewTextRasterizer returns the default rasterizer drawing with the
// given font source. A nil source selects the embedded default font.
func NewTextRasterizer(source *text.FontSource) TextRasterizer {
	if source == nil {
		source = text.DefaultSource()
	}
	return &fontRasterizer{source: source}
}

type fontRasterizer struct {
	source *text.FontSource
}

// Rasterize draws the text block centered on the mask. Lines are split
// on newlines, centered horizontally using their shaped advance, and
// stacked as a vertically centered block.
func (r *fontRasterizer) Rasterize(s string, opts RasterOptions) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, opts.Width, opts.Height))
	if strings.TrimSpace(s) == "" {
		return mask
	}

	face := r.source.Face(opts.FontSize)
	metrics := face.Metrics()
	lineH := opts.lineHeight()

	lines := strings.Split(s, "\n")
	blockTop := float64(opts.Height)/2 - lineH*float64(len(lines))/2

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		// Baseline so that the line's vertical span is centered in
		// its lineH slot.
		centerY := blockTop + lineH*(float64(i)+0.5) + opts.OffsetY
		baseline := centerY + (metrics.Ascent-metrics.Descent)/2

		advance := face.Advance(line)
		x := (float64(opts.Width)-advance)/2 + opts.OffsetX

		text.Draw(mask, line, face, x, baseline, color.Opaque)
	}
	return mask
}

// SampleText rasterizes the text and scans the mask on a regular grid,
// retaining every grid pixel whose alpha coverage exceeds 50%. Retained
// pixels are converted to canvas-centered y-up coordinates:
// x' = px - w/2, y' = h/2 - py, z' = 0.
//
// Empty or whitespace-only text yields an empty slice, not an error.
func SampleText(r TextRasterizer, s string, step float64, opts RasterOptions) []Vec3 {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if step < 1 {
		step = 1
	}

	mask := r.Rasterize(s, opts)
	w, h := float64(opts.Width), float64(opts.Height)

	var points []Vec3
	for py := 0.0; py < h; py += step {
		for px := 0.0; px < w; px += step {
			a := mask.AlphaAt(int(px), int(py)).A
			if a > 127 {
				points = append(points, Vec3{X: px - w/2, Y: h/2 - py})
			}
		}
	}

	Logger().Debug("shapefield: sampled text mask",
		"points", len(points), "step", step, "width", opts.Width, "height", opts.Height)
	return points
}
