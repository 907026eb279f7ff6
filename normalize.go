package shapefield

import "github.com/gogpu/shapefield/svg"

// FitMode selects how source coordinates are scaled into canvas space.
type FitMode int

const (
	// FitContain scales uniformly so the whole view box fits inside
	// the padded canvas.
	FitContain FitMode = iota

	// FitCover scales uniformly so the view box covers the padded
	// canvas, cropping overflow.
	FitCover

	// FitStretch scales each axis independently to fill the padded
	// canvas exactly.
	FitStretch
)

// NormalizeOptions controls the view-box-to-canvas mapping.
type NormalizeOptions struct {
	Fit FitMode

	// Padding is the fraction of each canvas dimension reserved on
	// each side. 0.1 leaves a 10% margin all around.
	Padding float64

	// OffsetX and OffsetY shift the result by a percentage of the
	// canvas dimensions. 50 moves by half the canvas.
	OffsetX, OffsetY float64
}

// Normalize maps SVG user-space points into the shared output
// coordinate system: the view box center goes to the canvas center, the
// y axis flips to up-positive, and the fit mode decides the scale.
// Empty input returns empty output without error. The mapping never
// depends on any camera state.
func Normalize(points []Vec3, vb svg.ViewBox, canvasW, canvasH float64, opts NormalizeOptions) []Vec3 {
	if len(points) == 0 {
		return nil
	}

	effW := canvasW * (1 - 2*opts.Padding)
	effH := canvasH * (1 - 2*opts.Padding)

	vbW, vbH := vb.Width, vb.Height
	if vbW <= 0 {
		vbW = 1
	}
	if vbH <= 0 {
		vbH = 1
	}

	sx, sy := effW/vbW, effH/vbH
	switch opts.Fit {
	case FitContain:
		s := min(sx, sy)
		sx, sy = s, s
	case FitCover:
		s := max(sx, sy)
		sx, sy = s, s
	case FitStretch:
		// Per-axis ratios as computed.
	}

	cx := vb.MinX + vb.Width/2
	cy := vb.MinY + vb.Height/2
	dx := opts.OffsetX / 100 * canvasW
	dy := opts.OffsetY / 100 * canvasH

	out := make([]Vec3, len(points))
	for i, p := range points {
		out[i] = Vec3{
			X: (p.X-cx)*sx + dx,
			Y: -(p.Y-cy)*sy + dy,
			Z: p.Z,
		}
	}
	return out
}
