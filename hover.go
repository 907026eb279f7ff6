package shapefield

import "math"

// Projector maps a scene-space point into the 2D space cursor input
// lives in, normally a screen-space camera projection. Hover distances
// are compared in that space, never in raw scene coordinates.
type Projector interface {
	Project(p Vec3) (x, y float64)
}

// OrthoProjector is the default projection for the built-in
// orthographic view: scene origin at canvas center, y-up, mapped to
// raster coordinates.
type OrthoProjector struct {
	Width, Height float64
}

func (o OrthoProjector) Project(p Vec3) (x, y float64) {
	return o.Width/2 + p.X, o.Height/2 - p.Y
}

// HoverField maps cursor proximity to a continuous per-particle scale
// multiplier.
type HoverField struct {
	// Radius is the effect radius in projection space.
	Radius float64

	// Intensity controls the effect strength. Values >= 1 grow
	// particles toward the cursor; values < 1 shrink them.
	Intensity float64

	cursorX, cursorY float64
	hasCursor        bool
}

// SetCursor places the cursor in projection space.
func (h *HoverField) SetCursor(x, y float64) {
	h.cursorX, h.cursorY = x, y
	h.hasCursor = true
}

// ClearCursor unsets the cursor; ScaleAt then returns 1 everywhere.
func (h *HoverField) ClearCursor() {
	h.hasCursor = false
}

// ScaleAt returns the hover multiplier for a projected point. The
// result is 1 when the cursor is unset or the point is at or beyond
// Radius, fades linearly with normalized distance inside the radius,
// and is always clamped to at least 0.1 so geometry never degenerates.
func (h *HoverField) ScaleAt(x, y float64) float64 {
	if !h.hasCursor || h.Radius <= 0 {
		return 1
	}

	dist := math.Hypot(x-h.cursorX, y-h.cursorY)
	if dist >= h.Radius {
		return 1
	}
	norm := dist / h.Radius

	var scale float64
	if h.Intensity >= 1 {
		scale = 1 + (h.Intensity-1)*(1-norm)
	} else {
		shrink := math.Abs(h.Intensity)
		minScale := math.Max(0.1, 1/(shrink+1))
		scale = 1 - (1-minScale)*(1-norm)
	}

	if scale < 0.1 {
		scale = 0.1
	}
	return scale
}
