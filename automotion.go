package shapefield

import (
	"math"
	"math/rand"
)

// AutoPattern names a deterministic synthetic cursor trajectory.
type AutoPattern int

const (
	// AutoSine traces a lissajous curve with a 1:2 frequency ratio.
	AutoSine AutoPattern = iota

	// AutoInfinity traces the same frequency ratio with larger
	// horizontal and vertical amplitudes, reading as a figure eight.
	AutoInfinity

	// AutoCircle orbits the canvas center.
	AutoCircle

	// AutoRandom eases toward a periodically re-rolled target point.
	AutoRandom

	// AutoTrace walks the sampled particle list in index order.
	AutoTrace
)

// Time and extent multipliers shared by all patterns.
const (
	autoTimeScale   = 0.0003
	autoExtentScale = 0.1
)

// AutoMotion produces a synthetic 2D cursor position over time, used to
// drive the hover effect when no real pointer is present. State is
// pattern-specific and must be Reset when the pattern changes or when
// interaction switches to auto mode.
type AutoMotion struct {
	Pattern AutoPattern

	// Speed scales time advancement and, for random/trace, the
	// retarget interval and step size.
	Speed float64

	// Size scales the spatial extent of every pattern.
	Size float64

	// Random pattern state.
	curX, curY   float64
	tgtX, tgtY   float64
	lastRetarget float64
	initialized  bool
	rng          *rand.Rand

	// Trace pattern state.
	traceIndex int
}

// NewAutoMotion returns a generator with its own random source.
func NewAutoMotion(pattern AutoPattern) *AutoMotion {
	return &AutoMotion{
		Pattern: pattern,
		Speed:   1,
		Size:    3,
		rng:     rand.New(rand.NewSource(rand.Int63())),
	}
}

// Reset clears pattern-specific state. The next Cursor call for the
// random pattern re-initializes at the canvas center; trace restarts at
// the first particle.
func (a *AutoMotion) Reset() {
	a.initialized = false
	a.traceIndex = 0
}

// Cursor returns the synthetic cursor position in projection space for
// the given wall-clock time in milliseconds. The trace pattern reads
// the particle field through the projector; both may be nil for the
// other patterns.
func (a *AutoMotion) Cursor(nowMs, width, height float64, field *ParticleField, project Projector) (x, y float64) {
	cx, cy := width/2, height/2
	t := nowMs * a.Speed * autoTimeScale
	ext := a.Size * autoExtentScale

	switch a.Pattern {
	case AutoSine:
		return cx + math.Sin(t)*0.3*width*ext, cy + math.Sin(2*t)*0.3*height*ext

	case AutoInfinity:
		return cx + math.Sin(t)*0.45*width*ext, cy + math.Sin(2*t)*0.35*height*ext

	case AutoCircle:
		return cx + math.Cos(t)*0.3*width*ext, cy + math.Sin(t)*0.3*height*ext

	case AutoRandom:
		return a.randomCursor(nowMs, width, height, ext)

	case AutoTrace:
		return a.traceCursor(cx, cy, field, project)
	}
	return cx, cy
}

// randomCursor eases exponentially toward a target that is re-rolled
// every 3000/speed milliseconds within a rectangle around the center.
// The first call holds at the center.
func (a *AutoMotion) randomCursor(nowMs, width, height, ext float64) (float64, float64) {
	cx, cy := width/2, height/2
	halfW := 0.3 * width * ext
	halfH := 0.3 * height * ext

	if !a.initialized {
		a.curX, a.curY = cx, cy
		a.tgtX, a.tgtY = cx, cy
		a.lastRetarget = nowMs
		a.initialized = true
		return a.curX, a.curY
	}

	speed := a.Speed
	if speed <= 0 {
		speed = 1
	}
	if nowMs-a.lastRetarget >= 3000/speed {
		if a.rng == nil {
			a.rng = rand.New(rand.NewSource(rand.Int63()))
		}
		a.tgtX = cx + (a.rng.Float64()*2-1)*halfW
		a.tgtY = cy + (a.rng.Float64()*2-1)*halfH
		a.lastRetarget = nowMs
	}

	rate := 0.02 + a.Speed*0.008
	a.curX += (a.tgtX - a.curX) * rate
	a.curY += (a.tgtY - a.curY) * rate
	return a.curX, a.curY
}

// traceCursor advances through the particle list by max(1, floor(speed
// *2)) particles per tick, wrapping modulo the count, and emits that
// particle's projected position. An empty field holds at the center.
func (a *AutoMotion) traceCursor(cx, cy float64, field *ParticleField, project Projector) (float64, float64) {
	if field == nil || field.Len() == 0 || project == nil {
		return cx, cy
	}

	step := int(a.Speed * 2)
	if step < 1 {
		step = 1
	}
	a.traceIndex = (a.traceIndex + step) % field.Len()
	return project.Project(field.At(a.traceIndex).Position)
}
