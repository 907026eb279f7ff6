package shapefield

import (
	"context"
	"time"

	"github.com/gogpu/shapefield/svg"
	"github.com/gogpu/shapefield/text"
)

// ShapeType selects which shape is instanced at every sample point.
type ShapeType int

const (
	ShapeSphere ShapeType = iota
	ShapeCube
	// ShapeModel uses imported geometry; until an import resolves the
	// prior geometry or a default primitive stays active.
	ShapeModel
)

// InteractionMode selects what drives the hover cursor.
type InteractionMode int

const (
	// ModePointer uses positions fed through SetPointer.
	ModePointer InteractionMode = iota

	// ModeAuto uses the synthetic AutoMotion cursor.
	ModeAuto
)

// LoopState is the frame scheduler state. Animating and HoverOnly are
// mutually exclusive: enabling animation cancels the hover loop, and
// disabling animation resumes it iff hover is enabled.
type LoopState int

const (
	LoopIdle LoopState = iota
	LoopAnimating
	LoopHoverOnly
)

// SceneConfig is the mutable parameter set exposed to the UI layer.
// Every field is independently settable through SceneState; setters for
// sampling-relevant fields trigger a particle rebuild.
type SceneConfig struct {
	Text       string
	FontSize   float64
	LineHeight float64
	OffsetX    float64
	OffsetY    float64

	Shape     ShapeType
	ShapeSize float64
	Spacing   float64

	Material  MaterialMode
	Color     [3]float64
	Metalness float64
	Roughness float64

	AnimationEnabled bool
	AnimationSpeed   float64

	HoverEnabled   bool
	HoverRadius    float64
	HoverIntensity float64

	Mode        InteractionMode
	AutoPattern AutoPattern
	AutoSpeed   float64
	AutoSize    float64
	AutoDebug   bool
}

// DefaultConfig returns the starting parameter set.
func DefaultConfig() SceneConfig {
	return SceneConfig{
		Text:             "GO",
		FontSize:         200,
		LineHeight:       1.2,
		ShapeSize:        1,
		Spacing:          10,
		Material:         MaterialReflective,
		Color:            [3]float64{1, 1, 1},
		Metalness:        0.9,
		Roughness:        0.1,
		AnimationEnabled: true,
		AnimationSpeed:   1,
		HoverEnabled:     true,
		HoverRadius:      100,
		HoverIntensity:   2,
		AutoSpeed:        1,
		AutoSize:         3,
	}
}

// SceneOption configures a SceneState at construction.
type SceneOption func(*SceneState)

// WithConfig replaces the default starting config.
func WithConfig(cfg SceneConfig) SceneOption {
	return func(s *SceneState) { s.cfg = cfg }
}

// WithRenderer attaches a renderer that Run and Export drive.
func WithRenderer(r Renderer) SceneOption {
	return func(s *SceneState) { s.renderer = r }
}

// WithRasterizer substitutes the text raster backend.
func WithRasterizer(r TextRasterizer) SceneOption {
	return func(s *SceneState) { s.raster = r }
}

// WithFont selects the font used by the default rasterizer.
func WithFont(source *text.FontSource) SceneOption {
	return func(s *SceneState) { s.raster = NewTextRasterizer(source) }
}

// WithProjector substitutes the scene-to-cursor-space projection used
// for hover distances and the trace pattern.
func WithProjector(p Projector) SceneOption {
	return func(s *SceneState) { s.projector = p }
}

// SceneState owns all mutable scene and animation state. It has a
// single logical owner: all methods must be called from one goroutine
// (or otherwise serialized). Sampling is synchronous, so a rebuild
// fully replaces particle state before the next transform update
// reads it.
type SceneState struct {
	cfg           SceneConfig
	width, height int

	field     ParticleField
	hover     HoverField
	auto      *AutoMotion
	raster    TextRasterizer
	projector Projector
	renderer  Renderer

	// Source: doc when an SVG is loaded, else cfg.Text.
	doc      *svg.Document
	geometry *Geometry

	pointerX, pointerY float64
	hasPointer         bool
	autoX, autoY       float64

	angle     float64
	lastStep  float64
	hasLast   bool
	loop      LoopState
	dirty     bool
	instances []Mat4
}

// NewScene creates a scene for a canvas of the given pixel size.
func NewScene(width, height int, opts ...SceneOption) *SceneState {
	s := &SceneState{
		cfg:    DefaultConfig(),
		width:  width,
		height: height,
		dirty:  true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.raster == nil {
		s.raster = NewTextRasterizer(nil)
	}
	if s.projector == nil {
		s.projector = OrthoProjector{Width: float64(width), Height: float64(height)}
	}
	s.auto = NewAutoMotion(s.cfg.AutoPattern)
	s.auto.Speed = s.cfg.AutoSpeed
	s.auto.Size = s.cfg.AutoSize
	return s
}

// Config returns a copy of the current parameter set.
func (s *SceneState) Config() SceneConfig { return s.cfg }

// Field exposes the particle field, primarily for the trace pattern
// and tests.
func (s *SceneState) Field() *ParticleField { return &s.field }

// Loop returns the current frame scheduler state.
func (s *SceneState) Loop() LoopState { return s.loop }

func (s *SceneState) markDirty() { s.dirty = true }

// SetText replaces the text source. Loading text clears any SVG
// document.
func (s *SceneState) SetText(t string) {
	s.cfg.Text = t
	s.doc = nil
	s.markDirty()
}

// SetSVG replaces the sampling source with a parsed SVG document.
func (s *SceneState) SetSVG(doc *svg.Document) {
	s.doc = doc
	s.markDirty()
}

// ClearSVG returns to text sampling.
func (s *SceneState) ClearSVG() {
	s.doc = nil
	s.markDirty()
}

func (s *SceneState) SetFontSize(v float64) { s.cfg.FontSize = v; s.markDirty() }
func (s *SceneState) SetLineHeight(v float64) { s.cfg.LineHeight = v; s.markDirty() }

func (s *SceneState) SetOffsets(x, y float64) {
	s.cfg.OffsetX, s.cfg.OffsetY = x, y
	s.markDirty()
}

func (s *SceneState) SetShape(t ShapeType) { s.cfg.Shape = t; s.markDirty() }
func (s *SceneState) SetShapeSize(v float64) { s.cfg.ShapeSize = v; s.markDirty() }
func (s *SceneState) SetSpacing(v float64) { s.cfg.Spacing = v; s.markDirty() }

// SetGeometry swaps in imported model geometry, usually the resolved
// value of an ImportResult. A nil geometry keeps the prior one active.
func (s *SceneState) SetGeometry(g *Geometry) {
	if g == nil {
		return
	}
	s.geometry = g
	s.markDirty()
}

func (s *SceneState) SetMaterial(m MaterialMode) { s.cfg.Material = m }
func (s *SceneState) SetColor(r, g, b float64) { s.cfg.Color = [3]float64{r, g, b} }

func (s *SceneState) SetAnimationEnabled(on bool) { s.cfg.AnimationEnabled = on }
func (s *SceneState) SetAnimationSpeed(v float64) { s.cfg.AnimationSpeed = v }

func (s *SceneState) SetHoverEnabled(on bool) { s.cfg.HoverEnabled = on }
func (s *SceneState) SetHoverRadius(v float64) { s.cfg.HoverRadius = v }
func (s *SceneState) SetHoverIntensity(v float64) { s.cfg.HoverIntensity = v }

// SetInteractionMode switches between pointer and auto cursor input.
// Switching to auto resets auto-motion state.
func (s *SceneState) SetInteractionMode(m InteractionMode) {
	if m == ModeAuto && s.cfg.Mode != ModeAuto {
		s.auto.Reset()
	}
	s.cfg.Mode = m
}

// SetAutoPattern switches the synthetic trajectory and resets its
// state.
func (s *SceneState) SetAutoPattern(p AutoPattern) {
	if p != s.cfg.AutoPattern {
		s.auto.Reset()
	}
	s.cfg.AutoPattern = p
	s.auto.Pattern = p
}

func (s *SceneState) SetAutoSpeed(v float64) { s.cfg.AutoSpeed = v; s.auto.Speed = v }
func (s *SceneState) SetAutoSize(v float64) { s.cfg.AutoSize = v; s.auto.Size = v }
func (s *SceneState) SetAutoDebug(on bool) { s.cfg.AutoDebug = on }

// SetPointer feeds a real pointer position in projection space.
func (s *SceneState) SetPointer(x, y float64) {
	s.pointerX, s.pointerY = x, y
	s.hasPointer = true
}

// ClearPointer removes the pointer, e.g. when it leaves the canvas.
func (s *SceneState) ClearPointer() {
	s.hasPointer = false
}

// Resize changes the canvas size. Sampling depends on it, so the field
// rebuilds.
func (s *SceneState) Resize(width, height int) {
	s.width, s.height = width, height
	if _, ok := s.projector.(OrthoProjector); ok {
		s.projector = OrthoProjector{Width: float64(width), Height: float64(height)}
	}
	s.markDirty()
}

// Rebuild resamples the current source and replaces the particle list.
// Zero resulting particles is valid and clears any displayed instances.
// Rebuild is synchronous and atomic with respect to Step.
func (s *SceneState) Rebuild() {
	start := time.Now()
	step := s.cfg.ShapeSize * s.cfg.Spacing

	var points []Vec3
	if s.doc != nil {
		raw := SampleDocument(s.doc, step, DefaultSampleOptions())
		points = Normalize(raw, s.doc.ViewBox, float64(s.width), float64(s.height), NormalizeOptions{
			Fit:     FitContain,
			Padding: 0.1,
			OffsetX: s.cfg.OffsetX,
			OffsetY: s.cfg.OffsetY,
		})
	} else {
		points = SampleText(s.raster, s.cfg.Text, step, RasterOptions{
			Width:      s.width,
			Height:     s.height,
			FontSize:   s.cfg.FontSize,
			LineHeight: s.cfg.LineHeight,
			OffsetX:    s.cfg.OffsetX,
			OffsetY:    s.cfg.OffsetY,
		})
	}

	s.field.Rebuild(points)
	s.instances = s.instances[:0]
	s.dirty = false

	Logger().Debug("shapefield: rebuilt field",
		"particles", s.field.Len(), "elapsed", time.Since(start))
}

// Step advances the scene to the given wall-clock time in milliseconds
// and recomputes the instance transforms. It must be called every frame
// during animation since the rotation angle advances continuously.
func (s *SceneState) Step(nowMs float64) {
	if s.dirty {
		s.Rebuild()
	}

	// Scheduler transition: animation preempts the hover-only loop.
	switch {
	case s.cfg.AnimationEnabled:
		s.loop = LoopAnimating
	case s.cfg.HoverEnabled:
		s.loop = LoopHoverOnly
	default:
		s.loop = LoopIdle
	}

	var dt float64
	if s.hasLast {
		dt = nowMs - s.lastStep
	}
	s.lastStep = nowMs
	s.hasLast = true

	if s.loop == LoopAnimating {
		s.angle += dt * s.cfg.AnimationSpeed * 0.001
	}

	s.updateCursor(nowMs)

	s.instances = UpdateInstances(s.instances, s.field.Particles(),
		s.angle, s.cfg.ShapeSize, s.hoverScale)
}

func (s *SceneState) updateCursor(nowMs float64) {
	s.hover.Radius = s.cfg.HoverRadius
	s.hover.Intensity = s.cfg.HoverIntensity

	if !s.cfg.HoverEnabled {
		s.hover.ClearCursor()
		return
	}

	switch s.cfg.Mode {
	case ModeAuto:
		x, y := s.auto.Cursor(nowMs, float64(s.width), float64(s.height), &s.field, s.projector)
		s.autoX, s.autoY = x, y
		s.hover.SetCursor(x, y)
	default:
		if s.hasPointer {
			s.hover.SetCursor(s.pointerX, s.pointerY)
		} else {
			s.hover.ClearCursor()
		}
	}
}

func (s *SceneState) hoverScale(_ int, p Particle) float64 {
	x, y := s.projector.Project(p.Position)
	return s.hover.ScaleAt(x, y)
}

// Instances returns the transform array computed by the last Step, one
// column-major 4x4 matrix per particle in particle order. The slice is
// valid until the next Step.
func (s *SceneState) Instances() []Mat4 {
	return s.instances
}

// AutoCursor reports the last synthetic cursor position. ok is false
// unless auto mode produced one and debug surfacing is enabled.
func (s *SceneState) AutoCursor() (x, y float64, ok bool) {
	if !s.cfg.AutoDebug || s.cfg.Mode != ModeAuto {
		return 0, 0, false
	}
	return s.autoX, s.autoY, true
}

// Push writes the current instance transforms to the attached renderer
// and draws a frame.
func (s *SceneState) Push() error {
	if s.renderer == nil {
		return ErrRendererUnavailable
	}
	if err := s.renderer.SetInstances(s.instances); err != nil {
		return err
	}
	return s.renderer.Render()
}

// Run drives the frame loop until the context is canceled. Steps are
// skipped while the scheduler is idle; enabling animation or hover
// through the setters resumes stepping on the next tick.
func (s *SceneState) Run(ctx context.Context, fps int) error {
	if fps <= 0 {
		fps = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			if s.loop == LoopIdle && !s.dirty && !s.cfg.AnimationEnabled && !s.cfg.HoverEnabled {
				continue
			}
			s.Step(float64(now.UnixNano()) / 1e6)
			if s.renderer != nil {
				if err := s.Push(); err != nil {
					return err
				}
			}
		}
	}
}

// GeometryParams returns the renderer geometry request for the current
// shape configuration.
func (s *SceneState) GeometryParams() GeometryParams {
	switch s.cfg.Shape {
	case ShapeCube:
		return GeometryParams{Primitive: PrimitiveCube}
	case ShapeModel:
		if s.geometry != nil {
			return GeometryParams{Primitive: PrimitiveCustom, Custom: s.geometry}
		}
		// Import not resolved yet; fall back to the default primitive.
		return GeometryParams{Primitive: PrimitiveSphere}
	default:
		return GeometryParams{Primitive: PrimitiveSphere}
	}
}

// MaterialParams returns the renderer material request for the current
// configuration.
func (s *SceneState) MaterialParams() MaterialParams {
	return MaterialParams{
		Mode:      s.cfg.Material,
		Color:     s.cfg.Color,
		Metalness: s.cfg.Metalness,
		Roughness: s.cfg.Roughness,
	}
}
