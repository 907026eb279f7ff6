package shapefield

import (
	"context"
	"errors"
	"image"
	"math"
	"testing"
)

// solidRasterizer marks every pixel covered, giving a full grid of
// sample points for any non-empty text.
type solidRasterizer struct{}

func (solidRasterizer) Rasterize(s string, opts RasterOptions) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, opts.Width, opts.Height))
	for i := range mask.Pix {
		mask.Pix[i] = 0xff
	}
	return mask
}

// recordingRenderer implements Renderer in memory, tracking calls.
type recordingRenderer struct {
	resizes   [][2]int
	instances []Mat4
	renders   int
	w, h      int
}

func (r *recordingRenderer) CreateGeometry(GeometryParams) error { return nil }
func (r *recordingRenderer) CreateMaterial(MaterialParams) error { return nil }

func (r *recordingRenderer) SetInstances(transforms []Mat4) error {
	r.instances = append(r.instances[:0], transforms...)
	return nil
}

func (r *recordingRenderer) Render() error {
	r.renders++
	return nil
}

func (r *recordingRenderer) Resize(width, height int) error {
	r.resizes = append(r.resizes, [2]int{width, height})
	r.w, r.h = width, height
	return nil
}

func (r *recordingRenderer) ReadPixels() (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, r.w, r.h)), nil
}

func newTestScene() *SceneState {
	// 40x40 canvas with the default spacing of 10 gives a 4x4 grid of
	// particles under the solid rasterizer.
	return NewScene(40, 40, WithRasterizer(solidRasterizer{}))
}

func TestScene_StepRebuildsWhenDirty(t *testing.T) {
	s := newTestScene()
	s.Step(0)

	if got := s.Field().Len(); got != 16 {
		t.Fatalf("Field().Len() = %d, want 16", got)
	}
	if got := len(s.Instances()); got != 16 {
		t.Errorf("len(Instances()) = %d, want 16", got)
	}
}

func TestScene_EmptyTextClearsInstances(t *testing.T) {
	s := newTestScene()
	s.Step(0)
	if len(s.Instances()) == 0 {
		t.Fatal("expected instances before clearing")
	}

	s.SetText("")
	s.Step(16)

	if got := s.Field().Len(); got != 0 {
		t.Errorf("Field().Len() = %d, want 0", got)
	}
	if got := len(s.Instances()); got != 0 {
		t.Errorf("len(Instances()) = %d, want 0", got)
	}
}

func TestScene_LoopStates(t *testing.T) {
	tests := []struct {
		name  string
		anim  bool
		hover bool
		want  LoopState
	}{
		{"animating wins", true, true, LoopAnimating},
		{"animating alone", true, false, LoopAnimating},
		{"hover only", false, true, LoopHoverOnly},
		{"idle", false, false, LoopIdle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScene()
			s.SetAnimationEnabled(tt.anim)
			s.SetHoverEnabled(tt.hover)
			s.Step(0)
			if got := s.Loop(); got != tt.want {
				t.Errorf("Loop() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScene_AngleAdvancesOnlyWhenAnimating(t *testing.T) {
	s := newTestScene()
	s.SetAnimationSpeed(1)
	s.Step(0)
	s.Step(1000)

	if !floatsEqual(s.angle, 1.0, epsilon) {
		t.Errorf("angle after 1000ms at speed 1 = %v, want 1.0", s.angle)
	}

	s.SetAnimationEnabled(false)
	s.Step(2000)
	if !floatsEqual(s.angle, 1.0, epsilon) {
		t.Errorf("angle advanced while animation disabled: %v", s.angle)
	}
}

func TestScene_HoverScalesNearbyInstances(t *testing.T) {
	s := newTestScene()
	s.SetAnimationEnabled(false)
	s.SetHoverRadius(5)
	s.SetHoverIntensity(2)

	// The particle sampled at raster (20,20) projects back onto (20,20).
	s.SetPointer(20, 20)
	s.Step(0)

	inst := s.Instances()
	// Row-major raster scan: index 10 is the particle at (20,20).
	if got := instanceScale(inst[10]); !floatsEqual(got, 2, 1e-9) {
		t.Errorf("hovered instance scale = %v, want 2", got)
	}
	if got := instanceScale(inst[0]); !floatsEqual(got, 1, 1e-9) {
		t.Errorf("distant instance scale = %v, want 1", got)
	}
}

// instanceScale recovers the uniform scale as the length of the first
// basis column.
func instanceScale(m Mat4) float64 {
	return math.Sqrt(m[0]*m[0] + m[1]*m[1] + m[2]*m[2])
}

func TestScene_PushWithoutRenderer(t *testing.T) {
	s := newTestScene()
	s.Step(0)
	if err := s.Push(); !errors.Is(err, ErrRendererUnavailable) {
		t.Errorf("Push() error = %v, want ErrRendererUnavailable", err)
	}
}

func TestScene_PushWritesInstances(t *testing.T) {
	r := &recordingRenderer{}
	s := NewScene(40, 40, WithRasterizer(solidRasterizer{}), WithRenderer(r))
	s.Step(0)

	if err := s.Push(); err != nil {
		t.Fatalf("Push() error = %v", err)
	}
	if len(r.instances) != 16 {
		t.Errorf("renderer received %d instances, want 16", len(r.instances))
	}
	if r.renders != 1 {
		t.Errorf("renders = %d, want 1", r.renders)
	}
}

func TestScene_GeometryParamsModelFallback(t *testing.T) {
	s := newTestScene()
	s.SetShape(ShapeModel)

	if got := s.GeometryParams(); got.Primitive != PrimitiveSphere {
		t.Errorf("unresolved model primitive = %v, want sphere fallback", got.Primitive)
	}

	geom := &Geometry{Positions: []Vec3{{}, {X: 1}, {Y: 1}}, Indices: []uint32{0, 1, 2}}
	s.SetGeometry(geom)

	got := s.GeometryParams()
	if got.Primitive != PrimitiveCustom {
		t.Errorf("resolved model primitive = %v, want custom", got.Primitive)
	}
	if got.Custom != geom {
		t.Error("GeometryParams did not carry the set geometry")
	}
}

func TestScene_SetGeometryNilKeepsPrior(t *testing.T) {
	s := newTestScene()
	geom := &Geometry{Positions: []Vec3{{}}, Indices: []uint32{0}}
	s.SetGeometry(geom)
	s.SetGeometry(nil)

	s.SetShape(ShapeModel)
	if got := s.GeometryParams(); got.Custom != geom {
		t.Error("nil SetGeometry discarded the prior geometry")
	}
}

func TestScene_AutoCursorGating(t *testing.T) {
	s := newTestScene()
	s.Step(0)
	if _, _, ok := s.AutoCursor(); ok {
		t.Error("AutoCursor reported ok in pointer mode")
	}

	s.SetInteractionMode(ModeAuto)
	s.SetAutoDebug(true)
	s.SetAutoPattern(AutoCircle)
	s.Step(16)

	x, y, ok := s.AutoCursor()
	if !ok {
		t.Fatal("AutoCursor not ok in auto mode with debug enabled")
	}
	if x == 0 && y == 0 {
		t.Error("AutoCursor returned a zero position")
	}
}

func TestScene_Export(t *testing.T) {
	r := &recordingRenderer{}
	s := NewScene(40, 40, WithRasterizer(solidRasterizer{}), WithRenderer(r))
	s.Step(0)

	img, err := Export(s, 2)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 80 || b.Dy() != 80 {
		t.Errorf("exported image %dx%d, want 80x80", b.Dx(), b.Dy())
	}

	wantResizes := [][2]int{{80, 80}, {40, 40}}
	if len(r.resizes) != 2 || r.resizes[0] != wantResizes[0] || r.resizes[1] != wantResizes[1] {
		t.Errorf("renderer resizes = %v, want %v", r.resizes, wantResizes)
	}
	if s.width != 40 || s.height != 40 {
		t.Errorf("scene size after export = %dx%d, want 40x40", s.width, s.height)
	}
}

func TestScene_ExportWithoutRenderer(t *testing.T) {
	s := newTestScene()
	if _, err := Export(s, 2); !errors.Is(err, ErrRendererUnavailable) {
		t.Errorf("Export() error = %v, want ErrRendererUnavailable", err)
	}
}

func TestScene_RunCanceledContext(t *testing.T) {
	s := newTestScene()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Run(ctx, 60); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}
