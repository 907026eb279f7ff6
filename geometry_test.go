package shapefield

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"
)

const cubeOBJ = `# unit cube
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
v 0 0 1
v 1 0 1
v 1 1 1
v 0 1 1
f 1 2 3 4
f 5 6 7 8
f 1 2 6 5
f 2 3 7 6
f 3 4 8 7
f 4 1 5 8
`

func TestDecodeGeometry(t *testing.T) {
	t.Run("triangle", func(t *testing.T) {
		g, err := DecodeGeometry(strings.NewReader("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"))
		if err != nil {
			t.Fatalf("DecodeGeometry() error = %v", err)
		}
		if len(g.Positions) != 3 {
			t.Errorf("positions = %d, want 3", len(g.Positions))
		}
		want := []uint32{0, 1, 2}
		if len(g.Indices) != 3 || g.Indices[0] != want[0] || g.Indices[1] != want[1] || g.Indices[2] != want[2] {
			t.Errorf("indices = %v, want %v", g.Indices, want)
		}
	})

	t.Run("quad fan triangulation", func(t *testing.T) {
		g, err := DecodeGeometry(strings.NewReader("v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nf 1 2 3 4\n"))
		if err != nil {
			t.Fatalf("DecodeGeometry() error = %v", err)
		}
		want := []uint32{0, 1, 2, 0, 2, 3}
		if len(g.Indices) != len(want) {
			t.Fatalf("indices = %v, want %v", g.Indices, want)
		}
		for i := range want {
			if g.Indices[i] != want[i] {
				t.Errorf("indices[%d] = %d, want %d", i, g.Indices[i], want[i])
			}
		}
	})

	t.Run("slash and negative references", func(t *testing.T) {
		obj := "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0 0\nvn 0 0 1\nf 1/1/1 2/1/1 -1//1\n"
		g, err := DecodeGeometry(strings.NewReader(obj))
		if err != nil {
			t.Fatalf("DecodeGeometry() error = %v", err)
		}
		want := []uint32{0, 1, 2}
		for i := range want {
			if g.Indices[i] != want[i] {
				t.Errorf("indices[%d] = %d, want %d", i, g.Indices[i], want[i])
			}
		}
	})

	t.Run("cube", func(t *testing.T) {
		g, err := DecodeGeometry(strings.NewReader(cubeOBJ))
		if err != nil {
			t.Fatalf("DecodeGeometry() error = %v", err)
		}
		if len(g.Positions) != 8 {
			t.Errorf("positions = %d, want 8", len(g.Positions))
		}
		// 6 quads fan into 12 triangles.
		if len(g.Indices) != 36 {
			t.Errorf("indices = %d, want 36", len(g.Indices))
		}
	})

	errTests := []struct {
		name    string
		obj     string
		wantErr error
	}{
		{"bad vertex coordinate", "v 0 zero 0\nf 1 1 1\n", ErrLoadError},
		{"short vertex", "v 0 0\n", ErrLoadError},
		{"face index out of range", "v 0 0 0\nf 1 2 3\n", ErrLoadError},
		{"face too short", "v 0 0 0\nf 1 1\n", ErrLoadError},
		{"empty input", "", ErrNoMeshFound},
		{"comments only", "# nothing here\n", ErrNoMeshFound},
		{"vertices without faces", "v 0 0 0\nv 1 0 0\nv 0 1 0\n", ErrNoMeshFound},
	}

	for _, tt := range errTests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeGeometry(strings.NewReader(tt.obj))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("DecodeGeometry() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNormalizeGeometry(t *testing.T) {
	g := &Geometry{
		Positions: []Vec3{
			{X: 10, Y: 20, Z: 30},
			{X: 14, Y: 22, Z: 30},
			{X: 12, Y: 20, Z: 31},
		},
		Indices: []uint32{0, 1, 2},
	}
	NormalizeGeometry(g)

	// Bounding box center moves to the origin.
	lo, hi := g.Positions[0], g.Positions[0]
	for _, p := range g.Positions[1:] {
		lo.X, hi.X = math.Min(lo.X, p.X), math.Max(hi.X, p.X)
		lo.Y, hi.Y = math.Min(lo.Y, p.Y), math.Max(hi.Y, p.Y)
		lo.Z, hi.Z = math.Min(lo.Z, p.Z), math.Max(hi.Z, p.Z)
	}
	if !floatsEqual(lo.X+hi.X, 0, epsilon) || !floatsEqual(lo.Y+hi.Y, 0, epsilon) || !floatsEqual(lo.Z+hi.Z, 0, epsilon) {
		t.Errorf("bounding box not centered: lo=%v hi=%v", lo, hi)
	}

	// Largest dimension becomes exactly 1. Input spans 4 in x.
	if got := hi.X - lo.X; !floatsEqual(got, 1, epsilon) {
		t.Errorf("largest dimension = %v, want 1", got)
	}

	t.Run("degenerate single point", func(t *testing.T) {
		g := &Geometry{Positions: []Vec3{{X: 5, Y: 5, Z: 5}}, Indices: []uint32{0, 0, 0}}
		NormalizeGeometry(g)
		if p := g.Positions[0]; p != (Vec3{}) {
			t.Errorf("single point normalized to %v, want origin", p)
		}
	})

	t.Run("nil passthrough", func(t *testing.T) {
		if got := NormalizeGeometry(nil); got != nil {
			t.Errorf("NormalizeGeometry(nil) = %v, want nil", got)
		}
	})
}

func TestImportGeometry(t *testing.T) {
	t.Run("resolves with normalized mesh", func(t *testing.T) {
		res := ImportGeometry(context.Background(), strings.NewReader(cubeOBJ))

		select {
		case <-res.Done():
		case <-time.After(5 * time.Second):
			t.Fatal("import did not resolve")
		}

		g, err := res.Geometry()
		if err != nil {
			t.Fatalf("Geometry() error = %v", err)
		}
		if len(g.Positions) != 8 {
			t.Errorf("positions = %d, want 8", len(g.Positions))
		}
		for _, p := range g.Positions {
			if math.Abs(p.X) > 0.5+epsilon || math.Abs(p.Y) > 0.5+epsilon || math.Abs(p.Z) > 0.5+epsilon {
				t.Errorf("position %v outside normalized bounds", p)
			}
		}
	})

	t.Run("decode failure", func(t *testing.T) {
		res := ImportGeometry(context.Background(), strings.NewReader("v broken\n"))
		_, err := res.Geometry()
		if !errors.Is(err, ErrLoadError) {
			t.Errorf("Geometry() error = %v, want ErrLoadError", err)
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		res := ImportGeometry(ctx, strings.NewReader(cubeOBJ))
		_, err := res.Geometry()
		if !errors.Is(err, ErrLoadError) {
			t.Errorf("Geometry() error = %v, want ErrLoadError", err)
		}
	})
}
