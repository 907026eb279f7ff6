package shapefield

import (
	"testing"
)

func testRasterOptions() RasterOptions {
	return RasterOptions{
		Width:    800,
		Height:   600,
		FontSize: 200,
	}
}

func TestSampleText_EmptyInput(t *testing.T) {
	r := NewTextRasterizer(nil)

	tests := []struct {
		name string
		text string
	}{
		{"empty string", ""},
		{"spaces", "   "},
		{"newlines and tabs", "\n\t \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := SampleText(r, tt.text, 10, testRasterOptions())
			if len(points) != 0 {
				t.Errorf("got %d points for %q, want 0", len(points), tt.text)
			}
		})
	}
}

func TestSampleText_NonEmptyWithinBounds(t *testing.T) {
	r := NewTextRasterizer(nil)
	points := SampleText(r, "AB", 10, testRasterOptions())

	if len(points) == 0 {
		t.Fatal("got no points for visible text")
	}
	for _, p := range points {
		if p.X < -400 || p.X > 400 || p.Y < -300 || p.Y > 300 {
			t.Fatalf("point %v outside [-400,400]x[-300,300]", p)
		}
		if p.Z != 0 {
			t.Fatalf("point %v has nonzero z for flat input", p)
		}
	}
}

func TestSampleText_Centered(t *testing.T) {
	// A centered glyph block should produce points on both sides of
	// both axes.
	r := NewTextRasterizer(nil)
	points := SampleText(r, "OO", 4, testRasterOptions())
	if len(points) == 0 {
		t.Fatal("got no points")
	}

	var left, right bool
	for _, p := range points {
		if p.X < 0 {
			left = true
		}
		if p.X > 0 {
			right = true
		}
	}
	if !left || !right {
		t.Errorf("points not horizontally centered: left=%v right=%v", left, right)
	}
}

func TestSampleText_Idempotent(t *testing.T) {
	r := NewTextRasterizer(nil)
	opts := testRasterOptions()

	a := SampleText(r, "GO", 10, opts)
	b := SampleText(r, "GO", 10, opts)

	if len(a) != len(b) {
		t.Fatalf("runs differ in count: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point[%d] differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestSampleText_MultiLineTallerThanSingle(t *testing.T) {
	r := NewTextRasterizer(nil)
	opts := testRasterOptions()
	opts.FontSize = 100

	single := SampleText(r, "AB", 5, opts)
	double := SampleText(r, "AB\nAB", 5, opts)

	if len(single) == 0 || len(double) == 0 {
		t.Fatal("got no points")
	}
	if ySpan(double) <= ySpan(single) {
		t.Errorf("two-line span %v not taller than one-line span %v",
			ySpan(double), ySpan(single))
	}
}

func ySpan(points []Vec3) float64 {
	lo, hi := points[0].Y, points[0].Y
	for _, p := range points[1:] {
		lo = min(lo, p.Y)
		hi = max(hi, p.Y)
	}
	return hi - lo
}
