package shapefield

import (
	"math"
	"testing"

	"github.com/gogpu/shapefield/svg"
)

func parseSVG(t *testing.T, src string) *svg.Document {
	t.Helper()
	doc, err := svg.Parse([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestSampleDocument_OutlineIncludesEndpoint(t *testing.T) {
	// An open 10-unit line sampled at spacing 3 walks 0, 3, 6, 9 and
	// must still emit the endpoint at 10.
	doc := parseSVG(t, `<svg viewBox="0 0 10 10"><line x1="0" y1="0" x2="10" y2="0"/></svg>`)

	points := SampleDocument(doc, 3, SampleOptions{IncludeOutline: true})
	if len(points) != 5 {
		t.Fatalf("got %d points (%v), want 5", len(points), points)
	}
	last := points[len(points)-1]
	if !floatsEqual(last.X, 10, 1e-6) || !floatsEqual(last.Y, 0, 1e-6) {
		t.Errorf("final point = %v, want (10, 0)", last)
	}
}

func TestSampleDocument_FillHoneycomb(t *testing.T) {
	doc := parseSVG(t, `<svg viewBox="0 0 20 20"><rect width="20" height="20"/></svg>`)

	points := SampleDocument(doc, 4, SampleOptions{IncludeFill: true})
	if len(points) == 0 {
		t.Fatal("got no fill points")
	}

	// All inside the rect.
	rows := map[float64][]float64{}
	for _, p := range points {
		if p.X < 0 || p.X > 20 || p.Y < 0 || p.Y > 20 {
			t.Fatalf("fill point %v outside the rect", p)
		}
		rows[p.Y] = append(rows[p.Y], p.X)
	}

	// Alternating rows start offset by spacing/2.
	if xs, ok := rows[4]; !ok || xs[0] != 2 {
		t.Errorf("odd row start = %v, want x=2 (honeycomb offset)", rows[4])
	}
	if xs, ok := rows[8]; !ok || xs[0] != 0 {
		t.Errorf("even row start = %v, want x=0", rows[8])
	}
}

func TestSampleDocument_FillSkipsUnfilled(t *testing.T) {
	doc := parseSVG(t, `<svg viewBox="0 0 20 20"><rect width="20" height="20" fill="none"/></svg>`)

	points := SampleDocument(doc, 4, SampleOptions{IncludeFill: true})
	if len(points) != 0 {
		t.Errorf("got %d fill points for fill=none, want 0", len(points))
	}
}

func TestSampleDocument_EvenOddHole(t *testing.T) {
	// Two concentric squares with the even-odd rule: the inner square
	// is a hole, so no fill point lands there.
	doc := parseSVG(t, `<svg viewBox="0 0 30 30">
	  <path d="M0,0 L30,0 L30,30 L0,30 Z M10,10 L20,10 L20,20 L10,20 Z" fill-rule="evenodd"/>
	</svg>`)

	points := SampleDocument(doc, 3, SampleOptions{IncludeFill: true})
	if len(points) == 0 {
		t.Fatal("got no fill points")
	}
	for _, p := range points {
		if p.X > 10.5 && p.X < 19.5 && p.Y > 10.5 && p.Y < 19.5 {
			t.Fatalf("fill point %v inside the even-odd hole", p)
		}
	}
}

func TestSampleDocument_TransformApplied(t *testing.T) {
	// The transform moves the line before measurement, so sampled
	// points are already in document space.
	doc := parseSVG(t, `<svg viewBox="0 0 100 100">
	  <line x1="0" y1="0" x2="10" y2="0" transform="translate(50,50)"/>
	</svg>`)

	points := SampleDocument(doc, 5, SampleOptions{IncludeOutline: true})
	if len(points) == 0 {
		t.Fatal("got no points")
	}
	for _, p := range points {
		if p.X < 50 || p.X > 60 || !floatsEqual(p.Y, 50, 1e-6) {
			t.Fatalf("point %v not in translated position", p)
		}
	}
}

func TestSampleDocument_SkipsBadPaths(t *testing.T) {
	doc := &svg.Document{
		ViewBox: svg.ViewBox{Width: 10, Height: 10},
		Paths: []svg.PathDescriptor{
			{Data: "not a path", HasFill: true},
			{Data: "M0,0 L10,0", Transform: "bogus(", HasFill: true},
			{Data: "M0,0 L10,0"},
		},
	}

	points := SampleDocument(doc, 5, SampleOptions{IncludeOutline: true})
	if len(points) == 0 {
		t.Error("valid path not sampled when siblings are malformed")
	}
}

func TestSampleDocument_Idempotent(t *testing.T) {
	doc := parseSVG(t, `<svg viewBox="0 0 20 20"><circle cx="10" cy="10" r="8"/></svg>`)
	opts := DefaultSampleOptions()

	a := SampleDocument(doc, 2, opts)
	b := SampleDocument(doc, 2, opts)

	if len(a) != len(b) {
		t.Fatalf("runs differ in count: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point[%d] differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestRemoveOverlapping(t *testing.T) {
	tests := []struct {
		name    string
		points  []Vec3
		minDist float64
		want    int
	}{
		{
			name:    "near duplicates collapse",
			points:  []Vec3{{X: 0}, {X: 0.1}, {X: 10}},
			minDist: 1,
			want:    2,
		},
		{
			name:    "spaced points survive",
			points:  []Vec3{{X: 0}, {X: 5}, {X: 10}},
			minDist: 1,
			want:    3,
		},
		{
			name:    "exactly at threshold survives",
			points:  []Vec3{{X: 0}, {X: 1}},
			minDist: 1,
			want:    2,
		},
		{
			name:    "empty",
			points:  nil,
			minDist: 1,
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RemoveOverlapping(tt.points, tt.minDist)
			if len(got) != tt.want {
				t.Errorf("kept %d points, want %d", len(got), tt.want)
			}
		})
	}
}

func TestRemoveOverlapping_FirstSeenWins(t *testing.T) {
	points := []Vec3{{X: 0}, {X: 0.4}, {X: 0.8}}
	got := RemoveOverlapping(points, 0.5)

	if len(got) != 2 {
		t.Fatalf("kept %d points (%v), want 2", len(got), got)
	}
	// 0 survives, 0.4 is dropped against it, 0.8 survives against 0.
	if got[0].X != 0 || got[1].X != 0.8 {
		t.Errorf("kept %v, want first-seen ordering [0, 0.8]", got)
	}
}

func TestRemoveOverlapping_PairwiseProperty(t *testing.T) {
	// After dedup at spacing/2 no two retained points are closer than
	// spacing/2, for an arbitrary cluster.
	var points []Vec3
	for i := 0; i < 50; i++ {
		points = append(points, Vec3{
			X: math.Sin(float64(i) * 1.7),
			Y: math.Cos(float64(i) * 2.3),
		})
	}

	const minDist = 0.5
	kept := RemoveOverlapping(points, minDist)
	for i := range kept {
		for j := i + 1; j < len(kept); j++ {
			if d := math.Sqrt(kept[i].DistanceSquared(kept[j])); d < minDist {
				t.Fatalf("retained points %v and %v are %v apart, want >= %v",
					kept[i], kept[j], d, minDist)
			}
		}
	}
}
