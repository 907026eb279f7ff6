package shapefield

import (
	"github.com/gogpu/shapefield/svg"
)

// SampleOptions selects which regions of a parsed document contribute
// sample points.
type SampleOptions struct {
	// IncludeOutline samples along each path's boundary at fixed
	// arc-length increments.
	IncludeOutline bool

	// IncludeFill samples the interior of filled paths on a honeycomb
	// grid.
	IncludeFill bool

	// MergeOverlapping drops points that land within spacing/2 of an
	// already retained point.
	MergeOverlapping bool
}

// DefaultSampleOptions samples outline and fill and merges overlaps.
func DefaultSampleOptions() SampleOptions {
	return SampleOptions{IncludeOutline: true, IncludeFill: true, MergeOverlapping: true}
}

// SampleDocument samples every path of a parsed SVG document at the
// given spacing. Coordinates come back in SVG user space, y-down,
// pre-normalization. Descriptors whose path data or transform cannot be
// parsed are skipped with a warning; they never fail the whole
// document.
func SampleDocument(doc *svg.Document, spacing float64, opts SampleOptions) []Vec3 {
	if doc == nil || spacing <= 0 {
		return nil
	}

	var points []Vec3
	for _, desc := range doc.Paths {
		path, err := compileDescriptor(desc)
		if err != nil {
			Logger().Warn("shapefield: skipping path", "error", err)
			continue
		}
		if path.Empty() {
			continue
		}

		if opts.IncludeOutline {
			points = appendOutlinePoints(points, path, spacing)
		}
		if opts.IncludeFill && desc.HasFill {
			rule := FillNonZero
			if desc.EvenOdd {
				rule = FillEvenOdd
			}
			points = appendFillPoints(points, path, spacing, rule)
		}
	}

	if opts.MergeOverlapping {
		points = RemoveOverlapping(points, spacing/2)
	}

	Logger().Debug("shapefield: sampled document",
		"paths", len(doc.Paths), "points", len(points), "spacing", spacing)
	return points
}

// compileDescriptor turns a descriptor's data and transform strings into
// transformed path geometry. The transform is applied before any length
// or bounding-box computation so sampled points are in document space.
func compileDescriptor(desc svg.PathDescriptor) (*Path, error) {
	path, err := ParsePathData(desc.Data)
	if err != nil {
		return nil, err
	}
	if desc.Transform != "" {
		m, err := ParseTransform(desc.Transform)
		if err != nil {
			return nil, err
		}
		if !m.IsIdentity() {
			path = path.Transform(m)
		}
	}
	return path, nil
}

// appendOutlinePoints walks each subpath's arc length in fixed spacing
// increments. The final endpoint is always included even when the last
// increment falls short.
func appendOutlinePoints(dst []Vec3, path *Path, spacing float64) []Vec3 {
	measure := path.Measure(flattenTolerance)
	for i := 0; i < measure.Subpaths(); i++ {
		length := measure.SubpathLength(i)
		if length <= 0 {
			continue
		}
		for d := 0.0; d < length; d += spacing {
			pt := measure.PointAt(i, d)
			dst = append(dst, Vec3{X: pt.X, Y: pt.Y})
		}
		end := measure.PointAt(i, length)
		dst = append(dst, Vec3{X: end.X, Y: end.Y})
	}
	return dst
}

// appendFillPoints scans the path's bounding box on a grid of row
// height spacing, offsetting every other row by spacing/2. The
// honeycomb offset reduces visible axis-aligned aliasing compared to a
// square grid. A grid point is kept iff it lies inside the fill region
// under the given rule.
func appendFillPoints(dst []Vec3, path *Path, spacing float64, rule FillRule) []Vec3 {
	bounds := path.BoundingBox()
	if bounds.Width() <= 0 && bounds.Height() <= 0 {
		return dst
	}

	row := 0
	for y := bounds.Min.Y; y <= bounds.Max.Y; y += spacing {
		xStart := bounds.Min.X
		if row%2 == 1 {
			xStart += spacing / 2
		}
		for x := xStart; x <= bounds.Max.X; x += spacing {
			if path.Contains(Pt(x, y), rule) {
				dst = append(dst, Vec3{X: x, Y: y})
			}
		}
		row++
	}
	return dst
}

// RemoveOverlapping greedily scans points in order and drops any point
// whose squared distance to an already retained point is below
// minDist squared. The first-seen point wins. O(n*n), acceptable at the
// expected particle counts of hundreds to low thousands.
func RemoveOverlapping(points []Vec3, minDist float64) []Vec3 {
	if len(points) < 2 || minDist <= 0 {
		return points
	}

	threshold := minDist * minDist
	kept := make([]Vec3, 0, len(points))
	for _, p := range points {
		ok := true
		for _, q := range kept {
			if p.DistanceSquared(q) < threshold {
				ok = false
				break
			}
		}
		if ok {
			kept = append(kept, p)
		}
	}
	return kept
}
