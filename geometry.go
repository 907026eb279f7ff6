package shapefield

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Geometry is an imported triangle mesh in a renderer-neutral form.
type Geometry struct {
	Positions []Vec3
	Indices   []uint32
}

// DecodeGeometry parses Wavefront OBJ data into a Geometry. Only vertex
// positions and triangular faces are read; normals, texture
// coordinates, and materials are ignored. Faces with more than three
// vertices are fan-triangulated.
//
// Returns ErrLoadError when the data cannot be decoded at all and
// ErrNoMeshFound when it decodes but contains no usable triangles.
func DecodeGeometry(r io.Reader) (*Geometry, error) {
	g := &Geometry{}
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%w: short vertex at line %d", ErrLoadError, lineNo)
			}
			var coords [3]float64
			for i := 0; i < 3; i++ {
				v, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("%w: bad vertex at line %d: %v", ErrLoadError, lineNo, err)
				}
				coords[i] = v
			}
			g.Positions = append(g.Positions, Vec3{X: coords[0], Y: coords[1], Z: coords[2]})

		case "f":
			idx, err := faceIndices(fields[1:], len(g.Positions))
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrLoadError, lineNo, err)
			}
			// Fan triangulation for quads and larger.
			for i := 1; i+1 < len(idx); i++ {
				g.Indices = append(g.Indices, idx[0], idx[i], idx[i+1])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadError, err)
	}

	if len(g.Positions) == 0 || len(g.Indices) == 0 {
		return nil, ErrNoMeshFound
	}
	return g, nil
}

// faceIndices resolves OBJ face vertex references, which may be
// "v", "v/vt", "v//vn", or "v/vt/vn" and may be negative (relative to
// the end of the vertex list). Returns zero-based indices.
func faceIndices(refs []string, vertexCount int) ([]uint32, error) {
	if len(refs) < 3 {
		return nil, fmt.Errorf("face needs at least 3 vertices, got %d", len(refs))
	}

	out := make([]uint32, len(refs))
	for i, ref := range refs {
		head, _, _ := strings.Cut(ref, "/")
		n, err := strconv.Atoi(head)
		if err != nil {
			return nil, fmt.Errorf("bad face index %q: %v", ref, err)
		}
		if n < 0 {
			n = vertexCount + n + 1
		}
		if n < 1 || n > vertexCount {
			return nil, fmt.Errorf("face index %d out of range", n)
		}
		out[i] = uint32(n - 1)
	}
	return out, nil
}

// NormalizeGeometry centers the mesh at its bounding-box centroid and
// uniformly scales it so its largest dimension is 1. The scale factor
// is strictly positive, so triangle winding and normal orientation are
// preserved. A nil or empty geometry is returned unchanged.
func NormalizeGeometry(g *Geometry) *Geometry {
	if g == nil || len(g.Positions) == 0 {
		return g
	}

	lo, hi := g.Positions[0], g.Positions[0]
	for _, p := range g.Positions[1:] {
		lo.X = min(lo.X, p.X)
		lo.Y = min(lo.Y, p.Y)
		lo.Z = min(lo.Z, p.Z)
		hi.X = max(hi.X, p.X)
		hi.Y = max(hi.Y, p.Y)
		hi.Z = max(hi.Z, p.Z)
	}

	center := Vec3{
		X: (lo.X + hi.X) / 2,
		Y: (lo.Y + hi.Y) / 2,
		Z: (lo.Z + hi.Z) / 2,
	}
	extent := max(hi.X-lo.X, hi.Y-lo.Y, hi.Z-lo.Z)
	scale := 1.0
	if extent > 0 {
		scale = 1 / extent
	}

	for i, p := range g.Positions {
		g.Positions[i] = p.Sub(center).Mul(scale)
	}
	return g
}

// ImportResult is the future returned by ImportGeometry. It resolves
// exactly once; the Done channel closes when the result is available.
type ImportResult struct {
	done chan struct{}
	geom *Geometry
	err  error
}

// Done returns a channel that closes when the import has resolved.
func (r *ImportResult) Done() <-chan struct{} {
	return r.done
}

// Geometry blocks until the import resolves and returns its result.
func (r *ImportResult) Geometry() (*Geometry, error) {
	<-r.done
	return r.geom, r.err
}

// ImportGeometry decodes and normalizes model data asynchronously and
// returns a future for the result. On failure the caller's previously
// active geometry remains in effect; swapping in the resolved geometry
// is the caller's single-owner responsibility. Callers should run one
// import at a time; when several overlap, last-resolved wins.
func ImportGeometry(ctx context.Context, src io.Reader) *ImportResult {
	res := &ImportResult{done: make(chan struct{})}
	go func() {
		defer close(res.done)

		if err := ctx.Err(); err != nil {
			res.err = fmt.Errorf("%w: %v", ErrLoadError, err)
			return
		}

		g, err := DecodeGeometry(src)
		if err != nil {
			res.err = err
			return
		}
		res.geom = NormalizeGeometry(g)
		Logger().Info("shapefield: model imported",
			"vertices", len(res.geom.Positions), "triangles", len(res.geom.Indices)/3)
	}()
	return res
}
