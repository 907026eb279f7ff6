package shapefield

import (
	"fmt"
	"math"
	"strconv"
)

// SVG path data parsing. Descriptors produced by the svg package carry
// their geometry as path data strings; this parser turns them back into
// Path geometry. All ten commands (M L H V C S Q T A Z) are supported
// in absolute and relative form. Arc commands are converted to cubic
// Bezier segments at parse time using the endpoint-to-center
// parameterization, so downstream geometry only ever sees the four
// element kinds plus Close.

// ParsePathData parses an SVG path data string into a Path.
// Errors wrap ErrInvalidPathData.
func ParsePathData(d string) (*Path, error) {
	p, err := parsePathData(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPathData, err)
	}
	return p, nil
}

func parsePathData(d string) (*Path, error) {
	p := NewPath()
	sc := &pathScanner{src: d}
	sc.skipSeparators()
	if sc.done() {
		return p, nil
	}

	var cur, start Point
	var lastCubicCtrl, lastQuadCtrl Point
	prevCmd := byte(0)

	for !sc.done() {
		cmd := sc.peek()
		if isCommandByte(cmd) {
			sc.next()
		} else {
			// Coordinates without a command repeat the previous one;
			// after a moveto the implicit command is lineto.
			switch prevCmd {
			case 0:
				return nil, fmt.Errorf("path data must start with a command at position %d", sc.pos)
			case 'M':
				cmd = 'L'
			case 'm':
				cmd = 'l'
			case 'Z', 'z':
				// Closepath takes no arguments and cannot repeat.
				return nil, fmt.Errorf("coordinates after closepath at position %d", sc.pos)
			default:
				cmd = prevCmd
			}
		}

		rel := cmd >= 'a' && cmd <= 'z'
		upper := cmd
		if rel {
			upper -= 'a' - 'A'
		}

		switch upper {
		case 'M':
			x, y, err := sc.coordPair()
			if err != nil {
				return nil, err
			}
			if rel {
				x += cur.X
				y += cur.Y
			}
			p.MoveTo(x, y)
			cur = Pt(x, y)
			start = cur

		case 'L':
			x, y, err := sc.coordPair()
			if err != nil {
				return nil, err
			}
			if rel {
				x += cur.X
				y += cur.Y
			}
			p.LineTo(x, y)
			cur = Pt(x, y)

		case 'H':
			x, err := sc.number()
			if err != nil {
				return nil, err
			}
			if rel {
				x += cur.X
			}
			p.LineTo(x, cur.Y)
			cur.X = x

		case 'V':
			y, err := sc.number()
			if err != nil {
				return nil, err
			}
			if rel {
				y += cur.Y
			}
			p.LineTo(cur.X, y)
			cur.Y = y

		case 'C':
			nums, err := sc.numbers(6)
			if err != nil {
				return nil, err
			}
			if rel {
				for i := 0; i < 6; i += 2 {
					nums[i] += cur.X
					nums[i+1] += cur.Y
				}
			}
			p.CubicTo(nums[0], nums[1], nums[2], nums[3], nums[4], nums[5])
			lastCubicCtrl = Pt(nums[2], nums[3])
			cur = Pt(nums[4], nums[5])

		case 'S':
			nums, err := sc.numbers(4)
			if err != nil {
				return nil, err
			}
			if rel {
				for i := 0; i < 4; i += 2 {
					nums[i] += cur.X
					nums[i+1] += cur.Y
				}
			}
			// First control point reflects the previous cubic control,
			// or coincides with the current point after other commands.
			c1 := cur
			if prevUpper(prevCmd) == 'C' || prevUpper(prevCmd) == 'S' {
				c1 = cur.Mul(2).Sub(lastCubicCtrl)
			}
			p.CubicTo(c1.X, c1.Y, nums[0], nums[1], nums[2], nums[3])
			lastCubicCtrl = Pt(nums[0], nums[1])
			cur = Pt(nums[2], nums[3])

		case 'Q':
			nums, err := sc.numbers(4)
			if err != nil {
				return nil, err
			}
			if rel {
				for i := 0; i < 4; i += 2 {
					nums[i] += cur.X
					nums[i+1] += cur.Y
				}
			}
			p.QuadraticTo(nums[0], nums[1], nums[2], nums[3])
			lastQuadCtrl = Pt(nums[0], nums[1])
			cur = Pt(nums[2], nums[3])

		case 'T':
			x, y, err := sc.coordPair()
			if err != nil {
				return nil, err
			}
			if rel {
				x += cur.X
				y += cur.Y
			}
			ctrl := cur
			if prevUpper(prevCmd) == 'Q' || prevUpper(prevCmd) == 'T' {
				ctrl = cur.Mul(2).Sub(lastQuadCtrl)
			}
			p.QuadraticTo(ctrl.X, ctrl.Y, x, y)
			lastQuadCtrl = ctrl
			cur = Pt(x, y)

		case 'A':
			rx, err := sc.number()
			if err != nil {
				return nil, err
			}
			ry, err := sc.number()
			if err != nil {
				return nil, err
			}
			rot, err := sc.number()
			if err != nil {
				return nil, err
			}
			large, err := sc.flag()
			if err != nil {
				return nil, err
			}
			sweep, err := sc.flag()
			if err != nil {
				return nil, err
			}
			x, y, err := sc.coordPair()
			if err != nil {
				return nil, err
			}
			if rel {
				x += cur.X
				y += cur.Y
			}
			arcToCubics(p, cur, rx, ry, rot, large, sweep, Pt(x, y))
			cur = Pt(x, y)

		case 'Z':
			p.Close()
			cur = start

		default:
			return nil, fmt.Errorf("unknown path command %q at position %d", cmd, sc.pos)
		}

		prevCmd = cmd
		sc.skipSeparators()
	}

	return p, nil
}

// prevUpper returns the uppercase form of a command byte.
func prevUpper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

func isCommandByte(c byte) bool {
	return (c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z') && c != 'e' && c != 'E'
}

// pathScanner tokenizes path data: commands, numbers, and arc flags
// separated by whitespace or commas.
type pathScanner struct {
	src string
	pos int
}

func (sc *pathScanner) done() bool {
	return sc.pos >= len(sc.src)
}

func (sc *pathScanner) peek() byte {
	return sc.src[sc.pos]
}

func (sc *pathScanner) next() byte {
	c := sc.src[sc.pos]
	sc.pos++
	return c
}

func (sc *pathScanner) skipSeparators() {
	for sc.pos < len(sc.src) {
		switch sc.src[sc.pos] {
		case ' ', '\t', '\n', '\r', ',':
			sc.pos++
		default:
			return
		}
	}
}

// number scans one floating point literal.
func (sc *pathScanner) number() (float64, error) {
	sc.skipSeparators()
	begin := sc.pos
	if sc.pos < len(sc.src) && (sc.src[sc.pos] == '+' || sc.src[sc.pos] == '-') {
		sc.pos++
	}
	digits := false
	for sc.pos < len(sc.src) && sc.src[sc.pos] >= '0' && sc.src[sc.pos] <= '9' {
		sc.pos++
		digits = true
	}
	if sc.pos < len(sc.src) && sc.src[sc.pos] == '.' {
		sc.pos++
		for sc.pos < len(sc.src) && sc.src[sc.pos] >= '0' && sc.src[sc.pos] <= '9' {
			sc.pos++
			digits = true
		}
	}
	if !digits {
		return 0, fmt.Errorf("expected number at position %d in path data", begin)
	}
	if sc.pos < len(sc.src) && (sc.src[sc.pos] == 'e' || sc.src[sc.pos] == 'E') {
		mark := sc.pos
		sc.pos++
		if sc.pos < len(sc.src) && (sc.src[sc.pos] == '+' || sc.src[sc.pos] == '-') {
			sc.pos++
		}
		expDigits := false
		for sc.pos < len(sc.src) && sc.src[sc.pos] >= '0' && sc.src[sc.pos] <= '9' {
			sc.pos++
			expDigits = true
		}
		if !expDigits {
			sc.pos = mark
		}
	}
	v, err := strconv.ParseFloat(sc.src[begin:sc.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("bad number %q in path data: %w", sc.src[begin:sc.pos], err)
	}
	return v, nil
}

// numbers scans n consecutive floating point literals.
func (sc *pathScanner) numbers(n int) ([]float64, error) {
	out := make([]float64, n)
	for i := range out {
		v, err := sc.number()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (sc *pathScanner) coordPair() (float64, float64, error) {
	x, err := sc.number()
	if err != nil {
		return 0, 0, err
	}
	y, err := sc.number()
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

// flag scans an arc flag, which per the grammar is a bare '0' or '1'
// that may be run together with the following number.
func (sc *pathScanner) flag() (bool, error) {
	sc.skipSeparators()
	if sc.done() {
		return false, fmt.Errorf("expected arc flag at end of path data")
	}
	switch sc.next() {
	case '0':
		return false, nil
	case '1':
		return true, nil
	}
	return false, fmt.Errorf("arc flag must be 0 or 1 at position %d", sc.pos-1)
}

// arcToCubics appends cubic Bezier approximations of an elliptical arc
// from cur to end, following the endpoint-to-center conversion in the
// SVG implementation notes (F.6.5). Degenerate radii collapse to a
// straight line.
func arcToCubics(p *Path, cur Point, rx, ry, rotDeg float64, largeArc, sweep bool, end Point) {
	if rx == 0 || ry == 0 {
		p.LineTo(end.X, end.Y)
		return
	}
	if cur == end {
		return
	}
	rx = math.Abs(rx)
	ry = math.Abs(ry)

	phi := rotDeg * math.Pi / 180
	sinPhi, cosPhi := math.Sincos(phi)

	// Midpoint in the rotated frame.
	dx := (cur.X - end.X) / 2
	dy := (cur.Y - end.Y) / 2
	x1p := cosPhi*dx + sinPhi*dy
	y1p := -sinPhi*dx + cosPhi*dy

	// Scale radii up if the endpoints are too far apart.
	lambda := x1p*x1p/(rx*rx) + y1p*y1p/(ry*ry)
	if lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	rxSq, rySq := rx*rx, ry*ry
	x1pSq, y1pSq := x1p*x1p, y1p*y1p

	denom := rxSq*y1pSq + rySq*x1pSq
	if denom == 0 {
		p.LineTo(end.X, end.Y)
		return
	}
	num := rxSq*rySq - denom
	if num < 0 {
		num = 0
	}
	root := math.Sqrt(num / denom)
	if largeArc == sweep {
		root = -root
	}
	cxp := root * rx * y1p / ry
	cyp := -root * ry * x1p / rx

	cx := cosPhi*cxp - sinPhi*cyp + (cur.X+end.X)/2
	cy := sinPhi*cxp + cosPhi*cyp + (cur.Y+end.Y)/2

	theta1 := vectorAngle(1, 0, (x1p-cxp)/rx, (y1p-cyp)/ry)
	dTheta := vectorAngle((x1p-cxp)/rx, (y1p-cyp)/ry, (-x1p-cxp)/rx, (-y1p-cyp)/ry)
	if !sweep && dTheta > 0 {
		dTheta -= 2 * math.Pi
	} else if sweep && dTheta < 0 {
		dTheta += 2 * math.Pi
	}

	// One cubic per quarter turn keeps the approximation error well
	// below the flattening tolerance.
	segments := int(math.Ceil(math.Abs(dTheta) / (math.Pi / 2)))
	if segments < 1 {
		segments = 1
	}
	delta := dTheta / float64(segments)

	evalArc := func(a float64) (Point, Point) {
		sinA, cosA := math.Sincos(a)
		pt := Point{
			X: cx + rx*cosA*cosPhi - ry*sinA*sinPhi,
			Y: cy + rx*cosA*sinPhi + ry*sinA*cosPhi,
		}
		deriv := Point{
			X: -rx*sinA*cosPhi - ry*cosA*sinPhi,
			Y: -rx*sinA*sinPhi + ry*cosA*cosPhi,
		}
		return pt, deriv
	}

	// Herman's alpha for cubic approximation of an arc segment.
	t := math.Tan(delta / 2)
	alpha := math.Sin(delta) * (math.Sqrt(4+3*t*t) - 1) / 3

	a1 := theta1
	for i := 0; i < segments; i++ {
		a2 := a1 + delta
		p1, d1 := evalArc(a1)
		p2, d2 := evalArc(a2)
		p.CubicTo(
			p1.X+alpha*d1.X, p1.Y+alpha*d1.Y,
			p2.X-alpha*d2.X, p2.Y-alpha*d2.Y,
			p2.X, p2.Y,
		)
		a1 = a2
	}
}

// vectorAngle returns the signed angle between vectors (ux, uy) and
// (vx, vy).
func vectorAngle(ux, uy, vx, vy float64) float64 {
	sign := 1.0
	if ux*vy-uy*vx < 0 {
		sign = -1
	}
	dot := ux*vx + uy*vy
	mag := math.Sqrt((ux*ux + uy*uy) * (vx*vx + vy*vy))
	if mag == 0 {
		return 0
	}
	cos := dot / mag
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return sign * math.Acos(cos)
}
