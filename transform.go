package shapefield

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseTransform parses an SVG transform attribute value into a single
// affine matrix. The input may hold several space-separated function
// calls; they compose left to right, so a descriptor's accumulated
// ancestor transforms (outermost first) parse directly.
//
// Supported functions: translate, scale, rotate (two- and
// three-argument forms), matrix, skewX, skewY. Angles are in degrees,
// as in the attribute syntax. An empty string yields the identity.
// Errors wrap ErrInvalidTransform.
func ParseTransform(s string) (Matrix, error) {
	m, err := parseTransform(s)
	if err != nil {
		return Identity(), fmt.Errorf("%w: %v", ErrInvalidTransform, err)
	}
	return m, nil
}

func parseTransform(s string) (Matrix, error) {
	m := Identity()
	rest := strings.TrimSpace(s)

	for rest != "" {
		open := strings.IndexByte(rest, '(')
		if open < 0 {
			return Identity(), fmt.Errorf("transform %q: missing '('", s)
		}
		closing := strings.IndexByte(rest[open:], ')')
		if closing < 0 {
			return Identity(), fmt.Errorf("transform %q: missing ')'", s)
		}
		closing += open

		name := strings.TrimSpace(rest[:open])
		args, err := parseTransformArgs(rest[open+1 : closing])
		if err != nil {
			return Identity(), fmt.Errorf("transform %q: %w", s, err)
		}

		var fn Matrix
		switch name {
		case "translate":
			switch len(args) {
			case 1:
				fn = Translation(args[0], 0)
			case 2:
				fn = Translation(args[0], args[1])
			default:
				return Identity(), fmt.Errorf("translate takes 1 or 2 arguments, got %d", len(args))
			}
		case "scale":
			switch len(args) {
			case 1:
				fn = Scaling(args[0], args[0])
			case 2:
				fn = Scaling(args[0], args[1])
			default:
				return Identity(), fmt.Errorf("scale takes 1 or 2 arguments, got %d", len(args))
			}
		case "rotate":
			switch len(args) {
			case 1:
				fn = Rotation(radians(args[0]))
			case 3:
				fn = RotationAbout(radians(args[0]), args[1], args[2])
			default:
				return Identity(), fmt.Errorf("rotate takes 1 or 3 arguments, got %d", len(args))
			}
		case "matrix":
			if len(args) != 6 {
				return Identity(), fmt.Errorf("matrix takes 6 arguments, got %d", len(args))
			}
			// Attribute order is a b c d e f, column-major 2x3.
			fn = Matrix{
				A: args[0], B: args[2], C: args[4],
				D: args[1], E: args[3], F: args[5],
			}
		case "skewX":
			if len(args) != 1 {
				return Identity(), fmt.Errorf("skewX takes 1 argument, got %d", len(args))
			}
			fn = SkewX(radians(args[0]))
		case "skewY":
			if len(args) != 1 {
				return Identity(), fmt.Errorf("skewY takes 1 argument, got %d", len(args))
			}
			fn = SkewY(radians(args[0]))
		default:
			return Identity(), fmt.Errorf("unknown transform function %q", name)
		}

		m = m.Multiply(fn)
		rest = strings.TrimLeft(rest[closing+1:], " \t\r\n,")
	}

	return m, nil
}

func parseTransformArgs(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n' || r == '\r'
	})
	args := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("bad argument %q: %w", f, err)
		}
		args = append(args, v)
	}
	return args, nil
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
