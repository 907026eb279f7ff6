package shapefield

import "math"

// Mat4 is a 4x4 transform in column-major order, the layout instance
// buffers expect. Element (row, col) lives at index col*4+row.
type Mat4 [16]float64

// ComposeTRS builds translate * rotate * scale with rotation applied
// about X first, then Y. Scale is uniform.
func ComposeTRS(pos Vec3, rx, ry, scale float64) Mat4 {
	sy, cy := math.Sincos(ry)
	sx, cx := math.Sincos(rx)

	// Ry * Rx.
	r00, r01, r02 := cy, sy*sx, sy*cx
	r10, r11, r12 := 0.0, cx, -sx
	r20, r21, r22 := -sy, cy*sx, cy*cx

	return Mat4{
		r00 * scale, r10 * scale, r20 * scale, 0,
		r01 * scale, r11 * scale, r21 * scale, 0,
		r02 * scale, r12 * scale, r22 * scale, 0,
		pos.X, pos.Y, pos.Z, 1,
	}
}

// phaseStep is the per-index rotation stagger. Purely cosmetic: it
// keeps neighboring instances out of rotational lockstep.
const phaseStep = 0.1

// UpdateInstances computes one transform per particle, in particle
// order. Index stability is required because the renderer's instance
// buffer is positionally addressed.
//
// Per particle i: position unchanged; rotation (angle+phase, angle+
// phase, 0) with phase = (i*0.1) mod 2pi; scale = shapeSize * baseScale
// * hoverScale. hoverScale may be nil, meaning 1 everywhere.
//
// The result reuses dst when it has capacity. Callers recompute every
// frame since angle advances continuously during animation.
func UpdateInstances(dst []Mat4, particles []Particle, angle, shapeSize float64, hoverScale func(i int, p Particle) float64) []Mat4 {
	if cap(dst) < len(particles) {
		dst = make([]Mat4, len(particles))
	} else {
		dst = dst[:len(particles)]
	}

	for i, p := range particles {
		phase := math.Mod(float64(i)*phaseStep, 2*math.Pi)
		rot := angle + phase

		scale := shapeSize * p.BaseScale
		if hoverScale != nil {
			scale *= hoverScale(i, p)
		}

		dst[i] = ComposeTRS(p.Position, rot, rot, scale)
	}
	return dst
}
