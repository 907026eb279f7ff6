package shapefield

// Particle is one placed shape instance derived from a sample point.
// BaseScale is the pre-hover, pre-animation size multiplier and does not
// depend on whether the point came from raster or SVG sampling.
type Particle struct {
	Position  Vec3
	BaseScale float64
}

// ParticleField owns the current list of normalized sample points. The
// list is replaced wholesale on every rebuild; there is no incremental
// mutation.
type ParticleField struct {
	particles []Particle
}

// Rebuild replaces the entire particle list with one particle per
// source point, each initialized with BaseScale 1. A rebuild with zero
// points is valid and clears the field.
func (f *ParticleField) Rebuild(points []Vec3) {
	if len(points) == 0 {
		f.particles = f.particles[:0]
		return
	}

	if cap(f.particles) < len(points) {
		f.particles = make([]Particle, len(points))
	} else {
		f.particles = f.particles[:len(points)]
	}
	for i, p := range points {
		f.particles[i] = Particle{Position: p, BaseScale: 1}
	}
}

// Len returns the number of particles.
func (f *ParticleField) Len() int {
	return len(f.particles)
}

// Particles returns the particle list in index order. The slice is
// owned by the field and valid until the next Rebuild.
func (f *ParticleField) Particles() []Particle {
	return f.particles
}

// At returns the particle at index i.
func (f *ParticleField) At(i int) Particle {
	return f.particles[i]
}
