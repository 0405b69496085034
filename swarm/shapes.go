package swarm

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// Shape names a target silhouette.
type Shape string

// Available shapes.
const (
	ShapeSphere Shape = "sphere"
	ShapeCube   Shape = "cube"
	ShapeHeart  Shape = "heart"
	ShapeStar   Shape = "star"
)

// Shapes lists every shape in UI order.
var Shapes = []Shape{ShapeSphere, ShapeCube, ShapeHeart, ShapeStar}

// ParseShape maps a config/UI string to a Shape.
func ParseShape(name string) (Shape, error) {
	for _, sh := range Shapes {
		if string(sh) == name {
			return sh, nil
		}
	}
	return "", fmt.Errorf("swarm: unknown shape %q", name)
}

// ErrSamplerStall reports a rejection sampler that exhausted its attempt
// budget. It signals a configuration problem (degenerate geometry), not a
// transient fault.
var ErrSamplerStall = errors.New("swarm: shape sampler exhausted attempt budget")

// Geometry holds the shape generation parameters.
type Geometry struct {
	SphereRadius    float32
	CubeSize        float32 // full edge length
	HeartScale      float32
	StarOuterRadius float32
	StarInnerRadius float32
	StarDepth       float32

	// MaxAttemptFactor bounds rejection sampling at factor*n candidate
	// draws so a degenerate predicate fails loudly instead of hanging.
	MaxAttemptFactor int
}

// ShapeSet maps each shape to an immutable sample buffer of exactly 3n
// floats. Built once per particle count; buffers are never mutated, only
// bulk-copied into a store's target buffer.
type ShapeSet map[Shape][]float32

// NewShapeSet samples every shape at the given particle count.
func NewShapeSet(n int, geo Geometry, rng *rand.Rand) (ShapeSet, error) {
	set := make(ShapeSet, len(Shapes))
	for _, sh := range Shapes {
		buf, err := SampleShape(sh, n, geo, rng)
		if err != nil {
			return nil, fmt.Errorf("sampling %s: %w", sh, err)
		}
		set[sh] = buf
	}
	return set, nil
}

// SampleShape generates exactly n points approximately uniform over the
// volume of the named solid, centered at the origin, as a flat 3n buffer.
func SampleShape(sh Shape, n int, geo Geometry, rng *rand.Rand) ([]float32, error) {
	switch sh {
	case ShapeSphere:
		return sphereCloud(n, geo.SphereRadius, rng), nil
	case ShapeCube:
		return cubeCloud(n, geo.CubeSize, rng), nil
	case ShapeHeart:
		return rejectionCloud(n, geo.MaxAttemptFactor, rng, heartCandidate(geo.HeartScale))
	case ShapeStar:
		return rejectionCloud(n, geo.MaxAttemptFactor, rng, starCandidate(geo))
	default:
		return nil, fmt.Errorf("swarm: unknown shape %q", sh)
	}
}

// sphereCloud draws n points uniform over a ball of radius r. The cube root
// on the radial draw keeps density uniform across the volume instead of
// piling up at the center. No rejection needed.
func sphereCloud(n int, r float32, rng *rand.Rand) []float32 {
	buf := make([]float32, 0, 3*n)
	for i := 0; i < n; i++ {
		radius := float64(r) * math.Cbrt(rng.Float64())
		theta := rng.Float64() * 2 * math.Pi
		phi := math.Acos(2*rng.Float64() - 1)

		sinPhi := math.Sin(phi)
		buf = append(buf,
			float32(radius*sinPhi*math.Cos(theta)),
			float32(radius*sinPhi*math.Sin(theta)),
			float32(radius*math.Cos(phi)),
		)
	}
	return buf
}

// cubeCloud draws n points uniform over an axis-aligned cube with edge
// length size.
func cubeCloud(n int, size float32, rng *rand.Rand) []float32 {
	half := float64(size) / 2
	buf := make([]float32, 0, 3*n)
	for i := 0; i < n; i++ {
		buf = append(buf,
			float32((rng.Float64()*2-1)*half),
			float32((rng.Float64()*2-1)*half),
			float32((rng.Float64()*2-1)*half),
		)
	}
	return buf
}

// candidateFunc draws one candidate point and reports whether it lies
// inside the solid.
type candidateFunc func(rng *rand.Rand) (x, y, z float64, ok bool)

// rejectionCloud collects exactly n accepted candidates, bounded at
// factor*n draws total. For the shipped geometries acceptance stays well
// above 1/factor, so hitting the bound means the geometry is degenerate.
func rejectionCloud(n, factor int, rng *rand.Rand, draw candidateFunc) ([]float32, error) {
	buf := make([]float32, 0, 3*n)
	maxAttempts := factor * n
	attempts := 0
	for len(buf) < 3*n {
		if attempts >= maxAttempts {
			return nil, fmt.Errorf("%w: %d/%d points after %d attempts",
				ErrSamplerStall, len(buf)/3, n, attempts)
		}
		attempts++
		x, y, z, ok := draw(rng)
		if ok {
			buf = append(buf, float32(x), float32(y), float32(z))
		}
	}
	return buf, nil
}

// heartBound is the half-extent of the unit heart's candidate box. The
// implicit surface fits comfortably inside [-1.5, 1.5]^3.
const heartBound = 1.5

// heartCandidate samples the solid bounded by the implicit surface
// (x^2 + 9/4 y^2 + z^2 - 1)^3 - x^2 z^3 - 9/80 y^2 z^3 < 0, scaled by s.
func heartCandidate(s float32) candidateFunc {
	scale := float64(s)
	return func(rng *rand.Rand) (float64, float64, float64, bool) {
		x := (rng.Float64()*2 - 1) * heartBound
		y := (rng.Float64()*2 - 1) * heartBound
		z := (rng.Float64()*2 - 1) * heartBound
		if !heartInside(x, y, z) {
			return 0, 0, 0, false
		}
		return x * scale, y * scale, z * scale, true
	}
}

// heartInside evaluates the unit heart predicate. z is the vertical axis.
func heartInside(x, y, z float64) bool {
	a := x*x + 2.25*y*y + z*z - 1
	return a*a*a-x*x*z*z*z-0.1125*y*y*z*z*z < 0
}

// starSectors is the rotational symmetry of the star.
const starSectors = 5

// starCandidate samples a 5-pointed star in the xy plane, extruded into a
// slab of the configured depth. A candidate's polar angle is folded into
// one symmetric sector; the acceptance radius interpolates from the outer
// tip radius at the sector bisector down to the inner valley radius at the
// sector boundary.
func starCandidate(geo Geometry) candidateFunc {
	outer := float64(geo.StarOuterRadius)
	inner := float64(geo.StarInnerRadius)
	halfDepth := float64(geo.StarDepth) / 2
	sector := 2 * math.Pi / starSectors

	return func(rng *rand.Rand) (float64, float64, float64, bool) {
		x := (rng.Float64()*2 - 1) * outer
		y := (rng.Float64()*2 - 1) * outer

		r := math.Hypot(x, y)
		angle := math.Atan2(y, x)
		if angle < 0 {
			angle += 2 * math.Pi
		}

		// Fold into one sector and measure distance from the bisector.
		fold := math.Mod(angle+sector/2, sector)
		dist := math.Abs(fold - sector/2)

		// 0 at the bisector (tip), 1 at the sector boundary (valley).
		t := dist / (sector / 2)
		rMax := outer + t*(inner-outer)
		if r > rMax {
			return 0, 0, 0, false
		}

		z := (rng.Float64()*2 - 1) * halfDepth
		return x, y, z, true
	}
}
