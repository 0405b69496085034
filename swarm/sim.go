// Package swarm implements the point-cloud simulation core: columnar
// particle state, target-shape sampling, the influence-point state machine,
// and the per-tick force model. It knows nothing about rendering or input;
// it consumes one influence Sample per tick and publishes position and
// color buffers for a renderer to read.
package swarm

import (
	"fmt"
	"math"
	"math/rand"
)

// Params are the runtime tunables of the force model. They can change
// between ticks (UI sliders) without restarting the simulation; Count
// changes trigger a full buffer and shape-set rebuild.
type Params struct {
	Count int

	ReturnStrength    float32
	AttractStrength   float32
	RepelStrength     float32
	InteractionRadius float32
	Friction          float32
	ImpulseStrength   float32
	SpeedThreshold    float32
	ColorGain         float32

	Smoothing     float32
	LostSmoothing float32
}

// Palette is the kinetic color ramp.
type Palette struct {
	Base [3]float32
	Hot  [3]float32
}

// StepInfo reports what happened during one tick.
type StepInfo struct {
	Impulse bool
}

// Simulation owns the particle store, the shape set, and the influence
// controller, and advances them one tick at a time. It has no internal
// concurrency beyond the worker pool inside Step; the caller drives it
// from a single goroutine at whatever rate it likes.
type Simulation struct {
	store  *Store
	shapes ShapeSet
	shape  Shape

	ctrl *InfluenceController
	pool *pool
	rng  *rand.Rand

	params   Params
	palette  Palette
	geo      Geometry
	sentinel float32

	tick int64
}

// NewSimulation builds the shape set, allocates the store, and starts the
// swarm at rest on the initial shape.
func NewSimulation(params Params, palette Palette, geo Geometry, initial Shape, sentinel float32, seed int64) (*Simulation, error) {
	rng := rand.New(rand.NewSource(seed))

	shapes, err := NewShapeSet(params.Count, geo, rng)
	if err != nil {
		return nil, err
	}

	s := &Simulation{
		store:    NewStore(params.Count),
		shapes:   shapes,
		shape:    initial,
		ctrl:     NewInfluenceController(params.Smoothing, params.LostSmoothing, sentinel),
		pool:     newPool(),
		rng:      rng,
		params:   params,
		palette:  palette,
		geo:      geo,
		sentinel: sentinel,
	}

	buf, ok := shapes[initial]
	if !ok {
		return nil, fmt.Errorf("swarm: unknown initial shape %q", initial)
	}
	if err := s.store.SetTarget(buf); err != nil {
		return nil, err
	}
	s.store.SnapToTarget()
	s.paintResting()
	s.store.Publish()

	return s, nil
}

// paintResting fills the color buffer with the base color so the first
// published frame is coherent before any tick has run.
func (s *Simulation) paintResting() {
	col := s.store.col
	for i := 0; i < len(col); i += 3 {
		col[i] = s.palette.Base[0]
		col[i+1] = s.palette.Base[1]
		col[i+2] = s.palette.Base[2]
	}
}

// Step advances the simulation by exactly one tick: ingest the influence
// sample, apply the scatter impulse if the gesture edge fired, run the
// force kernel over every particle, and publish the render snapshot.
func (s *Simulation) Step(sample Sample) StepInfo {
	impulse := s.ctrl.Observe(sample)
	if impulse {
		applyImpulse(s.store.vel, s.params.ImpulseStrength, s.rng)
	}

	tp := s.tickParams()
	s.pool.dispatch(s.store.n, func(start, end int) {
		integrateChunk(s.store, &tp, start, end)
	})

	s.store.Publish()
	s.tick++

	return StepInfo{Impulse: impulse}
}

// tickParams snapshots the tunables and influence state for one tick. The
// attract/repel branch is resolved here, once per tick, not per particle.
func (s *Simulation) tickParams() tickParams {
	origin := s.ctrl.Origin()
	raw := s.ctrl.Raw()

	tp := tickParams{
		friction: s.params.Friction,
		kReturn:  s.params.ReturnStrength,
		radius:   s.params.InteractionRadius,

		originX: origin[0], originY: origin[1], originZ: origin[2],
		rawX: raw[0], rawY: raw[1], rawZ: raw[2],

		speedThreshold: s.params.SpeedThreshold,
		colorGain:      s.params.ColorGain,
		baseR:          s.palette.Base[0],
		baseG:          s.palette.Base[1],
		baseB:          s.palette.Base[2],
		hotR:           s.palette.Hot[0],
		hotG:           s.palette.Hot[1],
		hotB:           s.palette.Hot[2],
	}

	if s.ctrl.Mode() == Attracting {
		tp.attract = true
		tp.kProx = s.params.AttractStrength
	} else {
		tp.kProx = s.params.RepelStrength
	}
	return tp
}

// SelectShape bulk-copies the named shape's buffer into the target buffer.
// Particle positions and velocities are untouched; the spring does the
// morphing over the following ticks.
func (s *Simulation) SelectShape(sh Shape) error {
	buf, ok := s.shapes[sh]
	if !ok {
		return fmt.Errorf("swarm: unknown shape %q", sh)
	}
	if err := s.store.SetTarget(buf); err != nil {
		return err
	}
	s.shape = sh
	return nil
}

// CurrentShape returns the selected shape.
func (s *Simulation) CurrentShape() Shape {
	return s.shape
}

// SetParams replaces the tunables. A Count change rebuilds the store and
// shape set together so buffer alignment is never observably broken.
func (s *Simulation) SetParams(p Params) error {
	if p.Count != s.params.Count {
		if err := s.resize(p.Count); err != nil {
			return err
		}
	}
	s.params = p
	s.ctrl.SetSmoothing(p.Smoothing, p.LostSmoothing)
	return nil
}

// Params returns the current tunables.
func (s *Simulation) Params() Params {
	return s.params
}

// resize reallocates the store and resamples every shape at the new count,
// then restarts the swarm at rest on the current shape.
func (s *Simulation) resize(n int) error {
	if n < 1 {
		return fmt.Errorf("swarm: particle count must be >= 1, got %d", n)
	}
	shapes, err := NewShapeSet(n, s.geo, s.rng)
	if err != nil {
		return err
	}

	s.store = NewStore(n)
	s.shapes = shapes
	if err := s.store.SetTarget(shapes[s.shape]); err != nil {
		return err
	}
	s.store.SnapToTarget()
	s.paintResting()
	s.store.Publish()
	return nil
}

// Frame returns the published position and color buffers (read-only).
func (s *Simulation) Frame() (positions, colors []float32) {
	return s.store.Frame()
}

// Influence exposes the controller state for rendering the marker.
func (s *Simulation) Influence() (origin [3]float32, mode Mode) {
	return s.ctrl.Origin(), s.ctrl.Mode()
}

// Tick returns the number of completed ticks.
func (s *Simulation) Tick() int64 {
	return s.tick
}

// Count returns the particle count.
func (s *Simulation) Count() int {
	return s.store.n
}

// Kinetics summarizes the swarm's kinetic state for telemetry: per-particle
// speeds and the RMS displacement from the world-space target.
type Kinetics struct {
	Speeds          []float64
	DisplacementRMS float64
}

// Kinetics computes the current kinetic summary. Called at window
// granularity, not per tick, so the float64 conversion cost is irrelevant.
func (s *Simulation) Kinetics() Kinetics {
	n := s.store.n
	origin := s.ctrl.Origin()
	speeds := make([]float64, n)

	var sumSq float64
	for i := 0; i < n; i++ {
		j := 3 * i
		vx := float64(s.store.vel[j])
		vy := float64(s.store.vel[j+1])
		vz := float64(s.store.vel[j+2])
		speeds[i] = math.Sqrt(vx*vx + vy*vy + vz*vz)

		dx := float64(s.store.pos[j] - (s.store.target[j] + origin[0]))
		dy := float64(s.store.pos[j+1] - (s.store.target[j+1] + origin[1]))
		dz := float64(s.store.pos[j+2] - (s.store.target[j+2] + origin[2]))
		sumSq += dx*dx + dy*dy + dz*dz
	}

	return Kinetics{
		Speeds:          speeds,
		DisplacementRMS: math.Sqrt(sumSq / float64(n)),
	}
}

// Close shuts down the worker pool.
func (s *Simulation) Close() {
	s.pool.stop()
}
