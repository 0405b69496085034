package swarm

import (
	"math"
	"math/rand"
	"testing"
)

func testParams(n int) Params {
	return Params{
		Count:             n,
		ReturnStrength:    0.05,
		AttractStrength:   0.12,
		RepelStrength:     0.25,
		InteractionRadius: 2.5,
		Friction:          0.9,
		ImpulseStrength:   0.6,
		SpeedThreshold:    0.08,
		ColorGain:         2.0,
		Smoothing:         0.35,
		LostSmoothing:     0.06,
	}
}

func testPalette() Palette {
	return Palette{Base: [3]float32{0.15, 0.45, 1.0}, Hot: [3]float32{1.0, 0.25, 0.55}}
}

func newTestSim(t *testing.T, n int) *Simulation {
	t.Helper()
	s, err := NewSimulation(testParams(n), testPalette(), testGeometry(), ShapeSphere, testSentinel, 42)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(s.Close)
	return s
}

// parkedTickParams returns kernel params with the influence point at the
// sentinel, so only friction and the spring act.
func parkedTickParams(friction, kReturn float32) tickParams {
	return tickParams{
		friction: friction,
		kReturn:  kReturn,
		radius:   2.5,
		rawX:     testSentinel,
		baseR:    0.15, baseG: 0.45, baseB: 1.0,
		hotR: 1.0, hotG: 0.25, hotB: 0.55,
		speedThreshold: 0.08,
		colorGain:      2.0,
	}
}

func TestEquilibriumUnderNoInput(t *testing.T) {
	s := newTestSim(t, 50)

	before, _ := s.Frame()
	initial := make([]float32, len(before))
	copy(initial, before)

	for i := 0; i < 25; i++ {
		s.Step(Sample{Present: false})
	}

	after, _ := s.Frame()
	for i := range after {
		if math.Abs(float64(after[i]-initial[i])) > 1e-6 {
			t.Fatalf("position drifted at equilibrium: index %d, %v -> %v", i, initial[i], after[i])
		}
	}
}

// The linear recurrence from damping before the force terms:
// v' = f*v + k*(target - pos), pos' = pos + v'.
func TestSpringRecurrence(t *testing.T) {
	st := NewStore(4)
	tp := parkedTickParams(0.9, 0.05)

	integrateChunk(st, &tp, 0, st.Len())
	for i := 0; i < 3*st.Len(); i++ {
		if st.pos[i] != 0 || st.vel[i] != 0 {
			t.Fatalf("tick 1: particle state moved with zero displacement (index %d)", i)
		}
	}

	st.target[0] = 10

	steps := []struct {
		wantVel float64
		wantPos float64
	}{
		{0.5, 0.5},       // v = 0.05*10
		{0.925, 1.425},   // v = 0.9*0.5 + 0.05*(10-0.5)
		{1.26125, 2.68625}, // v = 0.9*0.925 + 0.05*(10-1.425)
	}

	for i, step := range steps {
		integrateChunk(st, &tp, 0, st.Len())
		if got := float64(st.vel[0]); math.Abs(got-step.wantVel) > 1e-5 {
			t.Errorf("tick %d: vel[0] = %v, want %v", i+2, got, step.wantVel)
		}
		if got := float64(st.pos[0]); math.Abs(got-step.wantPos) > 1e-5 {
			t.Errorf("tick %d: pos[0] = %v, want %v", i+2, got, step.wantPos)
		}
		// Other particles and axes stay at rest.
		for j := 1; j < 3*st.Len(); j++ {
			if st.pos[j] != 0 {
				t.Fatalf("tick %d: particle slot %d moved", i+2, j)
			}
		}
	}
}

// Monotone relaxation holds when the recurrence is overdamped:
// (1 - k + f)^2 >= 4f. f=0.5, k=0.05 satisfies it.
func TestRelaxationMonotone(t *testing.T) {
	st := NewStore(1)
	st.target[0] = 5
	tp := parkedTickParams(0.5, 0.05)

	prev := 5.0
	for tick := 0; tick < 500; tick++ {
		integrateChunk(st, &tp, 0, 1)
		d := math.Abs(float64(5 - st.pos[0]))
		if d < 1e-3 {
			return
		}
		if d >= prev {
			t.Fatalf("tick %d: displacement %v did not decrease from %v", tick, d, prev)
		}
		prev = d
	}
	t.Fatalf("displacement never fell below epsilon, last %v", prev)
}

// Underdamped constants still converge; the envelope decays as sqrt(f)^n.
func TestRelaxationConvergesUnderdamped(t *testing.T) {
	st := NewStore(1)
	st.target[0] = 5
	tp := parkedTickParams(0.9, 0.05)

	for tick := 0; tick < 400; tick++ {
		integrateChunk(st, &tp, 0, 1)
	}
	if d := math.Abs(float64(5 - st.pos[0])); d > 1e-3 {
		t.Fatalf("displacement %v after 400 ticks, want < 1e-3", d)
	}
}

func TestAttractionPointsTowardInfluence(t *testing.T) {
	st := NewStore(1)
	st.pos[0] = 1 // influence at origin, particle inside the radius
	st.target[0] = 1

	tp := parkedTickParams(1.0, 0)
	tp.rawX, tp.rawY, tp.rawZ = 0, 0, 0
	tp.attract = true
	tp.kProx = 0.12

	integrateChunk(st, &tp, 0, 1)

	// Contribution dotted with (influence - position) must be positive.
	toInfluence := float64(0 - 1)
	if dot := float64(st.vel[0]) * toInfluence; dot <= 0 {
		t.Fatalf("attraction contribution %v does not point toward the influence point", st.vel[0])
	}
}

func TestRepulsionPointsAwayFromInfluence(t *testing.T) {
	st := NewStore(1)
	st.pos[0] = 1
	st.target[0] = 1

	tp := parkedTickParams(1.0, 0)
	tp.rawX, tp.rawY, tp.rawZ = 0, 0, 0
	tp.attract = false
	tp.kProx = 0.25

	integrateChunk(st, &tp, 0, 1)

	away := float64(1 - 0)
	if dot := float64(st.vel[0]) * away; dot <= 0 {
		t.Fatalf("repulsion contribution %v does not point away from the influence point", st.vel[0])
	}
}

func TestProximityFalloffIsLinear(t *testing.T) {
	// falloff = 1 - dist/radius: a particle at half the radius receives
	// half the boundary-to-center range of force.
	newCase := func(x float32) float32 {
		st := NewStore(1)
		st.pos[0] = x
		st.target[0] = x
		tp := parkedTickParams(1.0, 0)
		tp.rawX = 0
		tp.kProx = 1.0
		tp.radius = 2.0
		integrateChunk(st, &tp, 0, 1)
		return st.vel[0]
	}

	atHalf := newCase(1.0)   // falloff 0.5
	atQuarter := newCase(0.5) // falloff 0.75

	if math.Abs(float64(atHalf)-0.5) > 1e-5 {
		t.Errorf("velocity at half radius = %v, want 0.5", atHalf)
	}
	if math.Abs(float64(atQuarter)-0.75) > 1e-5 {
		t.Errorf("velocity at quarter radius = %v, want 0.75", atQuarter)
	}
}

func TestZeroDistanceSkipsProximityForce(t *testing.T) {
	st := NewStore(1)
	// Particle exactly on the influence point.
	tp := parkedTickParams(1.0, 0)
	tp.rawX, tp.rawY, tp.rawZ = 0, 0, 0
	tp.attract = true
	tp.kProx = 0.12

	integrateChunk(st, &tp, 0, 1)

	for i := 0; i < 3; i++ {
		if v := st.vel[i]; v != 0 || math.IsNaN(float64(v)) {
			t.Fatalf("zero-distance particle got velocity %v, want 0", v)
		}
	}
}

func TestColorTracksSpeed(t *testing.T) {
	st := NewStore(2)
	// Particle 0 at rest, particle 1 moving fast enough to saturate.
	st.vel[3] = 10

	tp := parkedTickParams(1.0, 0)
	integrateChunk(st, &tp, 0, 2)

	if st.col[0] != tp.baseR || st.col[1] != tp.baseG || st.col[2] != tp.baseB {
		t.Errorf("resting particle color = (%v,%v,%v), want base", st.col[0], st.col[1], st.col[2])
	}
	if st.col[3] != tp.hotR || st.col[4] != tp.hotG || st.col[5] != tp.hotB {
		t.Errorf("fast particle color = (%v,%v,%v), want hot", st.col[3], st.col[4], st.col[5])
	}
}

func TestChunkedKernelMatchesFullRange(t *testing.T) {
	const n = 257
	rng := rand.New(rand.NewSource(9))

	full := NewStore(n)
	for i := range full.pos {
		full.pos[i] = rng.Float32()*10 - 5
		full.vel[i] = rng.Float32()*2 - 1
		full.target[i] = rng.Float32()*10 - 5
	}
	split := NewStore(n)
	copy(split.pos, full.pos)
	copy(split.vel, full.vel)
	copy(split.target, full.target)

	tp := parkedTickParams(0.9, 0.05)
	tp.rawX = 0.5 // inside the cloud so the proximity branch is exercised

	integrateChunk(full, &tp, 0, n)
	integrateChunk(split, &tp, 0, n/3)
	integrateChunk(split, &tp, n/3, n)

	for i := range full.pos {
		if full.pos[i] != split.pos[i] || full.vel[i] != split.vel[i] || full.col[i] != split.col[i] {
			t.Fatalf("chunked result diverges at index %d", i)
		}
	}
}

func TestApplyImpulseBoundedAndNonzero(t *testing.T) {
	vel := make([]float32, 3*100)
	rng := rand.New(rand.NewSource(10))

	applyImpulse(vel, 0.6, rng)

	nonzero := 0
	for i, v := range vel {
		if v < -0.6 || v > 0.6 {
			t.Fatalf("velocity %d = %v exceeds impulse magnitude", i, v)
		}
		if v != 0 {
			nonzero++
		}
	}
	if nonzero < len(vel)/2 {
		t.Errorf("only %d/%d components kicked", nonzero, len(vel))
	}
}

func TestStepFiresImpulseOnGestureOpen(t *testing.T) {
	s := newTestSim(t, 50)

	pos := [3]float32{0, 0, 0}
	if info := s.Step(Sample{Position: pos, Present: true, Closed: true}); info.Impulse {
		t.Error("closing gesture must not fire the impulse")
	}
	info := s.Step(Sample{Position: pos, Present: true, Closed: false})
	if !info.Impulse {
		t.Fatal("opening gesture must fire the impulse")
	}

	k := s.Kinetics()
	moving := 0
	for _, sp := range k.Speeds {
		if sp > 0 {
			moving++
		}
	}
	if moving < s.Count()/2 {
		t.Errorf("only %d/%d particles moving after impulse", moving, s.Count())
	}
}

func TestSelectShapeSwapsTarget(t *testing.T) {
	s := newTestSim(t, 100)

	if err := s.SelectShape(ShapeCube); err != nil {
		t.Fatal(err)
	}
	if s.CurrentShape() != ShapeCube {
		t.Errorf("current shape = %v, want cube", s.CurrentShape())
	}

	// The swap leaves positions alone; the spring starts morphing on the
	// next tick, so displacement becomes nonzero.
	if rms := s.Kinetics().DisplacementRMS; rms == 0 {
		t.Error("displacement RMS should be nonzero after a target swap")
	}

	if err := s.SelectShape(Shape("torus")); err == nil {
		t.Error("unknown shape should be rejected")
	}
}

func TestSetParamsResize(t *testing.T) {
	s := newTestSim(t, 100)

	p := s.Params()
	p.Count = 64
	if err := s.SetParams(p); err != nil {
		t.Fatal(err)
	}

	if s.Count() != 64 {
		t.Fatalf("count = %d, want 64", s.Count())
	}
	posBuf, colBuf := s.Frame()
	if len(posBuf) != 3*64 || len(colBuf) != 3*64 {
		t.Fatalf("frame buffers %d/%d values, want %d", len(posBuf), len(colBuf), 3*64)
	}
}

func TestSetTargetLengthMismatch(t *testing.T) {
	st := NewStore(10)
	if err := st.SetTarget(make([]float32, 3*9)); err == nil {
		t.Fatal("short target buffer must be rejected")
	}
	if err := st.SetTarget(make([]float32, 3*10)); err != nil {
		t.Fatalf("aligned target buffer rejected: %v", err)
	}
}
