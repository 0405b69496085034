package swarm

import (
	"math"
	"testing"
)

const testSentinel = 1000.0

func TestObserveSmoothsTowardObservation(t *testing.T) {
	c := NewInfluenceController(0.5, 0.1, testSentinel)

	c.Observe(Sample{Position: [3]float32{10, 0, 0}, Present: true})
	if got := c.Origin()[0]; math.Abs(float64(got)-5) > 1e-6 {
		t.Errorf("smoothed x after one sample = %v, want 5", got)
	}

	c.Observe(Sample{Position: [3]float32{10, 0, 0}, Present: true})
	if got := c.Origin()[0]; math.Abs(float64(got)-7.5) > 1e-6 {
		t.Errorf("smoothed x after two samples = %v, want 7.5", got)
	}

	if raw := c.Raw(); raw != [3]float32{10, 0, 0} {
		t.Errorf("raw = %v, want observation", raw)
	}
}

func TestObserveAbsentParksRawAndRelaxes(t *testing.T) {
	c := NewInfluenceController(0.5, 0.1, testSentinel)

	// Establish a smoothed position away from the origin.
	for i := 0; i < 20; i++ {
		c.Observe(Sample{Position: [3]float32{8, 0, 0}, Present: true})
	}
	before := c.Origin()[0]

	c.Observe(Sample{Present: false})

	if raw := c.Raw()[0]; raw != testSentinel {
		t.Errorf("raw x after signal loss = %v, want sentinel %v", raw, testSentinel)
	}
	after := c.Origin()[0]
	if after >= before || after <= 0 {
		t.Errorf("smoothed x should relax toward origin: before %v, after %v", before, after)
	}
	// Relax factor is the slower one.
	want := before * (1 - 0.1)
	if math.Abs(float64(after-want)) > 1e-5 {
		t.Errorf("smoothed x after loss = %v, want %v", after, want)
	}
}

func TestEdgeFiresExactlyOnceOnClosedToOpen(t *testing.T) {
	c := NewInfluenceController(0.5, 0.1, testSentinel)

	seq := []bool{true, true, false, false, true} // closed, closed, open, open, closed
	want := []bool{false, false, true, false, false}

	for i, closed := range seq {
		got := c.Observe(Sample{Position: [3]float32{1, 2, 3}, Present: true, Closed: closed})
		if got != want[i] {
			t.Errorf("step %d (closed=%v): impulse = %v, want %v", i, closed, got, want[i])
		}
	}
}

func TestSignalLossDoesNotFireEdge(t *testing.T) {
	c := NewInfluenceController(0.5, 0.1, testSentinel)

	c.Observe(Sample{Position: [3]float32{1, 0, 0}, Present: true, Closed: true})
	if c.Observe(Sample{Present: false}) {
		t.Error("losing a closed hand must not fire the impulse edge")
	}
	// The gesture state was cleared, so reacquiring an open hand is a
	// same-state tick, not an edge.
	if c.Observe(Sample{Position: [3]float32{1, 0, 0}, Present: true, Closed: false}) {
		t.Error("reacquiring an open hand after loss must not fire the impulse edge")
	}
}

func TestMode(t *testing.T) {
	c := NewInfluenceController(0.5, 0.1, testSentinel)

	if c.Mode() != Repelling {
		t.Error("initial mode should be Repelling")
	}
	c.Observe(Sample{Position: [3]float32{0, 0, 0}, Present: true, Closed: true})
	if c.Mode() != Attracting {
		t.Error("closed gesture should select Attracting")
	}
	c.Observe(Sample{Position: [3]float32{0, 0, 0}, Present: true, Closed: false})
	if c.Mode() != Repelling {
		t.Error("open gesture should select Repelling")
	}
}
