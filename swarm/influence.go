package swarm

// Sample is one external influence observation, delivered once per tick by
// the perception collaborator (mouse, scripted source, or a hand tracker).
type Sample struct {
	Position [3]float32
	Present  bool // false means "no actionable signal this tick"
	Closed   bool // gesture state; only meaningful when Present
}

// Mode is the proximity-force polarity for a tick.
type Mode uint8

const (
	// Repelling pushes particles away from the influence point (open hand).
	Repelling Mode = iota
	// Attracting pulls particles toward the influence point (closed hand).
	Attracting
)

// InfluenceController stabilizes the raw per-tick observation into the
// state the force kernel consumes. The smoothed position doubles as the
// world-space shape origin, so the whole silhouette tracks the influence
// point. The raw position is what the proximity field measures distance
// against; with no signal it is parked at a sentinel far outside any
// interaction radius.
type InfluenceController struct {
	raw      [3]float32
	smoothed [3]float32

	closed    bool
	wasClosed bool

	smoothing     float32
	lostSmoothing float32
	sentinel      float32
}

// NewInfluenceController creates a controller with the raw position parked
// at the sentinel.
func NewInfluenceController(smoothing, lostSmoothing, sentinel float32) *InfluenceController {
	c := &InfluenceController{
		smoothing:     smoothing,
		lostSmoothing: lostSmoothing,
		sentinel:      sentinel,
	}
	c.park()
	return c
}

// SetSmoothing updates the smoothing factors at runtime.
func (c *InfluenceController) SetSmoothing(smoothing, lostSmoothing float32) {
	c.smoothing = smoothing
	c.lostSmoothing = lostSmoothing
}

func (c *InfluenceController) park() {
	c.raw = [3]float32{c.sentinel, 0, 0}
}

// Observe ingests one observation and returns true when the gesture edge
// (closed to open) fired this tick. The edge is detected from exactly two
// fields, current and previous, updated once per tick; repeated states and
// the open-to-closed transition never fire.
//
// A lost signal clears the gesture without firing: losing track of a closed
// hand is not an open gesture.
func (c *InfluenceController) Observe(s Sample) bool {
	prev := c.closed

	if s.Present {
		c.raw = s.Position
		for i := 0; i < 3; i++ {
			c.smoothed[i] += c.smoothing * (s.Position[i] - c.smoothed[i])
		}
		c.closed = s.Closed
	} else {
		c.park()
		for i := 0; i < 3; i++ {
			c.smoothed[i] += c.lostSmoothing * (0 - c.smoothed[i])
		}
		c.closed = false
	}

	c.wasClosed = prev
	return s.Present && c.wasClosed && !c.closed
}

// Raw returns the position the proximity field measures against.
func (c *InfluenceController) Raw() [3]float32 {
	return c.raw
}

// Origin returns the smoothed position, which is also the world-space
// origin the target silhouette is centered on.
func (c *InfluenceController) Origin() [3]float32 {
	return c.smoothed
}

// Closed reports the current gesture state.
func (c *InfluenceController) Closed() bool {
	return c.closed
}

// Mode returns the proximity-force polarity for this tick, derived once
// here rather than re-branched per particle.
func (c *InfluenceController) Mode() Mode {
	if c.closed {
		return Attracting
	}
	return Repelling
}
