package telemetry

// Collector accumulates events within tick windows and produces
// WindowStats. Tick-paced: a window is windowDurationSec worth of ticks at
// the nominal tick rate, independent of wall clock.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int64
	tickRate            float64

	windowStartTick int64

	impulses      int
	shapeSwitches int

	settledRMS   float64
	settledSpeed float64
}

// NewCollector creates a stats collector.
// windowDurationSec: window length in simulation seconds.
// tickRate: nominal ticks per simulation second.
// settledRMS, settledSpeed: thresholds for the settled flag.
func NewCollector(windowDurationSec, tickRate, settledRMS, settledSpeed float64) *Collector {
	ticksPerWindow := int64(windowDurationSec * tickRate)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		tickRate:            tickRate,
		settledRMS:          settledRMS,
		settledSpeed:        settledSpeed,
	}
}

// RecordImpulse records a scatter impulse event.
func (c *Collector) RecordImpulse() {
	c.impulses++
}

// RecordShapeSwitch records a target silhouette change.
func (c *Collector) RecordShapeSwitch() {
	c.shapeSwitches++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// speeds is consumed (sorted in place) for the distribution summary.
func (c *Collector) Flush(currentTick int64, particles int, shape string, speeds []float64, displacementRMS float64) WindowStats {
	mean, std, p10, p50, p90 := SpeedSummary(speeds)

	ws := WindowStats{
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) / c.tickRate,
		ParticleCount:   particles,
		Shape:           shape,
		Impulses:        c.impulses,
		ShapeSwitches:   c.shapeSwitches,
		SpeedMean:       mean,
		SpeedStd:        std,
		SpeedP10:        p10,
		SpeedP50:        p50,
		SpeedP90:        p90,
		DisplacementRMS: displacementRMS,
		Settled:         displacementRMS < c.settledRMS && mean < c.settledSpeed,
	}

	c.windowStartTick = currentTick
	c.impulses = 0
	c.shapeSwitches = 0

	return ws
}
