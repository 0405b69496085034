package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for the simulation step.
const (
	PhaseObserve = "observe"
	PhaseStep    = "step"
	PhaseStats   = "stats"
)

var phaseOrder = []string{PhaseObserve, PhaseStep, PhaseStats}

// PerfStats is one rolling-average snapshot, CSV-ready.
type PerfStats struct {
	WindowEndTick int64   `csv:"window_end"`
	TickMicros    float64 `csv:"tick_us"`
	ObserveMicros float64 `csv:"observe_us"`
	StepMicros    float64 `csv:"step_us"`
	StatsMicros   float64 `csv:"stats_us"`
}

// PerfCollector tracks tick timing over a rolling window.
type PerfCollector struct {
	windowSize  int
	ticks       []time.Duration
	phases      map[string][]time.Duration
	writeIndex  int
	sampleCount int

	tickStart  time.Time
	phaseStart time.Time
	current    map[string]time.Duration
}

// NewPerfCollector creates a performance collector averaging over
// windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	p := &PerfCollector{
		windowSize: windowSize,
		ticks:      make([]time.Duration, windowSize),
		phases:     make(map[string][]time.Duration, len(phaseOrder)),
		current:    make(map[string]time.Duration, len(phaseOrder)),
	}
	for _, name := range phaseOrder {
		p.phases[name] = make([]time.Duration, windowSize)
	}
	return p
}

// StartTick begins timing a new simulation tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.phaseStart = p.tickStart
	for _, name := range phaseOrder {
		p.current[name] = 0
	}
}

// Phase records the time since the previous phase boundary under name.
func (p *PerfCollector) Phase(name string) {
	now := time.Now()
	p.current[name] += now.Sub(p.phaseStart)
	p.phaseStart = now
}

// EndTick closes the tick and folds it into the rolling window.
func (p *PerfCollector) EndTick() {
	p.ticks[p.writeIndex] = time.Since(p.tickStart)
	for _, name := range phaseOrder {
		p.phases[name][p.writeIndex] = p.current[name]
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// Avg returns the rolling average duration of one tick.
func (p *PerfCollector) Avg() time.Duration {
	return average(p.ticks, p.sampleCount)
}

// AvgPhase returns the rolling average duration of one phase.
func (p *PerfCollector) AvgPhase(name string) time.Duration {
	return average(p.phases[name], p.sampleCount)
}

func average(samples []time.Duration, count int) time.Duration {
	if count == 0 {
		return 0
	}
	var total time.Duration
	for i := 0; i < count; i++ {
		total += samples[i]
	}
	return total / time.Duration(count)
}

// Snapshot captures the rolling averages as a CSV-ready record.
func (p *PerfCollector) Snapshot(tick int64) PerfStats {
	micros := func(d time.Duration) float64 { return float64(d.Nanoseconds()) / 1e3 }
	return PerfStats{
		WindowEndTick: tick,
		TickMicros:    micros(p.Avg()),
		ObserveMicros: micros(p.AvgPhase(PhaseObserve)),
		StepMicros:    micros(p.AvgPhase(PhaseStep)),
		StatsMicros:   micros(p.AvgPhase(PhaseStats)),
	}
}

// Log mirrors the rolling averages to the structured log.
func (p *PerfCollector) Log(tick int64) {
	slog.Info("perf",
		"tick", tick,
		"tick_avg", p.Avg().Round(time.Microsecond),
		"observe", p.AvgPhase(PhaseObserve).Round(time.Microsecond),
		"step", p.AvgPhase(PhaseStep).Round(time.Microsecond),
		"stats", p.AvgPhase(PhaseStats).Round(time.Microsecond),
	)
}
