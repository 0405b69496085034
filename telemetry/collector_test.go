package telemetry

import "testing"

func TestCollectorWindowBoundary(t *testing.T) {
	// 2 second windows at 60 ticks/sec = 120 ticks per window.
	c := NewCollector(2.0, 60, 0.01, 0.005)

	if c.ShouldFlush(119) {
		t.Error("should not flush before the window ends")
	}
	if !c.ShouldFlush(120) {
		t.Error("should flush at the window boundary")
	}

	c.Flush(120, 100, "sphere", nil, 0)
	if c.ShouldFlush(239) {
		t.Error("should not flush mid second window")
	}
	if !c.ShouldFlush(240) {
		t.Error("should flush at the second window boundary")
	}
}

func TestCollectorFlushResetsCounters(t *testing.T) {
	c := NewCollector(1.0, 60, 0.01, 0.005)

	c.RecordImpulse()
	c.RecordImpulse()
	c.RecordShapeSwitch()

	ws := c.Flush(60, 500, "heart", []float64{0.1, 0.2}, 0.3)
	if ws.Impulses != 2 || ws.ShapeSwitches != 1 {
		t.Errorf("counters = %d/%d, want 2/1", ws.Impulses, ws.ShapeSwitches)
	}
	if ws.Shape != "heart" || ws.ParticleCount != 500 {
		t.Errorf("shape/particles = %v/%d", ws.Shape, ws.ParticleCount)
	}
	if ws.SimTimeSec != 1.0 {
		t.Errorf("sim_time = %v, want 1.0", ws.SimTimeSec)
	}

	ws = c.Flush(120, 500, "heart", nil, 0)
	if ws.Impulses != 0 || ws.ShapeSwitches != 0 {
		t.Error("counters should reset after flush")
	}
}

func TestCollectorSettledFlag(t *testing.T) {
	c := NewCollector(1.0, 60, 0.01, 0.005)

	tests := []struct {
		name   string
		speeds []float64
		rms    float64
		want   bool
	}{
		{"at rest", []float64{0.0001, 0.0002}, 0.001, true},
		{"displaced", []float64{0.0001, 0.0002}, 0.5, false},
		{"moving", []float64{0.4, 0.5}, 0.001, false},
		{"both hot", []float64{0.4, 0.5}, 0.5, false},
	}

	for _, tt := range tests {
		ws := c.Flush(60, 10, "sphere", tt.speeds, tt.rms)
		if ws.Settled != tt.want {
			t.Errorf("%s: settled = %v, want %v", tt.name, ws.Settled, tt.want)
		}
	}
}
