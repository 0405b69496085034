package game

import (
	"math"

	"github.com/pthm-cable/drift/swarm"
)

// Scripted influence cycle, in ticks.
const (
	scriptCycle      = 600
	scriptSignalGain = 100 // signal appears after this many ticks of absence
	scriptCloseAt    = 400 // gesture closes here...
	scriptOpenAt     = 500 // ...and opens here, firing the impulse
	scriptOrbitR     = 2.0
	scriptOrbitTicks = 300 // ticks per revolution
)

// ScriptedInfluence drives headless runs through the full input space:
// absence, an orbiting open hand, a closed grab, and the open edge that
// fires the scatter impulse — once per cycle.
type ScriptedInfluence struct {
	tick int64
}

// NewScriptedInfluence creates the scripted source.
func NewScriptedInfluence() *ScriptedInfluence {
	return &ScriptedInfluence{}
}

// Sample returns this tick's scripted observation.
func (s *ScriptedInfluence) Sample() swarm.Sample {
	t := s.tick % scriptCycle
	s.tick++

	if t < scriptSignalGain {
		return swarm.Sample{}
	}

	angle := 2 * math.Pi * float64(t) / scriptOrbitTicks
	return swarm.Sample{
		Position: [3]float32{
			scriptOrbitR * float32(math.Cos(angle)),
			scriptOrbitR * float32(math.Sin(angle)),
			0,
		},
		Present: true,
		Closed:  t >= scriptCloseAt && t < scriptOpenAt,
	}
}
