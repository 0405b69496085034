package game

import (
	"log/slog"

	"github.com/pthm-cable/drift/swarm"
)

func logImpulse(tick int64) {
	slog.Info("scatter impulse", "tick", tick)
}

func logShapeSwitch(tick int64, sh swarm.Shape) {
	slog.Info("shape switch", "tick", tick, "shape", sh)
}
