package game

import (
	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/swarm"
)

// paramsFromConfig maps the loaded config onto the simulation tunables.
func paramsFromConfig(cfg *config.Config) swarm.Params {
	return swarm.Params{
		Count:             cfg.Swarm.Count,
		ReturnStrength:    float32(cfg.Forces.ReturnStrength),
		AttractStrength:   float32(cfg.Forces.AttractStrength),
		RepelStrength:     float32(cfg.Forces.RepelStrength),
		InteractionRadius: float32(cfg.Forces.InteractionRadius),
		Friction:          float32(cfg.Forces.Friction),
		ImpulseStrength:   float32(cfg.Forces.ImpulseStrength),
		SpeedThreshold:    float32(cfg.Forces.SpeedThreshold),
		ColorGain:         float32(cfg.Forces.ColorGain),
		Smoothing:         float32(cfg.Influence.Smoothing),
		LostSmoothing:     float32(cfg.Influence.LostSmoothing),
	}
}

func geometryFromConfig(cfg *config.Config) swarm.Geometry {
	return swarm.Geometry{
		SphereRadius:     float32(cfg.Shapes.SphereRadius),
		CubeSize:         float32(cfg.Shapes.CubeSize),
		HeartScale:       float32(cfg.Shapes.HeartScale),
		StarOuterRadius:  float32(cfg.Shapes.StarOuterRadius),
		StarInnerRadius:  float32(cfg.Shapes.StarInnerRadius),
		StarDepth:        float32(cfg.Shapes.StarDepth),
		MaxAttemptFactor: cfg.Shapes.MaxAttemptFactor,
	}
}

func paletteFromConfig(cfg *config.Config) swarm.Palette {
	return swarm.Palette{
		Base: [3]float32{float32(cfg.Color.Base[0]), float32(cfg.Color.Base[1]), float32(cfg.Color.Base[2])},
		Hot:  [3]float32{float32(cfg.Color.Hot[0]), float32(cfg.Color.Hot[1]), float32(cfg.Color.Hot[2])},
	}
}
