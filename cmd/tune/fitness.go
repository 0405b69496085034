package main

import (
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/swarm"
)

// Scripted impulse schedule, in ticks.
const (
	warmupTicks = 240 // let the cloud assemble before firing
	grabTicks   = 20  // ticks the gesture stays closed before the open edge
)

// FitnessEvaluator runs headless simulations and scores parameter vectors by
// how quickly the cloud settles back onto its silhouette after a scatter
// impulse. Fitness is the settling tick count averaged over seeds, so lower
// is better and it feeds optimize.Minimize directly.
type FitnessEvaluator struct {
	params   *ParamVector
	maxTicks int
	seeds    []int64
	baseCfg  *config.Config
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:   params,
		maxTicks: maxTicks,
		seeds:    seeds,
		baseCfg:  baseCfg,
	}
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]float64, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(x, s)
		}(i, seed)
	}
	wg.Wait()

	var total float64
	for _, r := range results {
		total += r
	}
	return total / float64(len(fe.seeds))
}

// runSimulation executes a single headless run: settle, fire one scatter
// impulse via a closed-then-open gesture at the origin, then count ticks
// until the swarm is settled again. Returns maxTicks if it never settles.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) float64 {
	cfg := *fe.baseCfg
	fe.params.ApplyToConfig(&cfg, x)

	shape, err := swarm.ParseShape(cfg.Swarm.Shape)
	if err != nil {
		return float64(fe.maxTicks)
	}

	sim, err := swarm.NewSimulation(
		simParams(&cfg),
		simPalette(&cfg),
		simGeometry(&cfg),
		shape,
		float32(cfg.Influence.SentinelDistance),
		seed,
	)
	if err != nil {
		return float64(fe.maxTicks)
	}
	defer sim.Close()

	absent := swarm.Sample{}
	grab := swarm.Sample{Present: true, Closed: true}
	open := swarm.Sample{Present: true}

	for t := 0; t < warmupTicks; t++ {
		sim.Step(absent)
	}
	for t := 0; t < grabTicks; t++ {
		sim.Step(grab)
	}
	// Open edge fires the impulse on this tick.
	sim.Step(open)

	for t := 0; t < fe.maxTicks; t++ {
		sim.Step(absent)
		if fe.settled(sim, &cfg) {
			return float64(t)
		}
	}
	return float64(fe.maxTicks)
}

// settled reports whether the swarm is back at rest per the telemetry
// thresholds.
func (fe *FitnessEvaluator) settled(sim *swarm.Simulation, cfg *config.Config) bool {
	k := sim.Kinetics()
	if k.DisplacementRMS >= cfg.Telemetry.SettledRMS {
		return false
	}
	return stat.Mean(k.Speeds, nil) < cfg.Telemetry.SettledSpeed
}

// simParams maps the config onto the simulation tunables.
func simParams(cfg *config.Config) swarm.Params {
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

func simGeometry(cfg *config.Config) swarm.Geometry {
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

func simPalette(cfg *config.Config) swarm.Palette {
	return swarm.Palette{
		Base: [3]float32{float32(cfg.Color.Base[0]), float32(cfg.Color.Base[1]), float32(cfg.Color.Base[2])},
		Hot:  [3]float32{float32(cfg.Color.Hot[0]), float32(cfg.Color.Hot[1]), float32(cfg.Color.Hot[2])},
	}
}
