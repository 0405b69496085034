// Package config provides configuration loading and access for the simulator.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulator configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Swarm     SwarmConfig     `yaml:"swarm"`
	Forces    ForcesConfig    `yaml:"forces"`
	Influence InfluenceConfig `yaml:"influence"`
	Shapes    ShapesConfig    `yaml:"shapes"`
	Color     ColorConfig     `yaml:"color"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// SwarmConfig holds particle population parameters.
type SwarmConfig struct {
	Count     int     `yaml:"count"`      // number of particles
	PointSize float64 `yaml:"point_size"` // visual size of a particle in world units
	Shape     string  `yaml:"shape"`      // initial target shape
}

// ForcesConfig holds the per-tick force model parameters.
// All of these are runtime-tunable from the UI panel; the values here are
// defaults, not correctness requirements.
type ForcesConfig struct {
	ReturnStrength    float64 `yaml:"return_strength"`    // spring-to-target gain, in (0,1)
	AttractStrength   float64 `yaml:"attract_strength"`   // gesture-closed pull gain
	RepelStrength     float64 `yaml:"repel_strength"`     // gesture-open push gain
	InteractionRadius float64 `yaml:"interaction_radius"` // proximity field radius in world units
	Friction          float64 `yaml:"friction"`           // velocity kept per tick, in (0,1)
	ImpulseStrength   float64 `yaml:"impulse_strength"`   // scatter kick magnitude per axis
	SpeedThreshold    float64 `yaml:"speed_threshold"`    // speed below which color stays at base
	ColorGain         float64 `yaml:"color_gain"`         // blend fraction per unit of excess speed
}

// InfluenceConfig holds influence-point smoothing parameters.
type InfluenceConfig struct {
	Smoothing        float64 `yaml:"smoothing"`         // EMA factor while a signal is present, in (0,1)
	LostSmoothing    float64 `yaml:"lost_smoothing"`    // slower relax-to-origin factor when signal is lost
	SentinelDistance float64 `yaml:"sentinel_distance"` // parked raw position when no signal; must dwarf the radius
}

// ShapesConfig holds target-shape geometry parameters.
type ShapesConfig struct {
	SphereRadius     float64 `yaml:"sphere_radius"`
	CubeSize         float64 `yaml:"cube_size"` // full edge length
	HeartScale       float64 `yaml:"heart_scale"`
	StarOuterRadius  float64 `yaml:"star_outer_radius"`
	StarInnerRadius  float64 `yaml:"star_inner_radius"`
	StarDepth        float64 `yaml:"star_depth"`         // slab extrusion thickness
	MaxAttemptFactor int     `yaml:"max_attempt_factor"` // rejection budget = factor * count
}

// ColorConfig holds the velocity-to-color palette.
type ColorConfig struct {
	Base []float64 `yaml:"base"` // RGB in [0,1], resting color
	Hot  []float64 `yaml:"hot"`  // RGB in [0,1], full-speed color
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow  float64 `yaml:"stats_window"`  // window length in simulation seconds
	PerfWindow   int     `yaml:"perf_window"`   // ticks in the rolling perf average
	SettledRMS   float64 `yaml:"settled_rms"`   // displacement RMS below which the swarm counts as settled
	SettledSpeed float64 `yaml:"settled_speed"` // mean speed below which the swarm counts as settled
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if
// path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the invariants the simulation depends on.
func (c *Config) Validate() error {
	if c.Swarm.Count < 1 {
		return fmt.Errorf("config: swarm.count must be >= 1, got %d", c.Swarm.Count)
	}
	if err := unitOpen("forces.return_strength", c.Forces.ReturnStrength); err != nil {
		return err
	}
	if err := unitOpen("forces.friction", c.Forces.Friction); err != nil {
		return err
	}
	if err := unitOpen("influence.smoothing", c.Influence.Smoothing); err != nil {
		return err
	}
	if err := unitOpen("influence.lost_smoothing", c.Influence.LostSmoothing); err != nil {
		return err
	}
	if c.Forces.InteractionRadius <= 0 {
		return fmt.Errorf("config: forces.interaction_radius must be > 0, got %g", c.Forces.InteractionRadius)
	}
	// The sentinel parks the raw influence point when the signal is lost; it
	// must sit far outside any radius the UI can dial in.
	if c.Influence.SentinelDistance < 4*c.Forces.InteractionRadius {
		return fmt.Errorf("config: influence.sentinel_distance %g too close to interaction_radius %g",
			c.Influence.SentinelDistance, c.Forces.InteractionRadius)
	}
	if c.Shapes.MaxAttemptFactor < 2 {
		return fmt.Errorf("config: shapes.max_attempt_factor must be >= 2, got %d", c.Shapes.MaxAttemptFactor)
	}
	if c.Shapes.StarInnerRadius >= c.Shapes.StarOuterRadius {
		return fmt.Errorf("config: shapes.star_inner_radius %g must be < star_outer_radius %g",
			c.Shapes.StarInnerRadius, c.Shapes.StarOuterRadius)
	}
	if len(c.Color.Base) != 3 || len(c.Color.Hot) != 3 {
		return fmt.Errorf("config: color.base and color.hot must each have 3 channels")
	}
	return nil
}

func unitOpen(name string, v float64) error {
	if v <= 0 || v >= 1 {
		return fmt.Errorf("config: %s must be in (0,1), got %g", name, v)
	}
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
