package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading embedded defaults: %v", err)
	}

	if cfg.Swarm.Count < 1 {
		t.Errorf("swarm.count = %d, want >= 1", cfg.Swarm.Count)
	}
	if cfg.Swarm.Shape != "sphere" {
		t.Errorf("swarm.shape = %q, want sphere", cfg.Swarm.Shape)
	}
	if cfg.Forces.Friction <= 0 || cfg.Forces.Friction >= 1 {
		t.Errorf("forces.friction = %g, want in (0,1)", cfg.Forces.Friction)
	}
	if cfg.Screen.TargetFPS <= 0 {
		t.Errorf("screen.target_fps = %d, want > 0", cfg.Screen.TargetFPS)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	overlay := "swarm:\n  count: 123\n"
	if err := os.WriteFile(path, []byte(overlay), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading overlay: %v", err)
	}

	if cfg.Swarm.Count != 123 {
		t.Errorf("swarm.count = %d, want 123 from overlay", cfg.Swarm.Count)
	}
	// Fields absent from the overlay keep their defaults.
	defaults, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Forces.ReturnStrength != defaults.Forces.ReturnStrength {
		t.Errorf("forces.return_strength = %g, want default %g",
			cfg.Forces.ReturnStrength, defaults.Forces.ReturnStrength)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantSub string
	}{
		{
			name:    "zero count",
			mutate:  func(c *Config) { c.Swarm.Count = 0 },
			wantSub: "swarm.count",
		},
		{
			name:    "friction at one",
			mutate:  func(c *Config) { c.Forces.Friction = 1.0 },
			wantSub: "forces.friction",
		},
		{
			name:    "return strength negative",
			mutate:  func(c *Config) { c.Forces.ReturnStrength = -0.1 },
			wantSub: "forces.return_strength",
		},
		{
			name:    "sentinel too close",
			mutate:  func(c *Config) { c.Influence.SentinelDistance = c.Forces.InteractionRadius },
			wantSub: "sentinel_distance",
		},
		{
			name:    "attempt factor too small",
			mutate:  func(c *Config) { c.Shapes.MaxAttemptFactor = 1 },
			wantSub: "max_attempt_factor",
		},
		{
			name:    "star inner not below outer",
			mutate:  func(c *Config) { c.Shapes.StarInnerRadius = c.Shapes.StarOuterRadius },
			wantSub: "star_inner_radius",
		},
		{
			name:    "bad palette length",
			mutate:  func(c *Config) { c.Color.Hot = []float64{1, 0} },
			wantSub: "color",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			if err != nil {
				t.Fatal(err)
			}
			tt.mutate(cfg)
			err = cfg.Validate()
			if err == nil {
				t.Fatal("Validate accepted invalid config")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not mention %q", err, tt.wantSub)
			}
		})
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Swarm.Count = 777

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading written config: %v", err)
	}
	if reloaded.Swarm.Count != 777 {
		t.Errorf("reloaded swarm.count = %d, want 777", reloaded.Swarm.Count)
	}
}
