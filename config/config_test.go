package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/emberlit/afterglow/engine"
	"github.com/emberlit/afterglow/parameter"
)

func TestLoadDefaults(t *testing.T) {
	m, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load with no file: %v", err)
	}

	cfg := m.Config()
	if cfg.Simulation.ParticleCapacity != parameter.ParticleCapacity {
		t.Errorf("particle capacity = %d, want default %d", cfg.Simulation.ParticleCapacity, parameter.ParticleCapacity)
	}
	if cfg.Simulation.IdleTimeoutMs != parameter.IdleTimeoutMs {
		t.Errorf("idle timeout = %d, want default %d", cfg.Simulation.IdleTimeoutMs, parameter.IdleTimeoutMs)
	}
	if cfg.Server.Addr == "" {
		t.Error("server addr default missing")
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "afterglow.toml")
	body := `
[simulation]
particle_capacity = 400
idle_timeout_ms = 2000

[server]
addr = ":9000"
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	cfg := m.Config()
	if cfg.Simulation.ParticleCapacity != 400 {
		t.Errorf("particle capacity = %d, want 400", cfg.Simulation.ParticleCapacity)
	}
	if cfg.Simulation.IdleTimeoutMs != 2000 {
		t.Errorf("idle timeout = %d, want 2000", cfg.Simulation.IdleTimeoutMs)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("server addr = %q, want :9000", cfg.Server.Addr)
	}
	// Untouched keys keep their defaults
	if cfg.Simulation.MaxActiveSignals != parameter.MaxActiveSignals {
		t.Errorf("max active signals = %d, want default", cfg.Simulation.MaxActiveSignals)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("AFTERGLOW_SIMULATION_TYPING_SPAWN_RATE", "48")
	t.Setenv("AFTERGLOW_RECORDER_ENABLED", "true")

	m, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	cfg := m.Config()
	if cfg.Simulation.TypingSpawnRate != 48 {
		t.Errorf("typing spawn rate = %v, want 48 from env", cfg.Simulation.TypingSpawnRate)
	}
	if !cfg.Recorder.Enabled {
		t.Error("recorder not enabled from env")
	}
}

func TestSanitizeHostileValues(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(*Config)
		check func(*testing.T, Config)
	}{
		{
			"probabilities clamp and order",
			func(c *Config) {
				c.Simulation.ChainProbabilityMin = 2.5
				c.Simulation.ChainProbabilityMax = -1
			},
			func(t *testing.T, c Config) {
				if c.Simulation.ChainProbabilityMin != 1 || c.Simulation.ChainProbabilityMax != 1 {
					t.Errorf("probabilities = [%v, %v], want [1, 1]",
						c.Simulation.ChainProbabilityMin, c.Simulation.ChainProbabilityMax)
				}
			},
		},
		{
			"nonpositive intervals restored",
			func(c *Config) {
				c.Simulation.AmbientIntervalIdle = -3
				c.Simulation.IdleTimeoutMs = 0
			},
			func(t *testing.T, c Config) {
				if c.Simulation.AmbientIntervalIdle != parameter.AmbientIntervalIdle {
					t.Errorf("ambient interval = %v, want default", c.Simulation.AmbientIntervalIdle)
				}
				if c.Simulation.IdleTimeoutMs != parameter.IdleTimeoutMs {
					t.Errorf("idle timeout = %v, want default", c.Simulation.IdleTimeoutMs)
				}
			},
		},
		{
			"degenerate cascade shape restored",
			func(c *Config) {
				c.Simulation.CascadeLayers = 1
				c.Simulation.CascadeNodes = 0
			},
			func(t *testing.T, c Config) {
				if c.Simulation.CascadeLayers != parameter.CascadeLayers {
					t.Errorf("layers = %d, want default", c.Simulation.CascadeLayers)
				}
				if c.Simulation.CascadeNodes != parameter.CascadeNodes {
					t.Errorf("nodes = %d, want default", c.Simulation.CascadeNodes)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config
			tt.mut(&cfg)
			sanitize(&cfg)
			tt.check(t, cfg)
		})
	}
}

func TestApplyTuningUpdatesWorld(t *testing.T) {
	m, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg := m.Config()
	cfg.Simulation.RefireGuardThreshold = 0.5
	cfg.Simulation.MaxActiveSignals = 32

	w := engine.NewWorld()
	ApplyTuning(w, cfg)

	if w.Resource.Tuning.RefireGuardThreshold != 0.5 {
		t.Errorf("guard = %v, want 0.5", w.Resource.Tuning.RefireGuardThreshold)
	}
	if w.Resource.Tuning.MaxActiveSignals != 32 {
		t.Errorf("max signals = %d, want 32", w.Resource.Tuning.MaxActiveSignals)
	}
}
