package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/emberlit/afterglow/parameter"
)

// Config is the full runtime configuration
// Simulation values are hot-reloadable; everything else is read once
// at startup
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Stages     StagesConfig     `mapstructure:"stages"`
	Recorder   RecorderConfig   `mapstructure:"recorder"`
	Simulation SimulationConfig `mapstructure:"simulation"`
}

// ServerConfig holds the web bridge settings
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// LoggingConfig holds the rotating file logger settings
type LoggingConfig struct {
	Directory  string `mapstructure:"directory"`
	Level      string `mapstructure:"level"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// StagesConfig points at the stage script; empty path uses the
// built-in script
type StagesConfig struct {
	Path string `mapstructure:"path"`
}

// RecorderConfig holds session persistence settings
type RecorderConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// SimulationConfig holds the tunable simulation values
// Structural values (particle capacity, cascade shape) apply at the
// next start; the rest hot-reload into the running world
type SimulationConfig struct {
	ParticleCapacity      int     `mapstructure:"particle_capacity"`
	CascadeLayers         int     `mapstructure:"cascade_layers"`
	CascadeNodes          int     `mapstructure:"cascade_nodes"`
	IdleTimeoutMs         int64   `mapstructure:"idle_timeout_ms"`
	TypingSpawnRate       float64 `mapstructure:"typing_spawn_rate"`
	ChainProbabilityMin   float64 `mapstructure:"chain_probability_min"`
	ChainProbabilityMax   float64 `mapstructure:"chain_probability_max"`
	RefireGuardThreshold  float64 `mapstructure:"refire_guard_threshold"`
	MaxActiveSignals      int     `mapstructure:"max_active_signals"`
	AmbientIntervalIdle   float64 `mapstructure:"ambient_interval_idle"`
	AmbientIntervalActive float64 `mapstructure:"ambient_interval_active"`
	ProximityFireRadius   float64 `mapstructure:"proximity_fire_radius"`
}

// Manager wraps the viper instance so callers can read the current
// config and subscribe to hot reloads
type Manager struct {
	v   *viper.Viper
	log *zap.Logger

	mu  sync.RWMutex
	cfg Config
}

// setDefaults registers every key with its package default so env
// binding and partial files both work
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8750")

	v.SetDefault("logging.directory", "logs")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.max_size", 10)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age", 7)
	v.SetDefault("logging.compress", true)

	v.SetDefault("stages.path", "")

	v.SetDefault("recorder.enabled", false)
	v.SetDefault("recorder.path", "afterglow.db")

	v.SetDefault("simulation.particle_capacity", parameter.ParticleCapacity)
	v.SetDefault("simulation.cascade_layers", parameter.CascadeLayers)
	v.SetDefault("simulation.cascade_nodes", parameter.CascadeNodes)
	v.SetDefault("simulation.idle_timeout_ms", parameter.IdleTimeoutMs)
	v.SetDefault("simulation.typing_spawn_rate", parameter.TypingSpawnRate)
	v.SetDefault("simulation.chain_probability_min", parameter.ChainProbabilityMin)
	v.SetDefault("simulation.chain_probability_max", parameter.ChainProbabilityMax)
	v.SetDefault("simulation.refire_guard_threshold", parameter.RefireGuardThreshold)
	v.SetDefault("simulation.max_active_signals", parameter.MaxActiveSignals)
	v.SetDefault("simulation.ambient_interval_idle", parameter.AmbientIntervalIdle)
	v.SetDefault("simulation.ambient_interval_active", parameter.AmbientIntervalActive)
	v.SetDefault("simulation.proximity_fire_radius", parameter.ProximityFireRadius)
}

// Load reads configuration from defaults, an optional TOML file, and
// AFTERGLOW_-prefixed environment variables, in rising precedence
func Load(path string, log *zap.Logger) (*Manager, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("AFTERGLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	m := &Manager{v: v, log: log}
	if err := m.reload(); err != nil {
		return nil, err
	}
	return m, nil
}

// reload unmarshals and sanitizes the current viper state
func (m *Manager) reload() error {
	var cfg Config
	if err := m.v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("unable to decode config: %w", err)
	}
	sanitize(&cfg)

	m.mu.Lock()
	m.cfg = cfg
	m.mu.Unlock()
	return nil
}

// Config returns a copy of the current configuration
func (m *Manager) Config() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg
}

// Watch starts the fsnotify-based file watch; apply receives each
// successfully reloaded config
// No-op when configuration came from defaults and env only
func (m *Manager) Watch(apply func(Config)) {
	if m.v.ConfigFileUsed() == "" {
		return
	}
	m.v.OnConfigChange(func(e fsnotify.Event) {
		if m.log != nil {
			m.log.Info("configuration file changed, reloading", zap.String("file", e.Name))
		}
		if err := m.reload(); err != nil {
			if m.log != nil {
				m.log.Error("error reloading configuration", zap.Error(err))
			}
			return
		}
		apply(m.Config())
	})
	m.v.WatchConfig()
}

// sanitize clamps hostile values the same way the simulation clamps
// hostile events; config mistakes degrade, they never crash
func sanitize(cfg *Config) {
	sim := &cfg.Simulation

	sim.ChainProbabilityMin = clamp01(sim.ChainProbabilityMin)
	sim.ChainProbabilityMax = clamp01(sim.ChainProbabilityMax)
	if sim.ChainProbabilityMax < sim.ChainProbabilityMin {
		sim.ChainProbabilityMax = sim.ChainProbabilityMin
	}
	sim.RefireGuardThreshold = clamp01(sim.RefireGuardThreshold)
	sim.ProximityFireRadius = clamp01(sim.ProximityFireRadius)

	if sim.IdleTimeoutMs <= 0 {
		sim.IdleTimeoutMs = parameter.IdleTimeoutMs
	}
	if sim.TypingSpawnRate < 0 {
		sim.TypingSpawnRate = 0
	}
	if sim.MaxActiveSignals < 1 {
		sim.MaxActiveSignals = parameter.MaxActiveSignals
	}
	if sim.AmbientIntervalIdle <= 0 {
		sim.AmbientIntervalIdle = parameter.AmbientIntervalIdle
	}
	if sim.AmbientIntervalActive <= 0 {
		sim.AmbientIntervalActive = parameter.AmbientIntervalActive
	}
	if sim.CascadeLayers < 2 {
		sim.CascadeLayers = parameter.CascadeLayers
	}
	if sim.CascadeNodes < sim.CascadeLayers {
		sim.CascadeNodes = parameter.CascadeNodes
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
