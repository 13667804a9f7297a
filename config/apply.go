package config

import (
	"github.com/emberlit/afterglow/engine"
)

// ApplyTuning pushes the hot-reloadable simulation values into a
// running world between ticks
// Structural values (pool capacity, cascade shape) are intentionally
// not applied here; they require a restart
func ApplyTuning(world *engine.World, cfg Config) {
	sim := cfg.Simulation
	world.RunSafe(func() {
		tuning := world.Resource.Tuning
		tuning.IdleTimeoutMs = sim.IdleTimeoutMs
		tuning.TypingSpawnRate = sim.TypingSpawnRate
		tuning.ChainProbabilityMin = sim.ChainProbabilityMin
		tuning.ChainProbabilityMax = sim.ChainProbabilityMax
		tuning.RefireGuardThreshold = sim.RefireGuardThreshold
		tuning.MaxActiveSignals = sim.MaxActiveSignals
		tuning.AmbientIntervalIdle = sim.AmbientIntervalIdle
		tuning.AmbientIntervalActive = sim.AmbientIntervalActive
		tuning.ProximityFireRadius = sim.ProximityFireRadius
	})
}
