package parameter

// Particle Pool Sizing
const (
	// ParticleCapacity is the default slot count of the lifecycle pool
	// Config may override within [ParticleCapacityMin, ParticleCapacityMax]
	ParticleCapacity = 300

	// ParticleCapacityMin and ParticleCapacityMax bound config overrides
	ParticleCapacityMin = 200
	ParticleCapacityMax = 500
)

// Particle Lifetimes (seconds)
const (
	// ParticleLifetimeMin and ParticleLifetimeMax bound the randomized
	// lifetime assigned at spawn
	ParticleLifetimeMin = 1.2
	ParticleLifetimeMax = 3.0
)

// Spawn Rates & Bursts
const (
	// TypingSpawnRate is particles per second at full typing speed;
	// scales linearly with the typing speed drive
	TypingSpawnRate = 24.0

	// TypingSpawnSpread is the origin jitter applied to typing spawns
	TypingSpawnSpread = 0.08

	// SubmissionBurstCount is the one-shot spawn count on submission
	SubmissionBurstCount = 24

	// ClickBurstCount is the one-shot spawn count on click
	ClickBurstCount = 6

	// ParticleSpeedMin and ParticleSpeedMax bound the speed hint
	// carried on each render record
	ParticleSpeedMin = 0.2
	ParticleSpeedMax = 1.0
)
