package event

import "sync"

// Pools for high-frequency payloads
// Producers acquire, consumers release after handling

var keystrokePool = sync.Pool{
	New: func() any { return &KeystrokePayload{} },
}

// AcquireKeystroke returns a pooled keystroke payload
func AcquireKeystroke(key rune, inputLength int, timestampMs int64) *KeystrokePayload {
	p := keystrokePool.Get().(*KeystrokePayload)
	p.Key = key
	p.InputLength = inputLength
	p.TimestampMs = timestampMs
	return p
}

// ReleaseKeystroke returns the payload to its pool
func ReleaseKeystroke(p *KeystrokePayload) {
	if p == nil {
		return
	}
	*p = KeystrokePayload{}
	keystrokePool.Put(p)
}

var pointerMovePool = sync.Pool{
	New: func() any { return &PointerMovePayload{} },
}

// AcquirePointerMove returns a pooled pointer payload
func AcquirePointerMove(x, y float64) *PointerMovePayload {
	p := pointerMovePool.Get().(*PointerMovePayload)
	p.X = x
	p.Y = y
	return p
}

// ReleasePointerMove returns the payload to its pool
func ReleasePointerMove(p *PointerMovePayload) {
	if p == nil {
		return
	}
	*p = PointerMovePayload{}
	pointerMovePool.Put(p)
}

var scrollPool = sync.Pool{
	New: func() any { return &ScrollPayload{} },
}

// AcquireScroll returns a pooled scroll payload
func AcquireScroll(deltaY float64) *ScrollPayload {
	p := scrollPool.Get().(*ScrollPayload)
	p.DeltaY = deltaY
	return p
}

// ReleaseScroll returns the payload to its pool
func ReleaseScroll(p *ScrollPayload) {
	if p == nil {
		return
	}
	*p = ScrollPayload{}
	scrollPool.Put(p)
}

var spawnRequestPool = sync.Pool{
	New: func() any { return &ParticleSpawnRequestPayload{} },
}

// AcquireSpawnRequest returns a pooled spawn request payload
func AcquireSpawnRequest(x, y, z, speed, spread float64, count int) *ParticleSpawnRequestPayload {
	p := spawnRequestPool.Get().(*ParticleSpawnRequestPayload)
	p.X, p.Y, p.Z = x, y, z
	p.Speed = speed
	p.Spread = spread
	p.Count = count
	return p
}

// ReleaseSpawnRequest returns the payload to its pool
func ReleaseSpawnRequest(p *ParticleSpawnRequestPayload) {
	if p == nil {
		return
	}
	*p = ParticleSpawnRequestPayload{}
	spawnRequestPool.Put(p)
}

var soundRequestPool = sync.Pool{
	New: func() any { return &SoundRequestPayload{} },
}

// AcquireSoundRequest returns a pooled sound request payload
func AcquireSoundRequest(cue SoundCue) *SoundRequestPayload {
	p := soundRequestPool.Get().(*SoundRequestPayload)
	p.Cue = cue
	return p
}

// ReleaseSoundRequest returns the payload to its pool
func ReleaseSoundRequest(p *SoundRequestPayload) {
	if p == nil {
		return
	}
	*p = SoundRequestPayload{}
	soundRequestPool.Put(p)
}
