package system

import (
	"sync/atomic"

	"github.com/emberlit/afterglow/constant"
	"github.com/emberlit/afterglow/engine"
	"github.com/emberlit/afterglow/event"
	"github.com/emberlit/afterglow/parameter"
	"github.com/emberlit/afterglow/status"
	"github.com/emberlit/afterglow/vmath"
)

// cascadeNode is one vertex of the layered network
// Position, layer, and connections are fixed at construction; only
// firingLevel mutates afterward
type cascadeNode struct {
	x, y        float64
	layer       int
	connections []int
	firingLevel float64
}

// cascadeSignal is one in-flight edge traversal
// startElapsed includes the per-edge stagger, so progress stays at 0
// until the signal actually departs
type cascadeSignal struct {
	from, to     int
	startElapsed float64
	duration     float64
}

// CascadeSystem models the layered activation network
// Edges only target the next layer, so the topology is a DAG and a
// cascade cannot cycle; the re-fire guard plus the global active-signal
// ceiling bound chain reactions in time and in per-tick work
type CascadeSystem struct {
	world *engine.World
	rng   *vmath.FastRand

	nodes    []cascadeNode
	signals  []cascadeSignal
	arrivals []int // Reused per-tick arrival buffer

	layerStart []int // First node index of each layer
	layerCount []int // Node count of each layer

	ambientClock    float64
	ambientInterval float64
	lastCueElapsed  float64

	// Reused snapshot buffers
	firingLevels  []float64
	signalRecords []engine.CascadeSignalRecord

	// Telemetry
	statFires      *atomic.Int64
	statChainFires *atomic.Int64
	statSignals    *atomic.Int64
	statDropped    *atomic.Int64
	statProb       *status.AtomicFloat
}

// NewCascadeSystem builds the network with the default shape
func NewCascadeSystem(world *engine.World, seed uint64) engine.System {
	return NewCascadeSystemShaped(world, parameter.CascadeLayers, parameter.CascadeNodes, seed)
}

// NewCascadeSystemShaped builds a network with an explicit layer and
// node count; shape is structural and fixed for the system's lifetime
func NewCascadeSystemShaped(world *engine.World, layers, nodeCount int, seed uint64) engine.System {
	if layers < 2 {
		layers = 2
	}
	if nodeCount < layers {
		nodeCount = layers
	}

	s := &CascadeSystem{
		world:         world,
		rng:           vmath.NewFastRand(seed),
		nodes:         make([]cascadeNode, 0, nodeCount),
		signals:       make([]cascadeSignal, 0, parameter.MaxActiveSignals),
		layerStart:    make([]int, layers),
		layerCount:    make([]int, layers),
		firingLevels:  make([]float64, nodeCount),
		signalRecords: make([]engine.CascadeSignalRecord, 0, parameter.MaxActiveSignals),
	}

	s.statFires = world.Resource.Status.Ints.Get("cascade.fires")
	s.statChainFires = world.Resource.Status.Ints.Get("cascade.chain_fires")
	s.statSignals = world.Resource.Status.Ints.Get("cascade.active_signals")
	s.statDropped = world.Resource.Status.Ints.Get("cascade.dropped_signals")
	s.statProb = world.Resource.Status.Floats.Get("cascade.chain_probability")

	s.buildTopology(layers, nodeCount)
	s.publishLayout()
	return s
}

// buildTopology distributes nodes across layers and wires each node to
// a random capped subset of next-layer nodes
// Layer determines x; y is jittered within the layer column
func (s *CascadeSystem) buildTopology(layers, nodeCount int) {
	base := nodeCount / layers
	extra := nodeCount % layers
	idx := 0
	for l := 0; l < layers; l++ {
		count := base
		if l < extra {
			count++
		}
		s.layerStart[l] = idx
		s.layerCount[l] = count

		x := (float64(l) + 0.5) / float64(layers)
		for i := 0; i < count; i++ {
			y := (float64(i)+0.5)/float64(count) +
				s.rng.Range(-parameter.CascadeLayerJitter, parameter.CascadeLayerJitter)
			s.nodes = append(s.nodes, cascadeNode{
				x:     x,
				y:     vmath.Clamp01(y),
				layer: l,
			})
		}
		idx += count
	}

	for l := 0; l < layers-1; l++ {
		nextStart := s.layerStart[l+1]
		nextCount := s.layerCount[l+1]

		for i := 0; i < s.layerCount[l]; i++ {
			node := &s.nodes[s.layerStart[l]+i]

			want := parameter.CascadeConnectionsMin +
				s.rng.Intn(parameter.CascadeConnectionsMax-parameter.CascadeConnectionsMin+1)
			if want > nextCount {
				want = nextCount
			}

			// Partial shuffle of next-layer indices, take the prefix
			pick := make([]int, nextCount)
			for j := range pick {
				pick[j] = nextStart + j
			}
			for j := 0; j < want; j++ {
				k := j + s.rng.Intn(nextCount-j)
				pick[j], pick[k] = pick[k], pick[j]
			}
			node.connections = pick[:want:want]
		}
	}
}

// publishLayout exposes the static geometry once for renderers and
// the web layer
func (s *CascadeSystem) publishLayout() {
	layout := make([]engine.CascadeNodeLayout, len(s.nodes))
	for i := range s.nodes {
		layout[i] = engine.CascadeNodeLayout{
			X:           s.nodes[i].x,
			Y:           s.nodes[i].y,
			Layer:       s.nodes[i].layer,
			Connections: s.nodes[i].connections,
		}
	}
	s.world.Resource.Cascade.Nodes = layout
}

// Init resets the dynamics; the topology persists for the process
// lifetime
func (s *CascadeSystem) Init() {
	for i := range s.nodes {
		s.nodes[i].firingLevel = 0
	}
	s.signals = s.signals[:0]
	s.ambientClock = 0
	s.ambientInterval = 0
	s.lastCueElapsed = 0
	s.statSignals.Store(0)
}

func (s *CascadeSystem) Priority() int {
	return constant.PriorityCascade
}

// NodeCount returns the fixed vertex count
func (s *CascadeSystem) NodeCount() int {
	return len(s.nodes)
}

// ActiveSignalCount returns the number of in-flight signals
func (s *CascadeSystem) ActiveSignalCount() int {
	return len(s.signals)
}

// FiringLevel returns the current activation of one node
func (s *CascadeSystem) FiringLevel(i int) float64 {
	if i < 0 || i >= len(s.nodes) {
		return 0
	}
	return s.nodes[i].firingLevel
}

// Connections returns the outgoing edges of one node
func (s *CascadeSystem) Connections(i int) []int {
	if i < 0 || i >= len(s.nodes) {
		return nil
	}
	return s.nodes[i].connections
}

func (s *CascadeSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventSubmission,
		event.EventSessionReset,
	}
}

// HandleEvent fires a small burst of entry-layer nodes on submission
func (s *CascadeSystem) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventSubmission:
		entry := s.layerCount[0]
		for i := 0; i < parameter.SubmissionFireCount && i < entry; i++ {
			s.Fire(s.layerStart[0] + s.rng.Intn(entry))
		}
	case event.EventSessionReset:
		s.Init()
	}
}

// Fire sets a node's firing level to maximum and schedules signals
// along its outgoing edges, staggered so a fan-out does not travel as
// one flat wavefront
// Fan-out past the global active-signal ceiling is dropped silently
func (s *CascadeSystem) Fire(nodeIndex int) {
	if nodeIndex < 0 || nodeIndex >= len(s.nodes) {
		return
	}
	node := &s.nodes[nodeIndex]
	node.firingLevel = 1
	s.statFires.Add(1)

	elapsed := s.world.Resource.Time.Elapsed
	ceiling := s.world.Resource.Tuning.MaxActiveSignals
	for j, to := range node.connections {
		if len(s.signals) >= ceiling {
			s.statDropped.Add(int64(len(node.connections) - j))
			break
		}
		s.signals = append(s.signals, cascadeSignal{
			from:         nodeIndex,
			to:           to,
			startElapsed: elapsed + float64(j)*parameter.SignalStagger,
			duration:     s.rng.Range(parameter.SignalDurationMin, parameter.SignalDurationMax),
		})
	}
}

// Update decays firing levels, advances signals, resolves arrivals,
// and applies the pointer-proximity and ambient triggers
func (s *CascadeSystem) Update() {
	res := s.world.Resource
	dt := res.Time.DeltaTime.Seconds()
	if dt > parameter.MaxTickDelta {
		dt = parameter.MaxTickDelta
	}
	elapsed := res.Time.Elapsed
	act := res.Activity.State

	// Firing decay: every node returns to dormant in finite time
	// absent re-fire
	decay := vmath.FrameDecay(parameter.FiringDecayPerFrame, dt, parameter.ReferenceFrameRate)
	for i := range s.nodes {
		s.nodes[i].firingLevel *= decay
	}

	// Chain probability rises with the activity drives
	chainDrive := vmath.Clamp01(
		0.6*act.ActivityLevel + 0.4*act.TypingSpeed/parameter.TypingSpeedMax)
	chainProb := vmath.Lerp(res.Tuning.ChainProbabilityMin, res.Tuning.ChainProbabilityMax, chainDrive)
	s.statProb.Set(chainProb)

	// Advance signals, splitting arrivals out before any re-fire so
	// chain fires append to a compacted slice
	kept := s.signals[:0]
	s.arrivals = s.arrivals[:0]
	for _, sig := range s.signals {
		if elapsed-sig.startElapsed < sig.duration {
			kept = append(kept, sig)
		} else {
			s.arrivals = append(s.arrivals, sig.to)
		}
	}
	s.signals = kept

	// Arrivals chain-fire their target only past the re-fire guard;
	// the guard is what keeps a hot cascade from sustaining itself
	for _, to := range s.arrivals {
		if s.rng.Chance(chainProb) && s.nodes[to].firingLevel < res.Tuning.RefireGuardThreshold {
			s.Fire(to)
			s.statChainFires.Add(1)
			s.maybeCue(elapsed)
		}
	}

	// Pointer proximity fires nearby dormant nodes
	if res.Activity.PointerValid {
		radius := res.Tuning.ProximityFireRadius
		for i := range s.nodes {
			node := &s.nodes[i]
			if node.firingLevel >= res.Tuning.RefireGuardThreshold {
				continue
			}
			if vmath.Dist(res.Activity.PointerX, res.Activity.PointerY, node.x, node.y) < radius {
				s.Fire(i)
			}
		}
	}

	// Ambient flicker: sparse while quiescent, denser with activity
	s.ambientClock += dt
	if s.ambientInterval <= 0 {
		s.ambientInterval = s.nextAmbientInterval(act.ActivityLevel)
	}
	if s.ambientClock >= s.ambientInterval {
		s.ambientClock = 0
		s.ambientInterval = s.nextAmbientInterval(act.ActivityLevel)
		s.Fire(s.rng.Intn(len(s.nodes)))
	}

	s.publishSnapshot(elapsed)
}

// nextAmbientInterval interpolates the mean fire spacing from the
// activity level and jitters it so the flicker never looks periodic
func (s *CascadeSystem) nextAmbientInterval(activityLevel float64) float64 {
	mean := vmath.Lerp(s.world.Resource.Tuning.AmbientIntervalIdle,
		s.world.Resource.Tuning.AmbientIntervalActive, activityLevel)
	return mean * s.rng.Range(0.6, 1.4)
}

// maybeCue requests an audio tick for chain fires, throttled so a
// dense cascade does not saturate the mixer
func (s *CascadeSystem) maybeCue(elapsed float64) {
	if elapsed-s.lastCueElapsed < 0.25 {
		return
	}
	s.lastCueElapsed = elapsed
	s.world.PushEvent(event.EventSoundRequest, event.AcquireSoundRequest(event.CueCascade))
}

// publishSnapshot writes firing levels and active signals into the
// outbound frame using reused buffers
func (s *CascadeSystem) publishSnapshot(elapsed float64) {
	for i := range s.nodes {
		s.firingLevels[i] = s.nodes[i].firingLevel
	}

	s.signalRecords = s.signalRecords[:0]
	for _, sig := range s.signals {
		progress := 0.0
		if sig.duration > 0 {
			progress = vmath.Clamp01((elapsed - sig.startElapsed) / sig.duration)
		}
		s.signalRecords = append(s.signalRecords, engine.CascadeSignalRecord{
			From:     sig.from,
			To:       sig.to,
			Progress: progress,
		})
	}

	s.world.Resource.Snapshot.Frame.Cascade.NodeFiringLevels = s.firingLevels
	s.world.Resource.Snapshot.Frame.Cascade.ActiveSignals = s.signalRecords
	s.statSignals.Store(int64(len(s.signals)))
}
