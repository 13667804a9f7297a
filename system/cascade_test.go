package system

import (
	"testing"

	"github.com/emberlit/afterglow/event"
	"github.com/emberlit/afterglow/parameter"
)

func newCascadeHarness(seed uint64) (*simHarness, *CascadeSystem) {
	h := newHarness()
	cs := NewCascadeSystem(h.world, seed).(*CascadeSystem)
	h.add(cs)
	return h, cs
}

// quiet disables the stochastic triggers so a test can observe one
// firing in isolation
func quiet(h *simHarness) {
	h.world.Resource.Tuning.ChainProbabilityMin = 0
	h.world.Resource.Tuning.ChainProbabilityMax = 0
	h.world.Resource.Tuning.AmbientIntervalIdle = 1e9
	h.world.Resource.Tuning.AmbientIntervalActive = 1e9
}

func TestCascadeTopologyIsLayeredDAG(t *testing.T) {
	_, cs := newCascadeHarness(42)

	if cs.NodeCount() != parameter.CascadeNodes {
		t.Fatalf("node count = %d, want %d", cs.NodeCount(), parameter.CascadeNodes)
	}

	for i := range cs.nodes {
		node := &cs.nodes[i]
		if node.x < 0 || node.x > 1 || node.y < 0 || node.y > 1 {
			t.Errorf("node %d position (%.3f, %.3f) outside unit square", i, node.x, node.y)
		}

		if node.layer == parameter.CascadeLayers-1 {
			if len(node.connections) != 0 {
				t.Errorf("terminal-layer node %d has %d outgoing edges", i, len(node.connections))
			}
			continue
		}

		// Every edge targets the strictly next layer: no cycles possible
		if len(node.connections) < 1 || len(node.connections) > parameter.CascadeConnectionsMax {
			t.Errorf("node %d has %d connections, want 1..%d", i, len(node.connections), parameter.CascadeConnectionsMax)
		}
		seen := make(map[int]bool)
		for _, to := range node.connections {
			if to < 0 || to >= cs.NodeCount() {
				t.Fatalf("node %d edge target %d out of range", i, to)
			}
			if cs.nodes[to].layer != node.layer+1 {
				t.Errorf("node %d (layer %d) connects to node %d (layer %d)", i, node.layer, to, cs.nodes[to].layer)
			}
			if seen[to] {
				t.Errorf("node %d has duplicate edge to %d", i, to)
			}
			seen[to] = true
		}
	}
}

func TestCascadeFireSignalsAndDecay(t *testing.T) {
	h, cs := newCascadeHarness(42)
	quiet(h)
	h.tick(1.0 / 60.0)

	fanout := len(cs.Connections(0))
	if fanout == 0 {
		t.Fatal("node 0 has no outgoing edges")
	}

	cs.Fire(0)
	if cs.FiringLevel(0) != 1 {
		t.Fatalf("firing level = %.3f after fire, want 1", cs.FiringLevel(0))
	}
	if got := cs.ActiveSignalCount(); got != fanout {
		t.Fatalf("active signals = %d, want one per outgoing edge (%d)", got, fanout)
	}

	// All signals arrive within the maximum duration plus stagger,
	// and with chaining disabled nothing replaces them
	h.run(parameter.SignalDurationMax + float64(fanout)*parameter.SignalStagger + 0.05)
	if got := cs.ActiveSignalCount(); got != 0 {
		t.Errorf("active signals = %d after max duration, want 0", got)
	}

	// Firing decays back below the dormant threshold
	if level := cs.FiringLevel(0); level >= parameter.DormantFiringLevel {
		t.Errorf("firing level = %.4f after decay window, want < %v", level, parameter.DormantFiringLevel)
	}
}

func TestCascadeSignalProgressBounded(t *testing.T) {
	h, cs := newCascadeHarness(9)
	quiet(h)
	h.tick(1.0 / 60.0)

	cs.Fire(0)
	for i := 0; i < 40; i++ {
		h.tick(1.0 / 60.0)
		for _, sig := range h.world.Resource.Snapshot.Frame.Cascade.ActiveSignals {
			if sig.Progress < 0 || sig.Progress > 1 {
				t.Fatalf("signal %d->%d progress %.4f out of [0,1]", sig.From, sig.To, sig.Progress)
			}
		}
	}
}

func TestCascadeRefireGuardBlocksChains(t *testing.T) {
	h, cs := newCascadeHarness(42)
	h.world.Resource.Tuning.ChainProbabilityMin = 1
	h.world.Resource.Tuning.ChainProbabilityMax = 1
	h.world.Resource.Tuning.AmbientIntervalIdle = 1e9
	h.world.Resource.Tuning.AmbientIntervalActive = 1e9

	// A guard threshold of zero means no target is ever cold enough
	// to chain, even at certain probability
	h.world.Resource.Tuning.RefireGuardThreshold = 0
	h.tick(1.0 / 60.0)

	cs.Fire(0)
	h.run(2.0)

	if chains := h.world.Resource.Status.Ints.Get("cascade.chain_fires").Load(); chains != 0 {
		t.Errorf("chain fires = %d with a zero re-fire guard, want 0", chains)
	}
}

func TestCascadeSignalCeilingBoundsRunaway(t *testing.T) {
	h, cs := newCascadeHarness(42)

	// Worst case: certain chaining and a permissive guard
	h.world.Resource.Tuning.ChainProbabilityMin = 1
	h.world.Resource.Tuning.ChainProbabilityMax = 1
	h.world.Resource.Tuning.RefireGuardThreshold = 0.99
	h.tick(1.0 / 60.0)

	for i := 0; i < cs.layerCount[0]; i++ {
		cs.Fire(i)
	}
	for i := 0; i < 600; i++ {
		h.tick(1.0 / 60.0)
		if got := cs.ActiveSignalCount(); got > parameter.MaxActiveSignals {
			t.Fatalf("tick %d: %d active signals exceeds ceiling %d", i, got, parameter.MaxActiveSignals)
		}
	}
}

func TestCascadeSignalCeilingDropsFanout(t *testing.T) {
	h, cs := newCascadeHarness(42)
	quiet(h)
	h.world.Resource.Tuning.MaxActiveSignals = 1
	h.tick(1.0 / 60.0)

	node := -1
	for i := 0; i < cs.NodeCount(); i++ {
		if len(cs.Connections(i)) >= 2 {
			node = i
			break
		}
	}
	if node < 0 {
		t.Fatal("no node with 2+ outgoing edges")
	}

	cs.Fire(node)
	if got := cs.ActiveSignalCount(); got != 1 {
		t.Errorf("active signals = %d with ceiling 1, want 1", got)
	}
	if dropped := h.world.Resource.Status.Ints.Get("cascade.dropped_signals").Load(); dropped == 0 {
		t.Error("dropped-signal counter not incremented")
	}
}

func TestCascadeAmbientFiringWhileIdle(t *testing.T) {
	h, _ := newCascadeHarness(42)
	h.world.Resource.Tuning.ChainProbabilityMin = 0
	h.world.Resource.Tuning.ChainProbabilityMax = 0
	h.run(12.0)

	fires := h.world.Resource.Status.Ints.Get("cascade.fires").Load()
	if fires == 0 {
		t.Error("no ambient fires during 12s of idle")
	}
	// Idle flicker stays sparse: nowhere near one fire per tick
	if fires > 20 {
		t.Errorf("%d ambient fires in 12s idle, want sparse background flicker", fires)
	}
}

func TestCascadeProximityFiring(t *testing.T) {
	h, cs := newCascadeHarness(42)
	quiet(h)
	h.tick(1.0 / 60.0)

	// Park the pointer exactly on node 0
	h.world.Resource.Activity.PointerX = cs.nodes[0].x
	h.world.Resource.Activity.PointerY = cs.nodes[0].y
	h.world.Resource.Activity.PointerValid = true
	h.tick(1.0 / 60.0)

	if cs.FiringLevel(0) < 0.9 {
		t.Errorf("firing level = %.3f with pointer on node, want ~1", cs.FiringLevel(0))
	}
}

func TestCascadeSubmissionFiresEntryLayer(t *testing.T) {
	h, cs := newCascadeHarness(42)
	quiet(h)
	h.tick(1.0 / 60.0)

	event.EmitSubmission(h.world.Resource.Event.Queue, 0, 5, h.nowMs(), h.frame)
	h.tick(1.0 / 60.0)

	fired := 0
	for i := 0; i < cs.layerCount[0]; i++ {
		if cs.FiringLevel(cs.layerStart[0]+i) > 0.5 {
			fired++
		}
	}
	if fired == 0 {
		t.Error("no entry-layer node fired on submission")
	}
}
