package audio

import (
	"sync/atomic"

	"github.com/emberlit/afterglow/constant"
	"github.com/emberlit/afterglow/engine"
	"github.com/emberlit/afterglow/event"
)

// System bridges sound request events to the player
// Runs after the simulation systems so cues reflect the finished tick
type System struct {
	player *Player

	statCues *atomic.Int64
}

// NewSystem creates the audio system over a shared player
func NewSystem(world *engine.World, player *Player) engine.System {
	return &System{
		player:   player,
		statCues: world.Resource.Status.Ints.Get("audio.cues"),
	}
}

func (s *System) Init()         {}
func (s *System) Priority() int { return constant.PriorityAudio }
func (s *System) Update()       {}

func (s *System) EventTypes() []event.EventType {
	return []event.EventType{event.EventSoundRequest}
}

func (s *System) HandleEvent(ev event.GameEvent) {
	p, ok := ev.Payload.(*event.SoundRequestPayload)
	if !ok {
		return
	}
	s.statCues.Add(1)
	s.player.Play(p.Cue)
	event.ReleaseSoundRequest(p)
}
