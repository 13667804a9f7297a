package web

import (
	"fmt"

	"github.com/emberlit/afterglow/engine"
	"github.com/emberlit/afterglow/event"
)

// InboundEvent is the JSON shape of one interaction event
// Type selects the kind; the other fields are read per kind and
// clamped downstream by the aggregator, never rejected for range
type InboundEvent struct {
	Type           string  `json:"type" binding:"required"`
	Key            string  `json:"key,omitempty"`
	InputLength    int     `json:"inputLength,omitempty"`
	TimestampMs    int64   `json:"timestampMs,omitempty"`
	Speed          float64 `json:"speed,omitempty"`
	QuestionIndex  int     `json:"questionIndex,omitempty"`
	ResponseLength int     `json:"responseLength,omitempty"`
	FromIndex      int     `json:"fromIndex,omitempty"`
	ToIndex        int     `json:"toIndex,omitempty"`
	X              float64 `json:"x,omitempty"`
	Y              float64 `json:"y,omitempty"`
	DeltaY         float64 `json:"deltaY,omitempty"`
}

// Ingest maps one inbound event onto the simulation queue
// Only an unknown type is an error; every recognized event is
// best-effort accepted
func Ingest(world *engine.World, in InboundEvent) error {
	q := world.Resource.Event.Queue
	frame := world.FrameNumber()

	switch in.Type {
	case "keystroke":
		key := rune(0)
		for _, r := range in.Key {
			key = r
			break
		}
		event.EmitKeystroke(q, key, in.InputLength, in.TimestampMs, frame)
	case "typingSpeed":
		event.EmitTypingSpeedSample(q, in.Speed, frame)
	case "submission":
		event.EmitSubmission(q, in.QuestionIndex, in.ResponseLength, in.TimestampMs, frame)
	case "questionChange":
		event.EmitQuestionChange(q, in.FromIndex, in.ToIndex, frame)
	case "click":
		event.EmitClick(q, in.TimestampMs, frame)
	case "pointerMove":
		event.EmitPointerMove(q, in.X, in.Y, frame)
	case "scroll":
		event.EmitScroll(q, in.DeltaY, frame)
	case "reset":
		event.EmitSessionReset(q, frame)
	default:
		return fmt.Errorf("unknown event type %q", in.Type)
	}
	return nil
}
