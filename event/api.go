package event

// Emit helpers push fully formed events onto the queue
// Hot-path payloads come from pools; the consuming system releases them

// EmitKeystroke pushes one key press
func EmitKeystroke(q *EventQueue, key rune, inputLength int, timestampMs, frame int64) {
	q.Push(GameEvent{
		Type:    EventKeystroke,
		Payload: AcquireKeystroke(key, inputLength, timestampMs),
		Frame:   frame,
	})
}

// EmitTypingSpeedSample pushes a host-measured speed sample
func EmitTypingSpeedSample(q *EventQueue, speed float64, frame int64) {
	q.Push(GameEvent{
		Type:    EventTypingSpeedSample,
		Payload: &TypingSpeedSamplePayload{Speed: speed},
		Frame:   frame,
	})
}

// EmitSubmission pushes a completed stage response
func EmitSubmission(q *EventQueue, questionIndex, responseLength int, timestampMs, frame int64) {
	q.Push(GameEvent{
		Type: EventSubmission,
		Payload: &SubmissionPayload{
			QuestionIndex:  questionIndex,
			ResponseLength: responseLength,
			TimestampMs:    timestampMs,
		},
		Frame: frame,
	})
}

// EmitQuestionChange pushes stage navigation
func EmitQuestionChange(q *EventQueue, fromIndex, toIndex int, frame int64) {
	q.Push(GameEvent{
		Type:    EventQuestionChange,
		Payload: &QuestionChangePayload{FromIndex: fromIndex, ToIndex: toIndex},
		Frame:   frame,
	})
}

// EmitClick pushes a discrete click
func EmitClick(q *EventQueue, timestampMs, frame int64) {
	q.Push(GameEvent{
		Type:    EventClick,
		Payload: &ClickPayload{TimestampMs: timestampMs},
		Frame:   frame,
	})
}

// EmitPointerMove pushes normalized pointer position
func EmitPointerMove(q *EventQueue, x, y float64, frame int64) {
	q.Push(GameEvent{
		Type:    EventPointerMove,
		Payload: AcquirePointerMove(x, y),
		Frame:   frame,
	})
}

// EmitScroll pushes wheel delta
func EmitScroll(q *EventQueue, deltaY float64, frame int64) {
	q.Push(GameEvent{
		Type:    EventScroll,
		Payload: AcquireScroll(deltaY),
		Frame:   frame,
	})
}

// EmitSpawnRequest pushes a drive-driven particle spawn request
func EmitSpawnRequest(q *EventQueue, x, y, z, speed, spread float64, count int, frame int64) {
	q.Push(GameEvent{
		Type:    EventParticleSpawnRequest,
		Payload: AcquireSpawnRequest(x, y, z, speed, spread, count),
		Frame:   frame,
	})
}

// EmitSound pushes an audio cue request
func EmitSound(q *EventQueue, cue SoundCue, frame int64) {
	q.Push(GameEvent{
		Type:    EventSoundRequest,
		Payload: AcquireSoundRequest(cue),
		Frame:   frame,
	})
}

// EmitSessionReset pushes a full session restart
func EmitSessionReset(q *EventQueue, frame int64) {
	q.Push(GameEvent{
		Type:  EventSessionReset,
		Frame: frame,
	})
}
