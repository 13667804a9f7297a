package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/emberlit/afterglow/engine"
	"github.com/emberlit/afterglow/event"
)

func TestRecorderStageRoundTrip(t *testing.T) {
	w := engine.NewWorld()
	path := filepath.Join(t.TempDir(), "session.db")

	r, err := Open(path, w, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := r.StartSession(); err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	// Three ticks of drive state, plus some simulation counters
	for _, sample := range []struct{ speed, level float64 }{
		{2.0, 0.4}, {2.8, 0.6}, {1.0, 0.5},
	} {
		w.Resource.Activity.State.TypingSpeed = sample.speed
		w.Resource.Activity.State.ActivityLevel = sample.level
		r.Update()
	}
	w.Resource.Status.Ints.Get("particle.spawns").Store(17)
	w.Resource.Status.Ints.Get("cascade.fires").Store(5)

	submitted := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	r.HandleEvent(event.GameEvent{
		Type: event.EventSubmission,
		Payload: &event.SubmissionPayload{
			QuestionIndex:  2,
			ResponseLength: 120,
			TimestampMs:    submitted.UnixMilli(),
		},
	})

	sessionID := r.SessionID()
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Reopen the same file and read the row back
	r2, err := Open(path, w, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer r2.Close()

	results, err := r2.StageResults(sessionID)
	if err != nil {
		t.Fatalf("StageResults: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("persisted %d rows, want 1", len(results))
	}

	row := results[0]
	if row.StageIndex != 2 || row.ResponseLength != 120 {
		t.Errorf("row = %+v, want stage 2 length 120", row)
	}
	if row.PeakTypingSpeed != 2.8 {
		t.Errorf("peak typing speed = %v, want 2.8", row.PeakTypingSpeed)
	}
	if row.MeanActivity < 0.49 || row.MeanActivity > 0.51 {
		t.Errorf("mean activity = %v, want ~0.5", row.MeanActivity)
	}
	if row.ParticleSpawns != 17 || row.CascadeFires != 5 {
		t.Errorf("counters = %d/%d, want 17/5", row.ParticleSpawns, row.CascadeFires)
	}
	if !row.SubmittedAt.Equal(submitted) {
		t.Errorf("submitted at = %v, want %v", row.SubmittedAt, submitted)
	}
}

func TestRecorderAccumulatorsResetPerStage(t *testing.T) {
	w := engine.NewWorld()
	r, err := Open(filepath.Join(t.TempDir(), "session.db"), w, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()
	if err := r.StartSession(); err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	w.Resource.Activity.State.TypingSpeed = 3.0
	r.Update()
	r.HandleEvent(event.GameEvent{
		Type:    event.EventSubmission,
		Payload: &event.SubmissionPayload{QuestionIndex: 0, TimestampMs: 1},
	})

	// Next stage must not inherit the previous stage's peak
	if r.peakTypingSpeed != 0 {
		t.Errorf("peak = %v after submission, want reset to 0", r.peakTypingSpeed)
	}
	if r.activityTicks != 0 {
		t.Errorf("activity ticks = %d after submission, want 0", r.activityTicks)
	}
}

func TestRecorderSessionResetRebaselines(t *testing.T) {
	w := engine.NewWorld()
	r, err := Open(filepath.Join(t.TempDir(), "session.db"), w, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()
	if err := r.StartSession(); err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	w.Resource.Activity.State.TypingSpeed = 2.0
	r.Update()
	w.Resource.Status.Ints.Get("particle.spawns").Store(99)

	r.HandleEvent(event.GameEvent{Type: event.EventSessionReset})

	if r.peakTypingSpeed != 0 {
		t.Errorf("peak = %v after reset, want 0", r.peakTypingSpeed)
	}
	if r.spawnBase != 99 {
		t.Errorf("spawn base = %d after reset, want 99", r.spawnBase)
	}
}
