package recorder

import (
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/emberlit/afterglow/constant"
	"github.com/emberlit/afterglow/engine"
	"github.com/emberlit/afterglow/event"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	started_at INTEGER NOT NULL,
	ended_at   INTEGER
);
CREATE TABLE IF NOT EXISTS stage_results (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id        INTEGER NOT NULL REFERENCES sessions(id),
	stage_index       INTEGER NOT NULL,
	response_length   INTEGER NOT NULL,
	peak_typing_speed REAL NOT NULL,
	mean_activity     REAL NOT NULL,
	particle_spawns   INTEGER NOT NULL,
	cascade_fires     INTEGER NOT NULL,
	submitted_at      INTEGER NOT NULL
);
`

// StageResult is one persisted per-stage interaction summary
type StageResult struct {
	SessionID       int64
	StageIndex      int
	ResponseLength  int
	PeakTypingSpeed float64
	MeanActivity    float64
	ParticleSpawns  int64
	CascadeFires    int64
	SubmittedAt     time.Time
}

// Recorder persists per-stage interaction summaries to SQLite
// It observes the simulation as a system (sampling the activity state
// each tick) and as an event handler (flushing a summary row on each
// submission); writes happen on a background goroutine so the tick
// path never touches the database
type Recorder struct {
	world *engine.World
	db    *sql.DB
	log   *zap.Logger

	sessionID int64

	// Per-stage accumulators, reset after each submission
	peakTypingSpeed float64
	activitySum     float64
	activityTicks   int64
	spawnBase       int64
	fireBase        int64

	rows chan StageResult
	done chan struct{}
}

// Open opens (or creates) the session database and applies the schema
func Open(path string, world *engine.World, log *zap.Logger) (*Recorder, error) {
	dsn := path + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply session schema: %w", err)
	}

	r := &Recorder{
		world: world,
		db:    db,
		log:   log,
		rows:  make(chan StageResult, 64),
		done:  make(chan struct{}),
	}
	go r.writeLoop()
	return r, nil
}

// StartSession opens a new session row; stage results attach to it
func (r *Recorder) StartSession() error {
	res, err := r.db.Exec(`INSERT INTO sessions (started_at) VALUES (?)`,
		time.Now().UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("session id: %w", err)
	}
	r.sessionID = id
	r.resetStage()
	return nil
}

// Close flushes pending rows, stamps the session end, and closes the db
func (r *Recorder) Close() error {
	close(r.rows)
	<-r.done

	if r.sessionID != 0 {
		if _, err := r.db.Exec(`UPDATE sessions SET ended_at = ? WHERE id = ?`,
			time.Now().UTC().UnixMilli(), r.sessionID); err != nil && r.log != nil {
			r.log.Error("failed to close session row", zap.Error(err))
		}
	}
	return r.db.Close()
}

func (r *Recorder) Init() {
	r.resetStage()
}

func (r *Recorder) Priority() int {
	return constant.PriorityRecorder
}

// Update samples the published activity state once per tick
func (r *Recorder) Update() {
	state := r.world.Resource.Activity.State
	if state.TypingSpeed > r.peakTypingSpeed {
		r.peakTypingSpeed = state.TypingSpeed
	}
	r.activitySum += state.ActivityLevel
	r.activityTicks++
}

func (r *Recorder) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventSubmission,
		event.EventSessionReset,
	}
}

// HandleEvent flushes a stage summary on submission
// The row is handed to the write goroutine; a saturated queue drops
// the row rather than stalling the tick
func (r *Recorder) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventSubmission:
		p, ok := ev.Payload.(*event.SubmissionPayload)
		if !ok {
			return
		}

		spawns := r.world.Resource.Status.Ints.Get("particle.spawns").Load()
		fires := r.world.Resource.Status.Ints.Get("cascade.fires").Load()

		mean := 0.0
		if r.activityTicks > 0 {
			mean = r.activitySum / float64(r.activityTicks)
		}

		row := StageResult{
			SessionID:       r.sessionID,
			StageIndex:      p.QuestionIndex,
			ResponseLength:  p.ResponseLength,
			PeakTypingSpeed: r.peakTypingSpeed,
			MeanActivity:    mean,
			ParticleSpawns:  spawns - r.spawnBase,
			CascadeFires:    fires - r.fireBase,
			SubmittedAt:     time.UnixMilli(p.TimestampMs).UTC(),
		}

		select {
		case r.rows <- row:
		default:
			if r.log != nil {
				r.log.Warn("stage result dropped, write queue full",
					zap.Int("stage", row.StageIndex))
			}
		}
		r.resetStage()

	case event.EventSessionReset:
		r.resetStage()
	}
}

// resetStage rebaselines the per-stage accumulators
func (r *Recorder) resetStage() {
	r.peakTypingSpeed = 0
	r.activitySum = 0
	r.activityTicks = 0
	r.spawnBase = r.world.Resource.Status.Ints.Get("particle.spawns").Load()
	r.fireBase = r.world.Resource.Status.Ints.Get("cascade.fires").Load()
}

// writeLoop persists queued rows until the channel closes
func (r *Recorder) writeLoop() {
	defer close(r.done)
	for row := range r.rows {
		_, err := r.db.Exec(`
			INSERT INTO stage_results
				(session_id, stage_index, response_length, peak_typing_speed,
				 mean_activity, particle_spawns, cascade_fires, submitted_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			row.SessionID, row.StageIndex, row.ResponseLength, row.PeakTypingSpeed,
			row.MeanActivity, row.ParticleSpawns, row.CascadeFires,
			row.SubmittedAt.UnixMilli())
		if err != nil && r.log != nil {
			r.log.Error("failed to persist stage result",
				zap.Int("stage", row.StageIndex), zap.Error(err))
		}
	}
}

// StageResults returns all persisted rows for a session, oldest first
func (r *Recorder) StageResults(sessionID int64) ([]StageResult, error) {
	rows, err := r.db.Query(`
		SELECT session_id, stage_index, response_length, peak_typing_speed,
		       mean_activity, particle_spawns, cascade_fires, submitted_at
		FROM stage_results WHERE session_id = ? ORDER BY id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query stage results: %w", err)
	}
	defer rows.Close()

	var out []StageResult
	for rows.Next() {
		var sr StageResult
		var submittedMs int64
		if err := rows.Scan(&sr.SessionID, &sr.StageIndex, &sr.ResponseLength,
			&sr.PeakTypingSpeed, &sr.MeanActivity, &sr.ParticleSpawns,
			&sr.CascadeFires, &submittedMs); err != nil {
			return nil, fmt.Errorf("scan stage result: %w", err)
		}
		sr.SubmittedAt = time.UnixMilli(submittedMs).UTC()
		out = append(out, sr)
	}
	return out, rows.Err()
}

// SessionID returns the open session's row id
func (r *Recorder) SessionID() int64 {
	return r.sessionID
}
