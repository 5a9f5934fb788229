package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/dshills/wmevent/internal/input/event"
	"github.com/dshills/wmevent/internal/input/key"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	started INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS events (
	session TEXT NOT NULL,
	seq INTEGER NOT NULL,
	window TEXT NOT NULL,
	time INTEGER NOT NULL,
	type INTEGER NOT NULL,
	type_name TEXT NOT NULL,
	value INTEGER NOT NULL,
	x INTEGER NOT NULL, y INTEGER NOT NULL,
	prev_x INTEGER NOT NULL, prev_y INTEGER NOT NULL,
	mods INTEGER NOT NULL,
	keymod INTEGER NOT NULL,
	flags INTEGER NOT NULL,
	text TEXT NOT NULL,
	prev_type INTEGER NOT NULL,
	prev_value INTEGER NOT NULL,
	press_type INTEGER NOT NULL,
	press_time INTEGER NOT NULL,
	press_x INTEGER NOT NULL, press_y INTEGER NOT NULL,
	press_mods INTEGER NOT NULL,
	press_keymod INTEGER NOT NULL,
	tablet INTEGER NOT NULL,
	pressure REAL NOT NULL, tilt_x REAL NOT NULL, tilt_y REAL NOT NULL,
	payload_kind TEXT NOT NULL,
	payload BLOB,
	PRIMARY KEY (session, seq)
);
`

// Journal is an event journal backed by SQLite.
type Journal struct {
	db     *sql.DB
	mu     sync.Mutex
	closed bool
}

// Open opens or creates a journal. The path is a file path or ":memory:".
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	// A single connection keeps ":memory:" databases shared.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create journal schema: %w", err)
	}
	return &Journal{db: db}, nil
}

// Close closes the journal. Closing twice is a no-op.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return nil
	}
	j.closed = true
	return j.db.Close()
}

func (j *Journal) check() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return ErrClosed
	}
	return nil
}

// Session describes a recorded session.
type Session struct {
	ID      uuid.UUID
	Name    string
	Started time.Time
	Events  int
}

// Sessions lists the recorded sessions, oldest first.
func (j *Journal) Sessions(ctx context.Context) ([]Session, error) {
	if err := j.check(); err != nil {
		return nil, err
	}
	rows, err := j.db.QueryContext(ctx, `
		SELECT s.id, s.name, s.started, COUNT(e.seq)
		FROM sessions s LEFT JOIN events e ON e.session = s.id
		GROUP BY s.id
		ORDER BY s.started, s.rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var s Session
		var id string
		var started int64
		if err := rows.Scan(&id, &s.Name, &started, &s.Events); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if s.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		s.Started = fromNanos(started)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return out, nil
}

// Recorder appends the events of one session.
type Recorder struct {
	j       *Journal
	session uuid.UUID
	seq     int64
}

// NewRecorder starts a new session.
func (j *Journal) NewRecorder(ctx context.Context, name string, started time.Time) (*Recorder, error) {
	if err := j.check(); err != nil {
		return nil, err
	}
	id := uuid.New()
	if _, err := j.db.ExecContext(ctx,
		`INSERT INTO sessions (id, name, started) VALUES (?, ?, ?)`,
		id.String(), name, toNanos(started)); err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	return &Recorder{j: j, session: id}, nil
}

// Session returns the session ID.
func (r *Recorder) Session() uuid.UUID {
	return r.session
}

// Count returns the number of events recorded.
func (r *Recorder) Count() int64 {
	return r.seq
}

// Record appends an event handled in window.
func (r *Recorder) Record(ctx context.Context, window uuid.UUID, ev *event.Event) error {
	if err := r.j.check(); err != nil {
		return err
	}
	kind, payload, err := encodePayload(ev.Payload)
	if err != nil {
		return err
	}
	seq := r.seq + 1
	_, err = r.j.db.ExecContext(ctx, `
		INSERT INTO events (
			session, seq, window, time, type, type_name, value,
			x, y, prev_x, prev_y, mods, keymod, flags, text,
			prev_type, prev_value,
			press_type, press_time, press_x, press_y, press_mods, press_keymod,
			tablet, pressure, tilt_x, tilt_y, payload_kind, payload
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.session.String(), seq, window.String(), toNanos(ev.Time),
		int(ev.Type), ev.Type.String(), int(ev.Value),
		ev.Position.X, ev.Position.Y, ev.PrevPosition.X, ev.PrevPosition.Y,
		int(ev.Modifiers), int(ev.KeyModifier), int(ev.Flags), ev.Text,
		int(ev.PrevType), int(ev.PrevValue),
		int(ev.PrevPress.Type), toNanos(ev.PrevPress.Time),
		ev.PrevPress.Position.X, ev.PrevPress.Position.Y,
		int(ev.PrevPress.Modifiers), int(ev.PrevPress.KeyModifier),
		int(ev.Tablet.Active), ev.Tablet.Pressure, ev.Tablet.TiltX, ev.Tablet.TiltY,
		kind, payload,
	)
	if err != nil {
		return fmt.Errorf("record event %d: %w", seq, err)
	}
	r.seq = seq
	return nil
}

// Entry is a replayed event.
type Entry struct {
	Seq    int64
	Window uuid.UUID
	Event  *event.Event
}

// Replay calls fn for every event of a session in sequence order. It stops
// at the first error fn returns. Entries are read before fn is called, so fn
// may record into the same journal.
func (j *Journal) Replay(ctx context.Context, session uuid.UUID, fn func(Entry) error) error {
	entries, err := j.Entries(ctx, session)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := fn(e); err != nil {
			return err
		}
	}
	return nil
}

// Entries returns the events of a session in sequence order.
func (j *Journal) Entries(ctx context.Context, session uuid.UUID) ([]Entry, error) {
	if err := j.check(); err != nil {
		return nil, err
	}
	var exists int
	err := j.db.QueryRowContext(ctx, `SELECT 1 FROM sessions WHERE id = ?`, session.String()).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, session)
	}
	if err != nil {
		return nil, fmt.Errorf("replay %s: %w", session, err)
	}

	rows, err := j.db.QueryContext(ctx, `
		SELECT seq, window, time, type, value,
			x, y, prev_x, prev_y, mods, keymod, flags, text,
			prev_type, prev_value,
			press_type, press_time, press_x, press_y, press_mods, press_keymod,
			tablet, pressure, tilt_x, tilt_y, payload_kind, payload
		FROM events WHERE session = ? ORDER BY seq`, session.String())
	if err != nil {
		return nil, fmt.Errorf("replay %s: %w", session, err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return out, nil
}

func scanEntry(rows *sql.Rows) (Entry, error) {
	var (
		e                            Entry
		ev                           event.Event
		window, text, kind           string
		t, pressT                    int64
		typ, value, mods, keymod     int
		flags, prevType, prevValue   int
		pressType, pressMods, pressK int
		tablet                       int
		pressure, tiltX, tiltY       float64
		payload                      []byte
	)
	err := rows.Scan(&e.Seq, &window, &t, &typ, &value,
		&ev.Position.X, &ev.Position.Y, &ev.PrevPosition.X, &ev.PrevPosition.Y,
		&mods, &keymod, &flags, &text,
		&prevType, &prevValue,
		&pressType, &pressT, &ev.PrevPress.Position.X, &ev.PrevPress.Position.Y, &pressMods, &pressK,
		&tablet, &pressure, &tiltX, &tiltY, &kind, &payload)
	if err != nil {
		return Entry{}, fmt.Errorf("scan event: %w", err)
	}
	if e.Window, err = uuid.Parse(window); err != nil {
		return Entry{}, fmt.Errorf("scan event %d: %w", e.Seq, err)
	}

	ev.Time = fromNanos(t)
	ev.Type = key.Type(typ)
	ev.Value = key.Value(value)
	ev.Modifiers = key.Modifier(mods)
	ev.KeyModifier = key.Type(keymod)
	ev.Flags = event.Flag(flags)
	ev.Text = text
	ev.PrevType = key.Type(prevType)
	ev.PrevValue = key.Value(prevValue)
	ev.PrevPress.Type = key.Type(pressType)
	ev.PrevPress.Time = fromNanos(pressT)
	ev.PrevPress.Modifiers = key.Modifier(pressMods)
	ev.PrevPress.KeyModifier = key.Type(pressK)
	ev.Tablet = event.Tablet{
		Active:   event.TabletTool(tablet),
		Pressure: float32(pressure),
		TiltX:    float32(tiltX),
		TiltY:    float32(tiltY),
	}
	if ev.Payload, err = decodePayload(kind, payload); err != nil {
		return Entry{}, fmt.Errorf("event %d: %w", e.Seq, err)
	}
	e.Event = &ev
	return e, nil
}

func toNanos(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

func fromNanos(n int64) time.Time {
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n)
}
