package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists the journal to a SQLite database.
type SQLiteRecorder struct {
	db        *sql.DB
	mu        sync.Mutex
	sessionID string
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
// Every row written is stamped with sessionID.
func NewSQLiteRecorder(dbPath, sessionID string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, sessionID: sessionID}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Infof("sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS price_ticks (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			received   INTEGER NOT NULL,
			ticker     TEXT,
			price      REAL,
			tick_time  INTEGER,
			outcome    TEXT,
			raw        TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ticks_ticker ON price_ticks(ticker, tick_time)`,

		`CREATE TABLE IF NOT EXISTS tape_polls (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			received   INTEGER NOT NULL,
			count      INTEGER,
			ok         INTEGER,
			error      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_polls_received ON tape_polls(received)`,

		`CREATE TABLE IF NOT EXISTS fetch_failures (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			received   INTEGER NOT NULL,
			ticker     TEXT,
			endpoint   TEXT,
			message    TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_failures_received ON fetch_failures(received)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordTick(evt *TickEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var tickTime int64
	if !evt.At.IsZero() {
		tickTime = evt.At.Unix()
	}
	_, err := r.db.Exec(`INSERT INTO price_ticks
		(session_id, received, ticker, price, tick_time, outcome, raw)
		VALUES (?,?,?,?,?,?,?)`,
		r.sessionID, time.Now().Unix(), evt.Ticker, evt.Price, tickTime, evt.Outcome, evt.Raw,
	)
	return err
}

func (r *SQLiteRecorder) RecordTapePoll(evt *TapePollEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ok := 0
	if evt.OK {
		ok = 1
	}
	_, err := r.db.Exec(`INSERT INTO tape_polls
		(session_id, received, count, ok, error)
		VALUES (?,?,?,?,?)`,
		r.sessionID, time.Now().Unix(), evt.Count, ok, evt.Error,
	)
	return err
}

func (r *SQLiteRecorder) RecordFetchFailure(evt *FetchFailureEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO fetch_failures
		(session_id, received, ticker, endpoint, message)
		VALUES (?,?,?,?,?)`,
		r.sessionID, time.Now().Unix(), evt.Ticker, evt.Endpoint, evt.Message,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Info("closing sqlite recorder")
	return r.db.Close()
}
