// Package learning persists feedback records that bias future intent
// disambiguation.
package learning

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/luminous-dynamics/ask-nix/internal/domain"
	"github.com/luminous-dynamics/ask-nix/internal/ports"
)

// queueDepth bounds the fire-and-forget write buffer. Overflow drops the
// record rather than blocking the response path.
const queueDepth = 64

// SQLiteStore implements ports.LearningStore on an embedded SQLite database.
// Writes flow through a single background flusher; a store that fails to
// open degrades to a no-op so recognition keeps working.
type SQLiteStore struct {
	db      *sql.DB
	path    string
	session string
	logger  ports.Logger

	mu    sync.Mutex
	queue chan domain.LearningRecord
	done  chan struct{}
}

// NewSQLiteStore creates (or opens) the learning database at path.
func NewSQLiteStore(path string, logger ports.Logger) *SQLiteStore {
	store := &SQLiteStore{
		path:    path,
		session: uuid.NewString(),
		logger:  logger,
		queue:   make(chan domain.LearningRecord, queueDepth),
		done:    make(chan struct{}),
	}

	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		store.warn("create learning dir", err)
		close(store.done)
		return store
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		store.warn("open learning db", err)
		close(store.done)
		return store
	}
	store.db = db
	if err := store.init(); err != nil {
		store.warn("init learning schema", err)
		store.db = nil
		_ = db.Close()
		close(store.done)
		return store
	}

	go store.flush()
	return store
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS feedback (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT,
		intent TEXT,
		entity TEXT,
		outcome TEXT,
		session_id TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_feedback_pair ON feedback(intent, entity);`)
	return err
}

// Record implements ports.LearningStore. It never blocks: the record is
// queued for the background flusher, or dropped with a debug line when the
// queue is full or the store is degraded.
func (s *SQLiteStore) Record(rec domain.LearningRecord) {
	if s.db == nil {
		return
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	if rec.SessionID == "" {
		rec.SessionID = s.session
	}
	select {
	case s.queue <- rec:
	default:
		if s.logger != nil {
			s.logger.Debug("learning queue full, dropping record", map[string]interface{}{
				"intent": string(rec.IntentType),
				"entity": rec.Entity,
			})
		}
	}
}

func (s *SQLiteStore) flush() {
	defer close(s.done)
	for rec := range s.queue {
		s.mu.Lock()
		_, err := s.db.Exec(`INSERT INTO feedback (timestamp, intent, entity, outcome, session_id)
			VALUES (?, ?, ?, ?, ?)`,
			rec.Timestamp.Format(time.RFC3339),
			string(rec.IntentType),
			rec.Entity,
			string(rec.Outcome),
			rec.SessionID,
		)
		s.mu.Unlock()
		if err != nil {
			s.warn("insert learning record", err)
		}
	}
}

// Bias implements the read path used during intent disambiguation.
func (s *SQLiteStore) Bias(intent domain.IntentType, entity string) (domain.BiasStats, error) {
	if s.db == nil {
		return domain.BiasStats{}, os.ErrInvalid
	}
	row := s.db.QueryRow(`SELECT
		COALESCE(SUM(CASE WHEN outcome = 'success' THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN outcome = 'failure' THEN 1 ELSE 0 END), 0)
		FROM feedback WHERE intent = ? AND entity = ?`,
		string(intent), entity)

	var stats domain.BiasStats
	if err := row.Scan(&stats.Successes, &stats.Failures); err != nil {
		return domain.BiasStats{}, err
	}
	return stats, nil
}

// Recent returns the newest records. A non-positive limit returns everything.
func (s *SQLiteStore) Recent(limit int) ([]domain.LearningRecord, error) {
	return s.query(`SELECT timestamp, intent, entity, outcome, session_id FROM feedback
		ORDER BY datetime(timestamp) DESC, id DESC LIMIT ?`, effectiveLimit(limit))
}

// Search returns records whose entity matches the query substring.
func (s *SQLiteStore) Search(query string, limit int) ([]domain.LearningRecord, error) {
	return s.query(`SELECT timestamp, intent, entity, outcome, session_id FROM feedback
		WHERE entity LIKE ? OR intent LIKE ?
		ORDER BY datetime(timestamp) DESC, id DESC LIMIT ?`,
		"%"+query+"%", "%"+query+"%", effectiveLimit(limit))
}

// effectiveLimit maps "no limit" onto SQLite's -1 sentinel.
func effectiveLimit(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}

func (s *SQLiteStore) query(q string, args ...interface{}) ([]domain.LearningRecord, error) {
	if s.db == nil {
		return nil, nil
	}
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.LearningRecord
	for rows.Next() {
		var rec domain.LearningRecord
		var ts, intent, outcome string
		if err := rows.Scan(&ts, &intent, &rec.Entity, &outcome, &rec.SessionID); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			rec.Timestamp = t
		}
		rec.IntentType = domain.IntentType(intent)
		rec.Outcome = domain.Outcome(outcome)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Prune deletes records older than the retention window.
func (s *SQLiteStore) Prune(olderThan time.Duration) (int64, error) {
	if s.db == nil {
		return 0, nil
	}
	cutoff := time.Now().Add(-olderThan).Format(time.RFC3339)
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.db.Exec(`DELETE FROM feedback WHERE datetime(timestamp) < datetime(?)`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Clear deletes all records.
func (s *SQLiteStore) Clear() error {
	if s.db == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`DELETE FROM feedback`)
	return err
}

// ExportJSON writes all records to a JSONL file.
func (s *SQLiteStore) ExportJSON(dest string) error {
	records, err := s.Recent(0)
	if err != nil {
		return err
	}
	file, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer file.Close()
	for _, rec := range records {
		b, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		if _, err := file.Write(append(b, '\n')); err != nil {
			return err
		}
	}
	return nil
}

// Close drains the write queue, stops the flusher and closes the database.
func (s *SQLiteStore) Close() error {
	close(s.queue)
	<-s.done
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) warn(msg string, err error) {
	if s.logger != nil {
		s.logger.Warn(msg, map[string]interface{}{"error": err.Error()})
	}
}

var _ ports.LearningStore = (*SQLiteStore)(nil)
