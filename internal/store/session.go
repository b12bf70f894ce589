package store

import (
	"database/sql"
	"errors"
	"time"
)

// Session represents one detection run: from the moment the bot was started
// to the moment it was paused or shut down, with aggregate counters.
type Session struct {
	ID         string
	RegionName string
	StartedAt  time.Time
	EndedAt    *time.Time
	Cycles     int64
	Detections int64
	Clicks     int64
}

// SessionRepository provides operations for run statistics.
type SessionRepository struct {
	db *sql.DB
}

// Sessions returns the session repository for this store.
func (s *Store) Sessions() *SessionRepository {
	return &SessionRepository{db: s.db}
}

// Begin inserts a new open session.
func (r *SessionRepository) Begin(session *Session) error {
	if session.StartedAt.IsZero() {
		session.StartedAt = time.Now()
	}

	_, err := r.db.Exec(
		`INSERT INTO sessions (id, region_name, started_at)
		 VALUES (?, ?, ?)`,
		session.ID, session.RegionName, session.StartedAt,
	)
	return err
}

// Finish closes a session and records its final counters.
func (r *SessionRepository) Finish(id string, cycles, detections, clicks int64) error {
	now := time.Now()

	result, err := r.db.Exec(
		`UPDATE sessions SET ended_at = ?, cycles = ?, detections = ?, clicks = ?
		 WHERE id = ?`,
		now, cycles, detections, clicks, id,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// GetByID retrieves a session by its ID.
func (r *SessionRepository) GetByID(id string) (*Session, error) {
	session := &Session{}
	var endedAt sql.NullTime

	err := r.db.QueryRow(
		`SELECT id, region_name, started_at, ended_at, cycles, detections, clicks
		 FROM sessions WHERE id = ?`,
		id,
	).Scan(&session.ID, &session.RegionName, &session.StartedAt, &endedAt,
		&session.Cycles, &session.Detections, &session.Clicks)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if endedAt.Valid {
		session.EndedAt = &endedAt.Time
	}
	return session, nil
}

// List retrieves all sessions, newest first.
func (r *SessionRepository) List() ([]*Session, error) {
	rows, err := r.db.Query(
		`SELECT id, region_name, started_at, ended_at, cycles, detections, clicks
		 FROM sessions ORDER BY started_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		session := &Session{}
		var endedAt sql.NullTime
		if err := rows.Scan(&session.ID, &session.RegionName, &session.StartedAt,
			&endedAt, &session.Cycles, &session.Detections, &session.Clicks); err != nil {
			return nil, err
		}
		if endedAt.Valid {
			session.EndedAt = &endedAt.Time
		}
		sessions = append(sessions, session)
	}

	return sessions, rows.Err()
}
