// This file defines repository methods for sessions.  A session row
// carries the hall capacity copied at creation/edit time; occupancy is
// derived from the reservations table, never stored.

package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/cinema-session-booking/internal/model"
)

const sessionCols = `id, film_name, starts_at, duration_min, hall_id, capacity, created_at, updated_at`

// SessionRepo manages persistence for sessions.
type SessionRepo struct {
	db *sql.DB
}

// NewSessionRepo constructs a SessionRepo with the given DB handle.
func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

func scanSession(row interface{ Scan(...any) error }, s *model.Session) error {
	return row.Scan(&s.ID, &s.FilmName, &s.StartsAt, &s.DurationMin,
		&s.HallID, &s.Capacity, &s.CreatedAt, &s.UpdatedAt)
}

// CreateTx inserts a new session within the caller's transaction.  The
// caller supplies the ID and the capacity copied from the hall; default
// fields are read back after the insert.
func (r *SessionRepo) CreateTx(ctx context.Context, tx *sql.Tx, s *model.Session) error {
	const q = `INSERT INTO sessions (id, film_name, starts_at, duration_min, hall_id, capacity)
	           VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, q, s.ID, s.FilmName, s.StartsAt.UTC(), s.DurationMin, s.HallID, s.Capacity); err != nil {
		return err
	}
	const sel = `SELECT ` + sessionCols + ` FROM sessions WHERE id = ?`
	return scanSession(tx.QueryRowContext(ctx, sel, s.ID), s)
}

// GetByID retrieves a session by its ID.  It returns ErrSessionNotFound
// if there is no matching row.
func (r *SessionRepo) GetByID(ctx context.Context, id string) (*model.Session, error) {
	const q = `SELECT ` + sessionCols + ` FROM sessions WHERE id = ?`
	var s model.Session
	if err := scanSession(r.db.QueryRowContext(ctx, q, id), &s); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &s, nil
}

// GetForUpdateTx locks a session row for the caller's transaction and
// returns it.  Every admission decision against a session starts by
// taking this lock so concurrent writers serialize per session.
func (r *SessionRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id string) (*model.Session, error) {
	const q = `SELECT ` + sessionCols + ` FROM sessions WHERE id = ? FOR UPDATE`
	var s model.Session
	if err := scanSession(tx.QueryRowContext(ctx, q, id), &s); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &s, nil
}

// GetPairForUpdateTx locks two session rows in a single statement,
// ordered by ID, and returns them keyed by their IDs.  The fixed lock
// order prevents deadlock between two concurrent transfers touching the
// same pair of sessions in opposite directions.  ErrSessionNotFound is
// returned unless both rows exist.
func (r *SessionRepo) GetPairForUpdateTx(ctx context.Context, tx *sql.Tx, idA, idB string) (map[string]*model.Session, error) {
	const q = `SELECT ` + sessionCols + ` FROM sessions WHERE id IN (?, ?) ORDER BY id FOR UPDATE`
	rows, err := tx.QueryContext(ctx, q, idA, idB)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[string]*model.Session, 2)
	for rows.Next() {
		var s model.Session
		if err := scanSession(rows, &s); err != nil {
			return nil, err
		}
		out[s.ID] = &s
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if out[idA] == nil || out[idB] == nil {
		return nil, ErrSessionNotFound
	}
	return out, nil
}

// ListByHallTx returns all sessions scheduled in a hall within the
// caller's transaction.  Placement validation reads the hall timetable
// through this method after locking the hall row.
func (r *SessionRepo) ListByHallTx(ctx context.Context, tx *sql.Tx, hallID string) ([]model.Session, error) {
	const q = `SELECT ` + sessionCols + ` FROM sessions WHERE hall_id = ? ORDER BY starts_at`
	rows, err := tx.QueryContext(ctx, q, hallID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Session
	for rows.Next() {
		var s model.Session
		if err := scanSession(rows, &s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// SessionWithOccupancy pairs a session with its derived occupancy for
// listing endpoints.
type SessionWithOccupancy struct {
	Session  model.Session
	Occupied uint32
}

// ListWithOccupancy returns all sessions ordered by start time, each
// with the sum of its reservations' ticket counts.
func (r *SessionRepo) ListWithOccupancy(ctx context.Context) ([]SessionWithOccupancy, error) {
	const q = `SELECT s.id, s.film_name, s.starts_at, s.duration_min, s.hall_id, s.capacity,
	                  s.created_at, s.updated_at,
	                  COALESCE(SUM(r.ticket_count), 0)
	           FROM sessions s
	           LEFT JOIN reservations r ON r.session_id = s.id
	           GROUP BY s.id
	           ORDER BY s.starts_at`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]SessionWithOccupancy, 0)
	for rows.Next() {
		var so SessionWithOccupancy
		if err := rows.Scan(&so.Session.ID, &so.Session.FilmName, &so.Session.StartsAt,
			&so.Session.DurationMin, &so.Session.HallID, &so.Session.Capacity,
			&so.Session.CreatedAt, &so.Session.UpdatedAt, &so.Occupied); err != nil {
			return nil, err
		}
		out = append(out, so)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateTx rewrites a session's schedulable fields within the caller's
// transaction.  Capacity travels with the hall reference: when a
// session moves to another hall the caller passes the new hall's
// capacity.  Returns ErrSessionNotFound when the row is gone.
func (r *SessionRepo) UpdateTx(ctx context.Context, tx *sql.Tx, s *model.Session) error {
	const q = `UPDATE sessions
	           SET film_name = ?, starts_at = ?, duration_min = ?, hall_id = ?, capacity = ?,
	               updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := tx.ExecContext(ctx, q, s.FilmName, s.StartsAt.UTC(), s.DurationMin, s.HallID, s.Capacity, s.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// MySQL reports zero affected rows for value-identical updates
		// as well; confirm existence before treating this as missing.
		var one int
		if err := tx.QueryRowContext(ctx, `SELECT 1 FROM sessions WHERE id = ?`, s.ID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrSessionNotFound
			}
			return err
		}
	}
	return nil
}

// DeleteTx removes a session row within the caller's transaction.  The
// caller deletes the session's reservations in the same transaction
// first so the cascade is atomic.
func (r *SessionRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id string) error {
	res, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSessionNotFound
	}
	return nil
}
