package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/cinema-session-booking/internal/model"
)

const reservationCols = `id, session_id, full_name, ticket_count, created_at, updated_at`

// ReservationRepo provides CRUD operations for reservations.  A
// reservation belongs to exactly one session; mutations run inside the
// caller's transaction so that the admission decision and the write
// commit as one unit.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

func scanReservation(row interface{ Scan(...any) error }, res *model.Reservation) error {
	return row.Scan(&res.ID, &res.SessionID, &res.FullName, &res.TicketCount,
		&res.CreatedAt, &res.UpdatedAt)
}

// GetByID retrieves a reservation by its ID.  It returns
// ErrReservationNotFound when no row matches.
func (r *ReservationRepo) GetByID(ctx context.Context, id string) (*model.Reservation, error) {
	const q = `SELECT ` + reservationCols + ` FROM reservations WHERE id = ?`
	var res model.Reservation
	if err := scanReservation(r.db.QueryRowContext(ctx, q, id), &res); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &res, nil
}

// ListBySession returns a session's reservations ordered by creation
// time.  When none exist it returns an empty slice and nil error.
func (r *ReservationRepo) ListBySession(ctx context.Context, sessionID string) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationCols + ` FROM reservations WHERE session_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, q, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReservations(rows)
}

// ListBySessionTx is ListBySession within the caller's transaction.
// The session row must already be locked; the rows read here are the
// snapshot every admission decision is made against.
func (r *ReservationRepo) ListBySessionTx(ctx context.Context, tx *sql.Tx, sessionID string) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationCols + ` FROM reservations WHERE session_id = ? ORDER BY created_at`
	rows, err := tx.QueryContext(ctx, q, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReservations(rows)
}

func collectReservations(rows *sql.Rows) ([]model.Reservation, error) {
	out := make([]model.Reservation, 0)
	for rows.Next() {
		var res model.Reservation
		if err := scanReservation(rows, &res); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTx inserts a new reservation within the caller's transaction.
// The caller supplies the ID; timestamps are read back after insert.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	const q = `INSERT INTO reservations (id, session_id, full_name, ticket_count) VALUES (?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, q, res.ID, res.SessionID, res.FullName, res.TicketCount); err != nil {
		return err
	}
	const sel = `SELECT ` + reservationCols + ` FROM reservations WHERE id = ?`
	return scanReservation(tx.QueryRowContext(ctx, sel, res.ID), res)
}

// UpdateTx rewrites a reservation's name and ticket count within the
// caller's transaction.
func (r *ReservationRepo) UpdateTx(ctx context.Context, tx *sql.Tx, id, fullName string, ticketCount uint32) error {
	const q = `UPDATE reservations
	           SET full_name = ?, ticket_count = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	_, err := tx.ExecContext(ctx, q, fullName, ticketCount, id)
	return err
}

// MoveTx re-homes a reservation onto another session within the
// caller's transaction.  Both session rows must be locked by the
// caller; the single UPDATE makes the source decrement and destination
// increment visible together.
func (r *ReservationRepo) MoveTx(ctx context.Context, tx *sql.Tx, id, dstSessionID string) error {
	const q = `UPDATE reservations
	           SET session_id = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := tx.ExecContext(ctx, q, dstSessionID, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrReservationNotFound
	}
	return nil
}

// DeleteTx removes a reservation within the caller's transaction.
func (r *ReservationRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id string) error {
	res, err := tx.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrReservationNotFound
	}
	return nil
}

// DeleteBySessionTx removes all of a session's reservations within the
// caller's transaction.  Used by session deletion, which cascades over
// the owned reservation set.
func (r *ReservationRepo) DeleteBySessionTx(ctx context.Context, tx *sql.Tx, sessionID string) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM reservations WHERE session_id = ?`, sessionID)
	return err
}
