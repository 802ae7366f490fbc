package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/cinema-session-booking/internal/model"
)

// HallRepo provides persistence for halls.  Halls are created once with
// a fixed capacity; the booking core only ever reads them.
type HallRepo struct {
	db *sql.DB
}

// NewHallRepo constructs a HallRepo with the given DB handle.
func NewHallRepo(db *sql.DB) *HallRepo {
	return &HallRepo{db: db}
}

// Create inserts a new hall.  The caller supplies the ID; name and
// capacity must be set.  Timestamps are read back after the insert so
// the returned struct reflects the stored row.
func (r *HallRepo) Create(ctx context.Context, h *model.Hall) error {
	const q = `INSERT INTO halls (id, name, capacity) VALUES (?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q, h.ID, h.Name, h.Capacity); err != nil {
		return err
	}
	const sel = `SELECT id, name, capacity, created_at, updated_at FROM halls WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, h.ID).
		Scan(&h.ID, &h.Name, &h.Capacity, &h.CreatedAt, &h.UpdatedAt)
}

// GetByID retrieves a hall by its ID.  It returns ErrHallNotFound when
// no row matches.
func (r *HallRepo) GetByID(ctx context.Context, id string) (*model.Hall, error) {
	const q = `SELECT id, name, capacity, created_at, updated_at FROM halls WHERE id = ?`
	var h model.Hall
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&h.ID, &h.Name, &h.Capacity, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHallNotFound
		}
		return nil, err
	}
	return &h, nil
}

// GetForUpdateTx locks the hall row for the duration of the caller's
// transaction and returns it.  Placement validation locks the hall so
// that two concurrent scheduling operations against the same hall
// serialize on this row.  Returns ErrHallNotFound when no row matches.
func (r *HallRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id string) (*model.Hall, error) {
	const q = `SELECT id, name, capacity, created_at, updated_at FROM halls WHERE id = ? FOR UPDATE`
	var h model.Hall
	err := tx.QueryRowContext(ctx, q, id).
		Scan(&h.ID, &h.Name, &h.Capacity, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHallNotFound
		}
		return nil, err
	}
	return &h, nil
}

// List returns all halls ordered by name.  When no halls exist it
// returns an empty slice and nil error.
func (r *HallRepo) List(ctx context.Context) ([]model.Hall, error) {
	const q = `SELECT id, name, capacity, created_at, updated_at FROM halls ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Hall, 0)
	for rows.Next() {
		var h model.Hall
		if err := rows.Scan(&h.ID, &h.Name, &h.Capacity, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
