// Package service orchestrates the booking consistency engine against
// the persistence layer.  Every mutating operation follows the same
// shape: begin a transaction, lock the affected session rows, read a
// consistent snapshot, let the engine decide, apply the plan and
// commit.  Rejections are returned before any write; storage failures
// roll the transaction back in full.
package service

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/cinema-session-booking/internal/engine"
	"github.com/iliyamo/cinema-session-booking/internal/model"
	"github.com/iliyamo/cinema-session-booking/internal/queue"
	"github.com/iliyamo/cinema-session-booking/internal/repository"
)

// BookingService bundles the repositories behind the booking API.  The
// session is the unit of mutual exclusion: admission and commit happen
// under the session's row lock so two concurrent requests can never
// both pass a capacity check against a stale occupancy figure.
type BookingService struct {
	db           *sql.DB
	halls        *repository.HallRepo
	sessions     *repository.SessionRepo
	reservations *repository.ReservationRepo
}

// NewBookingService constructs a BookingService and panics if any
// dependency is nil.
func NewBookingService(db *sql.DB, halls *repository.HallRepo, sessions *repository.SessionRepo, reservations *repository.ReservationRepo) *BookingService {
	if db == nil || halls == nil || sessions == nil || reservations == nil {
		panic("nil dependency passed to NewBookingService")
	}
	return &BookingService{db: db, halls: halls, sessions: sessions, reservations: reservations}
}

// SessionInput carries the fields required to schedule a new session.
type SessionInput struct {
	FilmName    string
	StartsAt    time.Time
	DurationMin uint32
	HallID      string
}

// SessionPatch carries optional replacements for a session's fields;
// nil fields keep their current value.
type SessionPatch struct {
	FilmName    *string
	StartsAt    *time.Time
	DurationMin *uint32
	HallID      *string
}

// ReservationView is the API shape of one reservation.
type ReservationView struct {
	ID          string `json:"id"`
	SessionID   string `json:"session_id"`
	FullName    string `json:"full_name"`
	TicketCount uint32 `json:"ticket_count"`
}

// SessionView is the API shape of one session with derived occupancy.
type SessionView struct {
	ID           string            `json:"id"`
	FilmName     string            `json:"film_name"`
	StartsAt     time.Time         `json:"starts_at"`
	DurationMin  uint32            `json:"duration_min"`
	HallID       string            `json:"hall_id"`
	Capacity     uint32            `json:"capacity"`
	Occupied     uint32            `json:"occupied"`
	Reservations []ReservationView `json:"reservations,omitempty"`
}

// ReservationResult reports the committed outcome of a reservation add
// or edit.  Consolidated is true when the request merged into an
// existing same-name reservation instead of creating or keeping a
// separate one.
type ReservationResult struct {
	ReservationID string `json:"reservation_id"`
	SessionID     string `json:"session_id"`
	FullName      string `json:"full_name"`
	TicketCount   uint32 `json:"ticket_count"`
	Occupied      uint32 `json:"occupied"`
	Capacity      uint32 `json:"capacity"`
	Consolidated  bool   `json:"consolidated"`
}

// TransferResult reports a committed cross-session transfer.
type TransferResult struct {
	ReservationID string `json:"reservation_id"`
	FromSessionID string `json:"from_session_id"`
	ToSessionID   string `json:"to_session_id"`
	TicketCount   uint32 `json:"ticket_count"`
}

// asRejection maps repository sentinel errors onto NOT_FOUND and wraps
// any other non-rejection error as a storage failure.
func asRejection(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrHallNotFound) ||
		errors.Is(err, repository.ErrSessionNotFound) ||
		errors.Is(err, repository.ErrReservationNotFound) {
		return engine.Reject(engine.ReasonNotFound)
	}
	var rej *engine.Rejection
	if errors.As(err, &rej) {
		return err
	}
	return engine.Storage(err)
}

// sessionWindow builds the engine time window for a session schedule.
func sessionWindow(startsAt time.Time, durationMin uint32) engine.Window {
	return engine.Window{Start: startsAt, Duration: time.Duration(durationMin) * time.Minute}
}

// placements converts a hall timetable into engine placements.
func placements(timetable []model.Session) []engine.Placement {
	out := make([]engine.Placement, 0, len(timetable))
	for _, s := range timetable {
		out = append(out, engine.Placement{
			SessionID: s.ID,
			Window:    sessionWindow(s.StartsAt, s.DurationMin),
		})
	}
	return out
}

// snapshotTx reads the session's reservations under its row lock and
// builds the engine snapshot every admission decision runs against.
func (s *BookingService) snapshotTx(ctx context.Context, tx *sql.Tx, sess *model.Session) (engine.SessionSnapshot, error) {
	list, err := s.reservations.ListBySessionTx(ctx, tx, sess.ID)
	if err != nil {
		return engine.SessionSnapshot{}, err
	}
	snap := engine.SessionSnapshot{ID: sess.ID, FilmName: sess.FilmName, Capacity: int(sess.Capacity)}
	for _, r := range list {
		snap.Reservations = append(snap.Reservations, engine.ReservationSnapshot{
			ID:          r.ID,
			FullName:    r.FullName,
			TicketCount: int(r.TicketCount),
		})
	}
	return snap, nil
}

// CreateHall registers a hall with a fixed seating capacity.
func (s *BookingService) CreateHall(ctx context.Context, name string, capacity uint32) (*model.Hall, error) {
	name = strings.TrimSpace(name)
	if name == "" || capacity == 0 {
		return nil, engine.Reject(engine.ReasonInvalidInput)
	}
	h := &model.Hall{ID: uuid.NewString(), Name: name, Capacity: capacity}
	if err := s.halls.Create(ctx, h); err != nil {
		return nil, engine.Storage(err)
	}
	return h, nil
}

// ListHalls returns all halls.
func (s *BookingService) ListHalls(ctx context.Context) ([]model.Hall, error) {
	halls, err := s.halls.List(ctx)
	if err != nil {
		return nil, engine.Storage(err)
	}
	return halls, nil
}

// GetHall returns one hall by ID.
func (s *BookingService) GetHall(ctx context.Context, id string) (*model.Hall, error) {
	h, err := s.halls.GetByID(ctx, id)
	if err != nil {
		return nil, asRejection(err)
	}
	return h, nil
}

// CreateSession schedules a new screening.  The hall row is locked so
// concurrent placements into the same hall serialize, the timetable is
// read under that lock and the placement validated pairwise against
// it, then the session is inserted with the hall capacity copied onto
// it.
func (s *BookingService) CreateSession(ctx context.Context, in SessionInput) (*model.Session, error) {
	film := strings.TrimSpace(in.FilmName)
	if film == "" || in.DurationMin == 0 || in.HallID == "" || in.StartsAt.IsZero() {
		return nil, engine.Reject(engine.ReasonInvalidInput)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, engine.Storage(err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	hall, err := s.halls.GetForUpdateTx(ctx, tx, in.HallID)
	if err != nil {
		return nil, asRejection(err)
	}
	timetable, err := s.sessions.ListByHallTx(ctx, tx, hall.ID)
	if err != nil {
		return nil, engine.Storage(err)
	}
	if err := engine.ValidatePlacement(sessionWindow(in.StartsAt, in.DurationMin), placements(timetable), ""); err != nil {
		return nil, err
	}
	sess := &model.Session{
		ID:          uuid.NewString(),
		FilmName:    film,
		StartsAt:    in.StartsAt.UTC(),
		DurationMin: in.DurationMin,
		HallID:      hall.ID,
		Capacity:    hall.Capacity,
	}
	if err := s.sessions.CreateTx(ctx, tx, sess); err != nil {
		return nil, engine.Storage(err)
	}
	if err := tx.Commit(); err != nil {
		return nil, engine.Storage(err)
	}
	committed = true
	return sess, nil
}

// ListSessions returns all sessions with derived occupancy.
func (s *BookingService) ListSessions(ctx context.Context) ([]SessionView, error) {
	list, err := s.sessions.ListWithOccupancy(ctx)
	if err != nil {
		return nil, engine.Storage(err)
	}
	out := make([]SessionView, 0, len(list))
	for _, so := range list {
		out = append(out, SessionView{
			ID:          so.Session.ID,
			FilmName:    so.Session.FilmName,
			StartsAt:    so.Session.StartsAt,
			DurationMin: so.Session.DurationMin,
			HallID:      so.Session.HallID,
			Capacity:    so.Session.Capacity,
			Occupied:    so.Occupied,
		})
	}
	return out, nil
}

// GetSession returns one session with its reservations and derived
// occupancy.
func (s *BookingService) GetSession(ctx context.Context, id string) (*SessionView, error) {
	sess, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, asRejection(err)
	}
	list, err := s.reservations.ListBySession(ctx, sess.ID)
	if err != nil {
		return nil, engine.Storage(err)
	}
	view := &SessionView{
		ID:           sess.ID,
		FilmName:     sess.FilmName,
		StartsAt:     sess.StartsAt,
		DurationMin:  sess.DurationMin,
		HallID:       sess.HallID,
		Capacity:     sess.Capacity,
		Reservations: make([]ReservationView, 0, len(list)),
	}
	for _, r := range list {
		view.Occupied += r.TicketCount
		view.Reservations = append(view.Reservations, ReservationView{
			ID:          r.ID,
			SessionID:   r.SessionID,
			FullName:    r.FullName,
			TicketCount: r.TicketCount,
		})
	}
	return view, nil
}

// hallLockOrder returns the distinct hall IDs a reschedule touches, in
// the fixed order their row locks must be taken.  Concurrent writers
// locking hall rows in the same order cannot deadlock on them.
func hallLockOrder(current, target string) []string {
	if current == target {
		return []string{current}
	}
	if target < current {
		return []string{target, current}
	}
	return []string{current, target}
}

// EditSession reschedules a session.  Every involved hall row is
// locked, exactly as in CreateSession, so an edit and any concurrent
// placement into the same hall serialize and validate against each
// other's committed timetable.  Placement is re-validated in the
// target hall with the session excluded from its own conflict set; a
// hall change re-copies the hall capacity and refuses to strand more
// occupants than the new hall seats.
func (s *BookingService) EditSession(ctx context.Context, id string, patch SessionPatch) (*model.Session, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, engine.Storage(err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	cur, err := s.sessions.GetForUpdateTx(ctx, tx, id)
	if err != nil {
		return nil, asRejection(err)
	}
	film := cur.FilmName
	if patch.FilmName != nil {
		film = strings.TrimSpace(*patch.FilmName)
		if film == "" {
			return nil, engine.Reject(engine.ReasonInvalidInput)
		}
	}
	startsAt := cur.StartsAt
	if patch.StartsAt != nil {
		startsAt = patch.StartsAt.UTC()
	}
	durationMin := cur.DurationMin
	if patch.DurationMin != nil {
		durationMin = *patch.DurationMin
		if durationMin == 0 {
			return nil, engine.Reject(engine.ReasonInvalidInput)
		}
	}
	hallID, capacity := cur.HallID, cur.Capacity
	if patch.HallID != nil && *patch.HallID != cur.HallID {
		hallID = *patch.HallID
	}
	locked := make(map[string]*model.Hall, 2)
	for _, hid := range hallLockOrder(cur.HallID, hallID) {
		hall, err := s.halls.GetForUpdateTx(ctx, tx, hid)
		if err != nil {
			return nil, asRejection(err)
		}
		locked[hid] = hall
	}
	if hallID != cur.HallID {
		capacity = locked[hallID].Capacity
	}
	timetable, err := s.sessions.ListByHallTx(ctx, tx, hallID)
	if err != nil {
		return nil, engine.Storage(err)
	}
	if err := engine.ValidatePlacement(sessionWindow(startsAt, durationMin), placements(timetable), cur.ID); err != nil {
		return nil, err
	}
	if hallID != cur.HallID {
		snap, err := s.snapshotTx(ctx, tx, cur)
		if err != nil {
			return nil, engine.Storage(err)
		}
		if snap.Occupied() > int(capacity) {
			return nil, engine.Reject(engine.ReasonCapacityExceeded)
		}
	}
	cur.FilmName = film
	cur.StartsAt = startsAt
	cur.DurationMin = durationMin
	cur.HallID = hallID
	cur.Capacity = capacity
	if err := s.sessions.UpdateTx(ctx, tx, cur); err != nil {
		return nil, asRejection(err)
	}
	if err := tx.Commit(); err != nil {
		return nil, engine.Storage(err)
	}
	committed = true
	return cur, nil
}

// DeleteSession removes a session together with all of its
// reservations in one transaction.
func (s *BookingService) DeleteSession(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return engine.Storage(err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := s.sessions.GetForUpdateTx(ctx, tx, id); err != nil {
		return asRejection(err)
	}
	if err := s.reservations.DeleteBySessionTx(ctx, tx, id); err != nil {
		return engine.Storage(err)
	}
	if err := s.sessions.DeleteTx(ctx, tx, id); err != nil {
		return asRejection(err)
	}
	if err := tx.Commit(); err != nil {
		return engine.Storage(err)
	}
	committed = true
	return nil
}

// AddReservation books tickets for a named party on a session.  A
// same-name reservation already present in the session absorbs the
// request instead of duplicating it.
func (s *BookingService) AddReservation(ctx context.Context, sessionID, fullName string, tickets uint32) (*ReservationResult, error) {
	return s.placeReservation(ctx, sessionID, fullName, tickets, "")
}

// EditReservation re-validates and applies a name or count change.  An
// edit whose new name matches another reservation in the session
// consolidates exactly as a fresh add would.
func (s *BookingService) EditReservation(ctx context.Context, reservationID, fullName string, tickets uint32) (*ReservationResult, error) {
	res, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return nil, asRejection(err)
	}
	return s.placeReservation(ctx, res.SessionID, fullName, tickets, reservationID)
}

// placeReservation runs the consolidation engine for an add
// (existingID == "") or an edit, and applies the resulting plan under
// the session's row lock.
func (s *BookingService) placeReservation(ctx context.Context, sessionID, fullName string, tickets uint32, existingID string) (*ReservationResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, engine.Storage(err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	sess, err := s.sessions.GetForUpdateTx(ctx, tx, sessionID)
	if err != nil {
		return nil, asRejection(err)
	}
	snap, err := s.snapshotTx(ctx, tx, sess)
	if err != nil {
		return nil, engine.Storage(err)
	}
	plan, err := engine.PlanReservation(snap, fullName, int(tickets), existingID)
	if err != nil {
		return nil, err
	}
	result := &ReservationResult{
		SessionID:   sess.ID,
		FullName:    plan.FullName,
		TicketCount: uint32(plan.NewTotal),
		Capacity:    sess.Capacity,
	}
	switch plan.Kind {
	case engine.PlanCreate:
		rec := &model.Reservation{
			ID:          uuid.NewString(),
			SessionID:   sess.ID,
			FullName:    plan.FullName,
			TicketCount: uint32(plan.NewTotal),
		}
		if err := s.reservations.CreateTx(ctx, tx, rec); err != nil {
			return nil, engine.Storage(err)
		}
		result.ReservationID = rec.ID
	case engine.PlanUpdate:
		if err := s.reservations.UpdateTx(ctx, tx, plan.TargetID, plan.FullName, uint32(plan.NewTotal)); err != nil {
			return nil, engine.Storage(err)
		}
		result.ReservationID = plan.TargetID
	case engine.PlanConsolidate:
		if err := s.reservations.UpdateTx(ctx, tx, plan.TargetID, plan.FullName, uint32(plan.NewTotal)); err != nil {
			return nil, engine.Storage(err)
		}
		if plan.DeleteID != "" {
			if err := s.reservations.DeleteTx(ctx, tx, plan.DeleteID); err != nil {
				return nil, engine.Storage(err)
			}
		}
		result.ReservationID = plan.TargetID
		result.Consolidated = true
	}
	after, err := s.snapshotTx(ctx, tx, sess)
	if err != nil {
		return nil, engine.Storage(err)
	}
	result.Occupied = uint32(after.Occupied())
	if err := tx.Commit(); err != nil {
		return nil, engine.Storage(err)
	}
	committed = true

	ev := queue.ReservationConfirmedEvent{
		ReservationID: result.ReservationID,
		SessionID:     sess.ID,
		FilmName:      sess.FilmName,
		HallID:        sess.HallID,
		FullName:      result.FullName,
		TicketCount:   result.TicketCount,
		Occupied:      result.Occupied,
		Capacity:      result.Capacity,
		Consolidated:  result.Consolidated,
		ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := PublishReservationConfirmed(ctx, ev); err != nil {
		log.Printf("booking: publish reservation.confirmed failed: %v", err)
	}
	return result, nil
}

// GetReservation returns one reservation by ID.
func (s *BookingService) GetReservation(ctx context.Context, id string) (*ReservationView, error) {
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, asRejection(err)
	}
	return &ReservationView{
		ID:          res.ID,
		SessionID:   res.SessionID,
		FullName:    res.FullName,
		TicketCount: res.TicketCount,
	}, nil
}

// RemoveReservation deletes a reservation under its session's lock.
func (s *BookingService) RemoveReservation(ctx context.Context, reservationID string) error {
	res, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return asRejection(err)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return engine.Storage(err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := s.sessions.GetForUpdateTx(ctx, tx, res.SessionID); err != nil {
		return asRejection(err)
	}
	if err := s.reservations.DeleteTx(ctx, tx, reservationID); err != nil {
		return asRejection(err)
	}
	if err := tx.Commit(); err != nil {
		return engine.Storage(err)
	}
	committed = true
	return nil
}

// TransferReservation moves a reservation to another session of the
// same film.  Both session rows are locked in ID order by a single
// statement, the engine admits the move against the destination
// snapshot, and one UPDATE re-homes the reservation so the source
// decrement and destination increment become visible together or not
// at all.  Consolidation is deliberately not applied at the
// destination: the transferred reservation keeps its identity.
func (s *BookingService) TransferReservation(ctx context.Context, reservationID, dstSessionID string) (*TransferResult, error) {
	res, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return nil, asRejection(err)
	}
	if dstSessionID == "" || dstSessionID == res.SessionID {
		return nil, engine.Reject(engine.ReasonInvalidInput)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, engine.Storage(err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	pair, err := s.sessions.GetPairForUpdateTx(ctx, tx, res.SessionID, dstSessionID)
	if err != nil {
		return nil, asRejection(err)
	}
	src, dst := pair[res.SessionID], pair[dstSessionID]
	srcSnap, err := s.snapshotTx(ctx, tx, src)
	if err != nil {
		return nil, engine.Storage(err)
	}
	dstSnap, err := s.snapshotTx(ctx, tx, dst)
	if err != nil {
		return nil, engine.Storage(err)
	}
	plan, err := engine.PlanTransfer(srcSnap, dstSnap, reservationID)
	if err != nil {
		return nil, err
	}
	if err := s.reservations.MoveTx(ctx, tx, plan.ReservationID, dst.ID); err != nil {
		return nil, asRejection(err)
	}
	if err := tx.Commit(); err != nil {
		return nil, engine.Storage(err)
	}
	committed = true

	ev := queue.ReservationTransferredEvent{
		ReservationID: plan.ReservationID,
		FromSessionID: src.ID,
		ToSessionID:   dst.ID,
		FilmName:      dst.FilmName,
		FullName:      res.FullName,
		TicketCount:   uint32(plan.TicketCount),
		TransferredAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := PublishReservationTransferred(ctx, ev); err != nil {
		log.Printf("booking: publish reservation.transferred failed: %v", err)
	}
	return &TransferResult{
		ReservationID: plan.ReservationID,
		FromSessionID: src.ID,
		ToSessionID:   dst.ID,
		TicketCount:   uint32(plan.TicketCount),
	}, nil
}
