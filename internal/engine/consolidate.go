package engine

import "strings"

// MaxTicketsPerPerson is the ceiling on tickets a single full name may
// hold within one session, counted across consolidation.
const MaxTicketsPerPerson = 5

// ReservationSnapshot is one reservation as read within the caller's
// transaction.
type ReservationSnapshot struct {
	ID          string
	FullName    string
	TicketCount int
}

// SessionSnapshot is a consistent read of one session together with all
// of its reservations.  Occupancy is always derived from the
// reservation rows, never cached.
type SessionSnapshot struct {
	ID           string
	FilmName     string
	Capacity     int
	Reservations []ReservationSnapshot
}

// Occupied returns the sum of ticket counts across the session's
// reservations.
func (s SessionSnapshot) Occupied() int {
	total := 0
	for _, r := range s.Reservations {
		total += r.TicketCount
	}
	return total
}

// PlanKind describes how an admitted reservation request is applied.
type PlanKind int

const (
	// PlanCreate inserts a new reservation.
	PlanCreate PlanKind = iota
	// PlanUpdate rewrites the edited reservation in place.
	PlanUpdate
	// PlanConsolidate merges the request into an existing same-name
	// reservation instead of creating a duplicate.
	PlanConsolidate
)

// ReservationPlan is the committed shape of an admitted reservation
// request.  TargetID names the reservation to write: the matched
// same-name reservation for PlanConsolidate, the edited reservation for
// PlanUpdate, and empty for PlanCreate (the caller mints the ID).
// DeleteID is set when an edit consolidated into another reservation
// and the edited one became redundant.
type ReservationPlan struct {
	Kind     PlanKind
	TargetID string
	FullName string
	NewTotal int
	DeleteID string
}

// PlanReservation decides how a reservation request for fullName with
// tickets lands in session s.  For an edit, existingID names the
// reservation being changed; pass "" for a fresh add.  The decision is
// identical for adds and edits: an edit whose name now matches another
// reservation consolidates exactly as an add would.
//
// Order of checks: field validation, same-name search excluding the
// edited reservation, per-person ceiling, capacity admission.  Any
// rejection leaves the snapshot meaningless to the caller; no partial
// plan is returned.
func PlanReservation(s SessionSnapshot, fullName string, tickets int, existingID string) (ReservationPlan, error) {
	name := strings.TrimSpace(fullName)
	if name == "" || tickets < 1 || tickets > MaxTicketsPerPerson {
		return ReservationPlan{}, Reject(ReasonInvalidInput)
	}
	var prev *ReservationSnapshot
	if existingID != "" {
		for i := range s.Reservations {
			if s.Reservations[i].ID == existingID {
				prev = &s.Reservations[i]
				break
			}
		}
		if prev == nil {
			return ReservationPlan{}, Reject(ReasonNotFound)
		}
	}
	for _, r := range s.Reservations {
		if r.ID == existingID || r.FullName != name {
			continue
		}
		total := r.TicketCount + tickets
		if total > MaxTicketsPerPerson {
			return ReservationPlan{}, Reject(ReasonPersonTicketLimit)
		}
		if err := ValidateCapacity(s.Occupied(), s.Capacity, tickets); err != nil {
			return ReservationPlan{}, err
		}
		plan := ReservationPlan{Kind: PlanConsolidate, TargetID: r.ID, FullName: name, NewTotal: total}
		if prev != nil {
			plan.DeleteID = prev.ID
		}
		return plan, nil
	}
	delta := tickets
	if prev != nil {
		delta = tickets - prev.TicketCount
	}
	if err := ValidateCapacity(s.Occupied(), s.Capacity, delta); err != nil {
		return ReservationPlan{}, err
	}
	if prev != nil {
		return ReservationPlan{Kind: PlanUpdate, TargetID: prev.ID, FullName: name, NewTotal: tickets}, nil
	}
	return ReservationPlan{Kind: PlanCreate, FullName: name, NewTotal: tickets}, nil
}
