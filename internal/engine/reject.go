// Package engine implements the booking consistency core: the decision
// logic that admits or rejects session placements, reservation changes
// and cross-session transfers.  Every function in this package is pure
// over an in-memory snapshot of session state; callers supply a
// consistent snapshot and apply the resulting mutation atomically.
package engine

import "errors"

// Reason classifies why an operation was rejected.  The string values
// are stable and are returned verbatim in API responses.
type Reason string

const (
	ReasonInvalidInput      Reason = "INVALID_INPUT"
	ReasonScheduleConflict  Reason = "SCHEDULE_CONFLICT"
	ReasonCapacityExceeded  Reason = "CAPACITY_EXCEEDED"
	ReasonPersonTicketLimit Reason = "PERSON_TICKET_LIMIT"
	ReasonFilmMismatch      Reason = "FILM_MISMATCH"
	ReasonNotFound          Reason = "NOT_FOUND"
	ReasonStorageFailure    Reason = "STORAGE_FAILURE"
)

// messages maps each reason to its single human-readable message.
var messages = map[Reason]string{
	ReasonInvalidInput:      "missing or out-of-range field",
	ReasonScheduleConflict:  "sessions in the same hall must be separated by a 15 minute technical pause",
	ReasonCapacityExceeded:  "hall capacity exceeded",
	ReasonPersonTicketLimit: "a person may hold at most 5 tickets per session",
	ReasonFilmMismatch:      "a reservation can only be transferred to a session of the same film",
	ReasonNotFound:          "referenced hall, session or reservation does not exist",
	ReasonStorageFailure:    "storage failure, the operation was rolled back",
}

// Rejection is the error returned for every refused operation.  A
// rejection is decided before any state change, so re-running the same
// operation with unchanged inputs yields the same rejection and no
// side effect.  Cause is only set for ReasonStorageFailure and carries
// the underlying persistence error.
type Rejection struct {
	Reason Reason
	Cause  error
}

// Error returns the human-readable message for the rejection reason.
func (r *Rejection) Error() string {
	if msg, ok := messages[r.Reason]; ok {
		return msg
	}
	return string(r.Reason)
}

// Unwrap exposes the underlying storage error, if any.
func (r *Rejection) Unwrap() error { return r.Cause }

// Reject builds a Rejection for the given reason.
func Reject(reason Reason) *Rejection {
	return &Rejection{Reason: reason}
}

// Storage wraps a persistence-layer error as a STORAGE_FAILURE
// rejection.  The caller must have rolled back the responsible
// mutation before surfacing it.
func Storage(err error) *Rejection {
	return &Rejection{Reason: ReasonStorageFailure, Cause: err}
}

// ReasonOf extracts the rejection reason from an error chain.  The
// second return value is false when err is not a Rejection.
func ReasonOf(err error) (Reason, bool) {
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej.Reason, true
	}
	return "", false
}
