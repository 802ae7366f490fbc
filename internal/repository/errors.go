// Package repository defines error types that are reused across the
// repositories. These sentinel values allow higher layers to
// distinguish between failure scenarios without inspecting SQL errors:
// a missing row maps to a NOT_FOUND rejection while anything else is a
// storage failure that rolls the surrounding transaction back.
package repository

import "errors"

// ErrHallNotFound is returned when a hall lookup matches no row.
var ErrHallNotFound = errors.New("hall not found")

// ErrSessionNotFound is returned when a session lookup matches no row.
var ErrSessionNotFound = errors.New("session not found")

// ErrReservationNotFound is returned when a reservation lookup matches
// no row.
var ErrReservationNotFound = errors.New("reservation not found")
