package model

import "time"

// Reservation records a named party's booking of tickets within one
// session.  A reservation belongs to exactly one session at a time and
// at most one reservation per full name exists within a session; a
// second request for the same name is consolidated into the first.
//
// Fields:
//  ID          – primary key identifier (UUID string).
//  SessionID   – owning session.
//  FullName    – ticket holder's full name.
//  TicketCount – number of tickets, between 1 and 5 inclusive.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Reservation struct {
	ID          string    `json:"id"`           // reservations.id
	SessionID   string    `json:"session_id"`   // reservations.session_id
	FullName    string    `json:"full_name"`    // reservations.full_name
	TicketCount uint32    `json:"ticket_count"` // reservations.ticket_count
	CreatedAt   time.Time `json:"created_at"`   // reservations.created_at
	UpdatedAt   time.Time `json:"updated_at"`   // reservations.updated_at
}
