package model

import "time"

// Session represents a single scheduled screening of a film in a hall.
// Capacity is copied from the referenced hall when the session is
// created or moved to another hall; occupancy is always recomputed from
// the session's reservations and is never stored on the row.
//
// Fields:
//  ID          – primary key identifier (UUID string).
//  FilmName    – name of the film being screened.
//  StartsAt    – when the screening begins (UTC).
//  DurationMin – screening length in whole minutes, always positive.
//  HallID      – hall where the screening takes place.
//  Capacity    – seat count copied from the hall at creation/edit time.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Session struct {
	ID          string    `json:"id"`           // sessions.id
	FilmName    string    `json:"film_name"`    // sessions.film_name
	StartsAt    time.Time `json:"starts_at"`    // sessions.starts_at
	DurationMin uint32    `json:"duration_min"` // sessions.duration_min
	HallID      string    `json:"hall_id"`      // sessions.hall_id
	Capacity    uint32    `json:"capacity"`     // sessions.capacity
	CreatedAt   time.Time `json:"created_at"`   // sessions.created_at
	UpdatedAt   time.Time `json:"updated_at"`   // sessions.updated_at
}

// EndsAt returns the exclusive end instant of the screening.
func (s Session) EndsAt() time.Time {
	return s.StartsAt.Add(time.Duration(s.DurationMin) * time.Minute)
}
