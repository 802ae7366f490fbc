package model

import "time"

// Hall represents a screening hall with a fixed seating capacity.
// Capacity is immutable through the booking core; only an
// administrative update outside it may change a hall.  This struct
// corresponds to a row in the `halls` table.
//
// Fields:
//  ID        – primary key identifier (UUID string).
//  Name      – human readable hall name.
//  Capacity  – fixed number of seats, always positive.
//  CreatedAt – timestamp when the hall was created.
//  UpdatedAt – timestamp of last update.
type Hall struct {
	ID        string    `json:"id"`         // halls.id
	Name      string    `json:"name"`       // halls.name
	Capacity  uint32    `json:"capacity"`   // halls.capacity
	CreatedAt time.Time `json:"created_at"` // halls.created_at
	UpdatedAt time.Time `json:"updated_at"` // halls.updated_at
}
