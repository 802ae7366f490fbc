package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanTransfer(t *testing.T) {
	src := SessionSnapshot{
		ID:       "sess-src",
		FilmName: "Solaris",
		Capacity: 60,
		Reservations: []ReservationSnapshot{
			{ID: "r-1", FullName: "John Smith", TicketCount: 4},
			{ID: "r-2", FullName: "Jane Doe", TicketCount: 2},
		},
	}
	dst := SessionSnapshot{
		ID:       "sess-dst",
		FilmName: "Solaris",
		Capacity: 10,
		Reservations: []ReservationSnapshot{
			{ID: "r-9", FullName: "John Smith", TicketCount: 3},
		},
	}

	t.Run("moves the full ticket count", func(t *testing.T) {
		plan, err := PlanTransfer(src, dst, "r-1")
		require.NoError(t, err)
		assert.Equal(t, "r-1", plan.ReservationID)
		assert.Equal(t, 4, plan.TicketCount)
	})

	t.Run("keeps identity next to a same-named reservation", func(t *testing.T) {
		// John Smith already holds r-9 at the destination; the transfer
		// is still admitted as a separate reservation, never merged.
		plan, err := PlanTransfer(src, dst, "r-1")
		require.NoError(t, err)
		assert.Equal(t, "r-1", plan.ReservationID)
	})

	t.Run("rejects a different film", func(t *testing.T) {
		other := dst
		other.FilmName = "Stalker"
		_, err := PlanTransfer(src, other, "r-1")
		assert.Equal(t, ReasonFilmMismatch, reasonOf(t, err))
	})

	t.Run("rejects when the destination cannot seat the party", func(t *testing.T) {
		full := dst
		full.Reservations = []ReservationSnapshot{{ID: "r-9", FullName: "Ivan Petrov", TicketCount: 8}}
		_, err := PlanTransfer(src, full, "r-1")
		assert.Equal(t, ReasonCapacityExceeded, reasonOf(t, err))
		// the source snapshot is untouched: both source mutations commit
		// together or not at all, and nothing was planned here
		assert.Equal(t, 6, src.Occupied())
		assert.Len(t, src.Reservations, 2)
	})

	t.Run("rejects an unknown reservation", func(t *testing.T) {
		_, err := PlanTransfer(src, dst, "r-404")
		assert.Equal(t, ReasonNotFound, reasonOf(t, err))
	})

	t.Run("rejects a transfer onto the same session", func(t *testing.T) {
		_, err := PlanTransfer(src, src, "r-1")
		assert.Equal(t, ReasonInvalidInput, reasonOf(t, err))
	})
}
