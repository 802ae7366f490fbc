package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-session-booking/internal/engine"
	"github.com/iliyamo/cinema-session-booking/internal/model"
	"github.com/iliyamo/cinema-session-booking/internal/repository"
)

// Rescheduling must take the same hall row locks as session creation,
// in one fixed order, or two edits in a shared hall could each
// validate against a timetable missing the other's move.
func TestHallLockOrder(t *testing.T) {
	assert.Equal(t, []string{"hall-a"}, hallLockOrder("hall-a", "hall-a"),
		"an in-place reschedule still locks its own hall")
	assert.Equal(t, []string{"hall-a", "hall-b"}, hallLockOrder("hall-a", "hall-b"))
	assert.Equal(t, []string{"hall-a", "hall-b"}, hallLockOrder("hall-b", "hall-a"),
		"lock order is independent of move direction")
}

func TestAsRejection(t *testing.T) {
	for _, sentinel := range []error{
		repository.ErrHallNotFound,
		repository.ErrSessionNotFound,
		repository.ErrReservationNotFound,
	} {
		reason, ok := engine.ReasonOf(asRejection(sentinel))
		require.True(t, ok, "%v must map to a rejection", sentinel)
		assert.Equal(t, engine.ReasonNotFound, reason)
	}

	rej := engine.Reject(engine.ReasonCapacityExceeded)
	assert.Same(t, error(rej), asRejection(rej), "rejections pass through unchanged")

	dbErr := errors.New("connection reset")
	reason, ok := engine.ReasonOf(asRejection(dbErr))
	require.True(t, ok)
	assert.Equal(t, engine.ReasonStorageFailure, reason)
	assert.ErrorIs(t, asRejection(dbErr), dbErr, "the cause stays reachable for logging")

	assert.NoError(t, asRejection(nil))
}

func TestPlacementsFromTimetable(t *testing.T) {
	start := time.Date(2026, 10, 12, 18, 0, 0, 0, time.UTC)
	timetable := []model.Session{
		{ID: "s-1", StartsAt: start, DurationMin: 120},
		{ID: "s-2", StartsAt: start.Add(3 * time.Hour), DurationMin: 90},
	}

	got := placements(timetable)
	require.Len(t, got, 2)
	assert.Equal(t, "s-1", got[0].SessionID)
	assert.Equal(t, start, got[0].Window.Start)
	assert.Equal(t, 2*time.Hour, got[0].Window.Duration)
	assert.Equal(t, 90*time.Minute, got[1].Window.Duration)
}
