package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot(capacity int, reservations ...ReservationSnapshot) SessionSnapshot {
	return SessionSnapshot{
		ID:           "sess-1",
		FilmName:     "Solaris",
		Capacity:     capacity,
		Reservations: reservations,
	}
}

func reasonOf(t *testing.T, err error) Reason {
	t.Helper()
	require.Error(t, err)
	reason, ok := ReasonOf(err)
	require.True(t, ok, "error is not a Rejection: %v", err)
	return reason
}

func TestPlanReservation_Create(t *testing.T) {
	s := snapshot(50, ReservationSnapshot{ID: "r-1", FullName: "John Smith", TicketCount: 3})

	plan, err := PlanReservation(s, "Jane Doe", 2, "")
	require.NoError(t, err)
	assert.Equal(t, PlanCreate, plan.Kind)
	assert.Empty(t, plan.TargetID)
	assert.Equal(t, "Jane Doe", plan.FullName)
	assert.Equal(t, 2, plan.NewTotal)
}

func TestPlanReservation_InvalidInput(t *testing.T) {
	s := snapshot(50)

	for _, tc := range []struct {
		name    string
		full    string
		tickets int
	}{
		{"empty name", "", 2},
		{"blank name", "   ", 2},
		{"zero tickets", "Jane Doe", 0},
		{"too many tickets", "Jane Doe", 6},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := PlanReservation(s, tc.full, tc.tickets, "")
			assert.Equal(t, ReasonInvalidInput, reasonOf(t, err))
		})
	}
}

func TestPlanReservation_ConsolidatesSameName(t *testing.T) {
	s := snapshot(50, ReservationSnapshot{ID: "r-1", FullName: "John Smith", TicketCount: 3})

	plan, err := PlanReservation(s, "John Smith", 2, "")
	require.NoError(t, err)
	assert.Equal(t, PlanConsolidate, plan.Kind)
	assert.Equal(t, "r-1", plan.TargetID)
	assert.Equal(t, 5, plan.NewTotal)
	assert.Empty(t, plan.DeleteID)
}

func TestPlanReservation_PersonTicketLimit(t *testing.T) {
	s := snapshot(50, ReservationSnapshot{ID: "r-1", FullName: "John Smith", TicketCount: 5})

	_, err := PlanReservation(s, "John Smith", 1, "")
	assert.Equal(t, ReasonPersonTicketLimit, reasonOf(t, err))
}

func TestPlanReservation_CapacityOnAdd(t *testing.T) {
	s := snapshot(50)
	for i := 0; i < 16; i++ {
		s.Reservations = append(s.Reservations, ReservationSnapshot{
			ID:          fmt.Sprintf("r-%d", i),
			FullName:    fmt.Sprintf("Guest %d", i),
			TicketCount: 3,
		})
	}
	require.Equal(t, 48, s.Occupied())

	_, err := PlanReservation(s, "Jane Doe", 3, "")
	assert.Equal(t, ReasonCapacityExceeded, reasonOf(t, err))

	plan, err := PlanReservation(s, "Jane Doe", 2, "")
	require.NoError(t, err)
	assert.Equal(t, PlanCreate, plan.Kind)
}

func TestPlanReservation_CapacityOnConsolidation(t *testing.T) {
	// consolidation still admits against the hall, with the full added count
	s := snapshot(4, ReservationSnapshot{ID: "r-1", FullName: "John Smith", TicketCount: 3})

	_, err := PlanReservation(s, "John Smith", 2, "")
	assert.Equal(t, ReasonCapacityExceeded, reasonOf(t, err))
}

func TestPlanReservation_EditInPlace(t *testing.T) {
	s := snapshot(10,
		ReservationSnapshot{ID: "r-1", FullName: "John Smith", TicketCount: 3},
		ReservationSnapshot{ID: "r-2", FullName: "Jane Doe", TicketCount: 5},
	)

	// raising r-1 from 3 to 5 introduces a net delta of 2 against 8 occupied
	plan, err := PlanReservation(s, "John Smith", 5, "r-1")
	require.NoError(t, err)
	assert.Equal(t, PlanUpdate, plan.Kind)
	assert.Equal(t, "r-1", plan.TargetID)
	assert.Equal(t, 5, plan.NewTotal)

	// but a delta that would overflow the hall is refused
	s.Capacity = 9
	_, err = PlanReservation(s, "John Smith", 5, "r-1")
	assert.Equal(t, ReasonCapacityExceeded, reasonOf(t, err))

	// lowering the count always admits
	plan, err = PlanReservation(s, "John Smith", 1, "r-1")
	require.NoError(t, err)
	assert.Equal(t, 1, plan.NewTotal)
}

func TestPlanReservation_EditRenameTriggersConsolidation(t *testing.T) {
	s := snapshot(50,
		ReservationSnapshot{ID: "r-1", FullName: "John Smith", TicketCount: 3},
		ReservationSnapshot{ID: "r-2", FullName: "Jane Doe", TicketCount: 2},
	)

	// renaming r-2 to John Smith merges it into r-1 and deletes r-2
	plan, err := PlanReservation(s, "John Smith", 2, "r-2")
	require.NoError(t, err)
	assert.Equal(t, PlanConsolidate, plan.Kind)
	assert.Equal(t, "r-1", plan.TargetID)
	assert.Equal(t, 5, plan.NewTotal)
	assert.Equal(t, "r-2", plan.DeleteID)
}

func TestPlanReservation_EditUnknownReservation(t *testing.T) {
	s := snapshot(50, ReservationSnapshot{ID: "r-1", FullName: "John Smith", TicketCount: 3})

	_, err := PlanReservation(s, "John Smith", 2, "r-404")
	assert.Equal(t, ReasonNotFound, reasonOf(t, err))
}

func TestPlanReservation_RejectionIsRepeatable(t *testing.T) {
	s := snapshot(50, ReservationSnapshot{ID: "r-1", FullName: "John Smith", TicketCount: 5})

	_, first := PlanReservation(s, "John Smith", 1, "")
	_, second := PlanReservation(s, "John Smith", 1, "")
	r1 := reasonOf(t, first)
	r2 := reasonOf(t, second)
	assert.Equal(t, r1, r2)
	// the snapshot is untouched by a rejected plan
	assert.Equal(t, 5, s.Occupied())
	assert.Len(t, s.Reservations, 1)
}
