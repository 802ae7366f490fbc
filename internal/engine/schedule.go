package engine

// Placement pairs a scheduled session with its time window.  A slice of
// placements is the snapshot of one hall's timetable.
type Placement struct {
	SessionID string
	Window    Window
}

// ValidatePlacement decides whether a session occupying proposed may
// coexist with every other session in the same hall.  The candidate is
// tested pairwise against each placement, not merely time-adjacent
// ones.  When a session's own time or hall is being edited its ID must
// be passed as excludeID so it does not conflict with itself; pass ""
// for a new session.  Iteration order does not affect the result, only
// which conflict is reported first.
func ValidatePlacement(proposed Window, existing []Placement, excludeID string) error {
	if proposed.Duration <= 0 {
		return Reject(ReasonInvalidInput)
	}
	for _, p := range existing {
		if excludeID != "" && p.SessionID == excludeID {
			continue
		}
		if Conflicts(proposed, p.Window) {
			return Reject(ReasonScheduleConflict)
		}
	}
	return nil
}
