package engine

// TransferPlan is the admitted outcome of a cross-session move.  The
// reservation keeps its identity at the destination; it is never merged
// into a same-named reservation there.
type TransferPlan struct {
	ReservationID string
	TicketCount   int
}

// PlanTransfer decides whether the reservation identified by
// reservationID may move from session src to session dst.  A transfer
// only repositions a booking to a different showtime or hall of the
// same film, so the film names must match exactly.  The destination
// must admit the reservation's full ticket count; on rejection the
// caller leaves the source untouched.
func PlanTransfer(src, dst SessionSnapshot, reservationID string) (TransferPlan, error) {
	if src.ID == dst.ID {
		return TransferPlan{}, Reject(ReasonInvalidInput)
	}
	var moved *ReservationSnapshot
	for i := range src.Reservations {
		if src.Reservations[i].ID == reservationID {
			moved = &src.Reservations[i]
			break
		}
	}
	if moved == nil {
		return TransferPlan{}, Reject(ReasonNotFound)
	}
	if src.FilmName != dst.FilmName {
		return TransferPlan{}, Reject(ReasonFilmMismatch)
	}
	if err := ValidateCapacity(dst.Occupied(), dst.Capacity, moved.TicketCount); err != nil {
		return TransferPlan{}, err
	}
	return TransferPlan{ReservationID: reservationID, TicketCount: moved.TicketCount}, nil
}
