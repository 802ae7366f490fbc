package queue

// Queue names for the reservation lifecycle events.  Queues are
// declared durable by both publisher and consumer.
const (
	ReservationConfirmedQueue   = "reservation.confirmed"
	ReservationTransferredQueue = "reservation.transferred"
)

// ReservationConfirmedEvent is published after a reservation add or
// edit commits.  It carries enough information for downstream
// consumers to log or notify without querying the primary database.
type ReservationConfirmedEvent struct {
	ReservationID string `json:"reservation_id"`
	SessionID     string `json:"session_id"`
	FilmName      string `json:"film_name"`
	HallID        string `json:"hall_id"`
	FullName      string `json:"full_name"`
	TicketCount   uint32 `json:"ticket_count"`
	Occupied      uint32 `json:"occupied"`
	Capacity      uint32 `json:"capacity"`
	Consolidated  bool   `json:"consolidated"`
	ConfirmedAt   string `json:"confirmed_at"`
}

// ReservationTransferredEvent is published after a reservation moves
// between two sessions of the same film.
type ReservationTransferredEvent struct {
	ReservationID string `json:"reservation_id"`
	FromSessionID string `json:"from_session_id"`
	ToSessionID   string `json:"to_session_id"`
	FilmName      string `json:"film_name"`
	FullName      string `json:"full_name"`
	TicketCount   uint32 `json:"ticket_count"`
	TransferredAt string `json:"transferred_at"`
}
