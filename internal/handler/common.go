// Package handler translates HTTP requests into booking service calls
// and rejection errors into HTTP responses.
package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-session-booking/internal/engine"
	"github.com/iliyamo/cinema-session-booking/internal/model"
	"github.com/iliyamo/cinema-session-booking/internal/service"
)

// Booking is the service surface the HTTP layer depends on.  Handlers
// hold the interface rather than the concrete service so tests can
// substitute a scripted implementation.
type Booking interface {
	CreateHall(ctx context.Context, name string, capacity uint32) (*model.Hall, error)
	ListHalls(ctx context.Context) ([]model.Hall, error)
	GetHall(ctx context.Context, id string) (*model.Hall, error)

	CreateSession(ctx context.Context, in service.SessionInput) (*model.Session, error)
	ListSessions(ctx context.Context) ([]service.SessionView, error)
	GetSession(ctx context.Context, id string) (*service.SessionView, error)
	EditSession(ctx context.Context, id string, patch service.SessionPatch) (*model.Session, error)
	DeleteSession(ctx context.Context, id string) error

	AddReservation(ctx context.Context, sessionID, fullName string, tickets uint32) (*service.ReservationResult, error)
	EditReservation(ctx context.Context, reservationID, fullName string, tickets uint32) (*service.ReservationResult, error)
	GetReservation(ctx context.Context, id string) (*service.ReservationView, error)
	RemoveReservation(ctx context.Context, reservationID string) error
	TransferReservation(ctx context.Context, reservationID, dstSessionID string) (*service.TransferResult, error)
}

// statusOf maps a rejection reason onto its HTTP status code.
// Business-rule refusals are conflicts: the request was well formed but
// the current state does not admit it.
func statusOf(reason engine.Reason) int {
	switch reason {
	case engine.ReasonInvalidInput:
		return http.StatusBadRequest
	case engine.ReasonNotFound:
		return http.StatusNotFound
	case engine.ReasonScheduleConflict,
		engine.ReasonCapacityExceeded,
		engine.ReasonPersonTicketLimit,
		engine.ReasonFilmMismatch:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the JSON error body for a service failure.  The
// stable reason code travels alongside the human-readable message so
// clients can branch without parsing prose.
func respondError(c echo.Context, err error) error {
	if reason, ok := engine.ReasonOf(err); ok {
		return c.JSON(statusOf(reason), echo.Map{"error": err.Error(), "reason": string(reason)})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
