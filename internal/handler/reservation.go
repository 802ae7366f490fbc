package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ReservationHandler serves the reservation booking endpoints.
type ReservationHandler struct {
	svc Booking
}

// NewReservationHandler constructs a ReservationHandler.  The service
// must be non-nil.
func NewReservationHandler(svc Booking) *ReservationHandler {
	if svc == nil {
		panic("nil service passed to NewReservationHandler")
	}
	return &ReservationHandler{svc: svc}
}

// AddReservation handles POST /v1/sessions/:id/reservations.  When the
// session already holds a reservation under the same name the tickets
// merge into it, which the response flags with "consolidated": true.
func (h *ReservationHandler) AddReservation(c echo.Context) error {
	var body struct {
		FullName    string `json:"full_name"`    // visitor's full name
		TicketCount uint32 `json:"ticket_count"` // seats requested, 1..5
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	res, err := h.svc.AddReservation(c.Request().Context(), c.Param("id"), body.FullName, body.TicketCount)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}

// GetReservation handles GET /v1/reservations/:id.
func (h *ReservationHandler) GetReservation(c echo.Context) error {
	res, err := h.svc.GetReservation(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// EditReservation handles PATCH /v1/reservations/:id.  The edit is
// re-validated as if placed fresh; renaming onto another party in the
// same session consolidates into that party's reservation.
func (h *ReservationHandler) EditReservation(c echo.Context) error {
	var body struct {
		FullName    string `json:"full_name"`
		TicketCount uint32 `json:"ticket_count"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	res, err := h.svc.EditReservation(c.Request().Context(), c.Param("id"), body.FullName, body.TicketCount)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// RemoveReservation handles DELETE /v1/reservations/:id.
func (h *ReservationHandler) RemoveReservation(c echo.Context) error {
	if err := h.svc.RemoveReservation(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// TransferReservation handles POST /v1/reservations/:id/transfer and
// moves the reservation to another session showing the same film.
func (h *ReservationHandler) TransferReservation(c echo.Context) error {
	var body struct {
		DestinationSessionID string `json:"destination_session_id"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	res, err := h.svc.TransferReservation(c.Request().Context(), c.Param("id"), body.DestinationSessionID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
