package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HallHandler serves the hall endpoints.
type HallHandler struct {
	svc Booking
}

// NewHallHandler constructs a HallHandler.  The service must be
// non-nil.
func NewHallHandler(svc Booking) *HallHandler {
	if svc == nil {
		panic("nil service passed to NewHallHandler")
	}
	return &HallHandler{svc: svc}
}

// CreateHall handles PUT /v1/halls.  The body carries the hall name
// and its fixed seating capacity; both are required.
func (h *HallHandler) CreateHall(c echo.Context) error {
	var body struct {
		Name     string `json:"name"`     // required hall name
		Capacity uint32 `json:"capacity"` // total seats, must be positive
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	hall, err := h.svc.CreateHall(c.Request().Context(), body.Name, body.Capacity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, hall)
}

// ListHalls handles GET /v1/halls.
func (h *HallHandler) ListHalls(c echo.Context) error {
	halls, err := h.svc.ListHalls(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": halls})
}

// GetHall handles GET /v1/halls/:id.
func (h *HallHandler) GetHall(c echo.Context) error {
	hall, err := h.svc.GetHall(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, hall)
}
