package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-session-booking/internal/service"
)

// minLeadTime is how far in the future a session must start.  Sessions
// are announced at least a day ahead so the schedule stays predictable
// for visitors.
const minLeadTime = 24 * time.Hour

// SessionHandler serves the session scheduling endpoints.
type SessionHandler struct {
	svc Booking
	now func() time.Time
}

// NewSessionHandler constructs a SessionHandler.  The service must be
// non-nil.
func NewSessionHandler(svc Booking) *SessionHandler {
	if svc == nil {
		panic("nil service passed to NewSessionHandler")
	}
	return &SessionHandler{svc: svc, now: time.Now}
}

// parseRuntime converts an "HH:MM" film runtime into whole minutes.
func parseRuntime(s string) (uint32, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("runtime %q is not in HH:MM form", s)
	}
	hours, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("runtime %q is not in HH:MM form", s)
	}
	if hours > 24 {
		return 0, fmt.Errorf("runtime must not exceed 24 hours")
	}
	minutes, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil || minutes > 59 {
		return 0, fmt.Errorf("runtime %q is not in HH:MM form", s)
	}
	total := uint32(hours)*60 + uint32(minutes)
	if total == 0 {
		return 0, fmt.Errorf("runtime must be positive")
	}
	return total, nil
}

// CreateSession handles POST /v1/sessions.  The start time is RFC 3339
// and must lie at least 24 hours ahead; the duration is the film
// runtime in "HH:MM" form.
func (h *SessionHandler) CreateSession(c echo.Context) error {
	var body struct {
		FilmName string `json:"film_name"` // required film title
		StartsAt string `json:"starts_at"` // RFC 3339 start time
		Duration string `json:"duration"`  // film runtime, "HH:MM"
		HallID   string `json:"hall_id"`   // hall hosting the screening
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	startsAt, err := time.Parse(time.RFC3339, body.StartsAt)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "starts_at must be an RFC 3339 timestamp"})
	}
	if startsAt.Before(h.now().Add(minLeadTime)) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "starts_at must be at least 24 hours in the future"})
	}
	durationMin, err := parseRuntime(body.Duration)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	sess, err := h.svc.CreateSession(c.Request().Context(), service.SessionInput{
		FilmName:    body.FilmName,
		StartsAt:    startsAt,
		DurationMin: durationMin,
		HallID:      body.HallID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, sess)
}

// ListSessions handles GET /v1/sessions.
func (h *SessionHandler) ListSessions(c echo.Context) error {
	sessions, err := h.svc.ListSessions(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": sessions})
}

// GetSession handles GET /v1/sessions/:id and returns the session with
// its reservations and derived occupancy.
func (h *SessionHandler) GetSession(c echo.Context) error {
	view, err := h.svc.GetSession(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// EditSession handles PATCH /v1/sessions/:id.  Absent fields keep
// their current values; a new start time is held to the same 24 hour
// lead as session creation.
func (h *SessionHandler) EditSession(c echo.Context) error {
	var body struct {
		FilmName *string `json:"film_name"`
		StartsAt *string `json:"starts_at"`
		Duration *string `json:"duration"`
		HallID   *string `json:"hall_id"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	patch := service.SessionPatch{FilmName: body.FilmName, HallID: body.HallID}
	if body.StartsAt != nil {
		startsAt, err := time.Parse(time.RFC3339, *body.StartsAt)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "starts_at must be an RFC 3339 timestamp"})
		}
		if startsAt.Before(h.now().Add(minLeadTime)) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "starts_at must be at least 24 hours in the future"})
		}
		patch.StartsAt = &startsAt
	}
	if body.Duration != nil {
		durationMin, err := parseRuntime(*body.Duration)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		patch.DurationMin = &durationMin
	}
	sess, err := h.svc.EditSession(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, sess)
}

// DeleteSession handles DELETE /v1/sessions/:id.  All reservations on
// the session are removed with it.
func (h *SessionHandler) DeleteSession(c echo.Context) error {
	if err := h.svc.DeleteSession(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
