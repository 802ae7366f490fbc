// Package router wires the HTTP endpoints onto the Echo instance.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-session-booking/internal/handler"
)

// RegisterRoutes registers the health check endpoint.  Load balancers
// and monitoring probe it without touching the booking API.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterBooking registers the hall, session and reservation
// endpoints under /v1.  The optional middleware (rate limiting,
// response caching) is applied to the whole group.
func RegisterBooking(e *echo.Echo, halls *handler.HallHandler, sessions *handler.SessionHandler, reservations *handler.ReservationHandler, mw ...echo.MiddlewareFunc) {
	g := e.Group("/v1", mw...)

	g.PUT("/halls", halls.CreateHall)
	g.GET("/halls", halls.ListHalls)
	g.GET("/halls/:id", halls.GetHall)

	g.POST("/sessions", sessions.CreateSession)
	g.GET("/sessions", sessions.ListSessions)
	g.GET("/sessions/:id", sessions.GetSession)
	g.PATCH("/sessions/:id", sessions.EditSession)
	g.DELETE("/sessions/:id", sessions.DeleteSession)

	g.POST("/sessions/:id/reservations", reservations.AddReservation)
	g.GET("/reservations/:id", reservations.GetReservation)
	g.PATCH("/reservations/:id", reservations.EditReservation)
	g.DELETE("/reservations/:id", reservations.RemoveReservation)
	g.POST("/reservations/:id/transfer", reservations.TransferReservation)
}
