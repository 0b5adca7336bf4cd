package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pinboard/internal/application"
	"pinboard/internal/middleware"
	"pinboard/internal/observability"
)

// NewRouter builds the HTTP router with the board routes and the live
// channel endpoint.
func NewRouter(svc *application.Service, ws http.Handler, serviceName string) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS())
	r.Use(observability.MetricsMiddleware(serviceName))

	h := NewHandler(svc, serviceName)

	r.Post("/message", h.CreateMessage)
	r.Get("/", h.ListMessages)
	r.Put("/message/{id}", h.UpdateMessage)
	r.Delete("/message/{id}", h.DeleteMessage)
	r.Handle("/ws", ws)

	return r
}
