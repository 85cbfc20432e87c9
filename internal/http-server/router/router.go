package router

import (
	"net/http"

	"logo-applier/internal/http-server/handler/run"
	"logo-applier/internal/http-server/middleware"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	RunHandler *run.RunHandler
}

func SetupRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RecoveryMiddleware)
	r.Use(middleware.LoggingMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Post("/runs", h.RunHandler.CreateRun)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", h.RunHandler.StartSession)
			r.Get("/{id}", h.RunHandler.GetSession)
			r.Get("/{id}/preview", h.RunHandler.GetPreview)
			r.Post("/{id}/click", h.RunHandler.Click)
			r.Post("/{id}/skip", h.RunHandler.Skip)
			r.Post("/{id}/stop", h.RunHandler.Stop)
		})

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"ok"}`))
		})
	})

	return r
}
