package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/SamWylde/Grant-Tracker-sub000/pkg/usecase"
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/utils/logging"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

type Options func(*Server)

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok")) //nolint:errcheck // best-effort health body
	})

	r.Route("/api/orgs/{orgID}", func(r chi.Router) {
		r.Get("/preferences", s.getPreferences)
		r.Put("/preferences", s.putPreferences)

		r.Post("/import", s.importCSV)

		r.Route("/grants", func(r chi.Router) {
			r.Get("/", s.listGrants)
			r.Post("/", s.saveGrant)

			r.Route("/{grantID}", func(r chi.Router) {
				r.Get("/", s.getGrant)
				r.Patch("/", s.updateDetails)
				r.Delete("/", s.deleteGrant)
				r.Post("/stage", s.changeStage)

				r.Route("/milestones", func(r chi.Router) {
					r.Post("/", s.addMilestone)
					r.Patch("/{milestoneID}", s.updateMilestone)
					r.Delete("/{milestoneID}", s.removeMilestone)
				})

				r.Route("/tasks", func(r chi.Router) {
					r.Post("/", s.addTask)
					r.Patch("/{taskID}", s.updateTask)
					r.Delete("/{taskID}", s.removeTask)
					r.Post("/{taskID}/toggle", s.toggleTask)
				})
			})
		})
	})

	// Calendar feed is authorized by its own shared secret, not a session
	r.Get("/calendar/{orgID}.ics", s.calendarFeed)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.From(r.Context()).Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
