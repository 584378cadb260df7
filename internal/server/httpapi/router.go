package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (s *Server) routes() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(s.requestLogger)

	if len(s.opts.CORSOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.opts.CORSOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	router.Get("/healthz", s.healthz)
	if s.opts.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", s.opts.Metrics)
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(s.authenticate)

		r.Post("/sessions", s.startSession)
		r.Get("/contents/next", s.next)

		r.Group(func(r chi.Router) {
			r.Use(requireUser)

			r.Post("/uploads", s.requestUpload)
			r.Post("/swaps", s.swapContent)

			r.Route("/contents", func(r chi.Router) {
				r.Post("/", s.submit)
				r.Get("/mine", s.myUploads)
				r.Get("/liked", s.liked)
				r.Delete("/{contentID}", s.deleteContent)
				r.Post("/{contentID}/reactions", s.react)
				r.Get("/{contentID}/comments", s.listComments)
				r.Post("/{contentID}/comments", s.comment)
				r.Put("/{contentID}/save-forever", s.setSaveForever)
				r.Put("/{contentID}/caption", s.updateCaption)
				r.Put("/{contentID}/nsfw", s.updateNSFW)
			})
		})
	})

	return router
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
