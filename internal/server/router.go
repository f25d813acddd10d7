package server

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/filehub/filehub-go/internal/access"
	"github.com/filehub/filehub-go/internal/files"
	"github.com/filehub/filehub-go/internal/handlers"
	mw2 "github.com/filehub/filehub-go/internal/mw"
)

type Options struct {
	EnableCORS bool
}

type Deps struct {
	Files  *files.Service
	Access *access.Service
}

func BuildRouter(d Deps, opts Options, mw ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	if os.Getenv("FILEHUB_ENV") == "local" || os.Getenv("FILEHUB_ENV") == "dev" {
		r.Use(mw2.NoStore)
	}

	// baseline
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	if opts.EnableCORS {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type", "Authorization", handlers.UserHeader},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
	for _, m := range mw {
		r.Use(m)
	}

	// tracing + logger
	r.Use(mw2.Trace())
	r.Use(mw2.Logger(mw2.LogOpts{
		SkipPaths:     []string{"/healthz", "/version"},
		RedactHeaders: []string{"Authorization"},
	}))

	fh := handlers.NewFilesHandler(d.Files, d.Access)

	r.Get("/healthz", healthCheckHandler)
	r.Get("/version", handlers.VersionHandler)

	r.Route("/api/files", func(ar chi.Router) {
		ar.Get("/", fh.List)
		ar.Post("/", fh.Create)

		ar.Route("/{uuid}", func(fr chi.Router) {
			fr.Get("/", fh.Get)
			fr.Put("/", fh.Update)
			fr.Delete("/", fh.Delete)

			fr.Post("/share", fh.Share)
			fr.Delete("/share", fh.Unshare)
			fr.Get("/permissions", fh.Permissions)
			fr.Get("/relations", fh.Relations)
		})
	})

	return r
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
