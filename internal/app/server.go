package app

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ananyajain10/pitchparse-ai/internal/api/handlers"
	appMiddleware "github.com/ananyajain10/pitchparse-ai/internal/api/middlewares"
	"github.com/ananyajain10/pitchparse-ai/internal/batch"
	"github.com/ananyajain10/pitchparse-ai/internal/config"
	"github.com/ananyajain10/pitchparse-ai/internal/core/extract"
	"github.com/ananyajain10/pitchparse-ai/internal/keystore"
)

// Server wraps the HTTP server instance and its handlers.
type Server struct {
	httpServer *http.Server
}

// NewServer builds and wires all routes.
func NewServer(cfg *config.Config, orch *batch.Orchestrator, keys *keystore.Store) *Server {
	uploadHandler := handlers.NewUploadHandler(orch)
	analyzeHandler := handlers.NewAnalyzeHandler(orch, keys, cfg.GenModel)
	keyHandler := handlers.NewKeyHandler(keys)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"status":              "ok",
				"accepted_extensions": extract.AcceptedExtensions(),
			})
		})

		api.Get("/key", keyHandler.Status)
		api.Post("/key", keyHandler.Set)
		api.Delete("/key", keyHandler.Clear)

		api.Post("/uploads", uploadHandler.Upload)
		api.Get("/uploads", uploadHandler.List)
		api.Delete("/uploads/{jobID}", uploadHandler.Remove)

		api.Group(func(gated chi.Router) {
			gated.Use(appMiddleware.RequireAPIKey(keys))
			gated.Post("/analyze", analyzeHandler.Analyze)
		})
	})

	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	return &Server{httpServer: httpSrv}
}

// Start runs the HTTP server.
func (s *Server) Start() {
	log.Printf("HTTP server listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down HTTP server...")
	return s.httpServer.Shutdown(ctx)
}
