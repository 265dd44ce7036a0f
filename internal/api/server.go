// Package api serves the preview, export and browse flows over HTTP for a
// local UI.
package api

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/listenupapp/tagexport/internal/config"
	"github.com/listenupapp/tagexport/internal/ratelimit"
	"github.com/listenupapp/tagexport/internal/service"
	"github.com/listenupapp/tagexport/internal/sse"
	"github.com/listenupapp/tagexport/internal/validation"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	library    *service.LibraryService
	sseManager *sse.Manager
	sseHandler *sse.Handler
	limiter    *ratelimit.KeyedRateLimiter
	validator  *validation.Validator
	router     *chi.Mux
	api        huma.API
	logger     *slog.Logger
}

// NewServer creates the HTTP handler with all routes registered.
func NewServer(library *service.LibraryService, sseManager *sse.Manager, cfg config.ServerConfig, version string, logger *slog.Logger) *Server {
	s := &Server{
		library:    library,
		sseManager: sseManager,
		sseHandler: sse.NewHandler(sseManager, logger),
		limiter:    ratelimit.New(cfg.RateLimitRPS, cfg.RateLimitBurst, 0),
		validator:  validation.New(),
		router:     chi.NewRouter(),
		logger:     logger,
	}

	s.setupMiddleware(cfg)

	humaConfig := huma.DefaultConfig("tagexport API", version)
	humaConfig.Info.Description = "Extracts ID3 metadata from a directory of audio files and exports it as JSON."
	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerLibraryRoutes()
	s.registerFilesystemRoutes()

	// Streaming stays outside huma; it writes frames directly.
	s.router.Get("/api/v1/events", s.sseHandler.ServeHTTP)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API exposes the huma API, mostly for tests.
func (s *Server) API() huma.API {
	return s.api
}

// Close stops background work owned by the server.
func (s *Server) Close() {
	s.limiter.Stop()
}

func (s *Server) setupMiddleware(cfg config.ServerConfig) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)

	// An empty list means go-chi/cors allows every origin, so same-origin
	// is kept by not mounting it at all.
	if len(cfg.CORSOrigins) == 0 {
		return
	}
	if slices.Contains(cfg.CORSOrigins, "*") {
		s.logger.Warn("CORS allows any origin; every web page can read the library and filesystem endpoints")
	}
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Last-Event-ID"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))
}

// requestLogger logs one line per request through slog.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
