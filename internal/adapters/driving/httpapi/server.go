// Package httpapi serves the extraction service over HTTP.
//
// GET / returns the application metadata. POST / takes a container as
// JSON, annotates it with the query string as runtime parameters, and
// returns the container with the new view appended.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/clamsproject/app-datimex-extraction/internal/core/ports/driving"
	"github.com/clamsproject/app-datimex-extraction/internal/logger"
)

// Production defaults.
const (
	DefaultRateLimit      = 10.0
	DefaultBurst          = 20
	DefaultRequestTimeout = 60 * time.Second
	DefaultMaxBodyBytes   = 32 << 20
)

// Config controls how the server runs.
type Config struct {
	// Addr is the listen address, e.g. ":5000".
	Addr string

	// Production enables rate limiting and request timeouts.
	Production bool

	// RateLimit is the steady request rate per second in production.
	RateLimit float64

	// Burst is the number of requests allowed above the steady rate.
	Burst int

	// RequestTimeout bounds each request in production.
	RequestTimeout time.Duration

	// MaxBodyBytes caps the size of a POST body.
	MaxBodyBytes int64

	// AllowedOrigins lists CORS origins. Empty allows all.
	AllowedOrigins []string
}

func (c Config) withDefaults() Config {
	if c.RateLimit <= 0 {
		c.RateLimit = DefaultRateLimit
	}
	if c.Burst <= 0 {
		c.Burst = DefaultBurst
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	return c
}

// Server wraps the HTTP server and its handlers.
type Server struct {
	extraction  driving.ExtractionService
	annotations driving.AnnotationService
	log         *logger.Logger
	cfg         Config
	httpServer  *http.Server
}

// NewServer builds and wires all routes. annotations may be nil, in which
// case views are returned but not stored.
func NewServer(
	extraction driving.ExtractionService,
	annotations driving.AnnotationService,
	log *logger.Logger,
	cfg Config,
) *Server {
	if log == nil {
		log = logger.Default()
	}
	s := &Server{
		extraction:  extraction,
		annotations: annotations,
		log:         log,
		cfg:         cfg.withDefaults(),
	}
	s.httpServer = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	if s.cfg.Production {
		s.httpServer.ReadTimeout = s.cfg.RequestTimeout
		s.httpServer.WriteTimeout = s.cfg.RequestTimeout + 5*time.Second
	}
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	if s.cfg.Production {
		r.Use(rateLimit(rate.NewLimiter(rate.Limit(s.cfg.RateLimit), s.cfg.Burst)))
		r.Use(middleware.Timeout(s.cfg.RequestTimeout))
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/", s.handleMetadata)
	r.Post("/", s.handleAnnotate)
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("HTTP server listening on %s", s.cfg.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server error: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.log.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(shutdownCtx)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("%s %s %d %dB %s [%s]",
			r.Method, r.URL.Path, ww.Status(), ww.BytesWritten(), time.Since(start),
			middleware.GetReqID(r.Context()))
	})
}

func rateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusTooManyRequests, errors.New("rate limit exceeded"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
