package api

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/portfolio-backend/auth"
	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

// RouterOption customizes the router built by NewServer
type RouterOption func(*router)

func NewServer(cfg *config.Config, db database.Database, tokens *auth.TokenService, opts ...RouterOption) (Server, error) {
	startupTime := time.Now()

	opts = append([]RouterOption{withConfig(cfg), withStartupTime(startupTime)}, opts...)
	handler := newRouter(db, tokens, opts...)

	server := &http.Server{
		Addr:         cfg.ServerAddr(),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout(),  // Timeout for reading the entire request
		WriteTimeout: cfg.WriteTimeout(), // Timeout for writing the response
		IdleTimeout:  cfg.IdleTimeout(),  // Timeout for idle connections
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      *config.Config
	startupTime time.Time
	tokens      *auth.TokenService
	views       services.ViewCounter
	notifier    services.ContactNotifier
}

func withConfig(c *config.Config) RouterOption {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) RouterOption {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

// WithViewCounter replaces the placeholder page view counter
func WithViewCounter(views services.ViewCounter) RouterOption {
	return func(r *router) {
		r.views = views
	}
}

// WithNotifier sets who is told about new contact messages
func WithNotifier(notifier services.ContactNotifier) RouterOption {
	return func(r *router) {
		r.notifier = notifier
	}
}

func newRouter(db database.Database, tokens *auth.TokenService, opts ...RouterOption) *chi.Mux {
	router := router{
		config:      &config.Config{},
		startupTime: time.Now(),
		tokens:      tokens,
		views:       services.PlaceholderViewCounter{},
		notifier:    services.Notifiers{},
	}
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(HTTPLoggingMiddleware(requestLogger(router.config)))
	chiRouter.Use(corsMiddleware(router.config.AcceptedOrigins))

	responder := NewResponder(log.Logger)
	chiRouter.NotFound(func(w http.ResponseWriter, r *http.Request) {
		responder.WriteError(w, errs.NewNotFoundError("route not found"))
	})
	chiRouter.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		responder.WriteError(w, errs.NewApiErr(http.StatusMethodNotAllowed, "method not allowed"))
	})

	handlers := initializeHandlers(db, router)
	authMiddleware := newAuthMiddleware(router.tokens)

	setupRoutes(chiRouter, handlers, authMiddleware)

	return chiRouter
}

// requestLogger writes colored console lines in development and JSON otherwise
func requestLogger(cfg *config.Config) zerolog.Logger {
	if !cfg.IsDevelopment() {
		return log.Logger
	}
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
