// Package server exposes the ledger, reports and reconciliation wizard as a
// JSON API for the dashboard.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/cleared-dev/tally/internal/display"
	"github.com/cleared-dev/tally/internal/importer"
	"github.com/cleared-dev/tally/internal/ledger"
	"github.com/cleared-dev/tally/internal/reconcile"
)

// maxImportBytes caps the size of an uploaded CSV.
const maxImportBytes = 10 << 20

// Persister saves ledger changes. workspace.Workspace implements it.
type Persister interface {
	Persist(action, details string) error
}

// Options configures a Server.
type Options struct {
	Store         *ledger.Store
	Registry      *importer.Registry
	Persister     Persister // nil keeps changes in memory only
	Symbol        string
	DefaultFormat string
	Logger        zerolog.Logger
}

// Server serves the API over a single ledger store.
type Server struct {
	store         *ledger.Store
	registry      *importer.Registry
	persister     Persister
	wizard        *reconcile.Wizard
	symbol        string
	defaultFormat string
	log           zerolog.Logger
}

// New creates a Server. The wizard starts over the mock bank statement.
func New(opts Options) *Server {
	if opts.Registry == nil {
		opts.Registry = importer.DefaultRegistry(nil)
	}
	if opts.Symbol == "" {
		opts.Symbol = display.DefaultSymbol
	}
	if opts.DefaultFormat == "" {
		opts.DefaultFormat = "generic"
	}
	return &Server{
		store:         opts.Store,
		registry:      opts.Registry,
		persister:     opts.Persister,
		wizard:        reconcile.New(opts.Store, reconcile.MockStatement()),
		symbol:        opts.Symbol,
		defaultFormat: opts.DefaultFormat,
		log:           opts.Logger,
	}
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", s.listTransactions)
			r.Post("/", s.createTransaction)
			r.Delete("/", s.deleteTransaction)
			r.Post("/import", s.importTransactions)
		})

		r.Get("/categories", s.listCategories)
		r.Post("/categories", s.createCategory)

		r.Route("/reports", func(r chi.Router) {
			r.Get("/expenses", s.expensesReport)
			r.Get("/monthly", s.monthlyReport)
			r.Get("/summary", s.summaryReport)
		})

		r.Route("/reconcile", func(r chi.Router) {
			r.Get("/", s.reconcileState)
			r.Get("/suggestions/{id}", s.reconcileSuggestions)
			r.Post("/next", s.reconcileNext)
			r.Post("/back", s.reconcileBack)
			r.Post("/reset", s.reconcileReset)
			r.Post("/match", s.reconcileMatch)
			r.Post("/add", s.reconcileAdd)
			r.Post("/auto", s.reconcileAuto)
		})
	})

	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("starting tally API")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.log.Info().Msg("server stopped")
	return nil
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.log.Info().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Msg("request")
		}()
		next.ServeHTTP(ww, r)
	})
}

// persist saves through the Persister, if any. Failures are logged; the
// in-memory change stands.
func (s *Server) persist(action, details string) {
	if s.persister == nil {
		return
	}
	if err := s.persister.Persist(action, details); err != nil {
		s.log.Error().Err(err).Str("action", action).Msg("failed to persist change")
	}
}
