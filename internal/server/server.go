// Package server serves the ticket dashboard over HTTP.
package server

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/danielolaszy/ticketboard/internal/board"
	"github.com/danielolaszy/ticketboard/internal/config"
	"github.com/danielolaszy/ticketboard/internal/jira"
	"github.com/danielolaszy/ticketboard/internal/logging"
	"github.com/danielolaszy/ticketboard/internal/metrics"
	"github.com/danielolaszy/ticketboard/internal/render"
	"github.com/gorilla/mux"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Options configures a Server.
type Options struct {
	// Locale is used to format ticket dates.
	Locale string

	// Metrics records request durations. When nil nothing is recorded.
	Metrics metrics.Provider

	// MetricsHandler is mounted on /metrics when set.
	MetricsHandler http.Handler

	// Pprof mounts the runtime profiling handlers under /debug/pprof.
	Pprof bool
}

// Server is the dashboard HTTP front end of a board.Service.
type Server struct {
	svc    *board.Service
	opts   Options
	router *mux.Router
}

// New builds the dashboard routes around svc.
func New(svc *board.Service, opts Options) *Server {
	if opts.Metrics == nil {
		opts.Metrics = metrics.NoopProvider{}
	}

	s := &Server{
		svc:    svc,
		opts:   opts,
		router: mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router
	r.Use(metrics.Middleware(s.opts.Metrics))

	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/config", s.handleConfigForm).Methods(http.MethodGet)
	r.HandleFunc("/config", s.handleConfigSave).Methods(http.MethodPost)
	r.HandleFunc("/reload", s.handleReload).Methods(http.MethodPost)
	r.HandleFunc("/tickets/{key}", s.handleTicket).Methods(http.MethodGet)
	r.HandleFunc("/portal", s.handlePortal).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	if s.opts.MetricsHandler != nil {
		r.Handle("/metrics", s.opts.MetricsHandler).Methods(http.MethodGet)
	}
	if s.opts.Pprof {
		metrics.RegisterPprof(r)
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: readHeaderTimeout,
		ErrorLog:          slog.NewLogLogger(logging.GetLogger().Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info("dashboard listening", "address", addr)
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

	logging.Info("shutting down dashboard")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) renderOptions() render.Options {
	return render.Options{
		Locale: s.opts.Locale,
		Link: func(key string) string {
			return "/tickets/" + url.PathEscape(key)
		},
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	snap := s.svc.Board().View(board.Filter{
		Status: query.Get("status"),
		Search: query.Get("q"),
	})

	s.writeHTML(w, http.StatusOK, func(buf *bytes.Buffer) error {
		return render.Page(buf, snap, s.renderOptions())
	})
}

func (s *Server) handleConfigForm(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.svc.Configuration()
	if err != nil {
		logging.Error("failed to load configuration", "error", err)
		http.Error(w, "failed to load configuration", http.StatusInternalServerError)
		return
	}

	s.writeHTML(w, http.StatusOK, func(buf *bytes.Buffer) error {
		return render.ConfigPage(buf, cfg, board.Message{})
	})
}

func (s *Server) handleConfigSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	cfg := config.Configuration{
		InstanceURL:  r.PostForm.Get("jiraUrl"),
		AccountEmail: r.PostForm.Get("jiraEmail"),
		APIToken:     r.PostForm.Get("jiraToken"),
		ProjectKey:   r.PostForm.Get("jiraProject"),
	}

	if err := s.svc.SaveConfiguration(cfg); err != nil {
		var verr *config.ValidationError
		status := http.StatusInternalServerError
		if errors.As(err, &verr) {
			status = http.StatusUnprocessableEntity
		}
		s.writeHTML(w, status, func(buf *bytes.Buffer) error {
			return render.ConfigPage(buf, cfg, board.ErrorMessage(err))
		})
		return
	}

	s.svc.Load(r.Context())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	s.svc.Load(r.Context())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleTicket(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimSpace(mux.Vars(r)["key"])
	if key == "" {
		http.NotFound(w, r)
		return
	}

	cfg, err := s.svc.Configuration()
	if err != nil {
		logging.Error("failed to load configuration", "error", err)
		http.Error(w, "failed to load configuration", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, jira.BrowseURL(cfg, key), http.StatusFound)
}

func (s *Server) handlePortal(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.svc.Configuration()
	if err != nil {
		logging.Error("failed to load configuration", "error", err)
		http.Error(w, "failed to load configuration", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, jira.PortalURL(cfg), http.StatusFound)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(s.svc.Board().State()))
}

// writeHTML renders into a buffer first so a template failure can still
// produce a clean 500.
func (s *Server) writeHTML(w http.ResponseWriter, status int, fn func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		logging.Error("failed to render page", "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
