// Package web serves the dashboard as a single HTML page with inline SVG
// charts. Every request is an independent render pass.
package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/theirongolddev/loandash/internal/charts"
	"github.com/theirongolddev/loandash/internal/dashboard"
	"github.com/theirongolddev/loandash/internal/logger"
	"github.com/theirongolddev/loandash/internal/model"
)

// Config controls the page server.
type Config struct {
	DatasetPath      string
	Addr             string
	DefaultCondition string
	ChartWidth       int
	ChartHeight      int
}

// Server renders the dashboard page over HTTP.
type Server struct {
	cfg  Config
	log  *logger.Logger
	page *template.Template
}

// New returns a Server for cfg. A nil log discards diagnostics.
func New(cfg Config, log *logger.Logger) *Server {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8501"
	}
	if !model.IsCondition(cfg.DefaultCondition) {
		cfg.DefaultCondition = model.GoodLoan
	}
	if cfg.ChartWidth <= 0 {
		cfg.ChartWidth = 900
	}
	if cfg.ChartHeight <= 0 {
		cfg.ChartHeight = 380
	}
	if log == nil {
		log = logger.Nop()
	}

	return &Server{
		cfg:  cfg,
		log:  log,
		page: template.Must(template.New("page").Parse(pageTemplate)),
	}
}

// Handler returns the routed handler with logging and panic recovery.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/", s.handlePage).Methods(http.MethodGet)
	r.HandleFunc("/charts/{panel:[a-z]+}.{format:png|svg}", s.handleChart).Methods(http.MethodGet)

	r.Use(loggingMiddleware(s.log))
	r.Use(recoveryMiddleware(s.log))

	return r
}

// Run serves until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.log.WithFields(map[string]interface{}{
		"addr":    s.cfg.Addr,
		"dataset": s.cfg.DatasetPath,
	}).Info("serving dashboard")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("dashboard http server: %w", err)
	}
}

func (s *Server) condition(r *http.Request) string {
	if c := r.URL.Query().Get("condition"); c != "" {
		return c
	}
	return s.cfg.DefaultCondition
}

// build runs one render pass and writes an error response on failure.
func (s *Server) build(w http.ResponseWriter, r *http.Request) (dashboard.Dashboard, bool) {
	d, err := dashboard.Run(s.cfg.DatasetPath, s.condition(r))
	if err == nil {
		return d, true
	}

	status := http.StatusInternalServerError
	if errors.Is(err, dashboard.ErrUnknownCondition) {
		status = http.StatusBadRequest
	}
	s.log.WithError(err).WithField("path", r.URL.Path).Error("render pass failed")
	http.Error(w, err.Error(), status)
	return dashboard.Dashboard{}, false
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := dashboard.PanelID(vars["panel"])
	if _, ok := dashboard.LookupPanel(id); !ok {
		http.NotFound(w, r)
		return
	}
	format, err := charts.ParseFormat(vars["format"])
	if err != nil {
		http.NotFound(w, r)
		return
	}

	d, ok := s.build(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	opts := charts.Options{Format: format, Width: s.cfg.ChartWidth, Height: s.cfg.ChartHeight}
	if err := charts.Render(&buf, d, id, opts); err != nil {
		if errors.Is(err, charts.ErrNoData) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		s.log.WithError(err).WithField("panel", id).Error("chart render failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	d, ok := s.build(w, r)
	if !ok {
		return
	}

	view := newPageView(d)
	opts := charts.Options{Format: charts.SVG, Width: s.cfg.ChartWidth, Height: s.cfg.ChartHeight}
	for i := range view.Panels {
		pv := &view.Panels[i]
		var buf bytes.Buffer
		err := charts.Render(&buf, d, pv.ID, opts)
		switch {
		case errors.Is(err, charts.ErrNoData):
			pv.Empty = true
		case err != nil:
			s.log.WithError(err).WithField("panel", pv.ID).Error("chart render failed")
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		default:
			pv.SVG = template.HTML(buf.String()) //nolint:gosec // generated by go-chart from numeric data
		}
	}

	var page bytes.Buffer
	if err := s.page.Execute(&page, view); err != nil {
		s.log.WithError(err).Error("page template failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page.Bytes())
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"query":    r.URL.RawQuery,
				"status":   rec.status,
				"duration": time.Since(start).String(),
			}).Debug("http request")
		})
	}
}

func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": fmt.Sprint(err),
						"path":  r.URL.Path,
					}).Error("panic recovered")
					http.Error(w, "internal server error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
