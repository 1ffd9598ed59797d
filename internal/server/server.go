// Package server exposes the catalog as a small JSON HTTP API backed by the
// same gateway the views use.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Sternrassler/catalog-client/pkg/catalog"
	"github.com/Sternrassler/catalog-client/pkg/metrics"
	"github.com/Sternrassler/catalog-client/pkg/model"
	"github.com/Sternrassler/catalog-client/pkg/result"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Config holds server configuration.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// DefaultLimit is used when a list request has no limit.
	DefaultLimit int

	// MaxLimit caps the limit a client may ask for.
	MaxLimit int

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration
}

// DefaultConfig returns the default server configuration.
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		DefaultLimit:    20,
		MaxLimit:        100,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Server serves /api/items, /api/items/{id}, /health, /ready and /metrics.
type Server struct {
	config Config
	pages  catalog.PageSource
	items  catalog.ItemSource
	redis  *redis.Client
	logger zerolog.Logger
}

// New creates a server. redisClient may be nil; /ready then only reports
// the process as ready.
func New(cfg Config, pages catalog.PageSource, items catalog.ItemSource, redisClient *redis.Client, logger zerolog.Logger) *Server {
	if pages == nil || items == nil {
		panic("page and item sources cannot be nil")
	}
	def := DefaultConfig()
	if cfg.Addr == "" {
		cfg.Addr = def.Addr
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = def.DefaultLimit
	}
	if cfg.MaxLimit < cfg.DefaultLimit {
		cfg.MaxLimit = cfg.DefaultLimit
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = def.ShutdownTimeout
	}
	return &Server{
		config: cfg,
		pages:  pages,
		items:  items,
		redis:  redisClient,
		logger: logger,
	}
}

// Handler returns the routed handler wrapped in request id and logging
// middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/items", s.handleList)
	mux.HandleFunc("GET /api/items/{id}", s.handleItem)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ready", s.handleReady)
	mux.Handle("GET /metrics", promhttp.HandlerFor(metrics.Gatherer, promhttp.HandlerOpts{}))

	return RequestID(Logging(s.logger)(mux))
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.config.Addr).Msg("Starting catalog server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info().Msg("Shutting down catalog server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

type itemSummaryJSON struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type pageJSON struct {
	Offset     int               `json:"offset"`
	Limit      int               `json:"limit"`
	NextOffset *int              `json:"next_offset"`
	Items      []itemSummaryJSON `json:"items"`
}

type itemDetailJSON struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
	Height   int    `json:"height"`
}

type errorJSON struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	offset, err := queryInt(r, "offset", 0)
	if err != nil || offset < 0 {
		s.writeBadRequest(w, r, "offset must be a non-negative integer")
		return
	}
	limit, err := queryInt(r, "limit", s.config.DefaultLimit)
	if err != nil || limit <= 0 {
		s.writeBadRequest(w, r, "limit must be a positive integer")
		return
	}
	if limit > s.config.MaxLimit {
		limit = s.config.MaxLimit
	}

	res := s.pages.Page(r.Context(), limit, offset)
	page, ok := res.Value()
	if !ok {
		s.writeFailure(w, r, res.Kind(), res.Cause())
		return
	}

	out := pageJSON{
		Offset: offset,
		Limit:  limit,
		Items:  make([]itemSummaryJSON, 0, page.Len()),
	}
	for _, it := range page.Items {
		out.Items = append(out.Items, itemSummaryJSON{ID: it.ID, Name: it.Name})
	}
	if !page.IsEmpty() {
		next := offset + limit
		out.NextOffset = &next
	}

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		s.writeBadRequest(w, r, "id must be a positive integer")
		return
	}

	res := s.items.Item(r.Context(), id)
	item, ok := res.Value()
	if !ok {
		s.writeFailure(w, r, res.Kind(), res.Cause())
		return
	}

	writeJSON(w, http.StatusOK, detailJSON(item))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "OK")
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.redis != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.redis.Ping(ctx).Err(); err != nil {
			s.logger.Warn().Err(err).Msg("Readiness check failed: redis")
			http.Error(w, "redis unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "OK")
}

func detailJSON(d model.ItemDetail) itemDetailJSON {
	return itemDetailJSON{ID: d.ID, Name: d.Name, ImageURL: d.ImageURL, Height: d.Height}
}

// StatusForKind maps an error kind to the HTTP status the API answers with.
func StatusForKind(kind result.ErrorKind) int {
	switch kind {
	case result.KindNoConnectivity:
		return http.StatusServiceUnavailable
	case result.KindNotFound:
		return http.StatusNotFound
	case result.KindNetwork, result.KindServer:
		return http.StatusBadGateway
	case result.KindUnknown:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeFailure(w http.ResponseWriter, r *http.Request, kind result.ErrorKind, cause error) {
	msg := string(kind)
	if cause != nil {
		msg = cause.Error()
	}
	writeJSON(w, StatusForKind(kind), errorJSON{
		Error:     string(kind),
		Message:   msg,
		RequestID: RequestIDFromContext(r.Context()),
	})
}

func (s *Server) writeBadRequest(w http.ResponseWriter, r *http.Request, msg string) {
	writeJSON(w, http.StatusBadRequest, errorJSON{
		Error:     "bad_request",
		Message:   msg,
		RequestID: RequestIDFromContext(r.Context()),
	})
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
