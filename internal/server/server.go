package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/san-kum/warpsim/internal/config"
	"github.com/san-kum/warpsim/internal/metric"
	"github.com/san-kum/warpsim/internal/storage"
)

const shutdownTimeout = 5 * time.Second

// Frame is one sampled curve or surface as sent to clients.
type Frame struct {
	Mode    metric.Mode       `json:"mode"`
	View    metric.View       `json:"view"`
	Params  metric.Params     `json:"params"`
	Points  []metric.Record2D `json:"points,omitempty"`
	Samples []metric.Record3D `json:"samples,omitempty"`
	Energy  *float64          `json:"energyAtOrigin,omitempty"`
	Error   string            `json:"error,omitempty"`
}

// NewFrame samples mode/view at p. p is expected to be in range already.
func NewFrame(mode metric.Mode, view metric.View, p metric.Params) Frame {
	f := Frame{Mode: mode, View: view, Params: p}
	if view == metric.View3D {
		f.Samples = metric.Records3D(metric.Sample3D(mode, p, metric.Domain3D))
	} else {
		f.Points = metric.Records2D(metric.Sample2D(mode, p, metric.Domain2D))
	}
	if mode == metric.Warp {
		e := metric.WarpMetric(0, 0, p.WarpStrength).EnergyDensity
		f.Energy = &e
	}
	return f
}

// Server exposes the sampler over HTTP and websockets.
type Server struct {
	fps   int
	store *storage.Store
	log   *slog.Logger
	mux   *http.ServeMux
}

// New builds a server. store may be nil, in which case the snapshot
// endpoints answer 404.
func New(cfg *config.Config, store *storage.Store, log *slog.Logger) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if log == nil {
		log = slog.Default()
	}
	fps := cfg.FPS
	if fps <= 0 {
		fps = config.DefaultFPS
	}
	s := &Server{
		fps:   fps,
		store: store,
		log:   log.With("component", "server"),
		mux:   http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /api/sample", s.handleSample)
	s.mux.HandleFunc("GET /api/warp", s.handleWarp)
	s.mux.HandleFunc("GET /api/ranges", s.handleRanges)
	s.mux.HandleFunc("GET /api/snapshots", s.handleSnapshots)
	s.mux.HandleFunc("GET /api/snapshots/{id}", s.handleSnapshot)
	s.mux.HandleFunc("GET /ws", s.handleWS)
}

func (s *Server) Handler() http.Handler { return s.mux }

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully. Open websocket sessions see the cancellation through their
// request context.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", ln.Addr().String(), "fps", s.fps)
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mode := metric.Time
	if v := q.Get("mode"); v != "" {
		m, err := metric.ParseMode(v)
		if err != nil {
			s.badRequest(w, err)
			return
		}
		mode = m
	}
	view := metric.View2D
	if v := q.Get("view"); v != "" {
		vw, err := metric.ParseView(v)
		if err != nil {
			s.badRequest(w, err)
			return
		}
		view = vw
	}

	p := config.Defaults()
	for key, name := range map[string]string{"t": "time", "T": "tensor", "lambda": "lambda", "w": "warp", "rot": "rotation"} {
		if !q.Has(key) {
			continue
		}
		v, err := floatParam(q.Get(key), key)
		if err != nil {
			s.badRequest(w, err)
			return
		}
		p, _ = config.Set(p, name, v)
	}

	s.writeJSON(w, http.StatusOK, NewFrame(mode, view, config.Clamp(p)))
}

func (s *Server) handleWarp(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var vals [3]float64
	for i, key := range []string{"x", "y", "w"} {
		if !q.Has(key) {
			continue
		}
		v, err := floatParam(q.Get(key), key)
		if err != nil {
			s.badRequest(w, err)
			return
		}
		vals[i] = v
	}
	s.writeJSON(w, http.StatusOK, metric.WarpMetric(vals[0], vals[1], vals[2]))
}

func (s *Server) handleRanges(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, config.Ranges)
}

func (s *Server) handleSnapshots(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.NotFound(w, r)
		return
	}
	snaps, err := s.store.List(r.Context())
	if err != nil {
		s.internalError(w, err)
		return
	}
	if snaps == nil {
		snaps = []storage.Snapshot{}
	}
	s.writeJSON(w, http.StatusOK, snaps)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.NotFound(w, r)
		return
	}
	snap, recs, err := s.store.LoadRecords(r.Context(), r.PathValue("id"))
	switch {
	case errors.Is(err, storage.ErrNotFound):
		http.NotFound(w, r)
		return
	case errors.Is(err, storage.ErrAmbiguous):
		s.badRequest(w, err)
		return
	case err != nil:
		s.internalError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, Frame{
		Mode:    snap.Mode,
		View:    snap.View,
		Params:  snap.Params,
		Points:  recs.Points,
		Samples: recs.Samples,
	})
}

// floatParam parses a query value, rejecting NaN and infinities.
func floatParam(raw, key string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid %s: %w", key, metric.ErrNonFinite)
	}
	return v, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("write response", "err", err)
	}
}

func (s *Server) badRequest(w http.ResponseWriter, err error) {
	s.log.Debug("bad request", "err", err)
	s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
}

func (s *Server) internalError(w http.ResponseWriter, err error) {
	s.log.Error("request failed", "err", err)
	s.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}
