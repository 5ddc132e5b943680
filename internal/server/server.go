// Package server exposes a running simulation over HTTP and streams frames
// to WebSocket clients.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/equilibria/internal/sim"
)

var ErrStopped = errors.New("server: simulation loop stopped")

const (
	defaultFPS      = 30
	shutdownTimeout = 5 * time.Second
	maxCommandBytes = 1 << 16
)

type Options struct {
	Addr   string
	FPS    int
	Logger *zap.Logger
}

// Server owns a simulation on a single loop goroutine. HTTP handlers hand
// closures to the loop and wait for the result.
type Server struct {
	sim      *sim.Simulation
	addr     string
	fps      int
	logger   *zap.Logger
	hub      *Hub
	upgrader websocket.Upgrader
	requests chan request
	stopped  chan struct{}
}

type request struct {
	fn    func(*sim.Simulation) (any, error)
	reply chan response
}

type response struct {
	value any
	err   error
}

func New(s *sim.Simulation, opts Options) *Server {
	if opts.FPS <= 0 {
		opts.FPS = defaultFPS
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Server{
		sim:      s,
		addr:     opts.Addr,
		fps:      opts.FPS,
		logger:   opts.Logger,
		hub:      NewHub(opts.Logger),
		upgrader: websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 4096},
		requests: make(chan request),
		stopped:  make(chan struct{}),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /state", s.handleState)
	mux.HandleFunc("POST /command", s.handleCommand)
	mux.HandleFunc("GET /observations", s.handleObservations)
	mux.HandleFunc("GET /ws", s.handleWS)
	return mux
}

// ListenAndServe listens on the configured address and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve runs the simulation loop, the hub and the HTTP server until ctx is
// done or one of them fails. A Server can only be served once.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	hs := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.hub.Run(ctx)
		return nil
	})
	g.Go(func() error {
		s.loop(ctx)
		return nil
	})
	g.Go(func() error {
		s.logger.Info("listening", zap.String("addr", ln.Addr().String()), zap.Int("fps", s.fps))
		if err := hs.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return hs.Shutdown(sctx)
	})

	err := g.Wait()
	s.logger.Info("server stopped", zap.Error(err))
	return err
}

func (s *Server) loop(ctx context.Context) {
	defer close(s.stopped)
	ticker := time.NewTicker(time.Second / time.Duration(s.fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case req := <-s.requests:
			v, err := req.fn(s.sim)
			req.reply <- response{v, err}
		case <-ticker.C:
			s.sim.Tick()
			if s.hub.Clients() == 0 {
				continue
			}
			data, err := json.Marshal(s.sim.Frame())
			if err != nil {
				s.logger.Error("encode frame", zap.Error(err))
				continue
			}
			s.hub.Broadcast(data)
		}
	}
}

// do runs fn on the loop goroutine.
func (s *Server) do(ctx context.Context, fn func(*sim.Simulation) (any, error)) (any, error) {
	req := request{fn: fn, reply: make(chan response, 1)}
	select {
	case s.requests <- req:
	case <-s.stopped:
		return nil, ErrStopped
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case r := <-req.reply:
		return r.value, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "clients": s.hub.Clients()})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	v, err := s.do(r.Context(), func(sm *sim.Simulation) (any, error) { return sm.Snapshot(), nil })
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleObservations(w http.ResponseWriter, r *http.Request) {
	v, err := s.do(r.Context(), func(sm *sim.Simulation) (any, error) { return sm.Observations(), nil })
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	var cmd sim.Command
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCommandBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cmd); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode command: %w", err))
		return
	}

	v, err := s.do(r.Context(), func(sm *sim.Simulation) (any, error) {
		if err := sm.Apply(cmd); err != nil {
			return nil, err
		}
		return sm.Snapshot(), nil
	})
	var cmdErr *sim.CommandError
	switch {
	case errors.As(err, &cmdErr):
		s.logger.Warn("command rejected", zap.Stringer("command", cmd), zap.Error(err))
		writeError(w, http.StatusBadRequest, err)
	case err != nil:
		writeError(w, http.StatusServiceUnavailable, err)
	default:
		writeJSON(w, http.StatusOK, v)
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade", zap.Error(err))
		return
	}
	id := s.hub.Add(conn)
	if id == "" {
		return
	}
	defer s.hub.Remove(id)

	// Clients only listen; reading detects the close.
	conn.SetReadLimit(512)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
