package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"flight-state/internal/sim"
	"flight-state/internal/storage"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Engine is the part of sim.Engine the HTTP surface drives.
type Engine interface {
	GetState(ctx context.Context) (sim.State, error)
	Subscribe(ctx context.Context) (<-chan sim.State, func())
	Submit(cmd sim.Command)
}

// History serves recorded ticks, newest first.
type History interface {
	Recent(ctx context.Context, limit int) ([]storage.StateRecord, error)
}

const (
	defaultHistoryLimit = 100
	maxHistoryLimit     = 10000
)

type Options struct {
	// StreamMaxHz caps the frames per second sent to each SSE client.
	// Zero or less streams every tick.
	StreamMaxHz float64
	Logger      zerolog.Logger
	// History enables /history. Nil serves 404.
	History History
}

type Server struct {
	eng  Engine
	mux  *http.ServeMux
	opts Options
	log  zerolog.Logger
}

func NewServer(eng Engine, opts Options) *Server {
	s := &Server{
		eng:  eng,
		mux:  http.NewServeMux(),
		opts: opts,
		log:  opts.Logger.With().Str("component", "api").Logger(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler { return s.mux }

func (s *Server) routes() {
	s.mux.HandleFunc("/health", s.health)
	s.mux.HandleFunc("/state", s.state)

	s.mux.HandleFunc("/command/pause", s.command(func(at time.Time) sim.Command { return sim.PauseCommand{At: at} }))
	s.mux.HandleFunc("/command/resume", s.command(func(at time.Time) sim.Command { return sim.ResumeCommand{At: at} }))

	s.mux.HandleFunc("/stream", s.streamSSE)
	s.mux.HandleFunc("/history", s.history)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) state(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "GET only", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	st, err := s.eng.GetState(ctx)
	if err != nil {
		http.Error(w, err.Error(), http.StatusRequestTimeout)
		return
	}
	writeJSON(w, st)
}

func (s *Server) history(w http.ResponseWriter, r *http.Request) {
	if s.opts.History == nil {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "GET only", http.StatusMethodNotAllowed)
		return
	}

	limit := defaultHistoryLimit
	if q := r.URL.Query().Get("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n <= 0 || n > maxHistoryLimit {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	records, err := s.opts.History.Recent(r.Context(), limit)
	if err != nil {
		s.log.Error().Err(err).Msg("reading history failed")
		http.Error(w, "history unavailable", http.StatusInternalServerError)
		return
	}
	writeJSON(w, records)
}

func (s *Server) command(build func(at time.Time) sim.Command) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "POST only", http.StatusMethodNotAllowed)
			return
		}
		cmd := build(time.Now())
		s.eng.Submit(cmd)
		s.log.Info().Str("command", string(cmd.Type())).Str("remote", r.RemoteAddr).Msg("command accepted")
		writeJSON(w, map[string]any{"status": "accepted", "type": cmd.Type()})
	}
}

func (s *Server) streamSSE(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "GET only", http.StatusMethodNotAllowed)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	limit := rate.Inf
	if s.opts.StreamMaxHz > 0 {
		limit = rate.Limit(s.opts.StreamMaxHz)
	}
	limiter := rate.NewLimiter(limit, 1)

	ctx := r.Context()
	ch, unsub := s.eng.Subscribe(ctx)
	defer unsub()

	log := s.log.With().Str("remote", r.RemoteAddr).Logger()
	log.Debug().Msg("stream client connected")
	defer log.Debug().Msg("stream client disconnected")

	fmt.Fprintf(w, ": connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-ctx.Done():
			return
		case st, ok := <-ch:
			if !ok {
				return
			}
			if !limiter.Allow() {
				continue
			}
			b, err := json.Marshal(st)
			if err != nil {
				log.Error().Err(err).Msg("encoding state failed")
				continue
			}
			fmt.Fprintf(w, "event: state\n")
			fmt.Fprintf(w, "data: %s\n\n", b)
			flusher.Flush()
		}
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
