package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"triggerzone/internal/adapter/wire"
	"triggerzone/internal/domain"
	"triggerzone/internal/logging"
	"triggerzone/internal/usecase"
)

const maxBodyBytes = 1 << 10

// Server is a primary adapter that feeds HTTP requests into the game as events.
// It depends on the use case (primary port).
type Server struct {
	usecase usecase.GameUseCase
	server  *http.Server
}

// NewServer creates the HTTP server bound to addr.
func NewServer(uc usecase.GameUseCase, addr string) *Server {
	srv := &Server{usecase: uc}
	srv.server = &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv
}

// Handler returns the routed handler, wrapped with request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/state", s.handleState)
	mux.HandleFunc("/api/events", s.handleEvents)
	mux.HandleFunc("/api/reset", s.handleReset)
	mux.HandleFunc("/api/history", s.handleHistory)
	mux.HandleFunc("/", s.handleRoot)
	return loggingMiddleware(mux)
}

// Start blocks and serves HTTP traffic.
func (s *Server) Start() error {
	if err := s.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexHTML))
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	respondJSON(w, http.StatusOK, stateView(s.usecase.Snapshot()))
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req wire.Event
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	event, err := req.ToDomain()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	step, err := s.usecase.Dispatch(event)
	if err != nil {
		// The state has already advanced; report it alongside the failure.
		view := stepView(step)
		view.Error = err.Error()
		respondJSON(w, http.StatusInternalServerError, view)
		return
	}
	respondJSON(w, http.StatusOK, stepView(step))
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	s.usecase.Reset()
	respondJSON(w, http.StatusOK, stateView(s.usecase.Snapshot()))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"events": wire.FromEvents(s.usecase.History()),
	})
}

func stateView(state domain.GameState) map[string]any {
	return map[string]any{
		"state":    wire.FromState(state),
		"canScore": state.CanScore(),
	}
}

func stepView(step usecase.Step) wire.Step {
	ev := wire.FromEvent(step.Event)
	return wire.Step{
		Event:   &ev,
		State:   wire.FromState(step.State),
		Effects: wire.FromEffects(step.Effects),
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Errorf("encode JSON: %v", err)
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logging.Infof("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
