package lifecycle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// StatusResponse is the JSON body served by the /status endpoint.
type StatusResponse struct {
	Status    string `json:"status"`
	GameTitle string `json:"game_title,omitempty"`
	Uptime    string `json:"uptime"`
	MemoryMB  int64  `json:"memory_mb"`
}

// StatusServer exposes the active run's lifecycle state over HTTP, for
// an operator or orchestrator polling liveness/readiness out of
// process (SPEC_FULL.md ambient supplement: launcher status endpoint).
type StatusServer struct {
	port      int
	coord     *Coordinator
	startTime time.Time
	server    *http.Server
}

// NewStatusServer builds a StatusServer bound to port, reporting coord's
// state.
func NewStatusServer(port int, coord *Coordinator) *StatusServer {
	return &StatusServer{port: port, coord: coord, startTime: time.Now()}
}

// Start serves /healthz, /readyz, and /status until ctx is canceled.
func (s *StatusServer) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleLiveness)
	mux.HandleFunc("/readyz", s.handleReadiness)
	mux.HandleFunc("/status", s.handleStatus)

	s.server = &http.Server{Addr: fmt.Sprintf(":%d", s.port), Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	err := s.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *StatusServer) handleLiveness(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *StatusServer) handleReadiness(w http.ResponseWriter, _ *http.Request) {
	if s.coord.Status() == StatusRunning {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
		return
	}
	w.WriteHeader(http.StatusServiceUnavailable)
	_, _ = w.Write([]byte("not ready"))
}

func (s *StatusServer) handleStatus(w http.ResponseWriter, _ *http.Request) {
	resp := StatusResponse{
		Status:   string(s.coord.Status()),
		Uptime:   time.Since(s.startTime).Round(time.Second).String(),
		MemoryMB: s.coord.MemoryUsageMB(),
	}
	if g := s.coord.CurrentGame(); g != nil {
		resp.GameTitle = g.Title
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
