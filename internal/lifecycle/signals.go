package lifecycle

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dragontooth/launcher/internal/logging"
)

// SignalHandler stops the coordinator's active run on SIGTERM/SIGINT,
// so an operator or orchestrator killing the launcher process gives
// the engine a chance to exit cleanly and persist parameter drift.
type SignalHandler struct {
	coord  *Coordinator
	log    *logging.Logger
	sigCh  chan os.Signal
	doneCh chan struct{}
}

// NewSignalHandler builds a SignalHandler for coord.
func NewSignalHandler(coord *Coordinator, log *logging.Logger) *SignalHandler {
	return &SignalHandler{
		coord:  coord,
		log:    log,
		sigCh:  make(chan os.Signal, 1),
		doneCh: make(chan struct{}),
	}
}

// Start begins listening for shutdown signals in the background.
func (h *SignalHandler) Start(ctx context.Context) {
	signal.Notify(h.sigCh, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		defer close(h.doneCh)
		select {
		case sig := <-h.sigCh:
			if h.log != nil {
				h.log.Info("lifecycle", "received "+sig.String()+", stopping active run")
			}
			h.shutdown()
		case <-ctx.Done():
			h.shutdown()
		}
	}()
}

func (h *SignalHandler) shutdown() {
	if !h.coord.IsRunning() {
		return
	}
	if err := h.coord.Stop(); err != nil && h.log != nil {
		h.log.Warn("lifecycle", "error stopping run during shutdown: "+err.Error())
	}
}

// Wait blocks until the signal handler has finished shutting down.
func (h *SignalHandler) Wait() { <-h.doneCh }

// Stop stops listening for signals without waiting for shutdown.
func (h *SignalHandler) Stop() {
	signal.Stop(h.sigCh)
	close(h.sigCh)
}
