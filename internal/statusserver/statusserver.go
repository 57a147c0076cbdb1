// Package statusserver exposes a localhost HTTP endpoint reporting the
// current stage of a running pipeline Job, so the out-of-scope GUI shell
// can poll for completion instead of sharing process state with the
// core.
package statusserver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nocairip/rip/pkg/rip/model"
)

const defaultShutdownTimeout = 5 * time.Second

// Status is the job state reported to pollers.
type Status struct {
	Stage    string `json:"stage"`
	Err      string `json:"error,omitempty"`
	JobPath  string `json:"jobPath,omitempty"`
	UpdateAt string `json:"updatedAt"`
}

// Server serves the current Status at GET /status.
type Server struct {
	server          *echo.Echo
	addr            string
	notify          chan error
	shutdownTimeout time.Duration

	mu     sync.RWMutex
	status Status
}

// New builds a Server bound to addr (e.g. "127.0.0.1:8099").
func New(addr string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetOutput(io.Discard)

	s := &Server{
		server:          e,
		addr:            addr,
		notify:          make(chan error, 1),
		shutdownTimeout: defaultShutdownTimeout,
		status:          Status{Stage: model.StageEmpty.String()},
	}

	e.GET("/status", s.handleStatus)
	return s
}

func (s *Server) handleStatus(c echo.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return c.JSON(http.StatusOK, s.status)
}

// Report updates the status a poller sees.
func (s *Server) Report(stage model.Stage, jobPath string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status = Status{
		Stage:    stage.String(),
		JobPath:  jobPath,
		UpdateAt: time.Now().Format(time.RFC3339),
	}
	if err != nil {
		s.status.Err = err.Error()
	}
}

// Start begins serving in the background.
func (s *Server) Start() {
	go func() {
		s.notify <- s.server.Start(s.addr)
		close(s.notify)
	}()
}

// Notify returns the channel that receives the server's terminal error.
func (s *Server) Notify() <-chan error {
	return s.notify
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("statusserver shutdown: %w", err)
	}
	return nil
}
