package testutil

import (
	"context"
	"net/http"
	"sync"

	"nba-surprise-service/internal/poller"
)

// StubPoller records lifecycle calls and reports a fixed status.
type StubPoller struct {
	StartCalls int
	StopCalls  int
	Err        error
	StatusVal  poller.Status
}

func (p *StubPoller) Start(context.Context) { p.StartCalls++ }

func (p *StubPoller) Stop(context.Context) error {
	p.StopCalls++
	return p.Err
}

func (p *StubPoller) Status() poller.Status { return p.StatusVal }

// StubScheduler records archive scheduler lifecycle calls.
type StubScheduler struct {
	StartCalls int
	StopCalls  int
	StartErr   error
}

func (s *StubScheduler) Start(context.Context) error {
	s.StartCalls++
	return s.StartErr
}

func (s *StubScheduler) Stop() { s.StopCalls++ }

// StubHTTPServer stands in for the server's listener. ListenAndServe returns
// ListenErr immediately. When Block is set, Shutdown waits for it to close or
// for the shutdown context to expire.
type StubHTTPServer struct {
	AddrVal     string
	HandlerVal  http.Handler
	ListenErr   error
	ShutdownErr error
	Block       chan struct{}

	mu            sync.Mutex
	listenCalls   int
	shutdownCalls int
}

func (s *StubHTTPServer) ListenAndServe() error {
	s.mu.Lock()
	s.listenCalls++
	s.mu.Unlock()
	return s.ListenErr
}

func (s *StubHTTPServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.shutdownCalls++
	s.mu.Unlock()
	if s.Block == nil {
		return s.ShutdownErr
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.Block:
		return s.ShutdownErr
	}
}

func (s *StubHTTPServer) Addr() string { return s.AddrVal }

func (s *StubHTTPServer) Handler() http.Handler {
	if s.HandlerVal == nil {
		return http.NotFoundHandler()
	}
	return s.HandlerVal
}

// Calls reports how often ListenAndServe and Shutdown ran.
func (s *StubHTTPServer) Calls() (listen, shutdown int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listenCalls, s.shutdownCalls
}
