package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/mmcdole/campus-transit/pkg/logging"
	"github.com/mmcdole/campus-transit/pkg/portal"
)

const shutdownTimeout = 10 * time.Second

// Config holds HTTP portal configuration
type Config struct {
	ListenAddr string
	Port       int
}

// Server serves one portal over HTTP. All requests share its session, so it
// should only listen on a loopback address.
type Server struct {
	config *Config
	portal *portal.Portal
	server *http.Server

	startTime time.Time
	requests  atomic.Int64
}

// New creates a server for p
func New(config *Config, p *portal.Portal) (*Server, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if p == nil {
		return nil, fmt.Errorf("portal is required")
	}

	s := &Server{
		config:    config,
		portal:    p,
		startTime: time.Now(),
	}
	s.server = &http.Server{
		Addr:              net.JoinHostPort(config.ListenAddr, fmt.Sprint(config.Port)),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Addr is the address the server listens on
func (s *Server) Addr() string {
	return s.server.Addr
}

// ListenAndServe blocks until the server stops. A clean Stop returns nil.
func (s *Server) ListenAndServe() error {
	logging.App.Info("Portal listening", "addr", s.server.Addr)
	err := s.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop shuts the server down, waiting for in-flight requests
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down portal server: %w", err)
	}
	return nil
}

// GetRequestCount implements status.MetricsProvider
func (s *Server) GetRequestCount() int64 {
	return s.requests.Load()
}

// GetStartTime implements status.MetricsProvider
func (s *Server) GetStartTime() time.Time {
	return s.startTime
}

// GetSessionState implements status.MetricsProvider
func (s *Server) GetSessionState() string {
	return s.portal.State().String()
}
