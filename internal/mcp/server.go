// ABOUTME: MCP server initialization and configuration for minigram.
// ABOUTME: Exposes the feed controller and profile store as tools for AI agent access.
package mcp

import (
	"context"
	"fmt"
	"sync"
	"time"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/2389-research/minigram/internal/feed"
	"github.com/2389-research/minigram/internal/storage"
)

// Server wraps the MCP server with the feed controller and profile storage.
// Tool calls share one controller, so every handler holds mu.
type Server struct {
	mcp      *gomcp.Server
	ctrl     *feed.Controller
	profiles storage.ProfileStore
	log      zerolog.Logger
	now      func() time.Time

	mu sync.Mutex
}

// ServerOption configures optional Server dependencies.
type ServerOption func(*Server)

// WithLogger sets the server logger.
func WithLogger(l zerolog.Logger) ServerOption {
	return func(s *Server) {
		s.log = l
	}
}

// WithClock sets the time source used for relative timestamps.
func WithClock(now func() time.Time) ServerOption {
	return func(s *Server) {
		s.now = now
	}
}

// NewServer creates an MCP server with post and profile capabilities.
func NewServer(ctrl *feed.Controller, profiles storage.ProfileStore, opts ...ServerOption) (*Server, error) {
	if ctrl == nil {
		return nil, fmt.Errorf("feed controller is required")
	}
	if profiles == nil {
		return nil, fmt.Errorf("profile store is required")
	}

	mcpServer := gomcp.NewServer(
		&gomcp.Implementation{
			Name:    "minigram",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcp:      mcpServer,
		ctrl:     ctrl,
		profiles: profiles,
		log:      zerolog.Nop(),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.registerPostTools()
	s.registerProfileTools()

	return s, nil
}

// Serve starts the MCP server in stdio mode.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcp.Run(ctx, &gomcp.StdioTransport{})
}

// ensureLoaded fetches the feed on first use. Callers hold mu.
func (s *Server) ensureLoaded(ctx context.Context, force bool) error {
	if s.ctrl.Loaded() && !force {
		return nil
	}
	if err := s.ctrl.Load(ctx); err != nil {
		s.log.Error().Err(err).Msg("feed load failed")
		return err
	}
	return nil
}
