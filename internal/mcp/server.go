// ABOUTME: MCP server initialization and configuration
// ABOUTME: Exposes survey calculations and project data to AI agents

package mcp

import (
	"context"
	"fmt"

	"github.com/harper/parcel/internal/persist"
	"github.com/harper/parcel/internal/state"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with the application state.
type Server struct {
	mcp     *mcp.Server
	state   *state.Store
	persist *persist.Manager
}

// NewServer creates an MCP server with all capabilities.
func NewServer(st *state.Store, pm *persist.Manager) (*Server, error) {
	if st == nil {
		return nil, fmt.Errorf("state store is required")
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "parcel",
			Version: persist.SchemaVersion,
		},
		nil,
	)

	s := &Server{
		mcp:     mcpServer,
		state:   st,
		persist: pm,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server in stdio mode.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// save persists state after a mutating tool call, when persistence is wired.
func (s *Server) save() {
	if s.persist != nil {
		s.persist.ScheduleSave()
	}
}
