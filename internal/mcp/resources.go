// ABOUTME: MCP resource definitions
// ABOUTME: Provides read-only views for AI agents

package mcp

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	s.mcp.AddResource(&mcp.Resource{
		Name:        "parcel://projects",
		Description: "All survey projects with their measurement counts and areas",
		URI:         "parcel://projects",
		MIMEType:    "application/json",
	}, s.handleProjectsResource)
}

func (s *Server) handleProjectsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	output := s.listProjects()

	jsonBytes, _ := json.MarshalIndent(output, "", "  ") //nolint:errchkjson // output is always serializable

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      "parcel://projects",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		},
	}, nil
}
