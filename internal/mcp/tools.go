// ABOUTME: MCP tool definitions and handlers
// ABOUTME: Calculation, measurement, and project operations for AI agents

package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/harper/parcel/internal/geometry"
	"github.com/harper/parcel/internal/models"
	"github.com/harper/parcel/internal/validate"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	s.registerCalculateTool()
	s.registerSaveMeasurementTool()
	s.registerListProjectsTool()
	s.registerCreateProjectTool()
	s.registerRemoveMeasurementTool()
}

// CalculateInput defines input for the calculation tools. Each entry is
// coordinate text like "100.5, 200.75"; empty entries are skipped.
type CalculateInput struct {
	Left  []string `json:"left"`
	Right []string `json:"right"`
	Name  string   `json:"name,omitempty"`
}

// CalculateOutput defines output for the calculation tools.
type CalculateOutput struct {
	Aggregate geometry.Aggregate `json:"aggregate"`
	Valid     bool               `json:"valid"`
	ID        string             `json:"id,omitempty"`
	Project   string             `json:"project,omitempty"`
}

// parseSides turns coordinate text into point sequences, validating each
// entry and the resulting sequences.
func parseSides(input CalculateInput) (left, right []geometry.Point, err error) {
	left, err = parseSide("left", input.Left)
	if err != nil {
		return nil, nil, err
	}
	right, err = parseSide("right", input.Right)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

func parseSide(side string, texts []string) ([]geometry.Point, error) {
	var points []geometry.Point
	for i, text := range texts {
		if err := validate.CoordinateText(text); err != nil {
			return nil, fmt.Errorf("%s point %d: %w", side, i+1, err)
		}
		p, err := geometry.ParsePoint(text)
		if err != nil {
			// Empty entries are valid but contribute no point.
			continue
		}
		points = append(points, p)
	}
	if len(points) > models.MaxPointsPerSide {
		return nil, fmt.Errorf("%s side: at most %d points allowed, got %d", side, models.MaxPointsPerSide, len(points))
	}
	if err := validate.PointSequence(points, models.MinPointsPerSide); err != nil {
		return nil, fmt.Errorf("%s side: %w", side, err)
	}
	return points, nil
}

func (s *Server) registerCalculateTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "calculate_measurement",
		Description: "Calculate distances, width, and area from two sides of boundary coordinates. Does not save anything.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"left": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Left-side coordinates in meters, each like '100.5, 200.75' (2-10 entries)",
				},
				"right": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Right-side coordinates in meters, each like '100.5, 200.75' (2-10 entries)",
				},
			},
			"required": []string{"left", "right"},
		},
	}, s.handleCalculate)
}

func (s *Server) handleCalculate(_ context.Context, req *mcp.CallToolRequest, input CalculateInput) (*mcp.CallToolResult, CalculateOutput, error) {
	left, right, err := parseSides(input)
	if err != nil {
		return nil, CalculateOutput{}, err
	}

	output := CalculateOutput{
		Aggregate: geometry.Compute(left, right),
		Valid:     true,
	}
	return toolResult(output), output, nil
}

func (s *Server) registerSaveMeasurementTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "save_measurement",
		Description: "Calculate and save a measurement into the current project.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"left": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Left-side coordinates in meters",
				},
				"right": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Right-side coordinates in meters",
				},
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Optional display name for the measurement",
				},
			},
			"required": []string{"left", "right"},
		},
	}, s.handleSaveMeasurement)
}

func (s *Server) handleSaveMeasurement(_ context.Context, req *mcp.CallToolRequest, input CalculateInput) (*mcp.CallToolResult, CalculateOutput, error) {
	left, right, err := parseSides(input)
	if err != nil {
		return nil, CalculateOutput{}, err
	}

	m := models.NewMeasurement(left, right, input.Name)
	if err := s.state.AddMeasurement(m); err != nil {
		return nil, CalculateOutput{}, err
	}
	s.save()

	output := CalculateOutput{
		Aggregate: m.Calculations,
		Valid:     true,
		ID:        m.ID.String(),
		Project:   s.state.CurrentProject().Name,
	}
	return toolResult(output), output, nil
}

// ProjectOutput defines output for project tools.
type ProjectOutput struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	Measurements  int     `json:"measurements"`
	TotalAreaSqFt float64 `json:"total_area_sqft"`
	Current       bool    `json:"current"`
}

// ListProjectsOutput defines output for the list_projects tool.
type ListProjectsOutput struct {
	Projects []ProjectOutput `json:"projects"`
	Count    int             `json:"count"`
}

// ListProjectsInput is empty but required for type.
type ListProjectsInput struct{}

func (s *Server) registerListProjectsTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_projects",
		Description: "List all survey projects with measurement counts and total areas.",
		InputSchema: map[string]interface{}{
			"type": "object",
		},
	}, s.handleListProjects)
}

func (s *Server) handleListProjects(_ context.Context, req *mcp.CallToolRequest, input ListProjectsInput) (*mcp.CallToolResult, ListProjectsOutput, error) {
	output := s.listProjects()
	return toolResult(output), output, nil
}

func (s *Server) listProjects() ListProjectsOutput {
	projects := s.state.Projects()
	outputs := make([]ProjectOutput, len(projects))
	for i, p := range projects {
		outputs[i] = ProjectOutput{
			ID:            p.ID.String(),
			Name:          p.Name,
			Description:   p.Description,
			Measurements:  len(p.Measurements),
			TotalAreaSqFt: p.TotalArea(),
			Current:       p.ID == s.state.CurrentProjectID(),
		}
	}
	return ListProjectsOutput{Projects: outputs, Count: len(outputs)}
}

// CreateProjectInput defines input for the create_project tool.
type CreateProjectInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Select      bool   `json:"select,omitempty"`
}

func (s *Server) registerCreateProjectTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "create_project",
		Description: "Create a new survey project. Names must be 3-50 characters and unique.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Project name (3-50 characters, unique)",
				},
				"description": map[string]interface{}{
					"type":        "string",
					"description": "Optional project description",
				},
				"select": map[string]interface{}{
					"type":        "boolean",
					"description": "Make this the current project",
				},
			},
			"required": []string{"name"},
		},
	}, s.handleCreateProject)
}

func (s *Server) handleCreateProject(_ context.Context, req *mcp.CallToolRequest, input CreateProjectInput) (*mcp.CallToolResult, ProjectOutput, error) {
	p := models.NewProject(input.Name, input.Description)
	if err := s.state.AddProject(p); err != nil {
		return nil, ProjectOutput{}, err
	}
	if input.Select {
		if err := s.state.SetCurrentProject(p.ID); err != nil {
			return nil, ProjectOutput{}, err
		}
	}
	s.save()

	output := ProjectOutput{
		ID:      p.ID.String(),
		Name:    p.Name,
		Current: input.Select,
	}
	return toolResult(output), output, nil
}

// RemoveMeasurementInput defines input for the remove_measurement tool.
type RemoveMeasurementInput struct {
	ID string `json:"id"`
}

// RemoveMeasurementOutput defines output for the remove_measurement tool.
type RemoveMeasurementOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (s *Server) registerRemoveMeasurementTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "remove_measurement",
		Description: "Remove a measurement from the current project. This cannot be undone.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "string",
					"description": "Measurement id (UUID)",
				},
			},
			"required": []string{"id"},
		},
	}, s.handleRemoveMeasurement)
}

func (s *Server) handleRemoveMeasurement(_ context.Context, req *mcp.CallToolRequest, input RemoveMeasurementInput) (*mcp.CallToolResult, RemoveMeasurementOutput, error) {
	id, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, RemoveMeasurementOutput{}, fmt.Errorf("invalid measurement id: %w", err)
	}

	if err := s.state.RemoveMeasurement(id); err != nil {
		return nil, RemoveMeasurementOutput{}, err
	}
	s.save()

	output := RemoveMeasurementOutput{
		Success: true,
		Message: fmt.Sprintf("Removed measurement %s", input.ID),
	}
	return toolResult(output), output, nil
}

// toolResult renders an output value as a text content result.
func toolResult(output any) *mcp.CallToolResult {
	jsonBytes, _ := json.MarshalIndent(output, "", "  ") //nolint:errchkjson // output is always serializable
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(jsonBytes)}},
	}
}
