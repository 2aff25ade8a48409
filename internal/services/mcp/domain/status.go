package domain

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/catapult/internal/siege/game"
)

// StatusInput represents the MCP tool input for reading the encounter.
type StatusInput struct{}

// StatusTool defines the MCP tool schema for reading the encounter.
func StatusTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_status",
		Description: "Returns the engine snapshot, the current wave, the level and the score.",
	}
}

// StatusHandler reads the encounter.
func StatusHandler(session *Session) mcp.ToolHandlerFor[StatusInput, StatusPayload] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ StatusInput) (*mcp.CallToolResult, StatusPayload, error) {
		status, err := readStatus(session)
		if err != nil {
			return nil, StatusPayload{}, err
		}
		return nil, status, nil
	}
}

// StatusResource defines the encounter snapshot resource.
func StatusResource() *mcp.Resource {
	return &mcp.Resource{
		URI:         StatusResourceURI,
		Name:        "siege_status",
		Description: "Engine snapshot, current wave, level and score as JSON.",
		MIMEType:    "application/json",
	}
}

// StatusResourceHandler serves the encounter snapshot resource.
func StatusResourceHandler(session *Session) mcp.ResourceHandler {
	return func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		uri := StatusResourceURI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}
		if uri != StatusResourceURI {
			return nil, mcp.ResourceNotFoundError(uri)
		}
		status, err := readStatus(session)
		if err != nil {
			return nil, err
		}
		data, err := json.MarshalIndent(status, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal status: %w", err)
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      uri,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}
}

func readStatus(session *Session) (StatusPayload, error) {
	var status game.Status
	err := session.Do(func(g *game.Game) error {
		var err error
		status, err = g.Status()
		return err
	})
	if err != nil {
		return StatusPayload{}, err
	}
	return statusPayload(status), nil
}
