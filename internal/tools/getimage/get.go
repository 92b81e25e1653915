// Package getimage implements the get_image_by_id tool.
package getimage

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mcpkit/unsplash-mcp/internal/tools"
	"github.com/mcpkit/unsplash-mcp/internal/unsplash"
	"github.com/sirupsen/logrus"
)

// GetTool implements photo lookup by id using the Unsplash API
type GetTool struct {
	client unsplash.API
}

// NewTool creates the get_image_by_id tool backed by the given client.
func NewTool(client unsplash.API) *GetTool {
	return &GetTool{client: client}
}

type getResponse struct {
	Image unsplash.Image `json:"image"`
}

// Definition returns the tool's definition for MCP registration
func (t *GetTool) Definition() mcp.Tool {
	return mcp.NewTool(
		"get_image_by_id",
		mcp.WithDescription("Get detailed metadata for a specific Unsplash image by its ID."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("The Unsplash photo ID"),
		),
	)
}

// Execute executes the image lookup tool
func (t *GetTool) Execute(ctx context.Context, logger *logrus.Logger, args map[string]interface{}) (*mcp.CallToolResult, error) {
	result, err := t.get(ctx, logger, args)
	if err != nil {
		logger.WithError(err).Error("Image lookup failed")
		return mcp.NewToolResultError(err.Error()), nil
	}
	return tools.NewToolResultJSON(result)
}

func (t *GetTool) get(ctx context.Context, logger *logrus.Logger, args map[string]interface{}) (*getResponse, error) {
	id, err := tools.RequiredString(args, "id")
	if err != nil {
		return nil, err
	}

	logger.WithField("id", id).Debug("Image lookup parameters")

	photo, err := t.client.GetPhoto(ctx, logger, id)
	if err != nil {
		return nil, err
	}

	return &getResponse{Image: unsplash.NewImage(*photo)}, nil
}
