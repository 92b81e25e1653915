// Package randomimage implements the get_random_image tool.
package randomimage

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mcpkit/unsplash-mcp/internal/tools"
	"github.com/mcpkit/unsplash-mcp/internal/unsplash"
	"github.com/sirupsen/logrus"
)

const (
	defaultCount = 1
	maxCount     = 30
)

var orientations = []string{"landscape", "portrait", "squarish"}

// RandomTool implements random photo retrieval using the Unsplash API
type RandomTool struct {
	client unsplash.API
}

// NewTool creates the get_random_image tool backed by the given client.
func NewTool(client unsplash.API) *RandomTool {
	return &RandomTool{client: client}
}

// randomResponse is the shape of a successful get_random_image result.
// The provider returns a single object or an array depending on whether
// count was supplied; both are normalised into this shape.
type randomResponse struct {
	Images []unsplash.Image `json:"images"`
}

// Definition returns the tool's definition for MCP registration
func (t *RandomTool) Definition() mcp.Tool {
	return mcp.NewTool(
		"get_random_image",
		mcp.WithDescription("Get one or more random Unsplash images, optionally filtered by keyword and orientation."),
		mcp.WithString("query",
			mcp.Description("Limit selection to photos matching this query"),
		),
		mcp.WithString("orientation",
			mcp.Description("Filter by photo orientation"),
			mcp.Enum(orientations...),
		),
		mcp.WithNumber("count",
			mcp.Description(fmt.Sprintf("Number of random images to return (maximum %d)", maxCount)),
			mcp.DefaultNumber(defaultCount),
		),
	)
}

// Execute executes the random image tool
func (t *RandomTool) Execute(ctx context.Context, logger *logrus.Logger, args map[string]interface{}) (*mcp.CallToolResult, error) {
	result, err := t.random(ctx, logger, args)
	if err != nil {
		logger.WithError(err).Error("Random image retrieval failed")
		return mcp.NewToolResultError(err.Error()), nil
	}
	return tools.NewToolResultJSON(result)
}

func (t *RandomTool) random(ctx context.Context, logger *logrus.Logger, args map[string]interface{}) (*randomResponse, error) {
	query := tools.OptionalString(args, "query", "")

	orientation, err := tools.EnumString(args, "orientation", orientations, "")
	if err != nil {
		return nil, err
	}

	count, countSet := tools.OptionalInt(args, "count", defaultCount)
	count = tools.ClampInt(count, 1, maxCount)

	logger.WithFields(logrus.Fields{
		"query":       query,
		"orientation": orientation,
		"count":       count,
	}).Debug("Random image parameters")

	photos, err := t.client.RandomPhoto(ctx, logger, unsplash.RandomPhotoOptions{
		Query:       query,
		Orientation: orientation,
		Count:       count,
		CountSet:    countSet,
	})
	if err != nil {
		return nil, err
	}

	logger.WithField("result_count", len(photos)).Info("Random image retrieval completed")

	return &randomResponse{Images: unsplash.NewImages(photos)}, nil
}
