// Package imagesearch implements the search_images tool, a keyword photo
// search against the Unsplash API.
package imagesearch

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mcpkit/unsplash-mcp/internal/tools"
	"github.com/mcpkit/unsplash-mcp/internal/unsplash"
	"github.com/sirupsen/logrus"
)

const (
	defaultPage    = 1
	defaultPerPage = 10
	maxPerPage     = 30
)

// orientations are the orientation filter values Unsplash accepts.
var orientations = []string{"landscape", "portrait", "squarish"}

// SearchTool implements photo search using the Unsplash API
type SearchTool struct {
	client unsplash.API
}

// NewTool creates the search_images tool backed by the given client.
func NewTool(client unsplash.API) *SearchTool {
	return &SearchTool{client: client}
}

// searchResponse is the shape of a successful search_images result.
type searchResponse struct {
	Total      int              `json:"total"`
	TotalPages int              `json:"totalPages"`
	Images     []unsplash.Image `json:"images"`
}

// Definition returns the tool's definition for MCP registration
func (t *SearchTool) Definition() mcp.Tool {
	return mcp.NewTool(
		"search_images",
		mcp.WithDescription("Search for Unsplash images by keyword. Returns image metadata including URLs at several resolutions and photographer attribution."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("The search query"),
		),
		mcp.WithNumber("page",
			mcp.Description("Page number to retrieve"),
			mcp.DefaultNumber(defaultPage),
		),
		mcp.WithNumber("perPage",
			mcp.Description(fmt.Sprintf("Number of results per page (maximum %d)", maxPerPage)),
			mcp.DefaultNumber(defaultPerPage),
		),
		mcp.WithString("orientation",
			mcp.Description("Filter results by photo orientation"),
			mcp.Enum(orientations...),
		),
	)
}

// Execute executes the image search tool
func (t *SearchTool) Execute(ctx context.Context, logger *logrus.Logger, args map[string]interface{}) (*mcp.CallToolResult, error) {
	result, err := t.search(ctx, logger, args)
	if err != nil {
		logger.WithError(err).Error("Image search failed")
		return mcp.NewToolResultError(err.Error()), nil
	}
	return tools.NewToolResultJSON(result)
}

func (t *SearchTool) search(ctx context.Context, logger *logrus.Logger, args map[string]interface{}) (*searchResponse, error) {
	query, err := tools.RequiredString(args, "query")
	if err != nil {
		return nil, err
	}

	page, _ := tools.OptionalInt(args, "page", defaultPage)
	if page < 1 {
		page = defaultPage
	}

	perPage, _ := tools.OptionalInt(args, "perPage", defaultPerPage)
	perPage = tools.ClampInt(perPage, 1, maxPerPage)

	orientation, err := tools.EnumString(args, "orientation", orientations, "")
	if err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"query":       query,
		"page":        page,
		"perPage":     perPage,
		"orientation": orientation,
	}).Debug("Image search parameters")

	result, err := t.client.SearchPhotos(ctx, logger, unsplash.SearchOptions{
		Query:       query,
		Page:        page,
		PerPage:     perPage,
		Orientation: orientation,
	})
	if err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"query":        query,
		"result_count": len(result.Results),
		"total":        result.Total,
	}).Info("Image search completed")

	return &searchResponse{
		Total:      result.Total,
		TotalPages: result.TotalPages,
		Images:     unsplash.NewImages(result.Results),
	}, nil
}
