// Package downloadimage implements the download_image tool: it resolves
// an image reference (direct URL or Unsplash photo id) to binary content
// and writes it to a local file.
package downloadimage

import (
	"context"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mcpkit/unsplash-mcp/internal/tools"
	"github.com/mcpkit/unsplash-mcp/internal/unsplash"
	"github.com/sirupsen/logrus"
)

const (
	// SourceTypeURL downloads from a caller-supplied URL.
	SourceTypeURL = "url"
	// SourceTypeID resolves the URL from an Unsplash photo id.
	SourceTypeID = "id"
)

var (
	sourceTypes = []string{SourceTypeURL, SourceTypeID}
	qualities   = []string{"raw", "full", "regular", "small", "thumb"}
)

// DownloadTool implements image download to the local filesystem
type DownloadTool struct {
	pipeline *Pipeline
}

// NewTool creates the download_image tool backed by the given client.
func NewTool(client unsplash.API) *DownloadTool {
	return &DownloadTool{
		pipeline: NewPipeline(client, &http.Client{Timeout: unsplash.DefaultTimeout}),
	}
}

// Definition returns the tool's definition for MCP registration
func (t *DownloadTool) Definition() mcp.Tool {
	return mcp.NewTool(
		"download_image",
		mcp.WithDescription("Download an Unsplash image to a local file, either from a direct URL or by photo ID with a chosen quality."),
		mcp.WithString("imageSource",
			mcp.Required(),
			mcp.Description("The image URL or Unsplash photo ID, depending on sourceType"),
		),
		mcp.WithString("sourceType",
			mcp.Required(),
			mcp.Description("How to interpret imageSource"),
			mcp.Enum(sourceTypes...),
		),
		mcp.WithString("destinationPath",
			mcp.Required(),
			mcp.Description("Absolute or relative file path to write the image to"),
		),
		mcp.WithString("quality",
			mcp.Description("Image quality to download when sourceType is \"id\""),
			mcp.Enum(qualities...),
			mcp.DefaultString(string(unsplash.QualityRegular)),
		),
	)
}

// Execute executes the image download tool
func (t *DownloadTool) Execute(ctx context.Context, logger *logrus.Logger, args map[string]interface{}) (*mcp.CallToolResult, error) {
	request, err := t.parseRequest(args)
	if err != nil {
		logger.WithError(err).Error("Invalid download request")
		return mcp.NewToolResultError(err.Error()), nil
	}

	outcome, err := t.pipeline.Run(ctx, logger, request)
	if err != nil {
		logger.WithError(err).Error("Image download failed")
		return mcp.NewToolResultError(err.Error()), nil
	}

	return tools.NewToolResultJSON(outcome)
}

func (t *DownloadTool) parseRequest(args map[string]interface{}) (*Request, error) {
	imageSource, err := tools.RequiredString(args, "imageSource")
	if err != nil {
		return nil, err
	}

	sourceType, err := tools.RequiredEnum(args, "sourceType", sourceTypes)
	if err != nil {
		return nil, err
	}

	destinationPath, err := tools.RequiredString(args, "destinationPath")
	if err != nil {
		return nil, err
	}

	quality := unsplash.ParseQuality(tools.OptionalString(args, "quality", ""))

	return &Request{
		ImageSource:     imageSource,
		SourceType:      sourceType,
		DestinationPath: destinationPath,
		Quality:         quality,
	}, nil
}
