package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sirupsen/logrus"
)

// Tool is the interface that all MCP tool implementations must satisfy
type Tool interface {
	// Definition returns the tool's definition for MCP registration
	Definition() mcp.Tool

	// Execute executes the tool's logic with the shared logger and the
	// parsed request arguments. Business failures (invalid arguments,
	// provider errors, I/O errors) are reported inside the returned
	// result with IsError set; the error return is reserved for
	// conditions the transport should treat as a protocol fault.
	Execute(ctx context.Context, logger *logrus.Logger, args map[string]interface{}) (*mcp.CallToolResult, error)
}
