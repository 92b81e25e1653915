package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mcpkit/unsplash-mcp/internal/registry"
	"github.com/mcpkit/unsplash-mcp/internal/tools/downloadimage"
	"github.com/mcpkit/unsplash-mcp/internal/tools/getimage"
	"github.com/mcpkit/unsplash-mcp/internal/tools/imagesearch"
	"github.com/mcpkit/unsplash-mcp/internal/tools/randomimage"
	"github.com/mcpkit/unsplash-mcp/internal/unsplash"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// Version information (set during build)
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// parseLogLevel parses the LOG_LEVEL environment variable and returns the
// appropriate logrus level. Defaults to WarnLevel if not set or invalid.
func parseLogLevel() logrus.Level {
	logLevelStr := strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL")))

	switch logLevelStr {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "panic":
		return logrus.PanicLevel
	default:
		return logrus.WarnLevel
	}
}

// configureLogger directs log output somewhere safe for the chosen
// transport. In stdio mode stdout and stderr belong to the MCP protocol,
// so logs go to a file under the user's home directory (or nowhere if
// that fails).
func configureLogger(logger *logrus.Logger, transport string) {
	logger.SetLevel(parseLogLevel())
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if transport != "stdio" {
		logger.SetOutput(os.Stderr)
		return
	}

	logger.SetOutput(io.Discard)
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return
	}
	logDir := filepath.Join(homeDir, ".unsplash-mcp", "logs")
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return
	}
	logFile := filepath.Join(logDir, "unsplash-mcp.log")
	if file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600); err == nil {
		logger.SetOutput(file)
	}
}

// registerTools wires the four Unsplash tools into the registry.
func registerTools(client *unsplash.Client) {
	registry.Register(imagesearch.NewTool(client))
	registry.Register(randomimage.NewTool(client))
	registry.Register(getimage.NewTool(client))
	registry.Register(downloadimage.NewTool(client))
}

func main() {
	// Load a local .env if present; real environment variables win.
	_ = godotenv.Load()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	app := &cli.App{
		Name:    "unsplash-mcp",
		Usage:   "MCP server for Unsplash image search and download",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "transport",
				Aliases: []string{"t"},
				Value:   "stdio",
				Usage:   "Transport type (stdio, sse, or http)",
			},
			&cli.StringFlag{
				Name:  "port",
				Value: "18080",
				Usage: "Port to use for HTTP transports (SSE and Streamable HTTP)",
			},
			&cli.StringFlag{
				Name:  "base-url",
				Value: "http://localhost",
				Usage: "Base URL for the SSE transport",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "version",
				Usage: "Print version information",
				Action: func(c *cli.Context) error {
					fmt.Printf("unsplash-mcp version %s\n", Version)
					fmt.Printf("Commit: %s\n", Commit)
					fmt.Printf("Built: %s\n", BuildDate)
					return nil
				},
			},
		},
		Action: func(c *cli.Context) error {
			transport := c.String("transport")
			port := c.String("port")
			baseURL := c.String("base-url")

			configureLogger(logger, transport)

			// The access key must be present before any tool can run.
			client, err := unsplash.NewClient(os.Getenv("UNSPLASH_ACCESS_KEY"))
			if err != nil {
				return fmt.Errorf("UNSPLASH_ACCESS_KEY environment variable is not set: %w", err)
			}

			registry.Init(logger)
			registerTools(client)

			mcpSrv := mcpserver.NewMCPServer("unsplash-mcp", Version)

			for toolName, toolImpl := range registry.GetTools() {
				name := toolName
				tool := toolImpl

				if transport != "stdio" {
					logger.Infof("Registering tool: %s", name)
				}

				mcpSrv.AddTool(tool.Definition(), func(toolCtx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
					currentTool, ok := registry.GetTool(name)
					if !ok {
						// Unknown tool is a protocol-level fault, not a
						// business error envelope.
						return nil, fmt.Errorf("tool not found: %s", name)
					}

					args, ok := request.Params.Arguments.(map[string]any)
					if !ok {
						return nil, fmt.Errorf("invalid arguments type: expected map[string]interface{}, got %T", request.Params.Arguments)
					}

					return currentTool.Execute(toolCtx, registry.GetLogger(), args)
				})
			}

			logger.WithFields(logrus.Fields{
				"transport": transport,
				"tools":     registry.GetToolNames(),
			}).Debug("Starting server")

			switch transport {
			case "stdio":
				return mcpserver.ServeStdio(mcpSrv)
			case "sse":
				sseServer := mcpserver.NewSSEServer(mcpSrv, mcpserver.WithBaseURL(baseURL+"/sse"))
				return sseServer.Start(":" + port)
			case "http":
				httpServer := mcpserver.NewStreamableHTTPServer(mcpSrv)
				return httpServer.Start(":" + port)
			default:
				return fmt.Errorf("unsupported transport: %s", transport)
			}
		},
	}

	if err := app.Run(os.Args); err != nil {
		// In stdio mode stdout/stderr must stay clean for the protocol,
		// so startup failures are logged (to file) and exit non-zero.
		logger.WithError(err).Error("Server exited with error")
		os.Exit(1)
	}
}
