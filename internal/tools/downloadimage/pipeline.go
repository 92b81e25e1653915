package downloadimage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/mcpkit/unsplash-mcp/internal/unsplash"
	"github.com/sirupsen/logrus"
)

// Request describes one download invocation.
type Request struct {
	ImageSource     string
	SourceType      string
	DestinationPath string
	Quality         unsplash.Quality
}

// Outcome reports the result of a completed download.
type Outcome struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	FilePath      string `json:"filePath"`
	FileSizeBytes int    `json:"fileSizeBytes"`
}

// Pipeline resolves an image reference to bytes and persists them. Each
// run is a single linear pass with no retries; the first failure is
// terminal for that invocation.
type Pipeline struct {
	client     unsplash.API
	httpClient *http.Client
}

// NewPipeline creates a download pipeline using the given provider client
// for id resolution and download tracking, and the given HTTP client for
// the raw image fetch.
func NewPipeline(client unsplash.API, httpClient *http.Client) *Pipeline {
	return &Pipeline{client: client, httpClient: httpClient}
}

// Run executes the download: ensure the destination directory exists,
// resolve the source to a URL, fetch the bytes and write them to disk.
func (p *Pipeline) Run(ctx context.Context, logger *logrus.Logger, request *Request) (*Outcome, error) {
	if dir := filepath.Dir(request.DestinationPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create destination directory: %w", err)
		}
	}

	imageURL, err := p.resolveURL(ctx, logger, request)
	if err != nil {
		return nil, err
	}

	data, err := p.fetch(ctx, logger, imageURL)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(request.DestinationPath, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write image file: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"path": request.DestinationPath,
		"size": len(data),
	}).Info("Image downloaded")

	return &Outcome{
		Success:       true,
		Message:       fmt.Sprintf("Image downloaded to %s", request.DestinationPath),
		FilePath:      request.DestinationPath,
		FileSizeBytes: len(data),
	}, nil
}

// resolveURL turns the request's source into a fetchable URL. For id
// sources the photo metadata is fetched, the URL variant matching the
// requested quality is selected, and the provider's download-tracking
// endpoint is hit. Unsplash terms require the tracking call, but its
// failure does not abort the download.
func (p *Pipeline) resolveURL(ctx context.Context, logger *logrus.Logger, request *Request) (string, error) {
	if request.SourceType == SourceTypeURL {
		return request.ImageSource, nil
	}

	photo, err := p.client.GetPhoto(ctx, logger, request.ImageSource)
	if err != nil {
		return "", err
	}

	imageURL := photo.URLs.ForQuality(request.Quality)
	if imageURL == "" {
		return "", fmt.Errorf("photo %s has no URL for quality %q", photo.ID, request.Quality)
	}

	if err := p.client.TrackDownload(ctx, logger, photo.Links.DownloadLocation); err != nil {
		logger.WithError(err).WithField("id", photo.ID).Warn("Download tracking failed")
	}

	return imageURL, nil
}

// fetch performs the HTTP GET for the image bytes.
func (p *Pipeline) fetch(ctx context.Context, logger *logrus.Logger, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", unsplash.UserAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.WithError(closeErr).Warn("Failed to close response body")
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("image fetch failed with status %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return data, nil
}
