package unsplash

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// APIBaseURL is the base URL for the Unsplash API
	APIBaseURL = "https://api.unsplash.com"

	// UserAgent for API requests
	UserAgent = "unsplash-mcp/1.0"

	// DefaultTimeout for HTTP requests
	DefaultTimeout = 30 * time.Second
)

// API is the narrow provider interface the tool handlers depend on.
// *Client implements it; tests substitute a fake.
type API interface {
	SearchPhotos(ctx context.Context, logger *logrus.Logger, opts SearchOptions) (*SearchPhotosResult, error)
	RandomPhoto(ctx context.Context, logger *logrus.Logger, opts RandomPhotoOptions) ([]Photo, error)
	GetPhoto(ctx context.Context, logger *logrus.Logger, id string) (*Photo, error)
	TrackDownload(ctx context.Context, logger *logrus.Logger, downloadLocation string) error
}

// SearchOptions are the parameters of a photo search.
type SearchOptions struct {
	Query       string
	Page        int
	PerPage     int
	Orientation string
}

// RandomPhotoOptions are the parameters of a random photo request.
// Count is only sent to the API when CountSet is true; Unsplash returns a
// single object without it and an array with it.
type RandomPhotoOptions struct {
	Query       string
	Orientation string
	Count       int
	CountSet    bool
}

// errorResponse is the error payload shape the Unsplash API returns.
type errorResponse struct {
	Errors []string `json:"errors"`
}

// Client handles HTTP requests to the Unsplash API.
type Client struct {
	accessKey  string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Unsplash API client. The access key must be
// non-empty; absence of a credential is a startup-time failure, not
// something to discover on the first request.
func NewClient(accessKey string) (*Client, error) {
	if accessKey == "" {
		return nil, fmt.Errorf("unsplash access key is required")
	}
	return &Client{
		accessKey: accessKey,
		baseURL:   APIBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}, nil
}

// SetBaseURL overrides the API base URL. Intended for tests.
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = strings.TrimSuffix(baseURL, "/")
}

// get performs a GET request against the given absolute URL with the
// standard Unsplash headers and returns the response body.
func (c *Client) get(ctx context.Context, logger *logrus.Logger, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Version", "v1")
	req.Header.Set("Authorization", "Client-ID "+c.accessKey)
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.WithError(closeErr).Warn("Failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	// The API reports failures as an errors list; join them into a
	// single message regardless of status code.
	var errResp errorResponse
	if jsonErr := json.Unmarshal(body, &errResp); jsonErr == nil && len(errResp.Errors) > 0 {
		logger.WithFields(logrus.Fields{
			"status_code": resp.StatusCode,
			"errors":      errResp.Errors,
		}).Error("Unsplash API reported errors")
		return nil, fmt.Errorf("unsplash API error: %s", strings.Join(errResp.Errors, ", "))
	}

	if resp.StatusCode != http.StatusOK {
		logger.WithFields(logrus.Fields{
			"status_code": resp.StatusCode,
			"status":      resp.Status,
		}).Error("Unsplash API request failed")
		return nil, fmt.Errorf("unsplash API request failed with status %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	logger.WithFields(logrus.Fields{
		"status_code":   resp.StatusCode,
		"response_size": len(body),
	}).Debug("Unsplash API request successful")

	return body, nil
}

// makeRequest builds an API URL from an endpoint and query parameters and
// performs the request.
func (c *Client) makeRequest(ctx context.Context, logger *logrus.Logger, endpoint string, params map[string]string) ([]byte, error) {
	reqURL, err := url.Parse(c.baseURL + endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	query := reqURL.Query()
	for key, value := range params {
		query.Set(key, value)
	}
	reqURL.RawQuery = query.Encode()

	logger.WithFields(logrus.Fields{
		"url":      reqURL.String(),
		"endpoint": endpoint,
	}).Debug("Making Unsplash API request")

	return c.get(ctx, logger, reqURL.String())
}

// SearchPhotos performs a keyword photo search.
func (c *Client) SearchPhotos(ctx context.Context, logger *logrus.Logger, opts SearchOptions) (*SearchPhotosResult, error) {
	params := map[string]string{
		"query":    opts.Query,
		"page":     strconv.Itoa(opts.Page),
		"per_page": strconv.Itoa(opts.PerPage),
	}
	if opts.Orientation != "" {
		params["orientation"] = opts.Orientation
	}

	body, err := c.makeRequest(ctx, logger, "/search/photos", params)
	if err != nil {
		return nil, err
	}

	var result SearchPhotosResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	return &result, nil
}

// RandomPhoto fetches one or more random photos. The endpoint returns a
// single object when count is omitted and an array when it is supplied;
// the shape is decided by inspecting the payload, and both are normalised
// into a slice.
func (c *Client) RandomPhoto(ctx context.Context, logger *logrus.Logger, opts RandomPhotoOptions) ([]Photo, error) {
	params := map[string]string{}
	if opts.Query != "" {
		params["query"] = opts.Query
	}
	if opts.Orientation != "" {
		params["orientation"] = opts.Orientation
	}
	if opts.CountSet {
		params["count"] = strconv.Itoa(opts.Count)
	}

	body, err := c.makeRequest(ctx, logger, "/photos/random", params)
	if err != nil {
		return nil, err
	}

	return decodeRandomPhotos(body)
}

// decodeRandomPhotos normalises the polymorphic random-photo payload into
// a slice of photos.
func decodeRandomPhotos(body []byte) ([]Photo, error) {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var photos []Photo
		if err := json.Unmarshal(body, &photos); err != nil {
			return nil, fmt.Errorf("failed to parse random photos response: %w", err)
		}
		return photos, nil
	}

	var photo Photo
	if err := json.Unmarshal(body, &photo); err != nil {
		return nil, fmt.Errorf("failed to parse random photo response: %w", err)
	}
	return []Photo{photo}, nil
}

// GetPhoto fetches a single photo by its id.
func (c *Client) GetPhoto(ctx context.Context, logger *logrus.Logger, id string) (*Photo, error) {
	body, err := c.makeRequest(ctx, logger, "/photos/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var photo Photo
	if err := json.Unmarshal(body, &photo); err != nil {
		return nil, fmt.Errorf("failed to parse photo response: %w", err)
	}

	return &photo, nil
}

// TrackDownload hits the photo's download_location endpoint. Unsplash
// requires this call whenever a photo is downloaded; the response payload
// is not used.
func (c *Client) TrackDownload(ctx context.Context, logger *logrus.Logger, downloadLocation string) error {
	if downloadLocation == "" {
		return fmt.Errorf("download location is empty")
	}

	logger.WithField("url", downloadLocation).Debug("Tracking photo download")

	_, err := c.get(ctx, logger, downloadLocation)
	if err != nil {
		return fmt.Errorf("failed to track download: %w", err)
	}
	return nil
}
