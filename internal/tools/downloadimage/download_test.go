package downloadimage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mcpkit/unsplash-mcp/internal/unsplash"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	getCalls      int
	getID         string
	getPhoto      *unsplash.Photo
	getErr        error
	trackCalls    int
	trackLocation string
	trackErr      error
}

func (f *fakeAPI) SearchPhotos(ctx context.Context, logger *logrus.Logger, opts unsplash.SearchOptions) (*unsplash.SearchPhotosResult, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f *fakeAPI) RandomPhoto(ctx context.Context, logger *logrus.Logger, opts unsplash.RandomPhotoOptions) ([]unsplash.Photo, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f *fakeAPI) GetPhoto(ctx context.Context, logger *logrus.Logger, id string) (*unsplash.Photo, error) {
	f.getCalls++
	f.getID = id
	return f.getPhoto, f.getErr
}

func (f *fakeAPI) TrackDownload(ctx context.Context, logger *logrus.Logger, downloadLocation string) error {
	f.trackCalls++
	f.trackLocation = downloadLocation
	return f.trackErr
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func textContent(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	tc, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok, "expected text content")
	return tc.Text
}

func decodeOutcome(t *testing.T, result *mcp.CallToolResult) Outcome {
	t.Helper()
	var outcome Outcome
	require.NoError(t, json.Unmarshal([]byte(textContent(t, result)), &outcome))
	return outcome
}

// imageServer serves distinct bodies per quality path so tests can verify
// which variant was fetched.
func imageServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/full":
			_, _ = w.Write([]byte("full-quality-image-bytes"))
		case "/regular":
			_, _ = w.Write([]byte("regular-image-bytes"))
		case "/missing":
			http.NotFound(w, r)
		default:
			_, _ = w.Write([]byte("image-bytes"))
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func photoFor(server *httptest.Server) *unsplash.Photo {
	return &unsplash.Photo{
		ID: "abc123",
		URLs: unsplash.PhotoURLs{
			Raw:     server.URL + "/raw",
			Full:    server.URL + "/full",
			Regular: server.URL + "/regular",
			Small:   server.URL + "/small",
			Thumb:   server.URL + "/thumb",
		},
		Links: unsplash.PhotoLinks{
			DownloadLocation: server.URL + "/track/abc123",
		},
	}
}

func TestDownload_MissingArguments(t *testing.T) {
	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{name: "no arguments", args: map[string]interface{}{}},
		{name: "missing sourceType", args: map[string]interface{}{
			"imageSource":     "https://images.example/a.jpg",
			"destinationPath": "/tmp/a.jpg",
		}},
		{name: "missing destinationPath", args: map[string]interface{}{
			"imageSource": "https://images.example/a.jpg",
			"sourceType":  "url",
		}},
		{name: "invalid sourceType", args: map[string]interface{}{
			"imageSource":     "https://images.example/a.jpg",
			"sourceType":      "path",
			"destinationPath": "/tmp/a.jpg",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeAPI{}
			tool := NewTool(fake)

			result, err := tool.Execute(context.Background(), testLogger(), tt.args)
			require.NoError(t, err)

			assert.True(t, result.IsError)
			assert.Zero(t, fake.getCalls, "provider must not be called on validation failure")
			assert.Zero(t, fake.trackCalls)
		})
	}
}

func TestDownload_ByID_CreatesDirectoryAndWrites(t *testing.T) {
	server := imageServer(t)
	fake := &fakeAPI{getPhoto: photoFor(server)}
	tool := NewTool(fake)

	dest := filepath.Join(t.TempDir(), "nested", "dir", "photo.jpg")

	result, err := tool.Execute(context.Background(), testLogger(), map[string]interface{}{
		"imageSource":     "abc123",
		"sourceType":      "id",
		"destinationPath": dest,
	})
	require.NoError(t, err)
	require.False(t, result.IsError, textContent(t, result))

	assert.Equal(t, "abc123", fake.getID)
	assert.Equal(t, 1, fake.trackCalls, "download tracking must fire for id downloads")
	assert.Equal(t, server.URL+"/track/abc123", fake.trackLocation)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "regular-image-bytes", string(data), "default quality is regular")

	outcome := decodeOutcome(t, result)
	assert.True(t, outcome.Success)
	assert.Equal(t, dest, outcome.FilePath)
	assert.Equal(t, len(data), outcome.FileSizeBytes)

	// Re-running against the same path overwrites without error
	result, err = tool.Execute(context.Background(), testLogger(), map[string]interface{}{
		"imageSource":     "abc123",
		"sourceType":      "id",
		"destinationPath": dest,
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)
}

func TestDownload_QualitySelection(t *testing.T) {
	server := imageServer(t)

	tests := []struct {
		name     string
		quality  interface{}
		expected string
	}{
		{name: "full quality selects full URL", quality: "full", expected: "full-quality-image-bytes"},
		{name: "unrecognised quality falls back to regular", quality: "enormous", expected: "regular-image-bytes"},
		{name: "omitted quality falls back to regular", quality: nil, expected: "regular-image-bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeAPI{getPhoto: photoFor(server)}
			tool := NewTool(fake)

			dest := filepath.Join(t.TempDir(), "photo.jpg")
			args := map[string]interface{}{
				"imageSource":     "abc123",
				"sourceType":      "id",
				"destinationPath": dest,
			}
			if tt.quality != nil {
				args["quality"] = tt.quality
			}

			result, err := tool.Execute(context.Background(), testLogger(), args)
			require.NoError(t, err)
			require.False(t, result.IsError, textContent(t, result))

			data, err := os.ReadFile(dest)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(data))
		})
	}
}

func TestDownload_ByURL_SkipsTracking(t *testing.T) {
	server := imageServer(t)
	fake := &fakeAPI{}
	tool := NewTool(fake)

	dest := filepath.Join(t.TempDir(), "photo.jpg")

	result, err := tool.Execute(context.Background(), testLogger(), map[string]interface{}{
		"imageSource":     server.URL + "/full",
		"sourceType":      "url",
		"destinationPath": dest,
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	assert.Zero(t, fake.getCalls, "url downloads must not resolve photo metadata")
	assert.Zero(t, fake.trackCalls, "url downloads must not fire the tracking call")

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "full-quality-image-bytes", string(data))
}

func TestDownload_TrackingFailureIsBestEffort(t *testing.T) {
	server := imageServer(t)
	fake := &fakeAPI{
		getPhoto: photoFor(server),
		trackErr: fmt.Errorf("tracking endpoint unavailable"),
	}
	tool := NewTool(fake)

	dest := filepath.Join(t.TempDir(), "photo.jpg")

	result, err := tool.Execute(context.Background(), testLogger(), map[string]interface{}{
		"imageSource":     "abc123",
		"sourceType":      "id",
		"destinationPath": dest,
	})
	require.NoError(t, err)

	assert.False(t, result.IsError, "a failed tracking call must not abort the download")
	assert.Equal(t, 1, fake.trackCalls)
	assert.FileExists(t, dest)
}

func TestDownload_FetchFailureReportsStatus(t *testing.T) {
	server := imageServer(t)
	fake := &fakeAPI{}
	tool := NewTool(fake)

	result, err := tool.Execute(context.Background(), testLogger(), map[string]interface{}{
		"imageSource":     server.URL + "/missing",
		"sourceType":      "url",
		"destinationPath": filepath.Join(t.TempDir(), "photo.jpg"),
	})
	require.NoError(t, err)

	assert.True(t, result.IsError)
	text := textContent(t, result)
	assert.Contains(t, text, "404")
	assert.Contains(t, text, http.StatusText(http.StatusNotFound))
}

func TestDownload_ProviderErrorOnGetPhoto(t *testing.T) {
	fake := &fakeAPI{getErr: fmt.Errorf("unsplash API error: Couldn't find Photo")}
	tool := NewTool(fake)

	result, err := tool.Execute(context.Background(), testLogger(), map[string]interface{}{
		"imageSource":     "missing",
		"sourceType":      "id",
		"destinationPath": filepath.Join(t.TempDir(), "photo.jpg"),
	})
	require.NoError(t, err)

	assert.True(t, result.IsError)
	assert.Contains(t, textContent(t, result), "Couldn't find Photo")
	assert.Zero(t, fake.trackCalls, "tracking must not fire when resolution fails")
}
