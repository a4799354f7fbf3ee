// Package chroma is a thin REST client for the Chroma vector database.
// It covers only the surface this module uses: collection management plus
// add/get/query/delete on a collection's rows. Embeddings are always
// supplied by the caller; collections are created without a server-side
// embedding function.
package chroma

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const (
	// DefaultBaseURL is used when CHROMA_URL is not set.
	DefaultBaseURL = "http://localhost:8000"

	baseURLEnv = "CHROMA_URL"
	apiPrefix  = "/api/v1"
)

// ErrNotFound marks a collection lookup that came back 404. The collection
// manager treats it as the creation trigger, not a fatal error.
var ErrNotFound = errors.New("chroma: not found")

// HTTPError carries the upstream status and response body of a non-success
// reply, so callers can surface the failure verbatim.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("chroma: %s: %s", e.Status, e.Body)
}

// Client talks to one Chroma server. It holds no per-collection state; a
// Collection handle is obtained per operation.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient builds a client for the given base URL. An empty baseURL falls
// back to CHROMA_URL, then to DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = os.Getenv(baseURLEnv)
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 2 * time.Minute},
	}
}

type collectionInfo struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Metadata map[string]any `json:"metadata"`
}

// CreateCollection creates a named collection and returns its handle.
func (c *Client) CreateCollection(ctx context.Context, name string, metadata map[string]any) (*Collection, error) {
	body := map[string]any{
		"name":          name,
		"get_or_create": false,
	}
	if len(metadata) > 0 {
		body["metadata"] = metadata
	}

	var info collectionInfo
	if err := c.doRequest(ctx, http.MethodPost, "/collections", body, &info); err != nil {
		return nil, fmt.Errorf("CreateCollection %q: %w", name, err)
	}
	return &Collection{client: c, ID: info.ID, Name: info.Name}, nil
}

// GetCollection returns a handle to an existing collection. A 404 comes back
// wrapped around ErrNotFound.
func (c *Client) GetCollection(ctx context.Context, name string) (*Collection, error) {
	var info collectionInfo
	if err := c.doRequest(ctx, http.MethodGet, "/collections/"+name, nil, &info); err != nil {
		return nil, fmt.Errorf("GetCollection %q: %w", name, err)
	}
	return &Collection{client: c, ID: info.ID, Name: info.Name}, nil
}

// DeleteCollection removes a collection and all of its rows.
func (c *Client) DeleteCollection(ctx context.Context, name string) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/collections/"+name, nil, nil); err != nil {
		return fmt.Errorf("DeleteCollection %q: %w", name, err)
	}
	return nil
}

// EnsureCollection is the idempotent get-or-create used before every store
// operation. Any lookup failure triggers creation; only creation failure is
// returned to the caller.
func (c *Client) EnsureCollection(ctx context.Context, name string) (*Collection, error) {
	col, err := c.GetCollection(ctx, name)
	if err == nil {
		return col, nil
	}
	return c.CreateCollection(ctx, name, map[string]any{
		"description": name + " storage with embeddings",
	})
}

// ResetCollection destructively recreates a collection: delete-if-exists
// then create. Deletion failure (including "did not exist") is swallowed;
// creation failure is fatal. Initialization tooling only.
func (c *Client) ResetCollection(ctx context.Context, name string) (*Collection, error) {
	_ = c.DeleteCollection(ctx, name)
	return c.CreateCollection(ctx, name, map[string]any{
		"description": name + " storage with embeddings",
	})
}

func (c *Client) doRequest(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(bytes.TrimSpace(raw)),
		}
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decoding response body: %w", err)
		}
	}
	return nil
}
