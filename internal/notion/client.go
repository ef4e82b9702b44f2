// Package notion is a minimal client for the two Notion API calls the
// digest needs: database schema introspection and page creation.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const (
	defaultBaseURL = "https://api.notion.com"
	apiVersion     = "2022-06-28"
)

// APIError reports a non-success response from the Notion API. The raw
// body is kept for diagnosis; Notion's error payloads explain themselves.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("notion API returned %d: %s", e.Status, e.Body)
}

// Client talks to the Notion REST API with bearer-token authentication.
type Client struct {
	// BaseURL can be pointed at a test server; defaults to the public API.
	BaseURL string
	// HTTPClient defaults to http.DefaultClient. No timeout is set here;
	// a scheduled batch run relies on the host to bound it.
	HTTPClient *http.Client

	token string
}

// NewClient creates a client for the given integration token.
func NewClient(token string) *Client {
	return &Client{BaseURL: defaultBaseURL, token: token}
}

// Database is the schema subset the publisher needs: property name to type.
type Database struct {
	Properties map[string]Property `json:"properties"`
}

// Property describes one database column.
type Property struct {
	Type string `json:"type"`
}

// Database fetches a database's schema.
func (c *Client) Database(ctx context.Context, id string) (*Database, error) {
	var db Database
	if err := c.do(ctx, http.MethodGet, "/v1/databases/"+id, nil, &db); err != nil {
		return nil, err
	}
	return &db, nil
}

// CreatePage creates one page. Any non-success status is fatal; there are
// no retries.
func (c *Client) CreatePage(ctx context.Context, req *PageRequest) error {
	return c.do(ctx, http.MethodPost, "/v1/pages", req, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, payload)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", apiVersion)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Body: string(data)}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
