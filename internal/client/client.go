package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mkravets/upkeep/internal/conditions"
	"github.com/mkravets/upkeep/internal/forms"
)

// Client is an HTTP client for the upkeep API
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// NewClient creates a new API client
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		blob, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(blob)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// CreateTemplate creates a new form template
func (c *Client) CreateTemplate(ctx context.Context, t forms.Template) (*forms.Template, error) {
	var created forms.Template
	if err := c.do(ctx, http.MethodPost, "/v1/templates", t, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateTemplate replaces an existing template
func (c *Client) UpdateTemplate(ctx context.Context, t forms.Template) (*forms.Template, error) {
	var updated forms.Template
	if err := c.do(ctx, http.MethodPut, "/v1/templates/"+t.ID, t, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// GetTemplate retrieves a single template by ID
func (c *Client) GetTemplate(ctx context.Context, id string) (*forms.Template, error) {
	var t forms.Template
	if err := c.do(ctx, http.MethodGet, "/v1/templates/"+id, nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTemplates retrieves all templates
func (c *Client) ListTemplates(ctx context.Context) ([]forms.Template, error) {
	var result struct {
		Templates []forms.Template `json:"templates"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/templates", nil, &result); err != nil {
		return nil, err
	}
	return result.Templates, nil
}

// DeleteTemplate deletes a template by ID
func (c *Client) DeleteTemplate(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/v1/templates/"+id, nil, nil)
}

// Snapshot retrieves the full template snapshot
func (c *Client) Snapshot(ctx context.Context) (*forms.Snapshot, error) {
	var snap forms.Snapshot
	if err := c.do(ctx, http.MethodGet, "/v1/templates/snapshot", nil, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Resolve evaluates a template's conditions against the given values and
// returns the render state of every field
func (c *Client) Resolve(ctx context.Context, id string, values conditions.FormValues) (map[string]conditions.FieldState, error) {
	req := map[string]any{"values": values}
	var result struct {
		Fields map[string]conditions.FieldState `json:"fields"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/templates/"+id+"/resolve", req, &result); err != nil {
		return nil, err
	}
	return result.Fields, nil
}

// ListSubmissions retrieves submissions for a template
func (c *Client) ListSubmissions(ctx context.Context, templateID string) ([]forms.Submission, error) {
	var result struct {
		Submissions []forms.Submission `json:"submissions"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/templates/"+templateID+"/submissions", nil, &result); err != nil {
		return nil, err
	}
	return result.Submissions, nil
}
