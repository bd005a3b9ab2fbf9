package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"newscast/curation"
)

// SessionAPI is what the console needs from the API server.
type SessionAPI interface {
	CreateSession(ctx context.Context) (curation.View, error)
	Session(ctx context.Context, id string, refresh bool) (curation.View, error)
	SetFilters(ctx context.Context, id, status, category string) (curation.View, error)
	Toggle(ctx context.Context, id, docID string) (curation.View, error)
	SelectAll(ctx context.Context, id string) (curation.View, error)
	Clear(ctx context.Context, id string) (curation.View, error)
	Apply(ctx context.Context, id string) (curation.View, int, error)
	Delete(ctx context.Context, id string) (curation.View, []string, error)
}

// APIClient is a thin HTTP client for the newscast API
type APIClient struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewAPIClient(baseURL, token string) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type sessionEnvelope struct {
	Session curation.View `json:"session"`
	Updated int           `json:"updated"`
	Deleted []string      `json:"deleted"`
}

func (c *APIClient) CreateSession(ctx context.Context) (curation.View, error) {
	var v curation.View
	err := c.do(ctx, http.MethodPost, "/api/sessions", nil, &v)
	return v, err
}

func (c *APIClient) Session(ctx context.Context, id string, refresh bool) (curation.View, error) {
	path := "/api/sessions/" + url.PathEscape(id)
	if refresh {
		path += "?refresh=true"
	}
	var v curation.View
	err := c.do(ctx, http.MethodGet, path, nil, &v)
	return v, err
}

func (c *APIClient) SetFilters(ctx context.Context, id, status, category string) (curation.View, error) {
	var v curation.View
	body := map[string]string{"status": status, "category": category}
	err := c.do(ctx, http.MethodPut, c.sessionPath(id, "filters"), body, &v)
	return v, err
}

func (c *APIClient) Toggle(ctx context.Context, id, docID string) (curation.View, error) {
	var env sessionEnvelope
	err := c.do(ctx, http.MethodPost, c.sessionPath(id, "toggle/"+url.PathEscape(docID)), nil, &env)
	return env.Session, err
}

func (c *APIClient) SelectAll(ctx context.Context, id string) (curation.View, error) {
	var env sessionEnvelope
	err := c.do(ctx, http.MethodPost, c.sessionPath(id, "select-all"), nil, &env)
	return env.Session, err
}

func (c *APIClient) Clear(ctx context.Context, id string) (curation.View, error) {
	var v curation.View
	err := c.do(ctx, http.MethodPost, c.sessionPath(id, "clear"), nil, &v)
	return v, err
}

func (c *APIClient) Apply(ctx context.Context, id string) (curation.View, int, error) {
	var env sessionEnvelope
	err := c.do(ctx, http.MethodPost, c.sessionPath(id, "apply"), map[string]string{"status": "selected"}, &env)
	return env.Session, env.Updated, err
}

func (c *APIClient) Delete(ctx context.Context, id string) (curation.View, []string, error) {
	var env sessionEnvelope
	err := c.do(ctx, http.MethodPost, c.sessionPath(id, "delete"), map[string]bool{"confirm": true}, &env)
	return env.Session, env.Deleted, err
}

func (c *APIClient) sessionPath(id, action string) string {
	return "/api/sessions/" + url.PathEscape(id) + "/" + action
}

func (c *APIClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	raw, _ := io.ReadAll(resp.Body)
	var body struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		if body.Details != "" {
			return fmt.Errorf("server returned %d: %s: %s", resp.StatusCode, body.Error, body.Details)
		}
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, body.Error)
	}
	return fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
}
