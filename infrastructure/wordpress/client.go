// Package wordpress implements the CMS content publisher over the WordPress
// REST API using application-password authentication.
package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ccsdigital/frameworkhub/domain/service"
	"github.com/ccsdigital/frameworkhub/internal/config"
)

// ErrNotConfigured indicates the WordPress connection settings are missing.
var ErrNotConfigured = errors.New("wordpress not configured")

// Client provisions framework and lot content entries via the WordPress REST
// API. It implements service.ContentPublisher.
type Client struct {
	cfg        config.WordPressConfig
	httpClient *http.Client
}

// NewClient creates a Client.
func NewClient(cfg config.WordPressConfig) (*Client, error) {
	if !cfg.IsConfigured() {
		return nil, ErrNotConfigured
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout()},
	}, nil
}

var _ service.ContentPublisher = (*Client)(nil)

type entryPayload struct {
	Title  string `json:"title"`
	Status string `json:"status"`
}

type entryResponse struct {
	ID int64 `json:"id"`
}

// CreateEntry creates a content entry of the given type and returns the id
// the CMS assigned to it. Entries are created in draft so editors publish
// them once the body content is written.
func (c *Client) CreateEntry(ctx context.Context, entryType service.ContentType, title string) (int64, error) {
	body, status, err := c.send(ctx, http.MethodPost, c.typePath(entryType), entryPayload{
		Title:  title,
		Status: "draft",
	})
	if err != nil {
		return 0, err
	}
	if status != http.StatusCreated && status != http.StatusOK {
		return 0, fmt.Errorf("create %s entry: status %d: %s", entryType, status, truncate(body))
	}

	var entry entryResponse
	if err := json.Unmarshal(body, &entry); err != nil {
		return 0, fmt.Errorf("create %s entry: decode response: %w", entryType, err)
	}
	if entry.ID == 0 {
		return 0, fmt.Errorf("create %s entry: response missing id", entryType)
	}
	return entry.ID, nil
}

// UpdateTitle updates the title of an existing content entry. Nothing else
// is sent: the body fields are editorially owned once the entry exists.
func (c *Client) UpdateTitle(ctx context.Context, entryType service.ContentType, id int64, title string) error {
	path := fmt.Sprintf("%s/%d", c.typePath(entryType), id)
	body, status, err := c.send(ctx, http.MethodPost, path, map[string]string{"title": title})
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("update %s entry %d title: status %d: %s", entryType, id, status, truncate(body))
	}
	return nil
}

func (c *Client) typePath(entryType service.ContentType) string {
	return fmt.Sprintf("/wp-json/wp/v2/%s", entryType)
}

func (c *Client) send(ctx context.Context, method, path string, payload any) ([]byte, int, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("encode payload: %w", err)
	}

	url := strings.TrimSuffix(c.cfg.BaseURL(), "/") + path
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(encoded))
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.cfg.Username(), c.cfg.AppPassword())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("wordpress request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("read response: %w", err)
	}
	return body, resp.StatusCode, nil
}

func truncate(body []byte) string {
	const max = 200
	s := string(body)
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
