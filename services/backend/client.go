// File: services/backend/client.go
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"bookview/models"

	"go.uber.org/zap"
)

// StatusError reports a non-success HTTP status from the backend.
type StatusError struct {
	Status int
	Path   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned status %d for %s", e.Status, e.Path)
}

// Client talks to the booking backend REST API. It carries no state of its
// own; credentials are passed per call and attached as bearer tokens.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

// ListBusinesses fetches the full published-business catalog.
func (c *Client) ListBusinesses(ctx context.Context) ([]models.Business, error) {
	var out []models.Business
	if err := c.getJSON(ctx, "/businesses/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListCategories fetches the category catalog.
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	if err := c.getJSON(ctx, "/categories/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AISearch runs the backend's natural-language business search and returns
// the matching businesses in relevance order.
func (c *Client) AISearch(ctx context.Context, query string) ([]models.Business, error) {
	var out []models.Business
	body := map[string]string{"query": query}
	if err := c.postJSON(ctx, "/businesses/ai-search", "", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SendChat forwards one user turn plus the conversation history to the
// chatbot endpoint.
func (c *Client) SendChat(ctx context.Context, token string, req models.ChatRequest) (*models.ChatReply, error) {
	var out models.ChatReply
	if err := c.postJSON(ctx, "/chatbot/chat", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Document is a fetched binary resource.
type Document struct {
	Data        []byte
	ContentType string
}

// FetchDocument retrieves a generated document (an appointment PDF) with
// the bearer credential attached. docURL may be backend-relative, which is
// how the chatbot reports pdf_url.
func (c *Client) FetchDocument(ctx context.Context, token, docURL string) (*Document, error) {
	target := docURL
	if strings.HasPrefix(docURL, "/") {
		target = c.baseURL + docURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &StatusError{Status: resp.StatusCode, Path: docURL}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/pdf"
	}
	return &Document{Data: data, ContentType: contentType}, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, path, out)
}

func (c *Client) postJSON(ctx context.Context, path, token string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return c.do(req, path, out)
}

func (c *Client) do(req *http.Request, path string, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Warn("Backend returned non-success status",
			zap.String("path", path), zap.Int("status", resp.StatusCode))
		return &StatusError{Status: resp.StatusCode, Path: path}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
