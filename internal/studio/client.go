package studio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"curriculumstudio/internal/curriculum"
)

// ServerError is a non-2xx answer from /api/chat.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return e.Message
}

// Client calls the studio server's /api/chat endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

var _ Requester = (*Client)(nil)

func NewClient(serverURL string, httpClient *http.Client) (*Client, error) {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	u, err := url.Parse(strings.TrimSpace(serverURL))
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("server url %q must be absolute", serverURL)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/api/chat"
	return &Client{endpoint: u.String(), httpClient: httpClient}, nil
}

func (c *Client) RequestCurriculum(ctx context.Context, topic string) (string, error) {
	payload, err := json.Marshal(struct {
		Topic string `json:"topic"`
	}{Topic: topic})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(body, &errBody)
		msg := errBody.Error
		if msg == "" {
			msg = fmt.Sprintf("Server error: %d", resp.StatusCode)
		}
		return "", &ServerError{StatusCode: resp.StatusCode, Message: msg}
	}

	return curriculum.ExtractContent(body)
}
