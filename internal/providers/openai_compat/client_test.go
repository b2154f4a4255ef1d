package openai_compat

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"curriculumstudio/internal/providers"
)

func TestBuildPayloadChatCompletions(t *testing.T) {
	c := New(Config{BaseURL: "https://api.x.ai/v1"})

	body, endpoint, err := c.buildPayload(providers.ChatRequest{
		Model:        "grok-beta",
		SystemPrompt: "You are concise",
		UserPrompt:   "hello <b>&</b>",
		Temperature:  0.8,
	})
	if err != nil {
		t.Fatalf("build payload: %v", err)
	}
	if endpoint != "https://api.x.ai/v1/chat/completions" {
		t.Fatalf("unexpected endpoint %q", endpoint)
	}

	var payload struct {
		Model       string  `json:"model"`
		Temperature float64 `json:"temperature"`
		Messages    []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.Model != "grok-beta" {
		t.Fatalf("expected model grok-beta, got %q", payload.Model)
	}
	if payload.Temperature != 0.8 {
		t.Fatalf("expected temperature 0.8, got %v", payload.Temperature)
	}
	if len(payload.Messages) != 2 || payload.Messages[0].Role != "system" || payload.Messages[1].Role != "user" {
		t.Fatalf("unexpected messages %#v", payload.Messages)
	}
	if payload.Messages[1].Content != "hello <b>&</b>" {
		t.Fatalf("user content altered: %q", payload.Messages[1].Content)
	}
}

func TestBuildEndpointURLDefaultsAndFullPath(t *testing.T) {
	if got, _ := New(Config{}).buildEndpointURL(); got != "https://api.openai.com/v1/chat/completions" {
		t.Fatalf("unexpected default endpoint %q", got)
	}
	full := "http://proxy.local/custom/chat/completions"
	if got, _ := New(Config{BaseURL: full}).buildEndpointURL(); got != full {
		t.Fatalf("unexpected endpoint %q", got)
	}
}

func TestChatRelaysSuccessBody(t *testing.T) {
	const upstream = `{"id":"cmpl-1","choices":[{"message":{"role":"assistant","content":"X"}}]}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("unexpected authorization header %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("unexpected content type %q", got)
		}
		_, _ = io.Copy(io.Discard, r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(upstream))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL + "/v1", APIKey: "sk-test", HTTPClient: srv.Client()})
	resp, err := c.Chat(context.Background(), providers.ChatRequest{Model: "m", UserPrompt: "hi"})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if string(resp.Body) != upstream {
		t.Fatalf("body not relayed verbatim: %s", resp.Body)
	}
}

func TestChatReturnsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("rate limited"))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, APIKey: "k", HTTPClient: srv.Client()})
	_, err := c.Chat(context.Background(), providers.ChatRequest{Model: "m", UserPrompt: "hi"})

	var statusErr *providers.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusTooManyRequests || statusErr.Body != "rate limited" {
		t.Fatalf("unexpected status error %#v", statusErr)
	}
}

func TestChatRelaysLargeBodiesWhole(t *testing.T) {
	content := strings.Repeat("a", 5<<20)
	upstream := `{"choices":[{"message":{"role":"assistant","content":"` + content + `"}}]}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(upstream))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, HTTPClient: srv.Client()})
	resp, err := c.Chat(context.Background(), providers.ChatRequest{Model: "m", UserPrompt: "hi"})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if len(resp.Body) != len(upstream) {
		t.Fatalf("expected %d bytes, got %d", len(upstream), len(resp.Body))
	}
}

func TestChatKeepsLargeErrorBodies(t *testing.T) {
	body := strings.Repeat("e", 5<<20)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, HTTPClient: srv.Client()})
	_, err := c.Chat(context.Background(), providers.ChatRequest{Model: "m", UserPrompt: "hi"})
	var statusErr *providers.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if len(statusErr.Body) != len(body) {
		t.Fatalf("error body truncated to %d bytes", len(statusErr.Body))
	}
}

func TestChatRejectsNonJSONSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>oops</html>"))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, HTTPClient: srv.Client()})
	_, err := c.Chat(context.Background(), providers.ChatRequest{Model: "m", UserPrompt: "hi"})
	if err == nil {
		t.Fatalf("expected decode error")
	}
	var statusErr *providers.StatusError
	if errors.As(err, &statusErr) {
		t.Fatalf("decode failure must not be a status error")
	}
}

func TestChatNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := New(Config{BaseURL: url})
	if _, err := c.Chat(context.Background(), providers.ChatRequest{Model: "m", UserPrompt: "hi"}); err == nil {
		t.Fatalf("expected network error")
	}
}
