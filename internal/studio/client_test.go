package studio

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curriculumstudio/internal/api"
	"curriculumstudio/internal/curriculum"
	"curriculumstudio/internal/metrics"
	"curriculumstudio/internal/providers/openai_compat"
)

func serve(t *testing.T, status int, body string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/chat", r.URL.Path)
		var req struct {
			Topic string `json:"topic"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL+"/", srv.Client())
	require.NoError(t, err)
	return c
}

func TestClientExtractsContent(t *testing.T) {
	c := serve(t, http.StatusOK, `{"choices":[{"message":{"content":"X"}}]}`)

	got, err := c.RequestCurriculum(context.Background(), "Quantum Computing")
	require.NoError(t, err)
	assert.Equal(t, "X", got)
}

func TestClientReadsLargeCurriculum(t *testing.T) {
	content := strings.Repeat("Module ", 1<<20)
	c := serve(t, http.StatusOK, `{"choices":[{"message":{"content":"`+content+`"}}]}`)

	got, err := c.RequestCurriculum(context.Background(), "Quantum Computing")
	require.NoError(t, err)
	assert.Len(t, got, len(content))
}

func TestClientFallsBackWhenChoicesMissing(t *testing.T) {
	c := serve(t, http.StatusOK, `{"object":"chat.completion"}`)

	got, err := c.RequestCurriculum(context.Background(), "Quantum Computing")
	require.NoError(t, err)
	assert.Equal(t, curriculum.FallbackContent, got)
}

func TestClientSurfacesServerErrorMessage(t *testing.T) {
	c := serve(t, http.StatusTooManyRequests, `{"error":"OpenAI error: rate limited"}`)

	_, err := c.RequestCurriculum(context.Background(), "Quantum Computing")
	var serverErr *ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, http.StatusTooManyRequests, serverErr.StatusCode)
	assert.Equal(t, "OpenAI error: rate limited", serverErr.Error())
}

func TestClientStatusFallbackMessage(t *testing.T) {
	c := serve(t, http.StatusBadGateway, `<html>bad gateway</html>`)

	_, err := c.RequestCurriculum(context.Background(), "Quantum Computing")
	require.Error(t, err)
	assert.Equal(t, "Server error: 502", err.Error())
}

func TestClientRejectsInvalidSuccessBody(t *testing.T) {
	c := serve(t, http.StatusOK, `not json`)

	_, err := c.RequestCurriculum(context.Background(), "Quantum Computing")
	assert.Error(t, err)
}

func TestNewClientValidatesURL(t *testing.T) {
	_, err := NewClient("localhost:3000", nil)
	assert.Error(t, err)

	c, err := NewClient("http://studio.local/base", nil)
	require.NoError(t, err)
	assert.Equal(t, "http://studio.local/base/api/chat", c.endpoint)
}

func TestStudioAgainstServer(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"1. Qubits\n2. Gates"}}]}`))
	}))
	defer upstream.Close()

	chat := api.NewChatHandler(api.ChatConfig{
		Provider: openai_compat.New(openai_compat.Config{BaseURL: upstream.URL, APIKey: "sk-test", HTTPClient: upstream.Client()}),
		APIKey:   "sk-test",
		Logger:   zerolog.Nop(),
		Metrics:  metrics.New(prometheus.NewRegistry()),
	})
	server := httptest.NewServer(api.NewRouter(api.RouterConfig{
		Chat:    chat,
		Assets:  fstest.MapFS{"index.html": {Data: []byte("<html></html>")}},
		Metrics: http.NotFoundHandler(),
	}))
	defer server.Close()

	client, err := NewClient(server.URL, server.Client())
	require.NoError(t, err)

	s := New(Config{Requester: client, StageDelays: []time.Duration{time.Millisecond, time.Millisecond}})
	s.SetTopic("Quantum Computing")
	require.NoError(t, s.Generate(context.Background()))

	st := s.Snapshot()
	assert.Equal(t, StageGeneratingCurriculum, st.Stage)
	assert.Equal(t, "1. Qubits\n2. Gates", st.Curriculum)
	assert.False(t, st.IsLoading)
	assert.Empty(t, st.Error)
}
