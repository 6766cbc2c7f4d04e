package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(endpoint string) Config {
	cfg := DefaultConfig()
	cfg.Endpoint = endpoint
	cfg.MaxRetries = 0
	return cfg
}

func TestComplete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/generate", r.URL.Path)

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3.2", req.Model)
		assert.False(t, req.Stream)

		json.NewEncoder(w).Encode(generateResponse{
			Model:    "llama3.2",
			Response: `{"status": "READY"}`,
		})
	}))
	defer server.Close()

	client := NewOllamaClient(testConfig(server.URL), nil)
	resp, err := client.Complete(context.Background(), CompleteRequest{
		Task:       TaskInterpret,
		UserPrompt: "pay rent friday",
	})
	require.NoError(t, err)
	assert.Equal(t, `{"status": "READY"}`, resp.Text)
	assert.Equal(t, "llama3.2", resp.Model)
}

func TestComplete_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		json.NewEncoder(w).Encode(generateResponse{Response: "too late"})
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.Tasks[TaskInterpret] = TaskConfig{Temperature: 0.2, MaxTokens: 256, TimeoutMs: 50}

	client := NewOllamaClient(cfg, nil)
	_, err := client.Complete(context.Background(), CompleteRequest{Task: TaskInterpret, UserPrompt: "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTimeout))
}

func TestComplete_ServerDown(t *testing.T) {
	// Reserve a port then close it so nothing is listening.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewOllamaClient(testConfig(url), nil)
	_, err := client.Complete(context.Background(), CompleteRequest{Task: TaskInterpret, UserPrompt: "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestComplete_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewOllamaClient(testConfig(server.URL), nil)
	_, err := client.Complete(context.Background(), CompleteRequest{Task: TaskInterpret, UserPrompt: "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRetryExhausted))
}

func TestComplete_RetriesOnFailure(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "transient", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(generateResponse{Model: "llama3.2", Response: "ok"})
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.MaxRetries = 1

	client := NewOllamaClient(cfg, nil)
	resp, err := client.Complete(context.Background(), CompleteRequest{Task: TaskInterpret, UserPrompt: "x"})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
	assert.Equal(t, int32(2), calls.Load())
}

func TestComplete_ObserverReceivesEvents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(generateResponse{Model: "llama3.2", Response: "ok"})
	}))
	defer server.Close()

	var events []CallEvent
	observer := observerFunc(func(e CallEvent) { events = append(events, e) })

	client := NewOllamaClient(testConfig(server.URL), observer)
	_, err := client.Complete(context.Background(), CompleteRequest{Task: TaskSuggest, UserPrompt: "x"})
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, TaskSuggest, events[0].Task)
	assert.True(t, events[0].Success)
}

func TestAvailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tags", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewOllamaClient(testConfig(server.URL), nil)
	assert.True(t, client.Available(context.Background()))

	server.Close()
	assert.False(t, client.Available(context.Background()))
}

type observerFunc func(CallEvent)

func (f observerFunc) OnCallComplete(e CallEvent) { f(e) }
