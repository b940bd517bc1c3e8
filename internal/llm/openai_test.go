package llm_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travelbuddy/internal/domain"
	"github.com/pkordes/travelbuddy/internal/llm"
)

func TestGenerate_Success(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  Airline: Iberia  \n"}}]}`))
	}))
	defer srv.Close()

	c := llm.New(llm.Config{BaseURL: srv.URL + "/v1/", APIKey: "sk-test", Model: "test-model", System: "be brief"})
	text, err := c.Generate(context.Background(), "suggest flights", 0.6)

	require.NoError(t, err)
	assert.Equal(t, "Airline: Iberia", text)
	assert.Equal(t, "test-model", got["model"])
	assert.InDelta(t, 0.6, got["temperature"], 1e-9)
	msgs, ok := got["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "suggest flights", msgs[1].(map[string]any)["content"])
}

func TestGenerate_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := llm.New(llm.Config{BaseURL: srv.URL}).Generate(context.Background(), "p", 0.5)

	require.ErrorIs(t, err, domain.ErrGeneration)
	assert.ErrorContains(t, err, "status 429")
}

func TestGenerate_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := llm.New(llm.Config{BaseURL: srv.URL}).Generate(context.Background(), "p", 0.5)

	assert.ErrorIs(t, err, domain.ErrGeneration)
}

func TestGenerate_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	_, err := llm.New(llm.Config{BaseURL: srv.URL}).Generate(context.Background(), "p", 0.5)

	require.ErrorIs(t, err, domain.ErrGeneration)
	assert.ErrorContains(t, err, "no choices")
}

func TestGenerate_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	_, err := llm.New(llm.Config{BaseURL: srv.URL, Timeout: 20 * time.Millisecond}).Generate(context.Background(), "p", 0.5)

	assert.ErrorIs(t, err, domain.ErrGeneration)
}
