package indexnow_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pukadigital/content-hub/internal/indexnow"
)

func TestClient_Submit(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	client := indexnow.NewClient(indexnow.Config{
		Endpoint: srv.URL,
		Key:      "test-key",
		SiteURL:  "https://pukadigital.com",
	})

	err := client.Submit(context.Background(), []string{
		"https://pukadigital.com/blog/welcome-post",
		"https://pukadigital.com/blog/second-post",
	})
	require.NoError(t, err)

	assert.Equal(t, "pukadigital.com", got["host"])
	assert.Equal(t, "test-key", got["key"])
	assert.Len(t, got["urlList"], 2)
}

func TestClient_Submit_DisabledWithoutKey(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))
	t.Cleanup(srv.Close)

	client := indexnow.NewClient(indexnow.Config{Endpoint: srv.URL, SiteURL: "https://pukadigital.com"})

	assert.False(t, client.IsEnabled())
	assert.NoError(t, client.Submit(context.Background(), []string{"https://pukadigital.com/"}))
	assert.False(t, called)
}

func TestClient_Submit_EmptyBatchIsNoOp(t *testing.T) {
	client := indexnow.NewClient(indexnow.Config{
		Endpoint: "http://127.0.0.1:1", // would fail if dialed
		Key:      "test-key",
		SiteURL:  "https://pukadigital.com",
	})

	assert.NoError(t, client.Submit(context.Background(), nil))
}

func TestClient_CircuitBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	client := indexnow.NewClient(indexnow.Config{
		Endpoint: srv.URL,
		Key:      "test-key",
		SiteURL:  "https://pukadigital.com",
	})

	urls := []string{"https://pukadigital.com/blog/welcome-post"}
	for i := 0; i < 5; i++ {
		err := client.Submit(context.Background(), urls)
		require.Error(t, err)
	}

	assert.True(t, client.CircuitOpen())
	err := client.Submit(context.Background(), urls)
	assert.ErrorIs(t, err, indexnow.ErrCircuitOpen)
}
