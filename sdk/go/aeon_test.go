package aeon

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListPostsCaching(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/api/v1/posts", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"posts":[{"id":"1","slug":"hello","title":"Hello"}]}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, CacheTTL: time.Minute})

	posts, err := client.ListPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "hello", posts[0].Slug)

	// Second call is served from cache.
	_, err = client.ListPosts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	client.InvalidateCache()
	_, err = client.ListPosts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestGetPostNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"code":"not_found","message":"Post not found"}}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	_, err := client.GetPost(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubscribeAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/newsletter/subscribe", r.URL.Path)
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":{"code":"already_subscribed","message":"This email is already subscribed"}}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	err := client.Subscribe(context.Background(), SubscribeRequest{Email: "reader@example.com"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "already_subscribed", apiErr.Code)
}

func TestBaseURLNormalization(t *testing.T) {
	client := NewClient(Config{BaseURL: "https://aeon.example.com/"})
	assert.Equal(t, "https://aeon.example.com/api/v1", client.cfg.BaseURL)

	client = NewClient(Config{BaseURL: "https://aeon.example.com/api/v1"})
	assert.Equal(t, "https://aeon.example.com/api/v1", client.cfg.BaseURL)
}
