// Package aeon is a small client for the Aeon website public API. It is
// intended for static-site generators and companion tools that render or
// mirror the site content.
package aeon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Config holds the configuration for the Aeon client.
type Config struct {
	// BaseURL is the root URL of the Aeon server.
	// Examples: "https://aeon.example.com" or "https://aeon.example.com/api/v1"
	// The "/api/v1" suffix is appended automatically if missing.
	BaseURL string

	// CacheTTL controls how long fetched post lists are cached in memory
	// to reduce calls to the server. Set to 0 to disable caching.
	// Default: 2 minutes
	CacheTTL time.Duration

	// HTTPClient is an optional custom HTTP client.
	// If nil, a default client with 10s timeout is used.
	HTTPClient *http.Client
}

func (c *Config) defaults() {
	if c.CacheTTL == 0 {
		c.CacheTTL = 2 * time.Minute
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")
	if !strings.HasSuffix(c.BaseURL, "/api/v1") {
		c.BaseURL = c.BaseURL + "/api/v1"
	}
}

// Client is the Aeon SDK client.
type Client struct {
	cfg   Config
	cache *postCache
}

// NewClient creates a new Aeon client with the given configuration.
func NewClient(cfg Config) *Client {
	cfg.defaults()
	return &Client{
		cfg:   cfg,
		cache: newPostCache(),
	}
}

// ListPosts returns the published posts, newest first. Results are
// cached according to CacheTTL to reduce network calls.
func (c *Client) ListPosts(ctx context.Context) ([]Post, error) {
	if c.cfg.CacheTTL > 0 {
		if posts, ok := c.cache.get(); ok {
			return posts, nil
		}
	}

	body, err := c.get(ctx, "/posts")
	if err != nil {
		return nil, err
	}

	var resp struct {
		Posts []Post `json:"posts"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("aeon: failed to parse posts: %w", err)
	}

	if c.cfg.CacheTTL > 0 {
		c.cache.set(resp.Posts, c.cfg.CacheTTL)
	}
	return resp.Posts, nil
}

// GetPost returns a single published post by slug.
func (c *Client) GetPost(ctx context.Context, slug string) (*Post, error) {
	body, err := c.get(ctx, "/posts/"+slug)
	if err != nil {
		return nil, err
	}

	var post Post
	if err := json.Unmarshal(body, &post); err != nil {
		return nil, fmt.Errorf("aeon: failed to parse post: %w", err)
	}
	return &post, nil
}

// ListComments returns the approved comments on a post.
func (c *Client) ListComments(ctx context.Context, postID string) ([]Comment, error) {
	body, err := c.get(ctx, "/posts/"+postID+"/comments")
	if err != nil {
		return nil, err
	}

	var resp struct {
		Comments []Comment `json:"comments"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("aeon: failed to parse comments: %w", err)
	}
	return resp.Comments, nil
}

// AddComment submits a comment for moderation.
func (c *Client) AddComment(ctx context.Context, postID string, req CommentRequest) (*Comment, error) {
	body, err := c.post(ctx, "/posts/"+postID+"/comments", req)
	if err != nil {
		return nil, err
	}

	var comment Comment
	if err := json.Unmarshal(body, &comment); err != nil {
		return nil, fmt.Errorf("aeon: failed to parse comment: %w", err)
	}
	return &comment, nil
}

// Subscribe adds an email address to the newsletter list.
func (c *Client) Subscribe(ctx context.Context, req SubscribeRequest) error {
	_, err := c.post(ctx, "/newsletter/subscribe", req)
	return err
}

// Unsubscribe removes an email address from the newsletter list.
func (c *Client) Unsubscribe(ctx context.Context, email string) error {
	_, err := c.post(ctx, "/newsletter/unsubscribe", map[string]string{"email": email})
	return err
}

// SubmitInquiry sends a contact form submission.
func (c *Client) SubmitInquiry(ctx context.Context, req InquiryRequest) error {
	_, err := c.post(ctx, "/contact", req)
	return err
}

// InvalidateCache drops the cached post list. Call after publishing so
// the next ListPosts reflects the change immediately.
func (c *Client) InvalidateCache() {
	c.cache.clear()
}

// get sends a GET request to the Aeon API.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("aeon: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req)
}

// post sends a POST request to the Aeon API.
func (c *Client) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	var bodyReader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("aeon: failed to marshal request: %w", err)
		}
		bodyReader = strings.NewReader(string(data))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("aeon: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("aeon: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("aeon: failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return nil, parseAPIError(resp.StatusCode, body)
	}

	return body, nil
}

// postCache provides in-memory caching for the published post list.
type postCache struct {
	mu        sync.RWMutex
	posts     []Post
	expiresAt time.Time
}

func newPostCache() *postCache {
	return &postCache{}
}

func (pc *postCache) get() ([]Post, bool) {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	if pc.posts == nil || time.Now().After(pc.expiresAt) {
		return nil, false
	}
	return pc.posts, true
}

func (pc *postCache) set(posts []Post, ttl time.Duration) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.posts = posts
	pc.expiresAt = time.Now().Add(ttl)
}

func (pc *postCache) clear() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.posts = nil
}
