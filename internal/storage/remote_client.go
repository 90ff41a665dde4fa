// ABOUTME: HTTP client for the remote post API (JSONPlaceholder /posts format).
// ABOUTME: Maps wire posts to feed posts and skips network updates for local-only ids.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/2389-research/minigram/internal/metrics"
	"github.com/2389-research/minigram/internal/models"
)

// DefaultAPIURL is the public demo API the feed talks to by default.
const DefaultAPIURL = "https://jsonplaceholder.typicode.com"

// FallbackImageURL returns the placeholder image used for posts without one.
func FallbackImageURL(id int) string {
	return fmt.Sprintf("https://picsum.photos/600/600?random=%d", id)
}

// RemoteClient talks to the remote post API.
type RemoteClient struct {
	apiURL           string
	client           *http.Client
	localIDThreshold int
	listLimit        int
	log              zerolog.Logger
	metrics          *metrics.Metrics
	now              func() time.Time
}

// RemoteOption configures optional RemoteClient settings.
type RemoteOption func(*RemoteClient)

// WithLocalIDThreshold sets the id above which updates never reach the network.
func WithLocalIDThreshold(threshold int) RemoteOption {
	return func(r *RemoteClient) {
		r.localIDThreshold = threshold
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) RemoteOption {
	return func(r *RemoteClient) {
		r.client.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) RemoteOption {
	return func(r *RemoteClient) {
		r.client = c
	}
}

// WithListLimit caps how many posts ListPosts returns. Zero means no cap.
func WithListLimit(limit int) RemoteOption {
	return func(r *RemoteClient) {
		r.listLimit = limit
	}
}

// WithLogger sets the logger for request failures.
func WithLogger(l zerolog.Logger) RemoteOption {
	return func(r *RemoteClient) {
		r.log = l
	}
}

// WithMetrics records request counts and latency.
func WithMetrics(m *metrics.Metrics) RemoteOption {
	return func(r *RemoteClient) {
		r.metrics = m
	}
}

// WithClock overrides the clock used for client-side timestamps.
func WithClock(now func() time.Time) RemoteOption {
	return func(r *RemoteClient) {
		r.now = now
	}
}

// NewRemoteClient creates a remote client for the given base URL.
func NewRemoteClient(apiURL string, opts ...RemoteOption) *RemoteClient {
	apiURL = strings.TrimRight(apiURL, "/")
	apiURL = strings.TrimSuffix(apiURL, "/posts")
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	r := &RemoteClient{
		apiURL:           apiURL,
		client:           &http.Client{Timeout: 30 * time.Second},
		localIDThreshold: DefaultLocalIDThreshold,
		log:              zerolog.Nop(),
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// LocalIDThreshold returns the configured local-only id threshold.
func (r *RemoteClient) LocalIDThreshold() int {
	return r.localIDThreshold
}

// IsLocalID reports whether id was assigned client-side.
func (r *RemoteClient) IsLocalID(id int) bool {
	return id > r.localIDThreshold
}

// remotePost maps a single post from the remote API.
type remotePost struct {
	UserID   int    `json:"userId"`
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	ImageURL string `json:"imageUrl,omitempty"`
	Author   string `json:"author,omitempty"`
}

// remoteCreatePayload is the JSON body sent on create. The API keeps title/body;
// author and imageUrl ride along for servers that store them.
type remoteCreatePayload struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	UserID   int    `json:"userId"`
	ImageURL string `json:"imageUrl"`
	Author   string `json:"author"`
}

// remoteUpdatePayload is the JSON body sent on partial update.
type remoteUpdatePayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// remoteIDResponse captures the id echoed back by create and update.
type remoteIDResponse struct {
	ID int `json:"id"`
}

// ListPosts fetches posts from the remote API.
func (r *RemoteClient) ListPosts(ctx context.Context) ([]models.Post, error) {
	var wire []remotePost
	if err := r.do(ctx, "list", http.MethodGet, "/posts", nil, &wire); err != nil {
		return nil, err
	}

	if r.listLimit > 0 && len(wire) > r.listLimit {
		wire = wire[:r.listLimit]
	}

	now := r.now()
	posts := make([]models.Post, 0, len(wire))
	for _, rp := range wire {
		posts = append(posts, r.transform(rp, now))
	}
	return posts, nil
}

// GetPost fetches a single post by id.
func (r *RemoteClient) GetPost(ctx context.Context, id int) (models.Post, error) {
	var rp remotePost
	if err := r.do(ctx, "get", http.MethodGet, fmt.Sprintf("/posts/%d", id), nil, &rp); err != nil {
		return models.Post{}, err
	}
	return r.transform(rp, r.now()), nil
}

// CreatePost sends a new post to the remote API. The server id always wins.
func (r *RemoteClient) CreatePost(ctx context.Context, in models.PostInput) (models.Post, error) {
	payload := remoteCreatePayload{
		Title:    in.Author,
		Body:     in.Caption,
		UserID:   1,
		ImageURL: in.ImageURL,
		Author:   in.Author,
	}

	var resp remoteIDResponse
	if err := r.do(ctx, "create", http.MethodPost, "/posts", payload, &resp); err != nil {
		return models.Post{}, err
	}

	return models.Post{
		ID:        resp.ID,
		Author:    in.Author,
		Caption:   in.Caption,
		ImageURL:  in.ImageURL,
		CreatedAt: r.now(),
	}, nil
}

// UpdatePost applies a partial update. Posts above the local-only threshold
// were never stored remotely, so they are updated without a request.
func (r *RemoteClient) UpdatePost(ctx context.Context, id int, in models.PostInput) (models.Post, error) {
	updated := models.Post{
		ID:       id,
		Author:   in.Author,
		Caption:  in.Caption,
		ImageURL: in.ImageURL,
	}

	if r.IsLocalID(id) {
		r.metrics.ObserveRequest("update", metrics.OutcomeSkipped, 0)
		r.log.Debug().Int("post_id", id).Msg("local-only post, skipping remote update")
		updated.UpdatedAt = r.now()
		return updated, nil
	}

	payload := remoteUpdatePayload{Title: in.Author, Body: in.Caption}
	var resp remoteIDResponse
	if err := r.do(ctx, "update", http.MethodPatch, fmt.Sprintf("/posts/%d", id), payload, &resp); err != nil {
		return models.Post{}, err
	}
	if resp.ID != 0 {
		updated.ID = resp.ID
	}
	updated.UpdatedAt = r.now()
	return updated, nil
}

// DeletePost removes a post on the remote API.
func (r *RemoteClient) DeletePost(ctx context.Context, id int) error {
	return r.do(ctx, "delete", http.MethodDelete, fmt.Sprintf("/posts/%d", id), nil, nil)
}

// do sends one request and decodes the JSON response into out when non-nil.
func (r *RemoteClient) do(ctx context.Context, op, method, path string, payload, out any) (err error) {
	start := time.Now()
	defer func() {
		outcome := metrics.OutcomeSuccess
		if err != nil {
			outcome = metrics.OutcomeError
			r.log.Error().Err(err).Str("op", op).Str("path", path).Msg("remote API call failed")
		}
		r.metrics.ObserveRequest(op, outcome, time.Since(start))
	}()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal %s payload: %w", op, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.apiURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return &ServiceError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return &ServiceError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ServiceError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

// transform maps a wire post to a feed post. Timestamps are client-side.
func (r *RemoteClient) transform(rp remotePost, now time.Time) models.Post {
	author := rp.Author
	if author == "" {
		author = rp.Title
	}
	if author == "" {
		author = fmt.Sprintf("User %d", rp.UserID)
	}
	image := rp.ImageURL
	if image == "" {
		image = FallbackImageURL(rp.ID)
	}
	return models.Post{
		ID:        rp.ID,
		Author:    author,
		Caption:   rp.Body,
		ImageURL:  image,
		CreatedAt: now,
	}
}
