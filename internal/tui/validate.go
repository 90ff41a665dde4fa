// ABOUTME: HTTP connection validation for the remote post API.
// ABOUTME: Checks the base URL by fetching a single post.
package tui

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// NormalizeAPIURL trims trailing slashes and a trailing /posts from a base URL.
func NormalizeAPIURL(apiURL string) string {
	apiURL = strings.TrimRight(strings.TrimSpace(apiURL), "/")
	return strings.TrimSuffix(apiURL, "/posts")
}

// ValidateConnection tests the API by fetching one post from the given base URL.
// The context allows cancellation when the user quits during validation.
func ValidateConnection(ctx context.Context, apiURL string) error {
	client := &http.Client{Timeout: 10 * time.Second}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, NormalizeAPIURL(apiURL)+"/posts", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	q := req.URL.Query()
	q.Set("_limit", "1")
	req.URL.RawQuery = q.Encode()

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return fmt.Errorf("API returned %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
