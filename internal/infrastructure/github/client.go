// Package github implements the external repository-listing collaborator
// against the GitHub REST API.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/devconnect/devconnect-api/internal/core/domain"
)

const defaultBaseURL = "https://api.github.com"
const requestTimeout = 10 * time.Second

// Client lists a user's public repositories. Requests carry no retry
// policy; any non-2xx upstream response surfaces as
// domain.ErrGithubUserNotFound.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a Client. baseURL overrides the GitHub API host (used
// in tests); token is optional and raises the unauthenticated rate limit
// when set.
func NewClient(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// ListRepos fetches the user's five most recently created public repos,
// the slice the original profile page shows.
func (c *Client) ListRepos(ctx context.Context, username string) ([]domain.RepoSummary, error) {
	endpoint := fmt.Sprintf("%s/users/%s/repos?per_page=5&sort=created:asc",
		c.baseURL, url.PathEscape(username))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("github request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, domain.ErrGithubUserNotFound
	}

	var repos []domain.RepoSummary
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, fmt.Errorf("github decode: %w", err)
	}
	return repos, nil
}
