package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"reposcorer/internal/models"
)

const (
	defaultBaseURL = "https://api.github.com"
	requestTimeout = 5 * time.Second
	commitPageSize = 50
)

// Readme status literals carried verbatim into the prompt.
const (
	ReadmeFound   = "README exists and is accessible"
	ReadmeMissing = "No README found"
)

// ErrTimeout tags any GitHub call that exceeded the fixed client timeout.
var ErrTimeout = errors.New("request to GitHub timed out")

// APIError is a non-200 answer from the primary repository endpoint,
// carrying the HTTP status and the API-provided message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("GitHub API failed: %d - %s", e.StatusCode, e.Message)
}

// Client is a thin wrapper around the GitHub REST API.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

func NewClient(token string) *Client {
	return &Client{
		token:   token,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

type repoResponse struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Stars       int      `json:"stargazers_count"`
	Forks       int      `json:"forks_count"`
	Language    *string  `json:"language"`
	HTMLURL     string   `json:"html_url"`
	Topics      []string `json:"topics"`
}

// FetchRepo normalizes a repository's public metadata into a RepoRecord.
// The metadata call is fatal on any failure; the commit-count and README
// probes degrade to zero values instead of aborting the fetch.
func (c *Client) FetchRepo(ctx context.Context, owner, repo string) (*models.RepoRecord, error) {
	data, err := c.getRepo(ctx, owner, repo)
	if err != nil {
		return nil, err
	}

	record := &models.RepoRecord{
		Name:     data.Name,
		Stars:    data.Stars,
		Forks:    data.Forks,
		Language: "Unknown",
		URL:      data.HTMLURL,
		Topics:   data.Topics,
	}
	if data.Description != nil {
		record.Description = *data.Description
	}
	if data.Language != nil && *data.Language != "" {
		record.Language = *data.Language
	}
	if record.Topics == nil {
		record.Topics = []string{}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		record.Commits = c.countRecentCommits(gctx, owner, repo)
		return nil
	})
	g.Go(func() error {
		record.Readme = c.readmeStatus(gctx, owner, repo)
		return nil
	})
	_ = g.Wait()

	return record, nil
}

func (c *Client) getRepo(ctx context.Context, owner, repo string) (*repoResponse, error) {
	resp, err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s/repos/%s/%s", c.baseURL, owner, repo))
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: "Unknown Error"}
		var payload struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &payload) == nil && payload.Message != "" {
			apiErr.Message = payload.Message
		}
		return nil, apiErr
	}

	var data repoResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("parsing repository metadata: %w", err)
	}
	return &data, nil
}

// countRecentCommits returns the length of the most recent commit page
// (capped at commitPageSize by the request, not a repository-wide total).
// Any failure, including a non-list payload, degrades to zero.
func (c *Client) countRecentCommits(ctx context.Context, owner, repo string) int {
	url := fmt.Sprintf("%s/repos/%s/%s/commits?per_page=%d", c.baseURL, owner, repo, commitPageSize)
	resp, err := c.do(ctx, http.MethodGet, url)
	if err != nil {
		return 0
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0
	}

	var commits []json.RawMessage
	if err := json.Unmarshal(body, &commits); err != nil {
		return 0
	}
	return len(commits)
}

// readmeStatus probes for README.md with a HEAD request. Only a 200 counts;
// any other status or failure reads as missing.
func (c *Client) readmeStatus(ctx context.Context, owner, repo string) string {
	url := fmt.Sprintf("%s/repos/%s/%s/contents/README.md", c.baseURL, owner, repo)
	resp, err := c.do(ctx, http.MethodHead, url)
	if err != nil {
		return ReadmeMissing
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusOK {
		return ReadmeFound
	}
	return ReadmeMissing
}

func (c *Client) do(ctx context.Context, method, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			return nil, ErrTimeout
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("executing request: %w", err)
	}
	return resp, nil
}
