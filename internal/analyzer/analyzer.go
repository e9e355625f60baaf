// Package analyzer runs one analysis end to end: validate the URL, fetch
// the repository snapshot, build the prompt, and ask the LLM for its
// evaluation. The chain is strictly sequential and fails at the first
// broken link; there are no retries and no partial results.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"reposcorer/internal/models"
	"reposcorer/internal/prompt"
)

// ErrInvalidURL rejects input that does not end in two non-empty path
// segments (owner and repository name).
var ErrInvalidURL = errors.New("invalid repository URL format")

// ErrAlreadyAnalyzed short-circuits a repeat submission of the URL the
// session analyzed last. Informational, not a failure.
var ErrAlreadyAnalyzed = errors.New("repository already analyzed")

// Fetcher produces a repository snapshot from GitHub.
type Fetcher interface {
	FetchRepo(ctx context.Context, owner, repo string) (*models.RepoRecord, error)
}

// Evaluator turns a prompt into a structured evaluation.
type Evaluator interface {
	Analyze(ctx context.Context, prompt string) (*models.AnalysisResult, error)
}

// Service owns the per-session state: the last successfully analyzed URL.
// The mutex exists because the web server can deliver concurrent requests;
// nothing else is shared.
type Service struct {
	fetcher   Fetcher
	evaluator Evaluator

	mu              sync.Mutex
	lastAnalyzedURL string
}

func NewService(fetcher Fetcher, evaluator Evaluator) *Service {
	return &Service{fetcher: fetcher, evaluator: evaluator}
}

// ParseRepoURL extracts owner and repository name from a GitHub URL.
// Trailing slashes are ignored; anything with fewer than two non-empty
// trailing path segments is rejected before any network call.
func ParseRepoURL(raw string) (owner, repo string, err error) {
	trimmed := strings.TrimRight(strings.TrimSpace(raw), "/")
	if trimmed == "" {
		return "", "", ErrInvalidURL
	}

	u, parseErr := url.Parse(trimmed)
	if parseErr != nil {
		return "", "", ErrInvalidURL
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 {
		return "", "", ErrInvalidURL
	}
	owner = parts[len(parts)-2]
	repo = parts[len(parts)-1]
	if owner == "" || repo == "" {
		return "", "", ErrInvalidURL
	}
	return owner, repo, nil
}

// Analyze runs one full analysis for the given repository URL and stamps
// the completion time. The duplicate guard is only updated on success, so a
// failed attempt can be retried immediately.
func (s *Service) Analyze(ctx context.Context, rawURL string) (*models.Analysis, error) {
	trimmed := strings.TrimSpace(rawURL)

	owner, repo, err := ParseRepoURL(trimmed)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	duplicate := s.lastAnalyzedURL != "" && s.lastAnalyzedURL == trimmed
	s.mu.Unlock()
	if duplicate {
		return nil, ErrAlreadyAnalyzed
	}

	record, err := s.fetcher.FetchRepo(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("fetching repository data: %w", err)
	}

	result, err := s.evaluator.Analyze(ctx, prompt.Build(*record))
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.lastAnalyzedURL = trimmed
	s.mu.Unlock()

	return &models.Analysis{
		Repo:       *record,
		Result:     *result,
		AnalyzedAt: time.Now(),
	}, nil
}
