package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"reposcorer/internal/analyzer"
	"reposcorer/internal/github"
	"reposcorer/internal/llm"
	"reposcorer/internal/models"
	"reposcorer/internal/report"
)

// Analyzer runs one full analysis for a repository URL.
type Analyzer interface {
	Analyze(ctx context.Context, rawURL string) (*models.Analysis, error)
}

// ErrorResponse is the error payload for all API failures.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// AnalyzeRequest carries the repository URL to evaluate.
type AnalyzeRequest struct {
	URL string `json:"url" binding:"required"`
}

// AnalyzeResponse is the success payload. Status "skipped" means the
// duplicate guard fired and no network calls were made.
type AnalyzeResponse struct {
	Status  string       `json:"status"`
	Message string       `json:"message,omitempty"`
	Report  *report.View `json:"report,omitempty"`
}

// AnalysisHandler handles analysis HTTP requests.
type AnalysisHandler struct {
	analyzer Analyzer
}

func NewAnalysisHandler(a Analyzer) *AnalysisHandler {
	return &AnalysisHandler{analyzer: a}
}

// Analyze handles POST /api/v1/analyze. Every recoverable failure is
// converted to a user-visible message here; nothing propagates past the
// handler except through gin's recovery middleware.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Please enter a repository URL.",
			Details: err.Error(),
		})
		return
	}

	analysis, err := h.analyzer.Analyze(c.Request.Context(), req.URL)
	if err != nil {
		h.writeError(c, err)
		return
	}

	view := report.NewView(*analysis)
	c.JSON(http.StatusOK, AnalyzeResponse{Status: "ok", Report: &view})
}

func (h *AnalysisHandler) writeError(c *gin.Context, err error) {
	var apiErr *github.APIError
	var formatErr *llm.ResponseFormatError

	switch {
	case errors.Is(err, analyzer.ErrInvalidURL):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_url",
			Message: "Invalid repository URL format. Please use the full URL.",
		})
	case errors.Is(err, analyzer.ErrAlreadyAnalyzed):
		c.JSON(http.StatusOK, AnalyzeResponse{
			Status:  "skipped",
			Message: "Repository already analyzed. Please enter a new URL to re-analyze.",
		})
	case errors.Is(err, github.ErrTimeout):
		c.JSON(http.StatusGatewayTimeout, ErrorResponse{
			Error:   "github_timeout",
			Message: "Request to GitHub timed out.",
		})
	case errors.As(err, &apiErr):
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:   "github_error",
			Message: "Error fetching repository data.",
			Details: apiErr.Error(),
		})
	case errors.As(err, &formatErr):
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:   "invalid_ai_response",
			Message: "Failed to parse AI response. The model may have returned invalid JSON.",
			Details: formatErr.Raw,
		})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "analysis_failed",
			Message: "An unexpected error occurred during analysis.",
			Details: err.Error(),
		})
	}
}
