package models

import "time"

// RepoRecord is a normalized snapshot of a repository's public metadata,
// built once per fetch and immutable afterwards.
type RepoRecord struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Stars       int      `json:"stars"`
	Forks       int      `json:"forks"`
	Language    string   `json:"language"`
	URL         string   `json:"url"`
	Commits     int      `json:"commits"`
	Readme      string   `json:"readme"`
	Topics      []string `json:"topics"`
}

// AnalysisResult is the structured evaluation returned by the LLM. It is
// validated only at the JSON-syntax level; missing fields stay at their zero
// values and the presentation layer substitutes defaults at render time.
type AnalysisResult struct {
	Score        int      `json:"score"`
	Level        string   `json:"level"`
	Medal        string   `json:"medal"`
	Summary      string   `json:"summary"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
	Roadmap      []string `json:"roadmap"`
}

// Analysis pairs the fetched record with its evaluation.
type Analysis struct {
	Repo       RepoRecord     `json:"repo"`
	Result     AnalysisResult `json:"result"`
	AnalyzedAt time.Time      `json:"analyzed_at"`
}
