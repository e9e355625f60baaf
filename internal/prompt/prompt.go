// Package prompt turns a RepoRecord into the analysis prompt sent to the
// LLM. Build is pure: identical records always produce byte-identical
// prompts, so the JSON contract the model is held to never drifts.
package prompt

import (
	"fmt"
	"strings"

	"reposcorer/internal/models"
)

const promptTemplate = `You are an AI Coding Mentor. Analyze this GitHub repository and provide a structured evaluation focused on giving honest, actionable feedback.

Repository Data:
- Name: %s
- Description: %s
- Stars: %d
- Forks: %d
- Language: %s
- Total Commits (from last 50): %d
- README Status: %s
- Topics: %s

Provide a JSON response with exactly this structure:
{
    "score": <0-100 integer>,
    "level": "<Beginner/Intermediate/Advanced>",
    "medal": "<Bronze/Silver/Gold>",
    "summary": "<2-3 sentences of honest feedback on the project's current quality, structure, and potential.>",
    "strengths": ["<strength1>", "<strength2>", "<strength3>"],
    "improvements": ["<improvement1>", "<improvement2>", "<improvement3>"],
    "roadmap": ["<Actionable Step 1, e.g., Add unit tests>", "<Actionable Step 2, e.g., Improve folder structure>", "<Actionable Step 3, e.g., Commit regularly>"]
}

Be critical but fair. Score based on code quality, documentation, popularity, activity, and practical usefulness. The 'roadmap' array MUST provide 3-5 specific, actionable steps the student can immediately follow to improve the project's grade, focusing on documentation, testing, and Git best practices.`

// Build renders the analysis prompt for one repository.
func Build(record models.RepoRecord) string {
	return fmt.Sprintf(promptTemplate,
		orNA(record.Name),
		orNA(record.Description),
		record.Stars,
		record.Forks,
		orNA(record.Language),
		record.Commits,
		orNA(record.Readme),
		JoinTopics(record.Topics),
	)
}

// JoinTopics renders topics as a comma-joined line, or the literal "None"
// when the repository has no topics.
func JoinTopics(topics []string) string {
	if len(topics) == 0 {
		return "None"
	}
	return strings.Join(topics, ", ")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
