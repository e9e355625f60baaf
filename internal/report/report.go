// Package report shapes a finished analysis for display. View applies the
// render-time defaults both presentation surfaces share; Render draws the
// terminal report.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"reposcorer/internal/models"
	"reposcorer/internal/prompt"
)

var medalGlyphs = map[string]string{
	"Gold":   "🥇",
	"Silver": "🥈",
	"Bronze": "🥉",
}

// MedalGlyph maps a medal name to its glyph. Unrecognized names get a
// generic star; the caller keeps the literal name alongside it.
func MedalGlyph(medal string) string {
	if glyph, ok := medalGlyphs[medal]; ok {
		return glyph
	}
	return "⭐"
}

// View is the display-ready form of an analysis. Every field is already
// defaulted, so renderers never branch on missing data.
type View struct {
	RepoName     string   `json:"repo_name"`
	Score        string   `json:"score"`
	Level        string   `json:"level"`
	MedalGlyph   string   `json:"medal_glyph"`
	MedalName    string   `json:"medal_name"`
	Language     string   `json:"language"`
	Roadmap      []string `json:"roadmap"`
	Summary      string   `json:"summary"`
	URL          string   `json:"url"`
	Topics       string   `json:"topics"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
	AnalyzedAt   string   `json:"analyzed_at"`
}

// NewView applies the render-time defaults: score 0, level "Unknown",
// medal "Bronze" before glyph lookup, placeholder summary, "None" topics.
func NewView(a models.Analysis) View {
	level := a.Result.Level
	if level == "" {
		level = "Unknown"
	}
	medal := a.Result.Medal
	if medal == "" {
		medal = "Bronze"
	}
	summary := a.Result.Summary
	if summary == "" {
		summary = "No summary available."
	}
	language := a.Repo.Language
	if language == "" {
		language = "Unknown"
	}

	return View{
		RepoName:     a.Repo.Name,
		Score:        fmt.Sprintf("%d/100", a.Result.Score),
		Level:        level,
		MedalGlyph:   MedalGlyph(medal),
		MedalName:    medal,
		Language:     language,
		Roadmap:      a.Result.Roadmap,
		Summary:      summary,
		URL:          a.Repo.URL,
		Topics:       prompt.JoinTopics(a.Repo.Topics),
		Strengths:    a.Result.Strengths,
		Improvements: a.Result.Improvements,
		AnalyzedAt:   a.AnalyzedAt.Format("2006-01-02 15:04:05"),
	}
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	dimStyle  = lipgloss.NewStyle().Faint(true)
	boldStyle = lipgloss.NewStyle().Bold(true)
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	headStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	metricStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2).
			Align(lipgloss.Center)

	summaryStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1)

	columnStyle = lipgloss.NewStyle().
			PaddingRight(4)
)

// Render draws the full terminal report: header, metric row, roadmap,
// summary, repository line, and the strengths/improvements columns.
func Render(a models.Analysis) string {
	v := NewView(a)
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Evaluation for %s", v.RepoName)))
	b.WriteString("\n\n")

	metrics := lipgloss.JoinHorizontal(lipgloss.Top,
		metric("Score", v.Score),
		metric("Level", v.Level),
		metric("Medal", fmt.Sprintf("%s %s", v.MedalGlyph, v.MedalName)),
		metric("Language", v.Language),
	)
	b.WriteString(metrics)
	b.WriteString("\n\n")

	b.WriteString(headStyle.Render("Personalized Roadmap: Your Next Steps"))
	b.WriteString("\n")
	if len(v.Roadmap) == 0 {
		b.WriteString(dimStyle.Render("The AI did not generate specific roadmap steps."))
		b.WriteString("\n")
	} else {
		for i, step := range v.Roadmap {
			b.WriteString(fmt.Sprintf("%s %s\n", boldStyle.Render(fmt.Sprintf("%d.", i+1)), step))
		}
	}
	b.WriteString("\n")

	b.WriteString(headStyle.Render("Summary & Feedback"))
	b.WriteString("\n")
	b.WriteString(summaryStyle.Render(v.Summary))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("%s  %s\n\n", v.URL, dimStyle.Render("Topics: "+v.Topics)))

	strengths := []string{headStyle.Render("Strengths")}
	for _, s := range v.Strengths {
		strengths = append(strengths, okStyle.Render("• "+s))
	}
	improvements := []string{headStyle.Render("Areas to Improve")}
	for _, s := range v.Improvements {
		improvements = append(improvements, warnStyle.Render("• "+s))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		columnStyle.Render(strings.Join(strengths, "\n")),
		strings.Join(improvements, "\n"),
	))
	b.WriteString("\n\n")

	b.WriteString(dimStyle.Render("Analysis performed at " + v.AnalyzedAt))
	b.WriteString("\n")

	return b.String()
}

func metric(label, value string) string {
	return metricStyle.Render(dimStyle.Render(label) + "\n" + boldStyle.Render(value))
}
