package report

import (
	"strings"
	"testing"
	"time"

	"reposcorer/internal/models"
)

func TestMedalGlyph(t *testing.T) {
	tests := []struct {
		medal string
		want  string
	}{
		{"Gold", "🥇"},
		{"Silver", "🥈"},
		{"Bronze", "🥉"},
		{"Platinum", "⭐"},
		{"", "⭐"},
	}

	for _, tt := range tests {
		if got := MedalGlyph(tt.medal); got != tt.want {
			t.Errorf("MedalGlyph(%q) = %q, want %q", tt.medal, got, tt.want)
		}
	}
}

func TestNewViewDefaults(t *testing.T) {
	v := NewView(models.Analysis{
		Repo:       models.RepoRecord{Name: "hello"},
		AnalyzedAt: time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC),
	})

	if v.Score != "0/100" {
		t.Errorf("Score = %q, want 0/100", v.Score)
	}
	if v.Level != "Unknown" {
		t.Errorf("Level = %q, want Unknown", v.Level)
	}
	if v.MedalName != "Bronze" || v.MedalGlyph != "🥉" {
		t.Errorf("Medal = %s %s, want 🥉 Bronze", v.MedalGlyph, v.MedalName)
	}
	if v.Language != "Unknown" {
		t.Errorf("Language = %q, want Unknown", v.Language)
	}
	if v.Summary != "No summary available." {
		t.Errorf("Summary = %q", v.Summary)
	}
	if v.Topics != "None" {
		t.Errorf("Topics = %q, want None", v.Topics)
	}
	if v.AnalyzedAt != "2026-08-23 12:00:00" {
		t.Errorf("AnalyzedAt = %q", v.AnalyzedAt)
	}
}

// An unrecognized medal keeps its literal name next to the fallback glyph.
func TestNewViewUnrecognizedMedal(t *testing.T) {
	v := NewView(models.Analysis{
		Result: models.AnalysisResult{Medal: "Diamond"},
	})

	if v.MedalName != "Diamond" {
		t.Errorf("MedalName = %q, want the literal Diamond", v.MedalName)
	}
	if v.MedalGlyph != "⭐" {
		t.Errorf("MedalGlyph = %q, want the generic star", v.MedalGlyph)
	}
}

func TestNewViewPopulated(t *testing.T) {
	v := NewView(models.Analysis{
		Repo: models.RepoRecord{
			Name:     "hello",
			Language: "Go",
			URL:      "https://github.com/octocat/hello",
			Topics:   []string{"cli", "tooling"},
		},
		Result: models.AnalysisResult{
			Score:   88,
			Level:   "Advanced",
			Medal:   "Gold",
			Summary: "Great project.",
		},
	})

	if v.Score != "88/100" {
		t.Errorf("Score = %q", v.Score)
	}
	if v.MedalGlyph != "🥇" || v.MedalName != "Gold" {
		t.Errorf("Medal = %s %s", v.MedalGlyph, v.MedalName)
	}
	if v.Topics != "cli, tooling" {
		t.Errorf("Topics = %q", v.Topics)
	}
}

func TestRenderContainsSections(t *testing.T) {
	out := Render(models.Analysis{
		Repo: models.RepoRecord{
			Name:   "hello",
			URL:    "https://github.com/octocat/hello",
			Topics: []string{"cli"},
		},
		Result: models.AnalysisResult{
			Score:        88,
			Level:        "Advanced",
			Medal:        "Gold",
			Summary:      "Great project.",
			Strengths:    []string{"clean code"},
			Improvements: []string{"more tests"},
			Roadmap:      []string{"Add unit tests", "Improve docs"},
		},
		AnalyzedAt: time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC),
	})

	for _, want := range []string{
		"Evaluation for hello",
		"88/100",
		"Advanced",
		"🥇 Gold",
		"Add unit tests",
		"Great project.",
		"https://github.com/octocat/hello",
		"clean code",
		"more tests",
		"Analysis performed at 2026-08-23 12:00:00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestRenderEmptyRoadmapPlaceholder(t *testing.T) {
	out := Render(models.Analysis{Repo: models.RepoRecord{Name: "hello"}})
	if !strings.Contains(out, "The AI did not generate specific roadmap steps.") {
		t.Error("empty roadmap should render the placeholder message")
	}
}
