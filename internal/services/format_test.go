package services

import (
	"strings"
	"testing"

	"bbditm/resume-assistant/internal/models"
)

func TestFormatCritique(t *testing.T) {
	f := NewResponseFormatter()
	score := &models.ResumeScore{
		Score:           42,
		Explanation:     "Sparse keyword coverage.",
		Strengths:       []string{"Clear layout"},
		Weaknesses:      []string{"No metrics"},
		MissingKeywords: []string{"Kubernetes"},
	}

	out := f.FormatCritique(score)

	for _, want := range []string{
		"## ATS Compatibility Score: **42/100**",
		"Sparse keyword coverage.",
		"## Strengths\n- Clear layout",
		"## Areas for Improvement\n- No metrics",
		"## Missing Keywords\n- Kubernetes",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("critique missing %q\n%s", want, out)
		}
	}

	if strings.Contains(out, "## Tailoring Suggestions") {
		t.Error("empty sections must be omitted")
	}
}

func TestFormatPassingScoreWithSkills(t *testing.T) {
	f := NewResponseFormatter()
	score := &models.ResumeScore{Score: 80, Explanation: "Strong match."}

	out := f.FormatPassingScore(score, 5)
	if !strings.Contains(out, "**80/100**") || !strings.Contains(out, "**5 skills**") {
		t.Errorf("unexpected passing render:\n%s", out)
	}

	noSkills := f.FormatPassingScore(score, 0)
	if strings.Contains(noSkills, "Skill Assessment") {
		t.Error("skills section must be omitted when extraction yielded nothing")
	}
}

func TestFormatNextQuestionNumbering(t *testing.T) {
	f := NewResponseFormatter()
	out := f.FormatNextQuestion(
		&models.NextQuestion{Name: "SQL", Question: "Describe a complex join."},
		models.Progress{Answered: 1, Total: 3},
	)

	if !strings.Contains(out, "## Question 2 of 3: **SQL**") {
		t.Errorf("unexpected question header:\n%s", out)
	}
	if !strings.Contains(out, "Describe a complex join.") {
		t.Error("question text missing")
	}
}

func TestFormatAnalysis(t *testing.T) {
	f := NewResponseFormatter()
	analysis := &models.SkillAnalysis{
		Grades: []models.SkillGrade{
			{Skill: "Python", Grade: 8, Feedback: "Credible depth."},
		},
		SkillsToRemove: []string{"Blockchain"},
		OverallSummary: "Solid overall.",
	}

	out := f.FormatAnalysis(analysis)
	for _, want := range []string{
		"## Skill Analysis",
		"- **Python**: 8/10 - Credible depth.",
		"## Skills to Remove\n- Blockchain",
		"## Overall Assessment\nSolid overall.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("analysis missing %q\n%s", want, out)
		}
	}
}
