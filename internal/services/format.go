package services

import (
	"fmt"
	"strings"

	"bbditm/resume-assistant/internal/models"
)

// ResponseFormatter renders structured results into the Markdown-like text
// the chat widget displays: "## " headers, "- " bullets, "**bold**".
type ResponseFormatter struct{}

func NewResponseFormatter() *ResponseFormatter {
	return &ResponseFormatter{}
}

func (f *ResponseFormatter) writeBullets(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}

// FormatCritique renders a below-threshold score as a standalone critique.
func (f *ResponseFormatter) FormatCritique(score *models.ResumeScore) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## ATS Compatibility Score: **%d/100**\n\n", score.Score)
	if score.Explanation != "" {
		b.WriteString(score.Explanation)
		b.WriteString("\n\n")
	}

	f.writeBullets(&b, "Strengths", score.Strengths)
	f.writeBullets(&b, "Areas for Improvement", score.Weaknesses)
	f.writeBullets(&b, "Missing Keywords", score.MissingKeywords)
	f.writeBullets(&b, "Tailoring Suggestions", score.TailoringSuggestions)
	f.writeBullets(&b, "Formatting Issues", score.FormattingIssues)

	b.WriteString("Improve these areas and upload your resume again for a fresh review.")
	return b.String()
}

// FormatPassingScore renders an at-or-above-threshold score, optionally
// followed by the invitation to begin the skill assessment.
func (f *ResponseFormatter) FormatPassingScore(score *models.ResumeScore, skillsCount int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## ATS Compatibility Score: **%d/100**\n\n", score.Score)
	if score.Explanation != "" {
		b.WriteString(score.Explanation)
		b.WriteString("\n\n")
	}

	f.writeBullets(&b, "Strengths", score.Strengths)
	f.writeBullets(&b, "Tailoring Suggestions", score.TailoringSuggestions)

	if skillsCount > 0 {
		fmt.Fprintf(&b, "## Skill Assessment\nYour resume passed the screening. I found **%d skills** worth validating.\n", skillsCount)
		b.WriteString("Answer each question and I will compare your answers against your resume. Say anything to get your first question.")
	} else {
		b.WriteString("Your resume passed the screening. Well done!")
	}
	return b.String()
}

// FormatNextQuestion renders the prompt for the next unanswered skill.
func (f *ResponseFormatter) FormatNextQuestion(next *models.NextQuestion, progress models.Progress) string {
	return fmt.Sprintf("## Question %d of %d: **%s**\n\n%s",
		progress.Answered+1, progress.Total, next.Name, next.Question)
}

// FormatCompletion acknowledges that every skill question has been answered.
func (f *ResponseFormatter) FormatCompletion(progress models.Progress) string {
	return fmt.Sprintf("## Assessment Complete\nAll **%d questions** answered. Ask for your skill analysis to see how your answers compare against your resume.",
		progress.Total)
}

// FormatAnalysis renders the final comparative skill analysis.
func (f *ResponseFormatter) FormatAnalysis(analysis *models.SkillAnalysis) string {
	var b strings.Builder

	b.WriteString("## Skill Analysis\n")
	for _, grade := range analysis.Grades {
		fmt.Fprintf(&b, "- **%s**: %d/10 - %s\n", grade.Skill, grade.Grade, grade.Feedback)
	}
	b.WriteString("\n")

	f.writeBullets(&b, "Resume Improvements", analysis.ResumeImprovements)
	f.writeBullets(&b, "Skill Development", analysis.SkillDevelopment)
	f.writeBullets(&b, "Skills to Add", analysis.SkillsToAdd)
	f.writeBullets(&b, "Skills to Remove", analysis.SkillsToRemove)
	f.writeBullets(&b, "Skills to Reorder", analysis.SkillsToReorder)

	if analysis.OverallSummary != "" {
		b.WriteString("## Overall Assessment\n")
		b.WriteString(analysis.OverallSummary)
	}

	return strings.TrimRight(b.String(), "\n")
}
