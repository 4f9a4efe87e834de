package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"bbditm/resume-assistant/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// SystemPrompt is shared by every model call. It carries the institute
// profile and the formatting contract the chat widget renders.
func (pb *PromptBuilder) SystemPrompt() string {
	return `You are the BBDITM (Bhagwant Dayal Institute of Information Technology & Management) Resume Review Assistant.
You are an expert in resume review, career guidance, and helping students with information about BBDITM programs and admissions.

Your responsibilities:
1. Review resumes and provide constructive feedback on format, content clarity, technical skills presentation, work experience, education, and overall professionalism.
2. Answer questions about BBDITM:
   - B.Tech in Computer Science (4 years)
   - B.Tech in Information Technology (4 years)
   - MBA in Technology Management (2 years)
   - Diploma in Web Development (1 year)
   - Admission requirements and process
   - Placement statistics (95% placement rate, Rs 8-12 LPA average)
   - Faculty and facilities
3. Provide career guidance: interview preparation, career paths, industry trends, and skill development.

IMPORTANT: Format conversational responses with clear structure:
- Use "## Section Title" for main sections
- Use "- " for bullet points
- Use "**bold**" for emphasis
- Separate sections with blank lines

Always be professional, encouraging, and constructive. If you don't have specific information about BBDITM, provide general career advice.`
}

// BuildScoringPrompt asks for the ATS-style score of an uploaded resume. The
// user message usually carries the job description.
func (pb *PromptBuilder) BuildScoringPrompt(userMessage string) string {
	return fmt.Sprintf(`Evaluate the attached resume the way an Applicant Tracking System would, against the job description or request below.

User message:
%s

Return your response as a JSON object with exactly this structure:
{
  "score": <0-100 integer ATS compatibility score>,
  "explanation": "<2-4 sentences explaining the score>",
  "strengths": ["<strength>"],
  "weaknesses": ["<weakness>"],
  "missing_keywords": ["<keyword the resume should contain but does not>"],
  "tailoring_suggestions": ["<specific suggestion to tailor the resume>"],
  "formatting_issues": ["<formatting problem that hurts ATS parsing>"]
}

Return only valid JSON. Do not include explanations, markdown, or text before or after the JSON.`, userMessage)
}

// BuildSkillExtractionPrompt asks for an assessment question per skill found
// in the attached resume.
func (pb *PromptBuilder) BuildSkillExtractionPrompt() string {
	return `Identify the distinct technical and professional skills claimed in the attached resume.
For each skill, write one concise interview question that would let the candidate demonstrate real experience with it.

Return your response as a JSON object with exactly this structure:
{
  "skills": {
    "<skill name exactly as it appears in the resume>": "<assessment question for that skill>"
  }
}

Limit yourself to the 5-8 most significant skills. Return only valid JSON with no text before or after it.`
}

// BuildSkillAnalysisPrompt sends the full answered question set alongside the
// originally uploaded resume for the final comparative analysis.
func (pb *PromptBuilder) BuildSkillAnalysisPrompt(state *models.SkillsState) (string, error) {
	payload, err := json.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("failed to marshal skills state: %w", err)
	}

	return fmt.Sprintf(`The candidate whose resume is attached answered one assessment question per claimed skill.
Compare their answers against the resume and judge how credibly each skill is held.

Questions and answers:
%s

Return your response as a JSON object with exactly this structure:
{
  "grades": [
    {"skill": "<skill name>", "grade": <1-10>, "feedback": "<1-2 sentences on the answer quality>"}
  ],
  "resume_improvements": ["<concrete improvement to the resume itself>"],
  "skill_development": ["<recommendation for developing a weak skill>"],
  "skills_to_add": ["<skill worth adding to the resume>"],
  "skills_to_remove": ["<claimed skill the answers did not support>"],
  "skills_to_reorder": ["<skill to move more prominently>"],
  "overall_summary": "<3-5 sentence overall assessment>"
}

Grade every skill that appears in the questions. Return only valid JSON with no text before or after it.`, string(payload)), nil
}

// BuildChatPrompt wraps a free-text question for the FAQ branch, grounding it
// with retrieved institute context when the knowledge base supplied any.
func (pb *PromptBuilder) BuildChatPrompt(message, context string) string {
	if strings.TrimSpace(context) == "" {
		return message
	}
	return fmt.Sprintf(`Use the following institute reference material when it is relevant to the question. If it is not relevant, answer from your general knowledge.

REFERENCE MATERIAL:
%s

QUESTION:
%s`, context, message)
}
