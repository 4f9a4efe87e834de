package models

// ResumeScore is the ATS-style judgment returned by the model for the initial
// resume-vs-job-description scoring call.
type ResumeScore struct {
	Score                int      `json:"score"`
	Explanation          string   `json:"explanation"`
	Strengths            []string `json:"strengths"`
	Weaknesses           []string `json:"weaknesses"`
	MissingKeywords      []string `json:"missing_keywords"`
	TailoringSuggestions []string `json:"tailoring_suggestions"`
	FormattingIssues     []string `json:"formatting_issues"`
}

// SkillGrade is the model's judgment of one answered skill question.
type SkillGrade struct {
	Skill    string `json:"skill"`
	Grade    int    `json:"grade"`
	Feedback string `json:"feedback"`
}

// SkillAnalysis is the final comparative analysis produced once every skill
// question has been answered.
type SkillAnalysis struct {
	Grades             []SkillGrade `json:"grades"`
	ResumeImprovements []string     `json:"resume_improvements"`
	SkillDevelopment   []string     `json:"skill_development"`
	SkillsToAdd        []string     `json:"skills_to_add"`
	SkillsToRemove     []string     `json:"skills_to_remove"`
	SkillsToReorder    []string     `json:"skills_to_reorder"`
	OverallSummary     string       `json:"overall_summary"`
}
