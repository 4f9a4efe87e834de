package models

// NextQuestion names the next unanswered skill and its question.
type NextQuestion struct {
	Name     string `json:"name"`
	Question string `json:"question"`
}

// Progress reports how far the skill assessment has advanced.
type Progress struct {
	Answered int `json:"answered"`
	Total    int `json:"total"`
}

// ChatResponse is the single response shape of the chat endpoint. Response is
// always present; the auxiliary fields depend on the branch taken.
type ChatResponse struct {
	Response        string         `json:"response"`
	Skills          *SkillsState   `json:"skills,omitempty"`
	AllAnswered     *bool          `json:"allAnswered,omitempty"`
	UnansweredCount *int           `json:"unansweredCount,omitempty"`
	NextQuestion    *NextQuestion  `json:"nextQuestion,omitempty"`
	Progress        *Progress      `json:"progress,omitempty"`
	Analysis        *SkillAnalysis `json:"analysis,omitempty"`
	FileURI         string         `json:"fileUri,omitempty"`
	FileMimeType    string         `json:"fileMimeType,omitempty"`
	HasSkills       *bool          `json:"hasSkills,omitempty"`
	SkillsCount     *int           `json:"skillsCount,omitempty"`
}

// Bool and Int lift literals into the optional response fields.
func Bool(v bool) *bool { return &v }
func Int(v int) *int    { return &v }
