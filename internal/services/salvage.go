package services

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"

	"bbditm/resume-assistant/internal/apperrors"
	"bbditm/resume-assistant/internal/models"
)

// ExtractJSONObject recovers a JSON object from free-form model text. The
// model is not contractually guaranteed to return bare JSON, so extraction
// runs an ordered chain of independently-verified strategies and keeps the
// first candidate that actually parses:
//
//  1. the contents of the first fenced code block,
//  2. the first balanced top-level {...} span found by brace counting,
//  3. the trimmed reply as a whole.
//
// The boolean reports whether any strategy produced valid JSON.
func ExtractJSONObject(text string) (string, bool) {
	if candidate, ok := fencedBlock(text); ok && gjson.Valid(candidate) {
		return candidate, true
	}
	if candidate, ok := balancedObject(text); ok && gjson.Valid(candidate) {
		return candidate, true
	}
	trimmed := strings.TrimSpace(text)
	if trimmed != "" && gjson.Valid(trimmed) {
		return trimmed, true
	}
	return "", false
}

// DecodeModelJSON salvages a JSON object from text and unmarshals it into
// target, failing with MalformedModelOutput when the chain is exhausted.
func DecodeModelJSON(text string, target interface{}) error {
	payload, ok := ExtractJSONObject(text)
	if !ok {
		return apperrors.NewMalformedModelOutput("no parseable JSON in model reply")
	}
	if err := json.Unmarshal([]byte(payload), target); err != nil {
		return apperrors.NewMalformedModelOutput(err.Error())
	}
	return nil
}

// ParseSkillQuestions salvages the skill-extraction reply: an object carrying
// a "skills" mapping of skill name to assessment question (tolerating the
// mapping at top level). Document order is preserved and every answer starts
// empty.
func ParseSkillQuestions(text string) (*models.SkillsState, error) {
	payload, ok := ExtractJSONObject(text)
	if !ok {
		return nil, apperrors.NewMalformedModelOutput("no parseable JSON in extraction reply")
	}

	root := gjson.Parse(payload)
	mapping := root.Get("skills")
	if !mapping.IsObject() {
		mapping = root
	}
	if !mapping.IsObject() {
		return nil, apperrors.NewMalformedModelOutput("extraction reply is not a skills mapping")
	}

	state := models.NewSkillsState()
	mapping.ForEach(func(key, value gjson.Result) bool {
		question := value.String()
		if value.IsObject() {
			question = value.Get("question").String()
		}
		if strings.TrimSpace(question) == "" {
			return true
		}
		state.Add(key.String(), &models.SkillRecord{Question: question})
		return true
	})
	return state, nil
}

// fencedBlock returns the contents of the first ``` fenced block, tolerating
// a language tag after the opening fence and prose around the block.
func fencedBlock(text string) (string, bool) {
	start := strings.Index(text, "```")
	if start == -1 {
		return "", false
	}
	rest := text[start+3:]

	// Skip the language tag, if any, through the end of the opening line.
	if newline := strings.IndexByte(rest, '\n'); newline != -1 {
		firstLine := strings.TrimSpace(rest[:newline])
		if firstLine == "" || isLanguageTag(firstLine) {
			rest = rest[newline+1:]
		}
	}

	end := strings.Index(rest, "```")
	if end == -1 {
		return "", false
	}
	return strings.TrimSpace(rest[:end]), true
}

func isLanguageTag(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

// balancedObject scans for the first top-level {...} span, counting brace
// depth while skipping string literals and escapes.
func balancedObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case !inString && c == '{':
			depth++
		case !inString && c == '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}
