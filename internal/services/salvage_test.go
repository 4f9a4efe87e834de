package services

import (
	"testing"

	"bbditm/resume-assistant/internal/apperrors"
)

func TestExtractJSONObjectFencedWithProse(t *testing.T) {
	reply := "Here is the evaluation you asked for:\n```json\n{\"score\": 72, \"explanation\": \"solid\"}\n```\nLet me know if you need more."

	payload, ok := ExtractJSONObject(reply)
	if !ok {
		t.Fatal("expected extraction to succeed")
	}
	if payload != `{"score": 72, "explanation": "solid"}` {
		t.Errorf("unexpected payload: %s", payload)
	}
}

func TestExtractJSONObjectBareJSON(t *testing.T) {
	reply := `{"score": 55}`

	payload, ok := ExtractJSONObject(reply)
	if !ok || payload != reply {
		t.Errorf("bare JSON must come back unchanged, got %q ok=%v", payload, ok)
	}
}

func TestExtractJSONObjectBraceScan(t *testing.T) {
	reply := `Sure! The result is {"score": 10, "note": "brace in string }"} as requested.`

	payload, ok := ExtractJSONObject(reply)
	if !ok {
		t.Fatal("expected brace scan to find the object")
	}
	if payload != `{"score": 10, "note": "brace in string }"}` {
		t.Errorf("unexpected payload: %s", payload)
	}
}

func TestExtractJSONObjectNestedBraces(t *testing.T) {
	reply := `prefix {"outer": {"inner": 1}} suffix`

	payload, ok := ExtractJSONObject(reply)
	if !ok || payload != `{"outer": {"inner": 1}}` {
		t.Errorf("nested object extraction failed: %q ok=%v", payload, ok)
	}
}

func TestExtractJSONObjectNoJSON(t *testing.T) {
	for _, reply := range []string{
		"I'm sorry, I can't produce JSON for that.",
		"",
		"{broken: json",
		"``` not json either ```",
	} {
		if payload, ok := ExtractJSONObject(reply); ok {
			t.Errorf("expected failure for %q, got %q", reply, payload)
		}
	}
}

func TestDecodeModelJSONMalformed(t *testing.T) {
	var target struct{}
	err := DecodeModelJSON("no json here", &target)
	if !apperrors.IsKind(err, apperrors.MalformedModelOutput) {
		t.Fatalf("expected MalformedModelOutput, got %v", err)
	}
}

func TestParseSkillQuestionsPreservesOrder(t *testing.T) {
	reply := "```json\n{\"skills\": {\"Python\": \"How did you use it?\", \"SQL\": \"Describe a complex query.\", \"Docker\": \"What did you containerize?\"}}\n```"

	state, err := ParseSkillQuestions(reply)
	if err != nil {
		t.Fatalf("ParseSkillQuestions failed: %v", err)
	}

	want := []string{"Python", "SQL", "Docker"}
	got := state.Names()
	if len(got) != len(want) {
		t.Fatalf("expected %d skills, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: want %q, got %q", i, want[i], got[i])
		}
	}

	rec, _ := state.Get("SQL")
	if rec.Question != "Describe a complex query." || rec.Answer != "" {
		t.Errorf("unexpected record: %+v", rec)
	}
}

func TestParseSkillQuestionsTopLevelMapping(t *testing.T) {
	state, err := ParseSkillQuestions(`{"Go": "Tell me about goroutines."}`)
	if err != nil {
		t.Fatal(err)
	}
	if state.Len() != 1 {
		t.Fatalf("Len = %d, want 1", state.Len())
	}
}

func TestParseSkillQuestionsObjectValues(t *testing.T) {
	state, err := ParseSkillQuestions(`{"skills": {"Go": {"question": "Why channels?"}}}`)
	if err != nil {
		t.Fatal(err)
	}
	rec, ok := state.Get("Go")
	if !ok || rec.Question != "Why channels?" {
		t.Errorf("unexpected record: %+v", rec)
	}
}

func TestParseSkillQuestionsFailure(t *testing.T) {
	if _, err := ParseSkillQuestions("nothing structured here"); !apperrors.IsKind(err, apperrors.MalformedModelOutput) {
		t.Fatalf("expected MalformedModelOutput, got %v", err)
	}
}
