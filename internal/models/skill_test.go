package models

import (
	"encoding/json"
	"testing"
)

func TestSkillsStateRoundTripPreservesOrder(t *testing.T) {
	input := `{"Python": {"question": "Q1", "answer": ""}, "SQL": {"question": "Q2", "answer": "joins"}, "AWS": {"question": "Q3", "answer": ""}}`

	state := NewSkillsState()
	if err := json.Unmarshal([]byte(input), state); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	wantOrder := []string{"Python", "SQL", "AWS"}
	gotOrder := state.Names()
	if len(gotOrder) != len(wantOrder) {
		t.Fatalf("expected %d skills, got %d", len(wantOrder), len(gotOrder))
	}
	for i, name := range wantOrder {
		if gotOrder[i] != name {
			t.Errorf("position %d: expected %q, got %q", i, name, gotOrder[i])
		}
	}

	out, err := json.Marshal(state)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	reparsed := NewSkillsState()
	if err := json.Unmarshal(out, reparsed); err != nil {
		t.Fatalf("re-unmarshal failed: %v", err)
	}
	for i, name := range wantOrder {
		if reparsed.Names()[i] != name {
			t.Errorf("order lost after round trip at %d: got %q", i, reparsed.Names()[i])
		}
	}

	rec, ok := reparsed.Get("SQL")
	if !ok || rec.Answer != "joins" {
		t.Errorf("SQL record lost in round trip: %+v", rec)
	}
}

func TestSkillsStateRejectsNonObject(t *testing.T) {
	cases := []string{
		`["Python"]`,
		`"Python"`,
		`42`,
		`{"Python": "not a record"}`,
		`not json at all`,
	}

	for _, input := range cases {
		state := NewSkillsState()
		if err := json.Unmarshal([]byte(input), state); err == nil {
			t.Errorf("expected error for %q, got none", input)
		}
	}
}

func TestAnsweredTrimsWhitespace(t *testing.T) {
	cases := []struct {
		answer string
		want   bool
	}{
		{"", false},
		{"   ", false},
		{"\n\t", false},
		{"yes", true},
		{"  padded  ", true},
	}

	for _, tc := range cases {
		rec := &SkillRecord{Question: "Q", Answer: tc.answer}
		if rec.Answered() != tc.want {
			t.Errorf("Answered(%q) = %v, want %v", tc.answer, rec.Answered(), tc.want)
		}
	}
}

func TestFirstUnansweredIsStable(t *testing.T) {
	state := NewSkillsState()
	state.Add("Go", &SkillRecord{Question: "Q1", Answer: "used daily"})
	state.Add("Docker", &SkillRecord{Question: "Q2", Answer: "  "})
	state.Add("K8s", &SkillRecord{Question: "Q3", Answer: ""})

	for i := 0; i < 3; i++ {
		name, rec, ok := state.FirstUnanswered()
		if !ok {
			t.Fatal("expected an unanswered record")
		}
		if name != "Docker" || rec.Question != "Q2" {
			t.Fatalf("iteration %d: expected Docker/Q2, got %s/%s", i, name, rec.Question)
		}
	}

	if got := state.AnsweredCount(); got != 1 {
		t.Errorf("AnsweredCount = %d, want 1", got)
	}
}

func TestFirstUnansweredCompletionSignal(t *testing.T) {
	state := NewSkillsState()
	state.Add("Go", &SkillRecord{Question: "Q1", Answer: "a"})
	state.Add("SQL", &SkillRecord{Question: "Q2", Answer: "b"})

	if _, _, ok := state.FirstUnanswered(); ok {
		t.Error("expected no unanswered record")
	}
}

func TestAddReplacesWithoutReordering(t *testing.T) {
	state := NewSkillsState()
	state.Add("A", &SkillRecord{Question: "Q1"})
	state.Add("B", &SkillRecord{Question: "Q2"})
	state.Add("A", &SkillRecord{Question: "Q1 updated"})

	if state.Len() != 2 {
		t.Fatalf("Len = %d, want 2", state.Len())
	}
	if state.Names()[0] != "A" {
		t.Errorf("expected A to keep first position, got %v", state.Names())
	}
	rec, _ := state.Get("A")
	if rec.Question != "Q1 updated" {
		t.Errorf("expected replaced record, got %q", rec.Question)
	}
}
