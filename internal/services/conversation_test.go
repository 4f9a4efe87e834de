package services

import (
	"encoding/json"
	"testing"

	"bbditm/resume-assistant/internal/apperrors"
	"bbditm/resume-assistant/internal/models"
)

func twoSkillState(t *testing.T) *models.SkillsState {
	t.Helper()
	state := models.NewSkillsState()
	if err := json.Unmarshal([]byte(`{"Python": {"question": "Q1", "answer": ""}, "SQL": {"question": "Q2", "answer": ""}}`), state); err != nil {
		t.Fatalf("failed to build state: %v", err)
	}
	return state
}

func TestApplyAnswersSingle(t *testing.T) {
	svc := NewConversationService(false)
	state := twoSkillState(t)

	result, err := svc.ApplyAnswers(state, []models.SkillAnswer{
		{SkillName: "Python", Answer: "Used it for ETL.", TimeTaken: 4200},
	})
	if err != nil {
		t.Fatalf("ApplyAnswers failed: %v", err)
	}

	if result.AllAnswered {
		t.Error("expected AllAnswered=false")
	}
	if result.Next == nil || result.Next.Name != "SQL" {
		t.Fatalf("expected next question SQL, got %+v", result.Next)
	}
	if result.Progress.Answered != 1 || result.Progress.Total != 2 {
		t.Errorf("progress = %+v, want 1/2", result.Progress)
	}
	if result.Unanswered != 1 {
		t.Errorf("unanswered = %d, want 1", result.Unanswered)
	}

	rec, _ := state.Get("Python")
	if rec.TimeTaken != 4200 {
		t.Errorf("timeTaken not applied: %d", rec.TimeTaken)
	}
}

func TestApplyAnswersBatchCompletes(t *testing.T) {
	svc := NewConversationService(false)
	state := twoSkillState(t)

	if _, err := svc.ApplyAnswers(state, []models.SkillAnswer{{SkillName: "Python", Answer: "Used it for ETL."}}); err != nil {
		t.Fatal(err)
	}

	result, err := svc.ApplyAnswers(state, []models.SkillAnswer{{SkillName: "SQL", Answer: "Wrote complex joins."}})
	if err != nil {
		t.Fatal(err)
	}

	if !result.AllAnswered {
		t.Error("expected AllAnswered=true")
	}
	if result.Next != nil {
		t.Errorf("expected no next question, got %+v", result.Next)
	}
	for _, name := range []string{"Python", "SQL"} {
		rec, _ := result.Skills.Get(name)
		if !rec.Answered() {
			t.Errorf("%s not answered in returned mapping", name)
		}
	}
}

func TestApplyAnswersCompletionOrderIndependent(t *testing.T) {
	svc := NewConversationService(false)
	state := twoSkillState(t)

	// Answer in reverse document order.
	if res, _ := svc.ApplyAnswers(state, []models.SkillAnswer{{SkillName: "SQL", Answer: "b"}}); res.AllAnswered {
		t.Fatal("completed too early")
	}
	res, _ := svc.ApplyAnswers(state, []models.SkillAnswer{{SkillName: "Python", Answer: "a"}})
	if !res.AllAnswered {
		t.Error("expected completion regardless of submission order")
	}
}

func TestApplyAnswersWhitespaceDoesNotComplete(t *testing.T) {
	svc := NewConversationService(false)
	state := twoSkillState(t)

	result, _ := svc.ApplyAnswers(state, []models.SkillAnswer{
		{SkillName: "Python", Answer: "   "},
		{SkillName: "SQL", Answer: "real answer"},
	})
	if result.AllAnswered {
		t.Error("whitespace-only answer must not count as answered")
	}
	if result.Next == nil || result.Next.Name != "Python" {
		t.Errorf("expected Python as next, got %+v", result.Next)
	}
}

func TestApplyAnswersUnknownSkillLenient(t *testing.T) {
	svc := NewConversationService(false)
	state := twoSkillState(t)

	result, err := svc.ApplyAnswers(state, []models.SkillAnswer{{SkillName: "Rust", Answer: "nope"}})
	if err != nil {
		t.Fatalf("lenient mode must ignore unknown skills: %v", err)
	}
	if state.Len() != 2 {
		t.Errorf("unknown skill must not be added, Len=%d", state.Len())
	}
	if result.Progress.Answered != 0 {
		t.Errorf("no answer should have landed, got %d", result.Progress.Answered)
	}
}

func TestApplyAnswersUnknownSkillStrict(t *testing.T) {
	svc := NewConversationService(true)
	state := twoSkillState(t)

	_, err := svc.ApplyAnswers(state, []models.SkillAnswer{{SkillName: "Rust", Answer: "nope"}})
	if !apperrors.IsKind(err, apperrors.InvalidState) {
		t.Fatalf("expected InvalidState in strict mode, got %v", err)
	}
}

func TestNextQuestionIdempotent(t *testing.T) {
	svc := NewConversationService(false)
	state := twoSkillState(t)

	first := svc.NextQuestion(state)
	for i := 0; i < 5; i++ {
		again := svc.NextQuestion(state)
		if again.Next == nil || again.Next.Name != first.Next.Name {
			t.Fatalf("call %d returned different question: %+v", i, again.Next)
		}
	}

	// A pure read must not mutate.
	if state.AnsweredCount() != 0 {
		t.Error("NextQuestion mutated the state")
	}
}

func TestNextQuestionCompletion(t *testing.T) {
	svc := NewConversationService(false)
	state := models.NewSkillsState()
	state.Add("Go", &models.SkillRecord{Question: "Q", Answer: "done"})

	result := svc.NextQuestion(state)
	if !result.AllAnswered {
		t.Error("expected completion signal")
	}
	if result.Unanswered != 0 {
		t.Errorf("unanswered = %d, want 0", result.Unanswered)
	}
}
