package services

import (
	"fmt"

	"bbditm/resume-assistant/internal/apperrors"
	"bbditm/resume-assistant/internal/models"
)

// ConversationService drives the stateless skill-assessment loop. It owns no
// state between calls: the caller replays the skills mapping on every request
// and receives the transformed copy back.
type ConversationService interface {
	ApplyAnswers(state *models.SkillsState, updates []models.SkillAnswer) (*StepResult, error)
	NextQuestion(state *models.SkillsState) *StepResult
}

// StepResult is the reducer output for one conversation step.
type StepResult struct {
	Skills      *models.SkillsState
	AllAnswered bool
	Unanswered  int
	Next        *models.NextQuestion
	Progress    models.Progress
}

type conversationService struct {
	strictSkillNames bool
}

// NewConversationService builds the reducer. With strictSkillNames set,
// submitting an answer for a skill absent from the prior state is an error;
// otherwise unknown names are silently ignored.
func NewConversationService(strictSkillNames bool) ConversationService {
	return &conversationService{strictSkillNames: strictSkillNames}
}

// ApplyAnswers implements ConversationService. Each update overwrites the
// answer (and timing, when given) of the named skill, then the result reports
// either completion or the next unanswered question.
func (c *conversationService) ApplyAnswers(state *models.SkillsState, updates []models.SkillAnswer) (*StepResult, error) {
	for _, update := range updates {
		rec, ok := state.Get(update.SkillName)
		if !ok {
			if c.strictSkillNames {
				return nil, apperrors.NewInvalidState(fmt.Sprintf("unknown skill %q", update.SkillName))
			}
			continue
		}
		rec.Answer = update.Answer
		if update.TimeTaken > 0 {
			rec.TimeTaken = update.TimeTaken
		}
	}

	return c.NextQuestion(state), nil
}

// NextQuestion implements ConversationService. Pure read: it never mutates
// the state, and repeated calls on the same state return the same record.
func (c *conversationService) NextQuestion(state *models.SkillsState) *StepResult {
	answered := state.AnsweredCount()
	total := state.Len()

	result := &StepResult{
		Skills:     state,
		Unanswered: total - answered,
		Progress:   models.Progress{Answered: answered, Total: total},
	}

	if name, rec, ok := state.FirstUnanswered(); ok {
		result.Next = &models.NextQuestion{Name: name, Question: rec.Question}
		return result
	}

	result.AllAnswered = true
	return result
}
