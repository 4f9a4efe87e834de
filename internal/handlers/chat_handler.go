package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/tidwall/gjson"

	"bbditm/resume-assistant/internal/apperrors"
	"bbditm/resume-assistant/internal/models"
	"bbditm/resume-assistant/internal/services"
)

const (
	actionSubmitSkillAnswer = "submit_skill_answer"
	actionGetNextQuestion   = "get_next_question"
	actionAnalyzeSkills     = "analyze_skills"

	defaultReviewMessage = "Please review my resume"
	retrievalLimit       = 4
)

// ChatHandler is the conversation router: one endpoint, five mutually
// exclusive branches selected by the request's action and present fields. It
// owns no state between requests; the skills mapping travels with the caller.
type ChatHandler struct {
	gemini       services.GeminiService
	conversation services.ConversationService
	parser       services.DocumentParserService
	retriever    services.RetrieverService
	prompts      *services.PromptBuilder
	formatter    *services.ResponseFormatter
	passingScore int
}

// NewChatHandler wires the router. gemini may be nil when no provider
// credential is configured; retriever may be nil when the knowledge base is
// disabled.
func NewChatHandler(
	gemini services.GeminiService,
	conversation services.ConversationService,
	parser services.DocumentParserService,
	retriever services.RetrieverService,
	passingScore int,
) *ChatHandler {
	return &ChatHandler{
		gemini:       gemini,
		conversation: conversation,
		parser:       parser,
		retriever:    retriever,
		prompts:      services.NewPromptBuilder(),
		formatter:    services.NewResponseFormatter(),
		passingScore: passingScore,
	}
}

// HandleChat handles POST /api/v1/chat.
func (h *ChatHandler) HandleChat(c *fiber.Ctx) error {
	message := c.FormValue("message")
	fileHeader, _ := c.FormFile("file")

	if h.gemini == nil {
		return respondError(c, apperrors.NewProviderNotConfigured())
	}

	switch c.FormValue("action") {
	case actionSubmitSkillAnswer:
		return h.handleSubmitAnswer(c)
	case actionGetNextQuestion:
		return h.handleNextQuestion(c)
	case actionAnalyzeSkills:
		return h.handleAnalyzeSkills(c)
	default:
		if fileHeader != nil {
			return h.handleResumeScoring(c, message, fileHeader)
		}
		if message == "" {
			return respondError(c, apperrors.NewMissingInput())
		}
		return h.handleGeneralChat(c, message)
	}
}

// handleSubmitAnswer applies one answer or a batch of answers to the replayed
// state and reports either the next question or completion.
func (h *ChatHandler) handleSubmitAnswer(c *fiber.Ctx) error {
	state, err := parseSkillsState(c)
	if err != nil {
		return respondError(c, err)
	}

	updates, err := parseAnswerUpdates(c)
	if err != nil {
		return respondError(c, err)
	}

	result, err := h.conversation.ApplyAnswers(state, updates)
	if err != nil {
		return respondError(c, err)
	}

	if result.AllAnswered {
		return c.JSON(models.ChatResponse{
			Response:    h.formatter.FormatCompletion(result.Progress),
			Skills:      result.Skills,
			AllAnswered: models.Bool(true),
			Progress:    &result.Progress,
		})
	}

	return c.JSON(models.ChatResponse{
		Response:        h.formatter.FormatNextQuestion(result.Next, result.Progress),
		Skills:          result.Skills,
		AllAnswered:     models.Bool(false),
		UnansweredCount: models.Int(result.Unanswered),
		NextQuestion:    result.Next,
		Progress:        &result.Progress,
	})
}

// handleNextQuestion is a pure read over the replayed state.
func (h *ChatHandler) handleNextQuestion(c *fiber.Ctx) error {
	state, err := parseSkillsState(c)
	if err != nil {
		return respondError(c, err)
	}

	result := h.conversation.NextQuestion(state)

	if result.AllAnswered {
		return c.JSON(models.ChatResponse{
			Response:    h.formatter.FormatCompletion(result.Progress),
			AllAnswered: models.Bool(true),
			Progress:    &result.Progress,
		})
	}

	return c.JSON(models.ChatResponse{
		Response:        h.formatter.FormatNextQuestion(result.Next, result.Progress),
		AllAnswered:     models.Bool(false),
		UnansweredCount: models.Int(result.Unanswered),
		NextQuestion:    result.Next,
		Progress:        &result.Progress,
	})
}

// handleAnalyzeSkills runs the final comparative analysis over the fully
// answered state and the previously uploaded resume.
func (h *ChatHandler) handleAnalyzeSkills(c *fiber.Ctx) error {
	state, err := parseSkillsState(c)
	if err != nil {
		return respondError(c, err)
	}

	fileURI := c.FormValue("fileUri")
	fileMimeType := c.FormValue("fileMimeType")
	if fileURI == "" || fileMimeType == "" {
		return respondError(c, apperrors.NewInvalidState("fileUri and fileMimeType are required for analysis"))
	}

	if name, _, ok := state.FirstUnanswered(); ok {
		return respondError(c, apperrors.NewIncompleteState("skill \""+name+"\" has no answer yet"))
	}

	prompt, err := h.prompts.BuildSkillAnalysisPrompt(state)
	if err != nil {
		return respondError(c, err)
	}

	reply, err := h.gemini.GenerateWithFile(c.Context(), h.prompts.SystemPrompt(), prompt, &models.FileReference{
		URI:      fileURI,
		MimeType: fileMimeType,
	})
	if err != nil {
		return respondError(c, err)
	}

	var analysis models.SkillAnalysis
	if err := services.DecodeModelJSON(reply, &analysis); err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.ChatResponse{
		Response: h.formatter.FormatAnalysis(&analysis),
		Analysis: &analysis,
	})
}

// handleResumeScoring uploads the resume, scores it against the message, and
// past the threshold attempts skill extraction for the assessment loop.
func (h *ChatHandler) handleResumeScoring(c *fiber.Ctx, message string, fileHeader *multipart.FileHeader) error {
	data, err := readUpload(fileHeader)
	if err != nil {
		return respondError(c, err)
	}

	payload, mimeType, err := services.PrepareUpload(h.parser, data, fileHeader.Header.Get("Content-Type"), fileHeader.Filename)
	if err != nil {
		return respondError(c, err)
	}

	fileRef, err := h.gemini.UploadFile(c.Context(), bytes.NewReader(payload), mimeType, fileHeader.Filename)
	if err != nil {
		return respondError(c, err)
	}

	if message == "" {
		message = defaultReviewMessage
	}

	reply, err := h.gemini.GenerateWithFile(c.Context(), h.prompts.SystemPrompt(), h.prompts.BuildScoringPrompt(message), fileRef)
	if err != nil {
		return respondError(c, err)
	}

	// The model does not contractually return bare JSON. When salvage fails,
	// or the payload is not score-shaped, the reply is treated as plain chat
	// text rather than failing the request.
	scorePayload, ok := services.ExtractJSONObject(reply)
	if !ok || !gjson.Get(scorePayload, "score").Exists() {
		return c.JSON(models.ChatResponse{Response: reply})
	}

	var score models.ResumeScore
	if err := json.Unmarshal([]byte(scorePayload), &score); err != nil {
		return c.JSON(models.ChatResponse{Response: reply})
	}

	if score.Score < h.passingScore {
		return c.JSON(models.ChatResponse{Response: h.formatter.FormatCritique(&score)})
	}

	skills, err := h.extractSkills(c, fileRef)
	if err != nil {
		// Degrade gracefully: scoring succeeded, the skills section is simply
		// omitted.
		log.Printf("⚠️  Skill extraction failed: %v\n", err)
		return c.JSON(models.ChatResponse{Response: h.formatter.FormatPassingScore(&score, 0)})
	}

	count := skills.Len()
	return c.JSON(models.ChatResponse{
		Response:     h.formatter.FormatPassingScore(&score, count),
		Skills:       skills,
		HasSkills:    models.Bool(true),
		SkillsCount:  models.Int(count),
		FileURI:      fileRef.URI,
		FileMimeType: fileRef.MimeType,
	})
}

func (h *ChatHandler) extractSkills(c *fiber.Ctx, fileRef *models.FileReference) (*models.SkillsState, error) {
	reply, err := h.gemini.GenerateWithFile(c.Context(), h.prompts.SystemPrompt(), h.prompts.BuildSkillExtractionPrompt(), fileRef)
	if err != nil {
		return nil, err
	}

	skills, err := services.ParseSkillQuestions(reply)
	if err != nil {
		return nil, err
	}
	if skills.Len() == 0 {
		return nil, apperrors.NewMalformedModelOutput("extraction returned no skills")
	}
	return skills, nil
}

// handleGeneralChat answers FAQ and career questions, grounded with institute
// documents when the knowledge base is enabled.
func (h *ChatHandler) handleGeneralChat(c *fiber.Ctx, message string) error {
	context := ""
	if h.retriever != nil {
		context = h.retriever.RetrieveContext(c.Context(), message, retrievalLimit)
	}

	reply, err := h.gemini.GenerateText(c.Context(), h.prompts.SystemPrompt(), h.prompts.BuildChatPrompt(message, context))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.ChatResponse{Response: reply})
}

func parseSkillsState(c *fiber.Ctx) (*models.SkillsState, error) {
	raw := c.FormValue("skills")
	if raw == "" {
		return nil, apperrors.NewInvalidState("prior skills state is required for this action")
	}

	state := models.NewSkillsState()
	if err := json.Unmarshal([]byte(raw), state); err != nil {
		return nil, apperrors.NewInvalidState(err.Error())
	}
	return state, nil
}

// parseAnswerUpdates collects the single skillAnswer update and/or the batch
// skillsAnswers mapping into one update list.
func parseAnswerUpdates(c *fiber.Ctx) ([]models.SkillAnswer, error) {
	var updates []models.SkillAnswer

	if raw := c.FormValue("skillAnswer"); raw != "" {
		var single models.SkillAnswer
		if err := json.Unmarshal([]byte(raw), &single); err != nil {
			return nil, apperrors.NewInvalidState("skillAnswer: " + err.Error())
		}
		updates = append(updates, single)
	}

	if raw := c.FormValue("skillsAnswers"); raw != "" {
		var batch map[string]string
		if err := json.Unmarshal([]byte(raw), &batch); err != nil {
			return nil, apperrors.NewInvalidState("skillsAnswers: " + err.Error())
		}
		for name, answer := range batch {
			updates = append(updates, models.SkillAnswer{SkillName: name, Answer: answer})
		}
	}

	if len(updates) == 0 {
		return nil, apperrors.NewInvalidState("skillAnswer or skillsAnswers is required")
	}
	return updates, nil
}

func readUpload(fileHeader *multipart.FileHeader) ([]byte, error) {
	f, err := fileHeader.Open()
	if err != nil {
		return nil, apperrors.NewUploadFailed("failed to open uploaded file: " + err.Error())
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, apperrors.NewUploadFailed("failed to read uploaded file: " + err.Error())
	}
	return data, nil
}

// respondError renders every failure as a single human-readable error string.
// Unknown errors collapse to a generic 500 so no provider detail leaks.
func respondError(c *fiber.Ctx, err error) error {
	var appErr *apperrors.Error
	if e, ok := err.(*apperrors.Error); ok {
		appErr = e
	}

	if appErr != nil {
		return c.Status(appErr.StatusCode()).JSON(fiber.Map{"error": appErr.Error()})
	}

	log.Printf("❌ Chat request failed: %v\n", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Failed to process your request. Please try again.",
	})
}
