package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"google.golang.org/genai"

	"bbditm/resume-assistant/internal/apperrors"
	"bbditm/resume-assistant/internal/models"
)

type GeminiService interface {
	GenerateText(ctx context.Context, systemPrompt, prompt string) (string, error)
	GenerateWithFile(ctx context.Context, systemPrompt, prompt string, file *models.FileReference) (string, error)
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	UploadFile(ctx context.Context, r io.Reader, mimeType, displayName string) (*models.FileReference, error)
}

type geminiService struct {
	client       *genai.Client
	modelName    string
	embedModel   string
	pollInterval time.Duration
	pollTimeout  time.Duration
}

func NewGeminiService(apiKey, modelName string, pollInterval, pollTimeout time.Duration) (GeminiService, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	return &geminiService{
		client:       client,
		modelName:    modelName,
		embedModel:   "text-embedding-004",
		pollInterval: pollInterval,
		pollTimeout:  pollTimeout,
	}, nil
}

// GenerateText implements GeminiService.
func (g *geminiService) GenerateText(ctx context.Context, systemPrompt, prompt string) (string, error) {
	return g.generate(ctx, systemPrompt, []*genai.Part{genai.NewPartFromText(prompt)})
}

// GenerateWithFile implements GeminiService. The file must have been uploaded
// to the provider beforehand; it is referenced by URI, never re-sent.
func (g *geminiService) GenerateWithFile(ctx context.Context, systemPrompt, prompt string, file *models.FileReference) (string, error) {
	parts := []*genai.Part{
		genai.NewPartFromURI(file.URI, file.MimeType),
		genai.NewPartFromText(prompt),
	}
	return g.generate(ctx, systemPrompt, parts)
}

func (g *geminiService) generate(ctx context.Context, systemPrompt string, parts []*genai.Part) (string, error) {
	temperature := float32(0.4)
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 4096,
	}
	if systemPrompt != "" {
		config.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, config)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}
	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("no text content in response")
	}

	return text, nil
}

// GenerateEmbedding implements GeminiService.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	// Truncate text if too long (max ~10000 tokens for embedding)
	if len(text) > 40000 {
		text = text[:40000]
	}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	return result.Embeddings[0].Values, nil
}

// UploadFile implements GeminiService. The provider ingests files
// asynchronously, so after the upload the file state is polled at a fixed
// interval until it turns active, up to a wall-clock ceiling.
func (g *geminiService) UploadFile(ctx context.Context, r io.Reader, mimeType, displayName string) (*models.FileReference, error) {
	file, err := g.client.Files.Upload(ctx, r, &genai.UploadFileConfig{
		MIMEType:    mimeType,
		DisplayName: displayName,
	})
	if err != nil {
		return nil, apperrors.NewUploadFailed(err.Error())
	}

	deadline := time.Now().Add(g.pollTimeout)
	for file.State == genai.FileStateProcessing {
		if time.Now().After(deadline) {
			return nil, apperrors.NewUploadTimeout(fmt.Sprintf("file %s still processing after %s", file.Name, g.pollTimeout))
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled while waiting for file processing: %w", ctx.Err())
		case <-time.After(g.pollInterval):
		}

		file, err = g.client.Files.Get(ctx, file.Name, nil)
		if err != nil {
			return nil, apperrors.NewUploadFailed(fmt.Sprintf("failed to check file state: %v", err))
		}
	}

	if file.State == genai.FileStateFailed {
		return nil, apperrors.NewUploadFailed(fmt.Sprintf("provider reported failed state for %s", file.Name))
	}

	return &models.FileReference{
		URI:      file.URI,
		MimeType: file.MIMEType,
	}, nil
}
