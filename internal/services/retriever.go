package services

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// RetrieverService grounds the FAQ branch: it embeds the user's question and
// pulls the closest institute document chunks from the knowledge store. The
// assistant works without it; retrieval failures only cost grounding.
type RetrieverService interface {
	RetrieveContext(ctx context.Context, query string, limit int) string
}

type retrieverService struct {
	gemini GeminiService
	store  KnowledgeStore
}

func NewRetrieverService(gemini GeminiService, store KnowledgeStore) RetrieverService {
	return &retrieverService{gemini: gemini, store: store}
}

// RetrieveContext implements RetrieverService. Returns the formatted chunk
// context, or the empty string when nothing relevant could be retrieved.
func (r *retrieverService) RetrieveContext(ctx context.Context, query string, limit int) string {
	embedding, err := r.gemini.GenerateEmbedding(ctx, query)
	if err != nil {
		log.Printf("⚠️  Failed to embed FAQ query: %v\n", err)
		return ""
	}

	chunks, err := r.store.Search(ctx, embedding, limit)
	if err != nil {
		log.Printf("⚠️  Knowledge search failed: %v\n", err)
		return ""
	}
	if len(chunks) == 0 {
		return ""
	}

	var parts []string
	for i, chunk := range chunks {
		parts = append(parts, fmt.Sprintf("--- %s (context %d, score %.2f) ---\n%s",
			chunk.Title, i+1, chunk.Score, strings.TrimSpace(chunk.Text)))
	}
	return strings.Join(parts, "\n\n")
}
