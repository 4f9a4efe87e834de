package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

// KnowledgeStore holds embedded chunks of the institute's reference documents
// (program brochures, admissions FAQs, placement reports) for the FAQ branch.
type KnowledgeStore interface {
	InitCollection() error
	UpsertChunk(ctx context.Context, docID, category, title, text string, embedding []float32) error
	Search(ctx context.Context, queryEmbedding []float32, limit int) ([]KnowledgeChunk, error)
	DeleteDocument(ctx context.Context, docID string) error
}

type KnowledgeChunk struct {
	DocID    string
	Category string
	Title    string
	Text     string
	Score    float32
}

type qdrantKnowledgeStore struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewQdrantKnowledgeStore(urlStr, apiKey, collectionName string) (KnowledgeStore, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port, not the REST one
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &qdrantKnowledgeStore{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 vector size
	}, nil
}

// InitCollection implements KnowledgeStore.
func (q *qdrantKnowledgeStore) InitCollection() error {
	ctx := context.Background()

	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Println("✅ Knowledge collection already exists")
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", q.collectionName)
	return nil
}

// UpsertChunk implements KnowledgeStore.
func (q *qdrantKnowledgeStore) UpsertChunk(ctx context.Context, docID, category, title, text string, embedding []float32) error {
	pointID := uuid.New()

	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDNum(uint64(pointID.ID())),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"doc_id":   docID,
			"category": category,
			"title":    title,
			"text":     text,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// Search implements KnowledgeStore.
func (q *qdrantKnowledgeStore) Search(ctx context.Context, queryEmbedding []float32, limit int) ([]KnowledgeChunk, error) {
	searchResult, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	var chunks []KnowledgeChunk
	for _, point := range searchResult {
		chunk := KnowledgeChunk{Score: point.Score}

		for key, value := range point.Payload {
			str, ok := value.GetKind().(*qdrant.Value_StringValue)
			if !ok {
				continue
			}
			switch key {
			case "doc_id":
				chunk.DocID = str.StringValue
			case "category":
				chunk.Category = str.StringValue
			case "title":
				chunk.Title = str.StringValue
			case "text":
				chunk.Text = str.StringValue
			}
		}

		chunks = append(chunks, chunk)
	}

	return chunks, nil
}

// DeleteDocument implements KnowledgeStore. Removes every chunk of a document.
func (q *qdrantKnowledgeStore) DeleteDocument(ctx context.Context, docID string) error {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("doc_id", docID),
		},
	}

	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: filter,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete document chunks: %w", err)
	}

	return nil
}
