package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bbditm/resume-assistant/internal/config"
	"bbditm/resume-assistant/internal/models"
	"bbditm/resume-assistant/internal/repositories"
	"bbditm/resume-assistant/internal/services"
)

// Ingests the institute's reference PDFs (program brochures, admissions FAQs,
// placement reports) into the knowledge base backing the FAQ branch. The
// category is taken from the subdirectory a document sits in, e.g.
// institute_docs/programs/btech_cse.pdf -> category "programs".
func main() {
	log.Println("🚀 Starting document ingestion...")

	cfg := config.Load()

	geminiService, err := services.NewGeminiService(
		cfg.Gemini.APIKey,
		cfg.Gemini.Model,
		cfg.Gemini.UploadPollInterval,
		cfg.Gemini.UploadPollTimeout,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	knowledgeStore, err := services.NewQdrantKnowledgeStore(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := knowledgeStore.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}
	knowledgeRepo := repositories.NewKnowledgeRepository(db)

	parser := services.NewDocumentParserService()
	chunker := services.NewTextChunker()

	documents, err := collectDocuments(cfg.Knowledge.DocsDir)
	if err != nil {
		log.Fatalf("❌ Failed to scan %s: %v", cfg.Knowledge.DocsDir, err)
	}
	if len(documents) == 0 {
		log.Fatalf("❌ No PDF documents found under %s", cfg.Knowledge.DocsDir)
	}

	ctx := context.Background()
	successCount := 0
	failCount := 0

	for _, doc := range documents {
		log.Printf("\n📄 Processing: %s", doc.Title)
		log.Printf("   Path: %s", doc.Path)
		log.Printf("   Category: %s", doc.Category)

		if _, err := knowledgeRepo.FindByFilename(filepath.Base(doc.Path)); err == nil {
			log.Printf("   ⏭️  Already ingested, skipping...")
			continue
		} else if err != gorm.ErrRecordNotFound {
			log.Printf("   ❌ Registry lookup failed: %v", err)
			failCount++
			continue
		}

		log.Printf("   📖 Extracting text...")
		content, err := parser.ExtractFile(doc.Path)
		if err != nil {
			log.Printf("   ❌ Failed to extract text: %v", err)
			failCount++
			continue
		}
		log.Printf("   ✅ Extracted %d pages, %d characters", content.PageCount, len(content.Text))

		log.Printf("   ✂️  Chunking text...")
		chunks := chunker.ChunkText(content.Text, 1000, 200)
		log.Printf("   ✅ Created %d chunks", len(chunks))

		docID := uuid.New()
		stored := 0

		log.Printf("   🔄 Embedding and storing chunks...")
		for i, chunk := range chunks {
			embedding, err := geminiService.GenerateEmbedding(ctx, chunk)
			if err != nil {
				log.Printf("   ❌ Failed to generate embedding for chunk %d: %v", i+1, err)
				continue
			}

			if err := knowledgeStore.UpsertChunk(ctx, docID.String(), doc.Category, doc.Title, chunk, embedding); err != nil {
				log.Printf("   ❌ Failed to store chunk %d: %v", i+1, err)
				continue
			}
			stored++

			if (i+1)%5 == 0 || i == len(chunks)-1 {
				log.Printf("   📊 Progress: %d/%d chunks stored", i+1, len(chunks))
			}
		}

		record := &models.KnowledgeDocument{
			ID:         docID,
			Filename:   filepath.Base(doc.Path),
			Title:      doc.Title,
			Category:   doc.Category,
			FilePath:   doc.Path,
			ChunkCount: stored,
		}
		if err := knowledgeRepo.Create(record); err != nil {
			log.Printf("   ❌ Failed to register document: %v", err)
			failCount++
			continue
		}

		log.Printf("   ✅ Successfully ingested %s", doc.Title)
		successCount++
	}

	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Ingestion Summary:")
	log.Printf("   ✅ Successful: %d documents", successCount)
	log.Printf("   ❌ Failed: %d documents", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Println("⚠️  Some documents failed to ingest. Please check the logs above.")
		os.Exit(1)
	}

	log.Println("✅ All documents ingested successfully!")
}

type pendingDocument struct {
	Path     string
	Category string
	Title    string
}

func collectDocuments(root string) ([]pendingDocument, error) {
	var docs []pendingDocument

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.EqualFold(filepath.Ext(path), ".pdf") {
			return nil
		}

		category := "general"
		if rel, err := filepath.Rel(root, path); err == nil {
			if dir := filepath.Dir(rel); dir != "." {
				category = strings.Split(dir, string(filepath.Separator))[0]
			}
		}

		title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		title = strings.ReplaceAll(title, "_", " ")

		docs = append(docs, pendingDocument{Path: path, Category: category, Title: title})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk failed: %w", err)
	}

	return docs, nil
}
