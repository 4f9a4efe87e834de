package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"bbditm/resume-assistant/internal/config"
	"bbditm/resume-assistant/internal/handlers"
	"bbditm/resume-assistant/internal/repositories"
	"bbditm/resume-assistant/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize Gemini AI. A missing credential is not fatal at startup: the
	// chat endpoint reports it per request, matching the site's behavior.
	var geminiService services.GeminiService
	if cfg.Gemini.APIKey != "" {
		var err error
		geminiService, err = services.NewGeminiService(
			cfg.Gemini.APIKey,
			cfg.Gemini.Model,
			cfg.Gemini.UploadPollInterval,
			cfg.Gemini.UploadPollTimeout,
		)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
		}
		log.Println("✅ Gemini AI initialized successfully")
	} else {
		log.Println("⚠️  GEMINI_API_KEY not set; chat requests will fail until configured")
	}

	parserService := services.NewDocumentParserService()
	conversationService := services.NewConversationService(cfg.Assessment.StrictSkillNames)
	log.Println("✅ Services initialized successfully")

	// Initialize the institute knowledge base (optional)
	var retrieverService services.RetrieverService
	var knowledgeHandler *handlers.KnowledgeHandler
	if cfg.Knowledge.Enabled && geminiService != nil {
		knowledgeStore, err := services.NewQdrantKnowledgeStore(
			cfg.Qdrant.URL,
			cfg.Qdrant.APIKey,
			cfg.Qdrant.Collection,
		)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
		}

		if err := knowledgeStore.InitCollection(); err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
		}

		db, err := config.InitDatabase(cfg)
		if err != nil {
			log.Fatalf("❌ Failed to initialize database: %v", err)
		}

		retrieverService = services.NewRetrieverService(geminiService, knowledgeStore)
		knowledgeHandler = handlers.NewKnowledgeHandler(repositories.NewKnowledgeRepository(db), knowledgeStore)
		log.Println("✅ Knowledge base initialized successfully")
	}

	// Initialize Handlers
	chatHandler := handlers.NewChatHandler(
		geminiService,
		conversationService,
		parserService,
		retrieverService,
		cfg.Assessment.PassingScore,
	)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "BBDITM Resume Review Assistant API",
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/chat", chatHandler.HandleChat)

	if knowledgeHandler != nil {
		api.Get("/knowledge/documents", knowledgeHandler.ListDocuments)
		api.Delete("/knowledge/documents/:id", knowledgeHandler.DeleteDocument)
	}

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "BBDITM Resume Review Assistant API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/chat",
				"GET /api/v1/health",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
