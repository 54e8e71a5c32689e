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

	"adityasetiawan/resume-ranker/internal/config"
	"adityasetiawan/resume-ranker/internal/handlers"
	"adityasetiawan/resume-ranker/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	log.Println("✅ Config loaded successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	extractor := services.NewTextExtractor(
		services.NewPDFParserService(),
		services.NewDocxParserService(),
	)
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI
	llmClient, err := services.NewGeminiClient(cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize pipelines around the shared criteria store
	criteriaStore := services.NewCriteriaStore()
	criteriaService := services.NewCriteriaService(llmClient, criteriaStore)
	scoringService := services.NewScoringService(llmClient, criteriaStore, extractor, storageService)
	serializer := services.NewResultSerializer()
	log.Println("✅ Pipelines initialized")

	// Initialize handlers
	extractHandler := handlers.NewExtractHandler(
		storageService,
		extractor,
		criteriaService,
		cfg.Storage.MaxFileSize,
	)
	scoreHandler := handlers.NewScoreHandler(
		scoringService,
		serializer,
		cfg.Storage.MaxFileSize,
	)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume Ranking and Scoring API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) * 10,
		ErrorHandler: handlers.ErrorHandler,
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
	app.Post("/extract-criteria", extractHandler.HandleExtractCriteria)
	app.Post("/score-resumes", scoreHandler.HandleScoreResumes)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume Ranking and Scoring API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /extract-criteria",
				"POST /score-resumes",
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
