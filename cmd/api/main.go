package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"nextstep/scholarship-matcher/internal/config"
	"nextstep/scholarship-matcher/internal/handlers"
	"nextstep/scholarship-matcher/internal/logger"
	"nextstep/scholarship-matcher/internal/repositories"
	"nextstep/scholarship-matcher/internal/services"
)

func main() {
	cfg := config.Load()

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer log.Sync()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}

	candidateRepo := repositories.NewCandidateRepository(db)
	scholarshipRepo := repositories.NewScholarshipRepository(db)
	matchRepo := repositories.NewMatchRepository(db)

	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatal("failed to create upload directory", zap.Error(err))
	}

	pdfParser := services.NewPDFParserService()
	annotator := services.NewProseAnnotator()
	cvParser := services.NewCVParser(pdfParser, annotator)

	embedder, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatal("failed to initialize embedding client", zap.Error(err))
	}

	// Loaded once here, released on shutdown; scoring outside that window
	// fails with ErrModelUnavailable.
	matcher := services.NewMatcher(embedder, cfg.Matcher.EmbedTimeout)

	index, err := services.NewScholarshipIndex(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
		embedder,
		cfg.Matcher.RetryMaxAttempts,
	)
	if err != nil {
		log.Fatal("failed to initialize scholarship index", zap.Error(err))
	}
	if err := index.InitCollection(); err != nil {
		log.Fatal("failed to initialize qdrant collection", zap.Error(err))
	}

	orchestrator := services.NewMatchOrchestrator(
		candidateRepo,
		scholarshipRepo,
		matchRepo,
		matcher,
		log.Named("orchestrator"),
	)

	worker := services.NewWorker(
		candidateRepo,
		scholarshipRepo,
		orchestrator,
		cfg.Worker.Concurrency,
		cfg.Worker.QueueSize,
		log.Named("worker"),
	)
	worker.Start(context.Background())

	cvHandler := handlers.NewCVHandler(
		candidateRepo,
		matchRepo,
		storageService,
		cvParser,
		worker,
		cfg.Storage.MaxFileSize,
	)
	scholarshipHandler := handlers.NewScholarshipHandler(
		scholarshipRepo,
		index,
		worker,
		log.Named("handlers"),
	)

	app := fiber.New(fiber.Config{
		AppName:      "Scholarship Matcher API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/candidates/:id/cv", cvHandler.HandleUploadCV)
	api.Get("/candidates/:id/matches", cvHandler.HandleGetMatches)
	api.Post("/candidates/:id/rematch", cvHandler.HandleRematch)

	api.Post("/scholarships", scholarshipHandler.HandleCreate)
	api.Get("/scholarships", scholarshipHandler.HandleList)
	api.Get("/scholarships/search", scholarshipHandler.HandleSearch)
	api.Get("/scholarships/:id", scholarshipHandler.HandleGet)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("shutting down")
		worker.Stop()
		matcher.Close()
		if err := app.Shutdown(); err != nil {
			log.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info("server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
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
