package main

import (
	"context"
	"log"

	"nextstep/scholarship-matcher/internal/config"
	"nextstep/scholarship-matcher/internal/repositories"
	"nextstep/scholarship-matcher/internal/services"
)

// Backfill tool: re-embeds and re-indexes every scholarship into the vector
// collection. Run after changing the embedding model or wiping the index.
func main() {
	log.Println("Starting scholarship index backfill...")

	cfg := config.Load()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	embedder, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("failed to initialize embedding client: %v", err)
	}

	index, err := services.NewScholarshipIndex(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
		embedder,
		cfg.Matcher.RetryMaxAttempts,
	)
	if err != nil {
		log.Fatalf("failed to initialize scholarship index: %v", err)
	}

	if err := index.InitCollection(); err != nil {
		log.Fatalf("failed to initialize collection: %v", err)
	}

	scholarshipRepo := repositories.NewScholarshipRepository(db)
	scholarships, err := scholarshipRepo.FindAll(0, 0)
	if err != nil {
		log.Fatalf("failed to load scholarships: %v", err)
	}

	ctx := context.Background()
	successCount := 0
	failCount := 0

	for i := range scholarships {
		scholarship := &scholarships[i]
		log.Printf("indexing %s (%s)", scholarship.Name, scholarship.ID)

		if err := index.IndexScholarship(ctx, scholarship); err != nil {
			log.Printf("  failed: %v", err)
			failCount++
			continue
		}
		successCount++
	}

	log.Printf("Backfill complete: %d indexed, %d failed", successCount, failCount)
}
