package services

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Embedding task types. The matcher is asymmetric: the candidate narrative is
// embedded as a query, the scholarship text as a document.
const (
	taskTypeQuery    = "RETRIEVAL_QUERY"
	taskTypeDocument = "RETRIEVAL_DOCUMENT"
)

// EmbeddingService produces fixed-size vectors for the two sides of the match.
type EmbeddingService interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	EmbedDocument(ctx context.Context, text string) ([]float32, error)
	EmbedDocumentWithRetry(ctx context.Context, text string, maxRetries int) ([]float32, error)
}

type geminiService struct {
	client     *genai.Client
	embedModel string
}

func NewGeminiService(apiKey string) (EmbeddingService, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:     client,
		embedModel: "text-embedding-004",
	}, nil
}

// EmbedQuery implements EmbeddingService.
func (g *geminiService) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return g.embed(ctx, text, taskTypeQuery)
}

// EmbedDocument implements EmbeddingService.
func (g *geminiService) EmbedDocument(ctx context.Context, text string) ([]float32, error) {
	return g.embed(ctx, text, taskTypeDocument)
}

// EmbedDocumentWithRetry implements EmbeddingService.
func (g *geminiService) EmbedDocumentWithRetry(ctx context.Context, text string, maxRetries int) ([]float32, error) {
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		vector, err := g.EmbedDocument(ctx, text)
		if err == nil {
			return vector, nil
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}
	}

	return nil, fmt.Errorf("failed after %d attempts: %w", maxRetries, lastErr)
}

func (g *geminiService) embed(ctx context.Context, text, taskType string) ([]float32, error) {
	// Stay under the embedding model's input limit
	if len(text) > 40000 {
		text = text[:40000]
	}

	config := &genai.EmbedContentConfig{TaskType: taskType}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), config)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	return result.Embeddings[0].Values, nil
}
