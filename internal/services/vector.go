package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"nextstep/scholarship-matcher/internal/models"
)

// ScholarshipIndex maintains a vector index over scholarship descriptive text
// for similar-scholarship search. It sits beside the matching pipeline, not in
// it: match scores are always computed fresh from the live rows.
type ScholarshipIndex interface {
	InitCollection() error
	IndexScholarship(ctx context.Context, scholarship *models.Scholarship) error
	SearchSimilar(ctx context.Context, query string, limit int) ([]models.ScholarshipSearchResult, error)
	DeleteScholarship(ctx context.Context, scholarshipID string) error
}

type scholarshipIndex struct {
	client         *qdrant.Client
	embedder       EmbeddingService
	chunker        TextChunker
	collectionName string
	vectorSize     uint64
	maxRetries     int
}

func NewScholarshipIndex(urlStr, apiKey, collectionName string, embedder EmbeddingService, maxRetries int) (ScholarshipIndex, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC client, default gRPC port
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

	return &scholarshipIndex{
		client:         client,
		embedder:       embedder,
		chunker:        NewTextChunker(),
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 size
		maxRetries:     maxRetries,
	}, nil
}

// InitCollection implements ScholarshipIndex.
func (s *scholarshipIndex) InitCollection() error {
	ctx := context.Background()

	exists, err := s.client.CollectionExists(ctx, s.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}
	if exists {
		return nil
	}

	err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: s.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     s.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	return nil
}

// IndexScholarship implements ScholarshipIndex. The scoring text is chunked,
// each chunk embedded document-side and upserted; prior points for the
// scholarship are removed first so re-indexing never duplicates.
func (s *scholarshipIndex) IndexScholarship(ctx context.Context, scholarship *models.Scholarship) error {
	text := ScholarshipText(scholarship)
	if text == "" {
		return nil
	}

	if err := s.DeleteScholarship(ctx, scholarship.ID.String()); err != nil {
		return err
	}

	chunks := s.chunker.ChunkText(text, 1000, 200)

	var points []*qdrant.PointStruct
	for i, chunk := range chunks {
		embedding, err := s.embedder.EmbedDocumentWithRetry(ctx, chunk, s.maxRetries)
		if err != nil {
			return fmt.Errorf("failed to embed chunk %d: %w", i, err)
		}

		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewIDUUID(uuid.New().String()),
			Vectors: qdrant.NewVectors(embedding...),
			Payload: qdrant.NewValueMap(map[string]interface{}{
				"scholarship_id": scholarship.ID.String(),
				"name":           scholarship.Name,
				"text":           chunk,
			}),
		})
	}

	if len(points) == 0 {
		return nil
	}

	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.collectionName,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert points: %w", err)
	}

	return nil
}

// SearchSimilar implements ScholarshipIndex.
func (s *scholarshipIndex) SearchSimilar(ctx context.Context, query string, limit int) ([]models.ScholarshipSearchResult, error) {
	if limit <= 0 {
		limit = 10
	}

	embedding, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	points, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collectionName,
		Query:          qdrant.NewQuery(embedding...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	var results []models.ScholarshipSearchResult
	for _, point := range points {
		result := models.ScholarshipSearchResult{Score: point.Score}

		if v, ok := point.Payload["scholarship_id"]; ok {
			if sv, ok := v.GetKind().(*qdrant.Value_StringValue); ok {
				result.ScholarshipID = sv.StringValue
			}
		}
		if v, ok := point.Payload["name"]; ok {
			if sv, ok := v.GetKind().(*qdrant.Value_StringValue); ok {
				result.Name = sv.StringValue
			}
		}
		if v, ok := point.Payload["text"]; ok {
			if sv, ok := v.GetKind().(*qdrant.Value_StringValue); ok {
				result.Snippet = sv.StringValue
			}
		}

		results = append(results, result)
	}

	return results, nil
}

// DeleteScholarship implements ScholarshipIndex.
func (s *scholarshipIndex) DeleteScholarship(ctx context.Context, scholarshipID string) error {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("scholarship_id", scholarshipID),
		},
	}

	_, err := s.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: s.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: filter,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete scholarship points: %w", err)
	}

	return nil
}
