package services

import (
	"context"
	"math"
	"strings"
	"sync"
	"time"

	"nextstep/scholarship-matcher/internal/models"
)

// MatchThreshold is the fixed persistence cutoff: a match row is written only
// when the score is strictly above it.
const MatchThreshold = 30.0

// Matcher scores a candidate narrative against a scholarship's descriptive
// text. The embedding backend is an expensive shared resource: the matcher is
// constructed once at startup and Close released at shutdown, after which
// scoring calls fail with ErrModelUnavailable. Concurrent Score calls are
// safe; only the lifecycle transition takes the write lock.
type Matcher struct {
	mu       sync.RWMutex
	embedder EmbeddingService
	timeout  time.Duration
	closed   bool
}

func NewMatcher(embedder EmbeddingService, timeout time.Duration) *Matcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Matcher{
		embedder: embedder,
		timeout:  timeout,
	}
}

// Score returns the compatibility of the narrative with the scholarship as a
// value in [0, 100] rounded to 2 decimal places. Empty input on either side
// scores 0 without touching the embedding backend.
func (m *Matcher) Score(ctx context.Context, statement string, scholarship *models.Scholarship) (float64, error) {
	scholarshipText := ScholarshipText(scholarship)
	if strings.TrimSpace(statement) == "" || scholarshipText == "" {
		return 0.0, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return 0.0, ErrModelUnavailable
	}

	// A stuck embedding call must not block a batch forever
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	queryVector, err := m.embedder.EmbedQuery(ctx, statement)
	if err != nil {
		return 0.0, err
	}

	documentVector, err := m.embedder.EmbedDocument(ctx, scholarshipText)
	if err != nil {
		return 0.0, err
	}

	scaled := cosineSimilarity(queryVector, documentVector) * 100
	if scaled < 0 {
		scaled = 0
	}
	if scaled > 100 {
		scaled = 100
	}

	return math.Round(scaled*100) / 100, nil
}

// Close releases the embedding handle. Scoring afterwards fails cleanly.
func (m *Matcher) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.embedder = nil
}

// ScholarshipText builds the document-side scoring text: the non-empty
// descriptive fields joined with ". " in fixed order.
func ScholarshipText(scholarship *models.Scholarship) string {
	if scholarship == nil {
		return ""
	}

	var parts []string
	for _, part := range []string{
		scholarship.Description,
		scholarship.Requirements,
		scholarship.FieldOfStudy,
		scholarship.StudyLevel,
	} {
		if strings.TrimSpace(part) != "" {
			parts = append(parts, part)
		}
	}

	return strings.Join(parts, ". ")
}

// MatchLevel categorizes a score for display. Advisory only, never used in
// persistence decisions.
func MatchLevel(score float64) string {
	switch {
	case score >= 70:
		return "Excellent"
	case score >= 55:
		return "Good"
	case score >= 40:
		return "Fair"
	default:
		return "Weak"
	}
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
