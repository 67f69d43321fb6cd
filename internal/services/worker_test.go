package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"nextstep/scholarship-matcher/internal/models"
)

type recordingOrchestrator struct {
	scholarshipRuns chan uuid.UUID
	candidateRuns   chan uuid.UUID
}

func newRecordingOrchestrator() *recordingOrchestrator {
	return &recordingOrchestrator{
		scholarshipRuns: make(chan uuid.UUID, 10),
		candidateRuns:   make(chan uuid.UUID, 10),
	}
}

func (r *recordingOrchestrator) MatchScholarshipAgainstCandidates(ctx context.Context, s *models.Scholarship) error {
	r.scholarshipRuns <- s.ID
	return nil
}

func (r *recordingOrchestrator) MatchCandidateAgainstScholarships(ctx context.Context, c *models.Candidate) error {
	r.candidateRuns <- c.ID
	return nil
}

func TestWorker_RunsScholarshipJob(t *testing.T) {
	scholarship := models.Scholarship{ID: uuid.New(), Description: "test"}
	orchestrator := newRecordingOrchestrator()

	w := NewWorker(
		&fakeCandidateRepo{},
		&fakeScholarshipRepo{scholarships: []models.Scholarship{scholarship}},
		orchestrator,
		1, 10,
		zap.NewNop(),
	)
	w.Start(context.Background())
	defer w.Stop()

	w.EnqueueScholarship(scholarship.ID)

	select {
	case id := <-orchestrator.scholarshipRuns:
		assert.Equal(t, scholarship.ID, id)
	case <-time.After(2 * time.Second):
		t.Fatal("scholarship job never ran")
	}
}

func TestWorker_RunsCandidateJob(t *testing.T) {
	candidate := candidateWithCV(t, []string{"python"})
	orchestrator := newRecordingOrchestrator()

	w := NewWorker(
		&fakeCandidateRepo{candidates: []models.Candidate{candidate}},
		&fakeScholarshipRepo{},
		orchestrator,
		2, 10,
		zap.NewNop(),
	)
	w.Start(context.Background())
	defer w.Stop()

	w.EnqueueCandidate(candidate.ID)

	select {
	case id := <-orchestrator.candidateRuns:
		assert.Equal(t, candidate.ID, id)
	case <-time.After(2 * time.Second):
		t.Fatal("candidate job never ran")
	}
}

func TestWorker_StopIsIdempotent(t *testing.T) {
	w := NewWorker(&fakeCandidateRepo{}, &fakeScholarshipRepo{}, newRecordingOrchestrator(), 1, 10, zap.NewNop())
	w.Start(context.Background())

	w.Stop()
	require.NotPanics(t, func() { w.Stop() })
}

func TestWorker_EnqueueAfterStopDoesNotBlock(t *testing.T) {
	w := NewWorker(&fakeCandidateRepo{}, &fakeScholarshipRepo{}, newRecordingOrchestrator(), 1, 1, zap.NewNop())
	w.Start(context.Background())
	w.Stop()

	done := make(chan struct{})
	go func() {
		w.EnqueueCandidate(uuid.New())
		w.EnqueueCandidate(uuid.New())
		w.EnqueueCandidate(uuid.New())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("enqueue blocked after stop")
	}
}
