package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"nextstep/scholarship-matcher/internal/models"
	"nextstep/scholarship-matcher/internal/repositories"
)

// MatchOrchestrator runs the two bulk matching procedures. Batches execute as
// background work after the triggering request has returned, so failures are
// logged rather than surfaced to the original caller. Scores are always
// recomputed, never trusted from prior runs, and all qualifying results for a
// batch are persisted together in one transaction.
type MatchOrchestrator interface {
	MatchScholarshipAgainstCandidates(ctx context.Context, scholarship *models.Scholarship) error
	MatchCandidateAgainstScholarships(ctx context.Context, candidate *models.Candidate) error
}

type matchOrchestrator struct {
	candidateRepo   repositories.CandidateRepository
	scholarshipRepo repositories.ScholarshipRepository
	matchRepo       repositories.MatchRepository
	matcher         *Matcher
	logger          *zap.Logger
}

func NewMatchOrchestrator(
	candidateRepo repositories.CandidateRepository,
	scholarshipRepo repositories.ScholarshipRepository,
	matchRepo repositories.MatchRepository,
	matcher *Matcher,
	logger *zap.Logger,
) MatchOrchestrator {
	return &matchOrchestrator{
		candidateRepo:   candidateRepo,
		scholarshipRepo: scholarshipRepo,
		matchRepo:       matchRepo,
		matcher:         matcher,
		logger:          logger,
	}
}

// MatchScholarshipAgainstCandidates scores one scholarship against every
// candidate that has a CV record and replaces the scholarship's persisted
// matches with the qualifying set.
func (o *matchOrchestrator) MatchScholarshipAgainstCandidates(ctx context.Context, scholarship *models.Scholarship) error {
	candidates, err := o.candidateRepo.FindAllWithCV()
	if err != nil {
		return fmt.Errorf("failed to load candidates: %w", err)
	}

	var qualifying []models.ScholarshipMatch
	for i := range candidates {
		candidate := &candidates[i]
		if candidate.CVRecord == nil {
			continue
		}

		statement := StatementFromRecord(candidate.CVRecord)
		score, err := o.matcher.Score(ctx, statement, scholarship)
		if errors.Is(err, ErrModelUnavailable) {
			return err
		}
		if err != nil {
			// One candidate failing must not sink the whole batch
			o.logger.Warn("scoring failed, skipping candidate",
				zap.String("candidate_id", candidate.ID.String()),
				zap.String("scholarship_id", scholarship.ID.String()),
				zap.Error(err))
			continue
		}

		o.logger.Debug("scored candidate",
			zap.String("candidate_id", candidate.ID.String()),
			zap.Float64("score", score))

		if score > MatchThreshold {
			qualifying = append(qualifying, newMatch(candidate.ID, scholarship.ID, score))
		}
	}

	if err := o.matchRepo.ReplaceForScholarship(scholarship.ID, qualifying); err != nil {
		return err
	}

	o.logger.Info("scholarship batch completed",
		zap.String("scholarship_id", scholarship.ID.String()),
		zap.Int("candidates", len(candidates)),
		zap.Int("matches", len(qualifying)))

	return nil
}

// MatchCandidateAgainstScholarships renders the candidate's narrative once,
// scores it against every scholarship and replaces the candidate's persisted
// matches with the qualifying set.
func (o *matchOrchestrator) MatchCandidateAgainstScholarships(ctx context.Context, candidate *models.Candidate) error {
	if candidate.CVRecord == nil {
		o.logger.Warn("candidate has no cv record, nothing to match",
			zap.String("candidate_id", candidate.ID.String()))
		return nil
	}

	scholarships, err := o.scholarshipRepo.FindAll(0, 0)
	if err != nil {
		return fmt.Errorf("failed to load scholarships: %w", err)
	}

	statement := StatementFromRecord(candidate.CVRecord)

	var qualifying []models.ScholarshipMatch
	for i := range scholarships {
		scholarship := &scholarships[i]

		score, err := o.matcher.Score(ctx, statement, scholarship)
		if errors.Is(err, ErrModelUnavailable) {
			return err
		}
		if err != nil {
			o.logger.Warn("scoring failed, skipping scholarship",
				zap.String("candidate_id", candidate.ID.String()),
				zap.String("scholarship_id", scholarship.ID.String()),
				zap.Error(err))
			continue
		}

		o.logger.Debug("scored scholarship",
			zap.String("scholarship_id", scholarship.ID.String()),
			zap.Float64("score", score))

		if score > MatchThreshold {
			qualifying = append(qualifying, newMatch(candidate.ID, scholarship.ID, score))
		}
	}

	if err := o.matchRepo.ReplaceForCandidate(candidate.ID, qualifying); err != nil {
		return err
	}

	o.logger.Info("candidate batch completed",
		zap.String("candidate_id", candidate.ID.String()),
		zap.Int("scholarships", len(scholarships)),
		zap.Int("matches", len(qualifying)))

	return nil
}

func newMatch(candidateID, scholarshipID uuid.UUID, score float64) models.ScholarshipMatch {
	return models.ScholarshipMatch{
		ID:            uuid.New(),
		CandidateID:   candidateID,
		ScholarshipID: scholarshipID,
		Score:         score,
		CreatedAt:     time.Now(),
	}
}
