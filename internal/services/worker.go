package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"nextstep/scholarship-matcher/internal/repositories"
)

type MatchJobKind string

const (
	JobScholarshipCreated MatchJobKind = "scholarship_created"
	JobCandidateRematch   MatchJobKind = "candidate_rematch"
)

type MatchJob struct {
	Kind MatchJobKind
	ID   uuid.UUID
}

// Worker runs matching batches as fire-and-forget background jobs, decoupled
// from the request that triggered them. Job failures are logged and never
// reach the original caller.
type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueScholarship(id uuid.UUID)
	EnqueueCandidate(id uuid.UUID)
}

type worker struct {
	candidateRepo   repositories.CandidateRepository
	scholarshipRepo repositories.ScholarshipRepository
	orchestrator    MatchOrchestrator
	jobQueue        chan MatchJob
	concurrency     int
	wg              sync.WaitGroup
	stopChan        chan struct{}
	stopOnce        sync.Once
	logger          *zap.Logger
}

func NewWorker(
	candidateRepo repositories.CandidateRepository,
	scholarshipRepo repositories.ScholarshipRepository,
	orchestrator MatchOrchestrator,
	concurrency int,
	queueSize int,
	logger *zap.Logger,
) Worker {
	if concurrency <= 0 {
		concurrency = 1
	}
	if queueSize <= 0 {
		queueSize = 100
	}
	return &worker{
		candidateRepo:   candidateRepo,
		scholarshipRepo: scholarshipRepo,
		orchestrator:    orchestrator,
		jobQueue:        make(chan MatchJob, queueSize),
		concurrency:     concurrency,
		stopChan:        make(chan struct{}),
		logger:          logger,
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	w.logger.Info("starting match worker", zap.Int("concurrency", w.concurrency))

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}
}

// Stop implements Worker.
func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopChan)
	})
	w.wg.Wait()
	w.logger.Info("match worker stopped")
}

// EnqueueScholarship implements Worker.
func (w *worker) EnqueueScholarship(id uuid.UUID) {
	w.enqueue(MatchJob{Kind: JobScholarshipCreated, ID: id})
}

// EnqueueCandidate implements Worker.
func (w *worker) EnqueueCandidate(id uuid.UUID) {
	w.enqueue(MatchJob{Kind: JobCandidateRematch, ID: id})
}

func (w *worker) enqueue(job MatchJob) {
	select {
	case w.jobQueue <- job:
		w.logger.Info("match job enqueued",
			zap.String("kind", string(job.Kind)),
			zap.String("id", job.ID.String()))
	case <-w.stopChan:
		w.logger.Warn("worker stopped, dropping match job",
			zap.String("kind", string(job.Kind)),
			zap.String("id", job.ID.String()))
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			w.logger.Debug("worker goroutine stopped", zap.Int("worker", workerID))
			return
		case job := <-w.jobQueue:
			if err := w.runJob(ctx, job); err != nil {
				w.logger.Error("match job failed",
					zap.Int("worker", workerID),
					zap.String("kind", string(job.Kind)),
					zap.String("id", job.ID.String()),
					zap.Error(err))
			}
		}
	}
}

func (w *worker) runJob(ctx context.Context, job MatchJob) error {
	switch job.Kind {
	case JobScholarshipCreated:
		scholarship, err := w.scholarshipRepo.FindByID(job.ID)
		if err != nil {
			return err
		}
		return w.orchestrator.MatchScholarshipAgainstCandidates(ctx, scholarship)
	case JobCandidateRematch:
		candidate, err := w.candidateRepo.FindByID(job.ID)
		if err != nil {
			return err
		}
		return w.orchestrator.MatchCandidateAgainstScholarships(ctx, candidate)
	default:
		w.logger.Warn("unknown match job kind", zap.String("kind", string(job.Kind)))
		return nil
	}
}
