package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"nextstep/scholarship-matcher/internal/models"
	"nextstep/scholarship-matcher/internal/repositories"
	"nextstep/scholarship-matcher/internal/services"
)

type CVHandler struct {
	candidateRepo  repositories.CandidateRepository
	matchRepo      repositories.MatchRepository
	storageService services.StorageService
	cvParser       services.CVParser
	worker         services.Worker
	maxFileSize    int64
}

func NewCVHandler(
	candidateRepo repositories.CandidateRepository,
	matchRepo repositories.MatchRepository,
	storageService services.StorageService,
	cvParser services.CVParser,
	worker services.Worker,
	maxFileSize int64,
) *CVHandler {
	return &CVHandler{
		candidateRepo:  candidateRepo,
		matchRepo:      matchRepo,
		storageService: storageService,
		cvParser:       cvParser,
		worker:         worker,
		maxFileSize:    maxFileSize,
	}
}

// HandleUploadCV handles POST /candidates/:id/cv. The uploaded PDF is parsed
// into a structured record that replaces any previous one, then a rematch is
// enqueued as background work.
func (h *CVHandler) HandleUploadCV(c *fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid candidate id",
		})
	}

	if _, err := h.candidateRepo.FindByID(candidateID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "candidate not found",
		})
	}

	file, err := c.FormFile("cv")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing 'cv' file",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("CV file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filename, filePath, err := h.storageService.SaveCV(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save CV file: %v", err),
		})
	}

	profile, err := h.cvParser.ParseFile(filePath)
	if err != nil {
		h.storageService.DeleteFile(filename)
		status := fiber.StatusInternalServerError
		if errors.Is(err, services.ErrExtraction) {
			status = fiber.StatusUnprocessableEntity
		}
		return c.Status(status).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to parse CV: %v", err),
		})
	}

	record, err := profile.Record(candidateID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to encode CV record: %v", err),
		})
	}

	if err := h.candidateRepo.ReplaceCVRecord(record); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to store CV record: %v", err),
		})
	}

	// Matching happens after this response has gone out
	h.worker.EnqueueCandidate(candidateID)

	return c.Status(fiber.StatusCreated).JSON(models.UploadCVResponse{
		CandidateID: candidateID.String(),
		RecordID:    record.ID.String(),
		Profile:     profile,
	})
}

// HandleGetMatches handles GET /candidates/:id/matches.
func (h *CVHandler) HandleGetMatches(c *fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid candidate id",
		})
	}

	matches, err := h.matchRepo.FindByCandidate(candidateID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load matches",
		})
	}

	results := make([]models.MatchResponse, 0, len(matches))
	for _, match := range matches {
		results = append(results, models.MatchResponse{
			ID:          match.ID.String(),
			Score:       match.Score,
			MatchLevel:  services.MatchLevel(match.Score),
			Scholarship: match.Scholarship,
		})
	}

	return c.JSON(models.MatchListResponse{
		Status:  "success",
		Count:   len(results),
		Results: results,
	})
}

// HandleRematch handles POST /candidates/:id/rematch: clear the candidate's
// persisted matches, then recompute in the background.
func (h *CVHandler) HandleRematch(c *fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid candidate id",
		})
	}

	if _, err := h.candidateRepo.FindByID(candidateID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "candidate not found",
		})
	}

	if err := h.matchRepo.DeleteByCandidate(candidateID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to clear matches",
		})
	}

	h.worker.EnqueueCandidate(candidateID)

	return c.SendStatus(fiber.StatusAccepted)
}
