package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"nextstep/scholarship-matcher/internal/models"
	"nextstep/scholarship-matcher/internal/repositories"
	"nextstep/scholarship-matcher/internal/services"
)

type ScholarshipHandler struct {
	scholarshipRepo repositories.ScholarshipRepository
	index           services.ScholarshipIndex
	worker          services.Worker
	logger          *zap.Logger
}

func NewScholarshipHandler(
	scholarshipRepo repositories.ScholarshipRepository,
	index services.ScholarshipIndex,
	worker services.Worker,
	logger *zap.Logger,
) *ScholarshipHandler {
	return &ScholarshipHandler{
		scholarshipRepo: scholarshipRepo,
		index:           index,
		worker:          worker,
		logger:          logger,
	}
}

// HandleCreate handles POST /scholarships. The new scholarship is persisted,
// indexed for search, and matched against every candidate in the background.
func (h *ScholarshipHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateScholarshipRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request payload",
		})
	}

	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "name is required",
		})
	}
	if req.Description == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "description is required",
		})
	}

	scholarship := &models.Scholarship{
		ID:                    uuid.New(),
		Name:                  req.Name,
		Description:           req.Description,
		Requirements:          req.Requirements,
		FieldOfStudy:          req.FieldOfStudy,
		StudyLevel:            req.StudyLevel,
		EligibleNationalities: req.EligibleNationalities,
		Country:               req.Country,
		IsFullyFunded:         req.IsFullyFunded,
	}

	if err := h.scholarshipRepo.Create(scholarship); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create scholarship",
		})
	}

	// Search index is best effort; matching does not depend on it
	if err := h.index.IndexScholarship(c.Context(), scholarship); err != nil {
		h.logger.Warn("failed to index scholarship",
			zap.String("scholarship_id", scholarship.ID.String()),
			zap.Error(err))
	}

	h.worker.EnqueueScholarship(scholarship.ID)

	return c.Status(fiber.StatusCreated).JSON(scholarship)
}

// HandleList handles GET /scholarships.
func (h *ScholarshipHandler) HandleList(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	scholarships, err := h.scholarshipRepo.FindAll(limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load scholarships",
		})
	}

	return c.JSON(models.ScholarshipListResponse{
		Status:  "success",
		Count:   len(scholarships),
		Results: scholarships,
	})
}

// HandleGet handles GET /scholarships/:id.
func (h *ScholarshipHandler) HandleGet(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid scholarship id",
		})
	}

	scholarship, err := h.scholarshipRepo.FindByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "scholarship not found",
		})
	}

	return c.JSON(scholarship)
}

// HandleSearch handles GET /scholarships/search?q=...
func (h *ScholarshipHandler) HandleSearch(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "q is required",
		})
	}

	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	results, err := h.index.SearchSimilar(c.Context(), query, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "search failed",
		})
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"count":   len(results),
		"results": results,
	})
}
