package handlers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"adityasetiawan/resume-ranker/internal/models"
	"adityasetiawan/resume-ranker/internal/services"
)

type ExtractHandler struct {
	storageService  services.StorageService
	extractor       services.TextExtractor
	criteriaService services.CriteriaService
	maxFileSize     int64
}

func NewExtractHandler(
	storageService services.StorageService,
	extractor services.TextExtractor,
	criteriaService services.CriteriaService,
	maxFileSize int64,
) *ExtractHandler {
	return &ExtractHandler{
		storageService:  storageService,
		extractor:       extractor,
		criteriaService: criteriaService,
		maxFileSize:     maxFileSize,
	}
}

// HandleExtractCriteria handles POST /extract-criteria: one job-description
// file in, `{"criteria": [...]}` out, store updated on success.
func (h *ExtractHandler) HandleExtractCriteria(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "a job description file is required in the 'file' field")
	}

	if fileHeader.Size > h.maxFileSize {
		return fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("file too large, max size: %d bytes", h.maxFileSize))
	}

	filePath, err := h.storageService.SaveUpload(fileHeader)
	if err != nil {
		return fmt.Errorf("failed to save upload: %w", err)
	}

	text, err := h.extractor.ExtractFile(filePath, fileHeader.Header.Get("Content-Type"))
	if removeErr := h.storageService.Remove(filePath); removeErr != nil {
		log.Printf("⚠️ Failed to remove temp file %s: %v", filePath, removeErr)
	}
	if err != nil {
		return fmt.Errorf("error processing file %s: %w", fileHeader.Filename, err)
	}

	criteria, err := h.criteriaService.ExtractCriteria(c.UserContext(), text)
	if err != nil {
		return fmt.Errorf("error processing file %s: %w", fileHeader.Filename, err)
	}

	return c.JSON(models.CriteriaResponse{Criteria: criteria})
}
