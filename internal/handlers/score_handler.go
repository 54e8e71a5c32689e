package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"adityasetiawan/resume-ranker/internal/services"
)

type ScoreHandler struct {
	scoringService services.ScoringService
	serializer     services.ResultSerializer
	maxFileSize    int64
}

func NewScoreHandler(
	scoringService services.ScoringService,
	serializer services.ResultSerializer,
	maxFileSize int64,
) *ScoreHandler {
	return &ScoreHandler{
		scoringService: scoringService,
		serializer:     serializer,
		maxFileSize:    maxFileSize,
	}
}

// HandleScoreResumes handles POST /score-resumes: one or more resume files
// in, CSV attachment out. Any per-file failure aborts the whole batch with
// no CSV produced.
func (h *ScoreHandler) HandleScoreResumes(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "failed to parse multipart form")
	}

	files := form.File["files"]
	if len(files) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "at least one resume file is required in the 'files' field")
	}

	for _, file := range files {
		if file.Size > h.maxFileSize {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("file %s too large, max size: %d bytes", file.Filename, h.maxFileSize))
		}
	}

	criteria, records, err := h.scoringService.ScoreAll(c.UserContext(), files)
	if err != nil {
		return err
	}

	csvBytes, err := h.serializer.ToCSV(criteria, records)
	if err != nil {
		return fmt.Errorf("failed to serialize results: %w", err)
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", services.CSVFilename))
	return c.Send(csvBytes)
}
