package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"adityasetiawan/resume-ranker/internal/apperrors"
)

// ErrorHandler maps pipeline errors onto the two status classes the caller
// cares about: 400 for bad input or missing prerequisite state, 500 for
// extraction/model/parsing failures.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var appErr *apperrors.Error
	var fiberErr *fiber.Error
	if errors.As(err, &appErr) {
		code = appErr.StatusCode()
	} else if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
