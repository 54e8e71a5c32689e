package services

import (
	"os"
	"strings"

	"code.sajari.com/docconv"

	"adityasetiawan/resume-ranker/internal/apperrors"
)

type DocxParserService interface {
	ExtractText(filePath string) (string, error)
}

type docxParserService struct{}

func NewDocxParserService() DocxParserService {
	return &docxParserService{}
}

func (d *docxParserService) ExtractText(filePath string) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ExtractionBackendFailure, "failed to extract text from DOCX", err)
	}
	defer f.Close()

	body, _, err := docconv.ConvertDocx(f)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ExtractionBackendFailure, "failed to extract text from DOCX", err)
	}

	// Keep non-empty paragraphs only, newline-joined.
	var paragraphs []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			paragraphs = append(paragraphs, line)
		}
	}

	if len(paragraphs) == 0 {
		return "", apperrors.New(apperrors.NoTextExtracted, "no text could be extracted from the DOCX")
	}

	return strings.Join(paragraphs, "\n"), nil
}
