package services

import (
	"strings"

	"github.com/ledongthuc/pdf"

	"adityasetiawan/resume-ranker/internal/apperrors"
)

type PDFParserService interface {
	ExtractText(filePath string) (string, error)
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

func (p *pdfParserService) ExtractText(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ExtractionBackendFailure, "failed to extract text from PDF", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, keep going with the rest
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	text := textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return "", apperrors.New(apperrors.NoTextExtracted, "no text could be extracted from the PDF")
	}

	return text, nil
}
