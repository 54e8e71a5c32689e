package services

import (
	"adityasetiawan/resume-ranker/internal/apperrors"
)

const (
	MimePDF       = "application/pdf"
	MimeDocx      = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeLegacyDoc = "application/msword"
)

// TextExtractor turns an uploaded document into plain text, dispatching on
// the declared content type.
type TextExtractor interface {
	ExtractFile(filePath, contentType string) (string, error)
}

type textExtractor struct {
	pdfParser  PDFParserService
	docxParser DocxParserService
}

func NewTextExtractor(pdfParser PDFParserService, docxParser DocxParserService) TextExtractor {
	return &textExtractor{
		pdfParser:  pdfParser,
		docxParser: docxParser,
	}
}

// ExtractFile implements TextExtractor.
func (t *textExtractor) ExtractFile(filePath, contentType string) (string, error) {
	switch contentType {
	case MimePDF:
		return t.pdfParser.ExtractText(filePath)
	case MimeDocx, MimeLegacyDoc:
		return t.docxParser.ExtractText(filePath)
	default:
		return "", apperrors.New(apperrors.UnsupportedFileType, "unsupported file type, only PDF and DOCX are supported")
	}
}
