package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"adityasetiawan/resume-ranker/internal/apperrors"
)

// CriteriaService extracts ranking criteria from job-description text and
// publishes them to the shared store.
type CriteriaService interface {
	ExtractCriteria(ctx context.Context, documentText string) ([]string, error)
}

type criteriaService struct {
	llm           CompletionClient
	store         *CriteriaStore
	promptBuilder *PromptBuilder
}

func NewCriteriaService(llm CompletionClient, store *CriteriaStore) CriteriaService {
	return &criteriaService{
		llm:           llm,
		store:         store,
		promptBuilder: NewPromptBuilder(),
	}
}

// ExtractCriteria implements CriteriaService. A single malformed completion
// is a hard failure for the request; no retry is attempted.
func (s *criteriaService) ExtractCriteria(ctx context.Context, documentText string) ([]string, error) {
	prompt := s.promptBuilder.BuildCriteriaExtractionPrompt(documentText)

	reply, err := s.llm.Complete(ctx, extractionSystemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("criteria extraction failed: %w", err)
	}

	var criteria []string
	if err := json.Unmarshal([]byte(StripCodeFence(reply)), &criteria); err != nil {
		return nil, apperrors.Wrap(apperrors.InvalidModelOutput, "model reply is not a JSON array of criteria", err)
	}
	// A literal `null` decodes into a nil slice without error; only an
	// actual array (`[]` included) is acceptable.
	if criteria == nil {
		return nil, apperrors.New(apperrors.InvalidModelOutput, "model reply is not a JSON array of criteria")
	}

	s.store.Replace(criteria)
	log.Printf("📋 Stored %d ranking criteria", len(criteria))

	return criteria, nil
}
