package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"

	"adityasetiawan/resume-ranker/internal/apperrors"
	"adityasetiawan/resume-ranker/internal/models"
)

// ScoringService scores a batch of resumes against the stored criteria.
// Resumes are processed strictly in upload order, one LLM call at a time,
// and the first failing resume aborts the whole batch.
type ScoringService interface {
	ScoreAll(ctx context.Context, files []*multipart.FileHeader) ([]string, []models.ScoreRecord, error)
}

type scoringService struct {
	llm           CompletionClient
	store         *CriteriaStore
	extractor     TextExtractor
	storage       StorageService
	promptBuilder *PromptBuilder
}

func NewScoringService(
	llm CompletionClient,
	store *CriteriaStore,
	extractor TextExtractor,
	storage StorageService,
) ScoringService {
	return &scoringService{
		llm:           llm,
		store:         store,
		extractor:     extractor,
		storage:       storage,
		promptBuilder: NewPromptBuilder(),
	}
}

// ScoreAll implements ScoringService. It returns the criteria snapshot the
// batch was scored against (the CSV column schema) alongside the records.
// The snapshot is taken once, before any file I/O or LLM call.
func (s *scoringService) ScoreAll(ctx context.Context, files []*multipart.FileHeader) ([]string, []models.ScoreRecord, error) {
	criteria, ok := s.store.Get()
	if !ok {
		return nil, nil, apperrors.New(apperrors.NoCriteriaAvailable,
			"no stored criteria available, extract criteria first using the /extract-criteria endpoint")
	}

	records := make([]models.ScoreRecord, 0, len(files))

	for _, file := range files {
		record, err := s.scoreResume(ctx, file, criteria)
		if err != nil {
			return nil, nil, fmt.Errorf("error processing resume %s: %w", file.Filename, err)
		}
		records = append(records, record)
	}

	return criteria, records, nil
}

func (s *scoringService) scoreResume(ctx context.Context, file *multipart.FileHeader, criteria []string) (models.ScoreRecord, error) {
	filePath, err := s.storage.SaveUpload(file)
	if err != nil {
		return models.ScoreRecord{}, apperrors.Wrap(apperrors.ExtractionBackendFailure, "failed to save upload", err)
	}

	text, err := s.extractor.ExtractFile(filePath, file.Header.Get("Content-Type"))
	// The temp file is not needed past extraction, regardless of outcome.
	if removeErr := s.storage.Remove(filePath); removeErr != nil {
		log.Printf("⚠️ Failed to remove temp file %s: %v", filePath, removeErr)
	}
	if err != nil {
		return models.ScoreRecord{}, err
	}

	prompt := s.promptBuilder.BuildResumeScoringPrompt(text, criteria)

	reply, err := s.llm.Complete(ctx, scoringSystemPrompt, prompt)
	if err != nil {
		return models.ScoreRecord{}, fmt.Errorf("resume scoring failed: %w", err)
	}

	var scoreData map[string]any
	if err := json.Unmarshal([]byte(StripCodeFence(reply)), &scoreData); err != nil {
		return models.ScoreRecord{}, apperrors.Wrap(apperrors.InvalidModelOutput, "model reply is not a JSON object of scores", err)
	}
	// A literal `null` decodes into a nil map without error; repairing it
	// would fabricate an all-zero record, so it is rejected like any other
	// non-object reply.
	if scoreData == nil {
		return models.ScoreRecord{}, apperrors.New(apperrors.InvalidModelOutput, "model reply is not a JSON object of scores")
	}

	return RepairScoreRecord(scoreData, criteria, file.Filename), nil
}

// RepairScoreRecord normalizes whatever the model produced into a complete
// record: criteria missing from the reply score 0, a blank candidate name
// falls back to the file name without its extension, and the total is
// recomputed from the per-criterion scores. The model's own total, if any,
// is discarded.
func RepairScoreRecord(scoreData map[string]any, criteria []string, filename string) models.ScoreRecord {
	scores := make(map[string]int, len(criteria))
	total := 0
	for _, criterion := range criteria {
		score := asScore(scoreData[criterion])
		scores[criterion] = score
		total += score
	}

	name, _ := scoreData["Candidate Name"].(string)
	if strings.TrimSpace(name) == "" {
		name = strings.TrimSuffix(filename, filepath.Ext(filename))
	}

	return models.ScoreRecord{
		CandidateName: name,
		Scores:        scores,
		TotalScore:    total,
	}
}

func asScore(v any) int {
	if n, ok := v.(float64); ok {
		return int(n)
	}
	return 0
}
