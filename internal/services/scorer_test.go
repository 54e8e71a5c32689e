package services

import (
	"context"
	"errors"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adityasetiawan/resume-ranker/internal/apperrors"
)

// stubCompletion replays canned replies in order and records every prompt.
type stubCompletion struct {
	replies []string
	err     error
	calls   int
	prompts []string
}

func (s *stubCompletion) Complete(_ context.Context, _, userPrompt string) (string, error) {
	s.prompts = append(s.prompts, userPrompt)
	if s.err != nil {
		return "", s.err
	}
	reply := s.replies[s.calls]
	s.calls++
	return reply, nil
}

// stubStorage hands back the original filename as the "saved" path so the
// extractor stub can key on it. Nothing touches the disk.
type stubStorage struct {
	saved   int
	removed int
}

func (s *stubStorage) SaveUpload(file *multipart.FileHeader) (string, error) {
	s.saved++
	return file.Filename, nil
}

func (s *stubStorage) Remove(string) error {
	s.removed++
	return nil
}

func (s *stubStorage) EnsureUploadDir() error { return nil }

type stubExtractor struct {
	texts map[string]string
	errs  map[string]error
	calls int
}

func (s *stubExtractor) ExtractFile(filePath, _ string) (string, error) {
	s.calls++
	if err, ok := s.errs[filePath]; ok {
		return "", err
	}
	return s.texts[filePath], nil
}

func pdfUpload(filename string) *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: filename,
		Header:   textproto.MIMEHeader{"Content-Type": []string{MimePDF}},
	}
}

func TestRepairScoreRecord(t *testing.T) {
	criteria := []string{"Python", "SQL", "AWS"}

	tests := []struct {
		name      string
		scoreData map[string]any
		filename  string
		wantName  string
		wantTotal int
		wantScore map[string]int
	}{
		{
			name: "complete reply is kept but total recomputed",
			scoreData: map[string]any{
				"Candidate Name": "Jane Doe",
				"Python":         float64(4),
				"SQL":            float64(3),
				"AWS":            float64(5),
				"Total Score":    float64(99),
			},
			filename:  "jane.pdf",
			wantName:  "Jane Doe",
			wantTotal: 12,
			wantScore: map[string]int{"Python": 4, "SQL": 3, "AWS": 5},
		},
		{
			name: "missing criteria default to zero",
			scoreData: map[string]any{
				"Candidate Name": "Bob",
				"Python":         float64(2),
			},
			filename:  "bob.pdf",
			wantName:  "Bob",
			wantTotal: 2,
			wantScore: map[string]int{"Python": 2, "SQL": 0, "AWS": 0},
		},
		{
			name: "blank name falls back to file stem",
			scoreData: map[string]any{
				"Candidate Name": "   ",
				"SQL":            float64(1),
			},
			filename:  "jane_doe.pdf",
			wantName:  "jane_doe",
			wantTotal: 1,
			wantScore: map[string]int{"Python": 0, "SQL": 1, "AWS": 0},
		},
		{
			name:      "absent name falls back to file stem",
			scoreData: map[string]any{"Python": float64(3)},
			filename:  "resume.docx",
			wantName:  "resume",
			wantTotal: 3,
			wantScore: map[string]int{"Python": 3, "SQL": 0, "AWS": 0},
		},
		{
			name: "non-numeric scores count as zero",
			scoreData: map[string]any{
				"Candidate Name": "Eve",
				"Python":         "five",
				"SQL":            float64(2),
			},
			filename:  "eve.pdf",
			wantName:  "Eve",
			wantTotal: 2,
			wantScore: map[string]int{"Python": 0, "SQL": 2, "AWS": 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := RepairScoreRecord(tt.scoreData, criteria, tt.filename)
			assert.Equal(t, tt.wantName, record.CandidateName)
			assert.Equal(t, tt.wantTotal, record.TotalScore)
			assert.Equal(t, tt.wantScore, record.Scores)
		})
	}
}

func TestScoreAll_FailsFastWithoutCriteria(t *testing.T) {
	llm := &stubCompletion{}
	storage := &stubStorage{}
	extractor := &stubExtractor{}
	scorer := NewScoringService(llm, NewCriteriaStore(), extractor, storage)

	_, _, err := scorer.ScoreAll(context.Background(), []*multipart.FileHeader{pdfUpload("jane.pdf")})

	require.Error(t, err)
	assert.Equal(t, apperrors.NoCriteriaAvailable, apperrors.KindOf(err))
	// No file I/O and no LLM call may happen before the precondition check.
	assert.Zero(t, storage.saved)
	assert.Zero(t, extractor.calls)
	assert.Zero(t, len(llm.prompts))
}

func TestScoreAll_RepairsAndOrdersRecords(t *testing.T) {
	store := NewCriteriaStore()
	store.Replace([]string{"Python", "SQL"})

	llm := &stubCompletion{replies: []string{
		"```json\n{\"Candidate Name\": \"\", \"Python\": 4}\n```",
		`{"Candidate Name": "Bob Stone", "Python": 1, "SQL": 5, "Total Score": 42}`,
	}}
	storage := &stubStorage{}
	extractor := &stubExtractor{texts: map[string]string{
		"jane_doe.pdf": "Jane's resume text",
		"bob.pdf":      "Bob's resume text",
	}}
	scorer := NewScoringService(llm, store, extractor, storage)

	criteria, records, err := scorer.ScoreAll(context.Background(), []*multipart.FileHeader{
		pdfUpload("jane_doe.pdf"),
		pdfUpload("bob.pdf"),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"Python", "SQL"}, criteria)
	require.Len(t, records, 2)

	assert.Equal(t, "jane_doe", records[0].CandidateName)
	assert.Equal(t, map[string]int{"Python": 4, "SQL": 0}, records[0].Scores)
	assert.Equal(t, 4, records[0].TotalScore)

	assert.Equal(t, "Bob Stone", records[1].CandidateName)
	assert.Equal(t, 6, records[1].TotalScore, "model total must be discarded and recomputed")

	// Temp files are removed before the response is produced.
	assert.Equal(t, storage.saved, storage.removed)
}

func TestScoreAll_SecondFileFailureAbortsBatch(t *testing.T) {
	store := NewCriteriaStore()
	store.Replace([]string{"Python"})

	llm := &stubCompletion{replies: []string{
		`{"Candidate Name": "Jane", "Python": 5}`,
	}}
	storage := &stubStorage{}
	extractor := &stubExtractor{
		texts: map[string]string{"first.pdf": "ok"},
		errs: map[string]error{
			"second.pdf": apperrors.New(apperrors.NoTextExtracted, "no text could be extracted from the PDF"),
		},
	}
	scorer := NewScoringService(llm, store, extractor, storage)

	_, records, err := scorer.ScoreAll(context.Background(), []*multipart.FileHeader{
		pdfUpload("first.pdf"),
		pdfUpload("second.pdf"),
	})

	require.Error(t, err)
	assert.Nil(t, records, "no partial results on batch failure")
	assert.Equal(t, apperrors.NoTextExtracted, apperrors.KindOf(err))
	assert.Contains(t, err.Error(), "second.pdf")
}

func TestScoreAll_MalformedModelReply(t *testing.T) {
	store := NewCriteriaStore()
	store.Replace([]string{"Python"})

	llm := &stubCompletion{replies: []string{`{"Candidate Name": "Jane", `}}
	extractor := &stubExtractor{texts: map[string]string{"jane.pdf": "text"}}
	scorer := NewScoringService(llm, store, extractor, &stubStorage{})

	_, _, err := scorer.ScoreAll(context.Background(), []*multipart.FileHeader{pdfUpload("jane.pdf")})

	require.Error(t, err)
	assert.Equal(t, apperrors.InvalidModelOutput, apperrors.KindOf(err))
	assert.Contains(t, err.Error(), "jane.pdf")
}

func TestScoreAll_ArrayReplyIsInvalid(t *testing.T) {
	store := NewCriteriaStore()
	store.Replace([]string{"Python"})

	llm := &stubCompletion{replies: []string{`["Python"]`}}
	extractor := &stubExtractor{texts: map[string]string{"jane.pdf": "text"}}
	scorer := NewScoringService(llm, store, extractor, &stubStorage{})

	_, _, err := scorer.ScoreAll(context.Background(), []*multipart.FileHeader{pdfUpload("jane.pdf")})

	require.Error(t, err)
	assert.Equal(t, apperrors.InvalidModelOutput, apperrors.KindOf(err))
}

func TestScoreAll_NullReplyIsInvalid(t *testing.T) {
	store := NewCriteriaStore()
	store.Replace([]string{"Python"})

	llm := &stubCompletion{replies: []string{`null`}}
	extractor := &stubExtractor{texts: map[string]string{"jane.pdf": "text"}}
	scorer := NewScoringService(llm, store, extractor, &stubStorage{})

	_, records, err := scorer.ScoreAll(context.Background(), []*multipart.FileHeader{pdfUpload("jane.pdf")})

	require.Error(t, err, "a null reply must not repair into an all-zero record")
	assert.Nil(t, records)
	assert.Equal(t, apperrors.InvalidModelOutput, apperrors.KindOf(err))
}

func TestScoreAll_EmptyObjectReplyRepairs(t *testing.T) {
	store := NewCriteriaStore()
	store.Replace([]string{"Python"})

	llm := &stubCompletion{replies: []string{`{}`}}
	extractor := &stubExtractor{texts: map[string]string{"jane.pdf": "text"}}
	scorer := NewScoringService(llm, store, extractor, &stubStorage{})

	_, records, err := scorer.ScoreAll(context.Background(), []*multipart.FileHeader{pdfUpload("jane.pdf")})

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "jane", records[0].CandidateName)
	assert.Equal(t, map[string]int{"Python": 0}, records[0].Scores)
	assert.Zero(t, records[0].TotalScore)
}

func TestScoreAll_PromptEmbedsCriteriaAndResume(t *testing.T) {
	store := NewCriteriaStore()
	store.Replace([]string{"Python", "5 years experience"})

	llm := &stubCompletion{replies: []string{`{"Candidate Name": "Jane"}`}}
	extractor := &stubExtractor{texts: map[string]string{"jane.pdf": "Jane knows Python"}}
	scorer := NewScoringService(llm, store, extractor, &stubStorage{})

	_, _, err := scorer.ScoreAll(context.Background(), []*multipart.FileHeader{pdfUpload("jane.pdf")})

	require.NoError(t, err)
	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "Jane knows Python")
	assert.Contains(t, llm.prompts[0], `["Python","5 years experience"]`)
}

func TestScoreAll_LLMTransportFailure(t *testing.T) {
	store := NewCriteriaStore()
	store.Replace([]string{"Python"})

	llm := &stubCompletion{err: errors.New("connection reset")}
	extractor := &stubExtractor{texts: map[string]string{"jane.pdf": "text"}}
	scorer := NewScoringService(llm, store, extractor, &stubStorage{})

	_, _, err := scorer.ScoreAll(context.Background(), []*multipart.FileHeader{pdfUpload("jane.pdf")})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "jane.pdf")
}
