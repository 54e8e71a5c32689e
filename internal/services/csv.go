package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"adityasetiawan/resume-ranker/internal/models"
)

// CSVFilename is the attachment name for the scoring result table.
const CSVFilename = "candidate_scores.csv"

// ResultSerializer renders score records as CSV with the fixed column order
// [Candidate Name, <criteria...>, Total Score].
type ResultSerializer interface {
	ToCSV(criteria []string, records []models.ScoreRecord) ([]byte, error)
}

type resultSerializer struct{}

func NewResultSerializer() ResultSerializer {
	return &resultSerializer{}
}

// ToCSV implements ResultSerializer. Rows come out in accumulation order,
// quoting handled by encoding/csv.
func (r *resultSerializer) ToCSV(criteria []string, records []models.ScoreRecord) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := make([]string, 0, len(criteria)+2)
	header = append(header, "Candidate Name")
	header = append(header, criteria...)
	header = append(header, "Total Score")
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, record := range records {
		row := make([]string, 0, len(header))
		row = append(row, record.CandidateName)
		for _, criterion := range criteria {
			row = append(row, strconv.Itoa(record.Scores[criterion]))
		}
		row = append(row, strconv.Itoa(record.TotalScore))
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}

	return buf.Bytes(), nil
}
