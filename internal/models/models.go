package models

// CriteriaResponse is the body returned by POST /extract-criteria.
type CriteriaResponse struct {
	Criteria []string `json:"criteria"`
}

// ScoreRecord is one scored resume after the repair pass. Scores holds the
// 0-5 integer per criterion; TotalScore is always recomputed locally and
// never taken from the model.
type ScoreRecord struct {
	CandidateName string
	Scores        map[string]int
	TotalScore    int
}
