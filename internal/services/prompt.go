package services

import (
	"encoding/json"
	"fmt"
)

const (
	extractionSystemPrompt = "You are a helpful assistant."
	scoringSystemPrompt    = "You are a helpful HR assistant."
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildCriteriaExtractionPrompt creates the prompt that pulls ranking
// criteria out of a job description.
func (pb *PromptBuilder) BuildCriteriaExtractionPrompt(jobDescriptionText string) string {
	return fmt.Sprintf(`You are an expert HR recruiter. Analyze the following job description text and extract the key ranking criteria.
The criteria should include any skills, certifications, experience, and qualifications mentioned.
Return only a JSON array of strings, where each string is one criterion. Do not include any extra text.

Job Description:
%s`, jobDescriptionText)
}

// BuildResumeScoringPrompt creates the per-resume prompt embedding the
// stored criteria list.
func (pb *PromptBuilder) BuildResumeScoringPrompt(resumeText string, criteria []string) string {
	criteriaJSON, _ := json.Marshal(criteria)

	return fmt.Sprintf(`You are an HR expert evaluating resumes. Evaluate the following resume text against the stored ranking criteria.
For each criterion, assign a score from 0 to 5 (0: no evidence, 5: excellent match).
Extract the candidate's name from the resume text if available; if not, use "Unknown".
Return a JSON object with the following keys:
- "Candidate Name": the candidate's name.
- For each criterion in the stored list, use the exact criterion as a key with its corresponding score (0-5).
- "Total Score": the sum of all individual scores.
Do not include any additional text or explanations.
Resume Text:
%s
Ranking Criteria:
%s`, resumeText, string(criteriaJSON))
}
