package scoring

import (
	"encoding/json"
	"fmt"
	"strings"

	"jobhunt-insights/pkg/models"
	"jobhunt-insights/pkg/utils"
)

// maxPromptChars bounds each document embedded in an LLM prompt.
const maxPromptChars = 12000

func buildScoringPrompt(req models.ScoreRequest) string {
	metadata := "{}"
	if len(req.ResumeData) > 0 {
		if b, err := json.Marshal(req.ResumeData); err == nil {
			metadata = string(b)
		}
	}

	return fmt.Sprintf(`You are a recruiting assistant that compares a resume with a job description.

Score how well the resume matches the job and return ONLY a valid JSON object with exactly these fields:

{
  "overall_score": number from 0 to 100,
  "skill_match": number from 0 to 100,
  "experience_match": number from 0 to 100,
  "keyword_density": number from 0 to 100,
  "semantic_similarity": number from 0 to 100,
  "strengths": ["short statements about what already matches"],
  "improvements": ["short, actionable suggestions"],
  "suggested_projects": [{"title": "string", "description": "string", "relevance": "string"}],
  "required_skills": ["skills the job asks for"],
  "your_skills": ["skills found in the resume"],
  "matching_skills": ["skills in both"],
  "missing_skills": ["required skills absent from the resume"],
  "is_complete_mismatch": boolean,
  "mismatch_message": "string, empty unless is_complete_mismatch is true"
}

Rules:
- Base every score on the text below only; do not invent experience.
- Give 2 to 5 strengths, 2 to 5 improvements and 1 to 3 suggested projects.
- Do not wrap the JSON in prose.

Resume metadata (may be empty):
%s

Resume:
%s

Job description:
%s`, metadata, utils.Preview(req.ResumeText, maxPromptChars), utils.Preview(req.JobDescription, maxPromptChars))
}

// parseReportJSON decodes a model reply, tolerating markdown code fences
// around the JSON object.
func parseReportJSON(text string) (*models.MatchReport, error) {
	text = stripCodeFence(text)
	if text == "" {
		return nil, fmt.Errorf("empty model response")
	}

	if start, end := strings.Index(text, "{"), strings.LastIndex(text, "}"); start > 0 && end > start {
		text = text[start : end+1]
	}

	var report models.MatchReport
	if err := json.Unmarshal([]byte(text), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report JSON: %w", err)
	}
	report.Normalize()
	return &report, nil
}

func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	return strings.TrimSpace(text)
}
