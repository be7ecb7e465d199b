package models

// MatchReport is the structured result of scoring a resume against a job
// description. Field names follow the scoring service wire format.
type MatchReport struct {
	OverallScore      float64            `json:"overall_score"`
	SkillMatch        float64            `json:"skill_match"`
	ExperienceMatch   float64            `json:"experience_match"`
	KeywordDensity    float64            `json:"keyword_density"`
	Strengths         []string           `json:"strengths"`
	Improvements      []string           `json:"improvements"`
	SuggestedProjects []SuggestedProject `json:"suggested_projects"`

	// Extended fields; any of them may be absent.
	SemanticSimilarity *float64               `json:"semantic_similarity,omitempty"`
	IsCompleteMismatch bool                   `json:"is_complete_mismatch,omitempty"`
	MismatchMessage    string                 `json:"mismatch_message,omitempty"`
	RequiredSkills     []string               `json:"required_skills,omitempty"`
	YourSkills         []string               `json:"your_skills,omitempty"`
	MatchingSkills     []string               `json:"matching_skills,omitempty"`
	MissingSkills      []string               `json:"missing_skills,omitempty"`
	ResumeSections     map[string]string      `json:"resume_sections,omitempty"`
	JobRequirements    map[string]interface{} `json:"job_requirements,omitempty"`

	// Degraded is set when the report is the placeholder substituted for an
	// unavailable scoring backend.
	Degraded bool `json:"degraded,omitempty"`
}

// SuggestedProject is a project idea that would close a skill gap.
type SuggestedProject struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Relevance   string `json:"relevance"`
}

// ScoreRequest is the payload sent to a scoring backend.
type ScoreRequest struct {
	ResumeText     string                 `json:"resume_text"`
	JobDescription string                 `json:"job_description"`
	ResumeData     map[string]interface{} `json:"resume_data"`
}

// Normalize clamps the four headline scores to [0,100] and replaces nil
// list fields with empty ones so the report always renders the same shape.
func (r *MatchReport) Normalize() {
	r.OverallScore = clampPercent(r.OverallScore)
	r.SkillMatch = clampPercent(r.SkillMatch)
	r.ExperienceMatch = clampPercent(r.ExperienceMatch)
	r.KeywordDensity = clampPercent(r.KeywordDensity)
	if r.SemanticSimilarity != nil {
		v := clampPercent(*r.SemanticSimilarity)
		r.SemanticSimilarity = &v
	}
	if r.Strengths == nil {
		r.Strengths = []string{}
	}
	if r.Improvements == nil {
		r.Improvements = []string{}
	}
	if r.SuggestedProjects == nil {
		r.SuggestedProjects = []SuggestedProject{}
	}
}

func clampPercent(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
