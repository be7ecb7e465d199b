package models

// AnalyzeRequest represents the request payload for running an analysis
type AnalyzeRequest struct {
	ResumeID       string `json:"resumeId" validate:"required,max=128"`
	JobURL         string `json:"jobUrl,omitempty" validate:"max=2048"`
	JobDescription string `json:"jobDescription,omitempty" validate:"max=100000"`
}

// RecommendationsRequest represents the request payload for job recommendations
type RecommendationsRequest struct {
	ResumeID string `json:"resumeId" validate:"required,max=128"`
}
