package models

import "time"

// UploadResponse is returned after a resume upload
type UploadResponse struct {
	ResumeID   string `json:"resumeId"`
	Message    string `json:"message"`
	Filename   string `json:"filename"`
	TextLength int    `json:"textLength"`
	Degraded   bool   `json:"degraded"`
}

// AnalyzeResponse is returned by a completed analysis
type AnalyzeResponse struct {
	AnalysisID string         `json:"analysisId"`
	Status     AnalysisStatus `json:"status"`
	Results    *MatchReport   `json:"results"`
	Degraded   bool           `json:"degraded"`
	Warnings   []string       `json:"warnings,omitempty"`
}

// AnalysisStatusResponse is returned when fetching a stored analysis
type AnalysisStatusResponse struct {
	Status   AnalysisStatus `json:"status"`
	Results  *MatchReport   `json:"results"`
	Degraded bool           `json:"degraded"`
	Warnings []string       `json:"warnings,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// RecommendationsResponse wraps recommended job listings
type RecommendationsResponse struct {
	Jobs     []JobListing `json:"jobs"`
	Degraded bool         `json:"degraded"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    time.Duration     `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}
