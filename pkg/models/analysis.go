package models

import "time"

// AnalysisStatus is the lifecycle state of an AnalysisRecord.
type AnalysisStatus string

const (
	AnalysisStatusPending   AnalysisStatus = "pending"
	AnalysisStatusCompleted AnalysisStatus = "completed"
	AnalysisStatusFailed    AnalysisStatus = "failed"
)

// Warning codes attached to analyses built from fallback data.
const (
	WarningExtractionDegraded = "resume_extraction_degraded"
	WarningScrapeFailed       = "job_scrape_failed"
	WarningScoringUnavailable = "scoring_unavailable"
)

// JobDescriptor is the job side of an analysis.
type JobDescriptor struct {
	SourceURL string `json:"url"`
	RawText   string `json:"description"`
	Source    string `json:"source"`
}

// AnalysisRecord correlates a resume with a job description and its report.
// ResumeID is a lookup key only.
type AnalysisRecord struct {
	ID            string         `json:"id"`
	ResumeID      string         `json:"resume_id"`
	JobDescriptor JobDescriptor  `json:"job"`
	Status        AnalysisStatus `json:"status"`
	Report        *MatchReport   `json:"report,omitempty"`
	Warnings      []string       `json:"warnings,omitempty"`
	Error         string         `json:"error,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	CompletedAt   *time.Time     `json:"completed_at,omitempty"`
}

// Degraded reports whether any part of the analysis came from a fallback.
func (a AnalysisRecord) Degraded() bool {
	return len(a.Warnings) > 0
}
