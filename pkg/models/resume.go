package models

import "time"

// ResumeRecord is an uploaded resume after text extraction. Records are
// immutable once stored.
type ResumeRecord struct {
	ID               string                 `json:"id"`
	OriginalFilename string                 `json:"original_filename"`
	ExtractedText    string                 `json:"extracted_text"`
	ParsedMetadata   map[string]interface{} `json:"parsed_metadata"`
	Format           string                 `json:"format"`
	Degraded         bool                   `json:"degraded"`
	CreatedAt        time.Time              `json:"created_at"`
}
