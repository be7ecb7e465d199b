package models

// JobListing is a recommended job opening for a resume.
type JobListing struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Company         string   `json:"company"`
	Location        string   `json:"location"`
	Description     string   `json:"description"`
	Skills          []string `json:"skills"`
	Experience      string   `json:"experience"`
	JobType         string   `json:"jobType"`
	MatchPercentage float64  `json:"matchPercentage"`
	MatchingSkills  []string `json:"matchingSkills"`
	MissingSkills   []string `json:"missingSkills"`
	URL             string   `json:"url"`
	Source          string   `json:"source"`
	PostedDate      string   `json:"postedDate"`
}

// RecommendationRequest is the payload sent to the scoring service's
// recommendation endpoint.
type RecommendationRequest struct {
	ResumeText string                 `json:"resumeText"`
	ResumeData map[string]interface{} `json:"resumeData"`
}

// RecommendationResponse is the scoring service's recommendation reply.
type RecommendationResponse struct {
	Recommendations []JobListing `json:"recommendations"`
}
