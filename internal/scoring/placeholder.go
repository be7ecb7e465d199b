package scoring

import "jobhunt-insights/pkg/models"

// PlaceholderReport is substituted whenever the scoring backend cannot
// produce a report. It is always marked Degraded.
func PlaceholderReport() *models.MatchReport {
	return &models.MatchReport{
		OverallScore:    65,
		SkillMatch:      70,
		ExperienceMatch: 60,
		KeywordDensity:  65,
		Strengths:       []string{"Good technical foundation", "Relevant experience"},
		Improvements:    []string{"Add more specific skills", "Include more projects"},
		SuggestedProjects: []models.SuggestedProject{{
			Title:       "Portfolio Project",
			Description: "Build a comprehensive project showcasing your skills",
			Relevance:   "Demonstrates practical experience",
		}},
		Degraded: true,
	}
}

// FallbackRecommendations is returned when no recommender is reachable.
func FallbackRecommendations() []models.JobListing {
	return []models.JobListing{
		{
			ID:              "fallback-1",
			Title:           "Software Engineer Intern",
			Company:         "Tech Corp",
			Location:        "Remote",
			Description:     "Work on full-stack web applications alongside senior engineers.",
			Skills:          []string{"JavaScript", "Python", "SQL"},
			Experience:      "0-1 years",
			JobType:         "Internship",
			MatchPercentage: 0,
			MatchingSkills:  []string{},
			MissingSkills:   []string{},
			URL:             "https://example.com/jobs/software-engineer-intern",
			Source:          "fallback",
			PostedDate:      "",
		},
		{
			ID:              "fallback-2",
			Title:           "Junior Backend Developer",
			Company:         "Data Systems Inc",
			Location:        "Hybrid",
			Description:     "Build and maintain APIs and data pipelines.",
			Skills:          []string{"Go", "Python", "PostgreSQL", "Docker"},
			Experience:      "1-2 years",
			JobType:         "Full-time",
			MatchPercentage: 0,
			MatchingSkills:  []string{},
			MissingSkills:   []string{},
			URL:             "https://example.com/jobs/junior-backend-developer",
			Source:          "fallback",
			PostedDate:      "",
		},
		{
			ID:              "fallback-3",
			Title:           "Frontend Developer",
			Company:         "Web Studio",
			Location:        "On-site",
			Description:     "Create responsive user interfaces with modern frameworks.",
			Skills:          []string{"React", "TypeScript", "CSS"},
			Experience:      "1-3 years",
			JobType:         "Full-time",
			MatchPercentage: 0,
			MatchingSkills:  []string{},
			MissingSkills:   []string{},
			URL:             "https://example.com/jobs/frontend-developer",
			Source:          "fallback",
			PostedDate:      "",
		},
	}
}
