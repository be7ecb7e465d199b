package scoring

import (
	"context"

	"jobhunt-insights/pkg/models"
)

// Provider scores a resume against a job description.
type Provider interface {
	// Score returns the backend's report. Implementations return an error on
	// transport failure, non-success status or an undecodable body.
	Score(ctx context.Context, req models.ScoreRequest) (*models.MatchReport, error)

	// IsHealthy checks if the backend is reachable and configured
	IsHealthy(ctx context.Context) error

	// GetProviderName returns the name of the provider
	GetProviderName() string
}

// Recommender is implemented by providers that can suggest job listings.
type Recommender interface {
	Recommend(ctx context.Context, req models.RecommendationRequest) ([]models.JobListing, error)
}
