// Package analysis wires extraction, job resolution, scoring and the session
// store into the upload, analyze and recommendation operations.
package analysis

import (
	"context"
	"errors"

	"jobhunt-insights/internal/extractor"
	"jobhunt-insights/internal/heuristics"
	"jobhunt-insights/internal/logging"
	"jobhunt-insights/internal/scraper"
	"jobhunt-insights/internal/session"
	"jobhunt-insights/pkg/models"
	"jobhunt-insights/pkg/utils"
)

// TextExtractor converts an uploaded document into text.
type TextExtractor interface {
	Extract(data []byte, filename string) extractor.Result
}

// JobResolver produces the job description for an analysis.
type JobResolver interface {
	Resolve(ctx context.Context, manualText, jobURL string) (*scraper.Resolution, error)
}

// Scorer scores matches and recommends jobs. Both operations absorb backend
// failures and report them through the returned values.
type Scorer interface {
	Score(ctx context.Context, req models.ScoreRequest) *models.MatchReport
	Recommend(ctx context.Context, req models.RecommendationRequest) ([]models.JobListing, bool)
}

// Service runs the user-facing operations.
type Service struct {
	extractor TextExtractor
	resolver  JobResolver
	scorer    Scorer
	store     session.Store
	logger    logging.Logger
}

// Deps are the collaborators of a Service.
type Deps struct {
	Extractor TextExtractor
	Resolver  JobResolver
	Scorer    Scorer
	Store     session.Store
	Logger    logging.Logger
}

func NewService(deps Deps) *Service {
	if deps.Logger == nil {
		deps.Logger = logging.NewDiscardLogger()
	}
	if deps.Store == nil {
		deps.Store = session.NewMemoryStore()
	}
	if deps.Extractor == nil {
		deps.Extractor = extractor.New(deps.Logger)
	}
	return &Service{
		extractor: deps.Extractor,
		resolver:  deps.Resolver,
		scorer:    deps.Scorer,
		store:     deps.Store,
		logger:    deps.Logger,
	}
}

// Upload extracts the document's text and stores it as a new resume. Only a
// missing file name is an error; unreadable content is stored as a degraded
// diagnostic text.
func (s *Service) Upload(ctx context.Context, filename string, data []byte) (models.ResumeRecord, error) {
	if utils.IsBlank(filename) {
		return models.ResumeRecord{}, utils.NewInputError("no resume file provided")
	}

	result := s.extractor.Extract(data, filename)

	metadata := map[string]interface{}{}
	if !result.Degraded {
		metadata = heuristics.ParseResume(result.Text)
	}

	id := s.store.PutResume(models.ResumeRecord{
		OriginalFilename: filename,
		ExtractedText:    result.Text,
		ParsedMetadata:   metadata,
		Format:           string(result.Format),
		Degraded:         result.Degraded,
	})

	logging.FromContext(ctx, s.logger).Info("resume uploaded", map[string]interface{}{
		"resume_id":   id,
		"filename":    filename,
		"format":      string(result.Format),
		"strategy":    result.Strategy,
		"text_length": len(result.Text),
		"degraded":    result.Degraded,
	})

	record, ok := s.store.GetResume(id)
	if !ok {
		return models.ResumeRecord{}, utils.NewInternalError("Failed to store resume", errors.New("resume missing after put"))
	}
	return record, nil
}

// Analyze resolves the resume and the job description, scores them and
// returns the completed analysis. The record is created pending once the
// resume is found and is finished exactly once: completed with the report,
// or failed with the error returned to the caller.
func (s *Service) Analyze(ctx context.Context, req models.AnalyzeRequest) (models.AnalysisRecord, error) {
	logger := logging.FromContext(ctx, s.logger)

	resume, ok := s.store.GetResume(req.ResumeID)
	if !ok {
		return models.AnalysisRecord{}, utils.NewResumeNotFoundError(req.ResumeID)
	}

	analysisID := s.store.PutAnalysis(models.AnalysisRecord{
		ResumeID:      resume.ID,
		JobDescriptor: models.JobDescriptor{SourceURL: req.JobURL},
	})
	logger = logger.WithFields(map[string]interface{}{"analysis_id": analysisID, "resume_id": resume.ID})

	resolution, err := s.resolver.Resolve(ctx, req.JobDescription, req.JobURL)
	if err != nil {
		return s.fail(logger, analysisID, err)
	}

	var warnings []string
	if resume.Degraded {
		warnings = append(warnings, models.WarningExtractionDegraded)
	}
	if resolution.Degraded {
		warnings = append(warnings, models.WarningScrapeFailed)
	}

	report := s.scorer.Score(ctx, models.ScoreRequest{
		ResumeText:     resume.ExtractedText,
		JobDescription: resolution.Text,
		ResumeData:     resume.ParsedMetadata,
	})
	if report == nil {
		return s.fail(logger, analysisID, errors.New("scorer returned no report"))
	}
	if report.Degraded {
		warnings = append(warnings, models.WarningScoringUnavailable)
	}

	record, err := s.store.CompleteAnalysis(analysisID, resolution.Descriptor(), report, warnings)
	if err != nil {
		return models.AnalysisRecord{}, utils.NewInternalError("Failed to store analysis", err)
	}

	logger.Info("analysis completed", map[string]interface{}{
		"job_source":    resolution.Source,
		"overall_score": report.OverallScore,
		"warnings":      warnings,
	})
	return record, nil
}

func (s *Service) fail(logger logging.Logger, analysisID string, cause error) (models.AnalysisRecord, error) {
	customErr := utils.AsCustomError(cause)

	if _, err := s.store.FailAnalysis(analysisID, customErr.Error()); err != nil {
		logger.Error("failed to mark analysis failed", map[string]interface{}{"error": err.Error()})
	}

	fields := map[string]interface{}{"error": cause.Error(), "code": customErr.Code}
	if errors.Is(customErr, utils.ErrInternal) {
		logger.Error("analysis failed", fields)
	} else {
		logger.Info("analysis rejected", fields)
	}
	return models.AnalysisRecord{}, customErr
}

// GetAnalysis returns a stored analysis.
func (s *Service) GetAnalysis(ctx context.Context, id string) (models.AnalysisRecord, error) {
	record, ok := s.store.GetAnalysis(id)
	if !ok {
		return models.AnalysisRecord{}, utils.NewAnalysisNotFoundError(id)
	}
	return record, nil
}

// Recommend returns job listings for a stored resume. Listings from the
// scoring service are cached per resume; fallback listings are not, so a
// later call can still reach a recovered service.
func (s *Service) Recommend(ctx context.Context, resumeID string) ([]models.JobListing, bool, error) {
	resume, ok := s.store.GetResume(resumeID)
	if !ok {
		return nil, false, utils.NewResumeNotFoundError(resumeID)
	}

	if jobs, ok := s.store.GetRecommendations(resumeID); ok {
		return jobs, false, nil
	}

	jobs, degraded := s.scorer.Recommend(ctx, models.RecommendationRequest{
		ResumeText: resume.ExtractedText,
		ResumeData: resume.ParsedMetadata,
	})
	if !degraded {
		s.store.PutRecommendations(resumeID, jobs)
	}

	logging.FromContext(ctx, s.logger).Info("job recommendations served", map[string]interface{}{
		"resume_id": resumeID,
		"count":     len(jobs),
		"degraded":  degraded,
	})
	return jobs, degraded, nil
}
