// Package session holds resume and analysis records for the lifetime of the
// process. Nothing is persisted.
package session

import (
	"fmt"
	"sync"
	"time"

	"jobhunt-insights/internal/metrics"
	"jobhunt-insights/pkg/models"
	"jobhunt-insights/pkg/utils"
)

// Id prefixes.
const (
	ResumeIDPrefix   = "rsm"
	AnalysisIDPrefix = "anl"
)

// Store is the session store used by the analysis service.
type Store interface {
	PutResume(record models.ResumeRecord) string
	GetResume(id string) (models.ResumeRecord, bool)

	PutAnalysis(record models.AnalysisRecord) string
	GetAnalysis(id string) (models.AnalysisRecord, bool)
	CompleteAnalysis(id string, job models.JobDescriptor, report *models.MatchReport, warnings []string) (models.AnalysisRecord, error)
	FailAnalysis(id string, reason string) (models.AnalysisRecord, error)

	PutRecommendations(resumeID string, jobs []models.JobListing)
	GetRecommendations(resumeID string) ([]models.JobListing, bool)

	Stats() map[string]int
}

// MemoryStore is a Store backed by maps under one RWMutex. Records are
// copied on the way in and out so callers never share state with the store.
type MemoryStore struct {
	mu              sync.RWMutex
	resumes         map[string]models.ResumeRecord
	analyses        map[string]models.AnalysisRecord
	recommendations map[string][]models.JobListing
	now             func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		resumes:         make(map[string]models.ResumeRecord),
		analyses:        make(map[string]models.AnalysisRecord),
		recommendations: make(map[string][]models.JobListing),
		now:             time.Now,
	}
}

// PutResume stores record under a new id and returns it. Any id or
// timestamp already on record is replaced.
func (s *MemoryStore) PutResume(record models.ResumeRecord) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	record.ID = s.newID(ResumeIDPrefix, func(id string) bool { _, ok := s.resumes[id]; return ok })
	record.CreatedAt = s.now()
	record.ParsedMetadata = copyMap(record.ParsedMetadata)
	s.resumes[record.ID] = record

	metrics.SessionRecords.WithLabelValues("resume").Set(float64(len(s.resumes)))
	return record.ID
}

func (s *MemoryStore) GetResume(id string) (models.ResumeRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.resumes[id]
	if !ok {
		return models.ResumeRecord{}, false
	}
	record.ParsedMetadata = copyMap(record.ParsedMetadata)
	return record, true
}

// PutAnalysis stores record as a new pending analysis and returns its id.
func (s *MemoryStore) PutAnalysis(record models.AnalysisRecord) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	record.ID = s.newID(AnalysisIDPrefix, func(id string) bool { _, ok := s.analyses[id]; return ok })
	record.Status = models.AnalysisStatusPending
	record.Report = nil
	record.Warnings = nil
	record.Error = ""
	record.CreatedAt = s.now()
	record.CompletedAt = nil
	s.analyses[record.ID] = record

	metrics.SessionRecords.WithLabelValues("analysis").Set(float64(len(s.analyses)))
	return record.ID
}

func (s *MemoryStore) GetAnalysis(id string) (models.AnalysisRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.analyses[id]
	if !ok {
		return models.AnalysisRecord{}, false
	}
	return copyAnalysis(record), true
}

// CompleteAnalysis attaches the resolved job and the report and flips a
// pending analysis to completed. It fails for unknown ids and for analyses
// already finished.
func (s *MemoryStore) CompleteAnalysis(id string, job models.JobDescriptor, report *models.MatchReport, warnings []string) (models.AnalysisRecord, error) {
	if report == nil {
		return models.AnalysisRecord{}, fmt.Errorf("analysis %s: nil report", id)
	}

	return s.finish(id, func(record *models.AnalysisRecord) {
		r := copyReport(report)
		record.Status = models.AnalysisStatusCompleted
		record.JobDescriptor = job
		record.Report = r
		record.Warnings = cloneSlice(warnings)
	})
}

// FailAnalysis marks a pending analysis failed with reason.
func (s *MemoryStore) FailAnalysis(id string, reason string) (models.AnalysisRecord, error) {
	return s.finish(id, func(record *models.AnalysisRecord) {
		record.Status = models.AnalysisStatusFailed
		record.Error = reason
	})
}

func (s *MemoryStore) finish(id string, apply func(*models.AnalysisRecord)) (models.AnalysisRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.analyses[id]
	if !ok {
		return models.AnalysisRecord{}, utils.NewAnalysisNotFoundError(id)
	}
	if record.Status != models.AnalysisStatusPending {
		return models.AnalysisRecord{}, fmt.Errorf("analysis %s is already %s", id, record.Status)
	}

	apply(&record)
	completedAt := s.now()
	record.CompletedAt = &completedAt
	s.analyses[id] = record

	return copyAnalysis(record), nil
}

func (s *MemoryStore) PutRecommendations(resumeID string, jobs []models.JobListing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recommendations[resumeID] = cloneSlice(jobs)
}

func (s *MemoryStore) GetRecommendations(resumeID string) ([]models.JobListing, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs, ok := s.recommendations[resumeID]
	if !ok {
		return nil, false
	}
	return cloneSlice(jobs), true
}

// Stats returns record counts by kind.
func (s *MemoryStore) Stats() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]int{
		"resumes":         len(s.resumes),
		"analyses":        len(s.analyses),
		"recommendations": len(s.recommendations),
	}
}

// newID must be called with s.mu held.
func (s *MemoryStore) newID(prefix string, taken func(string) bool) string {
	for {
		id := utils.GeneratePrefixedID(prefix)
		if !taken(id) {
			return id
		}
	}
}

func copyAnalysis(record models.AnalysisRecord) models.AnalysisRecord {
	record.Report = copyReport(record.Report)
	record.Warnings = cloneSlice(record.Warnings)
	if record.CompletedAt != nil {
		t := *record.CompletedAt
		record.CompletedAt = &t
	}
	return record
}

// copyReport copies the report and its headline slices. Extended
// fields are shared; nothing mutates them after scoring.
func copyReport(report *models.MatchReport) *models.MatchReport {
	if report == nil {
		return nil
	}
	r := *report
	r.Strengths = cloneSlice(report.Strengths)
	r.Improvements = cloneSlice(report.Improvements)
	r.SuggestedProjects = cloneSlice(report.SuggestedProjects)
	if report.SemanticSimilarity != nil {
		v := *report.SemanticSimilarity
		r.SemanticSimilarity = &v
	}
	return &r
}

func copyMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// cloneSlice copies s, keeping nil and empty distinct.
func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
