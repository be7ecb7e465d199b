package session

import (
	"fmt"
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobhunt-insights/pkg/models"
	"jobhunt-insights/pkg/utils"
)

var idPattern = regexp.MustCompile(`^(rsm|anl)_[0-9a-f]{32}$`)

func TestMemoryStore_ResumeRoundTrip(t *testing.T) {
	s := NewMemoryStore()

	id := s.PutResume(models.ResumeRecord{
		OriginalFilename: "cv.txt",
		ExtractedText:    "Jane Doe",
		ParsedMetadata:   map[string]interface{}{"skills": []string{"Python"}},
	})
	assert.Regexp(t, idPattern, id)
	assert.Contains(t, id, "rsm_")

	got, ok := s.GetResume(id)
	require.True(t, ok)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "cv.txt", got.OriginalFilename)
	assert.False(t, got.CreatedAt.IsZero())

	got.ParsedMetadata["injected"] = true
	again, _ := s.GetResume(id)
	assert.NotContains(t, again.ParsedMetadata, "injected")

	_, ok = s.GetResume("rsm_missing")
	assert.False(t, ok)
}

func TestMemoryStore_NilMetadataBecomesEmpty(t *testing.T) {
	s := NewMemoryStore()
	got, _ := s.GetResume(s.PutResume(models.ResumeRecord{ExtractedText: "x"}))
	assert.NotNil(t, got.ParsedMetadata)
	assert.Empty(t, got.ParsedMetadata)
}

func TestMemoryStore_AnalysisLifecycle(t *testing.T) {
	s := NewMemoryStore()

	id := s.PutAnalysis(models.AnalysisRecord{ResumeID: "rsm_1", Status: models.AnalysisStatusCompleted})
	assert.Contains(t, id, "anl_")

	pending, ok := s.GetAnalysis(id)
	require.True(t, ok)
	assert.Equal(t, models.AnalysisStatusPending, pending.Status)
	assert.Nil(t, pending.Report)

	report := &models.MatchReport{OverallScore: 70, Strengths: []string{"Go"}}
	done, err := s.CompleteAnalysis(id, models.JobDescriptor{RawText: "Go developer", Source: "manual"}, report, []string{models.WarningScrapeFailed})
	require.NoError(t, err)
	assert.Equal(t, models.AnalysisStatusCompleted, done.Status)
	assert.NotNil(t, done.CompletedAt)
	assert.Equal(t, []string{models.WarningScrapeFailed}, done.Warnings)
	assert.Equal(t, "Go developer", done.JobDescriptor.RawText)

	report.Strengths[0] = "mutated"
	first, _ := s.GetAnalysis(id)
	second, _ := s.GetAnalysis(id)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"Go"}, first.Report.Strengths)

	_, err = s.CompleteAnalysis(id, models.JobDescriptor{}, report, nil)
	assert.Error(t, err, "completed analyses are immutable")
	_, err = s.FailAnalysis(id, "late")
	assert.Error(t, err)
}

func TestMemoryStore_FailAnalysis(t *testing.T) {
	s := NewMemoryStore()
	id := s.PutAnalysis(models.AnalysisRecord{ResumeID: "rsm_1"})

	failed, err := s.FailAnalysis(id, "job input missing")
	require.NoError(t, err)
	assert.Equal(t, models.AnalysisStatusFailed, failed.Status)
	assert.Equal(t, "job input missing", failed.Error)
	assert.Nil(t, failed.Report)

	_, err = s.FailAnalysis("anl_unknown", "x")
	assert.ErrorIs(t, err, utils.ErrAnalysisNotFound)
	_, err = s.CompleteAnalysis(id, models.JobDescriptor{}, nil, nil)
	assert.Error(t, err)
}

func TestMemoryStore_Recommendations(t *testing.T) {
	s := NewMemoryStore()

	_, ok := s.GetRecommendations("rsm_1")
	assert.False(t, ok)

	jobs := []models.JobListing{{ID: "1", Title: "Backend Developer"}}
	s.PutRecommendations("rsm_1", jobs)
	jobs[0].Title = "changed"

	got, ok := s.GetRecommendations("rsm_1")
	require.True(t, ok)
	assert.Equal(t, "Backend Developer", got[0].Title)
	assert.Equal(t, map[string]int{"resumes": 0, "analyses": 0, "recommendations": 1}, s.Stats())
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	s := NewMemoryStore()

	const workers = 16
	const perWorker = 50

	var wg sync.WaitGroup
	ids := make(chan string, workers*perWorker)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				id := s.PutResume(models.ResumeRecord{ExtractedText: fmt.Sprintf("resume %d-%d", w, i)})
				if _, ok := s.GetResume(id); !ok {
					t.Errorf("resume %s not readable after put", id)
				}
				aid := s.PutAnalysis(models.AnalysisRecord{ResumeID: id})
				if _, err := s.CompleteAnalysis(aid, models.JobDescriptor{}, &models.MatchReport{}, nil); err != nil {
					t.Errorf("complete %s: %v", aid, err)
				}
				ids <- id
			}
		}(w)
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Equal(t, workers*perWorker, s.Stats()["resumes"])
	assert.Equal(t, workers*perWorker, s.Stats()["analyses"])
}
