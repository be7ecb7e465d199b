package heuristics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobhunt-insights/pkg/models"
)

func TestExtractSkills(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "   ", []string{}},
		{"sample resume", "Jane Doe\nSkills: Python, SQL\n5 years experience", []string{"Python"}},
		{"javascript is not java", "JavaScript developer", []string{"JavaScript"}},
		{
			"aliases and symbols",
			"Built REST API services in Golang with PostgreSQL, Docker and k8s; CI/CD via Jenkins. Also C++ and C#.",
			[]string{"C++", "C#", "Go", "PostgreSQL", "Docker", "Kubernetes", "Jenkins", "REST API", "API Development", "CI/CD"},
		},
		{"multi word", "Strong problem solving and project management", []string{"Problem Solving", "Project Management"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractSkills(tc.text))
		})
	}
}

func TestSimilarityMeasures(t *testing.T) {
	assert.InDelta(t, 1.0, TermSimilarity("python sql", "sql python"), 1e-9)
	assert.Equal(t, 0.0, TermSimilarity("python", "kubernetes"))
	assert.Equal(t, 0.0, TermSimilarity("the and of", "python"))
	assert.Equal(t, 0.0, TermSimilarity("", "python"))

	assert.InDelta(t, 0.5, JaccardSimilarity("a b c", "B C d"), 1e-9)
	assert.Equal(t, 0.0, JaccardSimilarity("", "a"))

	assert.InDelta(t, 2.0/3.0, KeywordDensity("python sql java", "python java"), 1e-9)
	assert.Equal(t, 1.0, KeywordDensity("go go go", "go"))
	assert.Equal(t, 0.0, KeywordDensity("", "go"))
}

func TestAnalyze_SampleMatch(t *testing.T) {
	report := Analyze("Jane Doe\nSkills: Python, SQL\n5 years experience", "Looking for a Python developer with SQL skills")

	assert.GreaterOrEqual(t, report.OverallScore, 0.0)
	assert.LessOrEqual(t, report.OverallScore, 100.0)
	assert.Equal(t, 100.0, report.SkillMatch)
	assert.Equal(t, []string{"Python"}, report.MatchingSkills)
	assert.Equal(t, []string{}, report.MissingSkills)
	require.NotNil(t, report.SemanticSimilarity)
	assert.Contains(t, report.Strengths, "Strong technical skills in Python")
	assert.Contains(t, report.Strengths, "Excellent alignment with job requirements")
	assert.Equal(t, []models.SuggestedProject{defaultProject}, report.SuggestedProjects)
}

func TestAnalyze_CompleteMismatch(t *testing.T) {
	report := Analyze("Professional chef with pastry expertise", "Senior Kubernetes engineer for AWS")

	assert.True(t, report.IsCompleteMismatch)
	assert.Equal(t, MessageCompleteMismatch, report.MismatchMessage)
	assert.Equal(t, 0.0, report.SkillMatch)
	assert.Equal(t, 0.0, report.ExperienceMatch)
	assert.Equal(t, []string{"AWS", "Kubernetes"}, report.MissingSkills)
	assert.Equal(t, []string{"Good technical foundation"}, report.Strengths)
	assert.Equal(t, []string{
		"Add missing skills: AWS, Kubernetes",
		"Expand your technical skill set",
		"Highlight technical skills in your resume",
	}, report.Improvements)
	assert.Equal(t, []models.SuggestedProject{defaultProject}, report.SuggestedProjects)
}

func TestAnalyze_LowScore(t *testing.T) {
	report := Analyze("Python", "Python developer needed for Django work")

	assert.Equal(t, 50.0, report.SkillMatch)
	assert.Equal(t, 49.0, report.OverallScore)
	assert.True(t, report.IsCompleteMismatch)
	assert.Equal(t, MessageLowScore, report.MismatchMessage)
}

func TestAnalyze_ProjectsCoverMissingSkills(t *testing.T) {
	report := Analyze("Python developer", "Need React, Node.js and MongoDB experience")

	require.NotEmpty(t, report.SuggestedProjects)
	assert.Equal(t, "Full-Stack Web Application", report.SuggestedProjects[0].Title)
	assert.Equal(t, "Develops missing skills: JavaScript, React, Node.js, MongoDB", report.SuggestedProjects[0].Relevance)
	assert.Equal(t, "RESTful API Project", report.SuggestedProjects[1].Title)
}

func TestExtractSections(t *testing.T) {
	sections := ExtractSections("Contact\njane@example.com\nExperience\nAcme Corp - Engineer\n\nEducation\nBSc Computer Science")

	assert.Equal(t, "jane@example.com\n", sections["contact"])
	assert.Equal(t, "Acme Corp - Engineer\n", sections["experience"])
	assert.Equal(t, "BSc Computer Science\n", sections["education"])
	assert.Equal(t, "", sections["certifications"])
	assert.Len(t, sections, 6)
}

func TestRequirementsAndResumeFacts(t *testing.T) {
	req := ExtractJobRequirements("Requires 3+ years experience with Go and a Bachelor's degree")
	assert.Equal(t, "3", req["experience_level"])
	assert.Equal(t, "bachelor's degree", req["education_level"])
	assert.Equal(t, []string{"Go"}, req["required_skills"])

	assert.Equal(t, 5, ExperienceYears("5 years experience"))
	assert.Equal(t, 3, ExperienceYears("Experience: 3 years"))
	assert.Equal(t, 0, ExperienceYears("fresh graduate"))

	assert.Equal(t, []string{"BSc, State University"}, Education("Jane\n  BSc, State University  \nSkills"))

	meta := ParseResume("Skills\nPython\n2 years experience")
	assert.Equal(t, []string{"Python"}, meta["skills"])
	assert.Equal(t, 2, meta["experience_years"])
}

func TestRecommend(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	jobs := Recommend("React JavaScript TypeScript HTML CSS developer", now)

	require.Len(t, jobs, maxRecommendations)
	assert.Equal(t, "Frontend Developer", jobs[0].Title)
	assert.Equal(t, 83.0, jobs[0].MatchPercentage)
	assert.Equal(t, []string{"Communication"}, jobs[0].MissingSkills)
	assert.Equal(t, "2025-03-07", jobs[0].PostedDate)

	for i := 1; i < len(jobs); i++ {
		assert.GreaterOrEqual(t, jobs[i-1].MatchPercentage, jobs[i].MatchPercentage)
	}
}
