package heuristics

import "jobhunt-insights/pkg/models"

// Score weights; they sum to 1.
const (
	weightSkill      = 0.35
	weightExperience = 0.25
	weightKeyword    = 0.20
	weightSemantic   = 0.20
)

// Mismatch messages.
const (
	MessageCompleteMismatch = "This position is not suitable for your current skill set."
	MessageLowScore         = "Your skills don't align well with this position."
)

// lowScoreThreshold is the overall score under which a match is flagged.
const lowScoreThreshold = 50

// Analyze scores resumeText against jobText. Sub-scores are whole
// percentages truncated toward zero; the overall score is the weighted sum
// of the unrounded fractions.
func Analyze(resumeText, jobText string) *models.MatchReport {
	resumeSkills := ExtractSkills(resumeText)
	jobSkills := ExtractSkills(jobText)
	matching := intersect(resumeSkills, jobSkills)
	missing := subtract(jobSkills, resumeSkills)

	skillMatch := 0.0
	if len(jobSkills) > 0 {
		skillMatch = float64(len(intersect(jobSkills, resumeSkills))) / float64(len(jobSkills))
	}
	experienceMatch := TermSimilarity(resumeText, jobText)
	keywordDensity := KeywordDensity(resumeText, jobText)
	semantic := JaccardSimilarity(resumeText, jobText)

	overall := percent(skillMatch*weightSkill + experienceMatch*weightExperience +
		keywordDensity*weightKeyword + semantic*weightSemantic)
	semanticPercent := percent(semantic)

	report := &models.MatchReport{
		OverallScore:       overall,
		SkillMatch:         percent(skillMatch),
		ExperienceMatch:    percent(experienceMatch),
		KeywordDensity:     percent(keywordDensity),
		SemanticSimilarity: &semanticPercent,
		Strengths:          generateStrengths(resumeSkills, jobSkills, matching),
		Improvements:       generateImprovements(resumeSkills, missing),
		SuggestedProjects:  generateProjects(missing),
		RequiredSkills:     jobSkills,
		YourSkills:         resumeSkills,
		MatchingSkills:     matching,
		MissingSkills:      missing,
		ResumeSections:     ExtractSections(resumeText),
		JobRequirements:    ExtractJobRequirements(jobText),
	}

	completeMismatch := skillMatch < 0.1 && experienceMatch < 0.1
	switch {
	case completeMismatch:
		report.IsCompleteMismatch = true
		report.MismatchMessage = MessageCompleteMismatch
	case overall < lowScoreThreshold:
		report.IsCompleteMismatch = true
		report.MismatchMessage = MessageLowScore
	}

	return report
}

// ParseResume builds the structured metadata the API stores alongside an
// uploaded resume.
func ParseResume(text string) map[string]interface{} {
	return map[string]interface{}{
		"sections":         ExtractSections(text),
		"skills":           ExtractSkills(text),
		"experience_years": ExperienceYears(text),
		"education":        Education(text),
	}
}

func percent(fraction float64) float64 {
	return float64(int(clampUnit(fraction) * 100))
}
