package heuristics

import (
	"regexp"
	"strconv"
	"strings"
)

// Resume section names, in the order headings are checked.
var sectionHeadings = []struct {
	name     string
	keywords []string
}{
	{"contact", []string{"contact", "email", "phone"}},
	{"summary", []string{"summary", "objective", "profile"}},
	{"experience", []string{"experience", "work history", "employment"}},
	{"education", []string{"education", "academic"}},
	{"skills", []string{"skills", "technical skills"}},
	{"certifications", []string{"certifications", "certificates"}},
}

// ExtractSections splits a resume into sections keyed by heading. A line
// containing a heading keyword starts that section; following non-blank
// lines are appended to it. Every section key is present.
func ExtractSections(text string) map[string]string {
	sections := make(map[string]string, len(sectionHeadings))
	for _, h := range sectionHeadings {
		sections[h.name] = ""
	}

	current := ""
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(strings.TrimSpace(line))
		if heading := matchHeading(lower); heading != "" {
			current = heading
			continue
		}
		if current != "" && lower != "" {
			sections[current] += line + "\n"
		}
	}
	return sections
}

func matchHeading(line string) string {
	for _, h := range sectionHeadings {
		for _, kw := range h.keywords {
			if strings.Contains(line, kw) {
				return h.name
			}
		}
	}
	return ""
}

var (
	jobExperiencePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)\+?\s*years?\s*experience`),
		regexp.MustCompile(`experience\s*level:\s*(\w+)`),
		regexp.MustCompile(`(\d+)\+?\s*years?\s*in\s*\w+`),
	}

	resumeExperiencePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)\+?\s*years?\s*experience`),
		regexp.MustCompile(`(\d+)\+?\s*years?\s*in\s*\w+`),
		regexp.MustCompile(`experience:\s*(\d+)\+?\s*years?`),
	}

	educationLevels = []struct {
		re    *regexp.Regexp
		label string
	}{
		{regexp.MustCompile(`bachelor'?s?\s*degree`), "bachelor's degree"},
		{regexp.MustCompile(`master'?s?\s*degree`), "master's degree"},
		{regexp.MustCompile(`\bphd\b`), "phd"},
		{regexp.MustCompile(`associate'?s?\s*degree`), "associate's degree"},
	}

	educationKeywords = []string{"bachelor", "master", "phd", "degree", "university", "college"}
)

// ExtractJobRequirements summarises what a job description asks for.
func ExtractJobRequirements(jobText string) map[string]interface{} {
	lower := strings.ToLower(jobText)

	experienceLevel := ""
	for _, re := range jobExperiencePatterns {
		if m := re.FindStringSubmatch(lower); m != nil {
			experienceLevel = m[1]
			break
		}
	}

	educationLevel := ""
	for _, level := range educationLevels {
		if level.re.MatchString(lower) {
			educationLevel = level.label
			break
		}
	}

	return map[string]interface{}{
		"required_skills":  ExtractSkills(jobText),
		"preferred_skills": []string{},
		"experience_level": experienceLevel,
		"education_level":  educationLevel,
		"responsibilities": []string{},
	}
}

// ExperienceYears returns the first "N years experience" style figure in a
// resume, or 0.
func ExperienceYears(text string) int {
	lower := strings.ToLower(text)
	for _, re := range resumeExperiencePatterns {
		if m := re.FindStringSubmatch(lower); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				return n
			}
		}
	}
	return 0
}

// Education returns the resume lines that mention a degree or institution.
func Education(text string) []string {
	lines := []string{}
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		for _, kw := range educationKeywords {
			if strings.Contains(lower, kw) {
				lines = append(lines, strings.TrimSpace(line))
				break
			}
		}
	}
	return lines
}
