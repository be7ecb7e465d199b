package heuristics

import (
	"fmt"
	"strings"

	"jobhunt-insights/pkg/models"
)

func generateStrengths(resumeSkills, jobSkills, matching []string) []string {
	var strengths []string

	if len(matching) > 0 {
		strengths = append(strengths, "Strong technical skills in "+strings.Join(head(matching, 3), ", "))
	}
	if len(resumeSkills) > 5 {
		strengths = append(strengths, "Diverse skill set with multiple technologies")
	}
	if len(jobSkills) > 0 && float64(len(matching)) > float64(len(jobSkills))*0.7 {
		strengths = append(strengths, "Excellent alignment with job requirements")
	}

	if len(strengths) == 0 {
		return []string{"Good technical foundation"}
	}
	return strengths
}

func generateImprovements(resumeSkills, missing []string) []string {
	var improvements []string

	if len(missing) > 0 {
		improvements = append(improvements, "Add missing skills: "+strings.Join(head(missing, 3), ", "))
	}
	if len(resumeSkills) < 3 {
		improvements = append(improvements, "Expand your technical skill set")
	}
	if len(resumeSkills) == 0 {
		improvements = append(improvements, "Highlight technical skills in your resume")
	}

	if len(improvements) == 0 {
		return []string{"Continue developing your technical skills"}
	}
	return improvements
}

var projectTemplates = []struct {
	title       string
	description string
	skills      []string
}{
	{"Full-Stack Web Application", "Build a complete web app with frontend and backend", []string{"JavaScript", "React", "Node.js", "MongoDB"}},
	{"RESTful API Project", "Create a scalable API with authentication and database", []string{"Node.js", "Express.js", "MongoDB", "REST API"}},
	{"Data Analysis Project", "Build a data processing and visualization application", []string{"Python", "PostgreSQL", "Docker"}},
}

// defaultProject is suggested when no template covers a missing skill.
var defaultProject = models.SuggestedProject{
	Title:       "Portfolio Project",
	Description: "Build a comprehensive project showcasing your skills",
	Relevance:   "Demonstrates practical experience",
}

func generateProjects(missing []string) []models.SuggestedProject {
	var projects []models.SuggestedProject
	for _, tpl := range projectTemplates {
		covered := intersect(tpl.skills, missing)
		if len(covered) == 0 {
			continue
		}
		projects = append(projects, models.SuggestedProject{
			Title:       tpl.title,
			Description: tpl.description,
			Relevance:   fmt.Sprintf("Develops missing skills: %s", strings.Join(covered, ", ")),
		})
	}

	if len(projects) == 0 {
		return []models.SuggestedProject{defaultProject}
	}
	return projects
}

func head(values []string, n int) []string {
	if len(values) <= n {
		return values
	}
	return values[:n]
}
