package heuristics

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"jobhunt-insights/pkg/models"
)

type opening struct {
	title      string
	company    string
	location   string
	skills     []string
	experience string
	jobType    string
	source     string
	postedDays int
}

// catalogue is the fixed set of openings recommendations are ranked from.
var catalogue = []opening{
	{"Frontend Developer", "InnovateSoft", "Remote", []string{"React", "JavaScript", "TypeScript", "HTML", "CSS", "Communication"}, "1-3 years", "Full-time", "LinkedIn", 3},
	{"Backend Developer", "ServerTech", "Berlin, Germany", []string{"Go", "PostgreSQL", "Docker", "REST API", "Redis", "Teamwork"}, "2-4 years", "Full-time", "Indeed", 5},
	{"Python Developer", "DataInsights", "Bangalore, India", []string{"Python", "Django", "PostgreSQL", "REST API", "Git"}, "1-3 years", "Full-time", "Naukri", 7},
	{"Full Stack Developer", "StartupXYZ", "San Francisco, CA", []string{"JavaScript", "React", "Node.js", "Express.js", "MongoDB", "Problem Solving"}, "2-4 years", "Full-time", "AngelList", 2},
	{"Software Engineer Intern", "TechCorp", "Remote", []string{"Python", "JavaScript", "Git", "SQL Server", "Teamwork"}, "0-1 years", "Internship", "Internshala", 10},
	{"DevOps Engineer", "CloudSystems", "London, UK", []string{"Docker", "Kubernetes", "AWS", "CI/CD", "Jenkins", "Git"}, "3-5 years", "Full-time", "Glassdoor", 4},
	{"Java Backend Engineer", "TechCorp", "New York, NY", []string{"Java", "Spring", "MySQL", "Microservices", "Agile"}, "3-5 years", "Contract", "LinkedIn", 12},
	{"Data Engineer", "DataInsights", "Remote", []string{"Python", "PostgreSQL", "Google Cloud", "Docker", "Communication"}, "2-4 years", "Full-time", "Cutshort", 6},
	{"Mobile Developer", "MobileApps Inc", "Remote", []string{"Kotlin", "Swift", "REST API", "Git"}, "1-3 years", "Part-time", "Indeed", 15},
	{"Cloud Engineer", "CloudSystems", "Remote", []string{"Azure", "AWS", "Kubernetes", "Leadership", "Project Management"}, "5+ years", "Full-time", "Glassdoor", 9},
	{"PHP Web Developer", "DesignStudio", "Remote", []string{"PHP", "Laravel", "MySQL", "jQuery", "Bootstrap"}, "1-3 years", "Contract", "Naukri", 20},
	{"API Developer", "ServerTech", "Remote", []string{"Node.js", "GraphQL", "TypeScript", "API Development", "Redis"}, "2-4 years", "Full-time", "AngelList", 8},
}

// maxRecommendations bounds the number of listings returned.
const maxRecommendations = 10

// Recommend ranks the catalogue by overlap with the resume's skills,
// highest match first. Ties keep catalogue order.
func Recommend(resumeText string, now time.Time) []models.JobListing {
	resumeSkills := ExtractSkills(resumeText)

	jobs := make([]models.JobListing, 0, len(catalogue))
	for i, o := range catalogue {
		matching := intersect(o.skills, resumeSkills)
		missing := subtract(o.skills, resumeSkills)
		match := math.Round(float64(len(matching)) / float64(len(o.skills)) * 100)

		jobs = append(jobs, models.JobListing{
			ID:              fmt.Sprintf("%d", i+1),
			Title:           o.title,
			Company:         o.company,
			Location:        o.location,
			Description:     describe(o),
			Skills:          append([]string(nil), o.skills...),
			Experience:      o.experience,
			JobType:         o.jobType,
			MatchPercentage: match,
			MatchingSkills:  matching,
			MissingSkills:   missing,
			URL:             fmt.Sprintf("https://example.com/job/%d", i+1),
			Source:          o.source,
			PostedDate:      now.AddDate(0, 0, -o.postedDays).Format("2006-01-02"),
		})
	}

	sort.SliceStable(jobs, func(i, j int) bool {
		return jobs[i].MatchPercentage > jobs[j].MatchPercentage
	})

	if len(jobs) > maxRecommendations {
		jobs = jobs[:maxRecommendations]
	}
	return jobs
}

func describe(o opening) string {
	last := len(o.skills) - 1
	return fmt.Sprintf("We are looking for a %s to join our team. The ideal candidate will have experience with %s and %s. "+
		"You will be responsible for developing and maintaining our applications, collaborating with cross-functional teams, and ensuring high-quality code.",
		o.title, strings.Join(o.skills[:last], ", "), o.skills[last])
}
