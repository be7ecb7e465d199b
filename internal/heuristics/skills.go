// Package heuristics implements the deterministic scoring backend served by
// cmd/scorer: skill vocabulary matching, text similarity measures and the
// feedback generated from them.
package heuristics

import (
	"regexp"
	"strings"
)

type skillPattern struct {
	re   *regexp.Regexp
	name string
}

func skill(pattern, name string) skillPattern {
	return skillPattern{re: regexp.MustCompile(pattern), name: name}
}

// vocabulary is matched against lowercased text. Order is the order skills
// are reported in.
var vocabulary = []skillPattern{
	// Programming languages
	skill(`\b(python|py)\b`, "Python"),
	skill(`\b(javascript|js)\b`, "JavaScript"),
	skill(`\b(typescript|ts)\b`, "TypeScript"),
	skill(`\bjava\b`, "Java"),
	skill(`(^|[^a-z0-9])c\+\+|\bcpp\b`, "C++"),
	skill(`(^|[^a-z0-9])c#|\bcsharp\b`, "C#"),
	skill(`\bphp\b`, "PHP"),
	skill(`\bruby\b`, "Ruby"),
	skill(`\b(go|golang)\b`, "Go"),
	skill(`\brust\b`, "Rust"),
	skill(`\bswift\b`, "Swift"),
	skill(`\bkotlin\b`, "Kotlin"),

	// Web
	skill(`\bhtml5?\b`, "HTML"),
	skill(`\bcss3?\b`, "CSS"),
	skill(`\b(react\.?js|reactjs|react)\b`, "React"),
	skill(`\bangular\b`, "Angular"),
	skill(`\b(vue\.?js|vuejs|vue)\b`, "Vue.js"),
	skill(`\b(node\.?js|nodejs)\b`, "Node.js"),
	skill(`\b(express\.?js|express)\b`, "Express.js"),
	skill(`\bdjango\b`, "Django"),
	skill(`\bflask\b`, "Flask"),
	skill(`\bspring\b`, "Spring"),
	skill(`\blaravel\b`, "Laravel"),
	skill(`\bjquery\b`, "jQuery"),
	skill(`\bbootstrap\b`, "Bootstrap"),
	skill(`\btailwind\b`, "Tailwind CSS"),

	// Databases
	skill(`\bmysql\b`, "MySQL"),
	skill(`\b(postgresql|postgres)\b`, "PostgreSQL"),
	skill(`\b(mongodb|mongo)\b`, "MongoDB"),
	skill(`\bredis\b`, "Redis"),
	skill(`\bsqlite\b`, "SQLite"),
	skill(`\boracle\b`, "Oracle"),
	skill(`\bsql\s+server\b`, "SQL Server"),

	// Cloud and DevOps
	skill(`\b(aws|amazon\s+web\s+services)\b`, "AWS"),
	skill(`\b(azure|microsoft\s+azure)\b`, "Azure"),
	skill(`\b(gcp|google\s+cloud)\b`, "Google Cloud"),
	skill(`\bdocker\b`, "Docker"),
	skill(`\b(kubernetes|k8s)\b`, "Kubernetes"),
	skill(`\bjenkins\b`, "Jenkins"),
	skill(`\bgit\b`, "Git"),
	skill(`\bgithub\b`, "GitHub"),
	skill(`\bgitlab\b`, "GitLab"),

	// Tools and practices
	skill(`\b(rest\s+api|restful)\b`, "REST API"),
	skill(`\bgraphql\b`, "GraphQL"),
	skill(`\bapi\b`, "API Development"),
	skill(`\bmicroservices\b`, "Microservices"),
	skill(`\bagile\b`, "Agile"),
	skill(`\bscrum\b`, "Scrum"),
	skill(`\bci/cd\b`, "CI/CD"),

	// Soft skills
	skill(`\bleadership\b`, "Leadership"),
	skill(`\b(teamwork|team\s+work)\b`, "Teamwork"),
	skill(`\bcommunication\b`, "Communication"),
	skill(`\bproblem\s+solving\b`, "Problem Solving"),
	skill(`\bproject\s+management\b`, "Project Management"),
}

// ExtractSkills returns the vocabulary skills mentioned in text, each once,
// in vocabulary order.
func ExtractSkills(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}

	lower := strings.ToLower(text)
	skills := []string{}
	for _, p := range vocabulary {
		if p.re.MatchString(lower) {
			skills = append(skills, p.name)
		}
	}
	return skills
}

// intersect returns the elements of a that are also in b, keeping a's order.
func intersect(a, b []string) []string {
	set := toSet(b)
	out := []string{}
	for _, s := range a {
		if set[strings.ToLower(s)] {
			out = append(out, s)
		}
	}
	return out
}

// subtract returns the elements of a that are not in b, keeping a's order.
func subtract(a, b []string) []string {
	set := toSet(b)
	out := []string{}
	for _, s := range a {
		if !set[strings.ToLower(s)] {
			out = append(out, s)
		}
	}
	return out
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = true
	}
	return set
}
