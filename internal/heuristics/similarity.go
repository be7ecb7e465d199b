package heuristics

import (
	"math"
	"regexp"
	"strings"
)

var termPattern = regexp.MustCompile(`\b\w\w+\b`)

var stopWords = toSet(strings.Fields(`
a about above after again against all also am an and any are as at be because been before being
below between both but by can could did do does doing down during each either else etc ever every
few for from further had has have having he her here hers herself him himself his how however i if
in into is it its itself just least less may me might more most much must my myself neither no nor
not of off often on once only or other our ours ourselves out over own per rather same several she
should since so some such than that the their theirs them themselves then there these they this
those though through thus to too under until up upon us very via was we well were what when where
whether which while who whom whose why will with within without would yet you your yours yourself
yourselves`))

// TermSimilarity is the cosine similarity of the two texts' TF-IDF vectors
// (smoothed idf over the pair, stop words removed), in [0,1].
func TermSimilarity(a, b string) float64 {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return 0
	}

	tfA, tfB := termCounts(a), termCounts(b)
	if len(tfA) == 0 || len(tfB) == 0 {
		return 0
	}

	idf := func(term string) float64 {
		df := 0
		if tfA[term] > 0 {
			df++
		}
		if tfB[term] > 0 {
			df++
		}
		return math.Log(3.0/float64(1+df)) + 1
	}

	weights := func(tf map[string]int) map[string]float64 {
		w := make(map[string]float64, len(tf))
		var norm float64
		for term, n := range tf {
			v := float64(n) * idf(term)
			w[term] = v
			norm += v * v
		}
		norm = math.Sqrt(norm)
		for term := range w {
			w[term] /= norm
		}
		return w
	}

	wA, wB := weights(tfA), weights(tfB)
	var dot float64
	for term, v := range wA {
		dot += v * wB[term]
	}
	return clampUnit(dot)
}

// KeywordDensity is the share of resume words that also appear in the job
// text, capped at 1.
func KeywordDensity(resumeText, jobText string) float64 {
	resumeWords := strings.Fields(strings.ToLower(resumeText))
	jobWords := toSet(strings.Fields(strings.ToLower(jobText)))
	if len(resumeWords) == 0 || len(jobWords) == 0 {
		return 0
	}

	matching := 0
	for _, w := range resumeWords {
		if jobWords[w] {
			matching++
		}
	}
	return clampUnit(float64(matching) / float64(len(resumeWords)))
}

// JaccardSimilarity is |A∩B| / |A∪B| over the whitespace-separated,
// lowercased word sets of a and b.
func JaccardSimilarity(a, b string) float64 {
	setA := toSet(strings.Fields(strings.ToLower(a)))
	setB := toSet(strings.Fields(strings.ToLower(b)))
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for w := range setA {
		if setB[w] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

func termCounts(text string) map[string]int {
	counts := make(map[string]int)
	for _, term := range termPattern.FindAllString(strings.ToLower(text), -1) {
		if !stopWords[term] {
			counts[term]++
		}
	}
	return counts
}

func clampUnit(v float64) float64 {
	switch {
	case v < 0 || math.IsNaN(v):
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
