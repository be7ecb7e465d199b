package utils

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	linkedInJobView = regexp.MustCompile(`^/jobs/view/(?:[^/]*-)?(\d+)/?$`)
	numericID       = regexp.MustCompile(`^\d+$`)
)

// trackingParams are stripped from job URLs so the same posting maps to one
// cache entry.
var trackingParams = []string{"trk", "trackingId", "refId", "ref", "src", "gclid", "fbclid"}

// IsLinkedInURL checks if a URL is a LinkedIn URL
func IsLinkedInURL(urlStr string) bool {
	u, err := url.Parse(urlStr)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	return host == "linkedin.com" || strings.HasSuffix(host, ".linkedin.com")
}

// LinkedInJobID returns the numeric posting id of a LinkedIn job URL: a
// /jobs/view/ page, or a collection or search page with currentJobId.
func LinkedInJobID(urlStr string) (string, bool) {
	if !IsLinkedInURL(urlStr) {
		return "", false
	}
	u, err := url.Parse(urlStr)
	if err != nil {
		return "", false
	}

	path := strings.ToLower(u.Path)
	if m := linkedInJobView.FindStringSubmatch(path); len(m) > 1 {
		return m[1], true
	}
	if strings.HasPrefix(path, "/jobs/collections/") || strings.HasPrefix(path, "/jobs/search") {
		if id := u.Query().Get("currentJobId"); numericID.MatchString(id) {
			return id, true
		}
	}
	return "", false
}

// CanonicalJobURL rewrites LinkedIn job links to the public posting page and
// drops tracking query parameters. URLs with nothing to rewrite are returned
// unchanged.
func CanonicalJobURL(urlStr string) string {
	if id, ok := LinkedInJobID(urlStr); ok {
		return "https://www.linkedin.com/jobs/view/" + id
	}

	u, err := url.Parse(urlStr)
	if err != nil || u.RawQuery == "" {
		return urlStr
	}

	query := u.Query()
	changed := false
	for key := range query {
		if isTrackingParam(key) {
			query.Del(key)
			changed = true
		}
	}
	if !changed {
		return urlStr
	}
	u.RawQuery = query.Encode()
	return u.String()
}

func isTrackingParam(key string) bool {
	if strings.HasPrefix(strings.ToLower(key), "utm_") {
		return true
	}
	for _, p := range trackingParams {
		if key == p {
			return true
		}
	}
	return false
}
