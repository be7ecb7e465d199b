package scraper

import (
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// domainLimiter is the token bucket and bookkeeping for one host
type domainLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
	allowed  int64
	rejected int64
}

// DomainLimiter throttles scrapes per host. Requests over the budget are
// rejected immediately, never queued.
type DomainLimiter struct {
	perMinute int
	burst     int
	idleTTL   time.Duration
	limiters  map[string]*domainLimiter
	mu        sync.Mutex
	now       func() time.Time
}

// NewDomainLimiter allows perMinute requests per host with the given burst.
// A non-positive perMinute disables throttling.
func NewDomainLimiter(perMinute, burst int) *DomainLimiter {
	if burst <= 0 {
		burst = 5
	}
	return &DomainLimiter{
		perMinute: perMinute,
		burst:     burst,
		idleTTL:   10 * time.Minute,
		limiters:  make(map[string]*domainLimiter),
		now:       time.Now,
	}
}

// Allow reports whether a scrape of rawURL may proceed now
func (dl *DomainLimiter) Allow(rawURL string) bool {
	if dl == nil || dl.perMinute <= 0 {
		return true
	}

	domain := DomainOf(rawURL)
	now := dl.now()

	dl.mu.Lock()
	defer dl.mu.Unlock()

	dl.evictIdle(now)

	l, ok := dl.limiters[domain]
	if !ok {
		l = &domainLimiter{
			limiter: rate.NewLimiter(rate.Limit(float64(dl.perMinute)/60.0), dl.burst),
		}
		dl.limiters[domain] = l
	}
	l.lastSeen = now

	if l.limiter.AllowN(now, 1) {
		l.allowed++
		return true
	}
	l.rejected++
	return false
}

// Stats returns allowed/rejected counters for a domain
func (dl *DomainLimiter) Stats(domain string) map[string]interface{} {
	dl.mu.Lock()
	defer dl.mu.Unlock()

	l, ok := dl.limiters[strings.ToLower(domain)]
	if !ok {
		return map[string]interface{}{"domain": domain, "tracked": false}
	}
	return map[string]interface{}{
		"domain":    domain,
		"tracked":   true,
		"allowed":   l.allowed,
		"rejected":  l.rejected,
		"last_seen": l.lastSeen,
	}
}

// evictIdle drops limiters unused for idleTTL; callers hold mu
func (dl *DomainLimiter) evictIdle(now time.Time) {
	cutoff := now.Add(-dl.idleTTL)
	for domain, l := range dl.limiters {
		if l.lastSeen.Before(cutoff) {
			delete(dl.limiters, domain)
		}
	}
}

// DomainOf extracts the lower-cased host of a URL, or "unknown"
func DomainOf(rawURL string) string {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "unknown"
	}
	if host := parsed.Hostname(); host != "" {
		return strings.ToLower(host)
	}
	return "unknown"
}
