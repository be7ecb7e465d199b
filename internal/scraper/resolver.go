package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"jobhunt-insights/internal/logging"
	"jobhunt-insights/internal/metrics"
	"jobhunt-insights/pkg/models"
	"jobhunt-insights/pkg/utils"
)

// PlaceholderJobDescription replaces the job text whenever scraping fails.
const PlaceholderJobDescription = `Software Developer Internship

We are looking for a talented software developer intern to join our team. 

Requirements:
- Programming experience in JavaScript, Python, or similar languages
- Knowledge of web development technologies
- Experience with databases and APIs
- Good communication skills
- Ability to work in a team environment

Responsibilities:
- Develop and maintain web applications
- Work with modern frameworks and tools
- Collaborate with team members
- Learn new technologies as needed

This is a great opportunity for students to gain real-world experience in software development.`

// Job text sources.
const (
	SourceManual      = "manual"
	SourceScraped     = "scraped"
	SourceCache       = "cache"
	SourcePlaceholder = "placeholder"
)

// ErrRateLimited is returned internally when the domain budget is exhausted.
var ErrRateLimited = errors.New("domain rate limit exceeded")

// ErrUnusableURL marks a job URL that is not absolute http(s) even after
// adding a default scheme.
var ErrUnusableURL = errors.New("job URL is not an absolute http(s) URL")

var hostLike = regexp.MustCompile(`(?i)^[a-z0-9-]+(\.[a-z0-9-]+)+(:\d+)?$`)

// Resolution is the resolved job description.
type Resolution struct {
	Text     string
	Source   string
	URL      string
	Selector string
	Degraded bool
	Reason   string
}

// Descriptor converts the resolution into the job side of an analysis.
func (r *Resolution) Descriptor() models.JobDescriptor {
	return models.JobDescriptor{SourceURL: r.URL, RawText: r.Text, Source: r.Source}
}

// ResolverOptions tunes a Resolver; zero values take defaults.
type ResolverOptions struct {
	Timeout       time.Duration
	MinTextLength int
	Limiter       *DomainLimiter
	Cache         Cache
	Logger        logging.Logger
}

// Resolver produces job description text from manual input or a URL.
type Resolver struct {
	scraper       PageScraper
	timeout       time.Duration
	minTextLength int
	limiter       *DomainLimiter
	cache         Cache
	logger        logging.Logger
}

func NewResolver(scraper PageScraper, opts ResolverOptions) *Resolver {
	r := &Resolver{
		scraper:       scraper,
		timeout:       opts.Timeout,
		minTextLength: opts.MinTextLength,
		limiter:       opts.Limiter,
		cache:         opts.Cache,
		logger:        opts.Logger,
	}
	if r.timeout <= 0 {
		r.timeout = 30 * time.Second
	}
	if r.minTextLength <= 0 {
		r.minTextLength = 100
	}
	if r.cache == nil {
		r.cache = NoopCache{}
	}
	if r.logger == nil {
		r.logger = logging.NewDiscardLogger()
	}
	return r
}

// Resolve returns manualText verbatim when it is not blank; the scraper is
// not consulted in that case. Otherwise jobURL is scraped, with https://
// assumed when it starts with a bare host. Both blank is an input error.
// Unusable URLs and scrape failures never surface: they yield
// PlaceholderJobDescription with Degraded set.
func (r *Resolver) Resolve(ctx context.Context, manualText, jobURL string) (*Resolution, error) {
	if !utils.IsBlank(manualText) {
		return &Resolution{
			Text:   manualText,
			Source: SourceManual,
			URL:    strings.TrimSpace(jobURL),
		}, nil
	}

	jobURL = strings.TrimSpace(jobURL)
	if jobURL == "" {
		return nil, utils.NewInputError("either jobUrl or jobDescription is required")
	}
	jobURL = withDefaultScheme(jobURL)
	if !isHTTPURL(jobURL) {
		return r.placeholder(jobURL, fmt.Errorf("%w: %q", ErrUnusableURL, jobURL)), nil
	}
	jobURL = utils.CanonicalJobURL(jobURL)

	if text, hit, err := r.cache.Get(ctx, jobURL); err != nil {
		r.logger.Warn("scrape cache lookup failed", map[string]interface{}{"url": jobURL, "error": err.Error()})
	} else if hit {
		metrics.ScrapeCacheTotal.WithLabelValues("hit").Inc()
		return &Resolution{Text: text, Source: SourceCache, URL: jobURL}, nil
	} else {
		metrics.ScrapeCacheTotal.WithLabelValues("miss").Inc()
	}

	res, err := r.scrape(ctx, jobURL)
	if err != nil {
		return r.placeholder(jobURL, err), nil
	}

	if err := r.cache.Set(ctx, jobURL, res.Text); err != nil {
		r.logger.Warn("scrape cache store failed", map[string]interface{}{"url": jobURL, "error": err.Error()})
	}

	return res, nil
}

func (r *Resolver) scrape(ctx context.Context, jobURL string) (res *Resolution, err error) {
	engine := r.scraper.Name()
	defer func() {
		if p := recover(); p != nil {
			res, err = nil, fmt.Errorf("scraper panicked: %v", p)
		}
		outcome := "success"
		if err != nil {
			outcome = "failure"
		}
		metrics.ScrapeRequestsTotal.WithLabelValues(engine, outcome).Inc()
	}()

	if !r.limiter.Allow(jobURL) {
		return nil, fmt.Errorf("%w for %s", ErrRateLimited, DomainOf(jobURL))
	}

	scrapeCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	page, err := r.scraper.Scrape(scrapeCtx, jobURL)
	if err != nil {
		return nil, err
	}
	if page == nil || strings.TrimSpace(page.Content) == "" {
		return nil, ErrNoText
	}

	if page.ContentType == models.ContentMarkdown {
		return &Resolution{Text: CleanText(page.Content), Source: SourceScraped, URL: jobURL, Selector: "markdown"}, nil
	}

	extraction, err := ExtractDescription(page.Content, r.minTextLength)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("job description extracted", map[string]interface{}{
		"url":      jobURL,
		"engine":   engine,
		"selector": extraction.Selector,
		"length":   len(extraction.Text),
	})

	return &Resolution{
		Text:     extraction.Text,
		Source:   SourceScraped,
		URL:      jobURL,
		Selector: extraction.Selector,
	}, nil
}

// placeholder records a scrape failure and returns the fixed description.
func (r *Resolver) placeholder(jobURL string, cause error) *Resolution {
	metrics.RecordDegradation(metrics.DegradationScrape)
	r.logger.Warn("job scrape failed, using placeholder description", map[string]interface{}{
		"degradation": metrics.DegradationScrape,
		"url":         jobURL,
		"engine":      r.scraper.Name(),
		"error":       cause.Error(),
	})
	return &Resolution{
		Text:     PlaceholderJobDescription,
		Source:   SourcePlaceholder,
		URL:      jobURL,
		Degraded: true,
		Reason:   cause.Error(),
	}
}

// withDefaultScheme prefixes https:// to scheme-less input that starts with
// a host name, such as a pasted "www.linkedin.com/jobs/view/1".
func withDefaultScheme(raw string) string {
	if strings.Contains(raw, "://") || strings.ContainsAny(raw, " \t\n") {
		return raw
	}
	host := raw
	if i := strings.IndexAny(host, "/?#"); i >= 0 {
		host = host[:i]
	}
	if !hostLike.MatchString(host) {
		return raw
	}
	return "https://" + raw
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
