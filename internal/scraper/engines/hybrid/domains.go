package hybrid

import (
	"net/url"
	"strings"
	"sync"
	"time"
)

// defaultBrowserDomains render their postings client-side, so a plain fetch
// never carries the description.
var defaultBrowserDomains = []string{"linkedin.com", "indeed.com", "glassdoor.com", "wellfound.com"}

// BrowserDomains tracks hosts that need a rendered page. Hosts are learned
// when the plain fetch comes back without usable text.
type BrowserDomains struct {
	domains map[string]time.Time // domain -> first seen
	mu      sync.RWMutex
}

func NewBrowserDomains(seed ...string) *BrowserDomains {
	bd := &BrowserDomains{domains: make(map[string]time.Time)}
	for _, d := range seed {
		bd.domains[normalizeHost(d)] = time.Time{}
	}
	return bd
}

// Contains reports whether urlStr's host, or a parent of it, is known.
func (bd *BrowserDomains) Contains(urlStr string) bool {
	host := hostOf(urlStr)
	if host == "" {
		return false
	}

	bd.mu.RLock()
	defer bd.mu.RUnlock()

	for host != "" {
		if _, ok := bd.domains[host]; ok {
			return true
		}
		i := strings.IndexByte(host, '.')
		if i < 0 {
			break
		}
		host = host[i+1:]
	}
	return false
}

// Add records urlStr's host. It reports whether the host was new.
func (bd *BrowserDomains) Add(urlStr string) bool {
	host := hostOf(urlStr)
	if host == "" {
		return false
	}

	bd.mu.Lock()
	defer bd.mu.Unlock()

	if _, exists := bd.domains[host]; exists {
		return false
	}
	bd.domains[host] = time.Now()
	return true
}

// Count returns the number of known domains
func (bd *BrowserDomains) Count() int {
	bd.mu.RLock()
	defer bd.mu.RUnlock()
	return len(bd.domains)
}

func hostOf(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return normalizeHost(u.Hostname())
}

func normalizeHost(host string) string {
	return strings.TrimPrefix(strings.ToLower(host), "www.")
}
