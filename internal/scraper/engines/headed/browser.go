package headed

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"jobhunt-insights/internal/config"
	"jobhunt-insights/internal/logging"
)

// BrowserManager owns one lazily launched Chromium process and bounds the
// number of pages open on it at once. A browser that dies is replaced on the
// next lease with a fresh launcher.
type BrowserManager struct {
	config     *config.Config
	chromePath string
	launcher   *launcher.Launcher
	browser    *rod.Browser
	launches   int
	slots      chan struct{}
	mu         sync.Mutex
	logger     logging.Logger
}

// BrowserInstance is a page leased from the manager
type BrowserInstance struct {
	Page    *rod.Page
	manager *BrowserManager
	once    sync.Once
}

// NewBrowserManager resolves the Chrome binary; nothing starts until the first page is requested.
func NewBrowserManager(cfg *config.Config, logger logging.Logger) *BrowserManager {
	chromePath := systemChromePath(cfg.Browser.ChromePath)
	if chromePath != "" {
		logger.Info("Using system Chrome browser", map[string]interface{}{
			"chrome_path": chromePath,
		})
	} else {
		logger.Warn("System Chrome not found, Rod will download browser")
	}

	instances := cfg.Browser.MaxInstances
	if instances <= 0 {
		instances = 1
	}

	return &BrowserManager{
		config:     cfg,
		chromePath: chromePath,
		slots:      make(chan struct{}, instances),
		logger:     logger,
	}
}

// newLauncher builds a launcher for one browser process; rod launchers
// cannot be launched twice.
func newLauncher(cfg *config.Config, chromePath string) *launcher.Launcher {
	l := launcher.New().
		Headless(cfg.Scraper.HeadlessMode).
		NoSandbox(true).
		Set("disable-blink-features", "AutomationControlled").
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-gpu").
		Set("disable-dev-shm-usage")

	if chromePath != "" {
		l = l.Bin(chromePath)
	}
	if cfg.Scraper.UserAgent != "" {
		l = l.Set("user-agent", cfg.Scraper.UserAgent)
	}
	return l
}

// GetBrowser waits for a free page slot and opens a page on the shared browser
func (bm *BrowserManager) GetBrowser(ctx context.Context) (*BrowserInstance, error) {
	select {
	case bm.slots <- struct{}{}:
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for browser slot: %w", ctx.Err())
	}

	browser, err := bm.ensureBrowser(ctx)
	if err != nil {
		<-bm.slots
		return nil, err
	}

	page, err := bm.createPage(browser)
	if err != nil {
		<-bm.slots
		bm.reset()
		return nil, err
	}

	return &BrowserInstance{Page: page, manager: bm}, nil
}

func (bm *BrowserManager) ensureBrowser(ctx context.Context) (*rod.Browser, error) {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.browser != nil {
		return bm.browser, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	// The process outlives the request, so the launcher is not bound to ctx.
	l := newLauncher(bm.config, bm.chromePath)
	bm.launcher = l
	bm.launches++

	controlURL, err := l.Launch()
	if err != nil {
		l.Kill()
		bm.launcher = nil
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		bm.launcher = nil
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	bm.logger.Info("New browser instance created", map[string]interface{}{"launches": bm.launches})
	bm.browser = browser
	return browser, nil
}

func (bm *BrowserManager) createPage(browser *rod.Browser) (*rod.Page, error) {
	var (
		page *rod.Page
		err  error
	)
	if bm.config.Scraper.StealthMode {
		page, err = stealth.Page(browser)
	} else {
		page, err = browser.Page(proto.TargetCreateTarget{})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             1920,
		Height:            1080,
		DeviceScaleFactor: 1,
	}); err != nil {
		bm.logger.Debug("Failed to set viewport", map[string]interface{}{"error": err.Error()})
	}

	if bm.config.Scraper.UserAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
			UserAgent:      bm.config.Scraper.UserAgent,
			AcceptLanguage: "en-US,en;q=0.9",
		}); err != nil {
			bm.logger.Debug("Failed to set user agent", map[string]interface{}{"error": err.Error()})
		}
	}

	return page, nil
}

// reset drops the browser and its process so the next lease relaunches it
func (bm *BrowserManager) reset() {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.browser != nil {
		_ = bm.browser.Close()
		bm.browser = nil
	}
	if bm.launcher != nil {
		bm.launcher.Kill()
		bm.launcher = nil
	}
}

// Navigate loads url and waits until the network has been quiet for
// idleWait, all bounded by ctx.
func (bi *BrowserInstance) Navigate(ctx context.Context, url string, idleWait time.Duration) error {
	page := bi.Page.Context(ctx)

	waitIdle := page.WaitRequestIdle(idleWait, nil, nil, nil)
	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("page %s did not load: %w", url, err)
	}

	if err := rod.Try(waitIdle); err != nil {
		return fmt.Errorf("page %s never went idle: %w", url, err)
	}
	return nil
}

// GetPageHTML returns the rendered DOM
func (bi *BrowserInstance) GetPageHTML() (string, error) {
	html, err := bi.Page.HTML()
	if err != nil {
		return "", fmt.Errorf("failed to get page HTML: %w", err)
	}
	return html, nil
}

// Release closes the page and frees its slot
func (bi *BrowserInstance) Release() {
	bi.once.Do(func() {
		if bi.Page != nil {
			_ = bi.Page.Close()
		}
		<-bi.manager.slots
	})
}

// IsHealthy reports whether the shared browser, if launched, still answers
func (bm *BrowserManager) IsHealthy() bool {
	bm.mu.Lock()
	browser := bm.browser
	bm.mu.Unlock()

	if browser == nil {
		return true
	}
	_, err := browser.Pages()
	return err == nil
}

// Cleanup closes the browser process
func (bm *BrowserManager) Cleanup() {
	bm.reset()
}

// systemChromePath prefers the configured binary, then CHROME_BIN, then
// well-known install locations.
func systemChromePath(configured string) string {
	candidates := []string{configured, os.Getenv("CHROME_BIN")}
	candidates = append(candidates,
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/opt/google/chrome/chrome",
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
	)

	for _, path := range candidates {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
