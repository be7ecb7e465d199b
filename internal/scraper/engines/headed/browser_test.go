package headed

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobhunt-insights/internal/config"
	"jobhunt-insights/internal/logging"
)

// brokenBrowserConfig points the manager at a binary that exits at once,
// so every launch fails without a real Chromium.
func brokenBrowserConfig(t *testing.T) *config.Config {
	t.Helper()
	if _, err := os.Stat("/bin/false"); err != nil {
		t.Skip("/bin/false not available")
	}
	cfg := config.Default()
	cfg.Browser.ChromePath = "/bin/false"
	cfg.Browser.MaxInstances = 1
	return cfg
}

func TestGetBrowser_RelaunchesAfterFailedLaunch(t *testing.T) {
	bm := NewBrowserManager(brokenBrowserConfig(t), logging.NewDiscardLogger())
	defer bm.Cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := bm.GetBrowser(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to launch browser")

	_, err = bm.GetBrowser(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to launch browser")
	assert.NotContains(t, err.Error(), "already launched")

	assert.Equal(t, 2, bm.launches)
	assert.Nil(t, bm.launcher)
}

func TestGetBrowser_FailedLaunchFreesSlot(t *testing.T) {
	bm := NewBrowserManager(brokenBrowserConfig(t), logging.NewDiscardLogger())
	defer bm.Cleanup()

	_, err := bm.GetBrowser(context.Background())
	require.Error(t, err)
	assert.Len(t, bm.slots, 0)
	assert.True(t, bm.IsHealthy(), "no browser running is not unhealthy")
}

func TestGetBrowser_CanceledContextDoesNotLaunch(t *testing.T) {
	bm := NewBrowserManager(brokenBrowserConfig(t), logging.NewDiscardLogger())
	defer bm.Cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := bm.GetBrowser(ctx)
	require.Error(t, err)
	assert.Zero(t, bm.launches)
}

func TestSystemChromePath_PrefersConfigured(t *testing.T) {
	t.Setenv("CHROME_BIN", "")
	assert.Equal(t, "/bin/false", systemChromePath("/bin/false"))
	assert.NotEqual(t, "/definitely/missing/chrome", systemChromePath("/definitely/missing/chrome"))
}
