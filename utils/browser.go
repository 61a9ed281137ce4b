package utils

import (
	"github.com/chromedp/chromedp"
)

// UserAgent identifies the scraper honestly on every backend.
const UserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// BrowserOpts returns the ChromeDP launch options shared by every run.
//
// no-sandbox and disable-gpu keep Chrome usable inside containers and CI.
func BrowserOpts(headless bool) []chromedp.ExecAllocatorOption {
	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent(UserAgent),
	}

	if headless {
		opts = append(opts, chromedp.Headless)
	}

	return opts
}
