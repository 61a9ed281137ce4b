package jumia

import (
	"catalog-scraper/config"
	"catalog-scraper/utils"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// rodSession drives a locally installed Chromium family browser with go-rod.
type rodSession struct {
	launcher       *launcher.Launcher
	browser        *rod.Browser
	page           *rod.Page
	requestTimeout time.Duration
}

func openRod(ctx context.Context, cfg *config.Config) (Session, error) {
	// Only use a browser already on this machine; never download one.
	bin, ok := launcher.LookPath()
	if !ok {
		return nil, errors.New("no local Chrome, Chromium or Edge binary found")
	}
	utils.Info("Launching browser (rod): %s", bin)

	l := launcher.New().
		Context(ctx).
		Bin(bin).
		Headless(cfg.Headless).
		NoSandbox(true).
		Set("disable-gpu")

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = browser.Close()
		l.Kill()
		return nil, fmt.Errorf("open page: %w", err)
	}
	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: utils.UserAgent}); err != nil {
		utils.Warn("rod: could not set user agent: %v", err)
	}

	return &rodSession{
		launcher:       l,
		browser:        browser,
		page:           page,
		requestTimeout: cfg.RequestTimeout,
	}, nil
}

func (s *rodSession) Fetch(ctx context.Context, pageURL string, readyTimeout time.Duration) (*Page, error) {
	nav := s.page.Context(ctx).Timeout(s.requestTimeout)
	defer nav.CancelTimeout()

	if err := nav.Navigate(pageURL); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("navigate %s: %w", pageURL, err)
	}
	if err := nav.WaitLoad(); err != nil {
		return nil, fmt.Errorf("load %s: %w", pageURL, err)
	}

	wait := s.page.Context(ctx).Timeout(readyTimeout)
	defer wait.CancelTimeout()
	if _, err := wait.Element(itemSelector); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrPageTimeout
		}
		return nil, fmt.Errorf("wait for items on %s: %w", pageURL, err)
	}

	html, err := s.page.Context(ctx).HTML()
	if err != nil {
		return nil, fmt.Errorf("read rendered html: %w", err)
	}
	return ParsePage(strings.NewReader(html), pageURL)
}

func (s *rodSession) Close() error {
	utils.Info("Closing browser (rod)...")
	err := s.browser.Close()
	s.launcher.Cleanup()
	return err
}
