package jumia

import (
	"catalog-scraper/config"
	"catalog-scraper/utils"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// chromedpSession drives one Chrome tab through the DevTools protocol.
type chromedpSession struct {
	allocCancel    context.CancelFunc
	tabCtx         context.Context
	requestTimeout time.Duration
}

func openChromedp(ctx context.Context, cfg *config.Config) (Session, error) {
	utils.Info("Launching Chrome browser (chromedp)...")
	allocCtx, allocCancel := chromedp.NewExecAllocator(
		context.Background(),
		utils.BrowserOpts(cfg.Headless)...,
	)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)

	// The first Run starts the browser; it must not carry a timeout or the
	// browser would die with it.
	started := make(chan error, 1)
	go func() { started <- chromedp.Run(tabCtx) }()

	select {
	case err := <-started:
		if err != nil {
			tabCancel()
			allocCancel()
			return nil, fmt.Errorf("start chrome: %w", err)
		}
	case <-ctx.Done():
		tabCancel()
		allocCancel()
		return nil, ctx.Err()
	}

	return &chromedpSession{
		allocCancel:    allocCancel,
		tabCtx:         tabCtx,
		requestTimeout: cfg.RequestTimeout,
	}, nil
}

func (s *chromedpSession) Fetch(ctx context.Context, pageURL string, readyTimeout time.Duration) (*Page, error) {
	navCtx, cancel := context.WithTimeout(s.tabCtx, s.requestTimeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if err := chromedp.Run(navCtx, chromedp.Navigate(pageURL)); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("navigate %s: %w", pageURL, err)
	}

	waitCtx, waitCancel := context.WithTimeout(navCtx, readyTimeout)
	defer waitCancel()
	if err := chromedp.Run(waitCtx, chromedp.WaitReady(itemSelector, chromedp.ByQuery)); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrPageTimeout
		}
		return nil, fmt.Errorf("wait for items on %s: %w", pageURL, err)
	}

	var html string
	if err := chromedp.Run(navCtx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return nil, fmt.Errorf("read rendered html: %w", err)
	}
	return ParsePage(strings.NewReader(html), pageURL)
}

func (s *chromedpSession) Close() error {
	utils.Info("Closing browser (chromedp)...")
	err := chromedp.Cancel(s.tabCtx)
	s.allocCancel()
	return err
}
