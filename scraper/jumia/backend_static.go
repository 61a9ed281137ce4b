package jumia

import (
	"bytes"
	"catalog-scraper/config"
	"catalog-scraper/utils"
	"context"
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"
	"golang.org/x/net/html/charset"
)

// staticSession fetches server-rendered HTML without a browser. It only
// finds items the server sends in the initial document.
type staticSession struct {
	collector *colly.Collector
}

func openStatic(_ context.Context, cfg *config.Config) (Session, error) {
	utils.Info("Using static HTTP backend (colly), pages are not rendered")
	c := colly.NewCollector(
		colly.UserAgent(utils.UserAgent),
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(cfg.RequestTimeout)
	return &staticSession{collector: c}, nil
}

func (s *staticSession) Fetch(ctx context.Context, pageURL string, _ time.Duration) (*Page, error) {
	// A clone shares the HTTP backend but gets its own callbacks.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c := s.collector.Clone()

	var (
		page     *Page
		parseErr error
	)
	c.OnResponse(func(r *colly.Response) {
		body, err := charset.NewReader(bytes.NewReader(r.Body), r.Headers.Get("Content-Type"))
		if err != nil {
			parseErr = fmt.Errorf("decode %s: %w", pageURL, err)
			return
		}
		page, parseErr = ParsePage(body, r.Request.URL.String())
	})

	if err := c.Visit(pageURL); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("visit %s: %w", pageURL, err)
	}
	c.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if parseErr != nil {
		return nil, parseErr
	}
	if page == nil || len(page.Items) == 0 {
		return nil, ErrPageTimeout
	}
	return page, nil
}

func (s *staticSession) Close() error {
	return nil
}
