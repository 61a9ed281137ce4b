package jumia

import (
	"catalog-scraper/config"
	"catalog-scraper/models"
	"catalog-scraper/utils"
	"context"
	"errors"
	"time"
)

type State int

const (
	StateFetching State = iota
	StateHasPage
	StateExhausted
	StateDone
)

func (s State) String() string {
	switch s {
	case StateFetching:
		return "FETCHING"
	case StateHasPage:
		return "HAS_PAGE"
	case StateExhausted:
		return "EXHAUSTED"
	case StateDone:
		return "DONE"
	}
	return "UNKNOWN"
}

// StopReason explains why pagination ended.
type StopReason string

const (
	StopTimeout     StopReason = "no items before timeout"
	StopEmptyPage   StopReason = "page had no items"
	StopNoNextPage  StopReason = "no next page control"
	StopSinglePage  StopReason = "single page mode"
	StopMaxPages    StopReason = "page limit reached"
	StopFetchFailed StopReason = "fetch failed"
)

// DriverResult is everything one pagination run collected, in page then
// position order.
type DriverResult struct {
	Products []models.Product
	Pages    int
	Fetches  int
	Stop     StopReason
	Stats    ExtractStats
}

// Driver runs the fetch and extract loop over consecutive listing pages.
// It is not safe for concurrent use; one page is in flight at a time.
type Driver struct {
	fetcher      PageFetcher
	delay        utils.DelayPolicy
	siteURL      string
	readyTimeout time.Duration
	maxPages     int
	maxRetries   int
	retryBase    time.Duration

	onTransition func(from, to State)
}

func NewDriver(fetcher PageFetcher, cfg *config.Config, delay utils.DelayPolicy) *Driver {
	if delay == nil {
		delay = utils.NewRandomDelay(cfg.MinDelay, cfg.MaxDelay)
	}
	return &Driver{
		fetcher:      fetcher,
		delay:        delay,
		siteURL:      cfg.BaseURL,
		readyTimeout: cfg.ReadyTimeout,
		maxPages:     cfg.MaxPages,
		maxRetries:   cfg.MaxRetries,
		retryBase:    2 * time.Second,
	}
}

// Run walks pages starting at req until the mode's stop condition holds.
// Timeouts and failed fetches end the loop and keep what was collected.
// The only errors returned are an empty base path and ctx cancellation,
// the latter alongside the partial result.
func (d *Driver) Run(ctx context.Context, mode models.Mode, req models.ListingRequest) (*DriverResult, error) {
	if req.BasePath == "" {
		return nil, ErrEmptyBasePath
	}
	if req.Page < 1 {
		req.Page = 1
	}

	res := &DriverResult{}
	state := StateFetching
	var page *Page

	for state != StateDone {
		next := state

		switch state {
		case StateFetching:
			if err := ctx.Err(); err != nil {
				return res, err
			}
			p, err := d.fetch(ctx, req)
			res.Fetches++
			switch {
			case err == nil:
				page = p
				next = StateHasPage
			case errors.Is(err, ErrPageTimeout):
				utils.Warn("No products found on page %d. Stopping.", req.Page)
				res.Stop = StopTimeout
				next = StateExhausted
			case ctx.Err() != nil:
				return res, ctx.Err()
			default:
				utils.Error("Page %d failed: %v", req.Page, err)
				res.Stop = StopFetchFailed
				next = StateExhausted
			}

		case StateHasPage:
			utils.Info("Scraping %d products on page %d...", len(page.Items), req.Page)
			for _, item := range page.Items {
				res.Products = append(res.Products, extractProduct(item, &res.Stats))
			}
			if len(page.Items) > 0 {
				res.Pages++
			}

			switch {
			case mode == models.ModeSinglePage:
				res.Stop = StopSinglePage
				next = StateExhausted
			case len(page.Items) == 0:
				res.Stop = StopEmptyPage
				next = StateExhausted
			case mode == models.ModeSearch && !page.HasNextPage:
				res.Stop = StopNoNextPage
				next = StateExhausted
			case d.maxPages > 0 && req.Page >= d.maxPages:
				res.Stop = StopMaxPages
				next = StateExhausted
			default:
				if err := d.delay.Wait(ctx); err != nil {
					return res, err
				}
				req = req.Next()
				next = StateFetching
			}
			page = nil

		case StateExhausted:
			next = StateDone
		}

		if d.onTransition != nil && next != state {
			d.onTransition(state, next)
		}
		utils.Debug("pagination %s -> %s", state, next)
		state = next
	}

	utils.Success("Pagination finished after %d fetches (%s): %d products, %d fields absent, %d unparsable",
		res.Fetches, res.Stop, len(res.Products), res.Stats.Absent, res.Stats.Unparsable)
	return res, nil
}

func (d *Driver) fetch(ctx context.Context, req models.ListingRequest) (*Page, error) {
	pageURL, err := BuildURL(d.siteURL, req.BasePath, req.Page, req.Expedited, req.LocalOnly)
	if err != nil {
		return nil, err
	}
	utils.Info("Fetching page %d: %s", req.Page, pageURL)

	var page *Page
	err = utils.Retry(ctx, d.maxRetries, d.retryBase, isPermanent(ctx), func() error {
		p, err := d.fetcher.Fetch(ctx, pageURL, d.readyTimeout)
		page = p
		return err
	})
	if err != nil {
		return nil, err
	}
	if page == nil {
		page = &Page{URL: pageURL}
	}
	return page, nil
}

// isPermanent marks errors a retry cannot fix: timeouts end pagination and
// a cancelled run must not keep fetching.
func isPermanent(ctx context.Context) func(error) bool {
	return func(err error) bool {
		return errors.Is(err, ErrPageTimeout) || ctx.Err() != nil
	}
}
