package jumia

import (
	"catalog-scraper/config"
	"catalog-scraper/models"
	"catalog-scraper/services"
	"catalog-scraper/utils"
	"context"
	"fmt"
)

// Export names of the fixed run modes.
const (
	BlackFridayDestination = "black_friday_sorted_products"
	FlashSalesDestination  = "flash_sales_sorted_products"
)

// Scraper runs one listing mode end to end: open a rendering session,
// paginate, close the session, then finalize through the aggregator.
// Runs must not overlap; each opens its own session.
type Scraper struct {
	cfg        *config.Config
	backends   []Backend
	delay      utils.DelayPolicy
	aggregator *services.Aggregator
}

func NewScraper(cfg *config.Config, backends []Backend, aggregator *services.Aggregator) *Scraper {
	return &Scraper{
		cfg:        cfg,
		backends:   backends,
		delay:      utils.NewRandomDelay(cfg.MinDelay, cfg.MaxDelay),
		aggregator: aggregator,
	}
}

// WithDelay replaces the pause policy between pages.
func (s *Scraper) WithDelay(delay utils.DelayPolicy) *Scraper {
	s.delay = delay
	return s
}

// RunSequential walks basePath page by page until a page has no items.
func (s *Scraper) RunSequential(ctx context.Context, basePath string, expedited, localOnly bool) (*models.ResultSet, error) {
	utils.Section("Sequential listing " + basePath)
	return s.run(ctx, models.ModeSequential, basePath, expedited, localOnly, destinationFor(basePath, BlackFridayPath, BlackFridayDestination))
}

// RunSearch walks keyword search results while a next page control exists.
func (s *Scraper) RunSearch(ctx context.Context, query string, expedited, localOnly bool) (*models.ResultSet, error) {
	utils.Section(fmt.Sprintf("Search %q", query))
	return s.run(ctx, models.ModeSearch, SearchPath(query), expedited, localOnly, SearchDestination(query))
}

// RunSinglePage fetches exactly one page, e.g. a flash sale.
func (s *Scraper) RunSinglePage(ctx context.Context, basePath string, expedited, localOnly bool) (*models.ResultSet, error) {
	utils.Section("Single page " + basePath)
	return s.run(ctx, models.ModeSinglePage, basePath, expedited, localOnly, destinationFor(basePath, FlashSalesPath, FlashSalesDestination))
}

func (s *Scraper) run(ctx context.Context, mode models.Mode, basePath string, expedited, localOnly bool, destination string) (*models.ResultSet, error) {
	if basePath == "" {
		return nil, ErrEmptyBasePath
	}
	req := models.ListingRequest{
		BasePath:  basePath,
		Page:      1,
		Expedited: expedited,
		LocalOnly: localOnly,
	}

	res, err := s.scrape(ctx, mode, req)
	if err != nil {
		return nil, err
	}

	rs, sinkErr := s.aggregator.Finalize(mode, destination, res.Pages, res.Products)
	if sinkErr != nil {
		utils.Error("Export failed, results are kept in memory: %v", sinkErr)
	}
	utils.Success("Scraped %d products over %d pages → %s", rs.Len(), rs.Pages, destination)
	return rs, nil
}

// scrape owns the session for the pagination loop only; it is closed before
// the sinks run, on every return path.
func (s *Scraper) scrape(ctx context.Context, mode models.Mode, req models.ListingRequest) (*DriverResult, error) {
	session, err := OpenSession(ctx, s.cfg, s.backends)
	if err != nil {
		return nil, fmt.Errorf("could not start scraper: %w", err)
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			utils.Warn("Closing rendering session: %v", cerr)
		}
	}()

	res, err := NewDriver(session, s.cfg, s.delay).Run(ctx, mode, req)
	if err != nil {
		return nil, fmt.Errorf("%s run interrupted: %w", mode, err)
	}
	return res, nil
}

// destinationFor uses the well known name for the default path and derives
// one from the path otherwise, e.g. "/mlp-anniversary/" -> "mlp_anniversary_sorted_products".
func destinationFor(basePath, knownPath, knownName string) string {
	if basePath == knownPath {
		return knownName
	}
	name := slugify(basePath)
	if name == "" {
		name = "listing"
	}
	return name + "_sorted_products"
}
