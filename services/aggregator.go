package services

import (
	"catalog-scraper/models"
	"catalog-scraper/utils"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// PersistenceSink stores the finalized products under a destination name.
type PersistenceSink interface {
	Write(products []models.Product, destination string) error
}

// VisualizationSink renders charts of the finalized products.
type VisualizationSink interface {
	Render(products []models.Product) error
}

// Aggregator turns the products of one run into a ResultSet and hands it to
// the sinks.
type Aggregator struct {
	persist   PersistenceSink
	visualize VisualizationSink
}

func NewAggregator(persist PersistenceSink, visualize VisualizationSink) *Aggregator {
	return &Aggregator{persist: persist, visualize: visualize}
}

// Finalize dedupes and sorts records, then calls the persistence sink and the
// visualization sink, in that order, even when there are no records.
// Sink failures are returned joined for the caller to log; the ResultSet is
// valid either way and must not be modified afterwards.
func (a *Aggregator) Finalize(mode models.Mode, destination string, pages int, records []models.Product) (*models.ResultSet, error) {
	products := Dedupe(records)
	if dropped := len(records) - len(products); dropped > 0 {
		utils.Info("Dropped %d repeated listings", dropped)
	}
	SortByCurrentPrice(products)

	rs := &models.ResultSet{
		Mode:        mode,
		Destination: destination,
		Pages:       pages,
		Products:    products,
	}

	var errs []error
	if a.persist != nil {
		if err := a.persist.Write(rs.Products, destination); err != nil {
			errs = append(errs, fmt.Errorf("persist %s: %w", destination, err))
		}
	}
	if a.visualize != nil {
		if err := a.visualize.Render(rs.Products); err != nil {
			errs = append(errs, fmt.Errorf("visualize %s: %w", destination, err))
		}
	}
	return rs, errors.Join(errs...)
}

// SortByCurrentPrice sorts ascending by current price in place. Products
// without a price go last. Ties keep their original order.
func SortByCurrentPrice(products []models.Product) {
	sort.SliceStable(products, func(i, j int) bool {
		pi, pj := products[i].CurrentPrice, products[j].CurrentPrice
		switch {
		case pi == nil:
			return false
		case pj == nil:
			return true
		default:
			return *pi < *pj
		}
	})
}

// Dedupe drops products whose URL was already seen, keeping the first.
// Products without a URL are always kept.
func Dedupe(products []models.Product) []models.Product {
	seen := make(map[string]bool)
	out := make([]models.Product, 0, len(products))

	for _, p := range products {
		p.Name = strings.TrimSpace(p.Name)
		p.URL = strings.TrimSpace(p.URL)

		if p.URL != "" {
			if seen[p.URL] {
				continue
			}
			seen[p.URL] = true
		}
		out = append(out, p)
	}

	return out
}
