package models

// Product is one listing scraped from a catalog page.
// A nil price means the price was missing or could not be parsed.
type Product struct {
	Name         string
	CurrentPrice *float64
	InitialPrice *float64
	Discount     string
	Reviews      string
	Stars        string
	URL          string
}

// Price returns a pointer to v, for building products by hand.
func Price(v float64) *float64 {
	return &v
}

type Mode string

const (
	ModeSequential Mode = "sequential"
	ModeSearch     Mode = "search"
	ModeSinglePage Mode = "single-page"
)

// ListingRequest describes one page request. Values are never mutated;
// Next returns the request for the following page.
type ListingRequest struct {
	BasePath  string
	Page      int
	Expedited bool
	LocalOnly bool
}

func (r ListingRequest) Next() ListingRequest {
	r.Page++
	return r
}

// ResultSet holds the finalized products of one run, sorted by current price.
type ResultSet struct {
	Mode        Mode
	Destination string
	Pages       int
	Products    []Product
}

func (rs *ResultSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.Products)
}
