package services

import (
	"catalog-scraper/models"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const barWidth = 40

// ChartRenderer draws terminal charts: the cheapest products as horizontal
// bars and a histogram of current prices.
type ChartRenderer struct {
	out      io.Writer
	topN     int
	bins     int
	currency string
}

func NewChartRenderer(out io.Writer, topN, bins int) *ChartRenderer {
	if topN < 1 {
		topN = 10
	}
	if bins < 1 {
		bins = 20
	}
	return &ChartRenderer{out: out, topN: topN, bins: bins, currency: "GH₵"}
}

func (c *ChartRenderer) Render(products []models.Product) error {
	top := TopCheapest(products, c.topN)
	if len(top) == 0 {
		_, err := fmt.Fprintln(c.out, "No priced products to chart.")
		return err
	}

	if _, err := fmt.Fprintln(c.out, c.topChart(top)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(c.out, c.histogramChart(Histogram(Prices(products), c.bins)))
	return err
}

func (c *ChartRenderer) topChart(top []models.Product) string {
	highest := *top[len(top)-1].CurrentPrice

	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("Top %d Cheapest Products", len(top)))
	t.AppendHeader(table.Row{"#", "Product", fmt.Sprintf("Price (%s)", c.currency), ""})
	for i, p := range top {
		t.AppendRow(table.Row{i + 1, truncateText(p.Name, 44), fmt.Sprintf("%.2f", *p.CurrentPrice), bar(*p.CurrentPrice, highest)})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
	})
	return t.Render()
}

func (c *ChartRenderer) histogramChart(bins []Bin) string {
	most := 0
	for _, b := range bins {
		if b.Count > most {
			most = b.Count
		}
	}

	t := table.NewWriter()
	t.SetTitle("Price Distribution")
	t.AppendHeader(table.Row{fmt.Sprintf("Price (%s)", c.currency), "Frequency", ""})
	for _, b := range bins {
		t.AppendRow(table.Row{fmt.Sprintf("%.2f - %.2f", b.Low, b.High), b.Count, bar(float64(b.Count), float64(most))})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})
	return t.Render()
}

func bar(v, max float64) string {
	if max <= 0 || v <= 0 {
		return ""
	}
	n := int(math.Round(v / max * barWidth))
	if n < 1 {
		n = 1
	}
	return strings.Repeat("█", n)
}

// TopCheapest returns up to n priced products, cheapest first.
func TopCheapest(products []models.Product, n int) []models.Product {
	priced := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.CurrentPrice != nil {
			priced = append(priced, p)
		}
	}
	SortByCurrentPrice(priced)
	if len(priced) > n {
		priced = priced[:n]
	}
	return priced
}

// Prices returns the non-nil current prices in product order.
func Prices(products []models.Product) []float64 {
	out := make([]float64, 0, len(products))
	for _, p := range products {
		if p.CurrentPrice != nil {
			out = append(out, *p.CurrentPrice)
		}
	}
	return out
}

// Bin is one histogram bucket covering [Low, High); the last bucket also
// includes High.
type Bin struct {
	Low   float64
	High  float64
	Count int
}

// Histogram splits the range of prices into n equal width bins.
// If every price is equal there is a single bin.
func Histogram(prices []float64, n int) []Bin {
	if len(prices) == 0 || n < 1 {
		return nil
	}

	lo, hi := prices[0], prices[0]
	for _, p := range prices[1:] {
		lo = math.Min(lo, p)
		hi = math.Max(hi, p)
	}
	if lo == hi {
		return []Bin{{Low: lo, High: hi, Count: len(prices)}}
	}

	width := (hi - lo) / float64(n)
	bins := make([]Bin, n)
	for i := range bins {
		bins[i].Low = lo + float64(i)*width
		bins[i].High = lo + float64(i+1)*width
	}
	bins[n-1].High = hi

	for _, p := range prices {
		idx := int((p - lo) / width)
		if idx >= n {
			idx = n - 1
		}
		bins[idx].Count++
	}
	return bins
}
