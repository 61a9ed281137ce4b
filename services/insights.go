package services

import (
	"catalog-scraper/models"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

type Report struct {
	TotalProducts    int
	PricedProducts   int
	UnpricedProducts int
	AveragePrice     float64
	MinPrice         float64
	MaxPrice         float64
	MostExpensive    models.Product
	BiggestDiscounts []Discounted
}

// Discounted is a product with both prices known and a real markdown.
type Discounted struct {
	Product models.Product
	Percent float64
}

// GenerateReport computes summary statistics over a finalized result.
func GenerateReport(products []models.Product) Report {
	report := Report{TotalProducts: len(products)}

	var (
		priceSum   float64
		maxPrice   = -1.0
		minPrice   = math.MaxFloat64
		discounted []Discounted
	)

	for _, p := range products {
		if p.CurrentPrice == nil {
			report.UnpricedProducts++
			continue
		}
		price := *p.CurrentPrice
		report.PricedProducts++
		priceSum += price

		if price > maxPrice {
			maxPrice = price
			report.MostExpensive = p
		}
		if price < minPrice {
			minPrice = price
		}

		if p.InitialPrice != nil && *p.InitialPrice > price && *p.InitialPrice > 0 {
			discounted = append(discounted, Discounted{
				Product: p,
				Percent: (*p.InitialPrice - price) / *p.InitialPrice * 100,
			})
		}
	}

	if report.PricedProducts > 0 {
		report.AveragePrice = priceSum / float64(report.PricedProducts)
		report.MinPrice = minPrice
		report.MaxPrice = maxPrice
	}

	sort.SliceStable(discounted, func(i, j int) bool {
		return discounted[i].Percent > discounted[j].Percent
	})
	if len(discounted) > 5 {
		discounted = discounted[:5]
	}
	report.BiggestDiscounts = discounted

	return report
}

func PrintReport(w io.Writer, report Report) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Catalog Price Insights")
	t.AppendRows([]table.Row{
		{"Total Products Scraped", report.TotalProducts},
		{"With Price", report.PricedProducts},
		{"Without Price", report.UnpricedProducts},
		{"Average Price", fmt.Sprintf("%.2f", report.AveragePrice)},
		{"Minimum Price", fmt.Sprintf("%.2f", report.MinPrice)},
		{"Maximum Price", fmt.Sprintf("%.2f", report.MaxPrice)},
	})
	t.Render()

	if report.MostExpensive.Name != "" {
		fmt.Fprintf(w, "\nMost expensive: %s (%.2f)\n", report.MostExpensive.Name, *report.MostExpensive.CurrentPrice)
	}

	if len(report.BiggestDiscounts) == 0 {
		return
	}
	d := table.NewWriter()
	d.SetOutputMirror(w)
	d.SetTitle("Biggest Discounts")
	d.AppendHeader(table.Row{"#", "Product", "Was", "Now", "Off"})
	for i, item := range report.BiggestDiscounts {
		d.AppendRow(table.Row{
			i + 1,
			truncateText(item.Product.Name, 44),
			fmt.Sprintf("%.2f", *item.Product.InitialPrice),
			fmt.Sprintf("%.2f", *item.Product.CurrentPrice),
			fmt.Sprintf("%.0f%%", item.Percent),
		})
	}
	d.Render()
}

// PrintProducts prints every product in result order.
func PrintProducts(w io.Writer, products []models.Product) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "Name", "Current", "Initial", "Discount", "Reviews", "Stars"})
	for i, p := range products {
		t.AppendRow(table.Row{
			i + 1,
			truncateText(p.Name, 60),
			formatPrice(p.CurrentPrice),
			formatPrice(p.InitialPrice),
			p.Discount,
			p.Reviews,
			p.Stars,
		})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d products", len(products))})
	t.Render()
}

func formatPrice(p *float64) string {
	if p == nil {
		return "NaN"
	}
	return fmt.Sprintf("%.2f", *p)
}

func truncateText(s string, max int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= max {
		return string(runes)
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
