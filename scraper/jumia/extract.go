package jumia

import (
	"catalog-scraper/models"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Field selectors inside one item node.
const (
	nameSelector         = ".name"
	currentPriceSelector = ".prc"
	initialPriceSelector = ".old"
	discountSelector     = ".bdg._dsct._sm"
	reviewsSelector      = ".rev"
	starsSelector        = ".stars._s"
	linkSelector         = "a"
)

type fieldStatus int

const (
	fieldPresent fieldStatus = iota
	fieldAbsent
	fieldUnparsable
)

// fieldResult is the outcome of a single field lookup. Extraction combines
// one per field and never stops early.
type fieldResult[T any] struct {
	value  T
	status fieldStatus
}

func (r fieldResult[T]) orZero() T {
	if r.status != fieldPresent {
		var zero T
		return zero
	}
	return r.value
}

// ExtractStats counts degraded fields across every extracted product.
type ExtractStats struct {
	Products   int
	Absent     int
	Unparsable int
}

func (s *ExtractStats) add(statuses ...fieldStatus) {
	if s == nil {
		return
	}
	s.Products++
	for _, st := range statuses {
		switch st {
		case fieldAbsent:
			s.Absent++
		case fieldUnparsable:
			s.Unparsable++
		}
	}
}

// ExtractProduct builds a product from one item node. A missing or malformed
// field falls back to its sentinel; a product is always returned.
func ExtractProduct(node ItemNode) models.Product {
	return extractProduct(node, nil)
}

func extractProduct(node ItemNode, stats *ExtractStats) models.Product {
	name := textField(node, nameSelector)
	current := priceField(node, currentPriceSelector)
	initial := priceField(node, initialPriceSelector)
	discount := textField(node, discountSelector)
	reviews := textField(node, reviewsSelector)
	stars := textField(node, starsSelector)
	link := attrField(node, linkSelector, "href")

	stats.add(name.status, current.status, initial.status,
		discount.status, reviews.status, stars.status, link.status)

	return models.Product{
		Name:         name.orZero(),
		CurrentPrice: current.orZero(),
		InitialPrice: initial.orZero(),
		Discount:     discount.orZero(),
		Reviews:      reviews.orZero(),
		Stars:        stars.orZero(),
		URL:          link.orZero(),
	}
}

func textField(node ItemNode, selector string) fieldResult[string] {
	text, ok := node.LookupText(selector)
	if !ok {
		return fieldResult[string]{status: fieldAbsent}
	}
	return fieldResult[string]{value: text}
}

func attrField(node ItemNode, selector, attr string) fieldResult[string] {
	val, ok := node.LookupAttribute(selector, attr)
	if !ok {
		return fieldResult[string]{status: fieldAbsent}
	}
	return fieldResult[string]{value: val}
}

func priceField(node ItemNode, selector string) fieldResult[*float64] {
	text, ok := node.LookupText(selector)
	if !ok {
		return fieldResult[*float64]{status: fieldAbsent}
	}
	v, ok := ParsePrice(text)
	if !ok {
		return fieldResult[*float64]{status: fieldUnparsable}
	}
	return fieldResult[*float64]{value: &v}
}

// currencyPrefixes are currency codes written with letters, which the
// unicode.Sc check below does not catch.
var currencyPrefixes = strings.NewReplacer(
	"GH₵", "", "GHS", "", "KSh", "", "KES", "", "NGN", "", "EGP", "", "UGX", "", "MAD", "", "CFA", "",
)

// ParsePrice strips currency symbols, thousands separators and spaces,
// then parses what is left. It reports false for empty or non-numeric input,
// including exponent and hex forms.
func ParsePrice(raw string) (float64, bool) {
	cleaned := currencyPrefixes.Replace(raw)
	cleaned = strings.Map(func(r rune) rune {
		if r == ',' || unicode.IsSpace(r) || unicode.Is(unicode.Sc, r) {
			return -1
		}
		return r
	}, cleaned)
	if cleaned == "" || strings.TrimLeft(cleaned, "0123456789.+-") != "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
