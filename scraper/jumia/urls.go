package jumia

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
)

// Site paths for the three run modes.
const (
	BlackFridayPath = "/mlp-black-friday/"
	CatalogPath     = "/catalog/"
	FlashSalesPath  = "/flash-sales/"
)

// Query markers appended by the filter toggles.
const (
	expressMarker = "shop_premium_services=shop_express"
	localMarker   = "shipped_from=country_local"
)

var ErrEmptyBasePath = errors.New("empty base path")

// BuildURL composes a listing URL from the site root, a base path that may
// already carry a query (e.g. a search), and the page filters.
//
// The query order is fixed: existing params, page, express, local.
func BuildURL(siteURL, basePath string, page int, expedited, localOnly bool) (string, error) {
	if basePath == "" {
		return "", ErrEmptyBasePath
	}

	path, query, _ := strings.Cut(basePath, "?")

	var b strings.Builder
	b.WriteString(strings.TrimRight(siteURL, "/"))
	if !strings.HasPrefix(path, "/") && siteURL != "" {
		b.WriteByte('/')
	}
	b.WriteString(path)
	b.WriteByte('?')
	if query != "" {
		b.WriteString(query)
		b.WriteByte('&')
	}
	b.WriteString("page=")
	b.WriteString(strconv.Itoa(page))
	if expedited {
		b.WriteByte('&')
		b.WriteString(expressMarker)
	}
	if localOnly {
		b.WriteByte('&')
		b.WriteString(localMarker)
	}
	return b.String(), nil
}

// SearchPath returns the catalog path for a keyword search.
func SearchPath(query string) string {
	return CatalogPath + "?q=" + url.QueryEscape(strings.TrimSpace(query))
}

// SearchDestination names the export of a search run, e.g. "smart tv" ->
// "smart_tv_sorted_products". Only ASCII letters and digits survive, so the
// name is always a single file name.
func SearchDestination(query string) string {
	name := slugify(query)
	if name == "" {
		name = "search"
	}
	return name + "_sorted_products"
}

// slugify keeps ASCII letters and digits and collapses every other run of
// characters into one underscore, trimmed at both ends.
func slugify(s string) string {
	var b strings.Builder
	pending := false
	for _, r := range s {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			if pending && b.Len() > 0 {
				b.WriteByte('_')
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	return b.String()
}
