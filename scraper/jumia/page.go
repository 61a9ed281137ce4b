package jumia

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	itemSelector     = ".prd"
	nextPageSelector = `a[aria-label="Next Page"]`
)

// ItemNode is one rendered listing element. Lookups are scoped to the node
// and report false when nothing matches.
type ItemNode interface {
	LookupText(selector string) (string, bool)
	LookupAttribute(selector, attr string) (string, bool)
}

// Page is a rendered listing page reduced to what pagination needs.
type Page struct {
	URL         string
	Items       []ItemNode
	HasNextPage bool
}

// ParsePage parses a rendered HTML snapshot of pageURL.
func ParsePage(r io.Reader, pageURL string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse page %s: %w", pageURL, err)
	}
	return pageFromDocument(doc, pageURL), nil
}

func pageFromDocument(doc *goquery.Document, pageURL string) *Page {
	base, _ := url.Parse(pageURL)

	page := &Page{
		URL:         pageURL,
		HasNextPage: doc.Find(nextPageSelector).Length() > 0,
	}
	doc.Find(itemSelector).Each(func(i int, s *goquery.Selection) {
		page.Items = append(page.Items, selectionNode{sel: s, base: base})
	})
	return page
}

// selectionNode is an ItemNode over a goquery selection.
type selectionNode struct {
	sel  *goquery.Selection
	base *url.URL
}

func (n selectionNode) LookupText(selector string) (string, bool) {
	found := n.sel.Find(selector).First()
	if found.Length() == 0 {
		return "", false
	}
	return strings.Join(strings.Fields(found.Text()), " "), true
}

// LookupAttribute returns the attribute of the first match. Like a browser's
// href property, href values are resolved against the page URL.
func (n selectionNode) LookupAttribute(selector, attr string) (string, bool) {
	found := n.sel.Find(selector).First()
	if found.Length() == 0 {
		return "", false
	}
	val, ok := found.Attr(attr)
	if !ok {
		return "", false
	}
	val = strings.TrimSpace(val)
	if attr == "href" && n.base != nil && val != "" {
		if ref, err := url.Parse(val); err == nil {
			val = n.base.ResolveReference(ref).String()
		}
	}
	return val, true
}
