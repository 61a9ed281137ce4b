package jumia

import (
	"catalog-scraper/models"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const productHTML = `<!doctype html><html><body>
<div class="-paxs row _no-g _4cl-3cm-shs">
<article class="prd _fb col c-prd">
  <a class="core" href="/samsung-43-smart-tv-12345.html">
    <div class="info">
      <h3 class="name">Samsung 43"
        Smart TV</h3>
      <div class="prc">GH₵ 3,499.00</div>
      <div class="s-prc-w">
        <div class="old">GH₵ 4,200.00</div>
        <div class="bdg _dsct _sm">17%</div>
      </div>
      <div class="rev"><div class="stars _s">4.5 out of 5</div>(120)</div>
    </div>
  </a>
</article>
<article class="prd _fb col c-prd">
  <div class="info">
    <h3 class="name">Unbranded Phone Case</h3>
    <div class="prc">GH₵ 25.00</div>
  </div>
</article>
<article class="prd _fb col c-prd">
  <a class="core" href="https://www.jumia.com.gh/blender.html">
    <h3 class="name">Blender</h3>
    <div class="prc">GH₵ 150 - GH₵ 300</div>
    <div class="old">was cheaper</div>
  </a>
</article>
</div>
</body></html>`

func parseFixture(t *testing.T, html string) *Page {
	t.Helper()
	page, err := ParsePage(strings.NewReader(html), site+"/catalog/?page=1")
	require.NoError(t, err)
	return page
}

func TestExtractProductAllFields(t *testing.T) {
	page := parseFixture(t, productHTML)
	require.Len(t, page.Items, 3)

	p := ExtractProduct(page.Items[0])
	require.Equal(t, `Samsung 43" Smart TV`, p.Name)
	require.NotNil(t, p.CurrentPrice)
	require.Equal(t, 3499.0, *p.CurrentPrice)
	require.NotNil(t, p.InitialPrice)
	require.Equal(t, 4200.0, *p.InitialPrice)
	require.Equal(t, "17%", p.Discount)
	require.Equal(t, "4.5 out of 5(120)", p.Reviews)
	require.Equal(t, "4.5 out of 5", p.Stars)
	require.Equal(t, site+"/samsung-43-smart-tv-12345.html", p.URL)
}

func TestExtractProductNameAndPriceOnly(t *testing.T) {
	page := parseFixture(t, productHTML)

	p := ExtractProduct(page.Items[1])
	require.Equal(t, models.Product{
		Name:         "Unbranded Phone Case",
		CurrentPrice: models.Price(25),
		InitialPrice: nil,
		Discount:     "",
		Reviews:      "",
		Stars:        "",
		URL:          "",
	}, p)
}

func TestExtractProductUnparsablePrices(t *testing.T) {
	page := parseFixture(t, productHTML)

	var stats ExtractStats
	p := extractProduct(page.Items[2], &stats)
	require.Equal(t, "Blender", p.Name)
	require.Nil(t, p.CurrentPrice)
	require.Nil(t, p.InitialPrice)
	require.Equal(t, "https://www.jumia.com.gh/blender.html", p.URL)

	require.Equal(t, 1, stats.Products)
	require.Equal(t, 2, stats.Unparsable)
	require.Equal(t, 3, stats.Absent)
}

// fakeNode answers lookups from a map keyed by selector.
type fakeNode struct {
	text map[string]string
	href string
}

func (n fakeNode) LookupText(selector string) (string, bool) {
	v, ok := n.text[selector]
	return v, ok
}

func (n fakeNode) LookupAttribute(selector, attr string) (string, bool) {
	if selector != linkSelector || attr != "href" || n.href == "" {
		return "", false
	}
	return n.href, true
}

func TestExtractProductFieldIsolation(t *testing.T) {
	full := map[string]string{
		nameSelector:         "Kettle",
		currentPriceSelector: "GH₵ 120",
		initialPriceSelector: "GH₵ 150",
		discountSelector:     "20%",
		reviewsSelector:      "(8)",
		starsSelector:        "4 out of 5",
	}
	textSelectors := []string{nameSelector, currentPriceSelector, initialPriceSelector, discountSelector, reviewsSelector, starsSelector}

	// Every subset of the seven fields: bit i set means field i is missing,
	// the link being bit 6.
	for mask := 0; mask < 1<<7; mask++ {
		node := fakeNode{text: map[string]string{}, href: "https://example.com/kettle"}
		for i, sel := range textSelectors {
			if mask&(1<<i) == 0 {
				node.text[sel] = full[sel]
			}
		}
		if mask&(1<<6) != 0 {
			node.href = ""
		}

		p := ExtractProduct(node)

		missing := func(i int) bool { return mask&(1<<i) != 0 }
		expectText := func(i int, want string) string {
			if missing(i) {
				return ""
			}
			return want
		}
		expectPrice := func(i int, want float64) *float64 {
			if missing(i) {
				return nil
			}
			return models.Price(want)
		}

		require.Equal(t, models.Product{
			Name:         expectText(0, "Kettle"),
			CurrentPrice: expectPrice(1, 120),
			InitialPrice: expectPrice(2, 150),
			Discount:     expectText(3, "20%"),
			Reviews:      expectText(4, "(8)"),
			Stars:        expectText(5, "4 out of 5"),
			URL:          expectText(6, "https://example.com/kettle"),
		}, p, "mask %07b", mask)
	}
}

func TestParsePrice(t *testing.T) {
	testCases := []struct {
		raw      string
		expected float64
		ok       bool
	}{
		{raw: "GH₵ 1,234.50", expected: 1234.5, ok: true},
		{raw: "GH₵ 99", expected: 99, ok: true},
		{raw: "₦ 12,000", expected: 12000, ok: true},
		{raw: "KSh 999", expected: 999, ok: true},
		{raw: "$5.25", expected: 5.25, ok: true},
		{raw: "  3 500 ", expected: 3500, ok: true},
		{raw: ""},
		{raw: "GH₵"},
		{raw: "Call for price"},
		{raw: "GH₵ 150 - GH₵ 300"},
		{raw: "1.2.3"},
		{raw: "NaN"},
		{raw: "Inf"},
		{raw: "0x1p3"},
		{raw: "1e3"},
	}

	for _, test := range testCases {
		v, ok := ParsePrice(test.raw)
		require.Equal(t, test.ok, ok, "raw %q", test.raw)
		if test.ok {
			require.InDelta(t, test.expected, v, 1e-9, "raw %q", test.raw)
		}
	}
}
