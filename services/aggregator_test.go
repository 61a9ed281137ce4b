package services

import (
	"catalog-scraper/models"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type sinkCall struct {
	kind        string
	products    []models.Product
	destination string
}

type fakeSinks struct {
	calls      []sinkCall
	persistErr error
	renderErr  error
}

type fakePersist struct{ s *fakeSinks }

func (f fakePersist) Write(products []models.Product, destination string) error {
	f.s.calls = append(f.s.calls, sinkCall{kind: "persist", products: products, destination: destination})
	return f.s.persistErr
}

type fakeRender struct{ s *fakeSinks }

func (f fakeRender) Render(products []models.Product) error {
	f.s.calls = append(f.s.calls, sinkCall{kind: "render", products: products})
	return f.s.renderErr
}

func product(name string, price *float64, url string) models.Product {
	return models.Product{Name: name, CurrentPrice: price, URL: url}
}

func names(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func TestSortByCurrentPriceNilLastAndStable(t *testing.T) {
	products := []models.Product{
		product("a", models.Price(50), ""),
		product("b", nil, ""),
		product("c", models.Price(30), ""),
		product("d", models.Price(50), ""),
		product("e", nil, ""),
		product("f", models.Price(10), ""),
	}

	SortByCurrentPrice(products)
	require.Equal(t, []string{"f", "c", "a", "d", "b", "e"}, names(products))

	// Sorting again changes nothing.
	SortByCurrentPrice(products)
	require.Equal(t, []string{"f", "c", "a", "d", "b", "e"}, names(products))
}

func TestSortByCurrentPriceProperty(t *testing.T) {
	var products []models.Product
	for i := 0; i < 200; i++ {
		var price *float64
		if i%3 != 0 {
			price = models.Price(float64((i * 37) % 11))
		}
		products = append(products, product(string(rune('A'+i%26))+string(rune('0'+i/26)), price, ""))
	}
	original := append([]models.Product(nil), products...)

	SortByCurrentPrice(products)

	seenNil := false
	for i, p := range products {
		if p.CurrentPrice == nil {
			seenNil = true
			continue
		}
		require.False(t, seenNil, "priced product after nil at %d", i)
		if i > 0 {
			require.LessOrEqual(t, *products[i-1].CurrentPrice, *p.CurrentPrice)
		}
	}

	// Nil priced products keep their original relative order.
	var wantNil, gotNil []string
	for _, p := range original {
		if p.CurrentPrice == nil {
			wantNil = append(wantNil, p.Name)
		}
	}
	for _, p := range products {
		if p.CurrentPrice == nil {
			gotNil = append(gotNil, p.Name)
		}
	}
	require.Equal(t, wantNil, gotNil)
}

func TestDedupe(t *testing.T) {
	products := []models.Product{
		product(" a ", models.Price(1), "https://x/1"),
		product("b", models.Price(2), ""),
		product("c", models.Price(3), "https://x/1 "),
		product("d", models.Price(4), ""),
		product("e", models.Price(5), "https://x/2"),
	}

	out := Dedupe(products)
	require.Equal(t, []string{"a", "b", "d", "e"}, names(out))
}

func TestFinalizeScenario(t *testing.T) {
	sinks := &fakeSinks{}
	agg := NewAggregator(fakePersist{sinks}, fakeRender{sinks})

	rs, err := agg.Finalize(models.ModeSequential, "black_friday_sorted_products", 2, []models.Product{
		product("fifty", models.Price(50), "https://x/50"),
		product("none", nil, "https://x/none"),
		product("thirty", models.Price(30), "https://x/30"),
	})
	require.NoError(t, err)
	require.Equal(t, []string{"thirty", "fifty", "none"}, names(rs.Products))
	require.Equal(t, "black_friday_sorted_products", rs.Destination)
	require.Equal(t, 2, rs.Pages)

	require.Len(t, sinks.calls, 2)
	require.Equal(t, "persist", sinks.calls[0].kind)
	require.Equal(t, "black_friday_sorted_products", sinks.calls[0].destination)
	require.Equal(t, "render", sinks.calls[1].kind)
	require.Equal(t, rs.Products, sinks.calls[1].products)
}

func TestFinalizeEmptyStillCallsSinks(t *testing.T) {
	sinks := &fakeSinks{}
	agg := NewAggregator(fakePersist{sinks}, fakeRender{sinks})

	rs, err := agg.Finalize(models.ModeSinglePage, "flash_sales_sorted_products", 0, nil)
	require.NoError(t, err)
	require.Zero(t, rs.Len())
	require.Len(t, sinks.calls, 2)
	require.Empty(t, sinks.calls[0].products)
	require.Empty(t, sinks.calls[1].products)
}

func TestFinalizeSinkErrorsAreReturnedNotFatal(t *testing.T) {
	diskFull := errors.New("disk full")
	sinks := &fakeSinks{persistErr: diskFull}
	agg := NewAggregator(fakePersist{sinks}, fakeRender{sinks})

	rs, err := agg.Finalize(models.ModeSearch, "tv_sorted_products", 1, []models.Product{product("a", models.Price(1), "")})
	require.ErrorIs(t, err, diskFull)
	require.Equal(t, 1, rs.Len())
	require.Len(t, sinks.calls, 2, "render still runs after persist fails")
}
