package jumia

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const site = "https://www.jumia.com.gh"

func TestBuildURL(t *testing.T) {
	testCases := []struct {
		name      string
		basePath  string
		page      int
		expedited bool
		localOnly bool
		expected  string
	}{
		{
			name:     "plain",
			basePath: BlackFridayPath,
			page:     1,
			expected: site + "/mlp-black-friday/?page=1",
		},
		{
			name:      "express only",
			basePath:  "/catalog/",
			page:      2,
			expedited: true,
			expected:  site + "/catalog/?page=2&shop_premium_services=shop_express",
		},
		{
			name:      "local only",
			basePath:  FlashSalesPath,
			page:      1,
			localOnly: true,
			expected:  site + "/flash-sales/?page=1&shipped_from=country_local",
		},
		{
			name:      "search with both filters",
			basePath:  SearchPath("smart tv"),
			page:      3,
			expedited: true,
			localOnly: true,
			expected:  site + "/catalog/?q=smart+tv&page=3&shop_premium_services=shop_express&shipped_from=country_local",
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			got, err := BuildURL(site, test.basePath, test.page, test.expedited, test.localOnly)
			require.NoError(t, err)
			require.Equal(t, test.expected, got)
		})
	}
}

func TestBuildURLMarkers(t *testing.T) {
	got, err := BuildURL(site, "/catalog/", 2, true, false)
	require.NoError(t, err)
	require.Contains(t, got, "page=2")
	require.Contains(t, got, expressMarker)
	require.NotContains(t, got, localMarker)
}

func TestBuildURLOrderIsStable(t *testing.T) {
	a, err := BuildURL(site, "/catalog/", 5, true, true)
	require.NoError(t, err)
	b, err := BuildURL(site, "/catalog/", 5, true, true)
	require.NoError(t, err)
	require.Equal(t, a, b)
	require.Less(t, strings.Index(a, "page="), strings.Index(a, expressMarker))
	require.Less(t, strings.Index(a, expressMarker), strings.Index(a, localMarker))
}

func TestBuildURLEmptyBasePath(t *testing.T) {
	_, err := BuildURL(site, "", 1, false, false)
	require.ErrorIs(t, err, ErrEmptyBasePath)
}

func TestSearchDestination(t *testing.T) {
	require.Equal(t, "smart_tv_sorted_products", SearchDestination("smart  tv"))
	require.Equal(t, "iphone_sorted_products", SearchDestination(" iphone "))
	require.Equal(t, "usb_c_hdmi_adapter_sorted_products", SearchDestination("usb-c/hdmi adapter"))
	require.Equal(t, "x_sorted_products", SearchDestination("../../x"))
	require.Equal(t, "search_sorted_products", SearchDestination("/.."))
}

func TestDestinationFor(t *testing.T) {
	require.Equal(t, BlackFridayDestination, destinationFor(BlackFridayPath, BlackFridayPath, BlackFridayDestination))
	require.Equal(t, "mlp_anniversary_sorted_products", destinationFor("/mlp-anniversary/", BlackFridayPath, BlackFridayDestination))
	require.Equal(t, "listing_sorted_products", destinationFor("/", FlashSalesPath, FlashSalesDestination))
}
