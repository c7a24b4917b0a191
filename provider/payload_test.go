package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/homesearch-api/internal/filter"
)

func TestBuildPayload_RangeEncoding(t *testing.T) {
	f := filter.Filter{
		MinPrice: filter.IntPtr(200000),
		MaxPrice: filter.IntPtr(600000),
		MinBeds:  filter.IntPtr(2),
		MinBaths: filter.FloatPtr(1.5),
		City:     "Austin",
	}
	p := BuildPayload(f, nil)

	q := p["query"].(map[string]any)
	assert.Equal(t, map[string]any{"min": 200000, "max": 600000}, q["list_price"])
	// only the present side is included
	assert.Equal(t, map[string]any{"min": 2}, q["beds"])
	assert.Equal(t, map[string]any{"min": 1.5}, q["baths"])
	assert.Nil(t, q["sqft"])
}

func TestBuildPayload_SingleStatusStillAnArray(t *testing.T) {
	p := BuildPayload(filter.Filter{City: "Austin"}, nil)
	q := p["query"].(map[string]any)
	assert.Equal(t, []string{"for_sale"}, q["status"])
}

func TestBuildPayload_TypeArray(t *testing.T) {
	f := filter.Filter{PropertyTypes: []filter.PropertyType{filter.Condo, filter.Townhouse}, City: "Austin"}
	q := BuildPayload(f, nil)["query"].(map[string]any)
	assert.Equal(t, []string{"condo", "townhouse"}, q["type"])
}

func TestBuildPayload_NoGeoScopeGetsFallbackLocation(t *testing.T) {
	p := BuildPayload(filter.Filter{MinBeds: filter.IntPtr(2)}, nil)
	q := p["query"].(map[string]any)
	sl, ok := q["search_location"].(map[string]any)
	require.True(t, ok, "fallback search_location must be substituted")
	assert.Equal(t, DefaultLocation, sl["location"])
	assert.Equal(t, DefaultFallbackRadius, sl["radius"])
	assert.Equal(t, []string{"for_sale"}, q["status"])
}

func TestBuildPayload_GeoScopeNotOverridden(t *testing.T) {
	f := filter.Filter{ZipCode: "78704"}
	q := BuildPayload(f, nil)["query"].(map[string]any)
	assert.Equal(t, "78704", q["postal_code"])
	assert.Nil(t, q["search_location"])
}

func TestBuildPayload_LimitDefaultsAndOffsetOnlyWhenSet(t *testing.T) {
	p := BuildPayload(filter.Filter{City: "Austin"}, nil)
	assert.Equal(t, filter.DefaultLimit, p["limit"])
	_, hasOffset := p["offset"]
	assert.False(t, hasOffset)

	p = BuildPayload(filter.Filter{City: "Austin", Limit: filter.IntPtr(12), Offset: filter.IntPtr(24)}, nil)
	assert.Equal(t, 12, p["limit"])
	assert.Equal(t, 24, p["offset"])
}

func TestBuildPayload_RawOverlayWinsFieldByField(t *testing.T) {
	f := filter.Filter{City: "Austin", MinBeds: filter.IntPtr(2)}
	raw := map[string]any{
		"query": map[string]any{"city": "Dallas"},
		"limit": 7,
		"sort":  map[string]any{"field": "list_price", "direction": "desc"},
	}
	p := BuildPayload(f, raw)
	q := p["query"].(map[string]any)
	assert.Equal(t, "Dallas", q["city"])
	// derived fields not named by the overlay survive
	assert.Equal(t, map[string]any{"min": 2}, q["beds"])
	assert.Equal(t, 7, p["limit"])
	assert.Equal(t, raw["sort"], p["sort"])
}

func TestMinimalPayload_ShedsToCoreFields(t *testing.T) {
	orig := BuildPayload(filter.Filter{
		MinBeds:  filter.IntPtr(2),
		MinBaths: filter.FloatPtr(2),
		MaxPrice: filter.IntPtr(500000),
		MinSqft:  filter.IntPtr(1500),
		SearchLocation: &filter.SearchLocation{
			Location: "Boston, MA", RadiusMiles: 5,
		},
	}, nil)

	p := MinimalPayload(orig)
	assert.Equal(t, minimalLimit, p["limit"])

	q := p["query"].(map[string]any)
	assert.Equal(t, []string{"for_sale"}, q["status"])
	// search_location keeps the text only, dropping the radius
	assert.Equal(t, map[string]any{"location": "Boston, MA"}, q["search_location"])
	assert.Equal(t, map[string]any{"min": 2}, q["beds"])
	assert.Equal(t, map[string]any{"min": float64(2)}, q["baths"])
	assert.Equal(t, map[string]any{"max": 500000}, q["list_price"])
	// everything else is shed
	assert.Nil(t, q["sqft"])
}

func TestMinimalPayload_DefaultsStatusWhenNotAnArray(t *testing.T) {
	p := MinimalPayload(Payload{"query": map[string]any{"status": "for_sale"}})
	q := p["query"].(map[string]any)
	assert.Equal(t, []string{"for_sale"}, q["status"])
}

func TestMinimalPayload_MalformedQueryShapeRebuildsFromEmpty(t *testing.T) {
	p := MinimalPayload(Payload{"query": "oops"})
	q, ok := p["query"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []string{"for_sale"}, q["status"])
	assert.Equal(t, minimalLimit, p["limit"])
}

func TestBasicPayload_StatusAndLocationOnly(t *testing.T) {
	orig := BuildPayload(filter.Filter{
		MinBeds:  filter.IntPtr(3),
		MaxPrice: filter.IntPtr(800000),
		SearchLocation: &filter.SearchLocation{
			Location: "Boston, MA", RadiusMiles: 5,
		},
	}, nil)

	p := BasicPayload(orig)
	assert.Equal(t, basicLimit, p["limit"])

	q := p["query"].(map[string]any)
	assert.Equal(t, []string{"for_sale"}, q["status"])
	assert.Equal(t, map[string]any{"location": "Boston, MA"}, q["search_location"])
	assert.Equal(t, map[string]any{"max": 800000}, q["list_price"])
	assert.Nil(t, q["beds"])
}

func TestBasicPayload_FallsBackToDefaultLocation(t *testing.T) {
	p := BasicPayload(Payload{})
	q := p["query"].(map[string]any)
	assert.Equal(t, map[string]any{"location": DefaultLocation}, q["search_location"])
}
