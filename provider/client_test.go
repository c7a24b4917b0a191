package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/yourorg/homesearch-api/internal/filter"
)

func testClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	return NewClient("test-key",
		WithBaseURL(baseURL),
		WithLimiter(rate.NewLimiter(rate.Inf, 0)),
	)
}

func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	var p map[string]any
	require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
	return p
}

func TestSearch_SucceedsAtFullTier(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"results":[{"property_id":"p1"}]}`))
	}))
	defer srv.Close()

	result, err := testClient(t, srv.URL).Search(context.Background(), Payload{"query": map[string]any{"postal_code": "78704"}, "limit": 100})
	require.NoError(t, err)
	assert.Equal(t, TierFull, result.Tier)
	assert.Equal(t, 1, calls)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "p1", result.Records[0].PropertyID)
}

func TestSearch_BedsBathsComboFallsBackToMinimal(t *testing.T) {
	// provider that rejects the compound full query but accepts the shed one
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		p := decodeBody(t, r)
		q, _ := p["query"].(map[string]any)

		switch calls {
		case 1:
			// the full payload carries beds+baths+price together
			assert.NotNil(t, q["beds"])
			assert.NotNil(t, q["baths"])
			assert.NotNil(t, q["list_price"])
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"message":"unsupported filter combination"}`))
		default:
			// minimal tier: limit forced to 12, search_location reduced to
			// its bare text, status still an array
			assert.Equal(t, float64(12), p["limit"])
			sl, ok := q["search_location"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, "Boston, MA", sl["location"])
			_, hasRadius := sl["radius"]
			assert.False(t, hasRadius)
			assert.Equal(t, []any{"for_sale"}, q["status"])
			w.Write([]byte(`{"results":[{"property_id":"p2"}]}`))
		}
	}))
	defer srv.Close()

	payload := BuildPayload(filter.Filter{
		MinBeds:        filter.IntPtr(2),
		MinBaths:       filter.FloatPtr(2),
		MaxPrice:       filter.IntPtr(500000),
		SearchLocation: &filter.SearchLocation{Location: "Boston, MA", RadiusMiles: 5},
	}, nil)

	result, err := testClient(t, srv.URL).Search(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, TierMinimal, result.Tier)
	assert.Equal(t, 2, calls)
	assert.Equal(t, minimalLimit, result.Payload["limit"])
}

func TestSearch_LadderExhaustedSurfacesLastError(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnavailableForLegalReasons)
		w.Write([]byte(`{"message":"no"}`))
	}))
	defer srv.Close()

	_, err := testClient(t, srv.URL).Search(context.Background(), Payload{"query": map[string]any{}, "limit": 100})
	require.Error(t, err)

	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, http.StatusUnavailableForLegalReasons, ue.StatusCode)
	assert.Equal(t, TierBasic, ue.Tier)
	assert.JSONEq(t, `{"message":"no"}`, string(ue.Body))
	// all three tiers, exactly once each, no further retries
	assert.Equal(t, 3, calls)
}

func TestSearch_BasicTierRecovers(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{}`))
			return
		}
		p := decodeBody(t, r)
		assert.Equal(t, float64(100), p["limit"])
		w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	result, err := testClient(t, srv.URL).Search(context.Background(), Payload{"query": map[string]any{}, "limit": 50})
	require.NoError(t, err)
	assert.Equal(t, TierBasic, result.Tier)
	assert.Empty(t, result.Records)
}
