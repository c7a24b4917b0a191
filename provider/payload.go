package provider

import (
	"github.com/yourorg/homesearch-api/internal/filter"
)

// Payload is the provider request body. The provider's filter grammar is
// dynamic and undocumented in places, so the payload stays a plain JSON
// object; the tier builders below check shapes explicitly before reusing any
// part of it.
type Payload map[string]any

const (
	// DefaultLocation is substituted when a query carries no geographic scope
	// at all; the provider rejects searches with zero location narrowing.
	DefaultLocation = "Austin, TX"
	// DefaultFallbackRadius pairs with DefaultLocation.
	DefaultFallbackRadius = 10

	minimalLimit = 12
	basicLimit   = 100
)

// BuildPayload projects a canonical filter into the provider request schema:
// min/max pairs become {min, max} objects, multi-valued categoricals become
// string arrays. A raw pre-built query object, when supplied, wins
// field-by-field over the derived fields.
func BuildPayload(f filter.Filter, raw map[string]any) Payload {
	query := map[string]any{}

	statuses := f.Statuses
	if len(statuses) == 0 {
		statuses = []filter.Status{filter.ForSale}
	}
	query["status"] = statusStrings(statuses)

	if len(f.PropertyTypes) > 0 {
		query["type"] = typeStrings(f.PropertyTypes)
	}

	setRange(query, "list_price", intRange(f.MinPrice, f.MaxPrice))
	setRange(query, "beds", intRange(f.MinBeds, f.MaxBeds))
	setRange(query, "baths", floatRange(f.MinBaths, f.MaxBaths))
	setRange(query, "sqft", intRange(f.MinSqft, f.MaxSqft))
	setRange(query, "year_built", intRange(f.MinYearBuilt, f.MaxYearBuilt))
	setRange(query, "hoa_fee", intRange(f.MinHOA, f.MaxHOA))

	if f.City != "" {
		query["city"] = f.City
	}
	if f.State != "" {
		query["state_code"] = f.State
	}
	if f.ZipCode != "" {
		query["postal_code"] = f.ZipCode
	}
	if f.SearchLocation != nil && f.SearchLocation.Location != "" {
		sl := map[string]any{"location": f.SearchLocation.Location}
		if f.SearchLocation.RadiusMiles > 0 {
			sl["radius"] = f.SearchLocation.RadiusMiles
		}
		query["search_location"] = sl
	}

	setFlag(query, "foreclosure", f.Foreclosure)
	setFlag(query, "new_construction", f.NewConstruction)
	setFlag(query, "pending", f.IsPending)
	setFlag(query, "price_reduced", f.PriceReduced)
	setFlag(query, "new_listing", f.NewListing)
	setFlag(query, "cats", f.CatsAllowed)
	setFlag(query, "dogs", f.DogsAllowed)
	setFlag(query, "open_house", f.HasOpenHouse)
	setFlag(query, "has_virtual_tour", f.HasVirtualTour)
	setFlag(query, "matterport", f.HasMatterport)

	if !hasGeoScope(query) {
		// never dispatch with zero geographic scope
		query["search_location"] = map[string]any{
			"location": DefaultLocation,
			"radius":   DefaultFallbackRadius,
		}
		query["status"] = []string{string(filter.ForSale)}
	}

	limit := filter.DefaultLimit
	if f.Limit != nil {
		limit = *f.Limit
	}
	p := Payload{"query": query, "limit": limit}
	if f.Offset != nil {
		p["offset"] = *f.Offset
	}

	if raw != nil {
		overlay(p, query, raw)
	}
	return p
}

// overlay applies a caller-supplied raw query object over the derived payload,
// field-by-field: nested "query" keys merge into the derived query, any other
// top-level key replaces the derived one.
func overlay(p Payload, query map[string]any, raw map[string]any) {
	for k, v := range raw {
		if k == "query" {
			if rq, ok := v.(map[string]any); ok {
				for qk, qv := range rq {
					query[qk] = qv
				}
			}
			continue
		}
		p[k] = v
	}
}

func hasGeoScope(query map[string]any) bool {
	for _, k := range []string{"city", "state_code", "postal_code", "address"} {
		if s, ok := query[k].(string); ok && s != "" {
			return true
		}
	}
	if sl, ok := query["search_location"].(map[string]any); ok {
		if s, ok := sl["location"].(string); ok && s != "" {
			return true
		}
		if _, ok := sl["lat"]; ok {
			return true
		}
	}
	return false
}

// MinimalPayload rebuilds a failed full query keeping only status, the bare
// search-location text, and beds/baths/price. Compound filter combinations are
// what trip the provider's undocumented grammar; shedding the rest trades
// precision for availability and the local predicate filter recovers it.
func MinimalPayload(orig Payload) Payload {
	q := queryShape(orig)
	out := map[string]any{}

	statuses := stringSlice(q["status"])
	if statuses == nil {
		statuses = []string{string(filter.ForSale)}
	}
	out["status"] = statuses

	if loc := searchLocationText(q); loc != "" {
		out["search_location"] = map[string]any{"location": loc}
	}
	for _, k := range []string{"beds", "baths", "list_price"} {
		if v, ok := q[k]; ok {
			out[k] = v
		}
	}
	return Payload{"query": out, "limit": minimalLimit}
}

// BasicPayload is the last rung: status=for_sale and a location text only,
// keeping list_price when the original had one.
func BasicPayload(orig Payload) Payload {
	q := queryShape(orig)

	loc := searchLocationText(q)
	if loc == "" {
		loc = DefaultLocation
	}
	out := map[string]any{
		"status":          []string{string(filter.ForSale)},
		"search_location": map[string]any{"location": loc},
	}
	if v, ok := q["list_price"]; ok {
		out["list_price"] = v
	}
	return Payload{"query": out, "limit": basicLimit}
}

// queryShape extracts the query object of a payload, verifying its shape
// rather than asserting blindly; a malformed payload rebuilds from empty
// instead of producing a malformed retry.
func queryShape(p Payload) map[string]any {
	q, ok := p["query"].(map[string]any)
	if !ok {
		return map[string]any{}
	}
	return q
}

func searchLocationText(q map[string]any) string {
	sl, ok := q["search_location"].(map[string]any)
	if !ok {
		return ""
	}
	s, _ := sl["location"].(string)
	return s
}

// stringSlice accepts either []string or a decoded-JSON []any of strings;
// anything else is nil.
func stringSlice(v any) []string {
	switch t := v.(type) {
	case []string:
		if len(t) == 0 {
			return nil
		}
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	}
	return nil
}

func setRange(query map[string]any, key string, r map[string]any) {
	if r != nil {
		query[key] = r
	}
}

func setFlag(query map[string]any, key string, v *bool) {
	if v != nil {
		query[key] = *v
	}
}

func intRange(min, max *int) map[string]any {
	if min == nil && max == nil {
		return nil
	}
	r := map[string]any{}
	if min != nil {
		r["min"] = *min
	}
	if max != nil {
		r["max"] = *max
	}
	return r
}

func floatRange(min, max *float64) map[string]any {
	if min == nil && max == nil {
		return nil
	}
	r := map[string]any{}
	if min != nil {
		r["min"] = *min
	}
	if max != nil {
		r["max"] = *max
	}
	return r
}

func statusStrings(in []filter.Status) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = string(s)
	}
	return out
}

func typeStrings(in []filter.PropertyType) []string {
	out := make([]string, len(in))
	for i, t := range in {
		out[i] = string(t)
	}
	return out
}
