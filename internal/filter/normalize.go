package filter

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/yourorg/homesearch-api/internal/addr"
)

// AssistantFilters is the filter-extraction shape delivered by the chat
// collaborator. rent_* and price_* are synonyms; price_* wins when both are
// present for the same bound.
type AssistantFilters struct {
	Location     *string  `json:"location,omitempty"`
	RentMin      *int     `json:"rent_min,omitempty"`
	RentMax      *int     `json:"rent_max,omitempty"`
	PriceMin     *int     `json:"price_min,omitempty"`
	PriceMax     *int     `json:"price_max,omitempty"`
	BedsMin      *int     `json:"beds_min,omitempty"`
	BedsMax      *int     `json:"beds_max,omitempty"`
	BathsMin     *float64 `json:"baths_min,omitempty"`
	BathsMax     *float64 `json:"baths_max,omitempty"`
	PropertyType *string  `json:"property_type,omitempty"`
	HOAMin       *int     `json:"hoa_min,omitempty"`
	HOAMax       *int     `json:"hoa_max,omitempty"`
	Radius       *float64 `json:"radius,omitempty"`
	SqftMin      *int     `json:"sqft_min,omitempty"`
	SqftMax      *int     `json:"sqft_max,omitempty"`
	YearBuiltMin *int     `json:"year_built_min,omitempty"`
	YearBuiltMax *int     `json:"year_built_max,omitempty"`
}

// FromAssistant normalizes a chat-extracted filters object. Pure: the same
// input always yields the same Filter.
func FromAssistant(in AssistantFilters) Filter {
	var f Filter

	// rent_* first, price_* second so price wins when both bounds are given
	if in.RentMin != nil {
		f.MinPrice = IntPtr(*in.RentMin)
	}
	if in.RentMax != nil {
		f.MaxPrice = IntPtr(*in.RentMax)
	}
	if in.PriceMin != nil {
		f.MinPrice = IntPtr(*in.PriceMin)
	}
	if in.PriceMax != nil {
		f.MaxPrice = IntPtr(*in.PriceMax)
	}

	f.MinBeds = copyInt(in.BedsMin)
	f.MaxBeds = copyInt(in.BedsMax)
	f.MinBaths = copyFloat(in.BathsMin)
	f.MaxBaths = copyFloat(in.BathsMax)
	f.MinSqft = copyInt(in.SqftMin)
	f.MaxSqft = copyInt(in.SqftMax)
	f.MinYearBuilt = copyInt(in.YearBuiltMin)
	f.MaxYearBuilt = copyInt(in.YearBuiltMax)
	f.MinHOA = copyInt(in.HOAMin)
	f.MaxHOA = copyInt(in.HOAMax)

	if in.PropertyType != nil {
		f.PropertyTypes = parsePropertyTypes(*in.PropertyType)
	}

	if in.Location != nil && strings.TrimSpace(*in.Location) != "" {
		applyLocation(&f, *in.Location, in.Radius)
	}

	return f.WithDefaults()
}

// FromQuery normalizes the flat search-endpoint URL dialect
// (location, radius, price_min, beds_min, ...). Absent or non-numeric values
// omit the field rather than zero-filling it; a literal "0" is kept.
func FromQuery(q url.Values) Filter {
	var f Filter

	f.MinPrice = qInt(q, "price_min")
	f.MaxPrice = qInt(q, "price_max")
	f.MinBeds = qInt(q, "beds_min")
	f.MaxBeds = qInt(q, "beds_max")
	f.MinBaths = qFloat(q, "baths_min")
	f.MaxBaths = qFloat(q, "baths_max")
	f.MinSqft = qInt(q, "sqft_min")
	f.MaxSqft = qInt(q, "sqft_max")
	f.MinYearBuilt = qInt(q, "year_built_min")
	f.MaxYearBuilt = qInt(q, "year_built_max")
	f.MinHOA = qInt(q, "hoa_min")
	f.MaxHOA = qInt(q, "hoa_max")

	if v := q.Get("property_type"); v != "" {
		f.PropertyTypes = parsePropertyTypes(v)
	}

	if loc := strings.TrimSpace(q.Get("location")); loc != "" {
		applyLocation(&f, loc, qFloat(q, "radius"))
	}

	return f.WithDefaults()
}

// FromResultsQuery normalizes the results-page URL dialect produced by
// SearchURL (minPrice, maxBeds, status, ...).
func FromResultsQuery(q url.Values) Filter {
	var f Filter

	f.MinPrice = qInt(q, "minPrice")
	f.MaxPrice = qInt(q, "maxPrice")
	f.MinBeds = qInt(q, "minBeds")
	f.MaxBeds = qInt(q, "maxBeds")
	f.MinBaths = qFloat(q, "minBaths")
	f.MaxBaths = qFloat(q, "maxBaths")
	f.MinSqft = qInt(q, "minSqft")
	f.MaxSqft = qInt(q, "maxSqft")
	f.MinYearBuilt = qInt(q, "minYear")
	f.MaxYearBuilt = qInt(q, "maxYear")
	f.MinHOA = qInt(q, "minHOA")
	f.MaxHOA = qInt(q, "maxHOA")
	f.MinSchoolRating = qFloat(q, "minSchoolRating")

	if v := q.Get("propertyType"); v != "" {
		f.PropertyTypes = parsePropertyTypes(v)
	}
	if v := q.Get("status"); v != "" {
		f.Statuses = parseStatuses(v)
	}
	if v := q.Get("schoolType"); v != "" {
		f.SchoolTypes = parseSchoolTypes(v)
	}

	f.City = q.Get("city")
	f.State = q.Get("state")
	f.ZipCode = q.Get("zipCode")
	f.Neighborhood = q.Get("neighborhood")

	if loc := strings.TrimSpace(q.Get("location")); loc != "" {
		radius := float64(DefaultRadiusMiles)
		if r := qFloat(q, "radius"); r != nil {
			radius = *r
		}
		f.SearchLocation = &SearchLocation{Location: loc, RadiusMiles: radius}
	}

	f.HasGarage = qBool(q, "hasGarage")
	f.HasPool = qBool(q, "hasPool")
	f.HasElevator = qBool(q, "hasElevator")
	f.HasHOA = qBool(q, "hasHOA")
	f.NewConstruction = qBool(q, "newConstruction")
	f.IsPending = qBool(q, "isPending")
	f.Foreclosure = qBool(q, "foreclosure")
	f.PriceReduced = qBool(q, "priceReduced")
	f.NewListing = qBool(q, "newListing")
	f.CatsAllowed = qBool(q, "catsAllowed")
	f.DogsAllowed = qBool(q, "dogsAllowed")
	f.HasVirtualTour = qBool(q, "hasVirtualTour")
	f.HasMatterport = qBool(q, "hasMatterport")
	f.HasOpenHouse = qBool(q, "hasOpenHouse")

	f.Limit = qInt(q, "limit")
	f.Offset = qInt(q, "offset")

	return f.WithDefaults()
}

// FromManual validates a filter object arriving directly from the filter
// panel: unknown enum values are dropped, everything else passes through.
func FromManual(in Filter) Filter {
	out := in
	out.PropertyTypes = validTypes(in.PropertyTypes)
	out.Statuses = validStatuses(in.Statuses)
	out.SchoolTypes = validSchoolTypes(in.SchoolTypes)
	return out.WithDefaults()
}

// applyLocation resolves a free-text location: a postal code or city/state is
// lifted into the administrative fields when the heuristic parse finds one,
// and the raw string always becomes the radius search-location pair.
func applyLocation(f *Filter, location string, radius *float64) {
	if ex := addr.Extract(location); ex != nil {
		if ex.PostalCode != "" {
			f.ZipCode = ex.PostalCode
		} else {
			f.City = ex.City
			f.State = ex.State
		}
	}
	r := float64(DefaultRadiusMiles)
	if radius != nil && *radius > 0 {
		r = *radius
	}
	f.SearchLocation = &SearchLocation{Location: location, RadiusMiles: r}
}

func parsePropertyTypes(s string) []PropertyType {
	var out []PropertyType
	for _, part := range strings.Split(s, ",") {
		t := PropertyType(strings.ToLower(strings.TrimSpace(part)))
		if t.IsValid() {
			out = append(out, t)
		}
	}
	return out
}

func parseStatuses(s string) []Status {
	var out []Status
	for _, part := range strings.Split(s, ",") {
		st := Status(strings.ToLower(strings.TrimSpace(part)))
		if st.IsValid() {
			out = append(out, st)
		}
	}
	return out
}

func parseSchoolTypes(s string) []SchoolType {
	var out []SchoolType
	for _, part := range strings.Split(s, ",") {
		st := SchoolType(strings.ToLower(strings.TrimSpace(part)))
		if st.IsValid() {
			out = append(out, st)
		}
	}
	return out
}

func validTypes(in []PropertyType) []PropertyType {
	var out []PropertyType
	for _, t := range in {
		if t.IsValid() {
			out = append(out, t)
		}
	}
	return out
}

func validStatuses(in []Status) []Status {
	var out []Status
	for _, s := range in {
		if s.IsValid() {
			out = append(out, s)
		}
	}
	return out
}

func validSchoolTypes(in []SchoolType) []SchoolType {
	var out []SchoolType
	for _, s := range in {
		if s.IsValid() {
			out = append(out, s)
		}
	}
	return out
}

func qInt(q url.Values, key string) *int {
	v := q.Get(key)
	if v == "" {
		return nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &i
}

func qFloat(q url.Values, key string) *float64 {
	v := q.Get(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}

func qBool(q url.Values, key string) *bool {
	switch strings.ToLower(q.Get(key)) {
	case "true", "1":
		b := true
		return &b
	case "false", "0":
		b := false
		return &b
	}
	return nil
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
