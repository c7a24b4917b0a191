// Package filter holds the canonical property-search filter model and the
// normalizers that build it from each input dialect (assistant extraction,
// URL parameters, manual filter panel), plus the local predicate that
// re-applies it against fetched listings.
package filter

// PropertyType is a listing category recognized by the search.
type PropertyType string

const (
	SingleFamily PropertyType = "single_family"
	Condo        PropertyType = "condo"
	Townhouse    PropertyType = "townhouse"
	Coop         PropertyType = "coop"
	MultiFamily  PropertyType = "multi_family"
	Land         PropertyType = "land"
	Mobile       PropertyType = "mobile"
	Farm         PropertyType = "farm"
	OtherType    PropertyType = "other"
)

func (t PropertyType) IsValid() bool {
	switch t {
	case SingleFamily, Condo, Townhouse, Coop, MultiFamily, Land, Mobile, Farm, OtherType:
		return true
	}
	return false
}

// Status is a listing lifecycle state.
type Status string

const (
	ForSale    Status = "for_sale"
	ForRent    Status = "for_rent"
	Sold       Status = "sold"
	OffMarket  Status = "off_market"
	Pending    Status = "pending"
	Contingent Status = "contingent"
)

func (s Status) IsValid() bool {
	switch s {
	case ForSale, ForRent, Sold, OffMarket, Pending, Contingent:
		return true
	}
	return false
}

// SchoolType is a school funding category.
type SchoolType string

const (
	PublicSchool  SchoolType = "public"
	PrivateSchool SchoolType = "private"
	CharterSchool SchoolType = "charter"
)

func (s SchoolType) IsValid() bool {
	switch s {
	case PublicSchool, PrivateSchool, CharterSchool:
		return true
	}
	return false
}

// SearchLocation is a free-text place name with a radius in miles, used when
// no administrative city/state/zip narrowing was possible.
type SearchLocation struct {
	Location    string  `json:"location"`
	RadiusMiles float64 `json:"radius"`
}

const (
	// DefaultLimit caps a search when the caller did not ask for one.
	DefaultLimit = 100
	// DefaultRadiusMiles applies when a location string was supplied without
	// an explicit radius.
	DefaultRadiusMiles = 5
)

// Filter is the canonical representation of a property search, independent of
// which dialect it arrived in. All optional numerics are pointers: zero is a
// legal value and stays distinguishable from "not specified". Instances are
// treated as immutable; transformations return copies.
//
// min <= max is not enforced here; consumers treat an inverted range as
// matching nothing, never as an error.
type Filter struct {
	MinPrice *int `json:"minPrice,omitempty"`
	MaxPrice *int `json:"maxPrice,omitempty"`

	MinBeds *int `json:"minBeds,omitempty"`
	MaxBeds *int `json:"maxBeds,omitempty"`

	MinBaths *float64 `json:"minBaths,omitempty"`
	MaxBaths *float64 `json:"maxBaths,omitempty"`

	MinSqft *int `json:"minSqft,omitempty"`
	MaxSqft *int `json:"maxSqft,omitempty"`

	MinYearBuilt *int `json:"minYear,omitempty"`
	MaxYearBuilt *int `json:"maxYear,omitempty"`

	MinHOA *int `json:"minHOA,omitempty"`
	MaxHOA *int `json:"maxHOA,omitempty"`

	MinSchoolRating *float64 `json:"minSchoolRating,omitempty"`

	PropertyTypes []PropertyType `json:"propertyType,omitempty"`
	Statuses      []Status       `json:"status,omitempty"`
	SchoolTypes   []SchoolType   `json:"schoolType,omitempty"`

	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	ZipCode      string `json:"zipCode,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`

	SearchLocation *SearchLocation `json:"searchLocation,omitempty"`

	HasGarage       *bool `json:"hasGarage,omitempty"`
	HasPool         *bool `json:"hasPool,omitempty"`
	HasElevator     *bool `json:"hasElevator,omitempty"`
	HasHOA          *bool `json:"hasHOA,omitempty"`
	NewConstruction *bool `json:"newConstruction,omitempty"`
	IsPending       *bool `json:"isPending,omitempty"`
	Foreclosure     *bool `json:"foreclosure,omitempty"`
	PriceReduced    *bool `json:"priceReduced,omitempty"`
	NewListing      *bool `json:"newListing,omitempty"`
	CatsAllowed     *bool `json:"catsAllowed,omitempty"`
	DogsAllowed     *bool `json:"dogsAllowed,omitempty"`
	HasVirtualTour  *bool `json:"hasVirtualTour,omitempty"`
	HasMatterport   *bool `json:"hasMatterport,omitempty"`
	HasOpenHouse    *bool `json:"hasOpenHouse,omitempty"`

	Limit  *int `json:"limit,omitempty"`
	Offset *int `json:"offset,omitempty"`
}

// WithDefaults returns a copy with status and limit defaulted. Applied when a
// filter is about to be dispatched, not at raw-input parse time: an
// all-undefined filters object is valid input and still defaults here.
func (f Filter) WithDefaults() Filter {
	out := f
	if len(out.Statuses) == 0 {
		out.Statuses = []Status{ForSale}
	}
	if out.Limit == nil {
		out.Limit = IntPtr(DefaultLimit)
	}
	return out
}

// HasLocation reports whether any location-bearing field is set.
func (f Filter) HasLocation() bool {
	if f.City != "" || f.State != "" || f.ZipCode != "" || f.Neighborhood != "" {
		return true
	}
	return f.SearchLocation != nil && f.SearchLocation.Location != ""
}

// ActiveCount is the number of non-default, non-empty constraints, used by the
// filter panel badge.
func (f Filter) ActiveCount() int {
	n := 0
	for _, p := range []*int{
		f.MinPrice, f.MaxPrice, f.MinBeds, f.MaxBeds, f.MinSqft, f.MaxSqft,
		f.MinYearBuilt, f.MaxYearBuilt, f.MinHOA, f.MaxHOA,
	} {
		if p != nil {
			n++
		}
	}
	for _, p := range []*float64{f.MinBaths, f.MaxBaths, f.MinSchoolRating} {
		if p != nil {
			n++
		}
	}
	for _, p := range []*bool{
		f.HasGarage, f.HasPool, f.HasElevator, f.HasHOA, f.NewConstruction,
		f.IsPending, f.Foreclosure, f.PriceReduced, f.NewListing,
		f.CatsAllowed, f.DogsAllowed, f.HasVirtualTour, f.HasMatterport,
		f.HasOpenHouse,
	} {
		if p != nil && *p {
			n++
		}
	}
	if len(f.PropertyTypes) > 0 {
		n++
	}
	if len(f.SchoolTypes) > 0 {
		n++
	}
	// status only counts when it differs from the for-sale default
	if len(f.Statuses) > 0 && !(len(f.Statuses) == 1 && f.Statuses[0] == ForSale) {
		n++
	}
	if f.Neighborhood != "" {
		n++
	}
	return n
}

func IntPtr(v int) *int             { return &v }
func FloatPtr(v float64) *float64   { return &v }
func BoolPtr(v bool) *bool          { return &v }
