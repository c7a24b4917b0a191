package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourorg/homesearch-api/listing"
)

func bc(v float64) *listing.BathCount {
	b := listing.BathCount(v)
	return &b
}

func rec(mut func(*listing.Record)) listing.Record {
	r := listing.Record{
		PropertyID: "p-1",
		ListPrice:  FloatPtr(400000),
		Status:     "for_sale",
		Description: &listing.Description{
			Beds:      IntPtr(3),
			Baths:     bc(2),
			Sqft:      IntPtr(1800),
			YearBuilt: IntPtr(2005),
			Type:      "single_family",
		},
		Location: &listing.Location{
			Address: &listing.Address{City: "Austin", State: "TX", PostalCode: "78704"},
		},
	}
	if mut != nil {
		mut(&r)
	}
	return r
}

func TestMatches_UnsetFilterMatchesEverything(t *testing.T) {
	assert.True(t, Matches(Filter{}, rec(nil)))
	assert.True(t, Matches(Filter{}, listing.Record{PropertyID: "bare"}))
}

func TestMatches_PriceRange(t *testing.T) {
	f := Filter{MinPrice: IntPtr(300000), MaxPrice: IntPtr(500000)}
	assert.True(t, Matches(f, rec(nil)))
	assert.False(t, Matches(f, rec(func(r *listing.Record) { r.ListPrice = FloatPtr(250000) })))
	// missing price is excluded, not unknown-pass
	assert.False(t, Matches(f, rec(func(r *listing.Record) { r.ListPrice = nil })))
}

func TestMatches_MissingSqftExcludedWhenMinSqftSet(t *testing.T) {
	f := Filter{MinSqft: IntPtr(1000)}
	assert.False(t, Matches(f, rec(func(r *listing.Record) { r.Description.Sqft = nil })))
	assert.True(t, Matches(f, rec(nil)))
}

func TestApply_InvertedRangeYieldsEmptyNotError(t *testing.T) {
	f := Filter{MinPrice: IntPtr(900000), MaxPrice: IntPtr(100000)}
	records := []listing.Record{rec(nil), rec(func(r *listing.Record) { r.ListPrice = FloatPtr(100000) })}
	assert.Empty(t, Apply(f, records))
}

func TestMatches_BathsRange(t *testing.T) {
	f := Filter{MinBaths: FloatPtr(2.5)}
	assert.False(t, Matches(f, rec(nil)))
	assert.True(t, Matches(f, rec(func(r *listing.Record) { r.Description.Baths = bc(2.5) })))
	assert.False(t, Matches(f, rec(func(r *listing.Record) { r.Description = nil })))
}

func TestMatches_HOARangeRequiresFee(t *testing.T) {
	f := Filter{MaxHOA: IntPtr(500)}
	assert.False(t, Matches(f, rec(nil))) // no HOA at all
	assert.True(t, Matches(f, rec(func(r *listing.Record) { r.HOA = &listing.HOA{Fee: FloatPtr(320)} })))
	assert.False(t, Matches(f, rec(func(r *listing.Record) { r.HOA = &listing.HOA{Fee: FloatPtr(700)} })))
}

func TestMatches_HasHOAFlag(t *testing.T) {
	with := rec(func(r *listing.Record) { r.HOA = &listing.HOA{Fee: FloatPtr(320)} })
	assert.True(t, Matches(Filter{HasHOA: BoolPtr(true)}, with))
	assert.False(t, Matches(Filter{HasHOA: BoolPtr(false)}, with))
	assert.True(t, Matches(Filter{HasHOA: BoolPtr(false)}, rec(nil)))
}

func TestMatches_ElevatorViaInteriorFeatures(t *testing.T) {
	f := Filter{HasElevator: BoolPtr(true)}
	assert.False(t, Matches(f, rec(nil)))
	assert.True(t, Matches(f, rec(func(r *listing.Record) {
		r.Details = []listing.Detail{{Category: "Interior Features", Text: []string{"Elevator", "High Ceilings"}}}
	})))
	// elevator mention outside the interior-features category does not count
	assert.False(t, Matches(f, rec(func(r *listing.Record) {
		r.Details = []listing.Detail{{Category: "Community Features", Text: []string{"Elevator"}}}
	})))
}

func TestMatches_SchoolRatingAndType(t *testing.T) {
	r := rec(func(r *listing.Record) {
		r.Schools = []listing.School{
			{Name: "A", Rating: FloatPtr(9), FundingType: "private"},
			{Name: "B", Rating: FloatPtr(6), FundingType: "public"},
		}
	})
	assert.True(t, Matches(Filter{MinSchoolRating: FloatPtr(8)}, r))
	assert.True(t, Matches(Filter{MinSchoolRating: FloatPtr(8), SchoolTypes: []SchoolType{PrivateSchool}}, r))
	// one school must satisfy rating and type together
	assert.False(t, Matches(Filter{MinSchoolRating: FloatPtr(8), SchoolTypes: []SchoolType{PublicSchool}}, r))
	assert.False(t, Matches(Filter{MinSchoolRating: FloatPtr(8)}, rec(nil)))
}

func TestMatches_PetPolicy(t *testing.T) {
	r := rec(func(r *listing.Record) {
		r.PetPolicy = &listing.PetPolicy{Cats: BoolPtr(true), Dogs: BoolPtr(false)}
	})
	assert.True(t, Matches(Filter{CatsAllowed: BoolPtr(true)}, r))
	assert.False(t, Matches(Filter{DogsAllowed: BoolPtr(true)}, r))
	// no policy at all fails an allowed-required constraint
	assert.False(t, Matches(Filter{CatsAllowed: BoolPtr(true)}, rec(nil)))
}

func TestMatches_StatusAndType(t *testing.T) {
	assert.True(t, Matches(Filter{Statuses: []Status{ForSale}}, rec(nil)))
	assert.False(t, Matches(Filter{Statuses: []Status{ForRent}}, rec(nil)))
	assert.True(t, Matches(Filter{PropertyTypes: []PropertyType{SingleFamily, Condo}}, rec(nil)))
	assert.False(t, Matches(Filter{PropertyTypes: []PropertyType{Condo}}, rec(nil)))
}

func TestMatches_Location(t *testing.T) {
	assert.True(t, Matches(Filter{City: "austin", State: "tx"}, rec(nil)))
	assert.False(t, Matches(Filter{City: "Boston"}, rec(nil)))
	assert.False(t, Matches(Filter{ZipCode: "02118"}, rec(nil)))
	assert.True(t, Matches(Filter{ZipCode: "78704"}, rec(nil)))
	// record with no address is excluded under a location constraint
	assert.False(t, Matches(Filter{City: "Austin"}, rec(func(r *listing.Record) { r.Location = nil })))
}

func TestMatches_NeighborhoodSubstring(t *testing.T) {
	r := rec(func(r *listing.Record) {
		r.Location.Neighborhoods = []listing.Neighborhood{{Name: "South Lamar"}}
	})
	assert.True(t, Matches(Filter{Neighborhood: "lamar"}, r))
	assert.False(t, Matches(Filter{Neighborhood: "hyde park"}, r))
}

func TestMatches_VirtualTourMatterportOpenHouse(t *testing.T) {
	r := rec(func(r *listing.Record) {
		r.VirtualTours = []listing.VirtualTour{{Href: "https://t.example/1"}}
		r.OpenHouses = []listing.OpenHouse{{StartDate: "2025-06-07"}}
	})
	assert.True(t, Matches(Filter{HasVirtualTour: BoolPtr(true)}, r))
	assert.True(t, Matches(Filter{HasOpenHouse: BoolPtr(true)}, r))
	assert.False(t, Matches(Filter{HasMatterport: BoolPtr(true)}, r))
}

func TestApply_PreservesOrderAndFiltersAll(t *testing.T) {
	records := []listing.Record{
		rec(func(r *listing.Record) { r.PropertyID = "a"; r.ListPrice = FloatPtr(200000) }),
		rec(func(r *listing.Record) { r.PropertyID = "b"; r.ListPrice = FloatPtr(450000) }),
		rec(func(r *listing.Record) { r.PropertyID = "c"; r.ListPrice = FloatPtr(480000) }),
	}
	out := Apply(Filter{MinPrice: IntPtr(400000)}, records)
	assert.Len(t, out, 2)
	assert.Equal(t, "b", out[0].PropertyID)
	assert.Equal(t, "c", out[1].PropertyID)
}
