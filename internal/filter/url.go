package filter

import (
	"net/url"
	"strconv"
	"strings"
)

// SearchURL encodes a filter as the results-page redirect URL ("/?minPrice=...").
// FromResultsQuery parses the same dialect back; the two round-trip.
func SearchURL(f Filter) string {
	q := url.Values{}

	setInt := func(key string, v *int) {
		if v != nil {
			q.Set(key, strconv.Itoa(*v))
		}
	}
	setFloat := func(key string, v *float64) {
		if v != nil {
			q.Set(key, strconv.FormatFloat(*v, 'f', -1, 64))
		}
	}
	setBool := func(key string, v *bool) {
		if v != nil {
			q.Set(key, strconv.FormatBool(*v))
		}
	}

	setInt("minPrice", f.MinPrice)
	setInt("maxPrice", f.MaxPrice)
	setInt("minBeds", f.MinBeds)
	setInt("maxBeds", f.MaxBeds)
	setFloat("minBaths", f.MinBaths)
	setFloat("maxBaths", f.MaxBaths)
	setInt("minSqft", f.MinSqft)
	setInt("maxSqft", f.MaxSqft)
	setInt("minYear", f.MinYearBuilt)
	setInt("maxYear", f.MaxYearBuilt)
	setInt("minHOA", f.MinHOA)
	setInt("maxHOA", f.MaxHOA)
	setFloat("minSchoolRating", f.MinSchoolRating)

	if len(f.PropertyTypes) > 0 {
		q.Set("propertyType", joinTypes(f.PropertyTypes))
	}
	if len(f.Statuses) > 0 {
		q.Set("status", joinStatuses(f.Statuses))
	}
	if len(f.SchoolTypes) > 0 {
		q.Set("schoolType", joinSchoolTypes(f.SchoolTypes))
	}

	if f.City != "" {
		q.Set("city", f.City)
	}
	if f.State != "" {
		q.Set("state", f.State)
	}
	if f.ZipCode != "" {
		q.Set("zipCode", f.ZipCode)
	}
	if f.Neighborhood != "" {
		q.Set("neighborhood", f.Neighborhood)
	}
	if f.SearchLocation != nil && f.SearchLocation.Location != "" {
		q.Set("location", f.SearchLocation.Location)
		if f.SearchLocation.RadiusMiles > 0 {
			q.Set("radius", strconv.FormatFloat(f.SearchLocation.RadiusMiles, 'f', -1, 64))
		}
	}

	setBool("hasGarage", f.HasGarage)
	setBool("hasPool", f.HasPool)
	setBool("hasElevator", f.HasElevator)
	setBool("hasHOA", f.HasHOA)
	setBool("newConstruction", f.NewConstruction)
	setBool("isPending", f.IsPending)
	setBool("foreclosure", f.Foreclosure)
	setBool("priceReduced", f.PriceReduced)
	setBool("newListing", f.NewListing)
	setBool("catsAllowed", f.CatsAllowed)
	setBool("dogsAllowed", f.DogsAllowed)
	setBool("hasVirtualTour", f.HasVirtualTour)
	setBool("hasMatterport", f.HasMatterport)
	setBool("hasOpenHouse", f.HasOpenHouse)

	setInt("limit", f.Limit)
	setInt("offset", f.Offset)

	return "/?" + q.Encode()
}

func joinTypes(in []PropertyType) string {
	parts := make([]string, len(in))
	for i, t := range in {
		parts[i] = string(t)
	}
	return strings.Join(parts, ",")
}

func joinStatuses(in []Status) string {
	parts := make([]string, len(in))
	for i, s := range in {
		parts[i] = string(s)
	}
	return strings.Join(parts, ",")
}

func joinSchoolTypes(in []SchoolType) string {
	parts := make([]string, len(in))
	for i, s := range in {
		parts[i] = string(s)
	}
	return strings.Join(parts, ",")
}
