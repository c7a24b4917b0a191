package filter

import (
	"strings"

	"github.com/yourorg/homesearch-api/listing"
)

// Apply returns the records matching every specified constraint of f. Pure,
// no I/O. This re-applies dimensions the upstream either dropped while
// shedding filters or never supported (baths, sqft, year built, HOA,
// amenities, schools, pets).
func Apply(f Filter, records []listing.Record) []listing.Record {
	out := make([]listing.Record, 0, len(records))
	for _, rec := range records {
		if Matches(f, rec) {
			out = append(out, rec)
		}
	}
	return out
}

// Matches reports whether a record satisfies every specified constraint. An
// unset constraint never excludes a record; a record missing a field required
// by an active constraint is excluded, not treated as unknown. An inverted
// min/max range simply matches nothing.
func Matches(f Filter, rec listing.Record) bool {
	if !matchFloatRange(intToFloat(f.MinPrice), intToFloat(f.MaxPrice), rec.ListPrice) {
		return false
	}

	desc := rec.Description
	if f.MinBeds != nil || f.MaxBeds != nil {
		if desc == nil || desc.Beds == nil {
			return false
		}
		if !inIntRange(f.MinBeds, f.MaxBeds, *desc.Beds) {
			return false
		}
	}
	if f.MinBaths != nil || f.MaxBaths != nil {
		if desc == nil || desc.Baths == nil {
			return false
		}
		if !inFloatRange(f.MinBaths, f.MaxBaths, desc.Baths.Float()) {
			return false
		}
	}
	if f.MinSqft != nil || f.MaxSqft != nil {
		if desc == nil || desc.Sqft == nil {
			return false
		}
		if !inIntRange(f.MinSqft, f.MaxSqft, *desc.Sqft) {
			return false
		}
	}
	if f.MinYearBuilt != nil || f.MaxYearBuilt != nil {
		if desc == nil || desc.YearBuilt == nil {
			return false
		}
		if !inIntRange(f.MinYearBuilt, f.MaxYearBuilt, *desc.YearBuilt) {
			return false
		}
	}

	// an HOA range implies the record must carry an HOA fee at all
	if f.MinHOA != nil || f.MaxHOA != nil {
		if rec.HOA == nil || rec.HOA.Fee == nil {
			return false
		}
		if !inFloatRange(intToFloat(f.MinHOA), intToFloat(f.MaxHOA), *rec.HOA.Fee) {
			return false
		}
	}
	if f.HasHOA != nil {
		has := rec.HOA != nil && rec.HOA.Fee != nil && *rec.HOA.Fee > 0
		if has != *f.HasHOA {
			return false
		}
	}

	if len(f.PropertyTypes) > 0 {
		if desc == nil || !containsType(f.PropertyTypes, desc.Type) {
			return false
		}
	}
	if len(f.Statuses) > 0 && !containsStatus(f.Statuses, rec.Status) {
		return false
	}

	if !matchLocation(f, rec) {
		return false
	}

	if f.HasGarage != nil {
		has := desc != nil && desc.Garage != nil && *desc.Garage > 0
		if has != *f.HasGarage {
			return false
		}
	}
	if f.HasPool != nil {
		has := desc != nil && desc.Pool != nil && *desc.Pool
		if has != *f.HasPool {
			return false
		}
	}
	if f.HasElevator != nil {
		if hasElevator(rec.Details) != *f.HasElevator {
			return false
		}
	}

	if !matchFlag(f.NewConstruction, rec.Flags != nil && rec.Flags.IsNewConstruction) {
		return false
	}
	if !matchFlag(f.IsPending, rec.Flags != nil && rec.Flags.IsPending) {
		return false
	}
	if !matchFlag(f.Foreclosure, rec.Flags != nil && rec.Flags.IsForeclosure) {
		return false
	}
	if !matchFlag(f.PriceReduced, rec.Flags != nil && rec.Flags.IsPriceReduced) {
		return false
	}
	if !matchFlag(f.NewListing, rec.Flags != nil && rec.Flags.IsNewListing) {
		return false
	}
	if !matchFlag(f.CatsAllowed, rec.PetPolicy != nil && rec.PetPolicy.Cats != nil && *rec.PetPolicy.Cats) {
		return false
	}
	if !matchFlag(f.DogsAllowed, rec.PetPolicy != nil && rec.PetPolicy.Dogs != nil && *rec.PetPolicy.Dogs) {
		return false
	}
	if !matchFlag(f.HasVirtualTour, len(rec.VirtualTours) > 0) {
		return false
	}
	if !matchFlag(f.HasMatterport, rec.Matterport != nil && rec.Matterport.Href != "") {
		return false
	}
	if !matchFlag(f.HasOpenHouse, len(rec.OpenHouses) > 0) {
		return false
	}

	if f.MinSchoolRating != nil || len(f.SchoolTypes) > 0 {
		if !hasQualifyingSchool(f, rec.Schools) {
			return false
		}
	}

	return true
}

func matchLocation(f Filter, rec listing.Record) bool {
	needCity := f.City != ""
	needState := f.State != ""
	needZip := f.ZipCode != ""
	needHood := f.Neighborhood != ""
	if !needCity && !needState && !needZip && !needHood {
		return true
	}
	if rec.Location == nil || rec.Location.Address == nil {
		return false
	}
	a := rec.Location.Address
	if needCity && !strings.EqualFold(a.City, f.City) {
		return false
	}
	if needState && !strings.EqualFold(a.State, f.State) {
		return false
	}
	if needZip && a.PostalCode != f.ZipCode {
		return false
	}
	if needHood && !hasNeighborhood(rec.Location.Neighborhoods, f.Neighborhood) {
		return false
	}
	return true
}

func hasNeighborhood(hoods []listing.Neighborhood, want string) bool {
	w := strings.ToLower(want)
	for _, h := range hoods {
		if strings.Contains(strings.ToLower(h.Name), w) {
			return true
		}
	}
	return false
}

// hasElevator scans free-text interior-feature details for an elevator
// mention; providers never expose this as a structured flag.
func hasElevator(details []listing.Detail) bool {
	for _, d := range details {
		if !strings.Contains(strings.ToLower(d.Category), "interior features") {
			continue
		}
		for _, t := range d.Text {
			if strings.Contains(strings.ToLower(t), "elevator") {
				return true
			}
		}
	}
	return false
}

func hasQualifyingSchool(f Filter, schools []listing.School) bool {
	for _, s := range schools {
		if f.MinSchoolRating != nil {
			if s.Rating == nil || *s.Rating < *f.MinSchoolRating {
				continue
			}
		}
		if len(f.SchoolTypes) > 0 && !containsSchoolType(f.SchoolTypes, s.FundingType) {
			continue
		}
		return true
	}
	return false
}

func matchFlag(want *bool, have bool) bool {
	return want == nil || *want == have
}

func matchFloatRange(min, max, val *float64) bool {
	if min == nil && max == nil {
		return true
	}
	if val == nil {
		return false
	}
	if min != nil && *val < *min {
		return false
	}
	if max != nil && *val > *max {
		return false
	}
	return true
}

func inIntRange(min, max *int, val int) bool {
	if min != nil && val < *min {
		return false
	}
	if max != nil && val > *max {
		return false
	}
	return true
}

func inFloatRange(min, max *float64, val float64) bool {
	if min != nil && val < *min {
		return false
	}
	if max != nil && val > *max {
		return false
	}
	return true
}

func intToFloat(p *int) *float64 {
	if p == nil {
		return nil
	}
	v := float64(*p)
	return &v
}

func containsType(set []PropertyType, v string) bool {
	for _, t := range set {
		if strings.EqualFold(string(t), v) {
			return true
		}
	}
	return false
}

func containsStatus(set []Status, v string) bool {
	for _, s := range set {
		if strings.EqualFold(string(s), v) {
			return true
		}
	}
	return false
}

func containsSchoolType(set []SchoolType, v string) bool {
	for _, s := range set {
		if strings.EqualFold(string(s), v) {
			return true
		}
	}
	return false
}
