package listing

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Record is a normalized property as consumed by rendering and client-side
// filtering, regardless of which upstream envelope it arrived in. Records are
// built fresh per upstream response and never persisted.
type Record struct {
	PropertyID string `json:"property_id"`
	ListingID  string `json:"listing_id,omitempty"`

	ListPrice *float64 `json:"list_price,omitempty"`
	Status    string   `json:"status,omitempty"`

	Description *Description `json:"description,omitempty"`
	Location    *Location    `json:"location,omitempty"`
	HOA         *HOA         `json:"hoa,omitempty"`
	Flags       *Flags       `json:"flags,omitempty"`
	PetPolicy   *PetPolicy   `json:"pet_policy,omitempty"`

	// Details carries free-text category -> text-list pairs, e.g. the
	// "Interior Features" category used to detect elevators.
	Details []Detail `json:"details,omitempty"`

	Schools []School `json:"nearby_schools,omitempty"`

	PrimaryPhoto *Photo  `json:"primary_photo,omitempty"`
	Photos       []Photo `json:"photos,omitempty"`

	VirtualTours []VirtualTour `json:"virtual_tours,omitempty"`
	Matterport   *Matterport   `json:"matterport,omitempty"`
	OpenHouses   []OpenHouse   `json:"open_houses,omitempty"`
}

// Description holds the physical attributes of a property. Numeric fields are
// pointers so "not reported by the provider" stays distinguishable from zero.
type Description struct {
	Beds      *int       `json:"beds,omitempty"`
	Baths     *BathCount `json:"baths,omitempty"`
	Sqft      *int       `json:"sqft,omitempty"`
	YearBuilt *int       `json:"year_built,omitempty"`
	Type      string     `json:"type,omitempty"`
	Garage    *int       `json:"garage,omitempty"`
	Pool      *bool      `json:"pool,omitempty"`
}

// BathCount accepts either a JSON number or a numeric string; several provider
// dialects report baths as "2.5".
type BathCount float64

func (b *BathCount) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*b = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*b = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*b = BathCount(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*b = BathCount(f)
	return nil
}

func (b *BathCount) Float() float64 {
	if b == nil {
		return 0
	}
	return float64(*b)
}

type Location struct {
	Address       *Address       `json:"address,omitempty"`
	Neighborhoods []Neighborhood `json:"neighborhoods,omitempty"`
}

type Address struct {
	Line       string      `json:"line,omitempty"`
	Street     string      `json:"street,omitempty"`
	City       string      `json:"city,omitempty"`
	State      string      `json:"state_code,omitempty"`
	PostalCode string      `json:"postal_code,omitempty"`
	Coordinate *Coordinate `json:"coordinate,omitempty"`
}

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type Neighborhood struct {
	Name string `json:"name"`
}

type HOA struct {
	Fee *float64 `json:"fee,omitempty"`
}

type Detail struct {
	Category string   `json:"category"`
	Text     []string `json:"text,omitempty"`
}

// School is a nearby school attached to a record by the upstream provider.
type School struct {
	ID              string   `json:"id,omitempty"`
	Name            string   `json:"name,omitempty"`
	Rating          *float64 `json:"rating,omitempty"`
	FundingType     string   `json:"funding_type,omitempty"`
	DistanceInMiles *float64 `json:"distance_in_miles,omitempty"`
	EducationLevels []string `json:"education_levels,omitempty"`
}

// Flags mirrors the boolean condition flags of the filter model.
type Flags struct {
	IsNewConstruction bool `json:"is_new_construction,omitempty"`
	IsPending         bool `json:"is_pending,omitempty"`
	IsContingent      bool `json:"is_contingent,omitempty"`
	IsForeclosure     bool `json:"is_foreclosure,omitempty"`
	IsPriceReduced    bool `json:"is_price_reduced,omitempty"`
	IsNewListing      bool `json:"is_new_listing,omitempty"`
}

type PetPolicy struct {
	Cats *bool `json:"cats,omitempty"`
	Dogs *bool `json:"dogs,omitempty"`
}

type Photo struct {
	Href string   `json:"href"`
	Tags []string `json:"tags,omitempty"`
}

type VirtualTour struct {
	Href string `json:"href"`
	Type string `json:"type,omitempty"`
}

type Matterport struct {
	Href string `json:"href,omitempty"`
}

type OpenHouse struct {
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}
