package listings

import "github.com/yourorg/homesearch-api/listing"

// Sample returns the built-in demo records used when no live data source is
// configured.
func Sample() []listing.Record {
	return []listing.Record{
		{
			PropertyID: "sample-0001",
			ListPrice:  fp(485000),
			Status:     "for_sale",
			Description: &listing.Description{
				Beds:      ip(3),
				Baths:     bc(2),
				Sqft:      ip(1850),
				YearBuilt: ip(2006),
				Type:      "single_family",
				Garage:    ip(2),
			},
			Location: &listing.Location{
				Address: &listing.Address{
					Line: "2204 Alamosa Dr, Austin, TX 78704", Street: "2204 Alamosa Dr",
					City: "Austin", State: "TX", PostalCode: "78704",
				},
				Neighborhoods: []listing.Neighborhood{{Name: "South Lamar"}},
			},
			Schools: []listing.School{
				{Name: "Zilker Elementary", Rating: fp(8), FundingType: "public", DistanceInMiles: fp(0.6)},
			},
			Photos: []listing.Photo{{Href: "https://photos.example.com/sample-0001-w1024_h768.jpg"}},
		},
		{
			PropertyID: "sample-0002",
			ListPrice:  fp(739000),
			Status:     "for_sale",
			Description: &listing.Description{
				Beds:      ip(2),
				Baths:     bc(2.5),
				Sqft:      ip(1420),
				YearBuilt: ip(2019),
				Type:      "condo",
			},
			Location: &listing.Location{
				Address: &listing.Address{
					Line: "501 West Ave Unit 1204, Austin, TX 78701", Street: "501 West Ave",
					City: "Austin", State: "TX", PostalCode: "78701",
				},
				Neighborhoods: []listing.Neighborhood{{Name: "Downtown"}},
			},
			HOA: &listing.HOA{Fee: fp(640)},
			Details: []listing.Detail{
				{Category: "Interior Features", Text: []string{"Elevator", "Quartz Counters"}},
			},
			PetPolicy:    &listing.PetPolicy{Cats: bp(true), Dogs: bp(true)},
			VirtualTours: []listing.VirtualTour{{Href: "https://tours.example.com/sample-0002"}},
		},
		{
			PropertyID: "sample-0003",
			ListPrice:  fp(2850),
			Status:     "for_rent",
			Description: &listing.Description{
				Beds:  ip(1),
				Baths: bc(1),
				Sqft:  ip(780),
				Type:  "condo",
			},
			Location: &listing.Location{
				Address: &listing.Address{
					Line: "88 Beacon St, Boston, MA 02108", Street: "88 Beacon St",
					City: "Boston", State: "MA", PostalCode: "02108",
				},
			},
			PetPolicy: &listing.PetPolicy{Cats: bp(true), Dogs: bp(false)},
		},
		{
			PropertyID: "sample-0004",
			ListPrice:  fp(1250000),
			Status:     "for_sale",
			Description: &listing.Description{
				Beds:      ip(5),
				Baths:     bc(4),
				Sqft:      ip(3600),
				YearBuilt: ip(1998),
				Type:      "single_family",
				Garage:    ip(3),
				Pool:      bp(true),
			},
			Location: &listing.Location{
				Address: &listing.Address{
					Line: "14 Crestline Rd, Boston, MA 02132", Street: "14 Crestline Rd",
					City: "Boston", State: "MA", PostalCode: "02132",
				},
				Neighborhoods: []listing.Neighborhood{{Name: "West Roxbury"}},
			},
			Schools: []listing.School{
				{Name: "Roxbury Prep", Rating: fp(9), FundingType: "charter", DistanceInMiles: fp(1.2)},
				{Name: "Holy Name Parish School", FundingType: "private", DistanceInMiles: fp(0.4)},
			},
			Flags:      &listing.Flags{IsPriceReduced: true},
			OpenHouses: []listing.OpenHouse{{StartDate: "2025-06-07T17:00:00Z", EndDate: "2025-06-07T19:00:00Z"}},
		},
		{
			PropertyID: "sample-0005",
			Status:     "pending",
			ListPrice:  fp(315000),
			Description: &listing.Description{
				Beds:      ip(2),
				Baths:     bc(1),
				YearBuilt: ip(1962),
				Type:      "multi_family",
			},
			Location: &listing.Location{
				Address: &listing.Address{
					Line: "730 E 7th St, Austin, TX 78702", Street: "730 E 7th St",
					City: "Austin", State: "TX", PostalCode: "78702",
				},
			},
			Flags:      &listing.Flags{IsPending: true},
			Matterport: &listing.Matterport{Href: "https://matterport.example.com/sample-0005"},
		},
	}
}

func ip(v int) *int             { return &v }
func fp(v float64) *float64     { return &v }
func bp(v bool) *bool           { return &v }
func bc(v float64) *listing.BathCount {
	b := listing.BathCount(v)
	return &b
}
