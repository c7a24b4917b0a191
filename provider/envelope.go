package provider

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/yourorg/homesearch-api/listing"
)

// ErrUnknownEnvelope means no known response dialect matched the body.
var ErrUnknownEnvelope = errors.New("provider: unrecognized response envelope")

// envelopeProbes is the ordered first-match probe over the provider's known
// response dialects. The order encodes priority among equally plausible
// shapes; keep it stable.
var envelopeProbes = []struct {
	name string
	path string
}{
	{"results", "results"},
	{"properties", "properties"},
	{"listings", "listings"},
	{"data_results", "data.results"},
	{"home_search_results", "data.home_search.results"},
	{"home_search_properties", "data.home_search.properties"},
}

// Normalize flattens whichever envelope the provider answered with into
// records, then cleans each one up: synthesized address line, numeric baths,
// primary photo hoisted and deduplicated, photo URLs upgraded.
func Normalize(raw []byte) ([]listing.Record, error) {
	root := gjson.ParseBytes(raw)

	var arr gjson.Result
	switch {
	case root.IsArray():
		arr = root
	default:
		found := false
		for _, probe := range envelopeProbes {
			if v := root.Get(probe.path); v.IsArray() {
				arr = v
				found = true
				break
			}
		}
		if !found {
			return nil, ErrUnknownEnvelope
		}
	}

	var records []listing.Record
	if err := json.Unmarshal([]byte(arr.Raw), &records); err != nil {
		return nil, err
	}
	for i := range records {
		normalizeRecord(&records[i])
	}
	return records, nil
}

func normalizeRecord(r *listing.Record) {
	if r.Location != nil && r.Location.Address != nil {
		a := r.Location.Address
		if a.Line == "" {
			a.Line = joinAddressLine(a)
		}
	}
	r.Photos = normalizePhotos(r.PrimaryPhoto, r.Photos)
}

func joinAddressLine(a *listing.Address) string {
	parts := make([]string, 0, 3)
	if a.Street != "" {
		parts = append(parts, a.Street)
	}
	if a.City != "" {
		parts = append(parts, a.City)
	}
	tail := strings.TrimSpace(a.State + " " + a.PostalCode)
	if tail != "" {
		parts = append(parts, tail)
	}
	return strings.Join(parts, ", ")
}
