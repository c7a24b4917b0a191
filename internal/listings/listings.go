// Package listings provides the read-only sample-listing source injected into
// the chat handler for filter previews. It is a capability, not ambient
// state, so tests substitute their own fixtures.
package listings

import (
	"context"

	"github.com/yourorg/homesearch-api/listing"
)

// Source yields the listings available for in-process filtering.
type Source interface {
	Listings(ctx context.Context) ([]listing.Record, error)
}

// Static serves a fixed record set.
type Static struct {
	records []listing.Record
}

func NewStatic(records []listing.Record) *Static {
	return &Static{records: records}
}

func (s *Static) Listings(_ context.Context) ([]listing.Record, error) {
	out := make([]listing.Record, len(s.records))
	copy(out, s.records)
	return out, nil
}
