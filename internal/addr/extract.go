package addr

import (
	"regexp"
	"strings"
)

var reZIP = regexp.MustCompile(`\b(\d{5})\b`)
var reState = regexp.MustCompile(`^[A-Z]{2}$`)

// Extracted is the result of a heuristic parse of a free-text location.
// Exactly one of PostalCode or City/State is populated.
type Extracted struct {
	PostalCode string
	City       string
	State      string
}

// Extract pulls a 5-digit postal code out of a loosely formatted location
// string, or failing that a trailing "City, ST" pair. A postal code anywhere
// in the string wins; city/state is only attempted when no code matched.
// Returns nil when neither pattern applies; callers should fall back to a
// radius search on the raw string rather than treat that as an error.
func Extract(location string) *Extracted {
	s := strings.TrimSpace(location)
	if s == "" {
		return nil
	}
	if m := reZIP.FindStringSubmatch(s); m != nil {
		return &Extracted{PostalCode: m[1]}
	}
	parts := strings.Split(s, ",")
	for i := len(parts) - 1; i >= 1; i-- {
		seg := strings.Fields(strings.TrimSpace(parts[i]))
		if len(seg) == 0 || !reState.MatchString(seg[0]) {
			continue
		}
		city := strings.TrimSpace(parts[i-1])
		if city == "" {
			continue
		}
		return &Extracted{City: city, State: seg[0]}
	}
	return nil
}
