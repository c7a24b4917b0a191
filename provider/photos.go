package provider

import (
	"regexp"

	"github.com/yourorg/homesearch-api/listing"
)

var photoSizePattern = regexp.MustCompile(`-w\d+_h\d+`)

// upgradePhotoURL rewrites the size suffix some providers bake into photo
// hrefs up to the largest rendition.
func upgradePhotoURL(href string) string {
	if href == "" {
		return href
	}
	return photoSizePattern.ReplaceAllString(href, "-w2048_h1536")
}

// normalizePhotos puts the primary photo first, drops duplicates and empty
// hrefs, and upgrades every URL.
func normalizePhotos(primary *listing.Photo, photos []listing.Photo) []listing.Photo {
	ordered := make([]listing.Photo, 0, len(photos)+1)
	if primary != nil && primary.Href != "" {
		ordered = append(ordered, *primary)
	}
	ordered = append(ordered, photos...)

	seen := make(map[string]struct{}, len(ordered))
	out := make([]listing.Photo, 0, len(ordered))
	for _, p := range ordered {
		href := upgradePhotoURL(p.Href)
		if href == "" {
			continue
		}
		if _, dup := seen[href]; dup {
			continue
		}
		seen[href] = struct{}{}
		p.Href = href
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
