// Copyright (c) 2026 Tripmesh. All rights reserved.
// Author: dev@tripmesh.app

package poi

// tagPair is one OpenStreetMap tag selector (key=value).
type tagPair struct {
	Key   string
	Value string
}

// categoryTags is the fixed lookup from user-facing category names to
// OpenStreetMap tag pairs. Names missing from this table are silently
// skipped, never an error.
var categoryTags = map[string]tagPair{
	"restaurant":  {"amenity", "restaurant"},
	"cafe":        {"amenity", "cafe"},
	"bar":         {"amenity", "bar"},
	"fast_food":   {"amenity", "fast_food"},
	"pharmacy":    {"amenity", "pharmacy"},
	"hospital":    {"amenity", "hospital"},
	"bank":        {"amenity", "bank"},
	"fuel":        {"amenity", "fuel"},
	"parking":     {"amenity", "parking"},
	"hotel":       {"tourism", "hotel"},
	"museum":      {"tourism", "museum"},
	"attraction":  {"tourism", "attraction"},
	"viewpoint":   {"tourism", "viewpoint"},
	"park":        {"leisure", "park"},
	"supermarket": {"shop", "supermarket"},
}

// resolveCategories maps the requested names through the lookup table,
// dropping unrecognized ones.
func resolveCategories(names []string) []tagPair {
	pairs := []tagPair{}
	for _, name := range names {
		if pair, ok := categoryTags[name]; ok {
			pairs = append(pairs, pair)
		}
	}
	return pairs
}
