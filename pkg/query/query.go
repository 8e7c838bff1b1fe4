// Copyright (c) 2026 Tripmesh. All rights reserved.
// Author: dev@tripmesh.app

// Package query provides helpers for parsing URL query parameter values.
package query

import "strings"

// StringSlice parses a single comma-separated query string
// into a trimmed slice of strings. Empty entries are dropped.
//
// Used for the "types" parameter of the points-of-interest lookup
// (e.g. "restaurant,cafe,hotel").
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}
	var res []string
	for _, v := range strings.Split(val, ",") {
		clean := strings.TrimSpace(v)
		if clean != "" {
			res = append(res, clean)
		}
	}
	return res
}
