// Copyright (c) 2026 Tripmesh. All rights reserved.
// Author: dev@tripmesh.app

/*
Package convert provides quick type-conversion utilities.

It wraps [strconv] to provide fault-tolerant conversions (returning the zero
value when parsing fails), which is useful when reading latitude/longitude
and radius query parameters in API handlers.

Do not use this package if distinguishing between malformed data and zero
values matters in your domain logic; use the standard library directly.
*/
package convert

import "strconv"

// ToInt converts a string to an integer, silencing parsing errors.
// It returns 0 if the string is empty or cannot be parsed.
func ToInt(s string) int {
	if s == "" {
		return 0
	}

	v, _ := strconv.Atoi(s)
	return v
}

// ToFloat64 converts a string to a float64, silencing parsing errors.
// It returns 0 if the string is empty or cannot be parsed.
func ToFloat64(s string) float64 {
	if s == "" {
		return 0
	}

	v, _ := strconv.ParseFloat(s, 64)
	return v
}

// ToBool converts a string to a boolean, silencing parsing errors.
// It returns false if the string is empty or cannot be parsed.
func ToBool(s string) bool {
	if s == "" {
		return false
	}

	v, _ := strconv.ParseBool(s)
	return v
}
