// Copyright (c) 2026 Tripmesh. All rights reserved.
// Author: dev@tripmesh.app

/*
Package pointer provides utilities for working with pointers in Go.

It uses generics to simplify the creation and dereferencing of pointers,
avoiding boilerplate in handlers that build entities with optional fields
(trip coordinates, location address, accepted-at timestamps).
*/
package pointer

// To returns a pointer to the provided value.
// Useful when a struct field expects a pointer to a literal (e.g. pointer.To(48.2)).
func To[T any](v T) *T {
	return &v
}

// Val safely dereferences a pointer.
// If the pointer is nil, it returns the zero value of the underlying type.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Fallback safely dereferences a pointer.
// If the pointer is nil, it returns the provided fallback value instead.
func Fallback[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
