// Copyright (c) 2026 Tripmesh. All rights reserved.
// Author: dev@tripmesh.app

// Package poi implements the points-of-interest adapter backed by the
// Overpass API.
//
// # Failure Policy
//
// Same as the other geo adapters: network errors, non-2xx statuses, and
// shape mismatches surface as [apperr.Upstream]; no retry, no partial
// results. Unrecognized category names are the one silent case — they are
// dropped before the query is composed.
package poi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"unicode"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"github.com/tripmesh/tripmesh/internal/platform/apperr"
	"github.com/tripmesh/tripmesh/internal/platform/constants"
)

// Point is one normalized point of interest.
type Point struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Type      string  `json:"type"`
	Website   string  `json:"website,omitempty"`
	Phone     string  `json:"phone,omitempty"`
}

// Client calls the Overpass interpreter endpoint.
type Client struct {
	http *resty.Client
}

// NewClient creates a points-of-interest client against the given base URL.
func NewClient(baseURL string) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader(constants.HeaderUserAgent, constants.UpstreamUserAgent).
		SetTimeout(constants.UpstreamTimeout)

	return &Client{http: client}
}

// Search finds points of interest within radiusMeters of the center, limited
// to the recognized categories.
//
// Zero recognized categories short-circuits to an empty result without any
// upstream call.
func (client *Client) Search(ctx context.Context, latitude, longitude float64, radiusMeters int, categories []string) ([]Point, error) {
	pairs := resolveCategories(categories)
	if len(pairs) == 0 {
		return []Point{}, nil
	}

	// ── 1. Query Composition ──────────────────────────────────────────────

	// One composed query covers every recognized category; Overpass unions
	// the node sets server-side.
	var queryBuilder strings.Builder
	queryBuilder.WriteString("[out:json][timeout:25];(")
	for _, pair := range pairs {
		queryBuilder.WriteString(fmt.Sprintf(
			`node["%s"="%s"](around:%d,%f,%f);`,
			pair.Key, pair.Value, radiusMeters, latitude, longitude,
		))
	}
	queryBuilder.WriteString(");out body;>;out skel qt;")

	// ── 2. Execution ──────────────────────────────────────────────────────

	response, err := client.http.R().
		SetContext(ctx).
		SetBody(queryBuilder.String()).
		Post("/api/interpreter")

	if err != nil {
		return nil, apperr.Upstream("Points-of-interest search failed", err)
	}
	if response.StatusCode() != http.StatusOK {
		return nil, apperr.Upstream("Points-of-interest search failed", fmt.Errorf("poi: unexpected status %d", response.StatusCode()))
	}

	// ── 3. Normalization ──────────────────────────────────────────────────

	elements := gjson.GetBytes(response.Body(), "elements")
	if !elements.Exists() || !elements.IsArray() {
		return nil, apperr.Upstream("Points-of-interest search returned unexpected content", fmt.Errorf("poi: missing elements array"))
	}

	points := []Point{}
	for _, element := range elements.Array() {
		tags := element.Get("tags")
		// Geometry-only skeleton elements carry no tags; they are dropped,
		// not an error.
		if !tags.Exists() {
			continue
		}

		latitude := element.Get("lat")
		longitude := element.Get("lon")
		if !latitude.Exists() || !longitude.Exists() {
			return nil, apperr.Upstream("Points-of-interest search returned unexpected content", fmt.Errorf("poi: tagged element missing coordinates"))
		}

		name := tags.Get("name").String()
		if name == "" {
			name = "Unnamed"
		}

		points = append(points, Point{
			Name:      name,
			Latitude:  latitude.Float(),
			Longitude: longitude.Float(),
			Type:      capitalize(matchedTagValue(tags)),
			Website:   tags.Get("website").String(),
			Phone:     tags.Get("phone").String(),
		})
	}

	return points, nil
}

// matchedTagValue returns the tag value that placed the element in the
// result set, checking the lookup table's keys in a fixed order.
func matchedTagValue(tags gjson.Result) string {
	for _, key := range []string{"amenity", "tourism", "leisure", "shop"} {
		if value := tags.Get(key); value.Exists() {
			return value.String()
		}
	}
	return ""
}

// capitalize upper-cases the first letter of the tag value ("restaurant"
// becomes "Restaurant").
func capitalize(value string) string {
	if value == "" {
		return value
	}
	runes := []rune(value)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
