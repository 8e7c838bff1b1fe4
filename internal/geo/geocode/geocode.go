// Copyright (c) 2026 Tripmesh. All rights reserved.
// Author: dev@tripmesh.app

// Package geocode implements the place-search adapter backed by
// OpenStreetMap's Nominatim API.
//
// # Failure Policy
//
// A network error, a non-2xx status, or a payload missing an expected field
// all surface as a single [apperr.Upstream]; results are all-or-nothing and
// never retried. Upstream relevance ordering is preserved.
package geocode

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"github.com/tripmesh/tripmesh/internal/platform/apperr"
	"github.com/tripmesh/tripmesh/internal/platform/constants"
)

// maxResults bounds the upstream result count per search.
const maxResults = "10"

// Place is one normalized geocoding result.
type Place struct {
	DisplayName string  `json:"display_name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Type        string  `json:"type"`
}

// Client calls the Nominatim search endpoint.
type Client struct {
	http *resty.Client
}

// NewClient creates a geocoding client against the given base URL
// (tests point this at a stub server).
func NewClient(baseURL string) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader(constants.HeaderUserAgent, constants.UpstreamUserAgent).
		SetTimeout(constants.UpstreamTimeout)

	return &Client{http: client}
}

// Search resolves a free-text query to at most ten places, in the order the
// upstream service ranked them.
func (client *Client) Search(ctx context.Context, query string) ([]Place, error) {
	response, err := client.http.R().
		SetContext(ctx).
		SetQueryParam("q", query).
		SetQueryParam("format", "json").
		SetQueryParam("limit", maxResults).
		Get("/search")

	if err != nil {
		return nil, apperr.Upstream("Place search failed", err)
	}
	if response.StatusCode() != http.StatusOK {
		return nil, apperr.Upstream("Place search failed", fmt.Errorf("geocode: unexpected status %d", response.StatusCode()))
	}

	root := gjson.ParseBytes(response.Body())
	if !root.IsArray() {
		return nil, apperr.Upstream("Place search returned unexpected content", fmt.Errorf("geocode: payload is not an array"))
	}

	places := []Place{}
	for _, element := range root.Array() {
		displayName := element.Get("display_name")
		latitude := element.Get("lat")
		longitude := element.Get("lon")
		placeType := element.Get("type")

		// A malformed element poisons the whole response; partial results
		// are never returned.
		if !displayName.Exists() || !latitude.Exists() || !longitude.Exists() || !placeType.Exists() {
			return nil, apperr.Upstream("Place search returned unexpected content", fmt.Errorf("geocode: element missing expected fields"))
		}

		places = append(places, Place{
			DisplayName: displayName.String(),
			Latitude:    latitude.Float(),
			Longitude:   longitude.Float(),
			Type:        placeType.String(),
		})
	}

	return places, nil
}
