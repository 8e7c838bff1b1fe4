// Copyright (c) 2026 Tripmesh. All rights reserved.
// Author: dev@tripmesh.app

/*
Tests for the Overpass points-of-interest adapter.

An httptest stub plays the interpreter endpoint; tests cover query
composition, element normalization, the silent-skip rule for unrecognized
categories, and the all-or-nothing failure policy.
*/
package poi_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripmesh/tripmesh/internal/geo/poi"
	"github.com/tripmesh/tripmesh/internal/platform/apperr"
)

func TestSearch_NormalizesElements(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/interpreter", request.URL.Path)

		body, err := io.ReadAll(request.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), `node["amenity"="restaurant"]`)
		assert.Contains(t, string(body), `node["tourism"="museum"]`)

		_, _ = writer.Write([]byte(`{"elements": [
			{"lat": 45.92, "lon": 6.87, "tags": {"amenity": "restaurant", "name": "La Calèche", "website": "https://lacaleche.example", "phone": "+33 450 55 94 68"}},
			{"lat": 45.93, "lon": 6.86, "tags": {"tourism": "museum"}}
		]}`))
	}))
	defer server.Close()

	client := poi.NewClient(server.URL)

	points, err := client.Search(context.Background(), 45.9237, 6.8694, 1000, []string{"restaurant", "museum"})
	require.NoError(t, err)
	require.Len(t, points, 2)

	assert.Equal(t, "La Calèche", points[0].Name)
	assert.Equal(t, "Restaurant", points[0].Type)
	assert.Equal(t, "https://lacaleche.example", points[0].Website)
	assert.Equal(t, "+33 450 55 94 68", points[0].Phone)
	assert.InDelta(t, 45.92, points[0].Latitude, 0.0001)

	// No name tag falls back to the placeholder; optional tags stay empty.
	assert.Equal(t, "Unnamed", points[1].Name)
	assert.Equal(t, "Museum", points[1].Type)
	assert.Empty(t, points[1].Website)
}

func TestSearch_UnrecognizedCategoriesDropped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		body, err := io.ReadAll(request.Body)
		require.NoError(t, err)
		// The nonsense category must not leak into the composed query.
		assert.Contains(t, string(body), `node["amenity"="cafe"]`)
		assert.NotContains(t, string(body), "discotheque")

		_, _ = writer.Write([]byte(`{"elements": []}`))
	}))
	defer server.Close()

	client := poi.NewClient(server.URL)

	points, err := client.Search(context.Background(), 48.85, 2.35, 500, []string{"cafe", "discotheque"})
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestSearch_NoRecognizedCategoriesSkipsUpstream(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		called = true
	}))
	defer server.Close()

	client := poi.NewClient(server.URL)

	points, err := client.Search(context.Background(), 48.85, 2.35, 500, []string{"discotheque", "arcade"})
	require.NoError(t, err)
	assert.Empty(t, points)
	assert.NotNil(t, points)
	assert.False(t, called)
}

func TestSearch_SkeletonElementsSkipped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		// The trailing tagless element is Overpass geometry skeleton output.
		_, _ = writer.Write([]byte(`{"elements": [
			{"lat": 1.0, "lon": 2.0, "tags": {"amenity": "bank", "name": "Crédit Mixte"}},
			{"lat": 3.0, "lon": 4.0}
		]}`))
	}))
	defer server.Close()

	client := poi.NewClient(server.URL)

	points, err := client.Search(context.Background(), 1.0, 2.0, 250, []string{"bank"})
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, "Crédit Mixte", points[0].Name)
}

func TestSearch_TaggedElementWithoutCoordinates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte(`{"elements": [{"tags": {"amenity": "bank"}}]}`))
	}))
	defer server.Close()

	client := poi.NewClient(server.URL)

	_, err := client.Search(context.Background(), 1.0, 2.0, 250, []string{"bank"})
	assertUpstreamError(t, err)
}

func TestSearch_MissingElementsArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte(`{"remark": "runtime error"}`))
	}))
	defer server.Close()

	client := poi.NewClient(server.URL)

	_, err := client.Search(context.Background(), 1.0, 2.0, 250, []string{"bank"})
	assertUpstreamError(t, err)
}

func TestSearch_UpstreamStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := poi.NewClient(server.URL)

	_, err := client.Search(context.Background(), 1.0, 2.0, 250, []string{"bank"})
	assertUpstreamError(t, err)
}

func assertUpstreamError(t *testing.T, err error) {
	t.Helper()
	var appError *apperr.AppError
	require.True(t, errors.As(err, &appError))
	assert.Equal(t, "UPSTREAM_ERROR", appError.Code)
}
