// Copyright (c) 2026 Tripmesh. All rights reserved.
// Author: dev@tripmesh.app

/*
Tests for the Nominatim place-search adapter.

The upstream service is replaced with an httptest stub; each test asserts
either the normalized result set or the all-or-nothing failure policy.
*/
package geocode_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripmesh/tripmesh/internal/geo/geocode"
	"github.com/tripmesh/tripmesh/internal/platform/apperr"
)

func TestSearch_NormalizesResultsInOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/search", request.URL.Path)
		assert.Equal(t, "Chamonix", request.URL.Query().Get("q"))
		assert.Equal(t, "json", request.URL.Query().Get("format"))
		assert.Equal(t, "10", request.URL.Query().Get("limit"))

		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`[
			{"display_name": "Chamonix-Mont-Blanc, Haute-Savoie, France", "lat": "45.9237", "lon": "6.8694", "type": "town"},
			{"display_name": "Chamonix, Georgia, USA", "lat": "34.8661", "lon": "-83.9593", "type": "hamlet"}
		]`))
	}))
	defer server.Close()

	client := geocode.NewClient(server.URL)

	places, err := client.Search(context.Background(), "Chamonix")
	require.NoError(t, err)
	require.Len(t, places, 2)

	// Upstream relevance ordering must survive normalization.
	assert.Equal(t, "Chamonix-Mont-Blanc, Haute-Savoie, France", places[0].DisplayName)
	assert.InDelta(t, 45.9237, places[0].Latitude, 0.0001)
	assert.InDelta(t, 6.8694, places[0].Longitude, 0.0001)
	assert.Equal(t, "town", places[0].Type)
	assert.Equal(t, "Chamonix, Georgia, USA", places[1].DisplayName)
}

func TestSearch_EmptyResultSet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := geocode.NewClient(server.URL)

	places, err := client.Search(context.Background(), "xyzzy")
	require.NoError(t, err)
	assert.Empty(t, places)
	assert.NotNil(t, places)
}

func TestSearch_MalformedElementRejectsWholeResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		// The second element is missing its coordinates.
		_, _ = writer.Write([]byte(`[
			{"display_name": "Good", "lat": "1.0", "lon": "2.0", "type": "city"},
			{"display_name": "Bad", "type": "city"}
		]`))
	}))
	defer server.Close()

	client := geocode.NewClient(server.URL)

	places, err := client.Search(context.Background(), "anywhere")
	assert.Nil(t, places)
	assertUpstreamError(t, err)
}

func TestSearch_NonArrayPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte(`{"error": "blocked"}`))
	}))
	defer server.Close()

	client := geocode.NewClient(server.URL)

	_, err := client.Search(context.Background(), "anywhere")
	assertUpstreamError(t, err)
}

func TestSearch_UpstreamStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := geocode.NewClient(server.URL)

	_, err := client.Search(context.Background(), "anywhere")
	assertUpstreamError(t, err)
}

func TestSearch_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // closed before use, so the dial fails

	client := geocode.NewClient(server.URL)

	_, err := client.Search(context.Background(), "anywhere")
	assertUpstreamError(t, err)
}

func assertUpstreamError(t *testing.T, err error) {
	t.Helper()
	var appError *apperr.AppError
	require.True(t, errors.As(err, &appError))
	assert.Equal(t, "UPSTREAM_ERROR", appError.Code)
	assert.Equal(t, http.StatusBadGateway, appError.HTTPStatus)
}
