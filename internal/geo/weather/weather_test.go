// Copyright (c) 2026 Tripmesh. All rights reserved.
// Author: dev@tripmesh.app

/*
Tests for the Open-Meteo forecast adapter.

An httptest stub serves canned payloads; tests verify the parallel-array
zipping, order preservation, and the strict shape checks.
*/
package weather_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripmesh/tripmesh/internal/geo/weather"
	"github.com/tripmesh/tripmesh/internal/platform/apperr"
)

// stubPayload builds a minimal but complete Open-Meteo response with the
// given number of hourly and daily entries.
func stubPayload(hours, days int) string {
	repeatNumbers := func(value string, count int) string {
		parts := make([]string, count)
		for i := range parts {
			parts[i] = value
		}
		return strings.Join(parts, ",")
	}
	repeatStrings := func(prefix string, count int) string {
		parts := make([]string, count)
		for i := range parts {
			parts[i] = fmt.Sprintf("%q", fmt.Sprintf("%s%02d", prefix, i))
		}
		return strings.Join(parts, ",")
	}

	return fmt.Sprintf(`{
		"latitude": 45.92,
		"longitude": 6.87,
		"utc_offset_seconds": 7200,
		"elevation": 1035.0,
		"current": {
			"time": "2026-09-07T12:00",
			"weather_code": 3,
			"temperature_2m": 18.4,
			"apparent_temperature": 17.1,
			"relative_humidity_2m": 62,
			"precipitation": 0.0
		},
		"hourly": {
			"time": [%s],
			"temperature_2m": [%s],
			"apparent_temperature": [%s],
			"relative_humidity_2m": [%s],
			"cloud_cover": [%s],
			"weather_code": [%s],
			"wind_speed_10m": [%s],
			"precipitation_probability": [%s]
		},
		"daily": {
			"time": [%s],
			"weather_code": [%s],
			"temperature_2m_min": [%s],
			"temperature_2m_max": [%s],
			"sunrise": [%s],
			"sunset": [%s],
			"rain_sum": [%s],
			"snowfall_sum": [%s],
			"precipitation_probability_mean": [%s]
		}
	}`,
		repeatStrings("2026-09-07T", hours),
		repeatNumbers("18.4", hours),
		repeatNumbers("17.1", hours),
		repeatNumbers("62", hours),
		repeatNumbers("40", hours),
		repeatNumbers("3", hours),
		repeatNumbers("12.5", hours),
		repeatNumbers("20", hours),
		repeatStrings("2026-09-", days),
		repeatNumbers("61", days),
		repeatNumbers("9.2", days),
		repeatNumbers("21.7", days),
		repeatStrings("sunrise", days),
		repeatStrings("sunset", days),
		repeatNumbers("1.4", days),
		repeatNumbers("0.0", days),
		repeatNumbers("35", days),
	)
}

func TestGet_ZipsParallelArrays(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/forecast", request.URL.Path)
		assert.Equal(t, "45.9237", request.URL.Query().Get("latitude"))
		assert.Equal(t, "6.8694", request.URL.Query().Get("longitude"))
		assert.Equal(t, "auto", request.URL.Query().Get("timezone"))
		assert.Contains(t, request.URL.Query().Get("hourly"), "wind_speed_10m")
		assert.Contains(t, request.URL.Query().Get("daily"), "precipitation_probability_mean")
		assert.Contains(t, request.URL.Query().Get("current"), "apparent_temperature")

		_, _ = writer.Write([]byte(stubPayload(24, 7)))
	}))
	defer server.Close()

	client := weather.NewClient(server.URL)

	forecast, err := client.Get(context.Background(), 45.9237, 6.8694)
	require.NoError(t, err)

	assert.InDelta(t, 45.92, forecast.Latitude, 0.0001)
	assert.Equal(t, int64(7200), forecast.UTCOffsetSeconds)
	assert.InDelta(t, 1035.0, forecast.Elevation, 0.0001)

	assert.Equal(t, "2026-09-07T12:00", forecast.Current.Time)
	assert.Equal(t, "3", forecast.Current.WeatherCode)
	assert.InDelta(t, 18.4, forecast.Current.Temperature, 0.0001)
	assert.Equal(t, 62, forecast.Current.RelativeHumidity)

	require.Len(t, forecast.Hourly, 24)
	require.Len(t, forecast.Daily, 7)

	// Entry order follows array position.
	assert.Equal(t, "2026-09-07T00", forecast.Hourly[0].Time)
	assert.Equal(t, "2026-09-07T23", forecast.Hourly[23].Time)
	assert.InDelta(t, 12.5, forecast.Hourly[5].WindSpeed, 0.0001)
	assert.Equal(t, 40, forecast.Hourly[5].CloudCover)

	assert.Equal(t, "2026-09-00", forecast.Daily[0].Date)
	assert.Equal(t, "2026-09-06", forecast.Daily[6].Date)
	assert.InDelta(t, 9.2, forecast.Daily[2].TemperatureMin, 0.0001)
	assert.InDelta(t, 21.7, forecast.Daily[2].TemperatureMax, 0.0001)
	assert.Equal(t, 35, forecast.Daily[2].PrecipitationProbability)
}

func TestGet_MissingBlock(t *testing.T) {
	for _, block := range []string{`"current"`, `"hourly"`, `"daily"`, `"elevation"`} {
		payload := stubPayload(2, 2)
		// Rename the block's key so lookups miss it.
		payload = strings.Replace(payload, block, strings.TrimSuffix(block, `"`)+`_gone"`, 1)

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			_, _ = writer.Write([]byte(payload))
		}))

		client := weather.NewClient(server.URL)
		_, err := client.Get(context.Background(), 1.0, 2.0)
		assertUpstreamError(t, err)

		server.Close()
	}
}

func TestGet_ParallelArrayLengthMismatch(t *testing.T) {
	payload := stubPayload(3, 2)
	// Truncate one hourly array so it disagrees with its siblings.
	payload = strings.Replace(payload, `"cloud_cover": [40,40,40]`, `"cloud_cover": [40,40]`, 1)
	require.Contains(t, payload, `"cloud_cover": [40,40]`)

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte(payload))
	}))
	defer server.Close()

	client := weather.NewClient(server.URL)

	_, err := client.Get(context.Background(), 1.0, 2.0)
	assertUpstreamError(t, err)
}

func TestGet_UpstreamStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := weather.NewClient(server.URL)

	_, err := client.Get(context.Background(), 1.0, 2.0)
	assertUpstreamError(t, err)
}

func TestGet_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client := weather.NewClient(server.URL)

	_, err := client.Get(context.Background(), 1.0, 2.0)
	assertUpstreamError(t, err)
}

func assertUpstreamError(t *testing.T, err error) {
	t.Helper()
	var appError *apperr.AppError
	require.True(t, errors.As(err, &appError))
	assert.Equal(t, "UPSTREAM_ERROR", appError.Code)
}
