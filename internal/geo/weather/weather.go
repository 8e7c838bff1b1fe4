// Copyright (c) 2026 Tripmesh. All rights reserved.
// Author: dev@tripmesh.app

// Package weather implements the forecast adapter backed by the Open-Meteo
// API.
//
// # Shape Contract
//
// Open-Meteo delivers hourly and daily data as parallel fixed-position
// arrays (one array per field, index i describes hour/day i). The adapter
// zips them into entry structs, preserving chronological upstream order.
// Any missing expected field or length mismatch between parallel arrays is
// an [apperr.Upstream]; there are no partial bundles.
package weather

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"github.com/tripmesh/tripmesh/internal/platform/apperr"
	"github.com/tripmesh/tripmesh/internal/platform/constants"
)

// Field lists requested from Open-Meteo. These mirror what the forecast
// views consume; adding a field here automatically lands it in the payload.
const (
	dailyFields   = "weather_code,temperature_2m_max,temperature_2m_min,sunrise,sunset,rain_sum,snowfall_sum,precipitation_probability_mean"
	hourlyFields  = "temperature_2m,relative_humidity_2m,cloud_cover,weather_code,apparent_temperature,wind_speed_10m,precipitation_probability"
	currentFields = "temperature_2m,relative_humidity_2m,apparent_temperature,precipitation,weather_code"
)

// Current is the present-moment conditions block.
type Current struct {
	Time                string  `json:"time"`
	WeatherCode         string  `json:"weather_code"`
	Temperature         float64 `json:"temperature"`
	ApparentTemperature float64 `json:"apparent_temperature"`
	RelativeHumidity    int     `json:"relative_humidity"`
	Precipitation       float64 `json:"precipitation"`
}

// Hourly is one forecasted hour.
type Hourly struct {
	Time                     string  `json:"time"`
	Temperature              float64 `json:"temperature"`
	ApparentTemperature      float64 `json:"apparent_temperature"`
	RelativeHumidity         int     `json:"relative_humidity"`
	CloudCover               int     `json:"cloud_cover"`
	WeatherCode              string  `json:"weather_code"`
	WindSpeed                float64 `json:"wind_speed"`
	PrecipitationProbability int     `json:"precipitation_probability"`
}

// Daily is one forecasted day.
type Daily struct {
	Date                     string  `json:"date"`
	WeatherCode              string  `json:"weather_code"`
	TemperatureMin           float64 `json:"temperature_min"`
	TemperatureMax           float64 `json:"temperature_max"`
	Sunrise                  string  `json:"sunrise"`
	Sunset                   string  `json:"sunset"`
	RainSum                  float64 `json:"rain_sum"`
	SnowfallSum              float64 `json:"snowfall_sum"`
	PrecipitationProbability int     `json:"precipitation_probability"`
}

// Forecast bundles current conditions with the hourly and daily sequences
// and the resolved location metadata.
type Forecast struct {
	Latitude         float64  `json:"latitude"`
	Longitude        float64  `json:"longitude"`
	UTCOffsetSeconds int64    `json:"utc_offset_seconds"`
	Elevation        float64  `json:"elevation"`
	Current          Current  `json:"current"`
	Hourly           []Hourly `json:"hourly"`
	Daily            []Daily  `json:"daily"`
}

// Client calls the Open-Meteo forecast endpoint.
type Client struct {
	http *resty.Client
}

// NewClient creates a forecast client against the given base URL.
func NewClient(baseURL string) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader(constants.HeaderUserAgent, constants.UpstreamUserAgent).
		SetTimeout(constants.UpstreamTimeout)

	return &Client{http: client}
}

// Get fetches the full forecast bundle for a coordinate in one request.
func (client *Client) Get(ctx context.Context, latitude, longitude float64) (*Forecast, error) {
	response, err := client.http.R().
		SetContext(ctx).
		SetQueryParam("latitude", strconv.FormatFloat(latitude, 'f', -1, 64)).
		SetQueryParam("longitude", strconv.FormatFloat(longitude, 'f', -1, 64)).
		SetQueryParam("timezone", "auto").
		SetQueryParam("daily", dailyFields).
		SetQueryParam("hourly", hourlyFields).
		SetQueryParam("current", currentFields).
		Get("/v1/forecast")

	if err != nil {
		return nil, apperr.Upstream("Weather lookup failed", err)
	}
	if response.StatusCode() != http.StatusOK {
		return nil, apperr.Upstream("Weather lookup failed", fmt.Errorf("weather: unexpected status %d", response.StatusCode()))
	}

	return parseForecast(response.Body())
}

// parseForecast normalizes the raw Open-Meteo payload.
func parseForecast(payload []byte) (*Forecast, error) {
	root := gjson.ParseBytes(payload)

	// ── 1. Location Metadata ──────────────────────────────────────────────

	forecast := &Forecast{}
	for _, field := range []struct {
		path string
		into func(gjson.Result)
	}{
		{"latitude", func(r gjson.Result) { forecast.Latitude = r.Float() }},
		{"longitude", func(r gjson.Result) { forecast.Longitude = r.Float() }},
		{"utc_offset_seconds", func(r gjson.Result) { forecast.UTCOffsetSeconds = r.Int() }},
		{"elevation", func(r gjson.Result) { forecast.Elevation = r.Float() }},
	} {
		value := root.Get(field.path)
		if !value.Exists() {
			return nil, shapeError(field.path)
		}
		field.into(value)
	}

	// ── 2. Current Conditions ─────────────────────────────────────────────

	current := root.Get("current")
	if !current.Exists() {
		return nil, shapeError("current")
	}
	for _, path := range []string{"time", "weather_code", "temperature_2m", "apparent_temperature", "relative_humidity_2m", "precipitation"} {
		if !current.Get(path).Exists() {
			return nil, shapeError("current." + path)
		}
	}
	forecast.Current = Current{
		Time:                current.Get("time").String(),
		WeatherCode:         current.Get("weather_code").String(),
		Temperature:         current.Get("temperature_2m").Float(),
		ApparentTemperature: current.Get("apparent_temperature").Float(),
		RelativeHumidity:    int(current.Get("relative_humidity_2m").Int()),
		Precipitation:       current.Get("precipitation").Float(),
	}

	// ── 3. Hourly Sequence ────────────────────────────────────────────────

	hourlyArrays, err := parallelArrays(root.Get("hourly"), "hourly", []string{
		"time", "temperature_2m", "apparent_temperature", "relative_humidity_2m",
		"cloud_cover", "weather_code", "wind_speed_10m", "precipitation_probability",
	})
	if err != nil {
		return nil, err
	}

	count := len(hourlyArrays["time"])
	forecast.Hourly = make([]Hourly, 0, count)
	for i := 0; i < count; i++ {
		forecast.Hourly = append(forecast.Hourly, Hourly{
			Time:                     hourlyArrays["time"][i].String(),
			Temperature:              hourlyArrays["temperature_2m"][i].Float(),
			ApparentTemperature:      hourlyArrays["apparent_temperature"][i].Float(),
			RelativeHumidity:         int(hourlyArrays["relative_humidity_2m"][i].Int()),
			CloudCover:               int(hourlyArrays["cloud_cover"][i].Int()),
			WeatherCode:              hourlyArrays["weather_code"][i].String(),
			WindSpeed:                hourlyArrays["wind_speed_10m"][i].Float(),
			PrecipitationProbability: int(hourlyArrays["precipitation_probability"][i].Int()),
		})
	}

	// ── 4. Daily Sequence ─────────────────────────────────────────────────

	dailyArrays, err := parallelArrays(root.Get("daily"), "daily", []string{
		"time", "weather_code", "temperature_2m_min", "temperature_2m_max",
		"sunrise", "sunset", "rain_sum", "snowfall_sum", "precipitation_probability_mean",
	})
	if err != nil {
		return nil, err
	}

	count = len(dailyArrays["time"])
	forecast.Daily = make([]Daily, 0, count)
	for i := 0; i < count; i++ {
		forecast.Daily = append(forecast.Daily, Daily{
			Date:                     dailyArrays["time"][i].String(),
			WeatherCode:              dailyArrays["weather_code"][i].String(),
			TemperatureMin:           dailyArrays["temperature_2m_min"][i].Float(),
			TemperatureMax:           dailyArrays["temperature_2m_max"][i].Float(),
			Sunrise:                  dailyArrays["sunrise"][i].String(),
			Sunset:                   dailyArrays["sunset"][i].String(),
			RainSum:                  dailyArrays["rain_sum"][i].Float(),
			SnowfallSum:              dailyArrays["snowfall_sum"][i].Float(),
			PrecipitationProbability: int(dailyArrays["precipitation_probability_mean"][i].Int()),
		})
	}

	return forecast, nil
}

// parallelArrays extracts the named arrays from a block and verifies they
// all exist and share one length.
func parallelArrays(block gjson.Result, blockName string, fields []string) (map[string][]gjson.Result, error) {
	if !block.Exists() {
		return nil, shapeError(blockName)
	}

	arrays := make(map[string][]gjson.Result, len(fields))
	expected := -1
	for _, field := range fields {
		array := block.Get(field)
		if !array.Exists() || !array.IsArray() {
			return nil, shapeError(blockName + "." + field)
		}
		values := array.Array()
		if expected == -1 {
			expected = len(values)
		} else if len(values) != expected {
			return nil, apperr.Upstream("Weather data has an unexpected shape",
				fmt.Errorf("weather: %s.%s has %d entries, want %d", blockName, field, len(values), expected))
		}
		arrays[field] = values
	}

	return arrays, nil
}

func shapeError(path string) error {
	return apperr.Upstream("Weather data has an unexpected shape", fmt.Errorf("weather: missing field %q", path))
}
