// Copyright (c) 2026 Tripmesh. All rights reserved.
// Author: dev@tripmesh.app

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: JWT issuer and token lifetimes.
  - Upstream APIs: default base URLs for third-party services.

Using this package ensures magic strings and magic numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "tripmesh-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	// Upstream adapter calls block the handling worker, so this must exceed
	// the adapters' client timeout.
	DefaultWriteTimeout = 35 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "tripmesh.app"

	// AccessTokenTTL is how long an issued access token stays valid.
	AccessTokenTTL = 1 * time.Hour

	// ResetTokenTTL is how long a password reset token stays valid.
	ResetTokenTTL = 15 * time.Minute
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderUserAgent     = "User-Agent"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldStatus  = "status"
	FieldChecks  = "checks"
	FieldMessage = "message"
)

// # Upstream APIs

const (
	// NominatimBaseURL is the OpenStreetMap geocoding search endpoint.
	NominatimBaseURL = "https://nominatim.openstreetmap.org"

	// OverpassBaseURL is the Overpass points-of-interest query endpoint.
	OverpassBaseURL = "https://overpass-api.de"

	// OpenMeteoBaseURL is the Open-Meteo forecast endpoint.
	OpenMeteoBaseURL = "https://api.open-meteo.com"

	// UpstreamUserAgent identifies Tripmesh to the OSM services, which
	// require a descriptive User-Agent for fair-use tracking.
	UpstreamUserAgent = "Tripmesh/1.0"

	// UpstreamTimeout is the client-level deadline for one adapter call.
	// Adapters never retry, so this is the full budget for the request.
	UpstreamTimeout = 25 * time.Second
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixResetToken = "auth:reset_token:"
)
