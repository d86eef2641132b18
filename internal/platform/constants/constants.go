// Copyright (c) 2026 Showcast. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Cache Taxonomy: Redis key prefixes for cached catalog responses.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "showcast-api"
	AppVersion = "0.1.0-dev"
)

// # Routing

const (
	// APIBasePath is the versioned prefix of every application route.
	APIBasePath = "/api/v1"

	// CatalogPageSize is the number of shows TVMaze returns on a full page.
	CatalogPageSize = 250
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the minimum duration before timing out writes of the
	// response. The effective value always outlasts the aggregation deadline by
	// [WriteTimeoutMargin].
	DefaultWriteTimeout = 150 * time.Second

	// WriteTimeoutMargin is kept between the aggregation deadline and the write timeout
	// so a page finishing at its deadline can still be written.
	WriteTimeoutMargin = 30 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for regular requests.
	GlobalRequestTimeout = 30 * time.Second

	// AggregateRequestTimeout is the floor of the catalog aggregation deadline.
	// The effective deadline is derived from the catalog allowance and cooldown.
	AggregateRequestTimeout = 2 * time.Minute

	// AggregateConcurrentPages is how many cold pages the aggregation deadline
	// budgets for at once, since they share one outbound allowance.
	AggregateConcurrentPages = 2

	// AggregateCooldownHeadroom is how many cooldown windows a page may wait out
	// within its deadline.
	AggregateCooldownHeadroom = 6

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 20.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 40

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldLinks   = "links"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldItems   = "items"
	FieldTotal   = "total"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # Pagination

const (
	// DefaultPageLimit is the archive page size when none is requested.
	DefaultPageLimit = 50

	// MaxPageLimit caps archive page sizes.
	MaxPageLimit = 250
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixPage = "showcast:page:"
	RedisPrefixShow = "showcast:show:"
	RedisPrefixCast = "showcast:cast:"
)
