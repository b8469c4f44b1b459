package api

import "time"

// Lifetime of an issued access token.
const TokenLifetime = 20 * time.Minute

// Bounds for the session listing page size.
const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)
