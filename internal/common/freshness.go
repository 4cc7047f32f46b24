// Package common provides shared utilities for Finsight
package common

import "time"

// Default TTLs for cached market data components
const (
	FreshnessQuote   = 1 * time.Hour
	FreshnessHistory = 4 * time.Hour
)

// IsFresh returns true if the given timestamp is within the TTL
func IsFresh(fetched time.Time, ttl time.Duration) bool {
	if fetched.IsZero() {
		return false
	}
	return time.Since(fetched) < ttl
}
