package clientdata

import "time"

// TTL constants for the cache tables.
// These are added to time.Now() when storing to calculate expires_at.
const (
	// The upstream catalog changes when AMCs register or retire schemes,
	// which is far less often than daily.
	TTLCatalog = 12 * time.Hour

	// Scheme NAV histories gain one point per trading day.
	TTLScheme = 12 * time.Hour
)
