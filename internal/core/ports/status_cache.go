package ports

import (
	"context"
	"time"
)

// TrackingSnapshot is the cached answer for one tracking lookup.
type TrackingSnapshot struct {
	TrackingNo  string    `json:"trackingNo"`
	Status      string    `json:"status"`
	ProgressPct float64   `json:"progressPct"`
	Linear      bool      `json:"linear"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// StatusCache is a read-through cache in front of tracking lookups. Misses and
// cache errors fall back to storage; the cache is never the source of truth.
type StatusCache interface {
	// Get returns the cached snapshot for a tracking number. The second return
	// value is false on a miss.
	Get(ctx context.Context, trackingNo string) (TrackingSnapshot, bool, error)

	// Set stores a snapshot with the cache's configured TTL.
	Set(ctx context.Context, snapshot TrackingSnapshot) error

	// Invalidate drops the snapshot for a tracking number after a transition.
	Invalidate(ctx context.Context, trackingNo string) error
}
