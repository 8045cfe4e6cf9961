package models

import "time"

// Plan is the owner's subscription as maintained by the billing side.
type Plan struct {
	OwnerID     string
	LimitBytes  int64
	DeviceLimit int
	ExpiresAt   time.Time
}

// Usage is the owner's current stored byte count.
type Usage struct {
	OwnerID   string
	UsedBytes int64
}

// QuotaSnapshot is the per-request view combining Plan and Usage. It is
// never cached.
type QuotaSnapshot struct {
	LimitBytes  int64
	UsedBytes   int64
	DeviceLimit int
	ExpiresAt   time.Time
}

// Remaining returns the bytes still available under the plan.
func (q QuotaSnapshot) Remaining() int64 {
	return q.LimitBytes - q.UsedBytes
}

// Device is a client device registered by the owner.
type Device struct {
	ID      string
	OwnerID string
	Active  bool
}
