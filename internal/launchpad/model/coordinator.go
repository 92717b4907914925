package model

import "time"

// QueueStatus is the lifecycle state of a lock request.
type QueueStatus string

var (
	QueueWaiting    QueueStatus = "waiting"
	QueueProcessing QueueStatus = "processing"
	QueueCompleted  QueueStatus = "completed"
	QueueTimeout    QueueStatus = "timeout"
)

// Terminal reports whether the status can no longer change.
func (s QueueStatus) Terminal() bool {
	return s == QueueCompleted || s == QueueTimeout
}

// LockEntry is the lease held on a resource key. At most one exists per key.
type LockEntry struct {
	ResourceKey string
	HolderID    string
	AcquiredAt  time.Time
	ExpiresAt   time.Time
}

// Expired reports whether the lease has lapsed at now.
func (e LockEntry) Expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

// QueueEntry is a request waiting for, holding, or done with a resource key.
type QueueEntry struct {
	RequestID   string
	ResourceKey string
	RequestedAt time.Time
	Status      QueueStatus
	ExpiresAt   time.Time
	UpdatedAt   time.Time
}

// Live reports whether the entry still competes for the resource at now.
func (e QueueEntry) Live(now time.Time) bool {
	return e.Status == QueueWaiting && now.Before(e.ExpiresAt)
}
