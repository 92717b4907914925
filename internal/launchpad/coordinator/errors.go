package coordinator

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownRequest is returned for request ids the store has never seen or already evicted.
	ErrUnknownRequest = errors.New("unknown lock request")
	// ErrNotHolder is returned when a request renews a lease it does not hold.
	ErrNotHolder = errors.New("request does not hold the lock")
	// ErrLeaseLost is the cause of a WithLock context cancelled because renewal found the
	// lease held by someone else.
	ErrLeaseLost = errors.New("lock lease lost")
	// ErrBusy matches every BusyError.
	ErrBusy = errors.New("resource busy")
	// ErrTimedOut is returned when a bounded wait ends before the lock is granted.
	ErrTimedOut = errors.New("lock wait timed out")
)

// BusyError reports contention on a resource key.
type BusyError struct {
	ResourceKey   string
	QueuePosition int
}

func (e *BusyError) Error() string {
	return fmt.Sprintf("resource %s busy, queued at position %d", e.ResourceKey, e.QueuePosition)
}

func (e *BusyError) Is(target error) bool {
	return target == ErrBusy
}
