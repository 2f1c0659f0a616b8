package crontab

import "fmt"

// SyncError reports a crontab that could not be read or installed, or whose
// plan block is malformed. It is never retried.
type SyncError struct {
	Op     string // "read", "install" or "locate"
	Reason string
	Err    error
}

// Error реализует интерфейс error
func (e *SyncError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("crontab %s: %s: %v", e.Op, e.Reason, e.Err)
	}
	return fmt.Sprintf("crontab %s: %s", e.Op, e.Reason)
}

// Unwrap returns the underlying error, if any.
func (e *SyncError) Unwrap() error {
	return e.Err
}
