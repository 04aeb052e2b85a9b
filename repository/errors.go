package repository

import "errors"

// ErrNotFound is wrapped by repository methods when a record does not exist,
// so callers can distinguish a missing record from a connectivity failure.
var ErrNotFound = errors.New("record not found")
