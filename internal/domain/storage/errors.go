package storage

import "errors"

// ErrUnavailable reports that the record store is not configured or cannot be reached.
var ErrUnavailable = errors.New("storage unavailable")
