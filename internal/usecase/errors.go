package usecase

import (
	"errors"

	"github.com/riskibarqy/match-stats/internal/domain/storage"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrUpstreamIngestion     = errors.New("upstream ingestion failed")

	// ErrStoreUnavailable is returned when the backing store cannot be reached.
	ErrStoreUnavailable = storage.ErrUnavailable
)
