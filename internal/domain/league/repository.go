package league

import "context"

// Repository projects leagues out of stored matches.
type Repository interface {
	// ListObserved returns distinct (id, name) pairs in first-seen order.
	ListObserved(ctx context.Context) ([]League, error)
}
