package team

import "context"

// Repository projects teams out of stored matches.
type Repository interface {
	// ListObserved returns distinct home (id, name) pairs followed by distinct away pairs.
	// The same id may appear more than once when a club was stored under different names.
	ListObserved(ctx context.Context) ([]Team, error)
}
