package matchstats

import "context"

// Repository describes match statistics persistence needs from use cases.
type Repository interface {
	// Upsert inserts by match id, or replaces every counter of the existing row.
	Upsert(ctx context.Context, item Statistics) error
	GetByMatchID(ctx context.Context, matchID int64) (Statistics, bool, error)
	// ListByMatchIDs returns the first statistics row per match id. Absent matches have no key.
	ListByMatchIDs(ctx context.Context, matchIDs []int64) (map[int64]Statistics, error)
}
