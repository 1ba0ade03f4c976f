package match

import "context"

// Repository describes match persistence needs from use cases.
type Repository interface {
	// Upsert inserts by fixture id, or updates status, scores and updated_at of the existing row.
	Upsert(ctx context.Context, item Match) error
	List(ctx context.Context, filter Filter) ([]Match, error)
	GetByID(ctx context.Context, id int64) (Match, bool, error)
	GetByFixtureID(ctx context.Context, fixtureID int64) (Match, bool, error)
}
