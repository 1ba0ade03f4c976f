package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/match-stats/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo matches into an empty database. It is a no-op once the
// matches table holds any row.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM matches`); err != nil {
		return wrapError("count matches for bootstrap seed", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return wrapError("begin seed tx", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	statsByFixture := memory.SeedStatistics()
	for _, item := range memory.SeedMatches() {
		query, args, err := upsertMatch(item).Returning("id").ToSQL()
		if err != nil {
			return fmt.Errorf("build seed match %d query: %w", item.FixtureID, err)
		}

		var matchID int64
		if err := tx.GetContext(ctx, &matchID, query, args...); err != nil {
			return wrapError(fmt.Sprintf("insert seed match %d", item.FixtureID), err)
		}

		stats, ok := statsByFixture[item.FixtureID]
		if !ok {
			continue
		}
		stats.MatchID = matchID
		query, args, err = upsertMatchStatistics(stats).ToSQL()
		if err != nil {
			return fmt.Errorf("build seed statistics %d query: %w", item.FixtureID, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return wrapError(fmt.Sprintf("insert seed statistics %d", item.FixtureID), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return wrapError("commit seed tx", err)
	}
	return nil
}
