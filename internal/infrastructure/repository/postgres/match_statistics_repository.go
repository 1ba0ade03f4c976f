package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/match-stats/internal/domain/matchstats"
	qb "github.com/riskibarqy/match-stats/internal/platform/querybuilder"
)

// upsertMatchStatistics replaces the whole statistics row of a match.
func upsertMatchStatistics(item matchstats.Statistics) *qb.UpsertBuilder {
	return qb.Upsert("match_statistics", matchStatisticsModelFromDomain(item)).
		OnConflict("match_id").
		UpdateRest().
		Touch("last_updated")
}

type MatchStatisticsRepository struct {
	db *sqlx.DB
}

func NewMatchStatisticsRepository(db *sqlx.DB) *MatchStatisticsRepository {
	return &MatchStatisticsRepository{db: db}
}

func (r *MatchStatisticsRepository) Upsert(ctx context.Context, item matchstats.Statistics) error {
	query, args, err := upsertMatchStatistics(item).ToSQL()
	if err != nil {
		return wrapError("build upsert match statistics query", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return wrapError("upsert match statistics", err)
	}
	return nil
}

func (r *MatchStatisticsRepository) GetByMatchID(ctx context.Context, matchID int64) (matchstats.Statistics, bool, error) {
	query, args, err := qb.Select("*").From("match_statistics").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("id").
		Page(1, 0).
		ToSQL()
	if err != nil {
		return matchstats.Statistics{}, false, wrapError("build get match statistics query", err)
	}

	var row matchStatisticsTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return matchstats.Statistics{}, false, nil
		}
		return matchstats.Statistics{}, false, wrapError("get match statistics", err)
	}
	return row.toDomain(), true, nil
}

func (r *MatchStatisticsRepository) ListByMatchIDs(ctx context.Context, matchIDs []int64) (map[int64]matchstats.Statistics, error) {
	out := make(map[int64]matchstats.Statistics, len(matchIDs))
	if len(matchIDs) == 0 {
		return out, nil
	}

	query, args, err := qb.Select("*").From("match_statistics").
		Where(qb.Any("match_id", pq.Array(matchIDs))).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, wrapError("build list match statistics query", err)
	}

	var rows []matchStatisticsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, wrapError("list match statistics", err)
	}

	for _, row := range rows {
		if _, seen := out[row.MatchID]; seen {
			continue
		}
		out[row.MatchID] = row.toDomain()
	}
	return out, nil
}
