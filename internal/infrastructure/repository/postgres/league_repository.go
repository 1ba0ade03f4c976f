package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/match-stats/internal/domain/league"
	qb "github.com/riskibarqy/match-stats/internal/platform/querybuilder"
)

type leagueTableModel struct {
	ID   int64  `db:"league_id"`
	Name string `db:"league_name"`
}

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) ListObserved(ctx context.Context) ([]league.League, error) {
	query, args, err := qb.Select("league_id", "league_name").Distinct().
		From("matches").
		OrderBy("league_id", "league_name").
		ToSQL()
	if err != nil {
		return nil, wrapError("build select observed leagues query", err)
	}

	var rows []leagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, wrapError("select observed leagues", err)
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, league.League{ID: row.ID, Name: row.Name})
	}
	return out, nil
}
