package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/match-stats/internal/domain/match"
	qb "github.com/riskibarqy/match-stats/internal/platform/querybuilder"
)

// upsertMatch keys on fixture_id. Teams, league, season and kickoff of a stored match are
// immutable; only status and score move as a fixture progresses.
func upsertMatch(item match.Match) *qb.UpsertBuilder {
	return qb.Upsert("matches", matchModelFromDomain(item)).
		OnConflict("fixture_id").
		Update("status", "home_score", "away_score").
		Touch("updated_at")
}

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) Upsert(ctx context.Context, item match.Match) error {
	query, args, err := upsertMatch(item).ToSQL()
	if err != nil {
		return wrapError("build upsert match query", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return wrapError("upsert match", err)
	}
	return nil
}

func (r *MatchRepository) List(ctx context.Context, filter match.Filter) ([]match.Match, error) {
	query, args, err := buildListMatchesQuery(filter)
	if err != nil {
		return nil, wrapError("build select matches query", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, wrapError("select matches", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, id int64) (match.Match, bool, error) {
	return r.getOne(ctx, "get match by id", qb.Eq("id", id))
}

func (r *MatchRepository) GetByFixtureID(ctx context.Context, fixtureID int64) (match.Match, bool, error) {
	return r.getOne(ctx, "get match by fixture id", qb.Eq("fixture_id", fixtureID))
}

func (r *MatchRepository) getOne(ctx context.Context, op string, cond qb.Condition) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").Where(cond).ToSQL()
	if err != nil {
		return match.Match{}, false, wrapError("build "+op+" query", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, wrapError(op, err)
	}
	return row.toDomain(), true, nil
}

func buildListMatchesQuery(filter match.Filter) (string, []any, error) {
	conds := make([]qb.Condition, 0, 4)
	if filter.TeamID > 0 {
		conds = append(conds, qb.Or(
			qb.Eq("home_team_id", filter.TeamID),
			qb.Eq("away_team_id", filter.TeamID),
		))
	}
	if filter.LeagueID > 0 {
		conds = append(conds, qb.Eq("league_id", filter.LeagueID))
	}
	if !filter.StartDate.IsZero() {
		conds = append(conds, qb.Gte("match_date", filter.StartDate.UTC()))
	}
	if !filter.EndDate.IsZero() {
		conds = append(conds, qb.Lte("match_date", filter.EndDate.UTC()))
	}

	return qb.Select("*").From("matches").
		Where(conds...).
		OrderBy("match_date DESC", "id DESC").
		Page(filter.Limit, filter.Offset).
		ToSQL()
}
