package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/match-stats/internal/domain/team"
)

// Home pairs first, then away pairs; the caller merges duplicates by id.
const listObservedTeamsQuery = `SELECT id, name FROM (
	SELECT DISTINCT home_team_id AS id, home_team_name AS name, 0 AS side FROM matches
	UNION
	SELECT DISTINCT away_team_id AS id, away_team_name AS name, 1 AS side FROM matches
) pairs ORDER BY side, id, name`

type teamTableModel struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) ListObserved(ctx context.Context) ([]team.Team, error) {
	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, listObservedTeamsQuery); err != nil {
		return nil, wrapError("select observed teams", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, team.Team{ID: row.ID, Name: row.Name})
	}
	return out, nil
}
