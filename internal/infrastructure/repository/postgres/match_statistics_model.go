package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/match-stats/internal/domain/matchstats"
)

type matchStatisticsTableModel struct {
	ID                 int64         `db:"id,readonly"`
	MatchID            int64         `db:"match_id"`
	HomeCornerKicks    int           `db:"home_corner_kicks"`
	AwayCornerKicks    int           `db:"away_corner_kicks"`
	HomeFouls          int           `db:"home_fouls"`
	AwayFouls          int           `db:"away_fouls"`
	HomeYellowCards    int           `db:"home_yellow_cards"`
	AwayYellowCards    int           `db:"away_yellow_cards"`
	HomeRedCards       int           `db:"home_red_cards"`
	AwayRedCards       int           `db:"away_red_cards"`
	HomePossession     sql.NullInt64 `db:"home_possession"`
	AwayPossession     sql.NullInt64 `db:"away_possession"`
	HomeShots          sql.NullInt64 `db:"home_shots"`
	AwayShots          sql.NullInt64 `db:"away_shots"`
	HomePassesAccurate sql.NullInt64 `db:"home_passes_accurate"`
	AwayPassesAccurate sql.NullInt64 `db:"away_passes_accurate"`
	LastUpdated        time.Time     `db:"last_updated,readonly"`
}

func matchStatisticsModelFromDomain(item matchstats.Statistics) matchStatisticsTableModel {
	return matchStatisticsTableModel{
		MatchID:            item.MatchID,
		HomeCornerKicks:    item.HomeCornerKicks,
		AwayCornerKicks:    item.AwayCornerKicks,
		HomeFouls:          item.HomeFouls,
		AwayFouls:          item.AwayFouls,
		HomeYellowCards:    item.HomeYellowCards,
		AwayYellowCards:    item.AwayYellowCards,
		HomeRedCards:       item.HomeRedCards,
		AwayRedCards:       item.AwayRedCards,
		HomePossession:     ptrToNullInt(item.HomePossession),
		AwayPossession:     ptrToNullInt(item.AwayPossession),
		HomeShots:          ptrToNullInt(item.HomeShots),
		AwayShots:          ptrToNullInt(item.AwayShots),
		HomePassesAccurate: ptrToNullInt(item.HomePassesAccurate),
		AwayPassesAccurate: ptrToNullInt(item.AwayPassesAccurate),
	}
}

func (m matchStatisticsTableModel) toDomain() matchstats.Statistics {
	return matchstats.Statistics{
		ID:                 m.ID,
		MatchID:            m.MatchID,
		HomeCornerKicks:    m.HomeCornerKicks,
		AwayCornerKicks:    m.AwayCornerKicks,
		HomeFouls:          m.HomeFouls,
		AwayFouls:          m.AwayFouls,
		HomeYellowCards:    m.HomeYellowCards,
		AwayYellowCards:    m.AwayYellowCards,
		HomeRedCards:       m.HomeRedCards,
		AwayRedCards:       m.AwayRedCards,
		HomePossession:     nullIntToPtr(m.HomePossession),
		AwayPossession:     nullIntToPtr(m.AwayPossession),
		HomeShots:          nullIntToPtr(m.HomeShots),
		AwayShots:          nullIntToPtr(m.AwayShots),
		HomePassesAccurate: nullIntToPtr(m.HomePassesAccurate),
		AwayPassesAccurate: nullIntToPtr(m.AwayPassesAccurate),
		LastUpdated:        m.LastUpdated,
	}
}
