package matchstats

import (
	"fmt"
	"time"
)

// Statistics holds the per-side counters recorded for one match.
type Statistics struct {
	ID                 int64
	MatchID            int64
	HomeCornerKicks    int
	AwayCornerKicks    int
	HomeFouls          int
	AwayFouls          int
	HomeYellowCards    int
	AwayYellowCards    int
	HomeRedCards       int
	AwayRedCards       int
	HomePossession     *int
	AwayPossession     *int
	HomeShots          *int
	AwayShots          *int
	HomePassesAccurate *int
	AwayPassesAccurate *int
	LastUpdated        time.Time
}

func (s Statistics) Validate() error {
	if s.MatchID <= 0 {
		return fmt.Errorf("match id is required")
	}

	counters := []struct {
		name  string
		value int
	}{
		{"home corner kicks", s.HomeCornerKicks},
		{"away corner kicks", s.AwayCornerKicks},
		{"home fouls", s.HomeFouls},
		{"away fouls", s.AwayFouls},
		{"home yellow cards", s.HomeYellowCards},
		{"away yellow cards", s.AwayYellowCards},
		{"home red cards", s.HomeRedCards},
		{"away red cards", s.AwayRedCards},
	}
	for _, c := range counters {
		if c.value < 0 {
			return fmt.Errorf("%s must be >= 0", c.name)
		}
	}

	if err := validatePercentage("home possession", s.HomePossession); err != nil {
		return err
	}
	if err := validatePercentage("away possession", s.AwayPossession); err != nil {
		return err
	}

	optional := []struct {
		name  string
		value *int
	}{
		{"home shots", s.HomeShots},
		{"away shots", s.AwayShots},
		{"home passes accurate", s.HomePassesAccurate},
		{"away passes accurate", s.AwayPassesAccurate},
	}
	for _, o := range optional {
		if o.value != nil && *o.value < 0 {
			return fmt.Errorf("%s must be >= 0", o.name)
		}
	}

	return nil
}

// Side is the home or away projection of a statistics row.
type Side struct {
	CornerKicks    int
	Fouls          int
	YellowCards    int
	RedCards       int
	Possession     *int
	Shots          *int
	PassesAccurate *int
}

// ForSide returns the counters belonging to the home side when home is true, otherwise the away side.
func (s Statistics) ForSide(home bool) Side {
	if home {
		return Side{
			CornerKicks:    s.HomeCornerKicks,
			Fouls:          s.HomeFouls,
			YellowCards:    s.HomeYellowCards,
			RedCards:       s.HomeRedCards,
			Possession:     s.HomePossession,
			Shots:          s.HomeShots,
			PassesAccurate: s.HomePassesAccurate,
		}
	}
	return Side{
		CornerKicks:    s.AwayCornerKicks,
		Fouls:          s.AwayFouls,
		YellowCards:    s.AwayYellowCards,
		RedCards:       s.AwayRedCards,
		Possession:     s.AwayPossession,
		Shots:          s.AwayShots,
		PassesAccurate: s.AwayPassesAccurate,
	}
}

func validatePercentage(name string, value *int) error {
	if value == nil {
		return nil
	}
	if *value < 0 || *value > 100 {
		return fmt.Errorf("%s must be between 0 and 100", name)
	}
	return nil
}
