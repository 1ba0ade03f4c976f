package apifootball

// envelope is the wrapper every API-Football v3 endpoint returns. Errors is an empty array
// on success and an object keyed by field on failure.
type envelope[T any] struct {
	Get      string `json:"get"`
	Errors   any    `json:"errors"`
	Results  int    `json:"results"`
	Paging   paging `json:"paging"`
	Response []T    `json:"response"`
}

type paging struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

type fixtureItem struct {
	Fixture fixtureInfo `json:"fixture"`
	League  leagueInfo  `json:"league"`
	Teams   struct {
		Home teamInfo `json:"home"`
		Away teamInfo `json:"away"`
	} `json:"teams"`
	Goals struct {
		Home *int `json:"home"`
		Away *int `json:"away"`
	} `json:"goals"`
}

type fixtureInfo struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	Timestamp int64  `json:"timestamp"`
	Status    struct {
		Long  string `json:"long"`
		Short string `json:"short"`
	} `json:"status"`
}

type leagueInfo struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Season int    `json:"season"`
}

type teamInfo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type teamStatisticsItem struct {
	Team       teamInfo        `json:"team"`
	Statistics []statisticItem `json:"statistics"`
}

// statisticItem values arrive as a number, a percentage string such as "55%", or null.
type statisticItem struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
}
