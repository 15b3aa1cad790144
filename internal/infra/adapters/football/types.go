package football

// Wire types for the API-Football v3 response envelope. Only the fields the
// bot consumes are declared.

type envelope[T any] struct {
	Errors   any `json:"errors"`
	Paging   paging
	Response []T `json:"response"`
}

type paging struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

type leagueEntry struct {
	League struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
		Logo string `json:"logo"`
	} `json:"league"`
	Country struct {
		Name string `json:"name"`
	} `json:"country"`
}

type teamEntry struct {
	Team struct {
		ID      int64  `json:"id"`
		Name    string `json:"name"`
		Country string `json:"country"`
		Logo    string `json:"logo"`
	} `json:"team"`
}

type fixtureEntry struct {
	Fixture struct {
		ID      int64  `json:"id"`
		Date    string `json:"date"`
		Referee string `json:"referee"`
		Venue   struct {
			Name string `json:"name"`
		} `json:"venue"`
		Status struct {
			Long string `json:"long"`
		} `json:"status"`
	} `json:"fixture"`
	League struct {
		ID    int64  `json:"id"`
		Name  string `json:"name"`
		Round string `json:"round"`
	} `json:"league"`
	Teams struct {
		Home fixtureTeam `json:"home"`
		Away fixtureTeam `json:"away"`
	} `json:"teams"`
	Goals struct {
		Home *int `json:"home"`
		Away *int `json:"away"`
	} `json:"goals"`
	Score struct {
		Penalty struct {
			Home *int `json:"home"`
			Away *int `json:"away"`
		} `json:"penalty"`
	} `json:"score"`
}

type fixtureTeam struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo"`
}
