package usecase

import "context"

// InningsScore is one team's first-innings totals as reported upstream. Runs
// stays nil when the provider omitted it, which the pipeline treats as "no
// scoreline yet".
type InningsScore struct {
	Runs    *int
	Wickets int
	Overs   string
}

// LiveMatchEntry is one match flattened out of the provider's nested live
// feed. No filtering has happened yet; entries with unusable ids or blank
// team names are still present so the run report can count them.
type LiveMatchEntry struct {
	MatchID     int64
	MatchType   string
	SeriesName  string
	Description string
	Team1Name   string
	Team2Name   string
	VenueGround string
	VenueCity   string
	Team1Score  *InningsScore
	Team2Score  *InningsScore
}

// ScoreProvider is the live-feed port the pipeline driver pulls from.
type ScoreProvider interface {
	FetchLiveMatches(ctx context.Context) ([]LiveMatchEntry, error)
}

// StatCategory groups leaderboard stat types, e.g. "Batting" holding
// mostRuns and highestScore.
type StatCategory struct {
	Category string
	Types    []StatType
}

type StatType struct {
	Value  string
	Header string
}

// LeaderboardRow is one player line from a top-stats page. HasValue is false
// when the primary stat column did not parse; such rows are skipped.
type LeaderboardRow struct {
	PlayerName string
	Value      float64
	HasValue   bool
	Matches    int
}

// StatsProvider is the leaderboard port the top-stats loader pulls from.
type StatsProvider interface {
	FetchStatsCatalog(ctx context.Context) ([]StatCategory, error)
	FetchLeaderboard(ctx context.Context, statsType, formatType string) ([]LeaderboardRow, error)
}
