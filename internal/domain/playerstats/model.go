package playerstats

import "strings"

const (
	CategoryBatting = "batting"
	CategoryBowling = "bowling"
)

// Player mirrors the teams table pattern: a name-keyed row created on first
// reference, with a refreshed career match count.
type Player struct {
	ID      int64
	Name    string
	Matches int
}

// TopStat is one leaderboard value for a player in one format, e.g.
// (format=odi, statType=mostRuns, value=13430).
type TopStat struct {
	PlayerID int64   `validate:"gt=0"`
	Format   string  `validate:"required"`
	StatType string  `validate:"required"`
	Value    float64 `validate:"gte=0"`
	Matches  int     `validate:"gte=0"`
}

// NormalizeCategory maps upstream category labels onto the two stat tables.
func NormalizeCategory(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	switch {
	case strings.Contains(value, "bowl"):
		return CategoryBowling
	default:
		return CategoryBatting
	}
}
