package postgres

import (
	"database/sql"
	"time"
)

type teamInsertModel struct {
	Name string `db:"team_name"`
}

type venueInsertModel struct {
	Name     string        `db:"venue_name"`
	City     string        `db:"city"`
	Country  string        `db:"country"`
	Capacity sql.NullInt64 `db:"capacity"`
}

type matchInsertModel struct {
	ID          int64         `db:"match_id"`
	Description string        `db:"match_description"`
	MatchDate   time.Time     `db:"match_date"`
	VenueID     sql.NullInt64 `db:"venue_id"`
}

type matchScoreInsertModel struct {
	MatchID int64  `db:"match_id"`
	TeamID  int64  `db:"team_id"`
	Runs    int    `db:"runs"`
	Wickets int    `db:"wickets"`
	Overs   string `db:"overs"`
}

type playerInsertModel struct {
	Name    string `db:"name"`
	Matches int    `db:"matches"`
}

type playerStatInsertModel struct {
	PlayerID int64   `db:"player_id"`
	Format   string  `db:"format"`
	StatType string  `db:"stat_type"`
	Value    float64 `db:"value"`
}

type summaryRowModel struct {
	MatchID     int64          `db:"match_id"`
	Description string         `db:"match_description"`
	VenueName   sql.NullString `db:"venue_name"`
	TeamName    sql.NullString `db:"team_name"`
	Runs        sql.NullInt64  `db:"runs"`
	Wickets     sql.NullInt64  `db:"wickets"`
	Overs       sql.NullString `db:"overs"`
}

type venueUsageRowModel struct {
	VenueName  string `db:"venue_name"`
	City       string `db:"city"`
	MatchCount int64  `db:"match_count"`
}
