package postgres

import (
	"database/sql"
	"testing"
	"time"

	qb "github.com/adityaverma/cricsync/internal/platform/querybuilder"
)

// The column names below are consumed by the dashboard and admin surfaces
// outside this service; the insert models must keep matching the migrated
// schema exactly.
func TestInsertModelsMatchSchemaColumns(t *testing.T) {
	t.Run("teams", func(t *testing.T) {
		query, args, err := qb.InsertModel("teams", teamInsertModel{Name: "India"}, "ON CONFLICT (team_name) DO NOTHING RETURNING team_id")
		if err != nil {
			t.Fatalf("build team insert: %v", err)
		}
		want := "INSERT INTO teams (team_name) VALUES ($1) ON CONFLICT (team_name) DO NOTHING RETURNING team_id"
		if query != want {
			t.Fatalf("team insert = %q, want %q", query, want)
		}
		if len(args) != 1 || args[0] != "India" {
			t.Fatalf("unexpected args: %v", args)
		}
	})

	t.Run("venues", func(t *testing.T) {
		model := venueInsertModel{Name: "MCG", City: "Melbourne", Country: "Australia"}
		query, _, err := qb.InsertModel("venues", model, "ON CONFLICT (venue_name) DO NOTHING RETURNING venue_id")
		if err != nil {
			t.Fatalf("build venue insert: %v", err)
		}
		want := "INSERT INTO venues (venue_name, city, country, capacity) VALUES ($1, $2, $3, $4) ON CONFLICT (venue_name) DO NOTHING RETURNING venue_id"
		if query != want {
			t.Fatalf("venue insert = %q, want %q", query, want)
		}
	})

	t.Run("matches", func(t *testing.T) {
		model := matchInsertModel{ID: 1001, Description: "1st Test", MatchDate: time.Now(), VenueID: sql.NullInt64{}}
		query, _, err := qb.InsertModel("matches", model, "ON CONFLICT (match_id) DO NOTHING")
		if err != nil {
			t.Fatalf("build match insert: %v", err)
		}
		want := "INSERT INTO matches (match_id, match_description, match_date, venue_id) VALUES ($1, $2, $3, $4) ON CONFLICT (match_id) DO NOTHING"
		if query != want {
			t.Fatalf("match insert = %q, want %q", query, want)
		}
	})

	t.Run("match_scores", func(t *testing.T) {
		model := matchScoreInsertModel{MatchID: 1001, TeamID: 1, Runs: 250, Wickets: 4, Overs: "40.2"}
		query, _, err := qb.InsertModel("match_scores", model, "ON CONFLICT (match_id, team_id) DO NOTHING")
		if err != nil {
			t.Fatalf("build score insert: %v", err)
		}
		want := "INSERT INTO match_scores (match_id, team_id, runs, wickets, overs) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (match_id, team_id) DO NOTHING"
		if query != want {
			t.Fatalf("score insert = %q, want %q", query, want)
		}
	})
}
