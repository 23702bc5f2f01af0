package match

import (
	"context"

	"github.com/adityaverma/cricsync/internal/domain/venue"
)

// Unit is the set of writes belonging to one upstream match record. All of
// them commit or roll back together; a unit failure must not poison the rest
// of the run.
type Unit interface {
	// ResolveTeam finds or creates a team by display name and returns its
	// synthetic id. Calling it again with the same name returns the same id
	// and writes nothing.
	ResolveTeam(ctx context.Context, name string) (int64, error)

	// ResolveVenue finds or creates a venue by ground name. Attributes are
	// applied on the creation path only.
	ResolveVenue(ctx context.Context, v venue.Venue) (int64, error)

	// InsertMatch writes the match row. A row with the same id already in
	// place wins; no error, no update.
	InsertMatch(ctx context.Context, m Match) error

	// UpsertScore inserts or overwrites the per-team score for the match.
	UpsertScore(ctx context.Context, s Score) error

	Commit() error
	Rollback() error
}

// Store hands out per-match units of work.
type Store interface {
	BeginUnit(ctx context.Context) (Unit, error)
}

// RunTotals summarizes what a run left behind, for the completion notice.
type RunTotals struct {
	Teams   int64
	Venues  int64
	Matches int64
	Scores  int64
}

// AnalyticsRepository serves the read queries behind the dashboards and the
// post-run summary.
type AnalyticsRepository interface {
	Totals(ctx context.Context) (RunTotals, error)
	ListSummaries(ctx context.Context, limit int) ([]Summary, error)
	VenueUsage(ctx context.Context, limit int) ([]VenueUsage, error)
}

// Summary is one match joined with its venue and team scorelines.
type Summary struct {
	MatchID     int64
	Description string
	VenueName   *string
	TeamName    *string
	Runs        *int
	Wickets     *int
	Overs       *string
}

// VenueUsage counts matches hosted per venue.
type VenueUsage struct {
	VenueName  string
	City       string
	MatchCount int64
}
