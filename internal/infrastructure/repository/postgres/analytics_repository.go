package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/adityaverma/cricsync/internal/domain/match"
	qb "github.com/adityaverma/cricsync/internal/platform/querybuilder"
)

type AnalyticsRepository struct {
	db *sqlx.DB
}

func NewAnalyticsRepository(db *sqlx.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

func (r *AnalyticsRepository) Totals(ctx context.Context) (match.RunTotals, error) {
	const query = `SELECT
    (SELECT COUNT(*) FROM teams) AS teams,
    (SELECT COUNT(*) FROM venues) AS venues,
    (SELECT COUNT(*) FROM matches) AS matches,
    (SELECT COUNT(*) FROM match_scores) AS scores`

	var row struct {
		Teams   int64 `db:"teams"`
		Venues  int64 `db:"venues"`
		Matches int64 `db:"matches"`
		Scores  int64 `db:"scores"`
	}
	if err := r.db.GetContext(ctx, &row, query); err != nil {
		return match.RunTotals{}, fmt.Errorf("select table totals: %w", err)
	}

	return match.RunTotals{
		Teams:   row.Teams,
		Venues:  row.Venues,
		Matches: row.Matches,
		Scores:  row.Scores,
	}, nil
}

// ListSummaries joins matches with their venue and scorelines, most recent
// matches first. Matches without scores still appear, with null scorelines.
func (r *AnalyticsRepository) ListSummaries(ctx context.Context, limit int) ([]match.Summary, error) {
	query, args, err := qb.Select(
		"m.match_id AS match_id",
		"m.match_description AS match_description",
		"v.venue_name AS venue_name",
		"t.team_name AS team_name",
		"ms.runs AS runs",
		"ms.wickets AS wickets",
		"ms.overs::text AS overs",
	).
		From("matches m LEFT JOIN venues v ON v.venue_id = m.venue_id LEFT JOIN match_scores ms ON ms.match_id = m.match_id LEFT JOIN teams t ON t.team_id = ms.team_id").
		OrderBy("m.match_date DESC, m.match_id DESC, t.team_name ASC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select match summaries query: %w", err)
	}

	var rows []summaryRowModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select match summaries: %w", err)
	}

	out := make([]match.Summary, 0, len(rows))
	for _, row := range rows {
		overs := row.Overs
		if overs.Valid {
			overs.String = formatOversLiteral(overs.String)
		}
		out = append(out, match.Summary{
			MatchID:     row.MatchID,
			Description: row.Description,
			VenueName:   nullStringToPtr(row.VenueName),
			TeamName:    nullStringToPtr(row.TeamName),
			Runs:        nullInt64ToIntPtr(row.Runs),
			Wickets:     nullInt64ToIntPtr(row.Wickets),
			Overs:       nullStringToPtr(overs),
		})
	}

	return out, nil
}

func (r *AnalyticsRepository) VenueUsage(ctx context.Context, limit int) ([]match.VenueUsage, error) {
	query, args, err := qb.Select(
		"v.venue_name AS venue_name",
		"v.city AS city",
		"COUNT(m.match_id) AS match_count",
	).
		From("venues v JOIN matches m ON m.venue_id = v.venue_id").
		GroupBy("v.venue_name", "v.city").
		OrderBy("match_count DESC, venue_name ASC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select venue usage query: %w", err)
	}

	var rows []venueUsageRowModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select venue usage: %w", err)
	}

	out := make([]match.VenueUsage, 0, len(rows))
	for _, row := range rows {
		out = append(out, match.VenueUsage{
			VenueName:  row.VenueName,
			City:       row.City,
			MatchCount: row.MatchCount,
		})
	}

	return out, nil
}
