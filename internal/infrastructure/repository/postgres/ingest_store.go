package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/adityaverma/cricsync/internal/domain/match"
	"github.com/adityaverma/cricsync/internal/domain/venue"
	qb "github.com/adityaverma/cricsync/internal/platform/querybuilder"
)

// IngestStore hands out one transaction per upstream match record.
type IngestStore struct {
	db *sqlx.DB
}

func NewIngestStore(db *sqlx.DB) *IngestStore {
	return &IngestStore{db: db}
}

func (s *IngestStore) BeginUnit(ctx context.Context) (match.Unit, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin ingest tx: %w", err)
	}
	return &ingestUnit{tx: tx}, nil
}

type ingestUnit struct {
	tx *sqlx.Tx
}

// ResolveTeam creates the team on first sight and returns the existing id on
// every later call. The conditional insert and the fallback select run in the
// same transaction, so a concurrent creator is observed at most once.
func (u *ingestUnit) ResolveTeam(ctx context.Context, name string) (int64, error) {
	query, args, err := qb.InsertModel("teams", teamInsertModel{Name: name}, "ON CONFLICT (team_name) DO NOTHING RETURNING team_id")
	if err != nil {
		return 0, fmt.Errorf("build insert team query: %w", err)
	}

	var id int64
	err = u.tx.GetContext(ctx, &id, query, args...)
	if err == nil {
		return id, nil
	}
	if !isNotFound(err) {
		return 0, fmt.Errorf("insert team name=%s: %w", name, err)
	}

	query, args, err = qb.Select("team_id").From("teams").Where(qb.Eq("team_name", name)).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build select team query: %w", err)
	}
	if err := u.tx.GetContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("select team name=%s: %w", name, err)
	}

	return id, nil
}

func (u *ingestUnit) ResolveVenue(ctx context.Context, v venue.Venue) (int64, error) {
	v = v.WithDefaults()
	insertModel := venueInsertModel{
		Name:     v.Name,
		City:     v.City,
		Country:  v.Country,
		Capacity: nullableInt(v.Capacity),
	}

	query, args, err := qb.InsertModel("venues", insertModel, "ON CONFLICT (venue_name) DO NOTHING RETURNING venue_id")
	if err != nil {
		return 0, fmt.Errorf("build insert venue query: %w", err)
	}

	var id int64
	err = u.tx.GetContext(ctx, &id, query, args...)
	if err == nil {
		return id, nil
	}
	if !isNotFound(err) {
		return 0, fmt.Errorf("insert venue name=%s: %w", v.Name, err)
	}

	query, args, err = qb.Select("venue_id").From("venues").Where(qb.Eq("venue_name", v.Name)).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build select venue query: %w", err)
	}
	if err := u.tx.GetContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("select venue name=%s: %w", v.Name, err)
	}

	return id, nil
}

// InsertMatch is first-write-wins: a row already present for the id stays
// exactly as it was.
func (u *ingestUnit) InsertMatch(ctx context.Context, m match.Match) error {
	insertModel := matchInsertModel{
		ID:          m.ID,
		Description: m.Description,
		MatchDate:   m.Date,
		VenueID:     nullableInt64(m.VenueID),
	}

	query, args, err := qb.InsertModel("matches", insertModel, "ON CONFLICT (match_id) DO NOTHING")
	if err != nil {
		return fmt.Errorf("build insert match query: %w", err)
	}
	if _, err := u.tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert match id=%d: %w", m.ID, err)
	}

	return nil
}

// UpsertScore is last-write-wins on (match_id, team_id), modeling a live
// scoreboard that only ever shows the latest totals.
func (u *ingestUnit) UpsertScore(ctx context.Context, s match.Score) error {
	insertModel := matchScoreInsertModel{
		MatchID: s.MatchID,
		TeamID:  s.TeamID,
		Runs:    s.Runs,
		Wickets: s.Wickets,
		Overs:   s.Overs.String(),
	}

	query, args, err := qb.InsertModel("match_scores", insertModel, `ON CONFLICT (match_id, team_id)
DO UPDATE SET
    runs = EXCLUDED.runs,
    wickets = EXCLUDED.wickets,
    overs = EXCLUDED.overs,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert score query: %w", err)
	}
	if _, err := u.tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert score match_id=%d team_id=%d: %w", s.MatchID, s.TeamID, err)
	}

	return nil
}

func (u *ingestUnit) Commit() error {
	if err := u.tx.Commit(); err != nil {
		return fmt.Errorf("commit ingest unit: %w", err)
	}
	return nil
}

func (u *ingestUnit) Rollback() error {
	return u.tx.Rollback()
}
