package memory

import (
	"context"
	"testing"

	"github.com/adityaverma/cricsync/internal/domain/match"
	"github.com/adityaverma/cricsync/internal/domain/venue"
)

func TestIngestStore_CommitAppliesStagedWrites(t *testing.T) {
	store := NewIngestStore()
	ctx := context.Background()

	unit, err := store.BeginUnit(ctx)
	if err != nil {
		t.Fatalf("begin unit: %v", err)
	}

	teamID, err := unit.ResolveTeam(ctx, "India")
	if err != nil {
		t.Fatalf("resolve team: %v", err)
	}
	again, err := unit.ResolveTeam(ctx, "India")
	if err != nil {
		t.Fatalf("resolve team again: %v", err)
	}
	if teamID != again {
		t.Fatalf("same name must resolve to same id: %d vs %d", teamID, again)
	}

	venueID, err := unit.ResolveVenue(ctx, venue.Venue{Name: "Eden Gardens", City: "Kolkata"})
	if err != nil {
		t.Fatalf("resolve venue: %v", err)
	}
	if err := unit.InsertMatch(ctx, match.Match{ID: 7, Description: "1st ODI", VenueID: &venueID}); err != nil {
		t.Fatalf("insert match: %v", err)
	}

	if store.TeamID("India") != 0 {
		t.Fatalf("staged team must not be visible before commit")
	}
	if err := unit.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	if store.TeamID("India") != teamID {
		t.Fatalf("committed team id mismatch")
	}
	v, ok := store.VenueByName("Eden Gardens")
	if !ok || v.ID != venueID {
		t.Fatalf("committed venue missing or id mismatch: %+v", v)
	}
	if v.Country != venue.UnknownCountry {
		t.Fatalf("country sentinel not applied: %q", v.Country)
	}
}

func TestIngestStore_RollbackDiscardsStagedWrites(t *testing.T) {
	store := NewIngestStore()
	ctx := context.Background()

	unit, err := store.BeginUnit(ctx)
	if err != nil {
		t.Fatalf("begin unit: %v", err)
	}
	if _, err := unit.ResolveTeam(ctx, "England"); err != nil {
		t.Fatalf("resolve team: %v", err)
	}
	if err := unit.InsertMatch(ctx, match.Match{ID: 8, Description: "2nd ODI"}); err != nil {
		t.Fatalf("insert match: %v", err)
	}
	if err := unit.Rollback(); err != nil {
		t.Fatalf("rollback: %v", err)
	}

	counts := store.Counts()
	if counts.Teams != 0 || counts.Matches != 0 {
		t.Fatalf("rollback must discard staged writes: %+v", counts)
	}
}

func TestIngestStore_MatchInsertIsFirstWriteWins(t *testing.T) {
	store := NewIngestStore()
	ctx := context.Background()

	for _, desc := range []string{"A", "B"} {
		unit, err := store.BeginUnit(ctx)
		if err != nil {
			t.Fatalf("begin unit: %v", err)
		}
		if err := unit.InsertMatch(ctx, match.Match{ID: 1001, Description: desc}); err != nil {
			t.Fatalf("insert match: %v", err)
		}
		if err := unit.Commit(); err != nil {
			t.Fatalf("commit: %v", err)
		}
	}

	m, ok := store.MatchByID(1001)
	if !ok || m.Description != "A" {
		t.Fatalf("expected first description to win, got %+v", m)
	}
}

func TestIngestStore_ScoreUpsertIsLastWriteWins(t *testing.T) {
	store := NewIngestStore()
	ctx := context.Background()

	for _, runs := range []int{50, 120, 215} {
		unit, err := store.BeginUnit(ctx)
		if err != nil {
			t.Fatalf("begin unit: %v", err)
		}
		if err := unit.UpsertScore(ctx, match.Score{MatchID: 1, TeamID: 2, Runs: runs, Overs: "10.0"}); err != nil {
			t.Fatalf("upsert score: %v", err)
		}
		if err := unit.Commit(); err != nil {
			t.Fatalf("commit: %v", err)
		}
	}

	score, ok := store.ScoreFor(1, 2)
	if !ok || score.Runs != 215 {
		t.Fatalf("expected latest runs to win, got %+v", score)
	}
}
