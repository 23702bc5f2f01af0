package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/adityaverma/cricsync/internal/domain/match"
	"github.com/adityaverma/cricsync/internal/domain/venue"
)

// IngestStore is an in-memory stand-in for the Postgres store. Units stage
// their writes and apply them on Commit, so a failed unit leaves no trace.
type IngestStore struct {
	mu sync.Mutex

	nextTeamID  int64
	nextVenueID int64

	teamIDs      map[string]int64
	venueIDs     map[string]int64
	venues       map[int64]venue.Venue
	matches      map[int64]match.Match
	scores       map[string]match.Score
	FailCommit   map[int64]bool
	FailInsertID int64
}

func NewIngestStore() *IngestStore {
	return &IngestStore{
		nextTeamID:  1,
		nextVenueID: 1,
		teamIDs:     map[string]int64{},
		venueIDs:    map[string]int64{},
		venues:      map[int64]venue.Venue{},
		matches:     map[int64]match.Match{},
		scores:      map[string]match.Score{},
		FailCommit:  map[int64]bool{},
	}
}

func (s *IngestStore) BeginUnit(ctx context.Context) (match.Unit, error) {
	return &ingestUnit{store: s}, nil
}

// TeamID reports the id assigned to a committed team name, or zero.
func (s *IngestStore) TeamID(name string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.teamIDs[name]
}

// VenueByName returns a committed venue row.
func (s *IngestStore) VenueByName(name string) (venue.Venue, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.venueIDs[name]
	if !ok {
		return venue.Venue{}, false
	}
	return s.venues[id], true
}

// MatchByID returns a committed match row.
func (s *IngestStore) MatchByID(id int64) (match.Match, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.matches[id]
	return m, ok
}

// ScoreFor returns a committed score row.
func (s *IngestStore) ScoreFor(matchID, teamID int64) (match.Score, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	score, ok := s.scores[scoreKey(matchID, teamID)]
	return score, ok
}

// Counts reports committed row counts per table.
func (s *IngestStore) Counts() match.RunTotals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return match.RunTotals{
		Teams:   int64(len(s.teamIDs)),
		Venues:  int64(len(s.venueIDs)),
		Matches: int64(len(s.matches)),
		Scores:  int64(len(s.scores)),
	}
}

type ingestUnit struct {
	store *IngestStore

	stagedTeams  []string
	stagedVenues []venue.Venue
	stagedMatch  []match.Match
	stagedScores []match.Score
	done         bool
}

func (u *ingestUnit) ResolveTeam(ctx context.Context, name string) (int64, error) {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	if id, ok := u.store.teamIDs[name]; ok {
		return id, nil
	}
	for _, staged := range u.stagedTeams {
		if staged == name {
			return u.store.peekTeamID(name, u.stagedTeams), nil
		}
	}
	u.stagedTeams = append(u.stagedTeams, name)
	return u.store.peekTeamID(name, u.stagedTeams), nil
}

func (u *ingestUnit) ResolveVenue(ctx context.Context, v venue.Venue) (int64, error) {
	v = v.WithDefaults()

	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	if id, ok := u.store.venueIDs[v.Name]; ok {
		return id, nil
	}
	for idx, staged := range u.stagedVenues {
		if staged.Name == v.Name {
			return u.store.nextVenueID + int64(idx), nil
		}
	}
	u.stagedVenues = append(u.stagedVenues, v)
	return u.store.nextVenueID + int64(len(u.stagedVenues)-1), nil
}

func (u *ingestUnit) InsertMatch(ctx context.Context, m match.Match) error {
	if u.store.FailInsertID != 0 && u.store.FailInsertID == m.ID {
		return fmt.Errorf("insert match id=%d: forced failure", m.ID)
	}
	u.stagedMatch = append(u.stagedMatch, m)
	return nil
}

func (u *ingestUnit) UpsertScore(ctx context.Context, s match.Score) error {
	u.stagedScores = append(u.stagedScores, s)
	return nil
}

func (u *ingestUnit) Commit() error {
	if u.done {
		return fmt.Errorf("unit already finished")
	}
	u.done = true

	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	for _, m := range u.stagedMatch {
		if u.store.FailCommit[m.ID] {
			return fmt.Errorf("commit unit match_id=%d: forced failure", m.ID)
		}
	}

	for _, name := range u.stagedTeams {
		if _, ok := u.store.teamIDs[name]; ok {
			continue
		}
		u.store.teamIDs[name] = u.store.nextTeamID
		u.store.nextTeamID++
	}
	for _, v := range u.stagedVenues {
		if _, ok := u.store.venueIDs[v.Name]; ok {
			continue
		}
		v.ID = u.store.nextVenueID
		u.store.venueIDs[v.Name] = v.ID
		u.store.venues[v.ID] = v
		u.store.nextVenueID++
	}
	for _, m := range u.stagedMatch {
		if _, ok := u.store.matches[m.ID]; ok {
			continue
		}
		u.store.matches[m.ID] = m
	}
	for _, s := range u.stagedScores {
		u.store.scores[scoreKey(s.MatchID, s.TeamID)] = s
	}

	return nil
}

func (u *ingestUnit) Rollback() error {
	u.done = true
	u.stagedTeams = nil
	u.stagedVenues = nil
	u.stagedMatch = nil
	u.stagedScores = nil
	return nil
}

// peekTeamID predicts the id a staged team will get at commit. Caller holds
// the store lock.
func (s *IngestStore) peekTeamID(name string, staged []string) int64 {
	offset := int64(0)
	for _, candidate := range staged {
		if _, ok := s.teamIDs[candidate]; ok {
			continue
		}
		if candidate == name {
			return s.nextTeamID + offset
		}
		offset++
	}
	return s.nextTeamID + offset
}

func scoreKey(matchID, teamID int64) string {
	return fmt.Sprintf("%d:%d", matchID, teamID)
}
