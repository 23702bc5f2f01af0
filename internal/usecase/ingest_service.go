package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"

	"github.com/adityaverma/cricsync/internal/domain/match"
	"github.com/adityaverma/cricsync/internal/domain/team"
	"github.com/adityaverma/cricsync/internal/domain/venue"
	"github.com/adityaverma/cricsync/internal/platform/logging"
)

// Skip reasons surfaced in the run report and the per-entry logs.
const (
	skipReasonNoID          = "missing_match_id"
	skipReasonNoDescription = "missing_description"
)

// RunReport summarizes one ingestion run.
type RunReport struct {
	Fetched int
	// Ingested counts entries whose unit committed.
	Ingested int
	// Skipped counts entries dropped before any write was attempted.
	Skipped int
	// Failed counts entries whose unit rolled back. A failed entry never
	// blocks the remaining entries.
	Failed int
	// Scores counts score rows written across all committed units.
	Scores int
	// SkipReasons tallies why entries were skipped.
	SkipReasons map[string]int
}

// IngestService drives one end-to-end run: fetch the live feed, normalize
// each match entry, and persist it in its own unit of work.
type IngestService struct {
	provider  ScoreProvider
	store     match.Store
	analytics match.AnalyticsRepository
	validate  *validator.Validate
	logger    *logging.Logger
	now       func() time.Time
}

func NewIngestService(
	provider ScoreProvider,
	store match.Store,
	analytics match.AnalyticsRepository,
	logger *logging.Logger,
) *IngestService {
	if logger == nil {
		logger = logging.Default()
	}
	return &IngestService{
		provider:  provider,
		store:     store,
		analytics: analytics,
		validate:  validator.New(),
		logger:    logger,
		now:       time.Now,
	}
}

// Run executes one ingestion pass. The returned report is valid even when an
// error is returned alongside it; the error only covers failures that stopped
// the run outright, not per-entry ones.
func (s *IngestService) Run(ctx context.Context) (RunReport, error) {
	ctx, span := tracer().Start(ctx, "ingest.run")
	defer span.End()

	report := RunReport{SkipReasons: map[string]int{}}

	entries, err := s.provider.FetchLiveMatches(ctx)
	if err != nil {
		return report, fmt.Errorf("fetch live matches: %w", err)
	}
	report.Fetched = len(entries)
	s.logger.InfoContext(ctx, "live feed fetched", "entries", len(entries))

	for _, entry := range entries {
		if reason := skipReason(entry); reason != "" {
			report.Skipped++
			report.SkipReasons[reason]++
			s.logger.WarnContext(ctx, "skipping match entry", "match_id", entry.MatchID, "reason", reason)
			continue
		}

		scores, err := s.ingestOne(ctx, entry)
		if err != nil {
			report.Failed++
			s.logger.ErrorContext(ctx, "match entry failed", "match_id", entry.MatchID, "error", err)
			continue
		}
		report.Ingested++
		report.Scores += scores
	}

	span.SetAttributes(
		attribute.Int("ingest.fetched", report.Fetched),
		attribute.Int("ingest.ingested", report.Ingested),
		attribute.Int("ingest.skipped", report.Skipped),
		attribute.Int("ingest.failed", report.Failed),
	)

	s.logRunSummary(ctx, report)
	return report, nil
}

func skipReason(entry LiveMatchEntry) string {
	if entry.MatchID <= 0 {
		return skipReasonNoID
	}
	if strings.TrimSpace(entry.Description) == "" {
		return skipReasonNoDescription
	}
	return ""
}

// ingestOne writes everything belonging to one upstream match record inside
// one unit. Any error rolls the whole unit back.
func (s *IngestService) ingestOne(ctx context.Context, entry LiveMatchEntry) (int, error) {
	unit, err := s.store.BeginUnit(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = unit.Rollback()
	}()

	teamIDs := [2]int64{}
	for slot, name := range [2]string{entry.Team1Name, entry.Team2Name} {
		normalized := team.NormalizeName(name)
		if normalized == "" {
			continue
		}
		id, err := unit.ResolveTeam(ctx, normalized)
		if err != nil {
			return 0, err
		}
		teamIDs[slot] = id
	}

	var venueID *int64
	if ground := strings.TrimSpace(entry.VenueGround); ground != "" {
		id, err := unit.ResolveVenue(ctx, venue.Venue{Name: ground, City: entry.VenueCity})
		if err != nil {
			return 0, err
		}
		venueID = &id
	}

	row := match.Match{
		ID:          entry.MatchID,
		Description: composeDescription(entry.SeriesName, entry.Description),
		Date:        s.now().UTC().Truncate(24 * time.Hour),
		VenueID:     venueID,
	}
	if err := unit.InsertMatch(ctx, row); err != nil {
		return 0, err
	}

	written := 0
	for slot, innings := range [2]*InningsScore{entry.Team1Score, entry.Team2Score} {
		ok, err := s.upsertScore(ctx, unit, entry.MatchID, teamIDs[slot], innings)
		if err != nil {
			return 0, err
		}
		if ok {
			written++
		}
	}

	if err := unit.Commit(); err != nil {
		return 0, err
	}
	return written, nil
}

// upsertScore writes one team's scoreline. It reports false without error
// when the slot has nothing storable: no resolved team, no innings yet, or
// no runs value.
func (s *IngestService) upsertScore(ctx context.Context, unit match.Unit, matchID, teamID int64, innings *InningsScore) (bool, error) {
	if teamID == 0 || innings == nil || innings.Runs == nil {
		return false, nil
	}

	overs, err := match.ParseOvers(innings.Overs)
	if err != nil {
		s.logger.WarnContext(ctx, "dropping scoreline with malformed overs",
			"match_id", matchID, "team_id", teamID, "overs", innings.Overs)
		return false, nil
	}

	score := match.Score{
		MatchID: matchID,
		TeamID:  teamID,
		Runs:    *innings.Runs,
		Wickets: innings.Wickets,
		Overs:   overs,
	}
	if err := s.validate.Struct(score); err != nil {
		return false, fmt.Errorf("validate score match_id=%d team_id=%d: %w", matchID, teamID, err)
	}
	if err := unit.UpsertScore(ctx, score); err != nil {
		return false, err
	}
	return true, nil
}

func composeDescription(seriesName, matchDesc string) string {
	seriesName = strings.TrimSpace(seriesName)
	matchDesc = strings.TrimSpace(matchDesc)
	if seriesName == "" {
		return matchDesc
	}
	return seriesName + " - " + matchDesc
}

func (s *IngestService) logRunSummary(ctx context.Context, report RunReport) {
	fields := []any{
		"fetched", report.Fetched,
		"ingested", report.Ingested,
		"skipped", report.Skipped,
		"failed", report.Failed,
		"scores", report.Scores,
	}

	if s.analytics != nil {
		totals, err := s.analytics.Totals(ctx)
		if err != nil {
			s.logger.WarnContext(ctx, "table totals unavailable for run summary", "error", err)
		} else {
			fields = append(fields,
				"total_teams", totals.Teams,
				"total_venues", totals.Venues,
				"total_matches", totals.Matches,
				"total_scores", totals.Scores,
			)
		}
	}

	s.logger.InfoContext(ctx, "ingestion run finished", fields...)
}
