package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/panjf2000/ants/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/adityaverma/cricsync/internal/domain/playerstats"
	"github.com/adityaverma/cricsync/internal/platform/logging"
)

// TopStatsReport summarizes one leaderboard refresh.
type TopStatsReport struct {
	Pages      int
	PageErrors int
	Rows       int
	RowErrors  int
}

// TopStatsService refreshes career leaderboards: it discovers the stat types
// from the provider catalog, fetches every (stat, format) page concurrently,
// and persists the rows through a single writer.
type TopStatsService struct {
	provider StatsProvider
	repo     playerstats.Repository
	formats  []string
	workers  int
	validate *validator.Validate
	logger   *logging.Logger
}

func NewTopStatsService(
	provider StatsProvider,
	repo playerstats.Repository,
	formats []string,
	workers int,
	logger *logging.Logger,
) *TopStatsService {
	if logger == nil {
		logger = logging.Default()
	}
	if workers < 1 {
		workers = 1
	}
	return &TopStatsService{
		provider: provider,
		repo:     repo,
		formats:  append([]string(nil), formats...),
		workers:  workers,
		validate: validator.New(),
		logger:   logger,
	}
}

type leaderboardPage struct {
	category string
	statType string
	format   string
	rows     []LeaderboardRow
	err      error
}

// Run fetches and persists every leaderboard page. Page fetches run on a
// bounded worker pool; persistence stays sequential so the resolver sees each
// player name at most once in flight.
func (s *TopStatsService) Run(ctx context.Context) (TopStatsReport, error) {
	ctx, span := tracer().Start(ctx, "topstats.run")
	defer span.End()

	report := TopStatsReport{}

	catalog, err := s.provider.FetchStatsCatalog(ctx)
	if err != nil {
		return report, fmt.Errorf("fetch stats catalog: %w", err)
	}

	type job struct {
		category string
		statType string
		format   string
	}
	jobs := make([]job, 0, 32)
	for _, category := range catalog {
		for _, statType := range category.Types {
			for _, format := range s.formats {
				jobs = append(jobs, job{category: category.Category, statType: statType.Value, format: format})
			}
		}
	}
	s.logger.InfoContext(ctx, "refreshing leaderboards", "pages", len(jobs), "workers", s.workers)

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return report, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu    sync.Mutex
		wg    sync.WaitGroup
		pages = make([]leaderboardPage, 0, len(jobs))
	)
	for _, item := range jobs {
		item := item
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			rows, fetchErr := s.provider.FetchLeaderboard(ctx, item.statType, item.format)
			mu.Lock()
			pages = append(pages, leaderboardPage{
				category: item.category,
				statType: item.statType,
				format:   item.format,
				rows:     rows,
				err:      fetchErr,
			})
			mu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			pages = append(pages, leaderboardPage{
				category: item.category,
				statType: item.statType,
				format:   item.format,
				err:      fmt.Errorf("submit fetch job: %w", submitErr),
			})
			mu.Unlock()
		}
	}
	wg.Wait()

	for _, page := range pages {
		if page.err != nil {
			report.PageErrors++
			s.logger.WarnContext(ctx, "leaderboard page failed",
				"stat_type", page.statType, "format", page.format, "error", page.err)
			continue
		}
		report.Pages++
		s.persistPage(ctx, page, &report)
	}

	span.SetAttributes(
		attribute.Int("topstats.pages", report.Pages),
		attribute.Int("topstats.page_errors", report.PageErrors),
		attribute.Int("topstats.rows", report.Rows),
		attribute.Int("topstats.row_errors", report.RowErrors),
	)
	s.logger.InfoContext(ctx, "leaderboard refresh finished",
		"pages", report.Pages,
		"page_errors", report.PageErrors,
		"rows", report.Rows,
		"row_errors", report.RowErrors,
	)

	return report, nil
}

func (s *TopStatsService) persistPage(ctx context.Context, page leaderboardPage, report *TopStatsReport) {
	category := playerstats.NormalizeCategory(page.category)

	for _, row := range page.rows {
		if row.PlayerName == "" || !row.HasValue {
			continue
		}

		playerID, err := s.repo.ResolvePlayer(ctx, row.PlayerName, row.Matches)
		if err != nil {
			report.RowErrors++
			s.logger.WarnContext(ctx, "player resolution failed",
				"player", row.PlayerName, "stat_type", page.statType, "error", err)
			continue
		}

		stat := playerstats.TopStat{
			PlayerID: playerID,
			Format:   page.format,
			StatType: page.statType,
			Value:    row.Value,
			Matches:  row.Matches,
		}
		if err := s.validate.Struct(stat); err != nil {
			report.RowErrors++
			s.logger.WarnContext(ctx, "leaderboard row rejected",
				"player", row.PlayerName, "stat_type", page.statType, "error", err)
			continue
		}

		if category == playerstats.CategoryBowling {
			err = s.repo.UpsertBowlingStat(ctx, stat)
		} else {
			err = s.repo.UpsertBattingStat(ctx, stat)
		}
		if err != nil {
			report.RowErrors++
			s.logger.WarnContext(ctx, "leaderboard row write failed",
				"player", row.PlayerName, "stat_type", page.statType, "error", err)
			continue
		}
		report.Rows++
	}
}
