package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/adityaverma/cricsync/internal/domain/playerstats"
	qb "github.com/adityaverma/cricsync/internal/platform/querybuilder"
)

type PlayerStatsRepository struct {
	db *sqlx.DB
}

func NewPlayerStatsRepository(db *sqlx.DB) *PlayerStatsRepository {
	return &PlayerStatsRepository{db: db}
}

// ResolvePlayer finds or creates a player by display name. A zero match count
// never clobbers a known one; a positive count refreshes the row.
func (r *PlayerStatsRepository) ResolvePlayer(ctx context.Context, name string, matches int) (int64, error) {
	insertModel := playerInsertModel{
		Name:    name,
		Matches: matches,
	}

	query, args, err := qb.InsertModel("players", insertModel, `ON CONFLICT (name)
DO UPDATE SET matches = COALESCE(NULLIF(EXCLUDED.matches, 0), players.matches)
RETURNING id`)
	if err != nil {
		return 0, fmt.Errorf("build upsert player query: %w", err)
	}

	var id int64
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("upsert player name=%s: %w", name, err)
	}

	return id, nil
}

func (r *PlayerStatsRepository) UpsertBattingStat(ctx context.Context, stat playerstats.TopStat) error {
	return r.upsertStat(ctx, "batting_stats", stat)
}

func (r *PlayerStatsRepository) UpsertBowlingStat(ctx context.Context, stat playerstats.TopStat) error {
	return r.upsertStat(ctx, "bowling_stats", stat)
}

func (r *PlayerStatsRepository) upsertStat(ctx context.Context, table string, stat playerstats.TopStat) error {
	insertModel := playerStatInsertModel{
		PlayerID: stat.PlayerID,
		Format:   stat.Format,
		StatType: stat.StatType,
		Value:    stat.Value,
	}

	query, args, err := qb.InsertModel(table, insertModel, `ON CONFLICT (player_id, format, stat_type)
DO UPDATE SET
    value = EXCLUDED.value,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert %s query: %w", table, err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert %s player_id=%d stat_type=%s: %w", table, stat.PlayerID, stat.StatType, err)
	}

	return nil
}
