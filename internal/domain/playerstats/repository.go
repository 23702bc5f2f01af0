package playerstats

import "context"

// Repository persists player rankings. ResolvePlayer follows the same
// conditional-insert-with-fallback contract as team resolution; the stat
// upserts are last-write-wins on (player_id, format, stat_type).
type Repository interface {
	ResolvePlayer(ctx context.Context, name string, matches int) (int64, error)
	UpsertBattingStat(ctx context.Context, stat TopStat) error
	UpsertBowlingStat(ctx context.Context, stat TopStat) error
}
