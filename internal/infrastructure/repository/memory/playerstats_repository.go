package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/adityaverma/cricsync/internal/domain/playerstats"
)

// PlayerStatsRepository is the in-memory counterpart of the Postgres player
// stats repository, used by the loader tests.
type PlayerStatsRepository struct {
	mu sync.Mutex

	nextID  int64
	players map[string]*playerstats.Player
	batting map[string]playerstats.TopStat
	bowling map[string]playerstats.TopStat

	FailPlayerName string
}

func NewPlayerStatsRepository() *PlayerStatsRepository {
	return &PlayerStatsRepository{
		nextID:  1,
		players: map[string]*playerstats.Player{},
		batting: map[string]playerstats.TopStat{},
		bowling: map[string]playerstats.TopStat{},
	}
}

func (r *PlayerStatsRepository) ResolvePlayer(ctx context.Context, name string, matches int) (int64, error) {
	if name == r.FailPlayerName && name != "" {
		return 0, fmt.Errorf("upsert player name=%s: forced failure", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.players[name]; ok {
		if matches > 0 {
			existing.Matches = matches
		}
		return existing.ID, nil
	}

	player := &playerstats.Player{ID: r.nextID, Name: name, Matches: matches}
	r.players[name] = player
	r.nextID++
	return player.ID, nil
}

func (r *PlayerStatsRepository) UpsertBattingStat(ctx context.Context, stat playerstats.TopStat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batting[statKey(stat)] = stat
	return nil
}

func (r *PlayerStatsRepository) UpsertBowlingStat(ctx context.Context, stat playerstats.TopStat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bowling[statKey(stat)] = stat
	return nil
}

// Player returns a stored player row by name.
func (r *PlayerStatsRepository) Player(name string) (playerstats.Player, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	player, ok := r.players[name]
	if !ok {
		return playerstats.Player{}, false
	}
	return *player, true
}

// BattingStat returns a stored batting stat row.
func (r *PlayerStatsRepository) BattingStat(playerID int64, format, statType string) (playerstats.TopStat, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stat, ok := r.batting[fmt.Sprintf("%d:%s:%s", playerID, format, statType)]
	return stat, ok
}

// BowlingStat returns a stored bowling stat row.
func (r *PlayerStatsRepository) BowlingStat(playerID int64, format, statType string) (playerstats.TopStat, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stat, ok := r.bowling[fmt.Sprintf("%d:%s:%s", playerID, format, statType)]
	return stat, ok
}

// StatCounts reports stored batting and bowling row counts.
func (r *PlayerStatsRepository) StatCounts() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.batting), len(r.bowling)
}

func statKey(stat playerstats.TopStat) string {
	return fmt.Sprintf("%d:%s:%s", stat.PlayerID, stat.Format, stat.StatType)
}
