package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avvvet/ternarii-services/internal/gamesvc/models"
)

type StatsStore struct {
	db *sql.DB
}

func NewStatsStore(db *sql.DB) *StatsStore {
	return &StatsStore{db: db}
}

func (s *StatsStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *StatsStore) GetStats(ctx context.Context) (*models.Stats, error) {
	var st models.Stats
	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM player),
			(SELECT COUNT(*) FROM unverified_game),
			(SELECT COUNT(*) FROM unverified_game WHERE is_over = 0),
			(SELECT COUNT(*) FROM unverified_game_move)`,
	).Scan(&st.Players, &st.Games, &st.ActiveGames, &st.Moves)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	return &st, nil
}
