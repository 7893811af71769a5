package store

import (
	"context"
	"fmt"

	"github.com/avvvet/ternarii-services/internal/gamesvc/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StatsStore struct {
	db *pgxpool.Pool
}

func NewStatsStore(db *pgxpool.Pool) *StatsStore {
	return &StatsStore{db: db}
}

func (s *StatsStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *StatsStore) GetStats(ctx context.Context) (*models.Stats, error) {
	var st models.Stats
	err := s.db.QueryRow(ctx, `
        SELECT
            (SELECT COUNT(*) FROM player),
            (SELECT COUNT(*) FROM unverified_game),
            (SELECT COUNT(*) FROM unverified_game WHERE NOT is_over),
            (SELECT COUNT(*) FROM unverified_game_move)
    `).Scan(&st.Players, &st.Games, &st.ActiveGames, &st.Moves)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	return &st, nil
}
