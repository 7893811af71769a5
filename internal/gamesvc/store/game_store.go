package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/avvvet/ternarii-services/internal/gamesvc/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type GameStore struct {
	db *pgxpool.Pool
}

func NewGameStore(db *pgxpool.Pool) *GameStore {
	return &GameStore{db: db}
}

const gameColumns = `id, player_id, stage_id, first_input_random_number, first_next_input_random_number, is_over, creation_time`

func scanGame(row pgx.Row) (*models.Game, error) {
	game := &models.Game{}
	err := row.Scan(
		&game.ID,
		&game.PlayerID,
		&game.StageID,
		&game.FirstInputRandomNumber,
		&game.FirstNextInputRandomNumber,
		&game.IsOver,
		&game.CreationTime,
	)
	if err != nil {
		return nil, err
	}
	return game, nil
}

func (s *GameStore) GetGameByID(ctx context.Context, gameID int64) (*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM unverified_game WHERE id = $1`

	game, err := scanGame(s.db.QueryRow(ctx, query, gameID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Game not found
		}
		return nil, fmt.Errorf("failed to get game by ID: %w", err)
	}

	return game, nil
}

// GetActiveGame returns the unfinished game of a player on a stage, or nil, nil.
func (s *GameStore) GetActiveGame(ctx context.Context, playerID int64, stageID int) (*models.Game, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM unverified_game
		WHERE player_id = $1 AND stage_id = $2 AND NOT is_over
		LIMIT 1`

	game, err := scanGame(s.db.QueryRow(ctx, query, playerID, stageID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active game: %w", err)
	}

	return game, nil
}

// CreateActiveGame inserts game as unfinished and fills in its id and creation
// time. It reports false, without error, when the player already has an
// unfinished game on that stage (unique_active_game).
func (s *GameStore) CreateActiveGame(ctx context.Context, game *models.Game) (bool, error) {
	const query = `
INSERT INTO unverified_game (player_id, stage_id, first_input_random_number, first_next_input_random_number, is_over, creation_time)
VALUES ($1, $2, $3, $4, FALSE, NOW())
ON CONFLICT (player_id, stage_id) WHERE NOT is_over DO NOTHING
RETURNING id, creation_time;
`
	err := s.db.QueryRow(ctx, query,
		game.PlayerID,
		game.StageID,
		game.FirstInputRandomNumber,
		game.FirstNextInputRandomNumber,
	).Scan(&game.ID, &game.CreationTime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create game: %w", err)
	}

	game.IsOver = false
	return true, nil
}

// MarkGameOver flips is_over to true. It never flips it back.
func (s *GameStore) MarkGameOver(ctx context.Context, gameID int64) error {
	_, err := s.db.Exec(ctx, `UPDATE unverified_game SET is_over = TRUE WHERE id = $1 AND NOT is_over`, gameID)
	if err != nil {
		return fmt.Errorf("failed to finish game: %w", err)
	}
	return nil
}
