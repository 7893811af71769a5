package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avvvet/ternarii-services/internal/gamesvc/models"
)

const gameColumns = `id, player_id, stage_id, first_input_random_number, first_next_input_random_number, is_over, creation_time`

type GameStore struct {
	db *sql.DB
}

func NewGameStore(db *sql.DB) *GameStore {
	return &GameStore{db: db}
}

func scanGame(row rowScanner) (*models.Game, error) {
	game := &models.Game{}
	var created int64
	err := row.Scan(
		&game.ID,
		&game.PlayerID,
		&game.StageID,
		&game.FirstInputRandomNumber,
		&game.FirstNextInputRandomNumber,
		&game.IsOver,
		&created,
	)
	if err != nil {
		return nil, err
	}
	game.CreationTime = fromMillis(created)
	return game, nil
}

func (s *GameStore) GetGameByID(ctx context.Context, gameID int64) (*models.Game, error) {
	game, err := scanGame(s.db.QueryRowContext(ctx,
		"SELECT "+gameColumns+" FROM unverified_game WHERE id = ?", gameID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game by ID: %w", err)
	}
	return game, nil
}

func (s *GameStore) GetActiveGame(ctx context.Context, playerID int64, stageID int) (*models.Game, error) {
	game, err := scanGame(s.db.QueryRowContext(ctx,
		"SELECT "+gameColumns+" FROM unverified_game WHERE player_id = ? AND stage_id = ? AND is_over = 0 LIMIT 1",
		playerID, stageID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active game: %w", err)
	}
	return game, nil
}

// CreateActiveGame mirrors the Postgres store: false, nil means another
// unfinished game already holds the (player, stage) slot.
func (s *GameStore) CreateActiveGame(ctx context.Context, game *models.Game) (bool, error) {
	now := time.Now()
	err := s.db.QueryRowContext(ctx, `
INSERT INTO unverified_game (player_id, stage_id, first_input_random_number, first_next_input_random_number, is_over, creation_time)
VALUES (?, ?, ?, ?, 0, ?)
ON CONFLICT (player_id, stage_id) WHERE is_over = 0 DO NOTHING
RETURNING id`,
		game.PlayerID,
		game.StageID,
		game.FirstInputRandomNumber,
		game.FirstNextInputRandomNumber,
		toMillis(now),
	).Scan(&game.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create game: %w", err)
	}

	game.IsOver = false
	game.CreationTime = fromMillis(toMillis(now))
	return true, nil
}

func (s *GameStore) MarkGameOver(ctx context.Context, gameID int64) error {
	_, err := s.db.ExecContext(ctx, "UPDATE unverified_game SET is_over = 1 WHERE id = ? AND is_over = 0", gameID)
	if err != nil {
		return fmt.Errorf("failed to finish game: %w", err)
	}
	return nil
}
