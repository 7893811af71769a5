package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avvvet/ternarii-services/internal/gamesvc/apperr"
	"github.com/avvvet/ternarii-services/internal/gamesvc/models"
)

type MoveStore struct {
	db *sql.DB
}

func NewMoveStore(db *sql.DB) *MoveStore {
	return &MoveStore{db: db}
}

// AppendMove has the same contract as the Postgres store. The transaction is
// opened with BEGIN IMMEDIATE, which holds the database write lock from the
// ownership check through the insert.
func (s *MoveStore) AppendMove(ctx context.Context, playerID int64, m *models.Move) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin append move: %w", err)
	}
	defer tx.Rollback()

	var ownerID int64
	err = tx.QueryRowContext(ctx, "SELECT player_id FROM unverified_game WHERE id = ?", m.GameID).Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.New(apperr.NotFound, apperr.MsgGameNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to read game %d: %w", m.GameID, err)
	}
	if ownerID != playerID {
		return apperr.New(apperr.Forbidden, apperr.MsgGameNotOwned)
	}

	var expected int
	err = tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(idx) + 1, 0) FROM unverified_game_move WHERE game_id = ?",
		m.GameID,
	).Scan(&expected)
	if err != nil {
		return fmt.Errorf("failed to get next move index: %w", err)
	}
	if m.Idx != expected {
		return apperr.UnexpectedMoveIndex(expected, m.Idx)
	}

	now := time.Now()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO unverified_game_move (game_id, idx, time, column_offset, rotation, next_input_random_number)
		VALUES (?, ?, ?, ?, ?, ?)`,
		m.GameID, m.Idx, toMillis(now), m.ColumnOffset, m.Rotation, m.NextInputRandomNumber,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.UnexpectedMoveIndex(m.Idx+1, m.Idx)
		}
		return fmt.Errorf("failed to insert move: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit move: %w", err)
	}
	m.Time = fromMillis(toMillis(now))
	return nil
}

func (s *MoveStore) ListMoves(ctx context.Context, gameID int64) ([]*models.Move, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT game_id, idx, time, column_offset, rotation, next_input_random_number
		FROM unverified_game_move
		WHERE game_id = ?
		ORDER BY idx ASC`, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list moves: %w", err)
	}
	defer rows.Close()

	moves := make([]*models.Move, 0)
	for rows.Next() {
		var m models.Move
		var at int64
		if err := rows.Scan(&m.GameID, &m.Idx, &at, &m.ColumnOffset, &m.Rotation, &m.NextInputRandomNumber); err != nil {
			return nil, fmt.Errorf("failed to scan move: %w", err)
		}
		m.Time = fromMillis(at)
		moves = append(moves, &m)
	}
	return moves, rows.Err()
}
