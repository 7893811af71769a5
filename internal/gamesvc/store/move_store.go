package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/avvvet/ternarii-services/internal/gamesvc/apperr"
	"github.com/avvvet/ternarii-services/internal/gamesvc/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolation = "23505"

type MoveStore struct {
	db *pgxpool.Pool
}

func NewMoveStore(db *pgxpool.Pool) *MoveStore {
	return &MoveStore{db: db}
}

// AppendMove writes m at the end of its game's ledger on behalf of playerID.
//
// The game row is locked for the whole check-and-insert, so two appends to the
// same game are serialized and cannot both see the same next index.
// It fails with:
// - NotFound if the game does not exist.
// - Forbidden if the game belongs to another player.
// - SequenceMismatch if m.Idx is not MAX(idx)+1 (0 for an empty ledger).
// On success m.Time holds the database timestamp of the move.
func (s *MoveStore) AppendMove(ctx context.Context, playerID int64, m *models.Move) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin append move: %w", err)
	}
	defer tx.Rollback(ctx)

	var ownerID int64
	err = tx.QueryRow(ctx, `SELECT player_id FROM unverified_game WHERE id = $1 FOR UPDATE`, m.GameID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.New(apperr.NotFound, apperr.MsgGameNotFound)
		}
		return fmt.Errorf("failed to lock game %d: %w", m.GameID, err)
	}
	if ownerID != playerID {
		return apperr.New(apperr.Forbidden, apperr.MsgGameNotOwned)
	}

	var expected int
	err = tx.QueryRow(ctx, `
		SELECT COALESCE(MAX(idx) + 1, 0)
		FROM unverified_game_move
		WHERE game_id = $1`, m.GameID).Scan(&expected)
	if err != nil {
		return fmt.Errorf("failed to get next move index: %w", err)
	}
	if m.Idx != expected {
		return apperr.UnexpectedMoveIndex(expected, m.Idx)
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO unverified_game_move (game_id, idx, time, column_offset, rotation, next_input_random_number)
		VALUES ($1, $2, NOW(), $3, $4, $5)
		RETURNING time`,
		m.GameID, m.Idx, m.ColumnOffset, m.Rotation, m.NextInputRandomNumber,
	).Scan(&m.Time)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperr.UnexpectedMoveIndex(m.Idx+1, m.Idx)
		}
		return fmt.Errorf("failed to insert move: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit move: %w", err)
	}
	return nil
}

func (s *MoveStore) ListMoves(ctx context.Context, gameID int64) ([]*models.Move, error) {
	query := `
		SELECT game_id, idx, time, column_offset, rotation, next_input_random_number
		FROM unverified_game_move
		WHERE game_id = $1
		ORDER BY idx ASC
	`

	rows, err := s.db.Query(ctx, query, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	moves := make([]*models.Move, 0)
	for rows.Next() {
		var m models.Move
		err := rows.Scan(
			&m.GameID,
			&m.Idx,
			&m.Time,
			&m.ColumnOffset,
			&m.Rotation,
			&m.NextInputRandomNumber,
		)
		if err != nil {
			return nil, err
		}
		moves = append(moves, &m)
	}

	return moves, rows.Err()
}
