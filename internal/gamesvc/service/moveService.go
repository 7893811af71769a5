package service

import (
	"context"
	"fmt"
	"time"

	"github.com/avvvet/ternarii-services/internal/comm"
	"github.com/avvvet/ternarii-services/internal/gamesvc/apperr"
	"github.com/avvvet/ternarii-services/internal/gamesvc/models"
	"github.com/avvvet/ternarii-services/internal/gamesvc/seed"
	log "github.com/sirupsen/logrus"
)

const maxRotation = 3

// MoveService is the move ledger: append-only, gap-free, ordered by idx.
type MoveService struct {
	moveStore MoveStore
	seeds     seed.Generator
	events    EventPublisher
}

func NewMoveService(moveStore MoveStore, seeds seed.Generator, events EventPublisher) *MoveService {
	return &MoveService{moveStore: moveStore, seeds: seeds, events: events}
}

// AppendMove records move idx of gameID and returns the seed of the piece that
// becomes available after it. The client must name the exact idx it believes
// it is writing; anything else is a SequenceMismatch.
func (s *MoveService) AppendMove(ctx context.Context, playerID, gameID int64, idx, columnOffset, rotation int) (int64, error) {
	if columnOffset < 0 {
		return 0, apperr.Newf(apperr.Validation, "column_offset must be non-negative, got %d", columnOffset)
	}
	if rotation < 0 || rotation > maxRotation {
		return 0, apperr.Newf(apperr.Validation, "rotation must be within [0, %d], got %d", maxRotation, rotation)
	}

	next, err := s.seeds.Next()
	if err != nil {
		return 0, fmt.Errorf("failed to generate move seed: %w", err)
	}

	move := &models.Move{
		GameID:                gameID,
		Idx:                   idx,
		ColumnOffset:          columnOffset,
		Rotation:              rotation,
		NextInputRandomNumber: next,
	}
	if err := s.moveStore.AppendMove(ctx, playerID, move); err != nil {
		return 0, err
	}

	log.WithFields(log.Fields{"game_id": gameID, "idx": idx}).Debug("move appended")

	publish(ctx, s.events, comm.LedgerEvent{
		Type:     comm.EventMoveAppended,
		GameID:   gameID,
		PlayerID: playerID,
		Move: &comm.MoveData{
			Idx:                   move.Idx,
			ColumnOffset:          move.ColumnOffset,
			Rotation:              move.Rotation,
			NextInputRandomNumber: move.NextInputRandomNumber,
			Time:                  move.Time,
		},
		Time: time.Now().UTC(),
	})

	return next, nil
}

// ListMoves returns the whole ledger of gameID in ascending idx order.
func (s *MoveService) ListMoves(ctx context.Context, gameID int64) ([]*models.Move, error) {
	return s.moveStore.ListMoves(ctx, gameID)
}
