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

// A create only loses when a concurrent request created the game first, and
// the retry then finds that game. More than a couple of rounds means the store
// is misbehaving.
const maxCreateAttempts = 3

type GameService struct {
	gameStore GameStore
	moves     *MoveService
	seeds     seed.Generator
	events    EventPublisher
}

func NewGameService(gameStore GameStore, moves *MoveService, seeds seed.Generator, events EventPublisher) *GameService {
	return &GameService{gameStore: gameStore, moves: moves, seeds: seeds, events: events}
}

func (s *GameService) GetGameByID(ctx context.Context, gameID int64) (*models.Game, error) {
	return s.gameStore.GetGameByID(ctx, gameID)
}

// GetOrCreateActiveGame returns the unfinished game of playerID on stageID
// together with its ledger, creating the game with fresh seeds if there is
// none. Concurrent callers for the same pair all end up with the same game.
func (s *GameService) GetOrCreateActiveGame(ctx context.Context, playerID int64, stageID int) (*models.GameSession, error) {
	for attempt := 1; attempt <= maxCreateAttempts; attempt++ {
		game, err := s.gameStore.GetActiveGame(ctx, playerID, stageID)
		if err != nil {
			return nil, err
		}
		if game != nil {
			moves, err := s.moves.ListMoves(ctx, game.ID)
			if err != nil {
				return nil, err
			}
			log.WithFields(log.Fields{"game_id": game.ID, "moves": len(moves)}).Debug("resuming game")
			return sessionOf(game, moves, false), nil
		}

		first, next, err := seed.Pair(s.seeds)
		if err != nil {
			return nil, fmt.Errorf("failed to generate game seeds: %w", err)
		}
		game = &models.Game{
			PlayerID:                   playerID,
			StageID:                    stageID,
			FirstInputRandomNumber:     first,
			FirstNextInputRandomNumber: next,
		}

		created, err := s.gameStore.CreateActiveGame(ctx, game)
		if err != nil {
			return nil, err
		}
		if created {
			log.WithFields(log.Fields{"game_id": game.ID, "player_id": playerID, "stage_id": stageID}).Info("game created")
			publish(ctx, s.events, comm.LedgerEvent{
				Type:     comm.EventGameCreated,
				GameID:   game.ID,
				PlayerID: playerID,
				StageID:  stageID,
				Time:     time.Now().UTC(),
			})
			return sessionOf(game, []*models.Move{}, true), nil
		}

		log.WithFields(log.Fields{"player_id": playerID, "stage_id": stageID, "attempt": attempt}).
			Debug("active game created concurrently, reloading")
	}

	return nil, fmt.Errorf("no active game for player %d on stage %d after %d attempts", playerID, stageID, maxCreateAttempts)
}

// FinishGame marks the game over. Finishing an already finished game is a
// no-op success.
func (s *GameService) FinishGame(ctx context.Context, playerID, gameID int64) error {
	game, err := s.gameStore.GetGameByID(ctx, gameID)
	if err != nil {
		return err
	}
	if game == nil {
		return apperr.New(apperr.NotFound, apperr.MsgGameNotFound)
	}
	if game.PlayerID != playerID {
		return apperr.New(apperr.Forbidden, apperr.MsgGameNotOwned)
	}
	if game.IsOver {
		log.WithField("game_id", gameID).Debug("game already finished")
		return nil
	}

	if err := s.gameStore.MarkGameOver(ctx, gameID); err != nil {
		return err
	}

	log.WithFields(log.Fields{"game_id": gameID, "player_id": playerID}).Info("game finished")
	publish(ctx, s.events, comm.LedgerEvent{
		Type:     comm.EventGameFinished,
		GameID:   gameID,
		PlayerID: playerID,
		StageID:  game.StageID,
		Time:     time.Now().UTC(),
	})
	return nil
}

func sessionOf(game *models.Game, moves []*models.Move, created bool) *models.GameSession {
	return &models.GameSession{
		GameID:                     game.ID,
		FirstInputRandomNumber:     game.FirstInputRandomNumber,
		FirstNextInputRandomNumber: game.FirstNextInputRandomNumber,
		Moves:                      moves,
		Created:                    created,
	}
}
