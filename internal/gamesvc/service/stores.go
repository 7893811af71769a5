package service

import (
	"context"

	"github.com/avvvet/ternarii-services/internal/comm"
	"github.com/avvvet/ternarii-services/internal/gamesvc/models"
	log "github.com/sirupsen/logrus"
)

// Store contracts. Implemented by the pgx stores in package store and by the
// SQLite stores in package store/sqlite. Lookups return nil (or 0) with a nil
// error when nothing matches.

type PlayerStore interface {
	CreatePlayer(ctx context.Context, name, passwordHash string) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Player, error)
	GetIDByName(ctx context.Context, name string) (int64, error)
}

type GameStore interface {
	GetGameByID(ctx context.Context, gameID int64) (*models.Game, error)
	GetActiveGame(ctx context.Context, playerID int64, stageID int) (*models.Game, error)
	CreateActiveGame(ctx context.Context, game *models.Game) (bool, error)
	MarkGameOver(ctx context.Context, gameID int64) error
}

type MoveStore interface {
	AppendMove(ctx context.Context, playerID int64, m *models.Move) error
	ListMoves(ctx context.Context, gameID int64) ([]*models.Move, error)
}

type StatsStore interface {
	Ping(ctx context.Context) error
	GetStats(ctx context.Context) (*models.Stats, error)
}

// EventPublisher receives ledger events after they are committed.
type EventPublisher interface {
	Publish(ctx context.Context, event comm.LedgerEvent) error
}

func publish(ctx context.Context, p EventPublisher, event comm.LedgerEvent) {
	if p == nil {
		return
	}
	// The ledger is already committed; a lost event must not fail the request.
	if err := p.Publish(ctx, event); err != nil {
		log.WithFields(log.Fields{"event": event.Type, "game_id": event.GameID}).
			Errorf("failed to publish ledger event: %s", err)
	}
}
