package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/avvvet/ternarii-services/internal/gamesvc/apperr"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// PlayerService owns player identities and password checks.
type PlayerService struct {
	playerStore PlayerStore
	bcryptCost  int
}

// NewPlayerService creates a new PlayerService instance
func NewPlayerService(playerStore PlayerStore, bcryptCost int) *PlayerService {
	return &PlayerService{
		playerStore: playerStore,
		bcryptCost:  bcryptCost,
	}
}

// Register hashes password and stores a new player. Names are not unique.
func (s *PlayerService) Register(ctx context.Context, name, password string) (int64, error) {
	if name == "" {
		return 0, apperr.New(apperr.Validation, "player name must not be empty")
	}
	if password == "" {
		return 0, apperr.New(apperr.Validation, "password must not be empty")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return 0, apperr.Wrap(apperr.Validation, "password must be at most 72 bytes", err)
		}
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	playerID, err := s.playerStore.CreatePlayer(ctx, name, string(passwordHash))
	if err != nil {
		return 0, err
	}

	log.WithField("player_id", playerID).Info("player registered")
	return playerID, nil
}

// Verify checks password against the stored hash of playerID.
func (s *PlayerService) Verify(ctx context.Context, playerID int64, password string) error {
	player, err := s.playerStore.GetByID(ctx, playerID)
	if err != nil {
		return err
	}
	if player == nil {
		return apperr.New(apperr.NotFound, apperr.MsgPlayerNotFound)
	}

	err = bcrypt.CompareHashAndPassword([]byte(player.PasswordHash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword), errors.Is(err, bcrypt.ErrPasswordTooLong):
		return apperr.New(apperr.BadCredentials, apperr.MsgIncorrectPassword)
	default:
		return fmt.Errorf("failed to verify password of player %d: %w", playerID, err)
	}
}

func (s *PlayerService) LookupID(ctx context.Context, name string) (int64, error) {
	id, err := s.playerStore.GetIDByName(ctx, name)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, apperr.New(apperr.NotFound, apperr.MsgUnknownPlayerName)
	}
	return id, nil
}
