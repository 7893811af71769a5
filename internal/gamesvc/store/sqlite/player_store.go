package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avvvet/ternarii-services/internal/gamesvc/models"
)

type PlayerStore struct {
	db *sql.DB
}

func NewPlayerStore(db *sql.DB) *PlayerStore {
	return &PlayerStore{db: db}
}

func (s *PlayerStore) CreatePlayer(ctx context.Context, name, passwordHash string) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO player (name, password_hash, creation_time) VALUES (?, ?, ?)",
		name, passwordHash, toMillis(time.Now()),
	)
	if err != nil {
		return 0, fmt.Errorf("could not create player: %w", err)
	}
	return result.LastInsertId()
}

func (s *PlayerStore) GetByID(ctx context.Context, id int64) (*models.Player, error) {
	p := &models.Player{}
	var created int64
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, password_hash, creation_time FROM player WHERE id = ?",
		id,
	).Scan(&p.ID, &p.Name, &p.PasswordHash, &created)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player by ID: %w", err)
	}
	p.CreationTime = fromMillis(created)
	return p, nil
}

func (s *PlayerStore) GetIDByName(ctx context.Context, name string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		"SELECT id FROM player WHERE name = ? ORDER BY id LIMIT 1",
		name,
	).Scan(&id)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get player by name: %w", err)
	}
	return id, nil
}
