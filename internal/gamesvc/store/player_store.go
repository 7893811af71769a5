package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/avvvet/ternarii-services/internal/gamesvc/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PlayerStore struct {
	db *pgxpool.Pool
}

func NewPlayerStore(db *pgxpool.Pool) *PlayerStore {
	return &PlayerStore{db: db}
}

func (r *PlayerStore) CreatePlayer(ctx context.Context, name, passwordHash string) (int64, error) {
	var playerID int64

	query := `
        INSERT INTO player (name, password_hash, creation_time)
        VALUES ($1, $2, NOW())
        RETURNING id;
    `

	err := r.db.QueryRow(ctx, query, name, passwordHash).Scan(&playerID)
	if err != nil {
		return 0, fmt.Errorf("could not create player: %w", err)
	}

	return playerID, nil
}

// GetByID returns nil, nil when no player has that id.
func (r *PlayerStore) GetByID(ctx context.Context, id int64) (*models.Player, error) {
	row := r.db.QueryRow(ctx, `
        SELECT id, name, password_hash, creation_time
        FROM player
        WHERE id = $1
    `, id)

	p := &models.Player{}
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.PasswordHash,
		&p.CreationTime,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get player by ID: %w", err)
	}

	return p, nil
}

// GetIDByName returns the oldest player with that name, or 0 when none exists.
// Names are not unique.
func (r *PlayerStore) GetIDByName(ctx context.Context, name string) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
        SELECT id FROM player WHERE name = $1 ORDER BY id LIMIT 1
    `, name).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get player by name: %w", err)
	}

	return id, nil
}
