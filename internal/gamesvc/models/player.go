package models

import (
	"time"
)

// Player represents the player table in the database.
type Player struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreationTime time.Time `json:"creation_time"`
}

// Stats summarises table sizes for the ops endpoint.
type Stats struct {
	Players     int64 `json:"players"`
	Games       int64 `json:"games"`
	ActiveGames int64 `json:"active_games"`
	Moves       int64 `json:"moves"`
}
