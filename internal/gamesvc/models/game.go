package models

import (
	"time"
)

// Game is a row of unverified_game. "Unverified" because the server stores the
// move ledger without checking it against any score.
type Game struct {
	ID                         int64     `json:"id"`        // Primary key
	PlayerID                   int64     `json:"player_id"` // Foreign key to player
	StageID                    int       `json:"stage_id"`  // Puzzle configuration
	FirstInputRandomNumber     int64     `json:"first_input_random_number"`
	FirstNextInputRandomNumber int64     `json:"first_next_input_random_number"`
	IsOver                     bool      `json:"is_over"`
	CreationTime               time.Time `json:"creation_time"`
}

// GameSession is what a player gets back when resuming or starting a game:
// the two initial seeds plus the whole ledger, ordered by idx.
type GameSession struct {
	GameID                     int64
	FirstInputRandomNumber     int64
	FirstNextInputRandomNumber int64
	Moves                      []*Move
	Created                    bool
}
