package models

import "time"

type Move struct {
	GameID                int64     `json:"game_id"`
	Idx                   int       `json:"idx"` // zero-based, gap-free within a game
	Time                  time.Time `json:"time"`
	ColumnOffset          int       `json:"column_offset"`
	Rotation              int       `json:"rotation"` // 0-3
	NextInputRandomNumber int64     `json:"next_input_random_number"`
}
