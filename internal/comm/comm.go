package comm

import (
	"encoding/json"
	"fmt"
	"time"
)

// Ledger event types published by the game service.
const (
	EventGameCreated  = "game-created"
	EventMoveAppended = "move-appended"
	EventGameFinished = "game-finished"
)

// LedgerSubjectPrefix is followed by the game id: ledger.game.42
const LedgerSubjectPrefix = "ledger.game."

// LedgerSubjectAll matches every game's subject.
const LedgerSubjectAll = LedgerSubjectPrefix + "*"

func LedgerSubject(gameID int64) string {
	return fmt.Sprintf("%s%d", LedgerSubjectPrefix, gameID)
}

type LedgerEvent struct {
	Type     string    `json:"type"`
	GameID   int64     `json:"game_id"`
	PlayerID int64     `json:"player_id"`
	StageID  int       `json:"stage_id,omitempty"`
	Move     *MoveData `json:"move,omitempty"`
	Time     time.Time `json:"time"`
}

type MoveData struct {
	Idx                   int       `json:"idx"`
	ColumnOffset          int       `json:"column_offset"`
	Rotation              int       `json:"rotation"`
	NextInputRandomNumber int64     `json:"next_input_random_number"`
	Time                  time.Time `json:"time"`
}

// Socket message types of the ledger feed.
const (
	MsgWatch       = "watch"
	MsgUnwatch     = "unwatch"
	MsgWatched     = "watched"
	MsgUnwatched   = "unwatched"
	MsgLedgerEvent = "ledger-event"
	MsgError       = "error"
)

type WSMessage struct {
	Type     string          `json:"type"` // e.g. "watch", "ledger-event"
	Data     json.RawMessage `json:"data,omitempty"`
	Error    string          `json:"error,omitempty"`
	SocketId string          `json:"-"`
}

type WatchRequest struct {
	GameID int64 `json:"game_id"`
}
