package handlers

import (
	"net/http"
)

type registerResponse struct {
	PlayerID int64 `json:"player_id"`
}

// lookupResponse carries the id twice: "id" is what deployed clients read,
// "player_id" matches the other endpoints.
type lookupResponse struct {
	ID       int64 `json:"id"`
	PlayerID int64 `json:"player_id"`
}

type moveResponse struct {
	ColumnOffset          int   `json:"column_offset"`
	Rotation              int   `json:"rotation"`
	NextInputRandomNumber int64 `json:"next_input_random_number"`
}

// gameResponse lists moves by position: Moves[i] is the move with idx i.
type gameResponse struct {
	GameID                     int64          `json:"game_id"`
	FirstInputRandomNumber     int64          `json:"first_input_random_number"`
	FirstNextInputRandomNumber int64          `json:"first_next_input_random_number"`
	Moves                      []moveResponse `json:"moves"`
}

type addMoveResponse struct {
	NextInputRandomNumber int64 `json:"next_input_random_number"`
}

// AddPlayerHandler: name, password
func (h *Handler) AddPlayerHandler(w http.ResponseWriter, r *http.Request) {
	p := newParams(r)
	name := p.str("name")
	password := p.str("password")
	if p.err != nil {
		h.CreateFailure(w, r, p.err)
		return
	}

	playerID, err := h.playerService.Register(r.Context(), name, password)
	if err != nil {
		h.CreateFailure(w, r, err)
		return
	}

	h.CreateResponse(w, registerResponse{PlayerID: playerID})
}

// GetPlayerIDHandler: player_name
func (h *Handler) GetPlayerIDHandler(w http.ResponseWriter, r *http.Request) {
	p := newParams(r)
	name := p.str("player_name")
	if p.err != nil {
		h.CreateFailure(w, r, p.err)
		return
	}

	playerID, err := h.playerService.LookupID(r.Context(), name)
	if err != nil {
		h.CreateFailure(w, r, err)
		return
	}

	h.CreateResponse(w, lookupResponse{ID: playerID, PlayerID: playerID})
}

// GetOrAddGameHandler: player_id, player_password, stage_id
func (h *Handler) GetOrAddGameHandler(w http.ResponseWriter, r *http.Request) {
	p := newParams(r)
	playerID := p.int64("player_id")
	password := p.str("player_password")
	stageID := p.int("stage_id")
	if p.err != nil {
		h.CreateFailure(w, r, p.err)
		return
	}

	if err := h.playerService.Verify(r.Context(), playerID, password); err != nil {
		h.CreateFailure(w, r, err)
		return
	}

	session, err := h.gameService.GetOrCreateActiveGame(r.Context(), playerID, stageID)
	if err != nil {
		h.CreateFailure(w, r, err)
		return
	}

	rsp := gameResponse{
		GameID:                     session.GameID,
		FirstInputRandomNumber:     session.FirstInputRandomNumber,
		FirstNextInputRandomNumber: session.FirstNextInputRandomNumber,
		Moves:                      make([]moveResponse, 0, len(session.Moves)),
	}
	for _, m := range session.Moves {
		rsp.Moves = append(rsp.Moves, moveResponse{
			ColumnOffset:          m.ColumnOffset,
			Rotation:              m.Rotation,
			NextInputRandomNumber: m.NextInputRandomNumber,
		})
	}

	h.CreateResponse(w, rsp)
}

// AddMoveHandler: player_id, player_password, game_id, move_idx, column_offset, rotation
func (h *Handler) AddMoveHandler(w http.ResponseWriter, r *http.Request) {
	p := newParams(r)
	playerID := p.int64("player_id")
	password := p.str("player_password")
	gameID := p.int64("game_id")
	moveIdx := p.int("move_idx")
	columnOffset := p.int("column_offset")
	rotation := p.int("rotation")
	if p.err != nil {
		h.CreateFailure(w, r, p.err)
		return
	}

	if err := h.playerService.Verify(r.Context(), playerID, password); err != nil {
		h.CreateFailure(w, r, err)
		return
	}

	next, err := h.moveService.AppendMove(r.Context(), playerID, gameID, moveIdx, columnOffset, rotation)
	if err != nil {
		h.CreateFailure(w, r, err)
		return
	}

	h.CreateResponse(w, addMoveResponse{NextInputRandomNumber: next})
}

// FinishGameHandler: player_id, player_password, game_id
func (h *Handler) FinishGameHandler(w http.ResponseWriter, r *http.Request) {
	p := newParams(r)
	playerID := p.int64("player_id")
	password := p.str("player_password")
	gameID := p.int64("game_id")
	if p.err != nil {
		h.CreateFailure(w, r, p.err)
		return
	}

	if err := h.playerService.Verify(r.Context(), playerID, password); err != nil {
		h.CreateFailure(w, r, err)
		return
	}

	if err := h.gameService.FinishGame(r.Context(), playerID, gameID); err != nil {
		h.CreateFailure(w, r, err)
		return
	}

	h.CreateResponse(w, nil)
}
