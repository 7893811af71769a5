package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"

	"github.com/avvvet/ternarii-services/internal/gamesvc/apperr"
	"github.com/avvvet/ternarii-services/internal/gamesvc/db"
	"github.com/avvvet/ternarii-services/internal/gamesvc/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	sqlDB, err := db.OpenSQLite(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return sqlDB
}

func createPlayer(t *testing.T, sqlDB *sql.DB, name string) int64 {
	t.Helper()
	id, err := NewPlayerStore(sqlDB).CreatePlayer(context.Background(), name, "hash-"+name)
	require.NoError(t, err)
	return id
}

func createGame(t *testing.T, sqlDB *sql.DB, playerID int64, stageID int) *models.Game {
	t.Helper()
	game := &models.Game{PlayerID: playerID, StageID: stageID, FirstInputRandomNumber: 11, FirstNextInputRandomNumber: -12}
	created, err := NewGameStore(sqlDB).CreateActiveGame(context.Background(), game)
	require.NoError(t, err)
	require.True(t, created)
	return game
}

func TestPlayerStore(t *testing.T) {
	ctx := context.Background()
	s := NewPlayerStore(openTestDB(t))

	first, err := s.CreatePlayer(ctx, "alice", "h1")
	require.NoError(t, err)
	second, err := s.CreatePlayer(ctx, "alice", "h2")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	p, err := s.GetByID(ctx, second)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "alice", p.Name)
	assert.Equal(t, "h2", p.PasswordHash)
	assert.False(t, p.CreationTime.IsZero())

	id, err := s.GetIDByName(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, first, id)

	missing, err := s.GetByID(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	id, err = s.GetIDByName(ctx, "bob")
	require.NoError(t, err)
	assert.Zero(t, id)
}

func TestGameStoreActiveGameLifecycle(t *testing.T) {
	ctx := context.Background()
	sqlDB := openTestDB(t)
	s := NewGameStore(sqlDB)
	playerID := createPlayer(t, sqlDB, "alice")

	active, err := s.GetActiveGame(ctx, playerID, 1)
	require.NoError(t, err)
	assert.Nil(t, active)

	game := createGame(t, sqlDB, playerID, 1)
	assert.Positive(t, game.ID)

	second := &models.Game{PlayerID: playerID, StageID: 1}
	created, err := s.CreateActiveGame(ctx, second)
	require.NoError(t, err)
	assert.False(t, created)

	active, err = s.GetActiveGame(ctx, playerID, 1)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, game.ID, active.ID)
	assert.Equal(t, int64(11), active.FirstInputRandomNumber)
	assert.Equal(t, int64(-12), active.FirstNextInputRandomNumber)
	assert.False(t, active.IsOver)

	require.NoError(t, s.MarkGameOver(ctx, game.ID))
	require.NoError(t, s.MarkGameOver(ctx, game.ID))

	finished, err := s.GetGameByID(ctx, game.ID)
	require.NoError(t, err)
	assert.True(t, finished.IsOver)

	active, err = s.GetActiveGame(ctx, playerID, 1)
	require.NoError(t, err)
	assert.Nil(t, active)

	next := createGame(t, sqlDB, playerID, 1)
	assert.NotEqual(t, game.ID, next.ID)

	missing, err := s.GetGameByID(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMoveStoreAppend(t *testing.T) {
	ctx := context.Background()
	sqlDB := openTestDB(t)
	s := NewMoveStore(sqlDB)
	alice := createPlayer(t, sqlDB, "alice")
	bob := createPlayer(t, sqlDB, "bob")
	game := createGame(t, sqlDB, alice, 1)

	for idx := 0; idx < 3; idx++ {
		m := &models.Move{GameID: game.ID, Idx: idx, ColumnOffset: idx, Rotation: idx % 4, NextInputRandomNumber: int64(100 + idx)}
		require.NoError(t, s.AppendMove(ctx, alice, m))
		assert.False(t, m.Time.IsZero())
	}

	tests := []struct {
		name     string
		playerID int64
		move     models.Move
		kind     apperr.Kind
		message  string
	}{
		{name: "replay", playerID: alice, move: models.Move{GameID: game.ID, Idx: 2}, kind: apperr.SequenceMismatch, message: "Unexpected move index. Expected 3, got 2"},
		{name: "gap", playerID: alice, move: models.Move{GameID: game.ID, Idx: 4}, kind: apperr.SequenceMismatch, message: "Unexpected move index. Expected 3, got 4"},
		{name: "foreign", playerID: bob, move: models.Move{GameID: game.ID, Idx: 3}, kind: apperr.Forbidden, message: apperr.MsgGameNotOwned},
		{name: "missing game", playerID: alice, move: models.Move{GameID: 999, Idx: 0}, kind: apperr.NotFound, message: apperr.MsgGameNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tt.move
			err := s.AppendMove(ctx, tt.playerID, &m)
			assert.Equal(t, tt.kind, apperr.KindOf(err))
			assert.Equal(t, tt.message, apperr.MessageOf(err))
		})
	}

	moves, err := s.ListMoves(ctx, game.ID)
	require.NoError(t, err)
	require.Len(t, moves, 3)
	for i, m := range moves {
		assert.Equal(t, i, m.Idx)
		assert.Equal(t, int64(100+i), m.NextInputRandomNumber)
	}

	empty, err := s.ListMoves(ctx, 999)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestConcurrentAppendsOfSameIndex(t *testing.T) {
	ctx := context.Background()
	sqlDB := openTestDB(t)
	s := NewMoveStore(sqlDB)
	playerID := createPlayer(t, sqlDB, "alice")
	game := createGame(t, sqlDB, playerID, 1)

	const writers = 8
	errs := make([]error, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.AppendMove(ctx, playerID, &models.Move{GameID: game.ID, Idx: 0, NextInputRandomNumber: int64(i)})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.Equal(t, apperr.SequenceMismatch, apperr.KindOf(err), err)
	}
	assert.Equal(t, 1, succeeded)

	moves, err := s.ListMoves(ctx, game.ID)
	require.NoError(t, err)
	assert.Len(t, moves, 1)
}

func TestConcurrentCreateYieldsOneActiveGame(t *testing.T) {
	ctx := context.Background()
	sqlDB := openTestDB(t)
	s := NewGameStore(sqlDB)
	playerID := createPlayer(t, sqlDB, "alice")

	const writers = 8
	created := make([]bool, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ok, err := s.CreateActiveGame(ctx, &models.Game{PlayerID: playerID, StageID: 2})
			assert.NoError(t, err)
			created[i] = ok
		}(i)
	}
	wg.Wait()

	count := 0
	for _, ok := range created {
		if ok {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestStatsStore(t *testing.T) {
	ctx := context.Background()
	sqlDB := openTestDB(t)
	s := NewStatsStore(sqlDB)
	playerID := createPlayer(t, sqlDB, "alice")
	game := createGame(t, sqlDB, playerID, 1)
	createGame(t, sqlDB, playerID, 2)
	require.NoError(t, NewMoveStore(sqlDB).AppendMove(ctx, playerID, &models.Move{GameID: game.ID, Idx: 0}))
	require.NoError(t, NewGameStore(sqlDB).MarkGameOver(ctx, game.ID))

	require.NoError(t, s.Ping(ctx))

	stats, err := s.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Stats{Players: 1, Games: 2, ActiveGames: 1, Moves: 1}, *stats)
}
