package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLiteCreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ternarii.db")

	sqlDB, err := OpenSQLite(path)
	require.NoError(t, err)
	defer sqlDB.Close()

	for _, table := range []string{"player", "unverified_game", "unverified_game_move"} {
		var name string
		err := sqlDB.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestOpenSQLiteIsRepeatable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ternarii.db")

	first, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := OpenSQLite(path)
	require.NoError(t, err)
	defer second.Close()

	assert.NoError(t, MigrateSQLite(second))
}

func TestOpenSQLiteRequiresPath(t *testing.T) {
	_, err := OpenSQLite("  ")
	assert.Error(t, err)
}

func TestActiveGameIndexRejectsSecondUnfinishedGame(t *testing.T) {
	sqlDB, err := OpenSQLite(filepath.Join(t.TempDir(), "ternarii.db"))
	require.NoError(t, err)
	defer sqlDB.Close()

	_, err = sqlDB.Exec(`INSERT INTO player (name, password_hash, creation_time) VALUES ('ada', 'x', 0)`)
	require.NoError(t, err)

	insert := `INSERT INTO unverified_game (player_id, stage_id, first_input_random_number,
		first_next_input_random_number, is_over, creation_time) VALUES (1, 3, 1, 2, ?, 0)`

	_, err = sqlDB.Exec(insert, 0)
	require.NoError(t, err)
	_, err = sqlDB.Exec(insert, 0)
	assert.Error(t, err, "second unfinished game on the same stage must violate unique_active_game")
	_, err = sqlDB.Exec(insert, 1)
	assert.NoError(t, err, "finished games are outside the partial index")
}
