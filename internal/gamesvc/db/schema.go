package db

// Table names follow the historical Ternarii schema.
//
// unique_active_game is what keeps a (player, stage) pair down to one
// unfinished game; the primary key of unverified_game_move keeps idx unique per
// game. Both are relied upon by the stores as conflict signals.
var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS player (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		creation_time TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_player_name ON player(name)`,
	`CREATE TABLE IF NOT EXISTS unverified_game (
		id BIGSERIAL PRIMARY KEY,
		player_id BIGINT NOT NULL REFERENCES player(id),
		stage_id INTEGER NOT NULL,
		first_input_random_number BIGINT NOT NULL,
		first_next_input_random_number BIGINT NOT NULL,
		is_over BOOLEAN NOT NULL DEFAULT FALSE,
		creation_time TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS unique_active_game
		ON unverified_game(player_id, stage_id) WHERE NOT is_over`,
	`CREATE TABLE IF NOT EXISTS unverified_game_move (
		game_id BIGINT NOT NULL REFERENCES unverified_game(id),
		idx INTEGER NOT NULL CHECK (idx >= 0),
		time TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		column_offset SMALLINT NOT NULL CHECK (column_offset >= 0),
		rotation SMALLINT NOT NULL CHECK (rotation BETWEEN 0 AND 3),
		next_input_random_number BIGINT NOT NULL,
		CONSTRAINT unique_game_move_idx PRIMARY KEY (game_id, idx)
	)`,
}

// SQLite keeps timestamps as unix milliseconds and booleans as 0/1.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS player (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		creation_time INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_player_name ON player(name)`,
	`CREATE TABLE IF NOT EXISTS unverified_game (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		player_id INTEGER NOT NULL REFERENCES player(id),
		stage_id INTEGER NOT NULL,
		first_input_random_number INTEGER NOT NULL,
		first_next_input_random_number INTEGER NOT NULL,
		is_over INTEGER NOT NULL DEFAULT 0,
		creation_time INTEGER NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS unique_active_game
		ON unverified_game(player_id, stage_id) WHERE is_over = 0`,
	`CREATE TABLE IF NOT EXISTS unverified_game_move (
		game_id INTEGER NOT NULL REFERENCES unverified_game(id),
		idx INTEGER NOT NULL CHECK (idx >= 0),
		time INTEGER NOT NULL,
		column_offset INTEGER NOT NULL CHECK (column_offset >= 0),
		rotation INTEGER NOT NULL CHECK (rotation BETWEEN 0 AND 3),
		next_input_random_number INTEGER NOT NULL,
		PRIMARY KEY (game_id, idx)
	)`,
}
