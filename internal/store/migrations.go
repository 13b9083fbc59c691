package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
// Instants are stored as INTEGER epoch milliseconds.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	title       TEXT NOT NULL,
	is_done     INTEGER NOT NULL DEFAULT 0 CHECK(is_done IN (0, 1)),
	priority    TEXT NOT NULL DEFAULT 'medium' CHECK(priority IN ('high', 'medium', 'low')),
	category    TEXT NOT NULL DEFAULT 'personal' CHECK(category IN ('work', 'home', 'personal')),
	repeat      TEXT NOT NULL DEFAULT 'none',
	due_date    INTEGER,
	created_at  INTEGER NOT NULL,
	updated_at  INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tasks_updated_at ON tasks(updated_at);
CREATE INDEX IF NOT EXISTS idx_tasks_is_done ON tasks(is_done);
CREATE INDEX IF NOT EXISTS idx_tasks_category ON tasks(category);
CREATE INDEX IF NOT EXISTS idx_tasks_priority ON tasks(priority);

CREATE TABLE IF NOT EXISTS notes (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	title       TEXT NOT NULL DEFAULT '',
	content     TEXT NOT NULL DEFAULT '',
	tags        TEXT NOT NULL DEFAULT '',
	is_pinned   INTEGER NOT NULL DEFAULT 0 CHECK(is_pinned IN (0, 1)),
	is_archived INTEGER NOT NULL DEFAULT 0 CHECK(is_archived IN (0, 1)),
	is_locked   INTEGER NOT NULL DEFAULT 0 CHECK(is_locked IN (0, 1)),
	created_at  INTEGER NOT NULL,
	updated_at  INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_notes_updated_at ON notes(updated_at);
CREATE INDEX IF NOT EXISTS idx_notes_is_pinned ON notes(is_pinned);

CREATE TABLE IF NOT EXISTS timers (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	label       TEXT NOT NULL DEFAULT '',
	duration_ms INTEGER NOT NULL DEFAULT 0,
	started_at  INTEGER NOT NULL,
	ended_at    INTEGER,
	created_at  INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_timers_started_at ON timers(started_at);

CREATE TABLE IF NOT EXISTS meals (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	menu_name   TEXT NOT NULL,
	meal_date   INTEGER NOT NULL,
	created_at  INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_meals_meal_date ON meals(meal_date);
CREATE INDEX IF NOT EXISTS idx_meals_menu_name ON meals(menu_name);

CREATE TABLE IF NOT EXISTS fortunes (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	date_key    TEXT NOT NULL,
	text        TEXT NOT NULL,
	created_at  INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_fortunes_date_key ON fortunes(date_key);

CREATE TABLE IF NOT EXISTS calc_history (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	expression  TEXT NOT NULL,
	result      TEXT NOT NULL,
	favorite    INTEGER NOT NULL DEFAULT 0 CHECK(favorite IN (0, 1)),
	created_at  INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_calc_history_created_at ON calc_history(created_at);
CREATE INDEX IF NOT EXISTS idx_calc_history_favorite ON calc_history(favorite);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
