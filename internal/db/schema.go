package db

// tables.
const (
	tableHistoryName   Table = "history"
	tableBookmarksName Table = "bookmarks"
	tableDownloadsName Table = "downloads"
)

type Schema struct {
	Name  Table
	SQL   string
	Index string
}

// schemaHistory holds one row per visited URL.
var schemaHistory = Schema{
	Name:  tableHistoryName,
	SQL:   tableHistorySchema,
	Index: tableHistoryIndex,
}

// schemaBookmarks holds one row per bookmarked URL.
var schemaBookmarks = Schema{
	Name:  tableBookmarksName,
	SQL:   tableBookmarksSchema,
	Index: tableBookmarksIndex,
}

// schemaDownloads is append-only from this package's point of view.
var schemaDownloads = Schema{
	Name:  tableDownloadsName,
	SQL:   tableDownloadsSchema,
	Index: tableDownloadsIndex,
}

// history table.
const (
	tableHistorySchema = `
		CREATE TABLE IF NOT EXISTS history (
				id          INTEGER PRIMARY KEY AUTOINCREMENT,
				url         TEXT    NOT NULL UNIQUE,
				title       TEXT    NOT NULL DEFAULT '',
				last_visit  TEXT    NOT NULL,
				visit_count INTEGER NOT NULL DEFAULT 1 CHECK (visit_count >= 1)
		);`

	tableHistoryIndex = `
		CREATE INDEX IF NOT EXISTS idx_history_last_visit
		ON history(last_visit DESC);`
)

// bookmarks table.
const (
	tableBookmarksSchema = `
		CREATE TABLE IF NOT EXISTS bookmarks (
				id          INTEGER PRIMARY KEY AUTOINCREMENT,
				url         TEXT    NOT NULL UNIQUE,
				title       TEXT    NOT NULL DEFAULT '',
				created_at  TEXT    NOT NULL
		);`

	tableBookmarksIndex = `
		CREATE INDEX IF NOT EXISTS idx_bookmarks_created_at
		ON bookmarks(created_at DESC);`
)

// downloads table.
const (
	tableDownloadsSchema = `
		CREATE TABLE IF NOT EXISTS downloads (
				id          INTEGER PRIMARY KEY AUTOINCREMENT,
				url         TEXT    NOT NULL,
				filename    TEXT    NOT NULL,
				filepath    TEXT    NOT NULL,
				status      TEXT    NOT NULL DEFAULT 'downloading'
				            CHECK (status IN ('downloading', 'completed', 'failed', 'canceled')),
				size        INTEGER NOT NULL DEFAULT 0,
				downloaded  INTEGER NOT NULL DEFAULT 0,
				start_time  TEXT    NOT NULL,
				end_time    TEXT
		);`

	tableDownloadsIndex = `
		CREATE INDEX IF NOT EXISTS idx_downloads_start_time
		ON downloads(start_time DESC);`
)
