package store

const schema = `
CREATE TABLE IF NOT EXISTS videos (
    id           TEXT PRIMARY KEY,
    title        TEXT NOT NULL,
    views        INTEGER NOT NULL DEFAULT 0,
    likes        INTEGER NOT NULL DEFAULT 0,
    comments     INTEGER NOT NULL DEFAULT 0,
    duration     TEXT NOT NULL DEFAULT '',
    published_at TEXT NOT NULL DEFAULT '',
    description  TEXT NOT NULL DEFAULT '',
    tags         TEXT NOT NULL DEFAULT '[]',
    fetched_at   DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_videos_published ON videos(published_at);
CREATE INDEX IF NOT EXISTS idx_videos_views ON videos(views);

CREATE TABLE IF NOT EXISTS analysis_runs (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    channel_id  TEXT NOT NULL,
    video_count INTEGER NOT NULL DEFAULT 0,
    results     TEXT NOT NULL DEFAULT '{}',
    created_at  DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON analysis_runs(created_at);
`
