// ABOUTME: SQLite schema for cached analysis runs
// ABOUTME: One row per run plus one row per author vector, ordered by ordinal
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- Analysis runs keyed by corpus/settings fingerprint
CREATE TABLE IF NOT EXISTS runs (
    fingerprint TEXT PRIMARY KEY,
    run_id TEXT NOT NULL UNIQUE,
    method TEXT NOT NULL,
    dimension INTEGER NOT NULL,
    author_count INTEGER NOT NULL,
    skipped TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Author vectors in store insertion order
CREATE TABLE IF NOT EXISTS author_vectors (
    fingerprint TEXT NOT NULL REFERENCES runs(fingerprint) ON DELETE CASCADE,
    ordinal INTEGER NOT NULL,
    author TEXT NOT NULL,
    vector BLOB NOT NULL,
    token_count INTEGER NOT NULL DEFAULT 0,
    oov_count INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (fingerprint, ordinal),
    UNIQUE (fingerprint, author)
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
`
