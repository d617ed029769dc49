package store

// counters holds one row per metered action. Only running totals are kept;
// scenario values themselves are never written.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS counters (
    name        TEXT PRIMARY KEY,
    value       INTEGER NOT NULL DEFAULT 0,
    updated_at  TEXT NOT NULL
);

INSERT OR IGNORE INTO counters (name, value, updated_at) VALUES ('scenarios', 0, '');
INSERT OR IGNORE INTO counters (name, value, updated_at) VALUES ('exports', 0, '');
`

const (
	counterScenarios = "scenarios"
	counterExports   = "exports"
)
