package storage

const schema = `
-- The 'kv' table holds opaque values addressed by key. The application keeps
-- its whole state as a single JSON document under one key.
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value BLOB NOT NULL,
    updated_at DATETIME NOT NULL
);
`
