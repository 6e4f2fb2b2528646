package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS kv (
    key                  TEXT PRIMARY KEY,
    value                TEXT NOT NULL,
    updated_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS asset_cache (
    cache_name           TEXT NOT NULL,
    path                 TEXT NOT NULL,
    content_type         TEXT,
    body                 BLOB NOT NULL,
    stored_at            TEXT NOT NULL,
    PRIMARY KEY (cache_name, path)
);

CREATE INDEX IF NOT EXISTS idx_asset_cache_name ON asset_cache(cache_name);
`
