package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS history (
    day          TEXT PRIMARY KEY,
    date         TEXT NOT NULL,
    spent        INTEGER NOT NULL,
    points       INTEGER NOT NULL,
    bonus        INTEGER NOT NULL,
    overspent    INTEGER NOT NULL DEFAULT 0,
    saved        INTEGER NOT NULL,
    budget       INTEGER NOT NULL,
    mode         TEXT NOT NULL,
    synced_at    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS redemptions (
    item_id      INTEGER NOT NULL,
    name         TEXT NOT NULL,
    cost         INTEGER NOT NULL,
    stars        INTEGER NOT NULL,
    redeemed_at  TEXT NOT NULL,
    PRIMARY KEY (item_id, redeemed_at)
);

CREATE INDEX IF NOT EXISTS idx_history_date ON history(date);
`
