package store

const schema = `
CREATE TABLE IF NOT EXISTS decks (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    topic      TEXT NOT NULL DEFAULT '',
    material   TEXT NOT NULL DEFAULT '',
    created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS cards (
    id            TEXT PRIMARY KEY,
    deck_id       TEXT NOT NULL REFERENCES decks(id) ON DELETE CASCADE,
    front         TEXT NOT NULL,
    back          TEXT NOT NULL,
    topic         TEXT NOT NULL DEFAULT '',
    ease_factor   REAL NOT NULL,
    interval_days INTEGER NOT NULL,
    repetitions   INTEGER NOT NULL,
    next_review   DATETIME NOT NULL,
    last_reviewed DATETIME
);

CREATE INDEX IF NOT EXISTS idx_cards_deck ON cards(deck_id);
CREATE INDEX IF NOT EXISTS idx_cards_next_review ON cards(next_review);

CREATE TABLE IF NOT EXISTS exam_sessions (
    id             TEXT PRIMARY KEY,
    deck_id        TEXT NOT NULL,
    status         TEXT NOT NULL,
    question_count INTEGER NOT NULL,
    duration_secs  INTEGER NOT NULL,
    started_at     DATETIME NOT NULL,
    submitted_at   DATETIME,
    total_marks    REAL NOT NULL DEFAULT 0,
    max_marks      REAL NOT NULL DEFAULT 0,
    percentage     INTEGER NOT NULL DEFAULT 0,
    grade          TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS llm_events (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at    DATETIME NOT NULL,
    provider      TEXT NOT NULL,
    model         TEXT NOT NULL,
    purpose       TEXT NOT NULL DEFAULT '',
    input_tokens  INTEGER NOT NULL DEFAULT 0,
    output_tokens INTEGER NOT NULL DEFAULT 0,
    latency_ms    INTEGER NOT NULL DEFAULT 0,
    success       INTEGER NOT NULL,
    error_message TEXT NOT NULL DEFAULT '',
    request_body  TEXT NOT NULL DEFAULT '',
    response_body TEXT NOT NULL DEFAULT ''
);
`
