package users

// Schema contains the SQL statements to create the user database schema.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
    id              TEXT PRIMARY KEY,
    email           TEXT UNIQUE NOT NULL COLLATE NOCASE,
    name            TEXT NOT NULL,
    hashed_password TEXT NOT NULL,
    is_active       BOOLEAN DEFAULT TRUE,
    created_at      DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
`

const (
	// MinPasswordLength matches the backend's password rule.
	MinPasswordLength = 8
	// MaxNameLength matches the backend's name column.
	MaxNameLength = 255
	// MemoryDSN opens a private in-memory database.
	MemoryDSN = ":memory:"
)
