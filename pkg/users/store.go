package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	_ "modernc.org/sqlite"
)

// User is a registered account.
type User struct {
	ID             uuid.UUID
	Email          string
	Name           string
	HashedPassword string
	IsActive       bool
	CreatedAt      time.Time
}

// Store keeps registered users in SQLite.
type Store struct {
	db       *sql.DB
	mu       sync.RWMutex
	hashCost int
}

// NewStore opens the user database at dbPath. A hashCost of zero uses bcrypt's default.
func NewStore(dbPath string, hashCost int) (*Store, error) {
	if hashCost <= 0 {
		hashCost = bcrypt.DefaultCost
	}

	database, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %w", ErrDatabaseError, err)
	}

	// Each connection to :memory: is a separate database.
	if dbPath == MemoryDSN {
		database.SetMaxOpenConns(1)
	}

	ctx := context.Background()
	if dbPath != MemoryDSN {
		if _, err := database.ExecContext(ctx, "PRAGMA journal_mode = WAL"); err != nil {
			_ = database.Close()
			return nil, fmt.Errorf("%w: failed to enable WAL mode: %w", ErrDatabaseError, err)
		}
	}

	if _, err := database.ExecContext(ctx, Schema); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("%w: failed to initialize schema: %w", ErrDatabaseError, err)
	}

	return &Store{db: database, hashCost: hashCost}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Validate checks registration input against the backend's rules.
func Validate(email, password, name string) error {
	address, err := mail.ParseAddress(email)
	if err != nil || address.Address != email || address.Name != "" || !dottedDomain(email) {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return fmt.Errorf("%w: need at least %d characters", ErrPasswordTooShort, MinPasswordLength)
	}
	if nameLen := utf8.RuneCountInString(name); nameLen == 0 || nameLen > MaxNameLength {
		return fmt.Errorf("%w: must be 1-%d characters", ErrInvalidName, MaxNameLength)
	}
	return nil
}

// dottedDomain reports whether the part after the last '@' has an inner dot,
// so single-label hosts such as "a@localhost" are rejected.
func dottedDomain(email string) bool {
	domain := email[strings.LastIndexByte(email, '@')+1:]
	dot := strings.IndexByte(domain, '.')
	return dot > 0 && !strings.HasSuffix(domain, ".")
}

// Create registers a new user.
func (s *Store) Create(ctx context.Context, email, password, name string) (*User, error) {
	email = strings.TrimSpace(email)
	if err := Validate(email, password, name); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		ID:             uuid.New(),
		Email:          email,
		Name:           name,
		HashedPassword: string(hashed),
		IsActive:       true,
		CreatedAt:      time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO users (id, email, name, hashed_password, is_active, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID.String(), user.Email, user.Name, user.HashedPassword, user.IsActive, user.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}

	return user, nil
}

// GetByEmail looks a user up by email, ignoring case.
func (s *Store) GetByEmail(ctx context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		user User
		id   string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, name, hashed_password, is_active, created_at FROM users WHERE email = ?`,
		strings.TrimSpace(email),
	).Scan(&id, &user.Email, &user.Name, &user.HashedPassword, &user.IsActive, &user.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}

	user.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: bad user id %q: %w", ErrDatabaseError, id, err)
	}

	return &user, nil
}

// CheckPassword reports whether password matches the user's stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password)) == nil
}

// Count returns the number of registered users.
func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}
	return count, nil
}
