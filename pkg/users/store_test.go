package users

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

// StoreTestSuite tests the user Store.
type StoreTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *Store
}

func (s *StoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	var err error
	s.store, err = NewStore(MemoryDSN, bcrypt.MinCost)
	s.Require().NoError(err)
}

func (s *StoreTestSuite) TearDownTest() {
	if s.store != nil {
		s.store.Close()
	}
}

func (s *StoreTestSuite) TestValidate() {
	testCases := []struct {
		email, password, name string
		expected              error
	}{
		{"a@b.com", "password123", "Ann", nil},
		{"test@example.com", "12345678", strings.Repeat("n", MaxNameLength), nil},
		{"not-an-email", "password123", "Ann", ErrInvalidEmail},
		{"Ann <a@b.com>", "password123", "Ann", ErrInvalidEmail},
		{"", "password123", "Ann", ErrInvalidEmail},
		{"a@b", "password123", "Ann", ErrInvalidEmail},
		{"a@localhost", "password123", "Ann", ErrInvalidEmail},
		{"a@b.", "password123", "Ann", ErrInvalidEmail},
		{"a@sub.b.co", "password123", "Ann", nil},
		{"a@b.com", "short", "Ann", ErrPasswordTooShort},
		{"a@b.com", "password123", "", ErrInvalidName},
		{"a@b.com", "password123", strings.Repeat("n", MaxNameLength+1), ErrInvalidName},
	}

	for _, tc := range testCases {
		err := Validate(tc.email, tc.password, tc.name)
		if tc.expected == nil {
			s.NoError(err, tc.email)
			continue
		}
		s.ErrorIs(err, tc.expected, tc.email)
		s.True(IsValidationError(err))
	}
}

func (s *StoreTestSuite) TestCreateAndGet() {
	created, err := s.store.Create(s.ctx, " ann@example.com ", "password123", "Ann")
	s.Require().NoError(err)
	s.NotEqual(uuid.Nil, created.ID)
	s.Equal("ann@example.com", created.Email)
	s.True(created.IsActive)
	s.NotEqual("password123", created.HashedPassword)

	found, err := s.store.GetByEmail(s.ctx, "ANN@example.com")
	s.Require().NoError(err)
	s.Equal(created.ID, found.ID)
	s.Equal("Ann", found.Name)
	s.True(found.CheckPassword("password123"))
	s.False(found.CheckPassword("wrong-password"))
	s.WithinDuration(created.CreatedAt, found.CreatedAt, time.Second)
}

func (s *StoreTestSuite) TestCreateDuplicate() {
	_, err := s.store.Create(s.ctx, "ann@example.com", "password123", "Ann")
	s.Require().NoError(err)

	_, err = s.store.Create(s.ctx, "Ann@Example.com", "password456", "Other Ann")
	s.ErrorIs(err, ErrUserExists)

	count, err := s.store.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *StoreTestSuite) TestCreateInvalid() {
	_, err := s.store.Create(s.ctx, "ann@example.com", "short", "Ann")
	s.ErrorIs(err, ErrPasswordTooShort)

	count, err := s.store.Count(s.ctx)
	s.Require().NoError(err)
	s.Zero(count)
}

func (s *StoreTestSuite) TestGetMissing() {
	_, err := s.store.GetByEmail(s.ctx, "nobody@example.com")
	s.ErrorIs(err, ErrUserNotFound)
}

func (s *StoreTestSuite) TestFileDatabasePersists() {
	dbPath := filepath.Join(s.T().TempDir(), "users.db")

	first, err := NewStore(dbPath, bcrypt.MinCost)
	s.Require().NoError(err)
	_, err = first.Create(s.ctx, "ann@example.com", "password123", "Ann")
	s.Require().NoError(err)
	s.Require().NoError(first.Close())

	second, err := NewStore(dbPath, bcrypt.MinCost)
	s.Require().NoError(err)
	defer second.Close()

	found, err := second.GetByEmail(s.ctx, "ann@example.com")
	s.Require().NoError(err)
	s.Equal("Ann", found.Name)
}

func (s *StoreTestSuite) TestNewStoreInvalidPath() {
	_, err := NewStore(filepath.Join(os.TempDir(), "nonexistent", "dir", "users.db"), 0)
	s.ErrorIs(err, ErrDatabaseError)
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}
