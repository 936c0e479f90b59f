package identity

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Service manages account lifecycle.
type Service struct {
	repo Repository
}

// NewService creates a new identity service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register creates a new user with a hashed password, a generated account
// number and a zero opening balance.
func (s *Service) Register(ctx context.Context, creds Credentials) (User, error) {
	if strings.TrimSpace(creds.Name) == "" {
		return User{}, errors.New("name is required")
	}
	if !strings.Contains(creds.Email, "@") {
		return User{}, errors.New("a valid email is required")
	}
	if len(creds.Password) < 6 {
		return User{}, errors.New("password must be at least 6 characters")
	}

	if _, err := s.repo.FindByEmail(ctx, creds.Email); err == nil {
		return User{}, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:            uuid.New().String(),
		Name:          strings.TrimSpace(creds.Name),
		AccountNumber: newAccountNumber(),
		Email:         strings.ToLower(strings.TrimSpace(creds.Email)),
		PasswordHash:  hash,
		Balance:       0,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return User{}, err
	}

	return user, nil
}

// Authenticate verifies email and password.
func (s *Service) Authenticate(ctx context.Context, creds Credentials) (User, error) {
	user, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(creds.Email)))
	if err != nil {
		return User{}, errors.New("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(creds.Password)); err != nil {
		return User{}, errors.New("invalid email or password")
	}

	return user, nil
}

// Get fetches a user by identifier.
func (s *Service) Get(ctx context.Context, id string) (User, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns all registered users.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// newAccountNumber derives a 10 digit account number from a fresh UUID.
func newAccountNumber() string {
	id := uuid.New()
	n := binary.BigEndian.Uint64(id[:8]) % 10_000_000_000
	return fmt.Sprintf("%010d", n)
}
