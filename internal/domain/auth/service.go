// Package auth owns user credentials and login verification. It is an
// independent peer of the user directory: both are keyed by email, neither
// references the other.
package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventease/server/internal/domain/ids"
)

var (
	ErrDuplicateEmail     = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Credential is a stored login record. It is never mutated or deleted after
// creation; there is no credential-rotation operation in this core.
type Credential struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	PasswordDigest string    `json:"-"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Phone          string    `json:"phone,omitempty"`
	DateOfBirth    time.Time `json:"date_of_birth"`
	Company        string    `json:"company,omitempty"`
	JobTitle       string    `json:"job_title,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// RegisterParams carries the fields needed to create a credential.
type RegisterParams struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Phone       string
	DateOfBirth time.Time
	Company     string
	JobTitle    string
}

// Service stores credentials in memory. A single RWMutex guards the map and
// the case-insensitive email index together so the duplicate check and the
// insert are one atomic step.
type Service struct {
	mu      sync.RWMutex
	byID    map[string]Credential
	byEmail map[string]string // lowercased email -> credential id
	logger  zerolog.Logger
}

func NewService(logger zerolog.Logger) *Service {
	return &Service{
		byID:    make(map[string]Credential),
		byEmail: make(map[string]string),
		logger:  logger.With().Str("component", "auth").Logger(),
	}
}

// Register creates a credential for a new account. Emails are unique
// case-insensitively.
func (s *Service) Register(_ context.Context, params RegisterParams) (Credential, error) {
	key := emailKey(params.Email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[key]; exists {
		return Credential{}, ErrDuplicateEmail
	}

	credential := Credential{
		ID:             ids.NewUUID(),
		Email:          params.Email,
		PasswordDigest: HashPassword(params.Password),
		FirstName:      params.FirstName,
		LastName:       params.LastName,
		Phone:          params.Phone,
		DateOfBirth:    params.DateOfBirth,
		Company:        params.Company,
		JobTitle:       params.JobTitle,
		CreatedAt:      time.Now(),
	}
	s.byID[credential.ID] = credential
	s.byEmail[key] = credential.ID

	s.logger.Info().Str("credential_id", credential.ID).Msg("credential registered")
	return credential, nil
}

// Login verifies a password against the stored digest. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *Service) Login(_ context.Context, email, password string) (Credential, error) {
	s.mu.RLock()
	id, ok := s.byEmail[emailKey(email)]
	credential := s.byID[id]
	s.mu.RUnlock()

	if !ok || !VerifyPassword(password, credential.PasswordDigest) {
		return Credential{}, ErrInvalidCredentials
	}
	return credential, nil
}

// EmailExists reports whether a credential exists for the email,
// case-insensitively.
func (s *Service) EmailExists(_ context.Context, email string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byEmail[emailKey(email)]
	return ok
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
