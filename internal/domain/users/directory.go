// Package users owns registration profiles: the directory of who has signed
// up, independent of the credential store.
package users

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventease/server/internal/domain/ids"
	"github.com/eventease/server/internal/sanitize"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email is already registered")
)

// Directory is the in-memory profile store. Email lookups scan the map;
// the directory is small enough that an index is not worth keeping
// consistent across full-replace updates.
type Directory struct {
	mu       sync.RWMutex
	profiles map[string]Profile
	logger   zerolog.Logger
}

func NewDirectory(logger zerolog.Logger) *Directory {
	return &Directory{
		profiles: make(map[string]Profile),
		logger:   logger.With().Str("component", "users").Logger(),
	}
}

// Register stores a new profile under a fresh id. Free-text fields are
// sanitized to plain text first.
func (d *Directory) Register(_ context.Context, profile Profile) (Profile, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.emailTaken(profile.Email, "") {
		return Profile{}, ErrDuplicateEmail
	}

	profile.ID = ids.NewUUID()
	profile.RegisteredAt = time.Now()
	cleanProfile(&profile)
	d.profiles[profile.ID] = profile

	d.logger.Info().Str("user_id", profile.ID).Msg("profile registered")
	return profile, nil
}

// GetByEmail finds a profile by case-insensitive email.
func (d *Directory) GetByEmail(_ context.Context, email string) (Profile, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, profile := range d.profiles {
		if strings.EqualFold(profile.Email, email) {
			return profile, nil
		}
	}
	return Profile{}, ErrNotFound
}

// GetByID finds a profile by id.
func (d *Directory) GetByID(_ context.Context, id string) (Profile, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	profile, ok := d.profiles[id]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return profile, nil
}

// List returns a snapshot of all profiles, newest first.
func (d *Directory) List(_ context.Context) []Profile {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Profile, 0, len(d.profiles))
	for _, profile := range d.profiles {
		out = append(out, profile)
	}
	sortProfilesNewestFirst(out)
	return out
}

// Update fully replaces the profile with the same id. Moving to an email
// already held by another profile is rejected.
func (d *Directory) Update(_ context.Context, profile Profile) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	existing, ok := d.profiles[profile.ID]
	if !ok {
		return ErrNotFound
	}
	if d.emailTaken(profile.Email, profile.ID) {
		return ErrDuplicateEmail
	}

	// Registration time is immutable across replaces.
	profile.RegisteredAt = existing.RegisteredAt
	cleanProfile(&profile)
	d.profiles[profile.ID] = profile
	return nil
}

// Delete removes a profile.
func (d *Directory) Delete(_ context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.profiles[id]; !ok {
		return ErrNotFound
	}
	delete(d.profiles, id)
	return nil
}

// EmailExists reports whether any profile holds the email,
// case-insensitively.
func (d *Directory) EmailExists(_ context.Context, email string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.emailTaken(email, "")
}

// emailTaken must be called with the mutex held.
func (d *Directory) emailTaken(email, excludeID string) bool {
	for id, profile := range d.profiles {
		if id != excludeID && strings.EqualFold(profile.Email, email) {
			return true
		}
	}
	return false
}

func cleanProfile(p *Profile) {
	p.FirstName = sanitize.Text(p.FirstName)
	p.LastName = sanitize.Text(p.LastName)
	p.Phone = sanitize.Text(p.Phone)
	p.Company = sanitize.Text(p.Company)
	p.JobTitle = sanitize.Text(p.JobTitle)
}

func sortProfilesNewestFirst(profiles []Profile) {
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].RegisteredAt.After(profiles[j].RegisteredAt)
	})
}
