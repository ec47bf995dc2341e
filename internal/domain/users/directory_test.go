package users

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func testProfile(email string) Profile {
	return Profile{
		Email:                email,
		FirstName:            "Alice",
		LastName:             "Nguyen",
		Phone:                "+1 555 0100",
		DateOfBirth:          time.Date(1992, 6, 14, 0, 0, 0, 0, time.UTC),
		Company:              "Acme Corp",
		JobTitle:             "Engineer",
		AcceptTerms:          true,
		ReceiveNotifications: true,
	}
}

func TestRegisterAssignsIdentity(t *testing.T) {
	dir := NewDirectory(zerolog.Nop())
	ctx := context.Background()

	stored, err := dir.Register(ctx, testProfile("alice@example.com"))
	require.NoError(t, err)
	require.NotEmpty(t, stored.ID)
	require.False(t, stored.RegisteredAt.IsZero())

	got, err := dir.GetByID(ctx, stored.ID)
	require.NoError(t, err)
	require.Equal(t, stored, got)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	dir := NewDirectory(zerolog.Nop())
	ctx := context.Background()

	_, err := dir.Register(ctx, testProfile("alice@example.com"))
	require.NoError(t, err)

	_, err = dir.Register(ctx, testProfile("ALICE@example.com"))
	require.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestRegister_SanitizesFreeText(t *testing.T) {
	dir := NewDirectory(zerolog.Nop())
	ctx := context.Background()

	profile := testProfile("alice@example.com")
	profile.FirstName = `Alice<script>alert('x')</script>`
	profile.Company = `<b>Acme</b> Corp`

	stored, err := dir.Register(ctx, profile)
	require.NoError(t, err)
	require.Equal(t, "Alice", stored.FirstName)
	require.Equal(t, "Acme Corp", stored.Company)
}

func TestGetByEmail(t *testing.T) {
	dir := NewDirectory(zerolog.Nop())
	ctx := context.Background()

	stored, err := dir.Register(ctx, testProfile("alice@example.com"))
	require.NoError(t, err)

	got, err := dir.GetByEmail(ctx, "Alice@Example.COM")
	require.NoError(t, err)
	require.Equal(t, stored.ID, got.ID)

	_, err = dir.GetByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate_RoundTrip(t *testing.T) {
	dir := NewDirectory(zerolog.Nop())
	ctx := context.Background()

	stored, err := dir.Register(ctx, testProfile("alice@example.com"))
	require.NoError(t, err)

	updated := stored
	updated.JobTitle = "Staff Engineer"
	updated.Company = "Initech"
	require.NoError(t, dir.Update(ctx, updated))

	got, err := dir.GetByID(ctx, stored.ID)
	require.NoError(t, err)
	require.Equal(t, updated, got)
	require.Equal(t, stored.RegisteredAt, got.RegisteredAt)
}

func TestUpdate_NotFound(t *testing.T) {
	dir := NewDirectory(zerolog.Nop())
	profile := testProfile("alice@example.com")
	profile.ID = "missing"
	require.ErrorIs(t, dir.Update(context.Background(), profile), ErrNotFound)
}

func TestUpdate_RejectsEmailCollision(t *testing.T) {
	dir := NewDirectory(zerolog.Nop())
	ctx := context.Background()

	_, err := dir.Register(ctx, testProfile("alice@example.com"))
	require.NoError(t, err)
	bob, err := dir.Register(ctx, testProfile("bob@example.com"))
	require.NoError(t, err)

	bob.Email = "alice@example.com"
	require.ErrorIs(t, dir.Update(ctx, bob), ErrDuplicateEmail)

	// Keeping its own email is fine.
	bob.Email = "bob@example.com"
	bob.JobTitle = "Manager"
	require.NoError(t, dir.Update(ctx, bob))
}

func TestDelete(t *testing.T) {
	dir := NewDirectory(zerolog.Nop())
	ctx := context.Background()

	stored, err := dir.Register(ctx, testProfile("alice@example.com"))
	require.NoError(t, err)

	require.NoError(t, dir.Delete(ctx, stored.ID))
	_, err = dir.GetByID(ctx, stored.ID)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, dir.Delete(ctx, stored.ID), ErrNotFound)
}

func TestList(t *testing.T) {
	dir := NewDirectory(zerolog.Nop())
	ctx := context.Background()

	require.Empty(t, dir.List(ctx))

	for i := 0; i < 3; i++ {
		_, err := dir.Register(ctx, testProfile(fmt.Sprintf("user%d@example.com", i)))
		require.NoError(t, err)
	}
	require.Len(t, dir.List(ctx), 3)
}

func TestEmailExists(t *testing.T) {
	dir := NewDirectory(zerolog.Nop())
	ctx := context.Background()

	require.False(t, dir.EmailExists(ctx, "alice@example.com"))
	_, err := dir.Register(ctx, testProfile("alice@example.com"))
	require.NoError(t, err)
	require.True(t, dir.EmailExists(ctx, "ALICE@example.com"))
}

func TestDirectory_ConcurrentRegistrations(t *testing.T) {
	dir := NewDirectory(zerolog.Nop())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := dir.Register(ctx, testProfile(fmt.Sprintf("user%d@example.com", i)))
			require.NoError(t, err)
		}(i)
	}
	wg.Wait()

	require.Len(t, dir.List(ctx), 40)
}
