package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/eventease/server/internal/domain/attendance"
	"github.com/eventease/server/internal/domain/auth"
	"github.com/eventease/server/internal/domain/events"
	"github.com/eventease/server/internal/domain/sessions"
	"github.com/eventease/server/internal/domain/themes"
	"github.com/eventease/server/internal/domain/users"
	"github.com/eventease/server/internal/notify"
	"github.com/eventease/server/internal/perf"
)

// fixture wires real in-memory stores; there is nothing external to stub.
type fixture struct {
	catalog   *events.Store
	accounts  *auth.Service
	tokens    *auth.TokenManager
	directory *users.Directory
	sessions  *sessions.Manager
	ledger    *attendance.Ledger
	themes    *themes.Store
	monitor   *perf.Monitor
}

func newFixture() *fixture {
	logger := zerolog.Nop()
	bus := notify.NewBus(logger)
	catalog := events.NewStore(logger)
	return &fixture{
		catalog:   catalog,
		accounts:  auth.NewService(logger),
		tokens:    auth.NewTokenManager("test-secret", time.Hour, "eventease"),
		directory: users.NewDirectory(logger),
		sessions:  sessions.NewManager(bus, sessions.DefaultIdleTimeout, logger),
		ledger:    attendance.NewLedger(catalog, bus, logger),
		themes:    themes.NewStore(themes.Light, bus, logger),
		monitor:   perf.NewMonitor(logger),
	}
}

func validProfile(email string) users.Profile {
	return users.Profile{
		Email:       email,
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Phone:       "555-0100",
		DateOfBirth: time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC),
		AcceptTerms: true,
	}
}

func (f *fixture) login(t *testing.T, email string) sessions.Session {
	t.Helper()
	session, err := f.sessions.Create(context.Background(), email, "Ada Lovelace")
	require.NoError(t, err)
	return session
}
