package attendance

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/eventease/server/internal/domain/events"
	"github.com/eventease/server/internal/notify"
)

func newTestLedger() (*Ledger, *events.Store, *notify.Bus) {
	bus := notify.NewBus(zerolog.Nop())
	catalog := events.NewStore(zerolog.Nop())
	return NewLedger(catalog, bus, zerolog.Nop()), catalog, bus
}

func TestRegister(t *testing.T) {
	ledger, catalog, _ := newTestLedger()
	ctx := context.Background()

	before, err := catalog.Get(ctx, 1)
	require.NoError(t, err)

	record, err := ledger.Register(ctx, "user-1", 1)
	require.NoError(t, err)
	require.NotEmpty(t, record.ID)
	require.Equal(t, StatusRegistered, record.Status)

	after, err := catalog.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, before.RegisteredCount+1, after.RegisteredCount)
}

func TestRegister_DuplicatePairFails(t *testing.T) {
	ledger, _, _ := newTestLedger()
	ctx := context.Background()

	_, err := ledger.Register(ctx, "user-1", 1)
	require.NoError(t, err)

	_, err = ledger.Register(ctx, "user-1", 1)
	require.ErrorIs(t, err, ErrAlreadyRegistered)

	// Same user on another event, and another user on the same event, are fine.
	_, err = ledger.Register(ctx, "user-1", 2)
	require.NoError(t, err)
	_, err = ledger.Register(ctx, "user-2", 1)
	require.NoError(t, err)
}

func TestRegister_UnknownEvent(t *testing.T) {
	ledger, _, _ := newTestLedger()
	_, err := ledger.Register(context.Background(), "user-1", 999)
	require.ErrorIs(t, err, events.ErrNotFound)
}

func TestRegister_FillsEventToCapacity(t *testing.T) {
	ledger, catalog, _ := newTestLedger()
	ctx := context.Background()

	// Event 1: capacity 500, 234 pre-registered. 266 distinct users fit.
	for i := 0; i < 266; i++ {
		_, err := ledger.Register(ctx, fmt.Sprintf("user-%d", i), 1)
		require.NoError(t, err)
	}

	event, err := catalog.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 500, event.RegisteredCount)

	// The 267th registration fails with the event full.
	_, err = ledger.Register(ctx, "user-straggler", 1)
	require.ErrorIs(t, err, events.ErrEventFull)
}

func TestRegister_PublishesChange(t *testing.T) {
	ledger, _, bus := newTestLedger()
	ctx := context.Background()

	var notices []ChangeNotice
	bus.Subscribe(notify.TopicRegistrationChange, func(payload any) {
		notices = append(notices, payload.(ChangeNotice))
	})

	_, err := ledger.Register(ctx, "user-1", 1)
	require.NoError(t, err)
	require.NoError(t, ledger.CheckIn(ctx, "user-1", 1))

	require.Equal(t, []ChangeNotice{
		{UserID: "user-1", EventID: 1, Status: StatusRegistered},
		{UserID: "user-1", EventID: 1, Status: StatusCheckedIn},
	}, notices)
}

func TestStatusTransitions(t *testing.T) {
	ctx := context.Background()

	t.Run("check-in then no-show fails", func(t *testing.T) {
		ledger, _, _ := newTestLedger()
		_, err := ledger.Register(ctx, "user-1", 1)
		require.NoError(t, err)

		require.NoError(t, ledger.CheckIn(ctx, "user-1", 1))
		require.ErrorIs(t, ledger.MarkNoShow(ctx, "user-1", 1), ErrInvalidStateTransition)
		require.ErrorIs(t, ledger.CheckIn(ctx, "user-1", 1), ErrInvalidStateTransition)

		record, err := ledger.GetRegistration(ctx, "user-1", 1)
		require.NoError(t, err)
		require.Equal(t, StatusCheckedIn, record.Status)
	})

	t.Run("no-show then check-in fails", func(t *testing.T) {
		ledger, _, _ := newTestLedger()
		_, err := ledger.Register(ctx, "user-1", 1)
		require.NoError(t, err)

		require.NoError(t, ledger.MarkNoShow(ctx, "user-1", 1))
		require.ErrorIs(t, ledger.CheckIn(ctx, "user-1", 1), ErrInvalidStateTransition)

		record, err := ledger.GetRegistration(ctx, "user-1", 1)
		require.NoError(t, err)
		require.Equal(t, StatusNoShow, record.Status)
	})

	t.Run("absent record", func(t *testing.T) {
		ledger, _, _ := newTestLedger()
		require.ErrorIs(t, ledger.CheckIn(ctx, "ghost", 1), ErrNotFound)
		require.ErrorIs(t, ledger.MarkNoShow(ctx, "ghost", 1), ErrNotFound)
	})
}

func TestGetRegistration(t *testing.T) {
	ledger, _, _ := newTestLedger()
	ctx := context.Background()

	created, err := ledger.Register(ctx, "user-1", 1)
	require.NoError(t, err)

	got, err := ledger.GetRegistration(ctx, "user-1", 1)
	require.NoError(t, err)
	require.Equal(t, created, got)

	_, err = ledger.GetRegistration(ctx, "user-1", 2)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUserRegistrations_NewestFirst(t *testing.T) {
	ledger, _, _ := newTestLedger()
	ctx := context.Background()

	for _, eventID := range []int{1, 2, 3} {
		_, err := ledger.Register(ctx, "user-1", eventID)
		require.NoError(t, err)
	}
	_, err := ledger.Register(ctx, "user-2", 1)
	require.NoError(t, err)

	records := ledger.UserRegistrations(ctx, "user-1")
	require.Len(t, records, 3)
	for i := 1; i < len(records); i++ {
		require.False(t, records[i].RegisteredAt.After(records[i-1].RegisteredAt))
	}

	require.Empty(t, ledger.UserRegistrations(ctx, "nobody"))
}

func TestEventRegistrations_OldestFirst(t *testing.T) {
	ledger, _, _ := newTestLedger()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := ledger.Register(ctx, fmt.Sprintf("user-%d", i), 5)
		require.NoError(t, err)
	}

	records := ledger.EventRegistrations(ctx, 5)
	require.Len(t, records, 3)
	for i := 1; i < len(records); i++ {
		require.False(t, records[i].RegisteredAt.Before(records[i-1].RegisteredAt))
	}
}

func TestEventAttendanceCount(t *testing.T) {
	ledger, _, _ := newTestLedger()
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := ledger.Register(ctx, fmt.Sprintf("user-%d", i), 2)
		require.NoError(t, err)
	}
	require.NoError(t, ledger.CheckIn(ctx, "user-0", 2))
	require.NoError(t, ledger.CheckIn(ctx, "user-1", 2))
	require.NoError(t, ledger.MarkNoShow(ctx, "user-2", 2))

	require.Equal(t, 2, ledger.EventAttendanceCount(ctx, 2))
	require.Equal(t, 0, ledger.EventAttendanceCount(ctx, 3))
}

func TestStats(t *testing.T) {
	ledger, _, _ := newTestLedger()
	ctx := context.Background()

	require.Equal(t, Stats{}, ledger.Stats(ctx))

	for i := 0; i < 5; i++ {
		_, err := ledger.Register(ctx, fmt.Sprintf("user-%d", i), 6)
		require.NoError(t, err)
	}
	require.NoError(t, ledger.CheckIn(ctx, "user-0", 6))
	require.NoError(t, ledger.CheckIn(ctx, "user-1", 6))
	require.NoError(t, ledger.MarkNoShow(ctx, "user-2", 6))

	require.Equal(t, Stats{
		Total:          5,
		CheckedIn:      2,
		NoShows:        1,
		PendingCheckIn: 2,
	}, ledger.Stats(ctx))
	require.Len(t, ledger.ListAll(ctx), 5)
}

func TestRegister_ConcurrentSamePairAdmitsOne(t *testing.T) {
	ledger, _, _ := newTestLedger()
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := ledger.Register(ctx, "user-1", 1); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, succeeded)
	require.Len(t, ledger.EventRegistrations(ctx, 1), 1)
}

func TestRegister_ConcurrentDistinctUsers(t *testing.T) {
	ledger, catalog, _ := newTestLedger()
	ctx := context.Background()

	// Event 15: capacity 24, 18 pre-registered, 6 spots.
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := ledger.Register(ctx, fmt.Sprintf("user-%d", i), 15); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	event, err := catalog.Get(ctx, 15)
	require.NoError(t, err)
	require.LessOrEqual(t, event.RegisteredCount, event.Capacity)
	require.GreaterOrEqual(t, succeeded, 6)
}
