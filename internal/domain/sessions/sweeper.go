package sessions

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// DefaultSweepInterval is how often the background sweep scans for idle
// sessions.
const DefaultSweepInterval = 30 * time.Minute

// Sweeper periodically expires idle sessions. It shares the manager's store
// primitives with foreground callers and never blocks them beyond a mutex
// acquisition.
type Sweeper struct {
	manager  *Manager
	interval time.Duration
	logger   zerolog.Logger
}

func NewSweeper(manager *Manager, interval time.Duration, logger zerolog.Logger) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Sweeper{
		manager:  manager,
		interval: interval,
		logger:   logger.With().Str("component", "session-sweeper").Logger(),
	}
}

// Run blocks until ctx is cancelled, sweeping on a fixed ticker. Sweep
// failures are swallowed; a broken sweep must never take the server down.
func (s *Sweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info().Dur("interval", s.interval).Msg("sweeper started")
	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("sweeper stopped")
			return ctx.Err()
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Interface("panic", r).Msg("sweep panicked")
		}
	}()
	s.manager.ExpireIdle(ctx)
}
