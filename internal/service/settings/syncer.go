package settings

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Syncer periodically flushes parked settings writes back to storage.
// Each flush attempt is retried with exponential backoff before giving up
// until the next tick.
type Syncer struct {
	svc *Service
	log *slog.Logger

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewSyncer creates a syncer for the given settings service.
func NewSyncer(logger *slog.Logger, svc *Service) *Syncer {
	return &Syncer{
		svc:  svc,
		log:  logger.With("component", "settings_syncer"),
		stop: make(chan struct{}),
	}
}

// Start launches the sync loop. It returns immediately; Stop shuts the loop
// down and waits for an in-flight pass to finish.
func (s *Syncer) Start(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.svc.cfg.SyncInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.syncOnce(ctx)
			case <-ctx.Done():
				return
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop terminates the loop and blocks until it has exited.
func (s *Syncer) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
	s.wg.Wait()
}

// syncOnce flushes every parked write, retrying each with backoff.
func (s *Syncer) syncOnce(ctx context.Context) {
	pending := s.svc.takePending()
	if len(pending) == 0 {
		return
	}

	s.log.InfoContext(ctx, "flushing parked settings", slog.Int("count", len(pending)))

	for userID, parked := range pending {
		bo := backoff.NewExponentialBackOff()
		bo.InitialInterval = s.svc.cfg.InitialBackoff
		bo.MaxInterval = s.svc.cfg.MaxBackoff

		operation := func() error {
			_, err := s.svc.repo.UpdateSettings(ctx, userID, parked)
			return err
		}

		err := backoff.Retry(operation, backoff.WithContext(
			backoff.WithMaxRetries(bo, s.svc.cfg.MaxRetries), ctx))
		if err != nil {
			// Still dirty; the next tick picks it up again.
			s.log.ErrorContext(ctx, "settings flush failed",
				slog.String("user_id", userID.String()), "error", err)
			continue
		}

		s.svc.markFlushed(userID, parked)
	}
}
