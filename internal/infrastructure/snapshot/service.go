// Package snapshot autosaves the live dock layout under a fixed name.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ncruces/go-sqlite3"

	"github.com/bnema/tabdock/internal/application/port"
	"github.com/bnema/tabdock/internal/application/usecase"
	"github.com/bnema/tabdock/internal/logging"
)

const (
	defaultInterval   = 2 * time.Second
	defaultRetries    = 2
	defaultRetryDelay = 100 * time.Millisecond
)

// Service handles debounced layout snapshots.
type Service struct {
	layouts  *usecase.ManageLayoutsUseCase
	provider port.LayoutProvider
	interval time.Duration

	retries    int
	retryDelay time.Duration

	mu     sync.Mutex
	timer  *time.Timer
	dirty  bool
	ready  bool // false while the host is still restoring, so nothing half-built is saved
	ctx    context.Context
	cancel context.CancelFunc
}

// NewService creates a new snapshot service.
func NewService(
	layouts *usecase.ManageLayoutsUseCase,
	provider port.LayoutProvider,
	intervalMs int,
) *Service {
	interval := defaultInterval
	if intervalMs > 0 {
		interval = time.Duration(intervalMs) * time.Millisecond
	}
	return &Service{
		layouts:    layouts,
		provider:   provider,
		interval:   interval,
		retries:    defaultRetries,
		retryDelay: defaultRetryDelay,
	}
}

// Start begins watching for dirty state.
func (s *Service) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx = logging.WithComponent(ctx, "autosave")
	s.ctx, s.cancel = context.WithCancel(ctx)
	logging.FromContext(ctx).Debug().Dur("interval", s.interval).Msg("layout autosave started")
}

// SetReady marks the service as ready to save. A change recorded before
// SetReady is saved right away.
func (s *Service) SetReady() {
	s.mu.Lock()
	s.ready = true
	dirty := s.dirty
	ctx := s.ctx
	s.mu.Unlock()

	if dirty && ctx != nil {
		go func() {
			if err := s.saveSnapshot(ctx); err != nil {
				logging.FromContext(ctx).Error().Err(err).Msg("failed to save pending layout snapshot")
			}
		}()
	}
}

// Stop stops the service and saves final state.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	// Final save on shutdown
	return s.SaveNow(ctx)
}

// MarkDirty signals that the layout changed.
// Debounces saves to avoid excessive DB writes.
func (s *Service) MarkDirty() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dirty = true

	if s.timer != nil {
		s.timer.Stop()
	}

	s.timer = time.AfterFunc(s.interval, func() {
		s.mu.Lock()
		ctx := s.ctx
		s.mu.Unlock()

		if ctx == nil || ctx.Err() != nil {
			return
		}

		if err := s.saveSnapshot(ctx); err != nil {
			logging.FromContext(ctx).Error().Err(err).Msg("failed to save layout snapshot")
		}
	})
}

// OnLayoutChange adapts MarkDirty to DockLayoutUseCase.Subscribe.
func (s *Service) OnLayoutChange(usecase.LayoutChange) {
	s.MarkDirty()
}

// SaveNow forces immediate save (for shutdown).
func (s *Service) SaveNow(ctx context.Context) error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	dirty := s.dirty
	s.mu.Unlock()

	if !dirty {
		return nil
	}

	return s.saveSnapshot(ctx)
}

func (s *Service) saveSnapshot(ctx context.Context) error {
	s.mu.Lock()
	if !s.ready {
		// keep the pending change for SetReady
		s.mu.Unlock()
		return nil
	}
	s.dirty = false
	s.mu.Unlock()

	name := s.provider.LayoutName()
	if name == "" {
		return nil
	}

	var err error
	for attempt := 0; attempt <= s.retries; attempt++ {
		if attempt > 0 {
			logging.FromContext(ctx).Debug().Int("attempt", attempt).Err(err).Msg("retrying layout snapshot")
			select {
			case <-ctx.Done():
				s.markDirty()
				return errors.Join(err, ctx.Err())
			case <-time.After(s.retryDelay):
			}
		}
		_, err = s.layouts.Save(ctx, name, s.provider.CurrentLayout())
		if err == nil || !isBusy(err) {
			break
		}
	}
	if err != nil {
		s.markDirty()
		return fmt.Errorf("layout snapshot %q: %w", name, err)
	}
	return nil
}

func (s *Service) markDirty() {
	s.mu.Lock()
	s.dirty = true
	s.mu.Unlock()
}

// isBusy matches SQLite lock contention, which clears on its own.
func isBusy(err error) bool {
	return errors.Is(err, sqlite3.BUSY) || errors.Is(err, sqlite3.LOCKED)
}
