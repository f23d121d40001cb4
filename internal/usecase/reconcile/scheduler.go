package reconcile

import (
	"context"
	stdErrors "errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	"github.com/johnquangdev/meeting-notes/pkg/jobcontext"
)

// Sweepable runs one reconciliation sweep
type Sweepable interface {
	Sweep(ctx context.Context) (*SweepResult, error)
}

// Scheduler runs a sweep on a fixed interval
type Scheduler struct {
	sweeper  Sweepable
	interval time.Duration
	timeout  time.Duration
	logger   *zap.Logger

	stopChan  chan struct{}
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewScheduler creates a Scheduler. timeout bounds each sweep.
func NewScheduler(sweeper Sweepable, interval, timeout time.Duration, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		sweeper:  sweeper,
		interval: interval,
		timeout:  timeout,
		logger:   logger,
	}
}

// Start launches the sweep loop. It returns an error if already running or
// the interval is not positive.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("sweep scheduler already running")
	}
	if s.interval <= 0 {
		return fmt.Errorf("sweep interval must be positive, got %s", s.interval)
	}

	s.isRunning = true
	s.stopChan = make(chan struct{})

	s.logger.Info("🚀 Starting sweep scheduler", zap.Duration("interval", s.interval))

	s.wg.Add(1)
	go s.loop(ctx)
	return nil
}

// Stop waits for the in-flight sweep, if any, and stops the loop
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return fmt.Errorf("sweep scheduler not running")
	}

	close(s.stopChan)
	s.wg.Wait()
	s.isRunning = false

	s.logger.Info("✅ Sweep scheduler stopped")
	return nil
}

func (s *Scheduler) loop(parentCtx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-parentCtx.Done():
			return
		case <-ticker.C:
			s.tick(parentCtx)
		}
	}
}

func (s *Scheduler) tick(parentCtx context.Context) {
	ctx := jobcontext.JobBegin(parentCtx, jobcontext.JobTypeSweepScheduled)
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	logger := s.logger.With(jobcontext.Fields(ctx)...)
	result, err := s.sweeper.Sweep(ctx)
	switch {
	case err == nil:
		if result.HasMore {
			logger.Info("📬 More unsent records remain after sweep",
				zap.Int("processed", result.Processed),
			)
		}
	case stdErrors.Is(err, entities.ErrSweepInProgress):
		logger.Info("⏭️ Sweep already in progress, skipping tick")
	default:
		logger.Error("❌ Scheduled sweep failed", zap.Error(err))
	}
}
