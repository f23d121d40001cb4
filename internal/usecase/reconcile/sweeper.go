package reconcile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	"github.com/johnquangdev/meeting-notes/internal/domain/repositories"
	"github.com/johnquangdev/meeting-notes/internal/usecase/notify"
	"github.com/johnquangdev/meeting-notes/pkg/deadline"
	"github.com/johnquangdev/meeting-notes/pkg/jobcontext"
)

// LeaseKey is the lease held for the duration of one sweep
const LeaseKey = "meeting-notes:sweep"

// Record outcomes within a sweep
const (
	StatusSent       = "sent"
	StatusReady      = "ready"
	StatusIncomplete = "incomplete"
	StatusFailed     = "failed"
	StatusMarkFailed = "mark_failed"
)

// Options configures a Sweeper
type Options struct {
	PageSize     int
	StoreTimeout time.Duration
	LeaseTTL     time.Duration
	// Timeout bounds the whole sweep, whatever triggered it. Zero means
	// only the caller's deadline applies.
	Timeout time.Duration
}

// RecordStatus is the outcome of one record in a sweep
type RecordStatus struct {
	ID          string `json:"id"`
	MeetingName string `json:"meeting_name"`
	URL         string `json:"url"`
	Status      string `json:"status"`
	Reason      string `json:"reason,omitempty"`
}

// SweepResult summarises one sweep
type SweepResult struct {
	Processed int            `json:"processed"`
	Skipped   int            `json:"skipped"`
	Failed    int            `json:"failed"`
	HasMore   bool           `json:"has_more"`
	DryRun    bool           `json:"dry_run,omitempty"`
	Records   []RecordStatus `json:"records"`
}

// Message is a human-readable summary of the sweep
func (r *SweepResult) Message() string {
	if len(r.Records) == 0 {
		return "No unsent meeting summaries found"
	}
	if r.DryRun {
		ready := 0
		for _, rec := range r.Records {
			if rec.Status == StatusReady {
				ready++
			}
		}
		return fmt.Sprintf("%d of %d unsent meeting summaries ready to send", ready, len(r.Records))
	}
	return fmt.Sprintf("Processed %d meeting summaries", r.Processed)
}

// Sweeper re-delivers notifications for records left unsent
type Sweeper struct {
	store  repositories.RecordStore
	sender notify.Sender
	lease  repositories.Lease
	opts   Options
	logger *zap.Logger
}

// NewSweeper creates a Sweeper. lease may be nil.
func NewSweeper(store repositories.RecordStore, sender notify.Sender, lease repositories.Lease, opts Options, logger *zap.Logger) *Sweeper {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.PageSize < 1 {
		opts.PageSize = 5
	}
	return &Sweeper{
		store:  store,
		sender: sender,
		lease:  lease,
		opts:   opts,
		logger: logger,
	}
}

// Sweep sends every deliverable unsent record in one page and marks it sent
// after a successful dispatch.
func (s *Sweeper) Sweep(ctx context.Context) (*SweepResult, error) {
	return s.run(ctx, false)
}

// DryRun reports what Sweep would send without dispatching or writing
func (s *Sweeper) DryRun(ctx context.Context) (*SweepResult, error) {
	return s.run(ctx, true)
}

func (s *Sweeper) run(ctx context.Context, dryRun bool) (*SweepResult, error) {
	logger := s.logger.With(jobcontext.Fields(ctx)...)

	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	if s.lease != nil && !dryRun {
		acquired, err := s.lease.Acquire(ctx, LeaseKey, s.opts.LeaseTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to acquire sweep lease: %w", err)
		}
		if !acquired {
			return nil, entities.ErrSweepInProgress
		}
		defer func() {
			if err := s.lease.Release(context.WithoutCancel(ctx), LeaseKey); err != nil {
				logger.Warn("⚠️ Failed to release sweep lease", zap.Error(err))
			}
		}()
	}

	page, err := deadline.Run(ctx, "store.query_unsent", s.opts.StoreTimeout, func(ctx context.Context) (*entities.RecordPage, error) {
		return s.store.QueryUnsent(ctx, s.opts.PageSize)
	})
	if err != nil {
		return nil, err
	}
	if page == nil {
		page = &entities.RecordPage{}
	}

	result := &SweepResult{HasMore: page.HasMore, DryRun: dryRun, Records: []RecordStatus{}}
	seen := make(map[string]struct{}, len(page.Records))

	for _, record := range page.Records {
		if ctx.Err() != nil {
			// Out of time; whatever is left stays unsent for the next sweep.
			result.HasMore = true
			logger.Warn("⏱️ Sweep deadline reached, stopping early", zap.Error(ctx.Err()))
			break
		}
		if _, dup := seen[record.ID]; dup {
			logger.Debug("Skipping duplicate record in sweep", zap.String("record_id", record.ID))
			continue
		}
		seen[record.ID] = struct{}{}

		fields := readRecord(logger, record)
		status := RecordStatus{ID: record.ID, MeetingName: fields.MeetingName, URL: record.URL}

		if strings.TrimSpace(fields.MeetingName) == "" || strings.TrimSpace(fields.Summary) == "" {
			status.Status = StatusIncomplete
			status.Reason = "meeting name or summary is empty"
			result.Skipped++
			result.Records = append(result.Records, status)
			logger.Info("⏭️ Skipping incomplete record",
				zap.String("record_id", record.ID),
			)
			continue
		}

		if dryRun {
			status.Status = StatusReady
			result.Records = append(result.Records, status)
			continue
		}

		delivery := s.sender.Send(ctx, entities.Notification{
			RecordID:     record.ID,
			MeetingName:  fields.MeetingName,
			Summary:      fields.Summary,
			ActionItems:  fields.ActionItems,
			KeyQuestions: fields.KeyQuestions,
			RecordURL:    record.URL,
		})
		if !delivery.Sent {
			status.Status = StatusFailed
			status.Reason = delivery.Message
			result.Failed++
			result.Records = append(result.Records, status)
			continue
		}

		err := deadline.Do(ctx, "store.mark_sent", s.opts.StoreTimeout, func(ctx context.Context) error {
			return s.store.MarkSent(ctx, record.ID)
		})
		if err != nil {
			// The email went out but the flag did not flip; the next sweep resends.
			status.Status = StatusMarkFailed
			status.Reason = err.Error()
			result.Failed++
			result.Records = append(result.Records, status)
			logger.Error("❌ Failed to mark record as sent",
				zap.String("record_id", record.ID),
				zap.Error(err),
			)
			continue
		}

		status.Status = StatusSent
		result.Processed++
		result.Records = append(result.Records, status)
	}

	logger.Info("✅ Sweep finished",
		zap.Bool("dry_run", dryRun),
		zap.Int("processed", result.Processed),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed),
		zap.Bool("has_more", result.HasMore),
	)
	return result, nil
}
