package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/offerdeck/backend/internal/infrastructure/journal"
	"github.com/offerdeck/backend/usecase"
)

// RecorderConfig controls journal retention.
type RecorderConfig struct {
	RetentionHours int
	SweepInterval  time.Duration
}

// JournalRecorder persists lifecycle transitions to the local journal and
// prunes old entries on a schedule. Recording never fails the originating
// operation; journal errors are logged and dropped.
type JournalRecorder struct {
	store  *journal.Store
	logger *zap.Logger
	cron   *cron.Cron
	cfg    RecorderConfig
}

func NewJournalRecorder(store *journal.Store, logger *zap.Logger, cfg RecorderConfig) *JournalRecorder {
	if cfg.RetentionHours <= 0 {
		cfg.RetentionHours = 168
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &JournalRecorder{
		store:  store,
		logger: logger,
		cfg:    cfg,
		cron:   cron.New(),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.SweepInterval.Seconds()))
	_, _ = r.cron.AddFunc(schedule, r.sweep)

	return r
}

// Start launches the retention scheduler.
func (r *JournalRecorder) Start() {
	if r == nil || r.cron == nil {
		return
	}
	r.cron.Start()
	r.logger.Info("journal recorder started",
		zap.Int("retention_hours", r.cfg.RetentionHours),
		zap.Duration("sweep_interval", r.cfg.SweepInterval))
}

// Stop gracefully stops the scheduler.
func (r *JournalRecorder) Stop(ctx context.Context) {
	if r == nil || r.cron == nil {
		return
	}
	stopCtx := r.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	r.logger.Info("journal recorder stopped")
}

// RecordTransition appends the transition to the journal, best-effort.
func (r *JournalRecorder) RecordTransition(ctx context.Context, t usecase.Transition) {
	if r == nil || r.store == nil {
		return
	}
	entry := journal.Entry{
		OfferID:     t.OfferID,
		PublisherID: t.PublisherID,
		Kind:        t.Kind,
		At:          t.At,
	}
	if err := r.store.Append(entry); err != nil {
		r.logger.Warn("failed to journal transition",
			zap.String("offer_id", t.OfferID),
			zap.String("kind", t.Kind),
			zap.Error(err))
	}
}

func (r *JournalRecorder) sweep() {
	cutoff := time.Now().Add(-time.Duration(r.cfg.RetentionHours) * time.Hour)
	if err := r.store.Cleanup(cutoff); err != nil {
		r.logger.Error("journal sweep failed", zap.Error(err))
		return
	}
	r.logger.Debug("journal sweep complete", zap.Time("cutoff", cutoff))
}

var _ usecase.TransitionRecorder = (*JournalRecorder)(nil)
