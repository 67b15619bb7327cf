package sweep

import (
	"context"
	"fmt"
	"time"

	"github.com/juancamilo2341431/netrix-backend/internal/reconciler"
	"github.com/juancamilo2341431/netrix-backend/pkg/config"
	"github.com/juancamilo2341431/netrix-backend/pkg/db/models"
	"github.com/juancamilo2341431/netrix-backend/pkg/enums"
	"github.com/juancamilo2341431/netrix-backend/pkg/logger"
	"github.com/juancamilo2341431/netrix-backend/pkg/metrics"
)

// AttemptLister fetches the outstanding attempts for one sweep batch.
type AttemptLister interface {
	ListOutstanding(ctx context.Context, limit int) ([]models.PaymentAttempt, error)
}

// Reconciler drives one attempt to its settled status.
type Reconciler interface {
	Reconcile(ctx context.Context, input reconciler.Input) (*reconciler.Result, error)
}

// Summary aggregates the outcome of one sweep run.
type Summary struct {
	Reviewed      int
	SyncOK        int
	SyncErrors    int
	ForcedExpired int
}

// Service runs the periodic reconciliation sweep over outstanding attempts.
type Service struct {
	attempts AttemptLister
	gateway  Reconciler
	cfg      config.ReconcileConfig
	logg     *logger.Logger
	metrics  *metrics.ReconcileMetrics
	now      func() time.Time
}

// NewService builds the sweep service.
func NewService(attempts AttemptLister, gateway Reconciler, cfg config.ReconcileConfig, logg *logger.Logger, m *metrics.ReconcileMetrics) (*Service, error) {
	if attempts == nil {
		return nil, fmt.Errorf("attempt lister is required")
	}
	if gateway == nil {
		return nil, fmt.Errorf("reconciler gateway is required")
	}
	if cfg.BatchLimit <= 0 {
		return nil, fmt.Errorf("batch limit must be positive")
	}
	return &Service{
		attempts: attempts,
		gateway:  gateway,
		cfg:      cfg,
		logg:     logg,
		metrics:  m,
		now:      time.Now,
	}, nil
}

// Run examines one batch of outstanding attempts. Each attempt is handled
// sequentially; a failure on one item is counted and the loop continues.
func (s *Service) Run(ctx context.Context) (*Summary, error) {
	batch, err := s.attempts.ListOutstanding(ctx, s.cfg.BatchLimit)
	if err != nil {
		return nil, err
	}

	now := s.now()
	grace := s.cfg.Grace()
	summary := &Summary{Reviewed: len(batch)}

	forced := string(enums.AttemptStatusExpired)

	for i := range batch {
		attempt := &batch[i]

		switch {
		case now.After(attempt.ConfiguredExpiresAt.Add(grace)):
			// Past its configured window plus grace: expire without asking
			// the provider.
			_, err := s.gateway.Reconcile(ctx, reconciler.Input{
				AttemptID:   attempt.ID,
				ForceStatus: &forced,
			})
			if err != nil {
				summary.SyncErrors++
				s.logFailure(ctx, attempt, err)
				continue
			}
			summary.SyncOK++
			summary.ForcedExpired++

		case now.Sub(attempt.CreatedAt) > s.cfg.PendingThreshold:
			// Stale enough to warrant a live provider query.
			_, err := s.gateway.Reconcile(ctx, reconciler.Input{AttemptID: attempt.ID})
			if err != nil {
				summary.SyncErrors++
				s.logFailure(ctx, attempt, err)
				continue
			}
			summary.SyncOK++

		default:
			// Young attempt, leave it for a later sweep.
		}
	}

	if s.metrics != nil {
		s.metrics.ObserveSweep(summary.Reviewed, summary.SyncErrors, summary.ForcedExpired)
	}
	if s.logg != nil {
		s.logg.Info(ctx, fmt.Sprintf(
			"sweep finished: reviewed=%d ok=%d errors=%d forced=%d",
			summary.Reviewed, summary.SyncOK, summary.SyncErrors, summary.ForcedExpired,
		))
	}
	return summary, nil
}

func (s *Service) logFailure(ctx context.Context, attempt *models.PaymentAttempt, err error) {
	if s.logg == nil {
		return
	}
	ctx = s.logg.WithAttemptID(ctx, attempt.ID.String())
	s.logg.Error(ctx, "sweep item failed", err)
}
