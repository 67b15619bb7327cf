package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/juancamilo2341431/netrix-backend/internal/accounts"
	"github.com/juancamilo2341431/netrix-backend/internal/payments"
	"github.com/juancamilo2341431/netrix-backend/internal/rentals"
	"github.com/juancamilo2341431/netrix-backend/pkg/db/models"
	"github.com/juancamilo2341431/netrix-backend/pkg/enums"
	pkgerrors "github.com/juancamilo2341431/netrix-backend/pkg/errors"
	"github.com/juancamilo2341431/netrix-backend/pkg/logger"
)

// rentalDays is the rental window opened by one settled renewal.
const rentalDays = 30

// AuditRecorder captures settlements for the audit trail.
type AuditRecorder interface {
	Record(ctx context.Context, actorID *uuid.UUID, action enums.AuditAction, entityType string, entityID *uuid.UUID, detail string)
}

// SettleResult reports what one settlement redirect achieved.
type SettleResult struct {
	Reference        string
	RenewedCount     int
	AlreadyProcessed bool
}

// SettlementService consumes the staged renewal when the customer returns
// from the provider's payment page.
type SettlementService struct {
	renewals payments.RenewalRepository
	payments payments.PaymentRepository
	attempts payments.AttemptRepository
	accounts accounts.Repository
	rentals  rentals.Repository
	tx       txRunner
	audit    AuditRecorder
	logg     *logger.Logger
	now      func() time.Time
}

// NewSettlementService builds the settlement service.
func NewSettlementService(
	renewalRepo payments.RenewalRepository,
	paymentRepo payments.PaymentRepository,
	attemptRepo payments.AttemptRepository,
	accountRepo accounts.Repository,
	rentalRepo rentals.Repository,
	tx txRunner,
	audit AuditRecorder,
	logg *logger.Logger,
) (*SettlementService, error) {
	if renewalRepo == nil || paymentRepo == nil || attemptRepo == nil || accountRepo == nil || rentalRepo == nil {
		return nil, fmt.Errorf("repositories are required")
	}
	if tx == nil {
		return nil, fmt.Errorf("tx runner is required")
	}
	return &SettlementService{
		renewals: renewalRepo,
		payments: paymentRepo,
		attempts: attemptRepo,
		accounts: accountRepo,
		rentals:  rentalRepo,
		tx:       tx,
		audit:    audit,
		logg:     logg,
		now:      time.Now,
	}, nil
}

// Settle looks up the staged renewal by the redirect reference and applies
// it: payment record, rentals, account flips, attempt marked PAID. An
// unknown reference is a failed settlement and writes nothing. A replayed
// reference is acknowledged without re-applying.
//
// The staging row and the payment record commit in one transaction; each
// account renewal then commits on its own, so a failure on one account
// cannot roll back renewals that already landed.
func (s *SettlementService) Settle(ctx context.Context, reference string) (*SettleResult, error) {
	trimmed := strings.TrimSpace(reference)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reference is required")
	}

	renewal, err := s.renewals.FindByReference(ctx, trimmed)
	if err != nil {
		return nil, err
	}
	if renewal.ConsumedAt != nil {
		return &SettleResult{Reference: trimmed, AlreadyProcessed: true}, nil
	}

	result := &SettleResult{Reference: trimmed}
	payment := &models.Payment{
		Reference:   trimmed,
		AmountTotal: renewal.AmountTotal,
		Method:      "payment_link",
	}
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		consumed, err := s.renewals.WithTx(tx).MarkConsumed(ctx, renewal.ID)
		if err != nil {
			return err
		}
		if !consumed {
			result.AlreadyProcessed = true
			return nil
		}
		_, err = s.payments.WithTx(tx).Create(ctx, payment)
		return err
	})
	if err != nil {
		return nil, err
	}
	if result.AlreadyProcessed {
		return result, nil
	}

	// Failures are collected and logged as one combined error after the loop.
	var accountErrs error
	for _, accountID := range renewal.AccountIDs {
		if err := s.renewAccount(ctx, payment.ID, accountID); err != nil {
			accountErrs = multierr.Append(accountErrs, fmt.Errorf("account %s: %w", accountID, err))
			continue
		}
		result.RenewedCount++
	}
	if accountErrs != nil && s.logg != nil {
		s.logg.Error(ctx, "settlement could not renew every account", accountErrs)
	}

	if err := s.markAttemptPaid(ctx, trimmed); err != nil {
		return nil, err
	}

	if s.audit != nil {
		s.audit.Record(ctx, nil, enums.AuditActionSettlement, "payment", nil,
			fmt.Sprintf("settled %s: %d account(s) renewed", trimmed, result.RenewedCount))
	}
	if s.logg != nil {
		s.logg.Info(ctx, fmt.Sprintf("settlement %s done: renewed=%d replay=%t", trimmed, result.RenewedCount, result.AlreadyProcessed))
	}
	return result, nil
}

// renewAccount flips one reserved account to rented and opens its rental
// window, in a transaction of its own.
func (s *SettlementService) renewAccount(ctx context.Context, paymentID, accountID uuid.UUID) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		rented, err := s.accounts.WithTx(tx).MarkRentedIfReserved(ctx, accountID)
		if err != nil {
			return err
		}
		if !rented {
			return fmt.Errorf("not reserved")
		}
		now := s.now()
		rental := &models.Rental{
			AccountID: accountID,
			PaymentID: paymentID,
			Status:    enums.RentalStatusActive,
			StartsAt:  now,
			EndsAt:    now.AddDate(0, 0, rentalDays),
		}
		_, err = s.rentals.WithTx(tx).Create(ctx, rental)
		return err
	})
}

// markAttemptPaid settles the attempt that minted this link. A missing row
// is tolerated so out-of-band references still settle; any other lookup
// failure surfaces so the sweep does not silently keep re-checking a link
// that already paid out.
func (s *SettlementService) markAttemptPaid(ctx context.Context, linkID string) error {
	attempt, err := s.attempts.FindByExternalLinkID(ctx, linkID)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			return nil
		}
		return err
	}
	return s.attempts.UpdateStatus(ctx, attempt.ID, enums.AttemptStatusPaid)
}

