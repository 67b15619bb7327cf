package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/juancamilo2341431/netrix-backend/internal/accounts"
	"github.com/juancamilo2341431/netrix-backend/internal/payments"
	"github.com/juancamilo2341431/netrix-backend/pkg/bold"
	"github.com/juancamilo2341431/netrix-backend/pkg/config"
	"github.com/juancamilo2341431/netrix-backend/pkg/db/models"
	dbtypes "github.com/juancamilo2341431/netrix-backend/pkg/db/types"
	"github.com/juancamilo2341431/netrix-backend/pkg/enums"
	pkgerrors "github.com/juancamilo2341431/netrix-backend/pkg/errors"
	"github.com/juancamilo2341431/netrix-backend/pkg/logger"
)

// LinkCreator mints payment links at the provider.
type LinkCreator interface {
	CreatePaymentLink(ctx context.Context, req bold.CreateLinkRequest) (*bold.PaymentLink, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// CouponRedeemer resolves and prices a coupon at checkout.
type CouponRedeemer interface {
	Redeemable(ctx context.Context, code string, now time.Time) (*models.Coupon, error)
	ApplyDiscount(coupon *models.Coupon, amountMinorUnits int64) int64
}

// IssueInput describes one payment-link request for an account renewal.
type IssueInput struct {
	AccountID         uuid.UUID
	TotalAmount       decimal.Decimal
	Description       string
	ExpirationSeconds int
	CouponCode        string
	CustomerContact   *string
}

// IssueResult carries the minted link back to the storefront.
type IssueResult struct {
	PaymentLinkURL string
	OrderReference string
}

// IssuanceService reserves an account, mints the provider link and stages
// the renewal for settlement.
type IssuanceService struct {
	provider LinkCreator
	accounts accounts.Repository
	attempts payments.AttemptRepository
	renewals payments.RenewalRepository
	coupons  CouponRedeemer
	tx       txRunner
	cfg      config.BoldConfig
	baseURL  string
	logg     *logger.Logger
	now      func() time.Time
}

// NewIssuanceService builds the link issuance service.
func NewIssuanceService(
	provider LinkCreator,
	accountsRepo accounts.Repository,
	attempts payments.AttemptRepository,
	renewals payments.RenewalRepository,
	couponSvc CouponRedeemer,
	tx txRunner,
	cfg config.BoldConfig,
	publicBaseURL string,
	logg *logger.Logger,
) (*IssuanceService, error) {
	if provider == nil {
		return nil, fmt.Errorf("provider client is required")
	}
	if accountsRepo == nil || attempts == nil || renewals == nil {
		return nil, fmt.Errorf("repositories are required")
	}
	if tx == nil {
		return nil, fmt.Errorf("tx runner is required")
	}
	return &IssuanceService{
		provider: provider,
		accounts: accountsRepo,
		attempts: attempts,
		renewals: renewals,
		coupons:  couponSvc,
		tx:       tx,
		cfg:      cfg,
		baseURL:  strings.TrimRight(publicBaseURL, "/"),
		logg:     logg,
		now:      time.Now,
	}, nil
}

// Issue validates the request, reserves the account, mints the payment link
// and persists the attempt plus the settlement staging row. Validation
// failures never reach the provider.
func (s *IssuanceService) Issue(ctx context.Context, input IssueInput) (*IssueResult, error) {
	if input.AccountID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "account id is required")
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "description is required")
	}
	if input.TotalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}
	if !input.TotalAmount.IsInteger() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be a whole number of minor units")
	}

	amount := input.TotalAmount.IntPart()
	now := s.now()

	var coupon *models.Coupon
	if code := strings.TrimSpace(input.CouponCode); code != "" {
		if s.coupons == nil {
			return nil, pkgerrors.New(pkgerrors.CodeConfiguration, "coupons are not enabled")
		}
		redeemed, err := s.coupons.Redeemable(ctx, code, now)
		if err != nil {
			return nil, err
		}
		coupon = redeemed
		amount = s.coupons.ApplyDiscount(coupon, amount)
		if amount <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "discounted amount must remain positive")
		}
	}

	expiration := input.ExpirationSeconds
	if expiration <= 0 {
		expiration = s.cfg.DefaultExpiration
	}

	reserved, err := s.accounts.ReserveIfAvailable(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}
	if !reserved {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "account is not available")
	}

	link, err := s.provider.CreatePaymentLink(ctx, bold.CreateLinkRequest{
		AmountMinorUnits:  amount,
		Description:       input.Description,
		ExpirationSeconds: expiration,
		CallbackURL:       s.callbackURL(),
	})
	if err != nil {
		// The reservation must not outlive a failed link mint.
		if _, releaseErr := s.accounts.ReleaseIfReserved(ctx, input.AccountID); releaseErr != nil && s.logg != nil {
			s.logg.Error(ctx, "failed to release account after provider error", releaseErr)
		}
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		attempt := &models.PaymentAttempt{
			ExternalLinkID:      link.LinkID,
			AccountID:           input.AccountID,
			Status:              enums.AttemptStatusPending,
			ConfiguredExpiresAt: now.Add(time.Duration(expiration) * time.Second),
		}
		if _, err := s.attempts.WithTx(tx).Create(ctx, attempt); err != nil {
			return err
		}

		renewal := &models.PendingRenewal{
			Reference:       link.LinkID,
			AccountIDs:      dbtypes.UUIDArray{input.AccountID},
			AmountTotal:     amount,
			CustomerContact: input.CustomerContact,
		}
		if coupon != nil {
			couponID := coupon.ID
			renewal.CouponID = &couponID
		}
		if _, err := s.renewals.WithTx(tx).Create(ctx, renewal); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		if _, releaseErr := s.accounts.ReleaseIfReserved(ctx, input.AccountID); releaseErr != nil && s.logg != nil {
			s.logg.Error(ctx, "failed to release account after staging error", releaseErr)
		}
		return nil, err
	}

	if s.logg != nil {
		ctx = s.logg.WithAccountID(ctx, input.AccountID.String())
		s.logg.Info(ctx, fmt.Sprintf("payment link issued: %s", link.LinkID))
	}

	return &IssueResult{
		PaymentLinkURL: link.URL,
		OrderReference: link.LinkID,
	}, nil
}

func (s *IssuanceService) callbackURL() string {
	if s.baseURL == "" {
		return ""
	}
	return s.baseURL + "/api/v1/checkout/confirm"
}
