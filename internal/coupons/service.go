package coupons

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/juancamilo2341431/netrix-backend/pkg/db"
	"github.com/juancamilo2341431/netrix-backend/pkg/db/models"
	"github.com/juancamilo2341431/netrix-backend/pkg/enums"
	pkgerrors "github.com/juancamilo2341431/netrix-backend/pkg/errors"
)

var hundred = decimal.NewFromInt(100)

// AuditRecorder captures back-office mutations for the audit trail.
type AuditRecorder interface {
	Record(ctx context.Context, actorID *uuid.UUID, action enums.AuditAction, entityType string, entityID *uuid.UUID, detail string)
}

// Service exposes coupon management and checkout redemption.
type Service interface {
	Create(ctx context.Context, actorID *uuid.UUID, input CreateInput) (*models.Coupon, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Coupon, error)
	ListAll(ctx context.Context) ([]models.Coupon, error)
	Update(ctx context.Context, actorID *uuid.UUID, id uuid.UUID, input UpdateInput) (*models.Coupon, error)
	Delete(ctx context.Context, actorID *uuid.UUID, id uuid.UUID) error

	Redeemable(ctx context.Context, code string, now time.Time) (*models.Coupon, error)
	ApplyDiscount(coupon *models.Coupon, amountMinorUnits int64) int64
}

// CreateInput carries the fields for a new coupon.
type CreateInput struct {
	Code      string
	Percent   decimal.Decimal
	ExpiresAt *time.Time
}

// UpdateInput carries optional field changes; nil means leave untouched.
type UpdateInput struct {
	Percent   *decimal.Decimal
	Status    *enums.CouponStatus
	ExpiresAt *time.Time
}

type service struct {
	repo  Repository
	audit AuditRecorder
}

// NewService builds the coupon service.
func NewService(repo Repository, audit AuditRecorder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("coupons repository is required")
	}
	return &service{repo: repo, audit: audit}, nil
}

func (s *service) Create(ctx context.Context, actorID *uuid.UUID, input CreateInput) (*models.Coupon, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupon code is required")
	}
	if err := validatePercent(input.Percent); err != nil {
		return nil, err
	}

	coupon := &models.Coupon{
		Code:      code,
		Percent:   input.Percent,
		Status:    enums.CouponStatusActive,
		ExpiresAt: input.ExpiresAt,
	}
	created, err := s.repo.Create(ctx, coupon)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "coupon code already exists")
		}
		return nil, err
	}
	s.record(ctx, actorID, enums.AuditActionCreate, created.ID, "coupon created")
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Coupon, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListAll(ctx context.Context) ([]models.Coupon, error) {
	return s.repo.ListAll(ctx)
}

func (s *service) Update(ctx context.Context, actorID *uuid.UUID, id uuid.UUID, input UpdateInput) (*models.Coupon, error) {
	updates := map[string]any{}
	if input.Percent != nil {
		if err := validatePercent(*input.Percent); err != nil {
			return nil, err
		}
		updates["percent"] = *input.Percent
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid coupon status")
		}
		updates["status"] = *input.Status
	}
	if input.ExpiresAt != nil {
		updates["expires_at"] = *input.ExpiresAt
	}
	if len(updates) == 0 {
		return s.repo.FindByID(ctx, id)
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, err
	}
	s.record(ctx, actorID, enums.AuditActionUpdate, id, "coupon updated")
	return s.repo.FindByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, actorID *uuid.UUID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actorID, enums.AuditActionDelete, id, "coupon deleted")
	return nil
}

// Redeemable returns the coupon only when it is active and unexpired.
func (s *service) Redeemable(ctx context.Context, code string, now time.Time) (*models.Coupon, error) {
	coupon, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if coupon.Status != enums.CouponStatusActive {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "coupon is not active")
	}
	if coupon.ExpiresAt != nil && now.After(*coupon.ExpiresAt) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "coupon has expired")
	}
	return coupon, nil
}

// ApplyDiscount reduces the amount by the coupon percentage, rounding down
// to whole minor units. A nil coupon leaves the amount unchanged.
func (s *service) ApplyDiscount(coupon *models.Coupon, amountMinorUnits int64) int64 {
	if coupon == nil || amountMinorUnits <= 0 {
		return amountMinorUnits
	}
	amount := decimal.NewFromInt(amountMinorUnits)
	factor := hundred.Sub(coupon.Percent).Div(hundred)
	return amount.Mul(factor).Floor().IntPart()
}

func validatePercent(percent decimal.Decimal) error {
	if percent.LessThanOrEqual(decimal.Zero) || percent.GreaterThan(hundred) {
		return pkgerrors.New(pkgerrors.CodeValidation, "percent must be in (0, 100]")
	}
	return nil
}

func (s *service) record(ctx context.Context, actorID *uuid.UUID, action enums.AuditAction, entityID uuid.UUID, detail string) {
	if s.audit == nil {
		return
	}
	id := entityID
	s.audit.Record(ctx, actorID, action, "coupon", &id, detail)
}
