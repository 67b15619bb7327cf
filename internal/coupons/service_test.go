package coupons

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/juancamilo2341431/netrix-backend/pkg/db/models"
	"github.com/juancamilo2341431/netrix-backend/pkg/enums"
	pkgerrors "github.com/juancamilo2341431/netrix-backend/pkg/errors"
)

type fakeCouponRepo struct {
	byCode map[string]*models.Coupon
}

func (f *fakeCouponRepo) Create(_ context.Context, c *models.Coupon) (*models.Coupon, error) {
	return c, nil
}
func (f *fakeCouponRepo) FindByID(_ context.Context, _ uuid.UUID) (*models.Coupon, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "coupon not found")
}
func (f *fakeCouponRepo) FindByCode(_ context.Context, code string) (*models.Coupon, error) {
	if c, ok := f.byCode[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return c, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "coupon not found")
}
func (f *fakeCouponRepo) ListAll(_ context.Context) ([]models.Coupon, error) { return nil, nil }
func (f *fakeCouponRepo) Update(_ context.Context, _ uuid.UUID, _ map[string]any) error {
	return nil
}
func (f *fakeCouponRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

func newCouponService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestApplyDiscount_RoundsDown(t *testing.T) {
	svc := newCouponService(t, &fakeCouponRepo{})
	coupon := &models.Coupon{Percent: decimal.NewFromFloat(33.33)}

	// 10001 * 0.6667 = 6667.6667, floored to whole minor units.
	got := svc.ApplyDiscount(coupon, 10001)
	if got != 6667 {
		t.Fatalf("expected 6667, got %d", got)
	}
}

func TestApplyDiscount_NilCouponKeepsAmount(t *testing.T) {
	svc := newCouponService(t, &fakeCouponRepo{})
	if got := svc.ApplyDiscount(nil, 15000); got != 15000 {
		t.Fatalf("expected 15000, got %d", got)
	}
}

func TestRedeemable(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)

	repo := &fakeCouponRepo{byCode: map[string]*models.Coupon{
		"SAVE10": {Code: "SAVE10", Percent: decimal.NewFromInt(10), Status: enums.CouponStatusActive},
		"OLD":    {Code: "OLD", Percent: decimal.NewFromInt(10), Status: enums.CouponStatusActive, ExpiresAt: &past},
		"OFF":    {Code: "OFF", Percent: decimal.NewFromInt(10), Status: enums.CouponStatusInactive},
	}}
	svc := newCouponService(t, repo)
	ctx := context.Background()

	if _, err := svc.Redeemable(ctx, "save10", now); err != nil {
		t.Fatalf("expected active coupon to redeem, got %v", err)
	}
	if _, err := svc.Redeemable(ctx, "OLD", now); err == nil {
		t.Fatal("expected expired coupon to be rejected")
	}
	if _, err := svc.Redeemable(ctx, "OFF", now); err == nil {
		t.Fatal("expected inactive coupon to be rejected")
	}
	if _, err := svc.Redeemable(ctx, "MISSING", now); err == nil {
		t.Fatal("expected unknown code to be rejected")
	}
}

func TestCreate_ValidatesPercent(t *testing.T) {
	svc := newCouponService(t, &fakeCouponRepo{})
	ctx := context.Background()

	_, err := svc.Create(ctx, nil, CreateInput{Code: "BAD", Percent: decimal.NewFromInt(150)})
	if err == nil {
		t.Fatal("expected error for percent above 100")
	}
	_, err = svc.Create(ctx, nil, CreateInput{Code: "BAD", Percent: decimal.Zero})
	if err == nil {
		t.Fatal("expected error for zero percent")
	}
}
