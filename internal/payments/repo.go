package payments

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/juancamilo2341431/netrix-backend/pkg/db/models"
	"github.com/juancamilo2341431/netrix-backend/pkg/enums"
	pkgerrors "github.com/juancamilo2341431/netrix-backend/pkg/errors"
)

type attemptRepository struct {
	db *gorm.DB
}

// NewAttemptRepository builds the payment attempt store bound to the provided DB.
func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) WithTx(tx *gorm.DB) AttemptRepository {
	if tx == nil {
		return r
	}
	return &attemptRepository{db: tx}
}

func (r *attemptRepository) Create(ctx context.Context, attempt *models.PaymentAttempt) (*models.PaymentAttempt, error) {
	if err := r.db.WithContext(ctx).Create(attempt).Error; err != nil {
		return nil, err
	}
	return attempt, nil
}

func (r *attemptRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.PaymentAttempt, error) {
	var attempt models.PaymentAttempt
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&attempt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment attempt not found")
		}
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindByExternalLinkID(ctx context.Context, linkID string) (*models.PaymentAttempt, error) {
	trimmed := strings.TrimSpace(linkID)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "link id is required")
	}
	var attempt models.PaymentAttempt
	err := r.db.WithContext(ctx).Where("external_link_id = ?", trimmed).First(&attempt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment attempt not found")
		}
		return nil, err
	}
	return &attempt, nil
}

// ListOutstanding returns the oldest attempts still awaiting payment, bounded
// by limit. Oldest-first ordering keeps the sweep from starving old rows when
// the backlog exceeds one batch.
func (r *attemptRepository) ListOutstanding(ctx context.Context, limit int) ([]models.PaymentAttempt, error) {
	if limit <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "limit must be positive")
	}
	statuses := enums.OutstandingAttemptStatuses()
	var attempts []models.PaymentAttempt
	err := r.db.WithContext(ctx).
		Where("status IN ?", statuses).
		Order("created_at ASC").
		Limit(limit).
		Find(&attempts).Error
	if err != nil {
		return nil, err
	}
	return attempts, nil
}

func (r *attemptRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.AttemptStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.PaymentAttempt{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":       status,
			"last_updated": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "payment attempt not found")
	}
	return nil
}

type renewalRepository struct {
	db *gorm.DB
}

// NewRenewalRepository builds the pending renewal store bound to the provided DB.
func NewRenewalRepository(db *gorm.DB) RenewalRepository {
	return &renewalRepository{db: db}
}

func (r *renewalRepository) WithTx(tx *gorm.DB) RenewalRepository {
	if tx == nil {
		return r
	}
	return &renewalRepository{db: tx}
}

func (r *renewalRepository) Create(ctx context.Context, renewal *models.PendingRenewal) (*models.PendingRenewal, error) {
	if err := r.db.WithContext(ctx).Create(renewal).Error; err != nil {
		return nil, err
	}
	return renewal, nil
}

func (r *renewalRepository) FindByReference(ctx context.Context, reference string) (*models.PendingRenewal, error) {
	trimmed := strings.TrimSpace(reference)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reference is required")
	}
	var renewal models.PendingRenewal
	err := r.db.WithContext(ctx).Where("reference = ?", trimmed).First(&renewal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "pending renewal not found")
		}
		return nil, err
	}
	return &renewal, nil
}

// MarkConsumed stamps consumed_at once; a second call reports false so a
// replayed settlement cannot double-apply.
func (r *renewalRepository) MarkConsumed(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.PendingRenewal{}).
		Where("id = ? AND consumed_at IS NULL", id).
		Update("consumed_at", time.Now())
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository builds the settled payments store bound to the provided DB.
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) WithTx(tx *gorm.DB) PaymentRepository {
	if tx == nil {
		return r
	}
	return &paymentRepository{db: tx}
}

func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		return nil, err
	}
	return payment, nil
}

func (r *paymentRepository) FindByReference(ctx context.Context, reference string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).Where("reference = ?", strings.TrimSpace(reference)).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment not found")
		}
		return nil, err
	}
	return &payment, nil
}
