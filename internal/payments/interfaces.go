package payments

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/juancamilo2341431/netrix-backend/pkg/db/models"
	"github.com/juancamilo2341431/netrix-backend/pkg/enums"
)

// AttemptRepository persists payment attempts. ExternalLinkID, CreatedAt and
// ConfiguredExpiresAt never change after insert; only Status and LastUpdated
// move afterwards.
type AttemptRepository interface {
	WithTx(tx *gorm.DB) AttemptRepository
	Create(ctx context.Context, attempt *models.PaymentAttempt) (*models.PaymentAttempt, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.PaymentAttempt, error)
	FindByExternalLinkID(ctx context.Context, linkID string) (*models.PaymentAttempt, error)
	ListOutstanding(ctx context.Context, limit int) ([]models.PaymentAttempt, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.AttemptStatus) error
}

// RenewalRepository stages checkout state between payment-link redirect hops,
// keyed by the provider order reference.
type RenewalRepository interface {
	WithTx(tx *gorm.DB) RenewalRepository
	Create(ctx context.Context, renewal *models.PendingRenewal) (*models.PendingRenewal, error)
	FindByReference(ctx context.Context, reference string) (*models.PendingRenewal, error)
	MarkConsumed(ctx context.Context, id uuid.UUID) (bool, error)
}

// PaymentRepository persists settled payments.
type PaymentRepository interface {
	WithTx(tx *gorm.DB) PaymentRepository
	Create(ctx context.Context, payment *models.Payment) (*models.Payment, error)
	FindByReference(ctx context.Context, reference string) (*models.Payment, error)
}
