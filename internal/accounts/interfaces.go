package accounts

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/juancamilo2341431/netrix-backend/pkg/db/models"
	"github.com/juancamilo2341431/netrix-backend/pkg/enums"
	"github.com/juancamilo2341431/netrix-backend/pkg/pagination"
)

// Repository defines persistence operations for rentable accounts.
//
// The conditional transition methods are the idempotency primitives of the
// payment pipeline: each one applies only when the row still holds the
// expected current state and reports whether anything changed.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
	List(ctx context.Context, params pagination.Params, filters Filters) (*List, error)
	ListAvailableByPlatform(ctx context.Context, platformID uuid.UUID) ([]models.Account, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error

	ReserveIfAvailable(ctx context.Context, id uuid.UUID) (bool, error)
	ReleaseIfReserved(ctx context.Context, id uuid.UUID) (bool, error)
	ReleaseIfRented(ctx context.Context, id uuid.UUID) (bool, error)
	MarkRentedIfReserved(ctx context.Context, id uuid.UUID) (bool, error)
}

// Filters narrows account listings in the back office.
type Filters struct {
	PlatformID *uuid.UUID
	State      *enums.AccountState
}

// List is one page of accounts plus the cursor for the next page.
type List struct {
	Items      []models.Account
	NextCursor *string
}
