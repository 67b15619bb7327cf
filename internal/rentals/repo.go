package rentals

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/juancamilo2341431/netrix-backend/pkg/db/models"
	"github.com/juancamilo2341431/netrix-backend/pkg/enums"
	pkgerrors "github.com/juancamilo2341431/netrix-backend/pkg/errors"
	"github.com/juancamilo2341431/netrix-backend/pkg/pagination"
)

// Repository defines persistence operations for rentals.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, rental *models.Rental) (*models.Rental, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Rental, error)
	List(ctx context.Context, params pagination.Params, filters Filters) (*List, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.RentalStatus) error
	FindActiveEndedBefore(ctx context.Context, cutoff time.Time) ([]models.Rental, error)
}

// Filters narrows rental listings in the back office.
type Filters struct {
	AccountID *uuid.UUID
	Status    *enums.RentalStatus
}

// List is one page of rentals plus the cursor for the next page.
type List struct {
	Items      []models.Rental
	NextCursor *string
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a rentals repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, rental *models.Rental) (*models.Rental, error) {
	if err := r.db.WithContext(ctx).Create(rental).Error; err != nil {
		return nil, err
	}
	return rental, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Rental, error) {
	var rental models.Rental
	err := r.db.WithContext(ctx).
		Preload("Account").
		Preload("Payment").
		Where("id = ?", id).
		First(&rental).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "rental not found")
		}
		return nil, err
	}
	return &rental, nil
}

func (r *repository) List(ctx context.Context, params pagination.Params, filters Filters) (*List, error) {
	limit := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).Model(&models.Rental{}).Preload("Account")
	if filters.AccountID != nil {
		query = query.Where("account_id = ?", *filters.AccountID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var items []models.Rental
	err = query.
		Order("created_at DESC, id DESC").
		Limit(limit + 1).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	list := &List{Items: items}
	if len(items) > limit {
		list.Items = items[:limit]
		last := list.Items[limit-1]
		next := pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		list.NextCursor = &next
	}
	return list, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.RentalStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.Rental{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "rental not found")
	}
	return nil
}

func (r *repository) FindActiveEndedBefore(ctx context.Context, cutoff time.Time) ([]models.Rental, error) {
	var items []models.Rental
	err := r.db.WithContext(ctx).
		Where("status = ? AND ends_at < ?", enums.RentalStatusActive, cutoff).
		Order("ends_at ASC").
		Find(&items).Error
	return items, err
}
