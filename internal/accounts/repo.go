package accounts

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/juancamilo2341431/netrix-backend/pkg/db/models"
	"github.com/juancamilo2341431/netrix-backend/pkg/enums"
	pkgerrors "github.com/juancamilo2341431/netrix-backend/pkg/errors"
	"github.com/juancamilo2341431/netrix-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an accounts repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		return nil, err
	}
	return account, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	var account models.Account
	err := r.db.WithContext(ctx).
		Preload("Platform").
		Where("id = ?", id).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "account not found")
		}
		return nil, err
	}
	return &account, nil
}

func (r *repository) List(ctx context.Context, params pagination.Params, filters Filters) (*List, error) {
	limit := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).Model(&models.Account{}).Preload("Platform")
	if filters.PlatformID != nil {
		query = query.Where("platform_id = ?", *filters.PlatformID)
	}
	if filters.State != nil {
		query = query.Where("state = ?", *filters.State)
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var items []models.Account
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

func (r *repository) ListAvailableByPlatform(ctx context.Context, platformID uuid.UUID) ([]models.Account, error) {
	var items []models.Account
	err := r.db.WithContext(ctx).
		Where("platform_id = ? AND state = ?", platformID, enums.AccountStateAvailable).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "account not found")
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND state <> ?", id, enums.AccountStateRented).
		Delete(&models.Account{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "account is rented or does not exist")
	}
	return nil
}

func (r *repository) ReserveIfAvailable(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.transition(ctx, id, enums.AccountStateAvailable, enums.AccountStateReserved)
}

func (r *repository) ReleaseIfReserved(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.transition(ctx, id, enums.AccountStateReserved, enums.AccountStateAvailable)
}

func (r *repository) ReleaseIfRented(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.transition(ctx, id, enums.AccountStateRented, enums.AccountStateAvailable)
}

func (r *repository) MarkRentedIfReserved(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.transition(ctx, id, enums.AccountStateReserved, enums.AccountStateRented)
}

// transition flips state only when the row still holds the expected value,
// so repeated calls are harmless no-ops.
func (r *repository) transition(ctx context.Context, id uuid.UUID, from, to enums.AccountState) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("id = ? AND state = ?", id, from).
		Update("state", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
