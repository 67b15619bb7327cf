package platforms

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/juancamilo2341431/netrix-backend/pkg/db/models"
	"github.com/juancamilo2341431/netrix-backend/pkg/enums"
	pkgerrors "github.com/juancamilo2341431/netrix-backend/pkg/errors"
)

// Repository defines persistence operations for streaming platforms.
type Repository interface {
	Create(ctx context.Context, platform *models.Platform) (*models.Platform, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Platform, error)
	ListAll(ctx context.Context) ([]models.Platform, error)
	ListActive(ctx context.Context) ([]models.Platform, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a platforms repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, platform *models.Platform) (*models.Platform, error) {
	if err := r.db.WithContext(ctx).Create(platform).Error; err != nil {
		return nil, err
	}
	return platform, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Platform, error) {
	var platform models.Platform
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&platform).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "platform not found")
		}
		return nil, err
	}
	return &platform, nil
}

func (r *repository) ListAll(ctx context.Context) ([]models.Platform, error) {
	var items []models.Platform
	err := r.db.WithContext(ctx).Order("name ASC").Find(&items).Error
	return items, err
}

func (r *repository) ListActive(ctx context.Context) ([]models.Platform, error) {
	var items []models.Platform
	err := r.db.WithContext(ctx).
		Where("status = ?", enums.PlatformStatusActive).
		Order("name ASC").
		Find(&items).Error
	return items, err
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).
		Model(&models.Platform{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "platform not found")
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Platform{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "platform not found")
	}
	return nil
}
