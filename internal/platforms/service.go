package platforms

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/juancamilo2341431/netrix-backend/pkg/db"
	"github.com/juancamilo2341431/netrix-backend/pkg/db/models"
	"github.com/juancamilo2341431/netrix-backend/pkg/enums"
	pkgerrors "github.com/juancamilo2341431/netrix-backend/pkg/errors"
)

// AuditRecorder captures back-office mutations for the audit trail.
type AuditRecorder interface {
	Record(ctx context.Context, actorID *uuid.UUID, action enums.AuditAction, entityType string, entityID *uuid.UUID, detail string)
}

// Service exposes platform catalog management.
type Service interface {
	Create(ctx context.Context, actorID *uuid.UUID, input CreateInput) (*models.Platform, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Platform, error)
	ListAll(ctx context.Context) ([]models.Platform, error)
	ListActive(ctx context.Context) ([]models.Platform, error)
	Update(ctx context.Context, actorID *uuid.UUID, id uuid.UUID, input UpdateInput) (*models.Platform, error)
	Delete(ctx context.Context, actorID *uuid.UUID, id uuid.UUID) error
}

// CreateInput carries the fields for a new platform.
type CreateInput struct {
	Name    string
	LogoURL *string
}

// UpdateInput carries optional field changes; nil means leave untouched.
type UpdateInput struct {
	Name    *string
	LogoURL *string
	Status  *enums.PlatformStatus
}

type service struct {
	repo  Repository
	audit AuditRecorder
}

// NewService builds the platform management service.
func NewService(repo Repository, audit AuditRecorder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("platforms repository is required")
	}
	return &service{repo: repo, audit: audit}, nil
}

func (s *service) Create(ctx context.Context, actorID *uuid.UUID, input CreateInput) (*models.Platform, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "platform name is required")
	}

	platform := &models.Platform{
		Name:    name,
		LogoURL: input.LogoURL,
		Status:  enums.PlatformStatusActive,
	}
	created, err := s.repo.Create(ctx, platform)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "platform name already exists")
		}
		return nil, err
	}
	s.record(ctx, actorID, enums.AuditActionCreate, created.ID, "platform created")
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Platform, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListAll(ctx context.Context) ([]models.Platform, error) {
	return s.repo.ListAll(ctx)
}

func (s *service) ListActive(ctx context.Context) ([]models.Platform, error) {
	return s.repo.ListActive(ctx)
}

func (s *service) Update(ctx context.Context, actorID *uuid.UUID, id uuid.UUID, input UpdateInput) (*models.Platform, error) {
	updates := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "platform name cannot be empty")
		}
		updates["name"] = name
	}
	if input.LogoURL != nil {
		updates["logo_url"] = *input.LogoURL
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid platform status")
		}
		updates["status"] = *input.Status
	}
	if len(updates) == 0 {
		return s.repo.FindByID(ctx, id)
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, err
	}
	s.record(ctx, actorID, enums.AuditActionUpdate, id, "platform updated")
	return s.repo.FindByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, actorID *uuid.UUID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actorID, enums.AuditActionDelete, id, "platform deleted")
	return nil
}

func (s *service) record(ctx context.Context, actorID *uuid.UUID, action enums.AuditAction, entityID uuid.UUID, detail string) {
	if s.audit == nil {
		return
	}
	id := entityID
	s.audit.Record(ctx, actorID, action, "platform", &id, detail)
}
