package accounts

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/juancamilo2341431/netrix-backend/pkg/db/models"
	"github.com/juancamilo2341431/netrix-backend/pkg/enums"
	pkgerrors "github.com/juancamilo2341431/netrix-backend/pkg/errors"
	"github.com/juancamilo2341431/netrix-backend/pkg/pagination"
)

// AuditRecorder captures back-office mutations for the audit trail.
type AuditRecorder interface {
	Record(ctx context.Context, actorID *uuid.UUID, action enums.AuditAction, entityType string, entityID *uuid.UUID, detail string)
}

// Service exposes back-office account management.
type Service interface {
	Create(ctx context.Context, actorID *uuid.UUID, input CreateInput) (*models.Account, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Account, error)
	List(ctx context.Context, params pagination.Params, filters Filters) (*List, error)
	Update(ctx context.Context, actorID *uuid.UUID, id uuid.UUID, input UpdateInput) (*models.Account, error)
	Delete(ctx context.Context, actorID *uuid.UUID, id uuid.UUID) error
}

// CreateInput carries the fields for a new rentable account.
type CreateInput struct {
	PlatformID      uuid.UUID
	Email           string
	Password        string
	Profile         *string
	PriceMinorUnits int64
	Notes           *string
}

// UpdateInput carries optional field changes; nil means leave untouched.
type UpdateInput struct {
	Email           *string
	Password        *string
	Profile         *string
	PriceMinorUnits *int64
	Notes           *string
	State           *enums.AccountState
}

type service struct {
	repo  Repository
	audit AuditRecorder
}

// NewService builds the account management service.
func NewService(repo Repository, audit AuditRecorder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("accounts repository is required")
	}
	return &service{repo: repo, audit: audit}, nil
}

func (s *service) Create(ctx context.Context, actorID *uuid.UUID, input CreateInput) (*models.Account, error) {
	if input.PlatformID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "platform id is required")
	}
	if strings.TrimSpace(input.Email) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "account email is required")
	}
	if strings.TrimSpace(input.Password) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "account password is required")
	}
	if input.PriceMinorUnits <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}

	account := &models.Account{
		PlatformID:      input.PlatformID,
		Email:           strings.TrimSpace(input.Email),
		Password:        input.Password,
		Profile:         input.Profile,
		PriceMinorUnits: input.PriceMinorUnits,
		State:           enums.AccountStateAvailable,
		Notes:           input.Notes,
	}
	created, err := s.repo.Create(ctx, account)
	if err != nil {
		return nil, err
	}
	s.record(ctx, actorID, enums.AuditActionCreate, created.ID, "account created")
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) List(ctx context.Context, params pagination.Params, filters Filters) (*List, error) {
	return s.repo.List(ctx, params, filters)
}

func (s *service) Update(ctx context.Context, actorID *uuid.UUID, id uuid.UUID, input UpdateInput) (*models.Account, error) {
	updates := map[string]any{}
	if input.Email != nil {
		if strings.TrimSpace(*input.Email) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "account email cannot be empty")
		}
		updates["email"] = strings.TrimSpace(*input.Email)
	}
	if input.Password != nil {
		if *input.Password == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "account password cannot be empty")
		}
		updates["password"] = *input.Password
	}
	if input.Profile != nil {
		updates["profile"] = *input.Profile
	}
	if input.PriceMinorUnits != nil {
		if *input.PriceMinorUnits <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
		}
		updates["price_minor_units"] = *input.PriceMinorUnits
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}
	if input.State != nil {
		if !input.State.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid account state")
		}
		updates["state"] = *input.State
	}
	if len(updates) == 0 {
		return s.repo.FindByID(ctx, id)
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, err
	}
	s.record(ctx, actorID, enums.AuditActionUpdate, id, "account updated")
	return s.repo.FindByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, actorID *uuid.UUID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actorID, enums.AuditActionDelete, id, "account deleted")
	return nil
}

func (s *service) record(ctx context.Context, actorID *uuid.UUID, action enums.AuditAction, entityID uuid.UUID, detail string) {
	if s.audit == nil {
		return
	}
	id := entityID
	s.audit.Record(ctx, actorID, action, "account", &id, detail)
}
