package cron

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/juancamilo2341431/netrix-backend/internal/rentals"
	"github.com/juancamilo2341431/netrix-backend/pkg/db/models"
	"github.com/juancamilo2341431/netrix-backend/pkg/enums"
	pkgerrors "github.com/juancamilo2341431/netrix-backend/pkg/errors"
	"github.com/juancamilo2341431/netrix-backend/pkg/pagination"
)

type fakeRentalStore struct {
	lapsed   []models.Rental
	statuses map[uuid.UUID]enums.RentalStatus
}

func newFakeRentalStore() *fakeRentalStore {
	return &fakeRentalStore{statuses: map[uuid.UUID]enums.RentalStatus{}}
}

func (f *fakeRentalStore) WithTx(_ *gorm.DB) rentals.Repository { return f }
func (f *fakeRentalStore) Create(_ context.Context, r *models.Rental) (*models.Rental, error) {
	return r, nil
}
func (f *fakeRentalStore) FindByID(_ context.Context, _ uuid.UUID) (*models.Rental, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "rental not found")
}
func (f *fakeRentalStore) List(_ context.Context, _ pagination.Params, _ rentals.Filters) (*rentals.List, error) {
	return &rentals.List{}, nil
}
func (f *fakeRentalStore) UpdateStatus(_ context.Context, id uuid.UUID, status enums.RentalStatus) error {
	f.statuses[id] = status
	return nil
}
func (f *fakeRentalStore) FindActiveEndedBefore(_ context.Context, _ time.Time) ([]models.Rental, error) {
	return f.lapsed, nil
}

type fakeAccountReleaser struct {
	states map[uuid.UUID]enums.AccountState
}

func (f *fakeAccountReleaser) ReleaseIfRented(_ context.Context, id uuid.UUID) (bool, error) {
	if f.states[id] == enums.AccountStateRented {
		f.states[id] = enums.AccountStateAvailable
		return true, nil
	}
	return false, nil
}

func TestRentalExpiryJob_SuspendedAccountStaysSuspended(t *testing.T) {
	rentedAccount := uuid.New()
	suspendedAccount := uuid.New()

	store := newFakeRentalStore()
	store.lapsed = []models.Rental{
		{ID: uuid.New(), AccountID: rentedAccount, Status: enums.RentalStatusActive},
		{ID: uuid.New(), AccountID: suspendedAccount, Status: enums.RentalStatusActive},
	}
	releaser := &fakeAccountReleaser{states: map[uuid.UUID]enums.AccountState{
		rentedAccount:    enums.AccountStateRented,
		suspendedAccount: enums.AccountStateSuspended,
	}}

	job, err := NewRentalExpiryJob(store, releaser, nil)
	if err != nil {
		t.Fatalf("NewRentalExpiryJob: %v", err)
	}
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	for _, rental := range store.lapsed {
		if store.statuses[rental.ID] != enums.RentalStatusExpired {
			t.Fatalf("expected rental %s expired, got %s", rental.ID, store.statuses[rental.ID])
		}
	}
	if releaser.states[rentedAccount] != enums.AccountStateAvailable {
		t.Fatalf("expected rented account back in the pool, got %s", releaser.states[rentedAccount])
	}
	if releaser.states[suspendedAccount] != enums.AccountStateSuspended {
		t.Fatalf("expected suspended account untouched, got %s", releaser.states[suspendedAccount])
	}
}
