package checkout

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/juancamilo2341431/netrix-backend/internal/accounts"
	"github.com/juancamilo2341431/netrix-backend/internal/payments"
	"github.com/juancamilo2341431/netrix-backend/internal/rentals"
	"github.com/juancamilo2341431/netrix-backend/pkg/bold"
	"github.com/juancamilo2341431/netrix-backend/pkg/db/models"
	"github.com/juancamilo2341431/netrix-backend/pkg/enums"
	pkgerrors "github.com/juancamilo2341431/netrix-backend/pkg/errors"
	"github.com/juancamilo2341431/netrix-backend/pkg/pagination"
)

type fakeTx struct{}

func (fakeTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type fakeProvider struct {
	link  *bold.PaymentLink
	err   error
	calls int
}

func (f *fakeProvider) CreatePaymentLink(_ context.Context, _ bold.CreateLinkRequest) (*bold.PaymentLink, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.link, nil
}

type fakeAccounts struct {
	states map[uuid.UUID]enums.AccountState
	failOn map[uuid.UUID]error
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{states: map[uuid.UUID]enums.AccountState{}, failOn: map[uuid.UUID]error{}}
}

func (f *fakeAccounts) WithTx(_ *gorm.DB) accounts.Repository { return f }
func (f *fakeAccounts) Create(_ context.Context, a *models.Account) (*models.Account, error) {
	return a, nil
}
func (f *fakeAccounts) FindByID(_ context.Context, _ uuid.UUID) (*models.Account, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "account not found")
}
func (f *fakeAccounts) List(_ context.Context, _ pagination.Params, _ accounts.Filters) (*accounts.List, error) {
	return &accounts.List{}, nil
}
func (f *fakeAccounts) ListAvailableByPlatform(_ context.Context, _ uuid.UUID) ([]models.Account, error) {
	return nil, nil
}
func (f *fakeAccounts) Update(_ context.Context, _ uuid.UUID, _ map[string]any) error { return nil }
func (f *fakeAccounts) Delete(_ context.Context, _ uuid.UUID) error                   { return nil }

func (f *fakeAccounts) transition(id uuid.UUID, from, to enums.AccountState) (bool, error) {
	if err, ok := f.failOn[id]; ok {
		return false, err
	}
	if f.states[id] == from {
		f.states[id] = to
		return true, nil
	}
	return false, nil
}

func (f *fakeAccounts) ReserveIfAvailable(_ context.Context, id uuid.UUID) (bool, error) {
	return f.transition(id, enums.AccountStateAvailable, enums.AccountStateReserved)
}
func (f *fakeAccounts) ReleaseIfReserved(_ context.Context, id uuid.UUID) (bool, error) {
	return f.transition(id, enums.AccountStateReserved, enums.AccountStateAvailable)
}
func (f *fakeAccounts) ReleaseIfRented(_ context.Context, id uuid.UUID) (bool, error) {
	return f.transition(id, enums.AccountStateRented, enums.AccountStateAvailable)
}
func (f *fakeAccounts) MarkRentedIfReserved(_ context.Context, id uuid.UUID) (bool, error) {
	return f.transition(id, enums.AccountStateReserved, enums.AccountStateRented)
}

type fakeAttempts struct {
	byID    map[uuid.UUID]*models.PaymentAttempt
	byLink  map[string]*models.PaymentAttempt
	failed  bool
	linkErr error
}

func newFakeAttempts() *fakeAttempts {
	return &fakeAttempts{byID: map[uuid.UUID]*models.PaymentAttempt{}, byLink: map[string]*models.PaymentAttempt{}}
}

func (f *fakeAttempts) WithTx(_ *gorm.DB) payments.AttemptRepository { return f }
func (f *fakeAttempts) Create(_ context.Context, a *models.PaymentAttempt) (*models.PaymentAttempt, error) {
	if f.failed {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "insert failed")
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	f.byID[a.ID] = a
	f.byLink[a.ExternalLinkID] = a
	return a, nil
}
func (f *fakeAttempts) FindByID(_ context.Context, id uuid.UUID) (*models.PaymentAttempt, error) {
	if a, ok := f.byID[id]; ok {
		return a, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment attempt not found")
}
func (f *fakeAttempts) FindByExternalLinkID(_ context.Context, linkID string) (*models.PaymentAttempt, error) {
	if f.linkErr != nil {
		return nil, f.linkErr
	}
	if a, ok := f.byLink[strings.TrimSpace(linkID)]; ok {
		return a, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment attempt not found")
}
func (f *fakeAttempts) ListOutstanding(_ context.Context, _ int) ([]models.PaymentAttempt, error) {
	return nil, nil
}
func (f *fakeAttempts) UpdateStatus(_ context.Context, id uuid.UUID, status enums.AttemptStatus) error {
	a, ok := f.byID[id]
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "payment attempt not found")
	}
	a.Status = status
	a.LastUpdated = time.Now()
	return nil
}

type fakeRenewals struct {
	byRef map[string]*models.PendingRenewal
}

func newFakeRenewals() *fakeRenewals {
	return &fakeRenewals{byRef: map[string]*models.PendingRenewal{}}
}

func (f *fakeRenewals) WithTx(_ *gorm.DB) payments.RenewalRepository { return f }
func (f *fakeRenewals) Create(_ context.Context, r *models.PendingRenewal) (*models.PendingRenewal, error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	f.byRef[r.Reference] = r
	return r, nil
}
func (f *fakeRenewals) FindByReference(_ context.Context, reference string) (*models.PendingRenewal, error) {
	if r, ok := f.byRef[strings.TrimSpace(reference)]; ok {
		return r, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "pending renewal not found")
}
func (f *fakeRenewals) MarkConsumed(_ context.Context, id uuid.UUID) (bool, error) {
	for _, r := range f.byRef {
		if r.ID == id {
			if r.ConsumedAt != nil {
				return false, nil
			}
			now := time.Now()
			r.ConsumedAt = &now
			return true, nil
		}
	}
	return false, nil
}

type fakePayments struct {
	created []*models.Payment
}

func (f *fakePayments) WithTx(_ *gorm.DB) payments.PaymentRepository { return f }
func (f *fakePayments) Create(_ context.Context, p *models.Payment) (*models.Payment, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	f.created = append(f.created, p)
	return p, nil
}
func (f *fakePayments) FindByReference(_ context.Context, reference string) (*models.Payment, error) {
	for _, p := range f.created {
		if p.Reference == reference {
			return p, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment not found")
}

type fakeRentals struct {
	created []*models.Rental
	failOn  map[uuid.UUID]error
}

func newFakeRentals() *fakeRentals {
	return &fakeRentals{failOn: map[uuid.UUID]error{}}
}

func (f *fakeRentals) WithTx(_ *gorm.DB) rentals.Repository { return f }
func (f *fakeRentals) Create(_ context.Context, r *models.Rental) (*models.Rental, error) {
	if err, ok := f.failOn[r.AccountID]; ok {
		return nil, err
	}
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	f.created = append(f.created, r)
	return r, nil
}
func (f *fakeRentals) FindByID(_ context.Context, _ uuid.UUID) (*models.Rental, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "rental not found")
}
func (f *fakeRentals) List(_ context.Context, _ pagination.Params, _ rentals.Filters) (*rentals.List, error) {
	return &rentals.List{}, nil
}
func (f *fakeRentals) UpdateStatus(_ context.Context, _ uuid.UUID, _ enums.RentalStatus) error {
	return nil
}
func (f *fakeRentals) FindActiveEndedBefore(_ context.Context, _ time.Time) ([]models.Rental, error) {
	return nil, nil
}
