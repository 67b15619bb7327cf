package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/juancamilo2341431/netrix-backend/pkg/db/models"
	dbtypes "github.com/juancamilo2341431/netrix-backend/pkg/db/types"
	"github.com/juancamilo2341431/netrix-backend/pkg/enums"
	pkgerrors "github.com/juancamilo2341431/netrix-backend/pkg/errors"
)

func newSettlementFixture(t *testing.T) (*SettlementService, *fakeAccounts, *fakeAttempts, *fakeRenewals, *fakePayments, *fakeRentals) {
	t.Helper()

	accts := newFakeAccounts()
	attempts := newFakeAttempts()
	renewals := newFakeRenewals()
	pays := &fakePayments{}
	rents := newFakeRentals()

	svc, err := NewSettlementService(renewals, pays, attempts, accts, rents, fakeTx{}, nil, nil)
	if err != nil {
		t.Fatalf("NewSettlementService: %v", err)
	}
	return svc, accts, attempts, renewals, pays, rents
}

func stageRenewal(t *testing.T, renewals *fakeRenewals, reference string, accountIDs ...uuid.UUID) *models.PendingRenewal {
	t.Helper()
	renewal := &models.PendingRenewal{
		ID:          uuid.New(),
		Reference:   reference,
		AccountIDs:  dbtypes.UUIDArray(accountIDs),
		AmountTotal: 15000,
	}
	renewals.byRef[reference] = renewal
	return renewal
}

func TestSettle_HappyPath(t *testing.T) {
	svc, accts, attempts, renewals, pays, rents := newSettlementFixture(t)
	ctx := context.Background()

	accountID := uuid.New()
	accts.states[accountID] = enums.AccountStateReserved
	stageRenewal(t, renewals, "LNK_1", accountID)
	attempt, _ := attempts.Create(ctx, &models.PaymentAttempt{
		ExternalLinkID: "LNK_1",
		AccountID:      accountID,
		Status:         enums.AttemptStatusActive,
	})

	result, err := svc.Settle(ctx, "LNK_1")
	if err != nil {
		t.Fatalf("Settle: %v", err)
	}
	if result.RenewedCount != 1 {
		t.Fatalf("expected one renewed account, got %d", result.RenewedCount)
	}
	if accts.states[accountID] != enums.AccountStateRented {
		t.Fatalf("expected rented account, got %s", accts.states[accountID])
	}
	if len(pays.created) != 1 || pays.created[0].Reference != "LNK_1" {
		t.Fatalf("expected one payment for LNK_1, got %+v", pays.created)
	}
	if len(rents.created) != 1 || rents.created[0].AccountID != accountID {
		t.Fatalf("expected one rental, got %+v", rents.created)
	}
	if attempts.byID[attempt.ID].Status != enums.AttemptStatusPaid {
		t.Fatalf("expected attempt PAID, got %s", attempts.byID[attempt.ID].Status)
	}
}

func TestSettle_UnknownReferenceWritesNothing(t *testing.T) {
	svc, _, _, _, pays, rents := newSettlementFixture(t)

	_, err := svc.Settle(context.Background(), "LNK_missing")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(pays.created) != 0 || len(rents.created) != 0 {
		t.Fatal("failed settlement must write nothing")
	}
}

func TestSettle_ReplayIsAcknowledgedWithoutReapplying(t *testing.T) {
	svc, accts, _, renewals, pays, _ := newSettlementFixture(t)
	ctx := context.Background()

	accountID := uuid.New()
	accts.states[accountID] = enums.AccountStateReserved
	renewal := stageRenewal(t, renewals, "LNK_2", accountID)
	consumed := time.Now().Add(-time.Minute)
	renewal.ConsumedAt = &consumed

	result, err := svc.Settle(ctx, "LNK_2")
	if err != nil {
		t.Fatalf("Settle: %v", err)
	}
	if !result.AlreadyProcessed {
		t.Fatal("expected replay to be flagged")
	}
	if len(pays.created) != 0 {
		t.Fatal("replay must not create a second payment")
	}
	if accts.states[accountID] != enums.AccountStateReserved {
		t.Fatal("replay must not touch accounts")
	}
}

// countingTx records how many independent transactions a call opened.
type countingTx struct{ calls int }

func (c *countingTx) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	c.calls++
	return fn(nil)
}

func TestSettle_EachAccountCommitsOnItsOwn(t *testing.T) {
	accts := newFakeAccounts()
	attempts := newFakeAttempts()
	renewals := newFakeRenewals()
	pays := &fakePayments{}
	rents := newFakeRentals()
	tx := &countingTx{}

	svc, err := NewSettlementService(renewals, pays, attempts, accts, rents, tx, nil, nil)
	if err != nil {
		t.Fatalf("NewSettlementService: %v", err)
	}
	ctx := context.Background()

	first := uuid.New()
	broken := uuid.New()
	last := uuid.New()
	accts.states[first] = enums.AccountStateReserved
	accts.states[broken] = enums.AccountStateReserved
	accts.states[last] = enums.AccountStateReserved
	rents.failOn[broken] = pkgerrors.New(pkgerrors.CodeInternal, "insert failed")

	stageRenewal(t, renewals, "LNK_5", first, broken, last)

	result, err := svc.Settle(ctx, "LNK_5")
	if err != nil {
		t.Fatalf("Settle: %v", err)
	}
	if result.RenewedCount != 2 {
		t.Fatalf("expected two renewals past the broken account, got %d", result.RenewedCount)
	}
	// The broken account must not take down the payment or the renewals
	// committed around it.
	if len(pays.created) != 1 {
		t.Fatalf("expected the payment row to survive, got %d", len(pays.created))
	}
	if accts.states[first] != enums.AccountStateRented || accts.states[last] != enums.AccountStateRented {
		t.Fatalf("expected surrounding accounts rented, got %s and %s", accts.states[first], accts.states[last])
	}
	// One transaction for the staging row and payment, then one per account.
	if tx.calls != 4 {
		t.Fatalf("expected 4 transactions, got %d", tx.calls)
	}
}

func TestSettle_AttemptLookupFailureSurfaces(t *testing.T) {
	svc, accts, attempts, renewals, _, _ := newSettlementFixture(t)
	ctx := context.Background()

	accountID := uuid.New()
	accts.states[accountID] = enums.AccountStateReserved
	stageRenewal(t, renewals, "LNK_6", accountID)
	attempts.linkErr = pkgerrors.New(pkgerrors.CodeDependency, "db unavailable")

	_, err := svc.Settle(ctx, "LNK_6")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected the lookup failure to surface, got %v", err)
	}
}

func TestSettle_BulkPartialFailureReportsCompleted(t *testing.T) {
	svc, accts, _, renewals, _, rents := newSettlementFixture(t)
	ctx := context.Background()

	good := uuid.New()
	alreadyRented := uuid.New()
	rentalFails := uuid.New()
	accts.states[good] = enums.AccountStateReserved
	accts.states[alreadyRented] = enums.AccountStateRented
	accts.states[rentalFails] = enums.AccountStateReserved
	rents.failOn[rentalFails] = pkgerrors.New(pkgerrors.CodeInternal, "insert failed")

	stageRenewal(t, renewals, "LNK_3", good, alreadyRented, rentalFails)

	result, err := svc.Settle(ctx, "LNK_3")
	if err != nil {
		t.Fatalf("Settle: %v", err)
	}
	if result.RenewedCount != 1 {
		t.Fatalf("expected one completed renewal, got %d", result.RenewedCount)
	}
	if accts.states[good] != enums.AccountStateRented {
		t.Fatalf("expected good account rented, got %s", accts.states[good])
	}
}
