package payments

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/juancamilo2341431/netrix-backend/pkg/db/models"
	dbtypes "github.com/juancamilo2341431/netrix-backend/pkg/db/types"
	"github.com/juancamilo2341431/netrix-backend/pkg/enums"
)

func setupPaymentsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	attempts := `
CREATE TABLE IF NOT EXISTS payment_attempts (
  id TEXT PRIMARY KEY,
  external_link_id TEXT NOT NULL UNIQUE,
  account_id TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'PENDING',
  configured_expires_at DATETIME NOT NULL,
  created_at DATETIME,
  last_updated DATETIME
);`
	renewals := `
CREATE TABLE IF NOT EXISTS pending_renewals (
  id TEXT PRIMARY KEY,
  reference TEXT NOT NULL UNIQUE,
  account_ids TEXT NOT NULL,
  amount_total INTEGER NOT NULL,
  coupon_id TEXT,
  customer_contact TEXT,
  consumed_at DATETIME,
  created_at DATETIME
);`
	paymentsTable := `
CREATE TABLE IF NOT EXISTS payments (
  id TEXT PRIMARY KEY,
  reference TEXT NOT NULL UNIQUE,
  amount_total INTEGER NOT NULL,
  method TEXT NOT NULL DEFAULT 'payment_link',
  created_at DATETIME
);`
	require.NoError(t, db.Exec(attempts).Error)
	require.NoError(t, db.Exec(renewals).Error)
	require.NoError(t, db.Exec(paymentsTable).Error)
	return db
}

func seedAttempt(t *testing.T, db *gorm.DB, status enums.AttemptStatus, createdAt time.Time) *models.PaymentAttempt {
	t.Helper()
	attempt := &models.PaymentAttempt{
		ID:                  uuid.New(),
		ExternalLinkID:      "LNK_" + uuid.NewString(),
		AccountID:           uuid.New(),
		Status:              status,
		ConfiguredExpiresAt: createdAt.Add(5 * time.Minute),
		CreatedAt:           createdAt,
		LastUpdated:         createdAt,
	}
	require.NoError(t, db.Create(attempt).Error)
	return attempt
}

func TestListOutstanding_OldestFirstAndBounded(t *testing.T) {
	db := setupPaymentsTestDB(t)
	repo := NewAttemptRepository(db)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	oldest := seedAttempt(t, db, enums.AttemptStatusPending, base)
	middle := seedAttempt(t, db, enums.AttemptStatusActive, base.Add(time.Minute))
	seedAttempt(t, db, enums.AttemptStatusPending, base.Add(2*time.Minute))
	// Terminal rows never enter the batch.
	seedAttempt(t, db, enums.AttemptStatusPaid, base.Add(-time.Minute))
	seedAttempt(t, db, enums.AttemptStatusExpired, base.Add(-2*time.Minute))

	batch, err := repo.ListOutstanding(ctx, 2)
	require.NoError(t, err)
	require.Len(t, batch, 2)
	assert.Equal(t, oldest.ID, batch[0].ID)
	assert.Equal(t, middle.ID, batch[1].ID)
}

func TestListOutstanding_RequiresPositiveLimit(t *testing.T) {
	db := setupPaymentsTestDB(t)
	repo := NewAttemptRepository(db)

	_, err := repo.ListOutstanding(context.Background(), 0)
	require.Error(t, err)
}

func TestUpdateStatus_TouchesLastUpdated(t *testing.T) {
	db := setupPaymentsTestDB(t)
	repo := NewAttemptRepository(db)
	ctx := context.Background()

	attempt := seedAttempt(t, db, enums.AttemptStatusPending, time.Now().Add(-time.Hour))

	require.NoError(t, repo.UpdateStatus(ctx, attempt.ID, enums.AttemptStatusExpired))

	found, err := repo.FindByID(ctx, attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.AttemptStatusExpired, found.Status)
	assert.True(t, found.LastUpdated.After(attempt.LastUpdated))
}

func TestFindByExternalLinkID(t *testing.T) {
	db := setupPaymentsTestDB(t)
	repo := NewAttemptRepository(db)
	ctx := context.Background()

	attempt := seedAttempt(t, db, enums.AttemptStatusPending, time.Now())

	found, err := repo.FindByExternalLinkID(ctx, attempt.ExternalLinkID)
	require.NoError(t, err)
	assert.Equal(t, attempt.ID, found.ID)

	_, err = repo.FindByExternalLinkID(ctx, "LNK_missing")
	require.Error(t, err)
}

func TestMarkConsumed_SecondCallIsNoOp(t *testing.T) {
	db := setupPaymentsTestDB(t)
	repo := NewRenewalRepository(db)
	ctx := context.Background()

	renewal := &models.PendingRenewal{
		ID:          uuid.New(),
		Reference:   "ORD-123",
		AccountIDs:  dbtypes.UUIDArray{uuid.New()},
		AmountTotal: 15000,
	}
	require.NoError(t, db.Create(renewal).Error)

	consumed, err := repo.MarkConsumed(ctx, renewal.ID)
	require.NoError(t, err)
	assert.True(t, consumed)

	consumed, err = repo.MarkConsumed(ctx, renewal.ID)
	require.NoError(t, err)
	assert.False(t, consumed)
}

func TestPaymentRepository_FindByReference(t *testing.T) {
	db := setupPaymentsTestDB(t)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	payment := &models.Payment{ID: uuid.New(), Reference: "ORD-999", AmountTotal: 30000, Method: "payment_link"}
	_, err := repo.Create(ctx, payment)
	require.NoError(t, err)

	found, err := repo.FindByReference(ctx, "ORD-999")
	require.NoError(t, err)
	assert.Equal(t, payment.ID, found.ID)
}
