package accounts

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
	"github.com/juancamilo2341431/netrix-backend/pkg/enums"
)

func setupAccountsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	platforms := `
CREATE TABLE IF NOT EXISTS platforms (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  logo_url TEXT,
  status TEXT NOT NULL DEFAULT 'active',
  created_at DATETIME,
  updated_at DATETIME
);`
	accounts := `
CREATE TABLE IF NOT EXISTS accounts (
  id TEXT PRIMARY KEY,
  platform_id TEXT NOT NULL,
  email TEXT NOT NULL,
  password TEXT NOT NULL,
  profile TEXT,
  price_minor_units INTEGER NOT NULL DEFAULT 0,
  state TEXT NOT NULL DEFAULT 'available',
  notes TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(platforms).Error)
	require.NoError(t, db.Exec(accounts).Error)
	return db
}

func seedAccount(t *testing.T, db *gorm.DB, state enums.AccountState) *models.Account {
	t.Helper()

	platform := &models.Platform{ID: uuid.New(), Name: "netflix-" + uuid.NewString()}
	require.NoError(t, db.Create(platform).Error)

	account := &models.Account{
		ID:              uuid.New(),
		PlatformID:      platform.ID,
		Email:           "acct@example.com",
		Password:        "secret",
		PriceMinorUnits: 15000,
		State:           state,
		CreatedAt:       time.Now(),
	}
	require.NoError(t, db.Create(account).Error)
	return account
}

func TestReserveIfAvailable(t *testing.T) {
	db := setupAccountsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	account := seedAccount(t, db, enums.AccountStateAvailable)

	changed, err := repo.ReserveIfAvailable(ctx, account.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	// Second reservation must be a no-op.
	changed, err = repo.ReserveIfAvailable(ctx, account.ID)
	require.NoError(t, err)
	assert.False(t, changed)

	found, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.AccountStateReserved, found.State)
}

func TestReleaseIfReserved_Idempotent(t *testing.T) {
	db := setupAccountsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	account := seedAccount(t, db, enums.AccountStateReserved)

	changed, err := repo.ReleaseIfReserved(ctx, account.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repo.ReleaseIfReserved(ctx, account.ID)
	require.NoError(t, err)
	assert.False(t, changed)

	found, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.AccountStateAvailable, found.State)
}

func TestReleaseIfReserved_DoesNotTouchRented(t *testing.T) {
	db := setupAccountsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	account := seedAccount(t, db, enums.AccountStateRented)

	changed, err := repo.ReleaseIfReserved(ctx, account.ID)
	require.NoError(t, err)
	assert.False(t, changed)

	found, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.AccountStateRented, found.State)
}

func TestReleaseIfRented_DoesNotTouchSuspended(t *testing.T) {
	db := setupAccountsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	rented := seedAccount(t, db, enums.AccountStateRented)
	changed, err := repo.ReleaseIfRented(ctx, rented.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	found, err := repo.FindByID(ctx, rented.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.AccountStateAvailable, found.State)

	suspended := seedAccount(t, db, enums.AccountStateSuspended)
	changed, err = repo.ReleaseIfRented(ctx, suspended.ID)
	require.NoError(t, err)
	assert.False(t, changed)

	found, err = repo.FindByID(ctx, suspended.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.AccountStateSuspended, found.State)
}

func TestMarkRentedIfReserved(t *testing.T) {
	db := setupAccountsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	account := seedAccount(t, db, enums.AccountStateReserved)

	changed, err := repo.MarkRentedIfReserved(ctx, account.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repo.MarkRentedIfReserved(ctx, account.ID)
	require.NoError(t, err)
	assert.False(t, changed)

	found, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.AccountStateRented, found.State)
}

func TestDelete_RefusesRented(t *testing.T) {
	db := setupAccountsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	rented := seedAccount(t, db, enums.AccountStateRented)
	err := repo.Delete(ctx, rented.ID)
	require.Error(t, err)

	available := seedAccount(t, db, enums.AccountStateAvailable)
	require.NoError(t, repo.Delete(ctx, available.ID))
}

func TestListAvailableByPlatform(t *testing.T) {
	db := setupAccountsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	account := seedAccount(t, db, enums.AccountStateAvailable)
	seedAccount(t, db, enums.AccountStateRented)

	items, err := repo.ListAvailableByPlatform(ctx, account.PlatformID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, account.ID, items[0].ID)
}
