package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/juancamilo2341431/netrix-backend/internal/rentals"
	"github.com/juancamilo2341431/netrix-backend/pkg/db/models"
	"github.com/juancamilo2341431/netrix-backend/pkg/enums"
	"github.com/juancamilo2341431/netrix-backend/pkg/logger"
)

// accountReleaser returns accounts to the pool when rentals lapse.
type accountReleaser interface {
	ReleaseIfRented(ctx context.Context, id uuid.UUID) (bool, error)
}

// RentalExpiryJob closes rentals whose window has ended and returns their
// accounts to the available pool.
type RentalExpiryJob struct {
	rentals  rentals.Repository
	accounts accountReleaser
	logg     *logger.Logger
	now      func() time.Time
}

// NewRentalExpiryJob builds the rental expiry cron job.
func NewRentalExpiryJob(rentalRepo rentals.Repository, accountRepo accountReleaser, logg *logger.Logger) (*RentalExpiryJob, error) {
	if rentalRepo == nil {
		return nil, fmt.Errorf("rentals repository required")
	}
	if accountRepo == nil {
		return nil, fmt.Errorf("accounts repository required")
	}
	return &RentalExpiryJob{rentals: rentalRepo, accounts: accountRepo, logg: logg, now: time.Now}, nil
}

// Name identifies the job in logs and metrics.
func (j *RentalExpiryJob) Name() string {
	return "rental-expiry"
}

// Run expires lapsed rentals one by one, continuing past failures.
func (j *RentalExpiryJob) Run(ctx context.Context) error {
	lapsed, err := j.rentals.FindActiveEndedBefore(ctx, j.now())
	if err != nil {
		return err
	}

	expired := 0
	for i := range lapsed {
		if err := j.expireOne(ctx, &lapsed[i]); err != nil {
			if j.logg != nil {
				j.logg.Error(ctx, "failed to expire rental", err)
			}
			continue
		}
		expired++
	}

	if j.logg != nil && len(lapsed) > 0 {
		j.logg.Info(ctx, fmt.Sprintf("rental expiry: %d/%d closed", expired, len(lapsed)))
	}
	return nil
}

func (j *RentalExpiryJob) expireOne(ctx context.Context, rental *models.Rental) error {
	if err := j.rentals.UpdateStatus(ctx, rental.ID, enums.RentalStatusExpired); err != nil {
		return err
	}
	// Conditional flip: an account that was suspended mid-rental stays
	// suspended instead of returning to the pool.
	_, err := j.accounts.ReleaseIfRented(ctx, rental.AccountID)
	return err
}
