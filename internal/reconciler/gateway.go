package reconciler

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/juancamilo2341431/netrix-backend/internal/payments"
	"github.com/juancamilo2341431/netrix-backend/pkg/enums"
	pkgerrors "github.com/juancamilo2341431/netrix-backend/pkg/errors"
	"github.com/juancamilo2341431/netrix-backend/pkg/logger"
)

// ProviderStatusFetcher queries the live status of a payment link.
type ProviderStatusFetcher interface {
	GetLinkStatus(ctx context.Context, linkID string) (string, error)
}

// AccountReleaser returns a reserved account to the available pool.
type AccountReleaser interface {
	ReleaseIfReserved(ctx context.Context, id uuid.UUID) (bool, error)
}

// Input identifies the attempt to reconcile. ForceStatus skips the provider
// query; only EXPIRED (any casing) is accepted there.
type Input struct {
	AttemptID   uuid.UUID
	LinkID      string
	AccountID   uuid.UUID
	ForceStatus *string
}

// Result reports the terminal outcome of one reconciliation.
type Result struct {
	AttemptID      uuid.UUID
	LinkID         string
	AccountID      uuid.UUID
	FinalStatus    enums.AttemptStatus
	AccountUpdated bool
}

// Gateway synchronizes one payment attempt with the provider and applies the
// outcome to the attempt store and the account pool.
type Gateway struct {
	attempts payments.AttemptRepository
	accounts AccountReleaser
	provider ProviderStatusFetcher
	logg     *logger.Logger
}

// NewGateway builds the reconciler gateway.
func NewGateway(attempts payments.AttemptRepository, accounts AccountReleaser, provider ProviderStatusFetcher, logg *logger.Logger) (*Gateway, error) {
	if attempts == nil {
		return nil, fmt.Errorf("attempt repository is required")
	}
	if accounts == nil {
		return nil, fmt.Errorf("account releaser is required")
	}
	if provider == nil {
		return nil, fmt.Errorf("provider client is required")
	}
	return &Gateway{attempts: attempts, accounts: accounts, provider: provider, logg: logg}, nil
}

// Reconcile drives one attempt to its current status and releases the
// reserved account when the outcome is non-payable terminal. Every step is
// conditional, so replaying the same input is harmless.
func (g *Gateway) Reconcile(ctx context.Context, input Input) (*Result, error) {
	if input.AttemptID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "attempt id is required")
	}

	attempt, err := g.attempts.FindByID(ctx, input.AttemptID)
	if err != nil {
		return nil, err
	}
	if input.LinkID != "" && input.LinkID != attempt.ExternalLinkID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "link id does not match attempt")
	}
	if input.AccountID != uuid.Nil && input.AccountID != attempt.AccountID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "account id does not match attempt")
	}

	if g.logg != nil {
		ctx = g.logg.WithAttemptID(ctx, attempt.ID.String())
		ctx = g.logg.WithAccountID(ctx, attempt.AccountID.String())
	}

	var final enums.AttemptStatus
	if input.ForceStatus != nil && strings.TrimSpace(*input.ForceStatus) != "" {
		// Only a forced expiration may skip the provider; every other
		// status has to come from a live query.
		forced := enums.NormalizeAttemptStatus(*input.ForceStatus)
		if forced != enums.AttemptStatusExpired {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "force_status only supports EXPIRED")
		}
		final = forced
	} else {
		raw, err := g.provider.GetLinkStatus(ctx, attempt.ExternalLinkID)
		if err != nil {
			return nil, err
		}
		// Provider tokens are adopted verbatim after uppercasing; unknown
		// tokens fall outside both the outstanding and the release sets.
		final = enums.NormalizeAttemptStatus(raw)
	}

	// Terminal states never transition back out.
	if !attempt.Status.IsOutstanding() && final != attempt.Status {
		if g.logg != nil {
			g.logg.Warn(ctx, fmt.Sprintf("attempt already terminal at %s, keeping it over %s", attempt.Status, final))
		}
		final = attempt.Status
	}

	if final != attempt.Status {
		if err := g.attempts.UpdateStatus(ctx, attempt.ID, final); err != nil {
			return nil, err
		}
	}

	accountUpdated := false
	if final.IsNonPayableTerminal() {
		released, err := g.accounts.ReleaseIfReserved(ctx, attempt.AccountID)
		if err != nil {
			return nil, err
		}
		accountUpdated = released
	}

	if g.logg != nil {
		g.logg.Info(ctx, fmt.Sprintf("attempt reconciled to %s (account updated: %t)", final, accountUpdated))
	}

	return &Result{
		AttemptID:      attempt.ID,
		LinkID:         attempt.ExternalLinkID,
		AccountID:      attempt.AccountID,
		FinalStatus:    final,
		AccountUpdated: accountUpdated,
	}, nil
}
