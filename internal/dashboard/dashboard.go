// Package dashboard aggregates a user's recommendations, transaction
// history and profile, and runs the balance-mutating transaction flow.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"proxym-fin/internal/client"
	"proxym-fin/internal/dto"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrBalanceOutOfSync means the transaction was recorded remotely but the
// balance write-back failed: the server's balance no longer matches what the
// user was shown. Never swallowed.
var ErrBalanceOutOfSync = errors.New("transaction recorded but balance update failed")

// ErrSpendInFlight rejects a second spend while one is still being applied;
// the create-then-write-back sequence must not interleave.
var ErrSpendInFlight = errors.New("transaction already in flight")

const recentTransactionLimit = 5

// Snapshot is one consistent view of the dashboard. It is replaced wholesale
// by a refresh; partial application of only some collections never happens.
type Snapshot struct {
	User            dto.User
	Transactions    []dto.Transaction
	Recommendations []dto.Product
}

type Dashboard struct {
	rc     *client.Client
	logger *zap.Logger
	userID int64

	mu       sync.Mutex
	snap     *Snapshot
	spending bool
}

func New(rc *client.Client, userID int64, logger *zap.Logger) *Dashboard {
	return &Dashboard{
		rc:     rc,
		logger: logger,
		userID: userID,
	}
}

// Snapshot returns the last complete view, or nil before the first refresh.
func (d *Dashboard) Snapshot() *Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snap
}

// Spending reports whether a spend is in flight.
func (d *Dashboard) Spending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.spending
}

// Refresh fetches recommendations, the user's transactions and the user
// record in parallel. The stored snapshot is replaced only when all three
// succeed; one failure fails the whole cycle.
func (d *Dashboard) Refresh(ctx context.Context) (*Snapshot, error) {
	var next Snapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		recs, err := d.rc.Recommendations(gctx, d.userID)
		if err != nil {
			return fmt.Errorf("recommendations: %w", err)
		}
		next.Recommendations = recs
		return nil
	})
	g.Go(func() error {
		transactions, err := d.rc.TransactionsByUser(gctx, d.userID)
		if err != nil {
			return fmt.Errorf("transactions: %w", err)
		}
		next.Transactions = transactions
		return nil
	})
	g.Go(func() error {
		user, err := d.rc.User(gctx, d.userID)
		if err != nil {
			return fmt.Errorf("user: %w", err)
		}
		next.User = *user
		return nil
	})

	if err := g.Wait(); err != nil {
		d.logger.Warn("Dashboard refresh failed", zap.Int64("user_id", d.userID), zap.Error(err))
		return nil, err
	}

	d.mu.Lock()
	d.snap = &next
	d.mu.Unlock()
	return &next, nil
}

// Spend creates a transaction for the dashboard's user, decrements the
// cached balance provisionally, writes the full user record back, and then
// refreshes so the server's authoritative state replaces the provisional
// one. A failed balance write-back after a successful create returns
// ErrBalanceOutOfSync. Only one spend may run at a time.
func (d *Dashboard) Spend(ctx context.Context, tx dto.Transaction) (*Snapshot, error) {
	d.mu.Lock()
	if d.spending {
		d.mu.Unlock()
		return nil, ErrSpendInFlight
	}
	d.spending = true
	snap := d.snap
	d.mu.Unlock()
	defer func() {
		d.mu.Lock()
		d.spending = false
		d.mu.Unlock()
	}()

	if snap == nil {
		var err error
		if snap, err = d.Refresh(ctx); err != nil {
			return nil, err
		}
	}

	tx.UserID = d.userID
	created, err := d.rc.CreateTransaction(ctx, tx)
	if err != nil {
		return nil, err
	}

	// Provisional local balance; superseded by the refresh below.
	updated := snap.User
	updated.Balance = updated.Balance.Sub(created.Amount)
	d.mu.Lock()
	if d.snap != nil {
		d.snap.User.Balance = updated.Balance
	}
	d.mu.Unlock()

	if _, err := d.rc.UpdateUser(ctx, updated); err != nil {
		d.logger.Error("Balance write-back failed",
			zap.Int64("user_id", d.userID),
			zap.Int64("transaction_id", created.ID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrBalanceOutOfSync, err)
	}

	return d.Refresh(ctx)
}

// ChatContext assembles the profile summary sent with every chat message:
// identity, balances and the five most recent transactions.
func (d *Dashboard) ChatContext() dto.UserContext {
	d.mu.Lock()
	defer d.mu.Unlock()

	uc := dto.UserContext{}
	if d.snap == nil {
		return uc
	}

	uc.Name = d.snap.User.Name
	uc.Balance = d.snap.User.Balance
	uc.MonthlyIncome = d.snap.User.MonthlyIncome
	uc.Age = d.snap.User.Age
	uc.RiskProfile = d.snap.User.RiskProfile
	uc.ProductCount = len(d.snap.Recommendations)

	recent := d.snap.Transactions
	if len(recent) > recentTransactionLimit {
		recent = recent[:recentTransactionLimit]
	}
	uc.RecentTransactions = append([]dto.Transaction(nil), recent...)
	return uc
}

// Ask sends a message to the assistant together with the chat context.
func (d *Dashboard) Ask(ctx context.Context, message string) (string, error) {
	resp, err := d.rc.Chat(ctx, dto.ChatRequest{
		Message:     message,
		UserContext: d.ChatContext(),
	})
	if err != nil {
		return "", err
	}
	return resp.Response, nil
}
