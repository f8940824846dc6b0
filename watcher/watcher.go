// Package watcher confirms bridged funds by measurement: it polls the
// destination network's balance and never assumes a bridge send succeeded.
package watcher

import (
	"context"
	"math/big"
	"time"

	"github.com/rishav-eulb/crosspay/logger"
	"github.com/rishav-eulb/crosspay/types"
)

// BalanceChecker is the slice of the balance scanner the watcher needs.
type BalanceChecker interface {
	CheckBalance(ctx context.Context, token string, network types.Network) (*types.TokenBalance, error)
}

// Watcher polls one network until funds land or a deadline passes.
type Watcher struct {
	balances BalanceChecker
	clock    Clock
	log      logger.Logger
}

// New creates a Watcher. A nil clock selects the real one.
func New(balances BalanceChecker, clock Clock, log logger.Logger) *Watcher {
	if clock == nil {
		clock = RealClock
	}
	if log == nil {
		log = logger.NoopLogger{}
	}

	return &Watcher{
		balances: balances,
		clock:    clock,
		log:      log,
	}
}

// WaitForCompletion polls the destination network's balance until it covers
// required, then returns true. It returns false once wall-clock time since
// the first poll exceeds maxWait, or when the context is cancelled. A
// failing poll is logged and treated as "not yet satisfied". The interval
// is constant, measured from the end of one poll to the start of the next;
// there is no backoff.
func (w *Watcher) WaitForCompletion(
	ctx context.Context,
	token string,
	network types.Network,
	required *big.Int,
	maxWait time.Duration,
	pollInterval time.Duration,
) bool {
	deadline := w.clock.Now().Add(maxWait)
	polls := 0

	for {
		if w.clock.Now().After(deadline) {
			w.log.Warn("bridge wait deadline exceeded", logger.Fields{
				"network": network.String(),
				"maxWait": maxWait.String(),
				"polls":   polls,
			})
			return false
		}

		polls++

		balance, err := w.balances.CheckBalance(ctx, token, network)
		switch {
		case err != nil:
			w.log.Debug("poll failed, not yet satisfied", logger.Fields{
				"network": network.String(),
				"poll":    polls,
				"error":   err.Error(),
			})
		case balance.Amount.Cmp(required) >= 0:
			w.log.Info("bridged funds arrived", logger.Fields{
				"network": network.String(),
				"amount":  balance.Amount.String(),
				"polls":   polls,
			})
			return true
		default:
			w.log.Debug("balance below required", logger.Fields{
				"network": network.String(),
				"amount":  balance.Amount.String(),
				"poll":    polls,
			})
		}

		if err := w.clock.Sleep(ctx, pollInterval); err != nil {
			return false
		}
	}
}
