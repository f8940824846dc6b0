package watcher

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rishav-eulb/crosspay/types"
)

const testToken = "0x036CbD53842c5426634e7929541eC2318f3dCF7e"

// fakeClock advances only when the watcher sleeps, so poll counts are
// deterministic.
type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Sleep(_ context.Context, d time.Duration) error {
	f.now = f.now.Add(d)
	return nil
}

// sequenceChecker returns the configured balances in order; the last one is
// sticky. A nil entry produces an error.
type sequenceChecker struct {
	sequence []*big.Int
	calls    int
}

func (s *sequenceChecker) CheckBalance(_ context.Context, token string, network types.Network) (*types.TokenBalance, error) {
	i := s.calls
	s.calls++
	if i >= len(s.sequence) {
		i = len(s.sequence) - 1
	}
	if s.sequence[i] == nil {
		return nil, errors.New("transient rpc error")
	}
	return &types.TokenBalance{
		Network:      network,
		Amount:       s.sequence[i],
		TokenAddress: token,
		Decimals:     6,
	}, nil
}

func TestWaitForCompletion_Timeout(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	checker := &sequenceChecker{sequence: []*big.Int{big.NewInt(0)}}
	w := New(checker, clock, nil)

	ok := w.WaitForCompletion(context.Background(), testToken, types.NetworkBase,
		big.NewInt(500), 10*time.Second, time.Second)

	assert.False(t, ok)
	// One poll per second plus the final poll at the deadline boundary.
	assert.Equal(t, 11, checker.calls)
}

func TestWaitForCompletion_EarlySuccess(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	checker := &sequenceChecker{sequence: []*big.Int{big.NewInt(0), big.NewInt(600)}}
	w := New(checker, clock, nil)

	ok := w.WaitForCompletion(context.Background(), testToken, types.NetworkBase,
		big.NewInt(500), time.Minute, time.Second)

	require.True(t, ok)
	// Returns immediately after the satisfying poll, no extra poll issued.
	assert.Equal(t, 2, checker.calls)
}

func TestWaitForCompletion_ExactAmountSatisfies(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	checker := &sequenceChecker{sequence: []*big.Int{big.NewInt(500)}}
	w := New(checker, clock, nil)

	ok := w.WaitForCompletion(context.Background(), testToken, types.NetworkBase,
		big.NewInt(500), time.Minute, time.Second)

	assert.True(t, ok)
	assert.Equal(t, 1, checker.calls)
}

func TestWaitForCompletion_PollErrorIsNotYet(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	checker := &sequenceChecker{sequence: []*big.Int{nil, nil, big.NewInt(500)}}
	w := New(checker, clock, nil)

	ok := w.WaitForCompletion(context.Background(), testToken, types.NetworkBase,
		big.NewInt(500), time.Minute, time.Second)

	assert.True(t, ok)
	assert.Equal(t, 3, checker.calls)
}

func TestWaitForCompletion_ErrorsUntilDeadline(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	checker := &sequenceChecker{sequence: []*big.Int{nil}}
	w := New(checker, clock, nil)

	ok := w.WaitForCompletion(context.Background(), testToken, types.NetworkBase,
		big.NewInt(500), 3*time.Second, time.Second)

	assert.False(t, ok)
	assert.Equal(t, 4, checker.calls)
}

func TestWaitForCompletion_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	checker := &sequenceChecker{sequence: []*big.Int{big.NewInt(0)}}
	w := New(checker, RealClock, nil)

	ok := w.WaitForCompletion(ctx, testToken, types.NetworkBase,
		big.NewInt(500), time.Minute, time.Second)

	assert.False(t, ok)
	assert.Equal(t, 1, checker.calls)
}
