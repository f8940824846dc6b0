// Package crosspay lets an autonomous agent settle a payment obligation on
// a network where it currently lacks funds: it checks the target balance,
// scans the other configured networks, bridges from the best-funded source,
// waits for the funds to land and then pays.
package crosspay

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rishav-eulb/crosspay/bridge"
	"github.com/rishav-eulb/crosspay/gateway"
	"github.com/rishav-eulb/crosspay/logger"
	"github.com/rishav-eulb/crosspay/metrics"
	"github.com/rishav-eulb/crosspay/retry"
	"github.com/rishav-eulb/crosspay/router"
	"github.com/rishav-eulb/crosspay/scanner"
	"github.com/rishav-eulb/crosspay/types"
	"github.com/rishav-eulb/crosspay/utils"
	"github.com/rishav-eulb/crosspay/watcher"
)

// CrossPay is the payment orchestrator. One instance serves any number of
// ExecutePayment calls; concurrent calls are legal but not coordinated
// against each other (two attempts can race for the same on-chain funds).
type CrossPay struct {
	gateway gateway.Gateway
	logger  logger.Logger
	metrics metrics.Recorder
	clock   watcher.Clock
	retry   retry.Policy

	// rt holds the current config together with the components built from
	// it, swapped as one unit so an in-flight attempt sees a consistent
	// snapshot.
	rt       atomic.Pointer[runtime]
	updateMu sync.Mutex
}

type runtime struct {
	cfg      *types.Config
	scanner  *scanner.Scanner
	executor *bridge.Executor
	watcher  *watcher.Watcher
}

// New creates an orchestrator over the given ledger gateway.
func New(config *types.Config, gw gateway.Gateway, opts ...Option) (*CrossPay, error) {
	if config == nil {
		return nil, &types.Error{Code: types.ErrConfigError, Message: "config is required"}
	}
	if gw == nil {
		return nil, &types.Error{Code: types.ErrConfigError, Message: "gateway is required"}
	}

	cfg := config.Clone()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &CrossPay{
		gateway: gw,
		logger:  logger.NoopLogger{},
		metrics: metrics.NoopRecorder{},
		clock:   watcher.RealClock,
		// Balance reads are idempotent and safe to retry.
		retry: retry.Policy{MaxAttempts: 3, Backoff: retry.ConstantBackoff(time.Second)},
	}

	if cfg.LogLevel != "" {
		c.logger = logger.NewZapLogger(cfg.LogLevel)
	}
	if cfg.EnableMetrics {
		c.metrics = metrics.NewPrometheusRecorder()
	}

	for _, opt := range opts {
		opt(c)
	}

	rt, err := c.buildRuntime(cfg)
	if err != nil {
		return nil, err
	}
	c.rt.Store(rt)

	return c, nil
}

func (c *CrossPay) buildRuntime(cfg *types.Config) (*runtime, error) {
	if !utils.ValidateAddress(cfg.WalletAddress) {
		return nil, &types.Error{
			Code:    types.ErrConfigError,
			Message: fmt.Sprintf("invalid wallet address: %s", cfg.WalletAddress),
		}
	}

	scan := scanner.New(c.gateway, cfg.WalletAddress, c.retry, c.logger)

	executor, err := bridge.NewExecutor(c.gateway, cfg.WalletAddress, c.logger)
	if err != nil {
		return nil, err
	}

	return &runtime{
		cfg:      cfg,
		scanner:  scan,
		executor: executor,
		watcher:  watcher.New(scan, c.clock, c.logger),
	}, nil
}

// GetConfig returns a copy of the current configuration.
func (c *CrossPay) GetConfig() *types.Config {
	return c.rt.Load().cfg.Clone()
}

// UpdateConfig applies a partial update copy-on-write: a new snapshot is
// built, validated and swapped in atomically. In-flight payment attempts
// keep the snapshot they started with.
func (c *CrossPay) UpdateConfig(update *types.ConfigUpdate) error {
	if update == nil {
		return nil
	}

	c.updateMu.Lock()
	defer c.updateMu.Unlock()

	cfg := c.rt.Load().cfg.Clone()

	if update.WalletAddress != nil {
		cfg.WalletAddress = *update.WalletAddress
	}
	if update.Networks != nil {
		cfg.Networks = make([]types.Network, len(update.Networks))
		copy(cfg.Networks, update.Networks)
	}
	if update.MaxBridgeWait != nil {
		cfg.MaxBridgeWait = *update.MaxBridgeWait
	}
	if update.PollInterval != nil {
		cfg.PollInterval = *update.PollInterval
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	rt, err := c.buildRuntime(cfg)
	if err != nil {
		return err
	}
	c.rt.Store(rt)

	return nil
}

// ExecutePayment runs the full payment flow for one requirement and always
// returns an outcome value: every failure path, including a panic anywhere
// in the sequence, is converted into a PaymentOutcome.
func (c *CrossPay) ExecutePayment(ctx context.Context, req *types.PaymentRequirement) (outcome *types.PaymentOutcome) {
	start := time.Now()
	rt := c.rt.Load()

	defer func() {
		if r := recover(); r != nil {
			outcome = failure(types.ErrInternal, fmt.Sprintf("unexpected error: %v", r))
		}

		labels := map[string]string{"network": ""}
		if req != nil {
			labels["network"] = req.DestinationNetwork.String()
		}
		c.metrics.ObserveLatency(metrics.OpExecutePayment, time.Since(start), labels)
		if outcome.Success {
			c.metrics.IncCounter(metrics.EventPaymentSucceeded, labels)
		} else {
			c.metrics.IncCounter(metrics.EventPaymentFailed, labels)
		}
	}()

	if req == nil {
		return failure(types.ErrInvalidRequirement, "payment requirement is required")
	}
	if err := req.Validate(); err != nil {
		return failure(types.ErrInvalidRequirement, err.Error())
	}

	// CheckingTarget: the required amount is parsed against the target
	// network's token decimals.
	target, err := rt.scanner.CheckBalance(ctx, req.TokenAddress, req.DestinationNetwork)
	if err != nil {
		return failure(types.ErrNetworkError, fmt.Sprintf("target balance check failed: %v", err))
	}

	required, err := utils.ParseAmountWithDecimals(req.RequiredAmount, target.Decimals)
	if err != nil {
		return failure(types.ErrInvalidRequirement, fmt.Sprintf("invalid required amount: %v", err))
	}

	if target.Amount.Cmp(required) >= 0 {
		c.logger.Info("target network already funded, paying directly", logger.Fields{
			"network":  req.DestinationNetwork.String(),
			"required": req.RequiredAmount,
		})
		return c.pay(ctx, rt.cfg, req, required)
	}

	// ScanningChains
	scanStart := time.Now()
	balances := rt.scanner.ScanAllChains(ctx, req.TokenAddress, rt.cfg.Networks)
	c.metrics.ObserveLatency(metrics.OpScanChains, time.Since(scanStart), map[string]string{
		"network": req.DestinationNetwork.String(),
	})

	route, err := router.SelectRoute(balances, required, req.DestinationNetwork, target.Decimals)
	if err != nil {
		return failure(types.ErrInsufficientFunds, fmt.Sprintf(
			"no chain holds sufficient funds for required amount %s: %v", req.RequiredAmount, err))
	}

	c.logger.Info("funding route selected", logger.Fields{
		"source":      route.Source.String(),
		"destination": route.Destination.String(),
		"amount":      route.Amount.String(),
	})

	// Bridging
	bridgeStart := time.Now()
	result := rt.executor.Bridge(ctx, route, req.TokenAddress)
	c.metrics.ObserveLatency(metrics.OpBridge, time.Since(bridgeStart), map[string]string{
		"network": route.Source.String(),
	})
	if !result.Success {
		c.metrics.IncCounter(metrics.EventBridgeFailed, map[string]string{"network": route.Source.String()})
		return failure(types.ErrBridgeFailed, fmt.Sprintf("Bridge failed: %s", result.Error))
	}
	c.metrics.IncCounter(metrics.EventBridgeSubmitted, map[string]string{"network": route.Source.String()})

	// Waiting
	waitStart := time.Now()
	arrived := rt.watcher.WaitForCompletion(
		ctx, req.TokenAddress, req.DestinationNetwork, required,
		rt.cfg.MaxBridgeWait, rt.cfg.PollInterval,
	)
	c.metrics.ObserveLatency(metrics.OpWait, time.Since(waitStart), map[string]string{
		"network": req.DestinationNetwork.String(),
	})
	if !arrived {
		c.metrics.IncCounter(metrics.EventBridgeTimeout, map[string]string{
			"network": req.DestinationNetwork.String(),
		})
		return failure(types.ErrBridgeTimeout, fmt.Sprintf(
			"bridge did not complete within %s", rt.cfg.MaxBridgeWait))
	}

	// RetryPaying
	return c.pay(ctx, rt.cfg, req, required)
}

// pay settles the obligation on the destination network.
func (c *CrossPay) pay(ctx context.Context, cfg *types.Config, req *types.PaymentRequirement, amount *big.Int) *types.PaymentOutcome {
	receipt, err := c.gateway.TransferToken(
		ctx, req.DestinationNetwork,
		cfg.WalletAddress, req.PayeeAddress, req.TokenAddress, amount,
	)
	if err != nil {
		return failure(types.ErrPaymentFailed, fmt.Sprintf("payment failed: %v", err))
	}

	c.logger.Info("payment settled", logger.Fields{
		"network": req.DestinationNetwork.String(),
		"payee":   req.PayeeAddress,
		"amount":  amount.String(),
		"txHash":  receipt.TxHash,
	})

	return &types.PaymentOutcome{
		Success: true,
		TxHash:  receipt.TxHash,
	}
}

// Close releases the underlying gateway connections.
func (c *CrossPay) Close() {
	c.gateway.Close()
}

func failure(code, message string) *types.PaymentOutcome {
	return &types.PaymentOutcome{
		Success:      false,
		ErrorCode:    code,
		ErrorMessage: message,
	}
}

// Version information
const Version = "0.1.0"
