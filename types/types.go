package types

import (
	"fmt"
	"math/big"
	"time"
)

// PaymentRequirement describes a single payment obligation supplied by the
// caller: how much of which token must reach which payee on which network.
// It is immutable for the duration of one payment attempt.
type PaymentRequirement struct {
	// Amount required to settle the obligation, as a human-readable decimal
	// string (e.g. "12.50"). Parsed against the destination network's token
	// decimals. Represented as a string because Go does not support uint256.
	RequiredAmount string `json:"requiredAmount" validate:"required"`

	// Network the payment must be settled on.
	DestinationNetwork Network `json:"destinationNetwork" validate:"required"`

	// Address the payment must be sent to.
	PayeeAddress string `json:"payeeAddress" validate:"required"`

	// Contract address of the token the payee accepts.
	TokenAddress string `json:"tokenAddress" validate:"required"`

	// Description of the resource being paid for.
	Description string `json:"description,omitempty"`
}

// Validate checks that the PaymentRequirement contains all required fields.
func (r *PaymentRequirement) Validate() error {
	if r.RequiredAmount == "" {
		return fmt.Errorf("paymentRequirement.requiredAmount is required")
	}

	if r.DestinationNetwork == "" {
		return fmt.Errorf("paymentRequirement.destinationNetwork is required")
	}

	if !r.DestinationNetwork.IsSupported() {
		return &Error{
			Code:    ErrUnsupportedNetwork,
			Message: fmt.Sprintf("unsupported destination network: %s", r.DestinationNetwork),
		}
	}

	if r.PayeeAddress == "" {
		return fmt.Errorf("paymentRequirement.payeeAddress is required")
	}

	if r.TokenAddress == "" {
		return fmt.Errorf("paymentRequirement.tokenAddress is required")
	}

	return nil
}

// TokenBalance is the result of one balance query: how much of a token the
// wallet holds on one network, in smallest units. Produced fresh per query,
// never cached.
type TokenBalance struct {
	Network      Network  `json:"network"`
	Amount       *big.Int `json:"amount"`
	TokenAddress string   `json:"tokenAddress"`
	Decimals     int      `json:"decimals"`
}

// TokenMetadata mirrors the on-chain ERC-20 metadata surface.
type TokenMetadata struct {
	Name        string   `json:"name"`
	Symbol      string   `json:"symbol"`
	Decimals    int      `json:"decimals"`
	TotalSupply *big.Int `json:"totalSupply,omitempty"`
}

// BridgeRoute is the funding decision for one payment attempt: move Amount
// (smallest units) of the token from Source to Destination. Computed once
// per attempt and discarded after use.
type BridgeRoute struct {
	Source      Network  `json:"source"`
	Destination Network  `json:"destination"`
	Amount      *big.Int `json:"amount"`
	Protocol    string   `json:"protocol"`
}

// BridgeResult is the outcome of a bridge submission. TxHash is the
// source-network bridge-send transaction; arrival on the destination is the
// watcher's concern, not recorded here.
type BridgeResult struct {
	Success bool   `json:"success"`
	TxHash  string `json:"txHash,omitempty"`
	Error   string `json:"error,omitempty"`
}

// PaymentOutcome is the single result value produced per ExecutePayment
// call. Every failure path is reported here; the orchestrator never lets an
// error or panic escape as such.
type PaymentOutcome struct {
	Success      bool   `json:"success"`
	TxHash       string `json:"txHash,omitempty"`
	ErrorCode    string `json:"errorCode,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// Receipt is returned by every gateway call that lands a transaction.
type Receipt struct {
	TxHash string `json:"txHash"`

	// IdempotencyKey is attached to the submission so a retried call can be
	// deduplicated by the gateway. Informational for callers.
	IdempotencyKey string `json:"idempotencyKey,omitempty"`
}

// Config is the process-wide orchestrator configuration. It is treated as an
// immutable snapshot: UpdateConfig installs a new copy, in-flight payment
// attempts keep the snapshot they started with.
type Config struct {
	// WalletAddress is the agent's address, identical on every network.
	WalletAddress string `json:"walletAddress" validate:"required"`

	// Networks the orchestrator may scan and bridge between.
	Networks []Network `json:"networks" validate:"required,min=1"`

	// MaxBridgeWait bounds how long the completion watcher polls the
	// destination network before giving up.
	MaxBridgeWait time.Duration `json:"maxBridgeWait"`

	// PollInterval is the constant pause between watcher polls.
	PollInterval time.Duration `json:"pollInterval"`

	LogLevel      string `json:"logLevel,omitempty"`
	EnableMetrics bool   `json:"enableMetrics,omitempty"`
}

// Defaults applied by Validate when the caller leaves a field zero.
const (
	DefaultMaxBridgeWait = 5 * time.Minute
	DefaultPollInterval  = 5 * time.Second
)

// Validate checks the config and fills in defaults for zero durations.
func (c *Config) Validate() error {
	if c.WalletAddress == "" {
		return fmt.Errorf("config.walletAddress is required")
	}

	if len(c.Networks) == 0 {
		return fmt.Errorf("config.networks must name at least one network")
	}

	for _, n := range c.Networks {
		if !n.IsSupported() {
			return &Error{
				Code:    ErrUnsupportedNetwork,
				Message: fmt.Sprintf("unsupported network in config: %s", n),
			}
		}
	}

	if c.MaxBridgeWait <= 0 {
		c.MaxBridgeWait = DefaultMaxBridgeWait
	}

	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}

	return nil
}

// Clone returns a deep copy so a stored snapshot can never be mutated
// through a caller-held reference.
func (c *Config) Clone() *Config {
	out := *c
	out.Networks = make([]Network, len(c.Networks))
	copy(out.Networks, c.Networks)
	return &out
}

// ConfigUpdate carries a partial configuration change. Nil fields keep the
// current value.
type ConfigUpdate struct {
	WalletAddress *string        `json:"walletAddress,omitempty"`
	Networks      []Network      `json:"networks,omitempty"`
	MaxBridgeWait *time.Duration `json:"maxBridgeWait,omitempty"`
	PollInterval  *time.Duration `json:"pollInterval,omitempty"`
}

// Error is the structured error type used across the module.
type Error struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (e Error) Error() string {
	return e.Message
}

// Common error codes
const (
	ErrInvalidRequirement = "INVALID_REQUIREMENT"
	ErrUnsupportedNetwork = "UNSUPPORTED_NETWORK"
	ErrInsufficientFunds  = "INSUFFICIENT_FUNDS"
	ErrBridgeFailed       = "BRIDGE_FAILED"
	ErrBridgeTimeout      = "BRIDGE_TIMEOUT"
	ErrPaymentFailed      = "PAYMENT_FAILED"
	ErrNetworkError       = "NETWORK_ERROR"
	ErrConfigError        = "CONFIG_ERROR"
	ErrInternal           = "INTERNAL_ERROR"
)
