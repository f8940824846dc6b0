// Package bridge drives a cross-network asset move: approve the bridge
// endpoint, then submit the protocol send on the source network. It never
// waits for destination arrival; that is the watcher's job.
package bridge

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/rishav-eulb/crosspay/logger"
	"github.com/rishav-eulb/crosspay/types"
)

// oftSendABI is the cross-network transfer instruction: destination
// endpoint id, recipient (left-padded to bytes32), amount, minimum amount
// out, adapter options and the refund address.
const oftSendABI = `[{
	"inputs":[
	  {"name":"dstEid","type":"uint32"},
	  {"name":"to","type":"bytes32"},
	  {"name":"amountLD","type":"uint256"},
	  {"name":"minAmountLD","type":"uint256"},
	  {"name":"extraOptions","type":"bytes"},
	  {"name":"refundAddress","type":"address"}
	],
	"name":"send",
	"outputs":[],
	"stateMutability":"payable",
	"type":"function"
}]`

// Submitter is the slice of the ledger gateway the executor needs.
type Submitter interface {
	Approve(ctx context.Context, network types.Network, owner, spender, token string, amount *big.Int) (*types.Receipt, error)
	SubmitTransaction(ctx context.Context, network types.Network, from, toAddress string, callData []byte) (*types.Receipt, error)
}

// Executor submits bridge transfers on behalf of one wallet.
type Executor struct {
	submitter Submitter
	wallet    string
	sendABI   abi.ABI
	log       logger.Logger
}

// NewExecutor creates an Executor for the given wallet.
func NewExecutor(submitter Submitter, wallet string, log logger.Logger) (*Executor, error) {
	parsed, err := abi.JSON(strings.NewReader(oftSendABI))
	if err != nil {
		return nil, fmt.Errorf("parse bridge abi: %w", err)
	}

	if log == nil {
		log = logger.NoopLogger{}
	}

	return &Executor{
		submitter: submitter,
		wallet:    wallet,
		sendABI:   parsed,
		log:       log,
	}, nil
}

// Bridge moves route.Amount of token from the source to the destination
// network. Two on-chain transactions are submitted in sequence: approve,
// then the bridge send. Failures are reported as a result value; no retry
// happens at this layer. If the send fails after a successful approve the
// allowance is left outstanding and logged for out-of-band cleanup.
func (e *Executor) Bridge(ctx context.Context, route *types.BridgeRoute, token string) *types.BridgeResult {
	endpoint, ok := EndpointFor(route.Source)
	if !ok {
		return &types.BridgeResult{
			Success: false,
			Error:   fmt.Sprintf("unsupported network: no bridge endpoint configured for %s", route.Source),
		}
	}

	dstEID, ok := DestinationEIDFor(route.Destination)
	if !ok {
		return &types.BridgeResult{
			Success: false,
			Error:   fmt.Sprintf("unsupported network: no destination identifier configured for %s", route.Destination),
		}
	}

	approval, err := e.submitter.Approve(ctx, route.Source, e.wallet, endpoint, token, route.Amount)
	if err != nil {
		return &types.BridgeResult{
			Success: false,
			Error:   fmt.Sprintf("approve failed: %v", err),
		}
	}

	e.log.Info("bridge endpoint approved", logger.Fields{
		"source":   route.Source.String(),
		"endpoint": endpoint,
		"txHash":   approval.TxHash,
	})

	callData, err := e.packSend(dstEID, route.Amount)
	if err != nil {
		e.log.Warn("approval left outstanding after send-encoding failure", logger.Fields{
			"source":   route.Source.String(),
			"endpoint": endpoint,
		})
		return &types.BridgeResult{
			Success: false,
			Error:   fmt.Sprintf("encode bridge send: %v", err),
		}
	}

	receipt, err := e.submitter.SubmitTransaction(ctx, route.Source, e.wallet, endpoint, callData)
	if err != nil {
		// The allowance granted above is not revoked automatically.
		e.log.Warn("bridge send failed, approval left outstanding", logger.Fields{
			"source":   route.Source.String(),
			"endpoint": endpoint,
			"error":    err.Error(),
		})
		return &types.BridgeResult{
			Success: false,
			Error:   fmt.Sprintf("bridge send failed: %v", err),
		}
	}

	e.log.Info("bridge transfer submitted", logger.Fields{
		"source":      route.Source.String(),
		"destination": route.Destination.String(),
		"amount":      route.Amount.String(),
		"txHash":      receipt.TxHash,
	})

	return &types.BridgeResult{
		Success: true,
		TxHash:  receipt.TxHash,
	}
}

// packSend encodes the transfer instruction. The destination account and
// the refund account are both the orchestrating wallet; no fee-token
// payment and no extra adapter options are attached.
func (e *Executor) packSend(dstEID uint32, amount *big.Int) ([]byte, error) {
	var recipient [32]byte
	copy(recipient[12:], common.HexToAddress(e.wallet).Bytes())

	return e.sendABI.Pack(
		"send",
		dstEID,
		recipient,
		amount,
		amount,
		[]byte{},
		common.HexToAddress(e.wallet),
	)
}
