// Package gateway defines the Ledger Gateway: the external collaborator the
// orchestration core drives for every on-chain interaction. Each call is
// scoped to exactly one network, passed explicitly, never inferred.
package gateway

import (
	"context"
	"math/big"

	"github.com/rishav-eulb/crosspay/types"
)

// Gateway is the full collaborator contract. Implementations own transport,
// contract-call encoding, key management and signing; the core treats every
// failure as opaque.
type Gateway interface {
	// GetTokenBalance returns the smallest-unit balance of token held by
	// account on the given network.
	GetTokenBalance(ctx context.Context, network types.Network, token, account string) (*big.Int, error)

	// GetTokenMetadata reads the token's on-chain metadata.
	GetTokenMetadata(ctx context.Context, network types.Network, token string) (*types.TokenMetadata, error)

	// Approve lets spender move up to amount of owner's token.
	Approve(ctx context.Context, network types.Network, owner, spender, token string, amount *big.Int) (*types.Receipt, error)

	// TransferToken moves amount of token from the wallet to the recipient.
	TransferToken(ctx context.Context, network types.Network, from, to, token string, amount *big.Int) (*types.Receipt, error)

	// SubmitTransaction broadcasts an arbitrary contract call to toAddress.
	SubmitTransaction(ctx context.Context, network types.Network, from, toAddress string, callData []byte) (*types.Receipt, error)

	// Close releases all underlying connections.
	Close()
}
