// Package scanner discovers where the wallet's token balance lives. A scan
// across networks tolerates per-network failure: one bad RPC never poisons
// the rest of the result set.
package scanner

import (
	"context"
	"math/big"

	"github.com/rishav-eulb/crosspay/logger"
	"github.com/rishav-eulb/crosspay/retry"
	"github.com/rishav-eulb/crosspay/types"
	"github.com/rishav-eulb/crosspay/utils"
)

// defaultDecimals is substituted when a network's metadata read fails and a
// zero-balance placeholder is produced.
const defaultDecimals = 18

// TokenReader is the slice of the ledger gateway the scanner needs.
type TokenReader interface {
	GetTokenBalance(ctx context.Context, network types.Network, token, account string) (*big.Int, error)
	GetTokenMetadata(ctx context.Context, network types.Network, token string) (*types.TokenMetadata, error)
}

// Scanner queries token balances for one wallet across networks.
type Scanner struct {
	reader TokenReader
	wallet string
	retry  retry.Policy
	log    logger.Logger
}

// New creates a Scanner. Balance and metadata reads are idempotent, so the
// given retry policy is applied to every query.
func New(reader TokenReader, wallet string, policy retry.Policy, log logger.Logger) *Scanner {
	if log == nil {
		log = logger.NoopLogger{}
	}

	return &Scanner{
		reader: reader,
		wallet: wallet,
		retry:  policy,
		log:    log,
	}
}

// CheckBalance queries one network and fails by propagating the underlying
// gateway error.
func (s *Scanner) CheckBalance(ctx context.Context, token string, network types.Network) (*types.TokenBalance, error) {
	var balance *big.Int
	err := s.retry.Do(ctx, func(ctx context.Context) error {
		var err error
		balance, err = s.reader.GetTokenBalance(ctx, network, token, s.wallet)
		return err
	})
	if err != nil {
		return nil, err
	}

	var meta *types.TokenMetadata
	err = s.retry.Do(ctx, func(ctx context.Context) error {
		var err error
		meta, err = s.reader.GetTokenMetadata(ctx, network, token)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &types.TokenBalance{
		Network:      network,
		Amount:       balance,
		TokenAddress: token,
		Decimals:     meta.Decimals,
	}, nil
}

// ScanAllChains queries every network concurrently and returns the entries
// with strictly positive balance, in the order networks were given. A failed
// per-network query is logged and substituted with a zero-balance record so
// the scan as a whole never fails; zero balances are filtered out before
// returning.
func (s *Scanner) ScanAllChains(ctx context.Context, token string, networks []types.Network) []*types.TokenBalance {
	type scanResult struct {
		index   int
		balance *types.TokenBalance
	}

	resultChan := make(chan scanResult, len(networks))

	for i, network := range networks {
		go func(index int, network types.Network) {
			balance, err := s.CheckBalance(ctx, token, network)
			if err != nil {
				s.log.Warn("balance query failed, treating as zero", logger.Fields{
					"network": network.String(),
					"token":   token,
					"error":   err.Error(),
				})
				balance = &types.TokenBalance{
					Network:      network,
					Amount:       big.NewInt(0),
					TokenAddress: token,
					Decimals:     defaultDecimals,
				}
			}
			resultChan <- scanResult{index: index, balance: balance}
		}(i, network)
	}

	ordered := make([]*types.TokenBalance, len(networks))
	for range networks {
		res := <-resultChan
		ordered[res.index] = res.balance
	}

	var positive []*types.TokenBalance
	for _, balance := range ordered {
		if balance.Amount.Sign() > 0 {
			positive = append(positive, balance)
			s.log.Info("balance found", logger.Fields{
				"network": balance.Network.String(),
				"amount":  utils.FormatAmount(balance.Amount, balance.Decimals),
				"token":   token,
			})
		}
	}

	return positive
}
