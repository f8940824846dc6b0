// Package router picks the funding source for a cross-network payment.
package router

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/rishav-eulb/crosspay/types"
	"github.com/rishav-eulb/crosspay/utils"
)

// Protocol is the bridge protocol identifier stamped on every route.
const Protocol = "layerzero"

// SelectRoute chooses the single highest-balance network, excluding the
// destination and every candidate that cannot cover the full required
// amount. No partial-source routing: one source must carry it all. Ties
// keep scan order.
//
// required is in destination-network smallest units, sized with
// destDecimals; when the chosen source contract uses a different precision
// the bridge amount is rescaled, rounding up so the landed funds can never
// fall short of the requirement.
func SelectRoute(balances []*types.TokenBalance, required *big.Int, destination types.Network, destDecimals int) (*types.BridgeRoute, error) {
	var candidates []*types.TokenBalance
	for _, balance := range balances {
		if balance.Network == destination {
			continue
		}
		need := utils.ConvertDecimalsCeil(required, destDecimals, balance.Decimals)
		if balance.Amount.Cmp(need) < 0 {
			continue
		}
		candidates = append(candidates, balance)
	}

	if len(candidates) == 0 {
		return nil, &types.Error{
			Code: types.ErrInsufficientFunds,
			Message: fmt.Sprintf(
				"insufficient funds: no chain holds the required %s units",
				required.String(),
			),
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Amount.Cmp(candidates[j].Amount) > 0
	})

	source := candidates[0]
	amount := utils.ConvertDecimalsCeil(required, destDecimals, source.Decimals)

	return &types.BridgeRoute{
		Source:      source.Network,
		Destination: destination,
		Amount:      amount,
		Protocol:    Protocol,
	}, nil
}
