package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rishav-eulb/crosspay/types"
)

func TestParsePaymentRequirement(t *testing.T) {
	data := []byte(`{
		"requiredAmount": "0.50",
		"destinationNetwork": "base-sepolia",
		"payeeAddress": "0x384Aa214be0B279cbf211e9b2C992d8633F77848",
		"tokenAddress": "0x036CbD53842c5426634e7929541eC2318f3dCF7e",
		"description": "API access"
	}`)

	req, err := ParsePaymentRequirement(data)
	require.NoError(t, err)
	assert.Equal(t, "0.50", req.RequiredAmount)
	assert.Equal(t, types.NetworkBaseSepolia, req.DestinationNetwork)
	assert.Equal(t, "API access", req.Description)
}

func TestParsePaymentRequirement_Invalid(t *testing.T) {
	cases := map[string]struct {
		data []byte
		code string
	}{
		"malformed json": {
			[]byte(`{"requiredAmount": `),
			types.ErrInvalidRequirement,
		},
		"missing fields": {
			[]byte(`{"requiredAmount": "0.50"}`),
			types.ErrInvalidRequirement,
		},
		"unknown network": {
			[]byte(`{
				"requiredAmount": "0.50",
				"destinationNetwork": "solana",
				"payeeAddress": "0x384Aa214be0B279cbf211e9b2C992d8633F77848",
				"tokenAddress": "0x036CbD53842c5426634e7929541eC2318f3dCF7e"
			}`),
			types.ErrUnsupportedNetwork,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParsePaymentRequirement(tc.data)
			require.Error(t, err)

			var typed *types.Error
			require.ErrorAs(t, err, &typed)
			assert.Equal(t, tc.code, typed.Code)
		})
	}
}

func TestParseConfig(t *testing.T) {
	data := []byte(`{
		"walletAddress": "0xE4d365a5a8fC0DCEE9E3C5985D7FcBab8B4A0fE1",
		"networks": ["base", "polygon"]
	}`)

	cfg, err := ParseConfig(data)
	require.NoError(t, err)
	assert.Equal(t, []types.Network{types.NetworkBase, types.NetworkPolygon}, cfg.Networks)

	// Zero durations take the documented defaults.
	assert.Equal(t, types.DefaultMaxBridgeWait, cfg.MaxBridgeWait)
	assert.Equal(t, types.DefaultPollInterval, cfg.PollInterval)
}

func TestParseConfig_Invalid(t *testing.T) {
	_, err := ParseConfig([]byte(`{"networks": ["base"]}`))
	require.Error(t, err)

	var typed *types.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, types.ErrConfigError, typed.Code)
}

func TestSerializeOutcome(t *testing.T) {
	data, err := SerializeOutcome(&types.PaymentOutcome{Success: true, TxHash: "0xabc"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"success": true, "txHash": "0xabc"}`, string(data))
}
