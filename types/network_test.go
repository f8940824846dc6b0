package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNetworkIsSupported(t *testing.T) {
	for _, network := range SupportedNetworks {
		assert.True(t, network.IsSupported(), network)
	}

	assert.False(t, Network("solana").IsSupported())
	assert.False(t, Network("").IsSupported())
}

func TestNetworkChainID(t *testing.T) {
	id, ok := NetworkBase.ChainID()
	assert.True(t, ok)
	assert.Equal(t, uint64(8453), id)

	id, ok = NetworkSepolia.ChainID()
	assert.True(t, ok)
	assert.Equal(t, uint64(11155111), id)

	_, ok = Network("solana").ChainID()
	assert.False(t, ok)
}

func TestNetworkIsTestnet(t *testing.T) {
	assert.True(t, NetworkSepolia.IsTestnet())
	assert.True(t, NetworkBaseSepolia.IsTestnet())
	assert.True(t, NetworkPolygonAmoy.IsTestnet())
	assert.False(t, NetworkBase.IsTestnet())
	assert.False(t, NetworkEthereum.IsTestnet())
}
