package types

import "strings"

// Network identifies a supported blockchain execution environment. The set
// is closed: lookups against it use comma-ok form so an unknown network is
// an explicit error, never a silent default.
type Network string

const (
	NetworkEthereum Network = "ethereum"
	NetworkBase     Network = "base"
	NetworkPolygon  Network = "polygon"
	NetworkArbitrum Network = "arbitrum"
	NetworkOptimism Network = "optimism"

	// Testnets
	NetworkSepolia         Network = "ethereum-sepolia"
	NetworkBaseSepolia     Network = "base-sepolia"
	NetworkPolygonAmoy     Network = "polygon-amoy"
	NetworkArbitrumSepolia Network = "arbitrum-sepolia"
)

// SupportedNetworks is the closed set the orchestrator accepts.
var SupportedNetworks = []Network{
	NetworkEthereum,
	NetworkBase,
	NetworkPolygon,
	NetworkArbitrum,
	NetworkOptimism,
	NetworkSepolia,
	NetworkBaseSepolia,
	NetworkPolygonAmoy,
	NetworkArbitrumSepolia,
}

// chainIDs maps each network to its native EVM chain identity.
var chainIDs = map[Network]uint64{
	NetworkEthereum:        1,
	NetworkBase:            8453,
	NetworkPolygon:         137,
	NetworkArbitrum:        42161,
	NetworkOptimism:        10,
	NetworkSepolia:         11155111,
	NetworkBaseSepolia:     84532,
	NetworkPolygonAmoy:     80002,
	NetworkArbitrumSepolia: 421614,
}

// IsSupported reports whether the network is in the closed supported set.
func (n Network) IsSupported() bool {
	_, ok := chainIDs[n]
	return ok
}

// ChainID returns the network's native chain identity.
func (n Network) ChainID() (uint64, bool) {
	id, ok := chainIDs[n]
	return id, ok
}

// IsTestnet follows the naming convention: testnet networks carry their
// testnet name as a suffix.
func (n Network) IsTestnet() bool {
	s := string(n)
	return strings.HasSuffix(s, "-sepolia") || strings.HasSuffix(s, "-amoy")
}

func (n Network) String() string {
	return string(n)
}
