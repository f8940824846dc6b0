package bridge

import "github.com/rishav-eulb/crosspay/types"

// endpoints maps each network to its bridge endpoint contract. The
// LayerZero v2 endpoint shares one address across mainnets and another
// across testnets.
var endpoints = map[types.Network]string{
	types.NetworkEthereum: "0x1a44076050125825900e736c501f859c50fE728c",
	types.NetworkBase:     "0x1a44076050125825900e736c501f859c50fE728c",
	types.NetworkPolygon:  "0x1a44076050125825900e736c501f859c50fE728c",
	types.NetworkArbitrum: "0x1a44076050125825900e736c501f859c50fE728c",
	types.NetworkOptimism: "0x1a44076050125825900e736c501f859c50fE728c",

	types.NetworkSepolia:         "0x6EDCE65403992e310A62460808c4b910D972f10f",
	types.NetworkBaseSepolia:     "0x6EDCE65403992e310A62460808c4b910D972f10f",
	types.NetworkPolygonAmoy:     "0x6EDCE65403992e310A62460808c4b910D972f10f",
	types.NetworkArbitrumSepolia: "0x6EDCE65403992e310A62460808c4b910D972f10f",
}

// destinationEIDs maps each network to its LayerZero endpoint identifier.
var destinationEIDs = map[types.Network]uint32{
	types.NetworkEthereum: 30101,
	types.NetworkBase:     30184,
	types.NetworkPolygon:  30109,
	types.NetworkArbitrum: 30110,
	types.NetworkOptimism: 30111,

	types.NetworkSepolia:         40161,
	types.NetworkBaseSepolia:     40245,
	types.NetworkPolygonAmoy:     40267,
	types.NetworkArbitrumSepolia: 40231,
}

// EndpointFor returns the bridge endpoint contract for a network. The
// comma-ok form makes an unmapped network an explicit failure before any
// on-chain action, never a zero-address send.
func EndpointFor(network types.Network) (string, bool) {
	addr, ok := endpoints[network]
	return addr, ok
}

// DestinationEIDFor returns the protocol-specific destination identifier.
func DestinationEIDFor(network types.Network) (uint32, bool) {
	eid, ok := destinationEIDs[network]
	return eid, ok
}
