package gateway

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/google/uuid"

	"github.com/rishav-eulb/crosspay/types"
	"github.com/rishav-eulb/crosspay/utils"
)

// erc20ABI covers the metadata reads and the two fund-moving calls the
// orchestration core needs.
const erc20ABI = `[
	{"constant":true,"inputs":[{"name":"owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"name","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"decimals","outputs":[{"name":"","type":"uint8"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"totalSupply","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"constant":false,"inputs":[{"name":"spender","type":"address"},{"name":"value","type":"uint256"}],"name":"approve","outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable","type":"function"},
	{"constant":false,"inputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"}],"name":"transfer","outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable","type":"function"}
]`

// EVMGateway implements Gateway over one ethclient connection per network.
type EVMGateway struct {
	clients  map[types.Network]*ethclient.Client
	tokenABI abi.ABI
	signer   *ecdsa.PrivateKey
}

var _ Gateway = (*EVMGateway)(nil)

// NewEVMGateway dials every configured RPC endpoint and loads the signing
// key. All networks in rpcURLs must be in the supported set.
func NewEVMGateway(rpcURLs map[types.Network]string, signerPrivHex string) (*EVMGateway, error) {
	parsed, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		return nil, fmt.Errorf("parse erc20 abi: %w", err)
	}

	signer, err := utils.PrivateKeyFromHex(signerPrivHex)
	if err != nil {
		return nil, fmt.Errorf("invalid signer key: %w", err)
	}

	clients := make(map[types.Network]*ethclient.Client, len(rpcURLs))
	for network, url := range rpcURLs {
		if !network.IsSupported() {
			closeAll(clients)
			return nil, &types.Error{
				Code:    types.ErrUnsupportedNetwork,
				Message: fmt.Sprintf("unsupported network: %s", network),
			}
		}

		client, err := ethclient.Dial(url)
		if err != nil {
			closeAll(clients)
			return nil, fmt.Errorf("rpc dial for %s: %w", network, err)
		}
		clients[network] = client
	}

	return &EVMGateway{
		clients:  clients,
		tokenABI: parsed,
		signer:   signer,
	}, nil
}

func closeAll(clients map[types.Network]*ethclient.Client) {
	for _, c := range clients {
		c.Close()
	}
}

func (g *EVMGateway) clientFor(network types.Network) (*ethclient.Client, error) {
	client, ok := g.clients[network]
	if !ok {
		return nil, &types.Error{
			Code:    types.ErrUnsupportedNetwork,
			Message: fmt.Sprintf("no RPC client configured for network %s", network),
		}
	}
	return client, nil
}

// call performs a read-only contract call and unpacks the named output.
func (g *EVMGateway) call(ctx context.Context, network types.Network, token, method string, args ...interface{}) ([]interface{}, error) {
	client, err := g.clientFor(network)
	if err != nil {
		return nil, err
	}

	callData, err := g.tokenABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}

	tokenAddr := common.HexToAddress(token)
	raw, err := client.CallContract(ctx, ethereum.CallMsg{To: &tokenAddr, Data: callData}, nil)
	if err != nil {
		return nil, fmt.Errorf("%s call on %s: %w", method, network, err)
	}

	return g.unpackOutput(method, raw)
}

// unpackOutput decodes a read-only call result. A contract answering with no
// output values is reported as an error so callers can index the result
// without checking.
func (g *EVMGateway) unpackOutput(method string, raw []byte) ([]interface{}, error) {
	out, err := g.tokenABI.Unpack(method, raw)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s returned no output", method)
	}
	return out, nil
}

// GetTokenBalance implements Gateway.
func (g *EVMGateway) GetTokenBalance(ctx context.Context, network types.Network, token, account string) (*big.Int, error) {
	out, err := g.call(ctx, network, token, "balanceOf", common.HexToAddress(account))
	if err != nil {
		return nil, err
	}

	balance, ok := out[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected balanceOf result type %T", out[0])
	}
	return balance, nil
}

// GetTokenMetadata implements Gateway.
func (g *EVMGateway) GetTokenMetadata(ctx context.Context, network types.Network, token string) (*types.TokenMetadata, error) {
	meta := &types.TokenMetadata{}

	out, err := g.call(ctx, network, token, "name")
	if err != nil {
		return nil, err
	}
	meta.Name, _ = out[0].(string)

	out, err = g.call(ctx, network, token, "symbol")
	if err != nil {
		return nil, err
	}
	meta.Symbol, _ = out[0].(string)

	out, err = g.call(ctx, network, token, "decimals")
	if err != nil {
		return nil, err
	}
	decimals, ok := out[0].(uint8)
	if !ok {
		return nil, fmt.Errorf("unexpected decimals result type %T", out[0])
	}
	meta.Decimals = int(decimals)

	out, err = g.call(ctx, network, token, "totalSupply")
	if err != nil {
		return nil, err
	}
	meta.TotalSupply, _ = out[0].(*big.Int)

	return meta, nil
}

// Approve implements Gateway.
func (g *EVMGateway) Approve(ctx context.Context, network types.Network, owner, spender, token string, amount *big.Int) (*types.Receipt, error) {
	if !strings.EqualFold(owner, utils.AddressFromPrivateKey(g.signer).Hex()) {
		return nil, fmt.Errorf("owner %s does not match configured signer", owner)
	}

	callData, err := g.tokenABI.Pack("approve", common.HexToAddress(spender), amount)
	if err != nil {
		return nil, fmt.Errorf("pack approve: %w", err)
	}

	return g.submit(ctx, network, token, callData)
}

// TransferToken implements Gateway.
func (g *EVMGateway) TransferToken(ctx context.Context, network types.Network, from, to, token string, amount *big.Int) (*types.Receipt, error) {
	if !strings.EqualFold(from, utils.AddressFromPrivateKey(g.signer).Hex()) {
		return nil, fmt.Errorf("from %s does not match configured signer", from)
	}

	callData, err := g.tokenABI.Pack("transfer", common.HexToAddress(to), amount)
	if err != nil {
		return nil, fmt.Errorf("pack transfer: %w", err)
	}

	return g.submit(ctx, network, token, callData)
}

// SubmitTransaction implements Gateway.
func (g *EVMGateway) SubmitTransaction(ctx context.Context, network types.Network, from, toAddress string, callData []byte) (*types.Receipt, error) {
	if !strings.EqualFold(from, utils.AddressFromPrivateKey(g.signer).Hex()) {
		return nil, fmt.Errorf("from %s does not match configured signer", from)
	}

	return g.submit(ctx, network, toAddress, callData)
}

// submit estimates gas, signs with the configured key and broadcasts.
func (g *EVMGateway) submit(ctx context.Context, network types.Network, to string, callData []byte) (*types.Receipt, error) {
	client, err := g.clientFor(network)
	if err != nil {
		return nil, err
	}

	chainID, ok := network.ChainID()
	if !ok {
		return nil, &types.Error{
			Code:    types.ErrUnsupportedNetwork,
			Message: fmt.Sprintf("no chain id for network %s", network),
		}
	}

	signerAddr := utils.AddressFromPrivateKey(g.signer)
	toAddr := common.HexToAddress(to)

	gasLimit, err := client.EstimateGas(ctx, ethereum.CallMsg{From: signerAddr, To: &toAddr, Data: callData})
	if err != nil {
		return nil, fmt.Errorf("estimate gas: %w", err)
	}

	gasPrice, err := client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("suggest gas price: %w", err)
	}

	nonce, err := client.PendingNonceAt(ctx, signerAddr)
	if err != nil {
		return nil, fmt.Errorf("pending nonce: %w", err)
	}

	tx := ethtypes.NewTransaction(nonce, toAddr, big.NewInt(0), gasLimit, gasPrice, callData)

	signed, err := ethtypes.SignTx(tx, ethtypes.NewEIP155Signer(new(big.Int).SetUint64(chainID)), g.signer)
	if err != nil {
		return nil, fmt.Errorf("sign tx: %w", err)
	}

	if err := client.SendTransaction(ctx, signed); err != nil {
		return nil, fmt.Errorf("send tx: %w", err)
	}

	return &types.Receipt{
		TxHash:         signed.Hash().Hex(),
		IdempotencyKey: uuid.NewString(),
	}, nil
}

// Close implements Gateway.
func (g *EVMGateway) Close() {
	closeAll(g.clients)
}
