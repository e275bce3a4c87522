package ethereum

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"stakeburn-backend/internal/common/config"
	"stakeburn-backend/internal/platform/token"
)

// Minimal ERC20 surface the engine needs, plus the optional burn method.
const erc20ABI = `[
	{"constant":true,"inputs":[{"name":"owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"type":"function"},
	{"constant":false,"inputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"}],"name":"transfer","outputs":[{"name":"","type":"bool"}],"type":"function"},
	{"constant":false,"inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"value","type":"uint256"}],"name":"transferFrom","outputs":[{"name":"","type":"bool"}],"type":"function"},
	{"constant":false,"inputs":[{"name":"spender","type":"address"},{"name":"value","type":"uint256"}],"name":"approve","outputs":[{"name":"","type":"bool"}],"type":"function"},
	{"constant":false,"inputs":[{"name":"value","type":"uint256"}],"name":"burn","outputs":[],"type":"function"}
]`

// Client wraps the ethereum connection and the signer used for custody
// transactions.
type Client struct {
	eth         *ethclient.Client
	auth        *bind.TransactOpts
	burnAddress common.Address
}

func NewClient(cfg *config.Config) (*Client, error) {
	eth, err := ethclient.Dial(cfg.Ethereum.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ethereum client: %w", err)
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.Ethereum.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	auth, err := bind.NewKeyedTransactorWithChainID(key, big.NewInt(cfg.Ethereum.ChainID))
	if err != nil {
		return nil, fmt.Errorf("failed to build transactor: %w", err)
	}

	return &Client{
		eth:         eth,
		auth:        auth,
		burnAddress: common.HexToAddress(cfg.Ethereum.BurnAddress),
	}, nil
}

func (c *Client) Close() {
	c.eth.Close()
}

// Eth exposes the underlying client for collaborators such as the
// block-hash randomness source.
func (c *Client) Eth() *ethclient.Client {
	return c.eth
}

// ERC20 adapts an on-chain ERC20 contract to the token.Token interface.
// Transactions are waited for inclusion and checked for revert, so a
// failed transfer surfaces as an error to the engine.
type ERC20 struct {
	client   *Client
	address  common.Address
	contract *bind.BoundContract
}

func NewERC20(client *Client, address string) (*ERC20, error) {
	parsed, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse erc20 ABI: %w", err)
	}
	addr := common.HexToAddress(address)
	return &ERC20{
		client:   client,
		address:  addr,
		contract: bind.NewBoundContract(addr, parsed, client.eth, client.eth, client.eth),
	}, nil
}

func (t *ERC20) Address() string {
	return t.address.Hex()
}

func (t *ERC20) BalanceOf(ctx context.Context, owner string) (int64, error) {
	var out []interface{}
	err := t.contract.Call(&bind.CallOpts{Context: ctx}, &out, "balanceOf", common.HexToAddress(owner))
	if err != nil {
		return 0, fmt.Errorf("balanceOf call failed: %w", err)
	}
	return parseBalance(out)
}

// parseBalance narrows a balanceOf result to int64. A balance beyond
// int64 cannot be represented in the ledger and is rejected rather than
// silently truncated.
func parseBalance(out []interface{}) (int64, error) {
	if len(out) == 0 {
		return 0, fmt.Errorf("empty balanceOf result")
	}
	balance, ok := out[0].(*big.Int)
	if !ok {
		return 0, fmt.Errorf("unexpected balanceOf result type %T", out[0])
	}
	if !balance.IsInt64() {
		return 0, fmt.Errorf("balance %s overflows int64", balance)
	}
	return balance.Int64(), nil
}

func (t *ERC20) Approve(ctx context.Context, _ string, spender string, amount int64) error {
	return t.transact(ctx, "approve", common.HexToAddress(spender), big.NewInt(amount))
}

func (t *ERC20) TransferFrom(ctx context.Context, from, to string, amount int64) error {
	return t.transact(ctx, "transferFrom",
		common.HexToAddress(from), common.HexToAddress(to), big.NewInt(amount))
}

// Transfer moves custody funds. The from argument must match the signer
// behind the client; ERC20 transfers always spend the signer's balance.
func (t *ERC20) Transfer(ctx context.Context, _ string, to string, amount int64) error {
	return t.transact(ctx, "transfer", common.HexToAddress(to), big.NewInt(amount))
}

// Burn uses the token's native burn when it has one and otherwise falls
// back to a transfer to the irrecoverable dead address.
func (t *ERC20) Burn(ctx context.Context, _ string, amount int64) error {
	if err := t.transact(ctx, "burn", big.NewInt(amount)); err == nil {
		return nil
	}
	return t.transact(ctx, "transfer", t.burnAddrArg(), big.NewInt(amount))
}

func (t *ERC20) burnAddrArg() common.Address {
	return t.client.burnAddress
}

func (t *ERC20) transact(ctx context.Context, method string, args ...interface{}) error {
	opts := *t.client.auth
	opts.Context = ctx

	tx, err := t.contract.Transact(&opts, method, args...)
	if err != nil {
		return fmt.Errorf("%s transaction failed: %w", method, err)
	}
	receipt, err := bind.WaitMined(ctx, t.client.eth, tx)
	if err != nil {
		return fmt.Errorf("%s transaction not mined: %w", method, err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return fmt.Errorf("%s transaction %s reverted", method, tx.Hash().Hex())
	}
	return nil
}

// Resolver builds ERC20 adapters on demand for the recovery path.
type Resolver struct {
	client *Client
}

func NewResolver(client *Client) *Resolver {
	return &Resolver{client: client}
}

func (r *Resolver) Resolve(address string) (token.Token, error) {
	return NewERC20(r.client, address)
}
