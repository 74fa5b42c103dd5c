package contracts

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ERC20 performs token calls against any ERC-20 address through one shared
// ABI.
type ERC20 struct {
	parsed  abi.ABI
	backend Backend
	auth    *bind.TransactOpts
}

// NewERC20 returns an ERC-20 caller. auth may be nil for read-only use.
func NewERC20(backend Backend, auth *bind.TransactOpts) *ERC20 {
	return &ERC20{parsed: mustParseABI(erc20ABI), backend: backend, auth: auth}
}

func (e *ERC20) Decimals(ctx context.Context, token common.Address) (uint8, error) {
	var out []interface{}
	err := bound(token, e.parsed, e.backend).Call(&bind.CallOpts{Context: ctx}, &out, "decimals")
	if err != nil {
		return 0, err
	}
	return *abi.ConvertType(out[0], new(uint8)).(*uint8), nil
}

func (e *ERC20) BalanceOf(ctx context.Context, token, owner common.Address) (*big.Int, error) {
	var out []interface{}
	err := bound(token, e.parsed, e.backend).Call(&bind.CallOpts{Context: ctx}, &out, "balanceOf", owner)
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (e *ERC20) Allowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error) {
	var out []interface{}
	err := bound(token, e.parsed, e.backend).Call(&bind.CallOpts{Context: ctx}, &out, "allowance", owner, spender)
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (e *ERC20) Approve(ctx context.Context, token, spender common.Address, amount *big.Int) (*types.Transaction, error) {
	opts := *e.auth
	opts.Context = ctx
	return bound(token, e.parsed, e.backend).Transact(&opts, "approve", spender, amount)
}

// AToken reads aToken-specific metadata.
type AToken struct {
	parsed  abi.ABI
	backend Backend
}

func NewAToken(backend Backend) *AToken {
	return &AToken{parsed: mustParseABI(aTokenABI), backend: backend}
}

// UnderlyingAsset returns the underlying ERC-20 of an aToken market.
func (a *AToken) UnderlyingAsset(ctx context.Context, market common.Address) (common.Address, error) {
	var out []interface{}
	err := bound(market, a.parsed, a.backend).Call(&bind.CallOpts{Context: ctx}, &out, "UNDERLYING_ASSET_ADDRESS")
	if err != nil {
		return common.Address{}, err
	}
	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}
