package contracts

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// eoaLiquidationGasLimit matches the gas ceiling used for direct pool
// liquidations.
const eoaLiquidationGasLimit = 3_000_000

// Morpho wraps the Morpho main contract for either protocol flavor.
type Morpho struct {
	address  common.Address
	contract *bind.BoundContract
	auth     *bind.TransactOpts
}

// NewMorphoCompound binds the Morpho-Compound main contract.
func NewMorphoCompound(address common.Address, backend Backend, auth *bind.TransactOpts) *Morpho {
	return &Morpho{address: address, contract: bound(address, mustParseABI(morphoCompoundABI), backend), auth: auth}
}

// NewMorphoAave binds the Morpho-Aave main contract.
func NewMorphoAave(address common.Address, backend Backend, auth *bind.TransactOpts) *Morpho {
	return &Morpho{address: address, contract: bound(address, mustParseABI(morphoAaveABI), backend), auth: auth}
}

func (m *Morpho) Address() common.Address {
	return m.address
}

// AllMarkets enumerates created markets on the Compound flavor.
func (m *Morpho) AllMarkets(ctx context.Context) ([]common.Address, error) {
	return m.markets(ctx, "getAllMarkets")
}

// MarketsCreated enumerates created markets on the Aave flavor.
func (m *Morpho) MarketsCreated(ctx context.Context) ([]common.Address, error) {
	return m.markets(ctx, "getMarketsCreated")
}

func (m *Morpho) markets(ctx context.Context, method string) ([]common.Address, error) {
	var out []interface{}
	err := m.contract.Call(&bind.CallOpts{Context: ctx}, &out, method)
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new([]common.Address)).(*[]common.Address), nil
}

// Comptroller returns the Compound comptroller address (Compound flavor
// only).
func (m *Morpho) Comptroller(ctx context.Context) (common.Address, error) {
	return m.addressCall(ctx, "comptroller")
}

// Pool returns the Aave lending pool address (Aave flavor only).
func (m *Morpho) Pool(ctx context.Context) (common.Address, error) {
	return m.addressCall(ctx, "pool")
}

func (m *Morpho) addressCall(ctx context.Context, method string) (common.Address, error) {
	var out []interface{}
	err := m.contract.Call(&bind.CallOpts{Context: ctx}, &out, method)
	if err != nil {
		return common.Address{}, err
	}
	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}

// Liquidate submits a direct pool liquidation funded by the signer.
func (m *Morpho) Liquidate(ctx context.Context, poolTokenBorrowed, poolTokenCollateral, borrower common.Address, amount *big.Int) (*types.Transaction, error) {
	opts := *m.auth
	opts.Context = ctx
	opts.GasLimit = eoaLiquidationGasLimit
	return m.contract.Transact(&opts, "liquidate", poolTokenBorrowed, poolTokenCollateral, borrower, amount)
}
