package contracts

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// CompoundLens reads user positions from the Morpho-Compound lens.
type CompoundLens struct {
	contract *bind.BoundContract
}

func NewCompoundLens(address common.Address, backend Backend) *CompoundLens {
	return &CompoundLens{contract: bound(address, mustParseABI(compoundLensABI), backend)}
}

func (l *CompoundLens) AllMarkets(ctx context.Context) ([]common.Address, error) {
	var out []interface{}
	err := l.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getAllMarkets")
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new([]common.Address)).(*[]common.Address), nil
}

// UserHealthFactor returns the user's health factor in 18-decimal fixed
// point. updatedMarkets follows the lens signature and is normally empty.
func (l *CompoundLens) UserHealthFactor(ctx context.Context, user common.Address, updatedMarkets []common.Address) (*big.Int, error) {
	if updatedMarkets == nil {
		updatedMarkets = []common.Address{}
	}
	var out []interface{}
	err := l.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getUserHealthFactor", user, updatedMarkets)
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (l *CompoundLens) SupplyBalance(ctx context.Context, market, user common.Address) (*big.Int, error) {
	return lensBalance(ctx, l.contract, "getCurrentSupplyBalanceInOf", market, user)
}

func (l *CompoundLens) BorrowBalance(ctx context.Context, market, user common.Address) (*big.Int, error) {
	return lensBalance(ctx, l.contract, "getCurrentBorrowBalanceInOf", market, user)
}

// AaveLens reads user positions from the Morpho-Aave lens.
type AaveLens struct {
	contract *bind.BoundContract
}

func NewAaveLens(address common.Address, backend Backend) *AaveLens {
	return &AaveLens{contract: bound(address, mustParseABI(aaveLensABI), backend)}
}

func (l *AaveLens) UserHealthFactor(ctx context.Context, user common.Address) (*big.Int, error) {
	var out []interface{}
	err := l.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getUserHealthFactor", user)
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (l *AaveLens) SupplyBalance(ctx context.Context, market, user common.Address) (*big.Int, error) {
	return lensBalance(ctx, l.contract, "getCurrentSupplyBalanceInOf", market, user)
}

func (l *AaveLens) BorrowBalance(ctx context.Context, market, user common.Address) (*big.Int, error) {
	return lensBalance(ctx, l.contract, "getCurrentBorrowBalanceInOf", market, user)
}

// lensBalance unpacks (balanceOnPool, balanceInP2P, totalBalance) and keeps
// only the total.
func lensBalance(ctx context.Context, contract *bind.BoundContract, method string, market, user common.Address) (*big.Int, error) {
	var out []interface{}
	err := contract.Call(&bind.CallOpts{Context: ctx}, &out, method, market, user)
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[2], new(*big.Int)).(**big.Int), nil
}
