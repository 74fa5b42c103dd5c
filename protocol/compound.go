package protocol

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/morpho-tools/liquidation-bot/tokens"
	"github.com/morpho-tools/liquidation-bot/units"
)

// CompoundLiquidationBonus is the protocol-wide bonus on Compound: 10700
// basis points, a 7% premium on seized collateral.
var CompoundLiquidationBonus = big.NewInt(10_700)

// CompoundLensReader is the subset of the Morpho-Compound lens the adapter
// uses.
type CompoundLensReader interface {
	AllMarkets(ctx context.Context) ([]common.Address, error)
	UserHealthFactor(ctx context.Context, user common.Address, updatedMarkets []common.Address) (*big.Int, error)
	SupplyBalance(ctx context.Context, market, user common.Address) (*big.Int, error)
	BorrowBalance(ctx context.Context, market, user common.Address) (*big.Int, error)
}

// CompoundOracleReader reads cToken prices scaled to 36 minus the
// underlying's decimals.
type CompoundOracleReader interface {
	UnderlyingPrice(ctx context.Context, market common.Address) (*big.Int, error)
}

// CompoundAdapter adapts Morpho-Compound markets to the engine.
type CompoundAdapter struct {
	lens   CompoundLensReader
	oracle CompoundOracleReader

	mu      sync.Mutex
	markets []common.Address
}

func NewCompoundAdapter(lens CompoundLensReader, oracle CompoundOracleReader) *CompoundAdapter {
	return &CompoundAdapter{lens: lens, oracle: oracle}
}

func (a *CompoundAdapter) Markets(ctx context.Context) ([]common.Address, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.markets) > 0 {
		return a.markets, nil
	}
	markets, err := a.lens.AllMarkets(ctx)
	if err != nil {
		return nil, err
	}
	if len(markets) == 0 {
		return nil, ErrNoMarkets
	}
	a.markets = markets
	return markets, nil
}

func (a *CompoundAdapter) UserHealthFactor(ctx context.Context, user common.Address) (*big.Int, error) {
	return a.lens.UserHealthFactor(ctx, user, nil)
}

func (a *CompoundAdapter) UserBalances(ctx context.Context, market, user common.Address) (*big.Int, *big.Int, error) {
	supply, err := a.lens.SupplyBalance(ctx, market, user)
	if err != nil {
		return nil, nil, err
	}
	borrow, err := a.lens.BorrowBalance(ctx, market, user)
	if err != nil {
		return nil, nil, err
	}
	return supply, borrow, nil
}

func (a *CompoundAdapter) Underlying(_ context.Context, market common.Address) (common.Address, error) {
	underlying, ok := tokens.Underlying(market)
	if !ok {
		return common.Address{}, fmt.Errorf("%w: %s", ErrUnknownUnderlying, market)
	}
	return underlying, nil
}

// Normalize converts raw balances to 18-decimal USD. The Compound oracle
// price carries the underlying's decimals in its own scale, so a single
// wad-mul lands on 18 decimals regardless of the token.
func (a *CompoundAdapter) Normalize(ctx context.Context, market common.Address, balances []*big.Int) (units.Amount, []units.Amount, error) {
	price, err := a.oracle.UnderlyingPrice(ctx, market)
	if err != nil {
		return units.Amount{}, nil, err
	}
	priceScale := uint8(36 - 18)
	if underlying, ok := tokens.Underlying(market); ok {
		if decimals, ok := tokens.Decimals(underlying); ok {
			priceScale = 36 - decimals
		}
	}
	normalized := make([]units.Amount, len(balances))
	for i, balance := range balances {
		normalized[i] = units.NewWad(units.WadMul(balance, price))
	}
	return units.New(price, priceScale), normalized, nil
}

func (a *CompoundAdapter) LiquidationBonus(context.Context, common.Address) (*big.Int, error) {
	return CompoundLiquidationBonus, nil
}

func (a *CompoundAdapter) MaxLiquidationAmount(_ context.Context, debt, collateral MarketPosition) (*big.Int, *big.Int, error) {
	toLiquidate, rewardedUSD := maxLiquidation(debt, collateral,
		func(usd *big.Int) *big.Int {
			// Debt units whose value matches the collateral's raw USD
			// capacity; the Compound price scale absorbs the decimals.
			return units.WadDiv(usd, debt.Price.Value)
		},
		func(toLiquidate *big.Int) *big.Int {
			value := new(big.Int).Mul(toLiquidate, debt.Price.Value)
			value.Mul(value, units.Pow10(18))
			return value.Quo(value, collateral.Price.Value)
		},
	)
	return toLiquidate, rewardedUSD, nil
}
