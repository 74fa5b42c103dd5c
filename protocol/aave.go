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

// AaveLensReader is the subset of the Morpho-Aave lens the adapter uses.
type AaveLensReader interface {
	UserHealthFactor(ctx context.Context, user common.Address) (*big.Int, error)
	SupplyBalance(ctx context.Context, market, user common.Address) (*big.Int, error)
	BorrowBalance(ctx context.Context, market, user common.Address) (*big.Int, error)
}

// AaveMarketLister enumerates created markets on the Morpho-Aave main
// contract.
type AaveMarketLister interface {
	MarketsCreated(ctx context.Context) ([]common.Address, error)
}

// AaveOracleReader reads ETH-denominated wad prices.
type AaveOracleReader interface {
	AssetPrice(ctx context.Context, asset common.Address) (*big.Int, error)
}

// ReserveReader reads per-reserve configuration.
type ReserveReader interface {
	LiquidationBonus(ctx context.Context, underlying common.Address) (*big.Int, error)
}

// TokenReader resolves token metadata not covered by the static tables.
type TokenReader interface {
	Decimals(ctx context.Context, token common.Address) (uint8, error)
	UnderlyingAsset(ctx context.Context, market common.Address) (common.Address, error)
}

// AaveAdapter adapts Morpho-Aave markets to the engine.
type AaveAdapter struct {
	lens     AaveLensReader
	morpho   AaveMarketLister
	oracle   AaveOracleReader
	reserves ReserveReader
	meta     TokenReader

	mu          sync.Mutex
	markets     []common.Address
	decimals    map[common.Address]uint8
	ethUsdPrice *big.Int
}

func NewAaveAdapter(lens AaveLensReader, morpho AaveMarketLister, oracle AaveOracleReader, reserves ReserveReader, meta TokenReader) *AaveAdapter {
	return &AaveAdapter{
		lens:     lens,
		morpho:   morpho,
		oracle:   oracle,
		reserves: reserves,
		meta:     meta,
		decimals: make(map[common.Address]uint8),
	}
}

func (a *AaveAdapter) Markets(ctx context.Context) ([]common.Address, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.markets) > 0 {
		return a.markets, nil
	}
	markets, err := a.morpho.MarketsCreated(ctx)
	if err != nil {
		return nil, err
	}
	if len(markets) == 0 {
		return nil, ErrNoMarkets
	}
	a.markets = markets
	return markets, nil
}

func (a *AaveAdapter) UserHealthFactor(ctx context.Context, user common.Address) (*big.Int, error) {
	return a.lens.UserHealthFactor(ctx, user)
}

func (a *AaveAdapter) UserBalances(ctx context.Context, market, user common.Address) (*big.Int, *big.Int, error) {
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

// Underlying prefers the static table and falls back to the aToken's
// UNDERLYING_ASSET_ADDRESS for markets created after the table was written.
func (a *AaveAdapter) Underlying(ctx context.Context, market common.Address) (common.Address, error) {
	if underlying, ok := tokens.Underlying(market); ok {
		return underlying, nil
	}
	underlying, err := a.meta.UnderlyingAsset(ctx, market)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %s: %v", ErrUnknownUnderlying, market, err)
	}
	return underlying, nil
}

// Normalize converts raw balances to 18-decimal USD. The Aave oracle quotes
// in ETH, so balances are scaled by the asset price and divided by the
// ETH/USD reference price.
func (a *AaveAdapter) Normalize(ctx context.Context, market common.Address, balances []*big.Int) (units.Amount, []units.Amount, error) {
	underlying, err := a.Underlying(ctx, market)
	if err != nil {
		return units.Amount{}, nil, err
	}
	price, err := a.oracle.AssetPrice(ctx, underlying)
	if err != nil {
		return units.Amount{}, nil, err
	}
	decimals, err := a.underlyingDecimals(ctx, underlying)
	if err != nil {
		return units.Amount{}, nil, err
	}
	ethUsd, err := a.refPrice(ctx)
	if err != nil {
		return units.Amount{}, nil, err
	}

	scale := units.Pow10(uint(decimals))
	normalized := make([]units.Amount, len(balances))
	for i, balance := range balances {
		value := new(big.Int).Mul(balance, price)
		value.Quo(value, scale)
		normalized[i] = units.NewWad(units.WadDiv(value, ethUsd))
	}
	return units.New(price, units.WadScale), normalized, nil
}

func (a *AaveAdapter) LiquidationBonus(ctx context.Context, market common.Address) (*big.Int, error) {
	underlying, err := a.Underlying(ctx, market)
	if err != nil {
		return nil, err
	}
	return a.reserves.LiquidationBonus(ctx, underlying)
}

func (a *AaveAdapter) MaxLiquidationAmount(ctx context.Context, debt, collateral MarketPosition) (*big.Int, *big.Int, error) {
	debtDecimals, err := a.underlyingDecimals(ctx, debt.Underlying)
	if err != nil {
		return nil, nil, err
	}
	collateralDecimals, err := a.underlyingDecimals(ctx, collateral.Underlying)
	if err != nil {
		return nil, nil, err
	}

	toLiquidate, rewardedUSD := maxLiquidation(debt, collateral,
		func(usd *big.Int) *big.Int {
			value := new(big.Int).Mul(usd, units.Pow10(uint(debtDecimals)))
			return value.Quo(value, debt.Price.Value)
		},
		func(toLiquidate *big.Int) *big.Int {
			value := new(big.Int).Mul(toLiquidate, debt.Price.Value)
			value.Mul(value, units.Pow10(uint(collateralDecimals)))
			value.Quo(value, collateral.Price.Value)
			return value.Quo(value, units.Pow10(uint(debtDecimals)))
		},
	)
	return toLiquidate, rewardedUSD, nil
}

// refPrice memoizes the oracle's USDC quote used as the ETH/USD reference.
func (a *AaveAdapter) refPrice(ctx context.Context) (*big.Int, error) {
	a.mu.Lock()
	if a.ethUsdPrice != nil {
		defer a.mu.Unlock()
		return a.ethUsdPrice, nil
	}
	a.mu.Unlock()

	price, err := a.oracle.AssetPrice(ctx, tokens.USDC)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ethUsdPrice == nil {
		a.ethUsdPrice = price
	}
	return a.ethUsdPrice, nil
}

func (a *AaveAdapter) underlyingDecimals(ctx context.Context, underlying common.Address) (uint8, error) {
	if decimals, ok := tokens.Decimals(underlying); ok {
		return decimals, nil
	}
	a.mu.Lock()
	if decimals, ok := a.decimals[underlying]; ok {
		a.mu.Unlock()
		return decimals, nil
	}
	a.mu.Unlock()

	decimals, err := a.meta.Decimals(ctx, underlying)
	if err != nil {
		return 0, err
	}
	a.mu.Lock()
	a.decimals[underlying] = decimals
	a.mu.Unlock()
	return decimals, nil
}
