package protocol

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morpho-tools/liquidation-bot/units"
)

var (
	cDai  = common.HexToAddress("0x5d3a536E4D6DbD6114cc1Ead35777bAB948E3643")
	cUsdc = common.HexToAddress("0x39aa39c021dfbae8fac545936693ac917d5e7563")
)

type mockCompoundLens struct {
	markets        []common.Address
	marketsErr     error
	marketsCalls   int
	healthFactors  map[common.Address]*big.Int
	supplyBalances map[common.Address]*big.Int
	borrowBalances map[common.Address]*big.Int
}

func (m *mockCompoundLens) AllMarkets(ctx context.Context) ([]common.Address, error) {
	m.marketsCalls++
	return m.markets, m.marketsErr
}

func (m *mockCompoundLens) UserHealthFactor(ctx context.Context, user common.Address, updatedMarkets []common.Address) (*big.Int, error) {
	hf, ok := m.healthFactors[user]
	if !ok {
		return nil, errors.New("unknown user")
	}
	return hf, nil
}

func (m *mockCompoundLens) SupplyBalance(ctx context.Context, market, user common.Address) (*big.Int, error) {
	return m.supplyBalances[market], nil
}

func (m *mockCompoundLens) BorrowBalance(ctx context.Context, market, user common.Address) (*big.Int, error) {
	return m.borrowBalances[market], nil
}

type mockCompoundOracle struct {
	prices map[common.Address]*big.Int
}

func (m *mockCompoundOracle) UnderlyingPrice(ctx context.Context, market common.Address) (*big.Int, error) {
	price, ok := m.prices[market]
	if !ok {
		return nil, errors.New("no price")
	}
	return price, nil
}

func wad(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), units.Pow10(18))
}

func TestCompoundMarketsMemoized(t *testing.T) {
	lens := &mockCompoundLens{markets: []common.Address{cDai, cUsdc}}
	adapter := NewCompoundAdapter(lens, &mockCompoundOracle{})

	markets, err := adapter.Markets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []common.Address{cDai, cUsdc}, markets)

	_, err = adapter.Markets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, lens.marketsCalls)
}

func TestCompoundMarketsEmpty(t *testing.T) {
	adapter := NewCompoundAdapter(&mockCompoundLens{}, &mockCompoundOracle{})

	_, err := adapter.Markets(context.Background())
	assert.ErrorIs(t, err, ErrNoMarkets)
}

func TestCompoundUnderlyingUnknown(t *testing.T) {
	adapter := NewCompoundAdapter(&mockCompoundLens{}, &mockCompoundOracle{})

	_, err := adapter.Underlying(context.Background(), common.HexToAddress("0x01"))
	assert.ErrorIs(t, err, ErrUnknownUnderlying)
}

func TestCompoundNormalize(t *testing.T) {
	// the oracle quotes USDC at 36-6=30 decimals, so one dollar is 1e30
	oracle := &mockCompoundOracle{prices: map[common.Address]*big.Int{
		cUsdc: units.Pow10(30),
	}}
	adapter := NewCompoundAdapter(&mockCompoundLens{}, oracle)

	price, normalized, err := adapter.Normalize(context.Background(), cUsdc, []*big.Int{
		big.NewInt(1_000_000_000), // 1000 USDC
		big.NewInt(500_000_000),   // 500 USDC
	})
	require.NoError(t, err)

	assert.Equal(t, uint8(30), price.Scale)
	assert.Equal(t, wad(1000), normalized[0].Value)
	assert.Equal(t, wad(500), normalized[1].Value)
	assert.Equal(t, uint8(units.WadScale), normalized[0].Scale)
}

func TestCompoundLiquidationBonusFixed(t *testing.T) {
	adapter := NewCompoundAdapter(&mockCompoundLens{}, &mockCompoundOracle{})

	bonus, err := adapter.LiquidationBonus(context.Background(), cDai)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(10_700), bonus)
}

func TestCompoundMaxLiquidationCoveredByCollateral(t *testing.T) {
	adapter := NewCompoundAdapter(&mockCompoundLens{}, &mockCompoundOracle{})

	debt := MarketPosition{
		Market:                cDai,
		TotalBorrowBalance:    wad(1000),
		Price:                 units.New(units.Pow10(18), 18),
		TotalBorrowBalanceUSD: units.NewWad(wad(1000)),
	}
	collateral := MarketPosition{
		Market:                cUsdc,
		LiquidationBonus:      big.NewInt(10_700),
		Price:                 units.New(units.Pow10(30), 30),
		TotalSupplyBalanceUSD: units.NewWad(wad(2000)),
	}

	toLiquidate, rewardedUSD, err := adapter.MaxLiquidationAmount(context.Background(), debt, collateral)
	require.NoError(t, err)

	// close factor halves the borrow
	assert.Equal(t, wad(500), toLiquidate)
	// 2000 USD of collateral discounted by the 7% bonus
	assert.Equal(t, "1869158878504672897196", rewardedUSD.String())
}

func TestCompoundMaxLiquidationCappedByCollateral(t *testing.T) {
	adapter := NewCompoundAdapter(&mockCompoundLens{}, &mockCompoundOracle{})

	debt := MarketPosition{
		Market:                cDai,
		TotalBorrowBalance:    wad(1000),
		Price:                 units.New(units.Pow10(18), 18),
		TotalBorrowBalanceUSD: units.NewWad(wad(1000)),
	}
	collateral := MarketPosition{
		Market:                cDai,
		LiquidationBonus:      big.NewInt(10_700),
		Price:                 units.New(units.Pow10(18), 18),
		TotalSupplyBalanceUSD: units.NewWad(wad(300)),
	}

	toLiquidate, _, err := adapter.MaxLiquidationAmount(context.Background(), debt, collateral)
	require.NoError(t, err)

	// half the debt (535 USD with bonus) exceeds the 300 USD of collateral,
	// so the repay amount falls back to the collateral's capacity
	assert.Equal(t, wad(300), toLiquidate)

	// the repaid value never exceeds half the debt
	halfDebt := new(big.Int).Quo(debt.TotalBorrowBalance, big.NewInt(2))
	assert.True(t, toLiquidate.Cmp(halfDebt) <= 0)

	// and matches the collateral's raw USD capacity exactly
	repaidUSD := units.WadMul(toLiquidate, debt.Price.Value)
	assert.Equal(t, collateral.TotalSupplyBalanceUSD.Value, repaidUSD)
}

func TestCompoundMaxLiquidationZeroBonusCollateral(t *testing.T) {
	adapter := NewCompoundAdapter(&mockCompoundLens{}, &mockCompoundOracle{})

	debt := MarketPosition{
		Market:                cDai,
		TotalBorrowBalance:    wad(1000),
		Price:                 units.New(units.Pow10(18), 18),
		TotalBorrowBalanceUSD: units.NewWad(wad(1000)),
	}
	collateral := MarketPosition{
		Market:                cUsdc,
		LiquidationBonus:      big.NewInt(0),
		Price:                 units.New(units.Pow10(30), 30),
		TotalSupplyBalanceUSD: units.NewWad(wad(2000)),
	}

	toLiquidate, rewardedUSD, err := adapter.MaxLiquidationAmount(context.Background(), debt, collateral)
	require.NoError(t, err)
	assert.Equal(t, wad(500), toLiquidate)
	assert.Equal(t, 0, rewardedUSD.Sign())
}
