package protocol

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morpho-tools/liquidation-bot/tokens"
	"github.com/morpho-tools/liquidation-bot/units"
)

var (
	aDai  = common.HexToAddress("0x028171bca77440897b824ca71d1c56cac55b68a3")
	aUsdc = common.HexToAddress("0xbcca60bb61934080951369a648fb03df4f96263c")

	dai  = common.HexToAddress("0x6B175474E89094C44Da98b954EedeAC495271d0F")
	usdc = tokens.USDC
)

type mockAaveLens struct {
	healthFactors map[common.Address]*big.Int
}

func (m *mockAaveLens) UserHealthFactor(ctx context.Context, user common.Address) (*big.Int, error) {
	hf, ok := m.healthFactors[user]
	if !ok {
		return nil, errors.New("unknown user")
	}
	return hf, nil
}

func (m *mockAaveLens) SupplyBalance(ctx context.Context, market, user common.Address) (*big.Int, error) {
	return big.NewInt(0), nil
}

func (m *mockAaveLens) BorrowBalance(ctx context.Context, market, user common.Address) (*big.Int, error) {
	return big.NewInt(0), nil
}

type mockMarketLister struct {
	markets []common.Address
	calls   int
}

func (m *mockMarketLister) MarketsCreated(ctx context.Context) ([]common.Address, error) {
	m.calls++
	return m.markets, nil
}

type mockAaveOracle struct {
	prices map[common.Address]*big.Int
	calls  map[common.Address]int
}

func (m *mockAaveOracle) AssetPrice(ctx context.Context, asset common.Address) (*big.Int, error) {
	if m.calls == nil {
		m.calls = make(map[common.Address]int)
	}
	m.calls[asset]++
	price, ok := m.prices[asset]
	if !ok {
		return nil, errors.New("no price")
	}
	return price, nil
}

type mockReserves struct {
	bonuses map[common.Address]*big.Int
}

func (m *mockReserves) LiquidationBonus(ctx context.Context, underlying common.Address) (*big.Int, error) {
	bonus, ok := m.bonuses[underlying]
	if !ok {
		return nil, errors.New("no reserve data")
	}
	return bonus, nil
}

type mockTokenMeta struct {
	decimals    map[common.Address]uint8
	underlyings map[common.Address]common.Address
}

func (m *mockTokenMeta) Decimals(ctx context.Context, token common.Address) (uint8, error) {
	d, ok := m.decimals[token]
	if !ok {
		return 0, errors.New("no decimals")
	}
	return d, nil
}

func (m *mockTokenMeta) UnderlyingAsset(ctx context.Context, market common.Address) (common.Address, error) {
	u, ok := m.underlyings[market]
	if !ok {
		return common.Address{}, errors.New("no underlying")
	}
	return u, nil
}

func newAaveAdapter(oracle *mockAaveOracle, reserves *mockReserves, meta *mockTokenMeta) *AaveAdapter {
	if oracle == nil {
		oracle = &mockAaveOracle{}
	}
	if reserves == nil {
		reserves = &mockReserves{}
	}
	if meta == nil {
		meta = &mockTokenMeta{}
	}
	return NewAaveAdapter(&mockAaveLens{}, &mockMarketLister{markets: []common.Address{aDai, aUsdc}}, oracle, reserves, meta)
}

func TestAaveMarketsMemoized(t *testing.T) {
	lister := &mockMarketLister{markets: []common.Address{aDai}}
	adapter := NewAaveAdapter(&mockAaveLens{}, lister, &mockAaveOracle{}, &mockReserves{}, &mockTokenMeta{})

	markets, err := adapter.Markets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []common.Address{aDai}, markets)

	_, err = adapter.Markets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, lister.calls)
}

func TestAaveMarketsEmpty(t *testing.T) {
	adapter := NewAaveAdapter(&mockAaveLens{}, &mockMarketLister{}, &mockAaveOracle{}, &mockReserves{}, &mockTokenMeta{})

	_, err := adapter.Markets(context.Background())
	assert.ErrorIs(t, err, ErrNoMarkets)
}

func TestAaveUnderlyingFallsBackToAToken(t *testing.T) {
	newMarket := common.HexToAddress("0x1234")
	newUnderlying := common.HexToAddress("0x5678")
	adapter := newAaveAdapter(nil, nil, &mockTokenMeta{
		underlyings: map[common.Address]common.Address{newMarket: newUnderlying},
	})

	// table hit
	underlying, err := adapter.Underlying(context.Background(), aDai)
	require.NoError(t, err)
	assert.Equal(t, dai, underlying)

	// table miss resolves on chain
	underlying, err = adapter.Underlying(context.Background(), newMarket)
	require.NoError(t, err)
	assert.Equal(t, newUnderlying, underlying)
}

func TestAaveUnderlyingUnknown(t *testing.T) {
	adapter := newAaveAdapter(nil, nil, nil)

	_, err := adapter.Underlying(context.Background(), common.HexToAddress("0x99"))
	assert.ErrorIs(t, err, ErrUnknownUnderlying)
}

func TestAaveNormalize(t *testing.T) {
	// ETH at $2000: the USDC reference quote is 0.0005 ETH
	ethUsd := new(big.Int).Mul(big.NewInt(5), units.Pow10(14))
	oracle := &mockAaveOracle{prices: map[common.Address]*big.Int{
		dai:  ethUsd, // DAI worth $1
		usdc: ethUsd,
	}}
	adapter := newAaveAdapter(oracle, nil, nil)

	price, normalized, err := adapter.Normalize(context.Background(), aDai, []*big.Int{wad(1000)})
	require.NoError(t, err)

	assert.Equal(t, ethUsd, price.Value)
	assert.Equal(t, wad(1000), normalized[0].Value)
}

func TestAaveRefPriceMemoized(t *testing.T) {
	ethUsd := new(big.Int).Mul(big.NewInt(5), units.Pow10(14))
	oracle := &mockAaveOracle{prices: map[common.Address]*big.Int{
		dai:  ethUsd,
		usdc: ethUsd,
	}}
	adapter := newAaveAdapter(oracle, nil, nil)

	_, _, err := adapter.Normalize(context.Background(), aDai, []*big.Int{wad(1)})
	require.NoError(t, err)
	_, _, err = adapter.Normalize(context.Background(), aDai, []*big.Int{wad(1)})
	require.NoError(t, err)

	assert.Equal(t, 1, oracle.calls[usdc])
}

func TestAaveLiquidationBonusPerReserve(t *testing.T) {
	reserves := &mockReserves{bonuses: map[common.Address]*big.Int{
		dai: big.NewInt(10_500),
	}}
	adapter := newAaveAdapter(nil, reserves, nil)

	bonus, err := adapter.LiquidationBonus(context.Background(), aDai)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(10_500), bonus)
}

func TestAaveMaxLiquidationCoveredByCollateral(t *testing.T) {
	adapter := newAaveAdapter(nil, nil, nil)

	ethUsd := new(big.Int).Mul(big.NewInt(5), units.Pow10(14))
	debt := MarketPosition{
		Market:                aUsdc,
		Underlying:            usdc,
		TotalBorrowBalance:    big.NewInt(1_000_000_000), // 1000 USDC
		Price:                 units.NewWad(ethUsd),
		TotalBorrowBalanceUSD: units.NewWad(wad(1000)),
	}
	collateral := MarketPosition{
		Market:                aDai,
		Underlying:            dai,
		LiquidationBonus:      big.NewInt(10_500),
		Price:                 units.NewWad(ethUsd),
		TotalSupplyBalanceUSD: units.NewWad(wad(2000)),
	}

	toLiquidate, rewardedUSD, err := adapter.MaxLiquidationAmount(context.Background(), debt, collateral)
	require.NoError(t, err)

	// half the borrow, in raw USDC units
	assert.Equal(t, big.NewInt(500_000_000), toLiquidate)
	// 2000 USD discounted by the 5% bonus
	assert.Equal(t, units.PercentDiv(wad(2000), big.NewInt(10_500)), rewardedUSD)
}

func TestAaveMaxLiquidationCappedByCollateral(t *testing.T) {
	adapter := newAaveAdapter(nil, nil, nil)

	ethUsd := new(big.Int).Mul(big.NewInt(5), units.Pow10(14))
	debt := MarketPosition{
		Market:                aUsdc,
		Underlying:            usdc,
		TotalBorrowBalance:    big.NewInt(1_000_000_000),
		Price:                 units.NewWad(ethUsd),
		TotalBorrowBalanceUSD: units.NewWad(wad(1000)),
	}
	collateral := MarketPosition{
		Market:                aDai,
		Underlying:            dai,
		LiquidationBonus:      big.NewInt(10_500),
		Price:                 units.NewWad(ethUsd),
		TotalSupplyBalanceUSD: units.NewWad(wad(300)),
	}

	toLiquidate, _, err := adapter.MaxLiquidationAmount(context.Background(), debt, collateral)
	require.NoError(t, err)

	// 300 USD of USDC at 6 decimals against the ETH-denominated price
	expected := new(big.Int).Mul(wad(300), units.Pow10(6))
	expected.Quo(expected, ethUsd)
	assert.Equal(t, expected, toLiquidate)
}
