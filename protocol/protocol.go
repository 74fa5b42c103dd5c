// Package protocol implements the lending-protocol adapters. Compound-style
// and Aave-style markets differ in oracle denomination, bonus sourcing, and
// decimals handling; both sit behind the Adapter interface so the engine
// never inspects protocol kinds at runtime.
package protocol

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/morpho-tools/liquidation-bot/units"
)

var (
	// ErrNoMarkets signals a deployment misconfiguration: the protocol
	// reports no created markets. Unlike per-user data errors it aborts the
	// run.
	ErrNoMarkets = errors.New("protocol reports no markets")

	// ErrUnknownUnderlying signals a market whose underlying asset cannot be
	// resolved. Callers treat it as bad data for the enclosing evaluation,
	// not a fatal condition.
	ErrUnknownUnderlying = errors.New("unknown underlying for market")
)

// MarketPosition is one user's balances on one market, normalized for
// liquidation math. Raw balances are in underlying units; USD values are
// 18-decimal fixed point.
type MarketPosition struct {
	Market                common.Address
	Underlying            common.Address
	LiquidationBonus      *big.Int // basis points
	TotalSupplyBalance    *big.Int
	TotalBorrowBalance    *big.Int
	Price                 units.Amount
	TotalSupplyBalanceUSD units.Amount
	TotalBorrowBalanceUSD units.Amount
}

// Adapter is the protocol capability consumed by the liquidation engine.
type Adapter interface {
	// Markets returns the full set of created markets. Implementations
	// memoize the result; the set is operationally static within a run.
	Markets(ctx context.Context) ([]common.Address, error)

	// UserHealthFactor returns the user's health factor in 18-decimal fixed
	// point. Below 1e18 the position is liquidatable.
	UserHealthFactor(ctx context.Context, user common.Address) (*big.Int, error)

	// UserBalances returns the user's total supply and borrow balances on
	// one market, in raw underlying units.
	UserBalances(ctx context.Context, market, user common.Address) (supply, borrow *big.Int, err error)

	// Underlying resolves the market's underlying asset.
	Underlying(ctx context.Context, market common.Address) (common.Address, error)

	// Normalize converts raw balances on one market into 18-decimal USD
	// equivalents using the protocol oracle, returning the oracle price
	// alongside.
	Normalize(ctx context.Context, market common.Address, balances []*big.Int) (units.Amount, []units.Amount, error)

	// LiquidationBonus returns the market's liquidation bonus in basis
	// points. Zero marks a non-collateral asset.
	LiquidationBonus(ctx context.Context, market common.Address) (*big.Int, error)

	// MaxLiquidationAmount sizes the liquidation for a debt/collateral pair
	// under the 50% close factor and the collateral's bonus, returning the
	// repay amount in debt underlying units and the expected reward.
	MaxLiquidationAmount(ctx context.Context, debt, collateral MarketPosition) (toLiquidate, rewardedUSD *big.Int, err error)
}

// closeFactor divides the debt balance; both protocols cap a single
// liquidation at half the borrowed balance.
var closeFactor = big.NewInt(2)

// maxLiquidation is the close-factor and bonus arithmetic shared by both
// adapters. toDebtUnits converts an 18-decimal USD capacity into raw debt
// units; reward recomputes the reward for the insufficiency branch.
func maxLiquidation(
	debt, collateral MarketPosition,
	toDebtUnits func(usd *big.Int) *big.Int,
	reward func(toLiquidate *big.Int) *big.Int,
) (*big.Int, *big.Int) {
	toLiquidate := new(big.Int).Quo(debt.TotalBorrowBalance, closeFactor)

	rewardedUSD := new(big.Int)
	if collateral.LiquidationBonus.Sign() > 0 {
		rewardedUSD = units.PercentDiv(collateral.TotalSupplyBalanceUSD.Value, collateral.LiquidationBonus)
	}

	// Half the debt's bonus-adjusted USD value against the collateral's USD
	// capacity decides whether the collateral can cover a half-debt
	// liquidation.
	halfDebtUSD := new(big.Int).Quo(debt.TotalBorrowBalanceUSD.Value, closeFactor)
	if units.PercentMul(halfDebtUSD, collateral.LiquidationBonus).Cmp(collateral.TotalSupplyBalanceUSD.Value) > 0 {
		toLiquidate = toDebtUnits(collateral.TotalSupplyBalanceUSD.Value)
		rewardedUSD = reward(toLiquidate)
	}

	return toLiquidate, rewardedUSD
}
