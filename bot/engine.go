// Package bot contains the liquidation engine: the scan-evaluate-act cycle
// that finds undercollateralized borrowers, sizes the liquidation, and
// dispatches execution.
package bot

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"

	"github.com/morpho-tools/liquidation-bot/alert"
	"github.com/morpho-tools/liquidation-bot/fetcher"
	"github.com/morpho-tools/liquidation-bot/handler"
	"github.com/morpho-tools/liquidation-bot/logging"
	"github.com/morpho-tools/liquidation-bot/protocol"
	"github.com/morpho-tools/liquidation-bot/swap"
	"github.com/morpho-tools/liquidation-bot/units"
)

var (
	// HFThreshold marks liquidation eligibility: health factors strictly
	// below 1e18 are liquidatable.
	HFThreshold = units.Pow10(18)

	// nearMissThreshold triggers a warning for positions hovering just
	// above the liquidation line.
	nearMissThreshold = new(big.Int).Mul(big.NewInt(10_001), units.Pow10(14))

	// profitBonusNumerator approximates the liquidation reward as a flat 7%
	// of the repaid value. The exact per-market bonus computed during
	// sizing is deliberately not reused here; this is a conservative
	// pre-filter, not the expected profit.
	profitBonusNumerator   = big.NewInt(7)
	profitBonusDenominator = big.NewInt(100)
)

// ErrNoEligibleCollateral reports a liquidatable user none of whose supplied
// markets carries a liquidation bonus, so there is nothing to seize.
var ErrNoEligibleCollateral = errors.New("no eligible collateral market")

// UserPosition is a borrower and its health factor in 18-decimal fixed
// point.
type UserPosition struct {
	Address      common.Address
	HealthFactor *big.Int
}

// LiquidationPlan is one sized liquidation: repay toLiquidate of the debt
// market's underlying and seize from the collateral market.
type LiquidationPlan struct {
	UserAddress      common.Address
	DebtMarket       protocol.MarketPosition
	CollateralMarket protocol.MarketPosition
	ToLiquidate      *big.Int
	RewardedUSD      *big.Int
}

// Settings tunes one engine instance.
type Settings struct {
	// ProfitableThresholdUSD is the minimum estimated reward, in 18-decimal
	// USD, for a plan to be executed.
	ProfitableThresholdUSD *big.Int
}

// Engine drives the liquidation cycle against one protocol.
type Engine struct {
	logger   logging.Logger
	fetch    fetcher.Fetcher
	adapter  protocol.Adapter
	handler  handler.Handler
	pools    *swap.PoolFetcher
	alerter  alert.Alerter
	settings Settings
}

// NewEngine builds an engine. pools and alerter may be nil; pool diagnostics
// and notifications are then skipped.
func NewEngine(logger logging.Logger, fetch fetcher.Fetcher, adapter protocol.Adapter, h handler.Handler, pools *swap.PoolFetcher, alerter alert.Alerter, settings Settings) *Engine {
	if settings.ProfitableThresholdUSD == nil {
		settings.ProfitableThresholdUSD = units.Pow10(18) // 1 USD
	}
	return &Engine{
		logger:   logger,
		fetch:    fetch,
		adapter:  adapter,
		handler:  h,
		pools:    pools,
		alerter:  alerter,
		settings: settings,
	}
}

// ComputeLiquidableUsers pages through the subgraph and returns every
// borrower whose health factor is strictly below one. Health factors within
// one page are queried concurrently; pages are fetched in order so the
// cursor stays stable. Result order is fetch order.
func (e *Engine) ComputeLiquidableUsers(ctx context.Context) ([]UserPosition, error) {
	var liquidatable []UserPosition
	lastID := ""
	for {
		page, err := e.fetch.FetchUsers(ctx, lastID)
		if err != nil {
			return nil, fmt.Errorf("fetch users: %w", err)
		}
		e.logger.Log(fmt.Sprintf("%d users fetched", len(page.Users)))
		usersScanned.Add(float64(len(page.Users)))

		positions := make([]UserPosition, len(page.Users))
		group, groupCtx := errgroup.WithContext(ctx)
		for i, user := range page.Users {
			i, user := i, user
			group.Go(func() error {
				hf, err := e.adapter.UserHealthFactor(groupCtx, user)
				if err != nil {
					return fmt.Errorf("health factor for %s: %w", user, err)
				}
				positions[i] = UserPosition{Address: user, HealthFactor: hf}
				return nil
			})
		}
		if err := group.Wait(); err != nil {
			return nil, err
		}

		for _, position := range positions {
			if position.HealthFactor.Cmp(nearMissThreshold) < 0 {
				e.logger.Log(fmt.Sprintf("user %s has a low HF (%s)", position.Address, position.HealthFactor))
			}
			if position.HealthFactor.Cmp(HFThreshold) < 0 {
				liquidatable = append(liquidatable, position)
			}
		}

		if !page.HasMore {
			break
		}
		lastID = page.LastID
	}
	liquidatableUsers.Add(float64(len(liquidatable)))
	return liquidatable, nil
}

// UserLiquidationParams fetches the user's balances on every market,
// normalizes them to USD, and sizes a liquidation against the best
// debt/collateral pair. Market fetches run concurrently; any single market
// failure aborts this user's evaluation so no partial plan escapes.
func (e *Engine) UserLiquidationParams(ctx context.Context, user common.Address) (LiquidationPlan, error) {
	markets, err := e.adapter.Markets(ctx)
	if err != nil {
		return LiquidationPlan{}, err
	}

	positions := make([]protocol.MarketPosition, len(markets))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, market := range markets {
		i, market := i, market
		group.Go(func() error {
			supply, borrow, err := e.adapter.UserBalances(groupCtx, market, user)
			if err != nil {
				return fmt.Errorf("balances on %s: %w", market, err)
			}
			price, normalized, err := e.adapter.Normalize(groupCtx, market, []*big.Int{supply, borrow})
			if err != nil {
				return fmt.Errorf("normalize %s: %w", market, err)
			}
			bonus, err := e.adapter.LiquidationBonus(groupCtx, market)
			if err != nil {
				return fmt.Errorf("liquidation bonus for %s: %w", market, err)
			}
			underlying, err := e.adapter.Underlying(groupCtx, market)
			if err != nil {
				return err
			}
			positions[i] = protocol.MarketPosition{
				Market:                market,
				Underlying:            underlying,
				LiquidationBonus:      bonus,
				TotalSupplyBalance:    supply,
				TotalBorrowBalance:    borrow,
				Price:                 price,
				TotalSupplyBalanceUSD: normalized[0],
				TotalBorrowBalanceUSD: normalized[1],
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return LiquidationPlan{}, err
	}

	debtMarket := positions[0]
	for _, position := range positions[1:] {
		if position.TotalBorrowBalanceUSD.Cmp(debtMarket.TotalBorrowBalanceUSD) > 0 {
			debtMarket = position
		}
	}

	var collateralMarket *protocol.MarketPosition
	for i, position := range positions {
		if position.LiquidationBonus.Sign() == 0 {
			continue
		}
		if collateralMarket == nil || position.TotalSupplyBalanceUSD.Cmp(collateralMarket.TotalSupplyBalanceUSD) > 0 {
			collateralMarket = &positions[i]
		}
	}
	if collateralMarket == nil {
		return LiquidationPlan{}, fmt.Errorf("%w: user %s", ErrNoEligibleCollateral, user)
	}

	e.logger.Log("debt market")
	e.logger.Table(debtMarket)
	e.logger.Log("collateral market")
	e.logger.Table(*collateralMarket)

	toLiquidate, rewardedUSD, err := e.adapter.MaxLiquidationAmount(ctx, debtMarket, *collateralMarket)
	if err != nil {
		return LiquidationPlan{}, err
	}

	return LiquidationPlan{
		UserAddress:      user,
		DebtMarket:       debtMarket,
		CollateralMarket: *collateralMarket,
		ToLiquidate:      toLiquidate,
		RewardedUSD:      rewardedUSD,
	}, nil
}

// Path returns the swap route converting the debt underlying into the
// collateral underlying. Identical markets need no swap.
func (e *Engine) Path(ctx context.Context, borrowMarket, collateralMarket common.Address) ([]byte, error) {
	if borrowMarket == collateralMarket {
		return nil, nil
	}
	borrowUnderlying, err := e.adapter.Underlying(ctx, borrowMarket)
	if err != nil {
		return nil, err
	}
	collateralUnderlying, err := e.adapter.Underlying(ctx, collateralMarket)
	if err != nil {
		return nil, err
	}
	return swap.PathFor(borrowUnderlying, collateralUnderlying), nil
}

// IsProfitable estimates the reward as a flat 7% of the repaid USD value
// and compares it against the configured threshold. Monotonic in both
// arguments; strictly-greater comparison.
func (e *Engine) IsProfitable(toLiquidate *big.Int, price units.Amount) bool {
	reward := units.WadMul(toLiquidate, price.Value)
	reward.Mul(reward, profitBonusNumerator)
	reward.Quo(reward, profitBonusDenominator)
	return reward.Cmp(e.settings.ProfitableThresholdUSD) > 0
}

// CheckPoolLiquidity logs the Uniswap pools available for unwinding the
// pair. Best effort: failures are logged and ignored.
func (e *Engine) CheckPoolLiquidity(ctx context.Context, borrowMarket, collateralMarket common.Address) {
	if e.pools == nil {
		return
	}
	borrowUnderlying, err := e.adapter.Underlying(ctx, borrowMarket)
	if err != nil {
		e.logger.Error(err)
		return
	}
	collateralUnderlying, err := e.adapter.Underlying(ctx, collateralMarket)
	if err != nil {
		e.logger.Error(err)
		return
	}

	if borrowUnderlying == collateralUnderlying {
		return
	}
	pools, err := e.pools.FetchPools(ctx, borrowUnderlying, collateralUnderlying)
	if err != nil {
		e.logger.Error(err)
		return
	}
	e.logger.Table(pools)
}

// Run executes one full cycle: scan, size, filter, execute. Per-user
// evaluation failures and failed submissions are logged and skipped; only
// scan-phase errors abort the cycle.
func (e *Engine) Run(ctx context.Context) error {
	users, err := e.ComputeLiquidableUsers(ctx)
	if err != nil {
		return err
	}

	plans := make([]LiquidationPlan, len(users))
	planErrs := make([]error, len(users))
	var wg sync.WaitGroup
	for i, user := range users {
		wg.Add(1)
		go func(i int, user common.Address) {
			defer wg.Done()
			plans[i], planErrs[i] = e.UserLiquidationParams(ctx, user)
		}(i, user.Address)
	}
	wg.Wait()

	var toLiquidate []LiquidationPlan
	for i, plan := range plans {
		if planErrs[i] != nil {
			liquidationErrors.Inc()
			e.logger.Error(fmt.Errorf("liquidation params for %s: %w", users[i].Address, planErrs[i]))
			continue
		}
		if e.IsProfitable(plan.ToLiquidate, plan.DebtMarket.Price) {
			toLiquidate = append(toLiquidate, plan)
		}
	}

	if len(toLiquidate) > 0 {
		e.logger.Log(fmt.Sprintf("%d users to liquidate", len(toLiquidate)))
		e.notifyInfo(fmt.Sprintf("%d profitable liquidations found", len(toLiquidate)))
	}
	for _, plan := range toLiquidate {
		path, err := e.Path(ctx, plan.DebtMarket.Market, plan.CollateralMarket.Market)
		if err != nil {
			liquidationErrors.Inc()
			e.logger.Error(fmt.Errorf("swap path for %s: %w", plan.UserAddress, err))
			continue
		}
		params := handler.LiquidationParams{
			PoolTokenBorrowed:   plan.DebtMarket.Market,
			PoolTokenCollateral: plan.CollateralMarket.Market,
			UnderlyingBorrowed:  plan.DebtMarket.Underlying,
			Borrower:            plan.UserAddress,
			Amount:              plan.ToLiquidate,
			SwapPath:            path,
		}
		e.CheckPoolLiquidity(ctx, plan.DebtMarket.Market, plan.CollateralMarket.Market)
		if err := e.handler.HandleLiquidation(ctx, params); err != nil {
			liquidationErrors.Inc()
			e.logger.Error(fmt.Errorf("liquidation of %s: %w", plan.UserAddress, err))
			e.notifyError(fmt.Sprintf("liquidation of %s failed: %v", plan.UserAddress, err))
			continue
		}
		liquidationsSubmitted.Inc()
		e.notifyInfo(fmt.Sprintf("liquidated %s on market %s, repaying %s", plan.UserAddress, plan.DebtMarket.Market, plan.ToLiquidate))
	}
	e.logger.Flush()
	return nil
}

func (e *Engine) notifyInfo(text string) {
	if e.alerter == nil {
		return
	}
	if err := e.alerter.Info(text); err != nil {
		e.logger.Error(fmt.Errorf("slack alert: %w", err))
	}
}

func (e *Engine) notifyError(text string) {
	if e.alerter == nil {
		return
	}
	if err := e.alerter.Error(text); err != nil {
		e.logger.Error(fmt.Errorf("slack alert: %w", err))
	}
}
