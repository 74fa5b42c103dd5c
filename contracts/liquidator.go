package contracts

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// flashLiquidationGasLimit covers the flash mint, the liquidation, and the
// collateral swap in one transaction.
const flashLiquidationGasLimit = 8_000_000

// LiquidatedEvent mirrors the Liquidated event emitted by the flash
// liquidator contract on success.
type LiquidatedEvent struct {
	Liquidator                   common.Address
	Borrower                     common.Address
	PoolTokenBorrowedAddress     common.Address
	PoolTokenCollateralAddress   common.Address
	AmountOfDebtRepaid           *big.Int
	AmountOfCollateralLiquidated *big.Int
	UsedFlashLoans               bool
}

// Liquidator wraps the flash-mint liquidator contract.
type Liquidator struct {
	address  common.Address
	parsed   abi.ABI
	contract *bind.BoundContract
	auth     *bind.TransactOpts
}

func NewLiquidator(address common.Address, backend Backend, auth *bind.TransactOpts) *Liquidator {
	parsed := mustParseABI(liquidatorABI)
	return &Liquidator{
		address:  address,
		parsed:   parsed,
		contract: bind.NewBoundContract(address, parsed, backend, backend, backend),
		auth:     auth,
	}
}

func (l *Liquidator) Address() common.Address {
	return l.address
}

// Liquidate submits a flash-loan-funded liquidation. path routes the seized
// collateral back into the repaid asset; an empty path skips the swap.
func (l *Liquidator) Liquidate(ctx context.Context, poolTokenBorrowed, poolTokenCollateral, borrower common.Address, amount *big.Int, stakeTokens bool, path []byte) (*types.Transaction, error) {
	opts := *l.auth
	opts.Context = ctx
	opts.GasLimit = flashLiquidationGasLimit
	return l.contract.Transact(&opts, "liquidate", poolTokenBorrowed, poolTokenCollateral, borrower, amount, stakeTokens, path)
}

// Withdraw moves tokens held by the liquidator contract to a receiver.
// Admin-only on chain.
func (l *Liquidator) Withdraw(ctx context.Context, token, receiver common.Address, amount *big.Int) (*types.Transaction, error) {
	opts := *l.auth
	opts.Context = ctx
	return l.contract.Transact(&opts, "withdraw", token, receiver, amount)
}

// SetSlippageTolerance updates the contract's swap slippage bound in basis
// points. Admin-only on chain.
func (l *Liquidator) SetSlippageTolerance(ctx context.Context, bps *big.Int) (*types.Transaction, error) {
	opts := *l.auth
	opts.Context = ctx
	return l.contract.Transact(&opts, "setSlippageTolerance", bps)
}

// ParseLiquidated extracts the Liquidated event from a receipt, if present.
func (l *Liquidator) ParseLiquidated(receipt *types.Receipt) (*LiquidatedEvent, bool) {
	topic := l.parsed.Events["Liquidated"].ID
	for _, log := range receipt.Logs {
		if log == nil || log.Address != l.address || len(log.Topics) == 0 || log.Topics[0] != topic {
			continue
		}
		event := new(LiquidatedEvent)
		if err := l.contract.UnpackLog(event, "Liquidated", *log); err != nil {
			continue
		}
		return event, true
	}
	return nil, false
}
