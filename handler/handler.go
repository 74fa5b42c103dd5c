// Package handler executes liquidation plans. Three interchangeable
// strategies exist: the flash-mint liquidator contract, a direct EOA
// liquidation funded by the signer, and a read-only no-op for observation
// mode.
package handler

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// LiquidationParams carries everything a strategy needs to submit one
// liquidation.
type LiquidationParams struct {
	PoolTokenBorrowed   common.Address
	PoolTokenCollateral common.Address
	UnderlyingBorrowed  common.Address
	Borrower            common.Address
	Amount              *big.Int
	SwapPath            []byte
}

// Handler is the execution capability consumed by the engine. A failed
// submission returns an error; the engine logs it and moves on to the next
// plan.
type Handler interface {
	HandleLiquidation(ctx context.Context, params LiquidationParams) error
}

// Backend waits on transaction receipts. *ethclient.Client satisfies it.
type Backend interface {
	bind.DeployBackend
}
