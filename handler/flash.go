package handler

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/morpho-tools/liquidation-bot/contracts"
	"github.com/morpho-tools/liquidation-bot/logging"
)

// FlashLiquidator is the flash-mint liquidator contract surface the handler
// uses.
type FlashLiquidator interface {
	Liquidate(ctx context.Context, poolTokenBorrowed, poolTokenCollateral, borrower common.Address, amount *big.Int, stakeTokens bool, path []byte) (*types.Transaction, error)
	ParseLiquidated(receipt *types.Receipt) (*contracts.LiquidatedEvent, bool)
}

// FlashHandlerOptions tunes flash liquidations.
type FlashHandlerOptions struct {
	// StakeTokens forwards the seized bonus to the staking sink instead of
	// holding it on the contract.
	StakeTokens bool
}

// FlashHandler submits liquidations through the flash-mint liquidator
// contract, which borrows the repay amount, liquidates, and swaps the
// seized collateral in one transaction.
type FlashHandler struct {
	liquidator FlashLiquidator
	backend    Backend
	logger     logging.Logger
	options    FlashHandlerOptions
}

func NewFlashHandler(liquidator FlashLiquidator, backend Backend, logger logging.Logger, options FlashHandlerOptions) *FlashHandler {
	return &FlashHandler{liquidator: liquidator, backend: backend, logger: logger, options: options}
}

func (h *FlashHandler) HandleLiquidation(ctx context.Context, params LiquidationParams) error {
	tx, err := h.liquidator.Liquidate(ctx, params.PoolTokenBorrowed, params.PoolTokenCollateral, params.Borrower, params.Amount, h.options.StakeTokens, params.SwapPath)
	if err != nil {
		return fmt.Errorf("flash liquidation submit: %w", err)
	}
	h.logger.Log(fmt.Sprintf("flash liquidation sent: %s", tx.Hash()))

	receipt, err := bind.WaitMined(ctx, h.backend, tx)
	if err != nil {
		return fmt.Errorf("flash liquidation wait: %w", err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return fmt.Errorf("flash liquidation reverted: %s", tx.Hash())
	}
	h.logger.Log(fmt.Sprintf("gas used: %d", receipt.GasUsed))

	if event, ok := h.liquidator.ParseLiquidated(receipt); ok {
		h.logger.Log(fmt.Sprintf(
			"liquidated %s: repaid %s, seized %s",
			event.Borrower, event.AmountOfDebtRepaid, event.AmountOfCollateralLiquidated,
		))
	}
	return nil
}
