package handler

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/morpho-tools/liquidation-bot/logging"
)

// ErrInsufficientBalance signals the signer cannot fund the repay amount, a
// precondition failure caught before any gas is spent.
var ErrInsufficientBalance = errors.New("insufficient balance for liquidation")

// maxUint256 is the unlimited-allowance sentinel.
var maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// approveZeroTokens lists tokens whose allowance must be reset to zero
// before it can be raised (the USDT pattern).
var approveZeroTokens = map[common.Address]bool{
	common.HexToAddress("0xdAC17F958D2ee523a2206206994597C13D831ec7"): true,
}

// MorphoLiquidator is the Morpho main contract surface the EOA handler
// uses.
type MorphoLiquidator interface {
	Address() common.Address
	Liquidate(ctx context.Context, poolTokenBorrowed, poolTokenCollateral, borrower common.Address, amount *big.Int) (*types.Transaction, error)
}

// TokenCaller is the ERC-20 surface the EOA handler uses for preflight
// checks and approvals.
type TokenCaller interface {
	BalanceOf(ctx context.Context, token, owner common.Address) (*big.Int, error)
	Allowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error)
	Approve(ctx context.Context, token, spender common.Address, amount *big.Int) (*types.Transaction, error)
}

// EOAHandlerOptions tunes direct liquidations.
type EOAHandlerOptions struct {
	// CheckBalance verifies the signer holds the repay amount before
	// submitting.
	CheckBalance bool
	// ApproveMax raises the allowance to MaxUint256 instead of the exact
	// repay amount.
	ApproveMax bool
}

// DefaultEOAHandlerOptions checks balances and approves unlimited
// allowances.
var DefaultEOAHandlerOptions = EOAHandlerOptions{CheckBalance: true, ApproveMax: true}

// EOAHandler liquidates directly against the pool using the signer's own
// funds.
type EOAHandler struct {
	morpho  MorphoLiquidator
	erc20   TokenCaller
	backend Backend
	signer  common.Address
	logger  logging.Logger
	options EOAHandlerOptions
}

func NewEOAHandler(morpho MorphoLiquidator, erc20 TokenCaller, backend Backend, signer common.Address, logger logging.Logger, options EOAHandlerOptions) *EOAHandler {
	return &EOAHandler{morpho: morpho, erc20: erc20, backend: backend, signer: signer, logger: logger, options: options}
}

func (h *EOAHandler) HandleLiquidation(ctx context.Context, params LiquidationParams) error {
	if h.options.CheckBalance {
		if err := h.checkBalance(ctx, params.UnderlyingBorrowed, params.Amount); err != nil {
			return err
		}
	}
	if err := h.checkAllowance(ctx, params.UnderlyingBorrowed, params.Amount); err != nil {
		return err
	}

	tx, err := h.morpho.Liquidate(ctx, params.PoolTokenBorrowed, params.PoolTokenCollateral, params.Borrower, params.Amount)
	if err != nil {
		return fmt.Errorf("liquidation submit: %w", err)
	}
	h.logger.Log(fmt.Sprintf("liquidation sent: %s", tx.Hash()))

	receipt, err := bind.WaitMined(ctx, h.backend, tx)
	if err != nil {
		return fmt.Errorf("liquidation wait: %w", err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return fmt.Errorf("liquidation reverted: %s", tx.Hash())
	}
	h.logger.Log(fmt.Sprintf("gas used: %d", receipt.GasUsed))
	return nil
}

func (h *EOAHandler) checkBalance(ctx context.Context, token common.Address, amount *big.Int) error {
	balance, err := h.erc20.BalanceOf(ctx, token, h.signer)
	if err != nil {
		return err
	}
	if balance.Cmp(amount) < 0 {
		return fmt.Errorf("%w: have %s, need %s of %s", ErrInsufficientBalance, balance, amount, token)
	}
	return nil
}

func (h *EOAHandler) checkAllowance(ctx context.Context, token common.Address, amount *big.Int) error {
	allowance, err := h.erc20.Allowance(ctx, token, h.signer, h.morpho.Address())
	if err != nil {
		return err
	}
	if allowance.Cmp(amount) >= 0 {
		return nil
	}

	h.logger.Log(fmt.Sprintf("allowance is not enough for %s", token))
	if approveZeroTokens[token] {
		if err := h.approve(ctx, token, new(big.Int)); err != nil {
			return err
		}
	}
	target := amount
	if h.options.ApproveMax {
		target = maxUint256
	}
	if err := h.approve(ctx, token, target); err != nil {
		return err
	}
	h.logger.Log(fmt.Sprintf("allowance updated for %s", token))
	return nil
}

func (h *EOAHandler) approve(ctx context.Context, token common.Address, amount *big.Int) error {
	tx, err := h.erc20.Approve(ctx, token, h.morpho.Address(), amount)
	if err != nil {
		return fmt.Errorf("approve %s: %w", token, err)
	}
	receipt, err := bind.WaitMined(ctx, h.backend, tx)
	if err != nil {
		return fmt.Errorf("approve %s wait: %w", token, err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return fmt.Errorf("approve %s reverted: %s", token, tx.Hash())
	}
	return nil
}
