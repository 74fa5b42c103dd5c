package handler

import (
	"context"

	"github.com/morpho-tools/liquidation-bot/logging"
)

// ReadOnlyHandler never submits anything. It keeps the engine runnable in
// observation mode when no signing key is configured.
type ReadOnlyHandler struct {
	logger logging.Logger
}

func NewReadOnlyHandler(logger logging.Logger) *ReadOnlyHandler {
	return &ReadOnlyHandler{logger: logger}
}

func (h *ReadOnlyHandler) HandleLiquidation(context.Context, LiquidationParams) error {
	h.logger.Log("read only mode, no liquidation will be performed")
	return nil
}
