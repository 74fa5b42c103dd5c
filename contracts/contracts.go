// Package contracts wraps the on-chain collaborators (Morpho, its lens, the
// protocol oracles, ERC-20 tokens, and the flash liquidator) behind typed
// Go methods. No decision logic lives here.
package contracts

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// Backend is the subset of the Ethereum RPC client the wrappers need.
// *ethclient.Client satisfies it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(err)
	}
	return parsed
}

func bound(address common.Address, parsed abi.ABI, backend Backend) *bind.BoundContract {
	return bind.NewBoundContract(address, parsed, backend, backend, backend)
}
