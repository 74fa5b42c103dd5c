// Package swap builds Uniswap V3 swap routes for unwinding seized
// collateral. Route selection is a fixed decision tree over a static fee
// policy, trading optimality for determinism and gas predictability.
package swap

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"

	"github.com/morpho-tools/liquidation-bot/tokens"
)

// Fee tiers in hundredths of a basis point, matching Uniswap V3 pools.
const (
	FeeClassic uint32 = 500  // pairs against the wrapped native asset
	FeeStable  uint32 = 100  // stablecoin to stablecoin
	FeeExotic  uint32 = 3000 // anything else, routed through WETH
)

const (
	addressLength = 20
	feeLength     = 3
	hopLength     = addressLength + feeLength
)

// ErrMalformedPath reports a byte path that does not decode into whole
// (token, fee, token) hops.
var ErrMalformedPath = errors.New("malformed swap path")

// PathFor returns the packed route converting tokenIn to tokenOut. The same
// token on both sides yields an empty path (no swap needed). WETH on either
// side gets a single classic-tier hop; two stablecoins get a single
// stable-tier hop; everything else routes through WETH on the exotic tier.
func PathFor(tokenIn, tokenOut common.Address) []byte {
	if tokenIn == tokenOut {
		return nil
	}
	if tokenIn == tokens.WETH || tokenOut == tokens.WETH {
		return encode([]common.Address{tokenIn, tokenOut}, []uint32{FeeClassic})
	}
	if tokens.IsStablecoin(tokenIn) && tokens.IsStablecoin(tokenOut) {
		return encode([]common.Address{tokenIn, tokenOut}, []uint32{FeeStable})
	}
	return encode([]common.Address{tokenIn, tokens.WETH, tokenOut}, []uint32{FeeExotic, FeeExotic})
}

// encode packs tokens and fees the way solidityPack does: 20-byte addresses
// interleaved with big-endian uint24 fees.
func encode(route []common.Address, fees []uint32) []byte {
	path := make([]byte, 0, len(route)*addressLength+len(fees)*feeLength)
	for i, token := range route {
		path = append(path, token.Bytes()...)
		if i < len(fees) {
			path = append(path, byte(fees[i]>>16), byte(fees[i]>>8), byte(fees[i]))
		}
	}
	return path
}

// Decode unpacks a path back into its token sequence and fee tiers.
func Decode(path []byte) ([]common.Address, []uint32, error) {
	if len(path) == 0 {
		return nil, nil, nil
	}
	if (len(path)-addressLength)%hopLength != 0 {
		return nil, nil, ErrMalformedPath
	}
	route := []common.Address{common.BytesToAddress(path[:addressLength])}
	var fees []uint32
	for offset := addressLength; offset < len(path); offset += hopLength {
		fee := uint32(path[offset])<<16 | uint32(path[offset+1])<<8 | uint32(path[offset+2])
		fees = append(fees, fee)
		route = append(route, common.BytesToAddress(path[offset+feeLength:offset+hopLength]))
	}
	return route, fees, nil
}
