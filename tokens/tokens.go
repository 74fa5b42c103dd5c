// Package tokens holds the static mainnet token tables shared by the
// protocol adapters and the swap path builder.
package tokens

import "github.com/ethereum/go-ethereum/common"

// WETH is the wrapped native asset used as the routing hub for exotic swaps.
var WETH = common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")

// USDC underlies the Aave oracle's ETH/USD reference price lookup.
var USDC = common.HexToAddress("0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48")

var (
	dai  = common.HexToAddress("0x6B175474E89094C44Da98b954EedeAC495271d0F")
	usdt = common.HexToAddress("0xdAC17F958D2ee523a2206206994597C13D831ec7")
	fei  = common.HexToAddress("0x956f47f50a910163d8bf957cf5846d573e7f87ca")
	wbtc = common.HexToAddress("0x2260fac5e5542a773aa44fbcfedf7c193bc2c599")
	comp = common.HexToAddress("0xc00e94cb662c3520282e6f5717214004a7f26888")
	uni  = common.HexToAddress("0x1f9840a85d5af5bf1d1762f925bdaddc4201f984")
	stEth = common.HexToAddress("0xae7ab96520de3a18e5e111b5eaab095312d7fe84")
	crv  = common.HexToAddress("0xD533a949740bb3306d119CC777fa900bA034cd52")
)

// underlyings maps pool tokens (cTokens and aTokens) to their underlying
// ERC-20 assets. common.Address is canonical, so lookups are effectively
// case-insensitive on the hex form.
var underlyings = map[common.Address]common.Address{
	// Compound markets
	common.HexToAddress("0x5d3a536E4D6DbD6114cc1Ead35777bAB948E3643"): dai,
	common.HexToAddress("0x39aa39c021dfbae8fac545936693ac917d5e7563"): USDC,
	common.HexToAddress("0xf650c3d88d12db855b8bf7d11be6c55a4e07dcc9"): usdt,
	common.HexToAddress("0x7713DD9Ca933848F6819F38B8352D9A15EA73F67"): fei,
	common.HexToAddress("0x4Ddc2D193948926D02f9B1fE9e1daa0718270ED5"): WETH,
	common.HexToAddress("0xccf4429db6322d5c611ee964527d42e5d685dd6a"): wbtc,
	common.HexToAddress("0x70e36f6bf80a52b3b46b3af8e106cc0ed743e8e4"): comp,
	common.HexToAddress("0x35a18000230da775cac24873d00ff85bccded550"): uni,
	// Aave markets
	common.HexToAddress("0x028171bca77440897b824ca71d1c56cac55b68a3"): dai,
	common.HexToAddress("0xbcca60bb61934080951369a648fb03df4f96263c"): USDC,
	common.HexToAddress("0x3ed3b47dd13ec9a98b44e6204a523e766b225811"): usdt,
	common.HexToAddress("0x030ba81f1c18d280636f32af80b9aad02cf0854e"): WETH,
	common.HexToAddress("0x9ff58f4ffb29fa2266ab25e75e2a8b3503311656"): wbtc,
	common.HexToAddress("0x1982b2f5814301d4e9a8b0201555376e62f82428"): stEth,
	common.HexToAddress("0x8dae6cb04688c62d939ed9b68d32bc62e49970b1"): crv,
}

var decimals = map[common.Address]uint8{
	dai:   18,
	USDC:  6,
	usdt:  6,
	fei:   18,
	WETH:  18,
	wbtc:  8,
	comp:  18,
	uni:   18,
	stEth: 18,
	crv:   18,
}

var stablecoins = map[common.Address]bool{
	dai:  true,
	USDC: true,
	usdt: true,
	fei:  true,
}

// Underlying returns the underlying asset of a known pool token.
func Underlying(market common.Address) (common.Address, bool) {
	u, ok := underlyings[market]
	return u, ok
}

// Decimals returns the decimal exponent of a known underlying asset.
func Decimals(underlying common.Address) (uint8, bool) {
	d, ok := decimals[underlying]
	return d, ok
}

// IsStablecoin reports whether the underlying asset is in the fixed
// stablecoin set used by the swap fee policy.
func IsStablecoin(underlying common.Address) bool {
	return stablecoins[underlying]
}
