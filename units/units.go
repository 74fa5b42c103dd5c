// Package units provides scaled-integer arithmetic for on-chain quantities.
//
// Every balance, price, and USD value handled by the bot is an integer whose
// decimal exponent varies by token and protocol convention (18 for most
// ERC-20s, 6 for USDC/USDT, 36-decimals for Compound oracle prices,
// ETH-denominated wads for Aave oracle prices). Amount tags each value with
// its exponent so mixed-scale values cannot be combined silently.
package units

import (
	"fmt"
	"math/big"
)

// WadScale is the exponent of 18-decimal fixed point values.
const WadScale = 18

// BasisPointsDivisor scales basis-point percentages (10000 = 100%).
var BasisPointsDivisor = big.NewInt(10_000)

var wad = Pow10(WadScale)

// Amount is an integer quantity tagged with its decimal exponent.
type Amount struct {
	Value *big.Int
	Scale uint8
}

// New returns an Amount holding a copy of value at the given scale.
func New(value *big.Int, scale uint8) Amount {
	return Amount{Value: new(big.Int).Set(value), Scale: scale}
}

// NewWad returns an 18-decimal Amount.
func NewWad(value *big.Int) Amount {
	return New(value, WadScale)
}

// Zero returns a zero Amount at the given scale.
func Zero(scale uint8) Amount {
	return Amount{Value: new(big.Int), Scale: scale}
}

// IsZero reports whether the amount is zero.
func (a Amount) IsZero() bool {
	return a.Value == nil || a.Value.Sign() == 0
}

// Rescale converts the amount to another scale. Scaling up is exact; scaling
// down truncates, so callers combining values should rescale upward first.
func (a Amount) Rescale(scale uint8) Amount {
	if scale == a.Scale {
		return New(a.Value, a.Scale)
	}
	if scale > a.Scale {
		factor := Pow10(uint(scale - a.Scale))
		return Amount{Value: new(big.Int).Mul(a.Value, factor), Scale: scale}
	}
	factor := Pow10(uint(a.Scale - scale))
	return Amount{Value: new(big.Int).Quo(a.Value, factor), Scale: scale}
}

// Cmp compares two amounts, rescaling the smaller-scaled side upward so the
// comparison never loses precision. Returns -1, 0, or +1.
func (a Amount) Cmp(b Amount) int {
	if a.Scale == b.Scale {
		return a.Value.Cmp(b.Value)
	}
	if a.Scale < b.Scale {
		return a.Rescale(b.Scale).Value.Cmp(b.Value)
	}
	return a.Value.Cmp(b.Rescale(a.Scale).Value)
}

func (a Amount) String() string {
	return fmt.Sprintf("%se-%d", a.Value, a.Scale)
}

// Pow10 returns 10^n.
func Pow10(n uint) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}

// WadMul multiplies two wad-relative values: a * b / 1e18.
func WadMul(a, b *big.Int) *big.Int {
	p := new(big.Int).Mul(a, b)
	return p.Quo(p, wad)
}

// WadDiv divides wad-relative values without intermediate truncation:
// a * 1e18 / b.
func WadDiv(a, b *big.Int) *big.Int {
	p := new(big.Int).Mul(a, wad)
	return p.Quo(p, b)
}

// PercentMul applies a basis-point percentage: a * bps / 10000.
func PercentMul(a, bps *big.Int) *big.Int {
	p := new(big.Int).Mul(a, bps)
	return p.Quo(p, BasisPointsDivisor)
}

// PercentDiv divides by a basis-point percentage: a * 10000 / bps.
func PercentDiv(a, bps *big.Int) *big.Int {
	p := new(big.Int).Mul(a, BasisPointsDivisor)
	return p.Quo(p, bps)
}
