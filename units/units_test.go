package units

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRescaleUp(t *testing.T) {
	// 1.5 USDC at 6 decimals
	a := New(big.NewInt(1_500_000), 6)

	up := a.Rescale(18)
	assert.Equal(t, uint8(18), up.Scale)
	assert.Equal(t, "1500000000000000000", up.Value.String())
}

func TestRescaleDownTruncates(t *testing.T) {
	a := New(big.NewInt(1_999_999), 6)

	down := a.Rescale(0)
	assert.Equal(t, "1", down.Value.String())
}

func TestRescaleNoopCopies(t *testing.T) {
	a := New(big.NewInt(42), 6)
	b := a.Rescale(6)

	b.Value.SetInt64(7)
	assert.Equal(t, "42", a.Value.String())
}

func TestCmpAcrossScales(t *testing.T) {
	// 2 USDC vs 1 DAI
	usdc := New(big.NewInt(2_000_000), 6)
	dai := New(Pow10(18), 18)

	assert.Equal(t, 1, usdc.Cmp(dai))
	assert.Equal(t, -1, dai.Cmp(usdc))
	assert.Equal(t, 0, usdc.Cmp(usdc))
}

func TestCmpEqualValueDifferentScale(t *testing.T) {
	a := New(big.NewInt(5_000_000), 6)
	b := New(new(big.Int).Mul(big.NewInt(5), Pow10(18)), 18)

	assert.Equal(t, 0, a.Cmp(b))
	assert.Equal(t, 0, b.Cmp(a))
}

func TestIsZero(t *testing.T) {
	assert.True(t, Zero(18).IsZero())
	assert.True(t, Amount{}.IsZero())
	assert.False(t, NewWad(big.NewInt(1)).IsZero())
}

func TestWadMul(t *testing.T) {
	// 2.0 * 3.0 = 6.0
	two := new(big.Int).Mul(big.NewInt(2), Pow10(18))
	three := new(big.Int).Mul(big.NewInt(3), Pow10(18))

	assert.Equal(t, "6000000000000000000", WadMul(two, three).String())
}

func TestWadDiv(t *testing.T) {
	// 6.0 / 3.0 = 2.0
	six := new(big.Int).Mul(big.NewInt(6), Pow10(18))
	three := new(big.Int).Mul(big.NewInt(3), Pow10(18))

	assert.Equal(t, "2000000000000000000", WadDiv(six, three).String())
}

func TestWadDivMultipliesBeforeDividing(t *testing.T) {
	// 1 / 3 keeps 18 digits of precision
	one := Pow10(18)
	three := new(big.Int).Mul(big.NewInt(3), Pow10(18))

	assert.Equal(t, "333333333333333333", WadDiv(one, three).String())
}

func TestPercentMul(t *testing.T) {
	// 7% premium: 100 * 10700 / 10000 = 107
	assert.Equal(t, "107", PercentMul(big.NewInt(100), big.NewInt(10_700)).String())
}

func TestPercentDiv(t *testing.T) {
	// 107 / 107% = 100
	assert.Equal(t, "100", PercentDiv(big.NewInt(107), big.NewInt(10_700)).String())
}

func TestPercentRoundTripLosesAtMostOne(t *testing.T) {
	bonus := big.NewInt(10_700)
	for _, v := range []int64{1, 99, 1000, 123456789} {
		got := PercentDiv(PercentMul(big.NewInt(v), bonus), bonus)
		diff := new(big.Int).Sub(big.NewInt(v), got)
		assert.True(t, diff.Sign() >= 0)
		assert.True(t, diff.Cmp(big.NewInt(1)) <= 0)
	}
}
