package big

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEGCD(t *testing.T) {
	cases := [][2]int64{
		{240, 46},
		{46, 240},
		{17, 5},
		{-240, 46},
		{240, -46},
		{0, 9},
		{12, 0},
	}
	for _, c := range cases {
		a, b := NewInt(c[0]), NewInt(c[1])
		g, x, y := EGCD(a, b)

		lhs := new(Int).Mul(a, x)
		lhs.Add(lhs, new(Int).Mul(b, y))
		assert.Equal(t, 0, lhs.Cmp(g), "a*x + b*y != gcd for %d, %d", c[0], c[1])
		assert.True(t, g.Sign() >= 0)
	}

	g, _, _ := EGCD(NewInt(240), NewInt(46))
	assert.Equal(t, int64(2), g.Int64())
}

func TestModPow(t *testing.T) {
	assert.Equal(t, int64(445), ModPow(NewInt(4), NewInt(13), NewInt(497)).Int64())
	assert.Equal(t, int64(1), ModPow(NewInt(2), NewInt(560), NewInt(561)).Int64())
}

func TestDivMod(t *testing.T) {
	q, m := DivMod(NewInt(-7), NewInt(2))
	assert.Equal(t, int64(-4), q.Int64())
	assert.Equal(t, int64(1), m.Int64())

	q, m = DivMod(NewInt(45), NewInt(3))
	assert.Equal(t, int64(15), q.Int64())
	assert.Equal(t, int64(0), m.Int64())

	assert.True(t, Divides(NewInt(3), NewInt(45)))
	assert.False(t, Divides(NewInt(7), NewInt(45)))
}

func TestRandomInt(t *testing.T) {
	_, err := RandomInt(rand.Reader, NewInt(0))
	assert.Error(t, err)

	low, high := NewInt(2), NewInt(5)
	seen := map[int64]bool{}
	for i := 0; i < 200; i++ {
		r, err := RandomIntInRange(rand.Reader, low, high)
		require.NoError(t, err)
		require.True(t, r.Cmp(low) >= 0 && r.Cmp(high) <= 0, "out of range: %s", r)
		seen[r.Int64()] = true
	}
	assert.Len(t, seen, 4)
}

func TestRandomBits(t *testing.T) {
	for _, bits := range []uint{0, 1, 7, 8, 9, 63, 130} {
		r, err := RandomBits(rand.Reader, bits)
		require.NoError(t, err)
		assert.LessOrEqual(t, r.BitLen(), int(bits))
	}

	_, err := RandomBits(bytes.NewReader(nil), 16)
	assert.Error(t, err)
}
