package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer
	err := run(context.Background(), args, &out)
	return out.String(), err
}

func TestList(t *testing.T) {
	for _, gen := range []string{"mod6", "trial", "sieve"} {
		out, err := runCmd(t, "list", "-gen", gen, "30")
		require.NoError(t, err)
		assert.Equal(t, "2\n3\n5\n7\n11\n13\n17\n19\n23\n29\n", out, gen)
	}

	_, err := runCmd(t, "list", "-gen", "wheel", "30")
	assert.Error(t, err)
	_, err = runCmd(t, "list", "thirty")
	assert.Error(t, err)
}

func TestTestAndFactor(t *testing.T) {
	out, err := runCmd(t, "test", "104729")
	require.NoError(t, err)
	assert.Equal(t, "104729 is probably prime\n", out)

	out, err = runCmd(t, "test", "-rounds", "20", "561")
	require.NoError(t, err)
	assert.Equal(t, "561 is composite\n", out)

	out, err = runCmd(t, "factor", "--", "-45")
	require.NoError(t, err)
	assert.Equal(t, "-45 = -1 * 3^2 * 5\n", out)

	_, err = runCmd(t, "factor", "0")
	assert.Error(t, err)
	_, err = runCmd(t, "test", "abc")
	assert.Error(t, err)
}

func TestSample(t *testing.T) {
	out, err := runCmd(t, "sample", "90", "110", "3")
	require.NoError(t, err)
	lines := strings.Fields(out)
	assert.Len(t, lines, 3)
	for _, l := range lines {
		assert.Contains(t, []string{"97", "101", "103", "107", "109"}, l)
	}
}

func TestCounts(t *testing.T) {
	file := filepath.Join(t.TempDir(), "primes.db")
	for _, args := range [][]string{
		{"sample", "90", "110", "0"},
		{"sample", "90", "110", "-1"},
		{"sample", "90", "110", "18446744073709551615"},
		{"fill", "-pool", file, "64", "-1"},
		{"fill", "-pool", file, "64", "0"},
	} {
		_, err := runCmd(t, args...)
		assert.Error(t, err, "%v", args)
		assert.NotEqual(t, errUsage, err, "%v", args)
	}
}

func TestFillAndRandomFromPool(t *testing.T) {
	file := filepath.Join(t.TempDir(), "primes.db")

	out, err := runCmd(t, "fill", "-pool", file, "64", "2")
	require.NoError(t, err)
	assert.Contains(t, out, `"64":2`)

	out, err = runCmd(t, "random", "-pool", file, "64")
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(out))
}

func TestUsage(t *testing.T) {
	for _, args := range [][]string{
		nil,
		{"bogus"},
		{"list"},
		{"factor", "1", "2"},
		{"fill", "64", "2"},
	} {
		_, err := runCmd(t, args...)
		assert.Equal(t, errUsage, err, "%v", args)
	}
}
