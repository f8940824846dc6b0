package utils

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmountWithDecimals(t *testing.T) {
	cases := []struct {
		amount   string
		decimals int
		want     string
	}{
		{"0.50", 6, "500000"},
		{"12.5", 6, "12500000"},
		{"1", 18, "1000000000000000000"},
		{"0", 6, "0"},
		{"0.000001", 6, "1"},
	}

	for _, tc := range cases {
		got, err := ParseAmountWithDecimals(tc.amount, tc.decimals)
		require.NoError(t, err, tc.amount)
		assert.Equal(t, tc.want, got.String(), tc.amount)
	}
}

func TestParseAmountWithDecimals_Rejects(t *testing.T) {
	cases := map[string]struct {
		amount   string
		decimals int
	}{
		"empty":            {"", 6},
		"not a number":     {"twelve", 6},
		"negative":         {"-1", 6},
		"excess precision": {"0.0000001", 6},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseAmountWithDecimals(tc.amount, tc.decimals)
			require.Error(t, err)
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0.5", FormatAmount(big.NewInt(500_000), 6))
	assert.Equal(t, "12.5", FormatAmount(big.NewInt(12_500_000), 6))
	assert.Equal(t, "0", FormatAmount(big.NewInt(0), 6))

	wei, _ := new(big.Int).SetString("1000000000000000000", 10)
	assert.Equal(t, "1", FormatAmount(wei, 18))
}

func TestConvertDecimalsCeil(t *testing.T) {
	// Same precision copies the value.
	same := ConvertDecimalsCeil(big.NewInt(500), 6, 6)
	assert.Equal(t, big.NewInt(500), same)

	// Upscaling multiplies exactly.
	up := ConvertDecimalsCeil(big.NewInt(500_000_000), 6, 18)
	want, _ := new(big.Int).SetString("500000000000000000000", 10)
	assert.Equal(t, want, up)

	// Exact downscaling divides exactly.
	exact := ConvertDecimalsCeil(big.NewInt(2_000_000), 6, 0)
	assert.Equal(t, big.NewInt(2), exact)

	// Inexact downscaling rounds up, never under-sizing the amount.
	inexact := ConvertDecimalsCeil(big.NewInt(1_999_999), 6, 0)
	assert.Equal(t, big.NewInt(2), inexact)

	// Even a dust remainder rounds to one coarse unit, not zero.
	dust := ConvertDecimalsCeil(big.NewInt(1), 6, 0)
	assert.Equal(t, big.NewInt(1), dust)
}

func TestConvertDecimalsCeil_DoesNotMutateInput(t *testing.T) {
	up := big.NewInt(500)
	_ = ConvertDecimalsCeil(up, 6, 18)
	assert.Equal(t, big.NewInt(500), up)

	down := big.NewInt(1_999_999)
	_ = ConvertDecimalsCeil(down, 6, 0)
	assert.Equal(t, big.NewInt(1_999_999), down)
}
