package utils

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// ValidateAmount checks that an amount string is a valid non-negative decimal.
func ValidateAmount(amount string) (*decimal.Decimal, error) {
	if amount == "" {
		return nil, fmt.Errorf("amount cannot be empty")
	}

	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount format: %w", err)
	}

	if dec.IsNegative() {
		return nil, fmt.Errorf("amount cannot be negative")
	}

	return &dec, nil
}

// ParseAmountWithDecimals parses a human-readable decimal amount string into
// the token's smallest unit using the given decimal precision.
func ParseAmountWithDecimals(amount string, decimals int) (*big.Int, error) {
	dec, err := ValidateAmount(amount)
	if err != nil {
		return nil, err
	}

	shifted := dec.Shift(int32(decimals))
	if !shifted.IsInteger() {
		return nil, fmt.Errorf("amount %s has more than %d decimal places", amount, decimals)
	}

	return shifted.BigInt(), nil
}

// FormatAmount renders a smallest-unit integer as a human-readable decimal
// string with the given precision.
func FormatAmount(amount *big.Int, decimals int) string {
	return decimal.NewFromBigInt(amount, -int32(decimals)).String()
}

// ConvertDecimalsCeil rescales a smallest-unit amount from one decimal
// precision to another. Downscaling rounds up, so a required amount
// expressed in the coarser precision always covers the original; truncating
// here would under-size a transfer by up to one coarse unit.
func ConvertDecimalsCeil(amount *big.Int, fromDecimals, toDecimals int) *big.Int {
	result := new(big.Int).Set(amount)
	if fromDecimals == toDecimals {
		return result
	}

	if fromDecimals > toDecimals {
		divisor := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(fromDecimals-toDecimals)), nil)
		var remainder big.Int
		result.DivMod(result, divisor, &remainder)
		if remainder.Sign() > 0 {
			result.Add(result, big.NewInt(1))
		}
		return result
	}

	multiplier := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(toDecimals-fromDecimals)), nil)
	return result.Mul(result, multiplier)
}
