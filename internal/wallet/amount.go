package wallet

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ToDecimalAmount converts a base-unit integer string into a human-readable
// decimal amount for a currency with the given precision.
func ToDecimalAmount(raw string, decimals int) (string, error) {
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return "", errors.Wrapf(err, "invalid raw amount %q", raw)
	}

	return value.Shift(int32(-decimals)).String(), nil
}

// ToRawAmount converts a human-readable decimal amount into a base-unit
// integer string. Fractional remainder below the currency's precision is
// truncated.
func ToRawAmount(amount string, decimals int) (string, error) {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return "", errors.Wrapf(err, "invalid amount %q", amount)
	}

	return value.Shift(int32(decimals)).Truncate(0).String(), nil
}
