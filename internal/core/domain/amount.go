package domain

import (
	"fmt"
)

var (
	ErrAmountOverflow = fmt.Errorf("lovelace amount overflow")
)

// MaxLovelaceSupply is the maximum representable amount of the base currency.
// No valid output can hold more than this, which makes it the upper bound
// used when measuring a synthetic output against the ledger min-value rule.
const MaxLovelaceSupply Amount = 45_000_000_000_000_000

// Amount is a quantity of the chain's base currency expressed in lovelace.
type Amount uint64

// Add returns the checked sum of the two amounts. Amounts held by wallet
// utxos can never sum past the max supply, so an overflow here means the
// inputs are corrupted or there is a bug in the caller.
func (a Amount) Add(b Amount) (Amount, error) {
	sum := a + b
	if sum < a {
		return 0, ErrAmountOverflow
	}
	return sum, nil
}

// SumAmounts reduces the given list with checked addition.
func SumAmounts(amounts []Amount) (Amount, error) {
	var total Amount
	for _, v := range amounts {
		sum, err := total.Add(v)
		if err != nil {
			return 0, err
		}
		total = sum
	}
	return total, nil
}
