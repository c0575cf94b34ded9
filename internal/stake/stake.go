package stake

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"lukechampine.com/uint128"
)

// lovelaceExponent converts lovelace into ADA (1 ADA = 10^6 lovelace).
const lovelaceExponent = -6

// ParseAmount parses a base-10 lovelace amount.
// Only ASCII digits are accepted: signs, spaces and trailing garbage are rejected
// so a corrupted amount never turns into a silent zero.
func ParseAmount(s string) (uint128.Uint128, error) {
	if s == "" || strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return uint128.Zero, fmt.Errorf("%w: %q is not a decimal number", ErrInvalidAmount, s)
	}

	amount, err := uint128.FromString(s)
	if err != nil {
		return uint128.Zero, fmt.Errorf("%w: %q: %v", ErrInvalidAmount, s, err)
	}

	return amount, nil
}

// Aggregate sums the entries by pool.
//
// Overflowing the 128-bit accumulator is not expected for real stake values;
// uint128 addition panics instead of wrapping if it ever happens.
func Aggregate(entries []Entry) PoolStakes {
	stakes := make(PoolStakes, len(entries))
	for _, entry := range entries {
		total, ok := stakes[entry.PoolID]
		if !ok {
			stakes[entry.PoolID] = entry.Amount
			continue
		}
		stakes[entry.PoolID] = total.Add(entry.Amount)
	}
	return stakes
}

// Sorted returns the pools and their stake ordered by pool ID (byte order).
func (p PoolStakes) Sorted() []Entry {
	entries := make([]Entry, 0, len(p))
	for poolID, amount := range p {
		entries = append(entries, Entry{PoolID: poolID, Amount: amount})
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.PoolID, b.PoolID)
	})
	return entries
}

// Total returns the stake of all pools in lovelace.
func (p PoolStakes) Total() uint128.Uint128 {
	total := uint128.Zero
	for _, amount := range p {
		total = total.Add(amount)
	}
	return total
}

// TotalADA returns the stake of all pools in ADA.
func (p PoolStakes) TotalADA() decimal.Decimal {
	return decimal.NewFromBigInt(p.Total().Big(), lovelaceExponent)
}
