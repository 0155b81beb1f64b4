package domain

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// AllocateProportionally splits total across weights. Each share is
// total*w/sum(w) truncated toward zero at the total's smallest unit (whole
// units for integer totals, cents for 2-place totals), and the leftover
// units go one at a time to the shares that lost the most, ties going to
// the lower index. The result always sums exactly to total.
func AllocateProportionally(total decimal.Decimal, weights []decimal.Decimal) ([]decimal.Decimal, error) {
	if len(weights) == 0 {
		return nil, ErrNoWeights
	}

	sum := decimal.Zero
	for i, w := range weights {
		if w.IsNegative() {
			return nil, fmt.Errorf("%w: weight %d is %s", ErrNegativeWeight, i, w)
		}
		sum = sum.Add(w)
	}

	shares := make([]decimal.Decimal, len(weights))
	if total.IsZero() {
		for i := range shares {
			shares[i] = decimal.Zero
		}
		return shares, nil
	}
	if sum.IsZero() {
		return nil, ErrZeroWeights
	}

	places := int32(0)
	if exp := total.Exponent(); exp < 0 {
		places = -exp
	}
	unit := decimal.New(1, -places)

	lost := make([]decimal.Decimal, len(weights))
	allocated := decimal.Zero
	for i, w := range weights {
		q, r := total.Mul(w).QuoRem(sum, places)
		shares[i] = q
		lost[i] = r.Abs()
		allocated = allocated.Add(q)
	}

	remainder := total.Sub(allocated)
	if remainder.IsZero() {
		return shares, nil
	}
	if remainder.IsNegative() {
		unit = unit.Neg()
	}

	order := make([]int, len(weights))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return lost[order[a]].GreaterThan(lost[order[b]])
	})

	for _, i := range order {
		if remainder.IsZero() {
			break
		}
		shares[i] = shares[i].Add(unit)
		remainder = remainder.Sub(unit)
	}

	return shares, nil
}
