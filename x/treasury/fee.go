package treasury

import (
	"math"

	"github.com/crosslock/crosslock/errors"
)

// FeeDenominator is the resolution of all fee rates: a rate of 5 means
// 5/1000 of the amount.
const FeeDenominator = 1000

// Fee computes amount * rate / FeeDenominator. The rate must not exceed
// the denominator (a fee above 100% is never meaningful) and the
// multiplication must fit uint64.
func Fee(amount uint64, rate uint32) (uint64, error) {
	if rate > FeeDenominator {
		return 0, errors.Wrapf(errors.ErrInvalidFee, "rate %d of %d", rate, FeeDenominator)
	}
	if rate == 0 {
		return 0, nil
	}
	if amount > math.MaxUint64/uint64(rate) {
		return 0, errors.Wrapf(errors.ErrOverflow, "amount %d with rate %d", amount, rate)
	}
	return amount * uint64(rate) / FeeDenominator, nil
}
