package payment

import (
	"fmt"

	"github.com/shopspring/decimal"

	"parcel-service/internal/apperr"
)

var hundred = decimal.NewFromInt(100)

// ToMinorUnits converts a positive amount with at most two decimals into cents.
func ToMinorUnits(cost decimal.Decimal) (int64, error) {
	if !cost.IsPositive() {
		return 0, fmt.Errorf("%w: cost must be positive, got %s", apperr.ErrInvalid, cost)
	}
	cents := cost.Mul(hundred)
	if !cents.Equal(cents.Truncate(0)) {
		return 0, fmt.Errorf("%w: cost %s has sub-cent precision", apperr.ErrInvalid, cost)
	}
	return cents.IntPart(), nil
}
