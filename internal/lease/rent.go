package lease

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/apperr"
)

var hundred = decimal.NewFromInt(100)

// ApplyIncrease computes the renewal rent in cents. Percentage increases are
// rounded half away from zero to the nearest cent.
func ApplyIncrease(current int64, inc RentIncrease) (int64, error) {
	cur := decimal.NewFromInt(current)

	var next decimal.Decimal

	switch inc.Mode {
	case IncreaseNone, "":
		next = cur
	case IncreasePercentage:
		next = cur.Mul(decimal.NewFromInt(1).Add(inc.Value.Div(hundred))).Round(0)
	case IncreaseFixed:
		if !inc.Value.IsInteger() {
			return 0, apperr.Validation("fixed rent increase must be whole cents, got %s", inc.Value)
		}

		next = cur.Add(inc.Value)
	case IncreaseExplicit:
		next = inc.Value
	default:
		return 0, apperr.Validation("unknown rent increase mode %q", inc.Mode)
	}

	if !next.IsPositive() {
		return 0, apperr.Validation("renewal rent must be positive, got %s cents", next)
	}

	return next.IntPart(), nil
}

// IncreasePercent returns the relative change from previous to next rent in percent.
func IncreasePercent(previous, next int64) decimal.Decimal {
	if previous == 0 {
		return decimal.Zero
	}

	return decimal.NewFromInt(next - previous).Mul(hundred).Div(decimal.NewFromInt(previous))
}

// stabilizationWarning returns a non-empty message when the increase exceeds the
// guideline threshold. NYC rent-guideline caps are not enforced.
func stabilizationWarning(previous, next int64, threshold decimal.Decimal) string {
	pct := IncreasePercent(previous, next)
	if pct.LessThanOrEqual(threshold) {
		return ""
	}

	return fmt.Sprintf(
		"rent increase of %s%% exceeds the %s%% guideline; confirm the unit is not rent stabilized",
		pct.StringFixed(2), threshold.String(),
	)
}
