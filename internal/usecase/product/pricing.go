package product

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// ComputeNewPrice applies a batch price operation to the current price.
// Operation codes are matched case-insensitively.
func ComputeNewPrice(current float64, operation string, operand float64) (float64, error) {
	if !finite(current) || !finite(operand) {
		return 0, domain.NewValidationError("attribute `%s` must be a number", domain.FieldValue)
	}

	cur := decimal.NewFromFloat(current)
	val := decimal.NewFromFloat(operand)

	var next decimal.Decimal
	switch strings.ToLower(strings.TrimSpace(operation)) {
	case domain.OperationFixed:
		next = val
	case domain.OperationIncreaseValue:
		next = cur.Add(val)
	case domain.OperationDecreaseValue:
		next = cur.Sub(val)
	case domain.OperationIncreasePercent:
		next = cur.Add(cur.Mul(val).Div(hundred))
	case domain.OperationDecreasePercent:
		next = cur.Sub(cur.Mul(val).Div(hundred))
	default:
		return 0, domain.NewValidationError("invalid operation `%s`", operation)
	}

	if next.IsNegative() {
		return 0, domain.NewValidationError("new price cannot be negative")
	}

	f, _ := next.Float64()
	return f, nil
}

// ComputeNewStock adds a signed delta to the current quantity
func ComputeNewStock(current, operand float64) (float64, error) {
	if !finite(current) || !finite(operand) {
		return 0, domain.NewValidationError("attribute `%s` must be a number", domain.FieldValue)
	}

	next := decimal.NewFromFloat(current).Add(decimal.NewFromFloat(operand))
	if next.IsNegative() {
		return 0, domain.NewValidationError("new stock cannot be negative")
	}

	f, _ := next.Float64()
	return f, nil
}

// finite guards decimal.NewFromFloat, which panics on NaN and infinities
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
