package utils

import (
	"github.com/shopspring/decimal"
)

// FormatCurrency memformat nominal order ke string dollar, mis. 25.5 -> "$25.50"
func FormatCurrency(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}
