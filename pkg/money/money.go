// Package money renders VND amounts the way the cashier app shows them.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Suffix is appended to every formatted amount.
const Suffix = " đ"

var printer = message.NewPrinter(language.Vietnamese)

// Format renders an amount with vi-VN digit grouping, e.g. 1500 -> "1.500 đ".
func Format(amount decimal.Decimal) string {
	return FormatNumber(amount) + Suffix
}

// FormatNumber renders the grouped number without the currency suffix.
func FormatNumber(amount decimal.Decimal) string {
	return printer.Sprint(number.Decimal(amount.InexactFloat64(), number.MaxFractionDigits(3)))
}
