package shared

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var viPrinter = message.NewPrinter(language.Vietnamese)

// FormatVND renders an amount the way Vietnamese documents print it, e.g. "1.000.000 ₫"
func FormatVND(amount decimal.Decimal) string {
	return viPrinter.Sprintf("%v ₫", number.Decimal(amount.Round(0).IntPart()))
}

// FormatQuantity renders a quantity with Vietnamese separators and up to 4 decimals
func FormatQuantity(qty decimal.Decimal) string {
	f, _ := qty.Round(4).Float64()
	return viPrinter.Sprintf("%v", number.Decimal(f, number.MaxFractionDigits(4)))
}
