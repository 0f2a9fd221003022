package domain

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var hundred = decimal.NewFromInt(100)

// ErrAmountOutOfRange is returned when an amount does not fit the invoices.amount column.
var ErrAmountOutOfRange = errors.New("amount out of range")

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders cents as US dollars, e.g. 123456 -> "$1,234.56".
func FormatCurrency(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%s.%02d", sign, printer.Sprintf("%d", cents/100), cents%100)
}

// FormatDateToLocal renders a calendar date as "Dec 6, 2022".
func FormatDateToLocal(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// MinorToMajor converts cents to major units.
func MinorToMajor(cents int64) float64 {
	f, _ := decimal.NewFromInt(cents).Div(hundred).Float64()
	return f
}

// MajorToMinor converts a major-unit amount to cents, rounding half away from
// zero at the third decimal.
func MajorToMinor(amount decimal.Decimal) (int64, error) {
	cents := amount.Mul(hundred).Round(0)
	if cents.GreaterThan(decimal.NewFromInt(math.MaxInt32)) || cents.LessThan(decimal.NewFromInt(math.MinInt32)) {
		return 0, ErrAmountOutOfRange
	}
	return cents.IntPart(), nil
}
