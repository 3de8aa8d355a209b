// Package format renders record values for display. Every function is pure
// and locale-fixed to en-US.
package format

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	shortDateLayout    = "Jan 2, 2006"
	detailedDateLayout = "Monday, January 2, 2006 at 3:04:05 PM MST"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Currency renders an amount as US dollars with two decimals and grouped
// thousands, e.g. "$1,234.50" and "-$5.00".
func Currency(amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	var b strings.Builder
	if amount.Round(2).IsNegative() {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	b.WriteString(group(whole))
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// DateShort renders t as "Jan 2, 2006" in UTC.
func DateShort(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(shortDateLayout)
}

// DateDetailed renders the full timestamp used in row tooltips, in UTC.
func DateDetailed(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(detailedDateLayout)
}

// Count groups the digits of n, e.g. 12,345.
func Count(n int) string {
	return printer.Sprintf("%d", n)
}
