// Package format turns engine numbers into display text. A Formatter holds no
// mutable state; the zero decimal currency rendering rounds half away from zero.
package format

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	DefaultLocale = "en-IN"
	DefaultSymbol = "₹"
)

type Formatter struct {
	tag    language.Tag
	symbol string
}

// New builds a Formatter for a BCP 47 locale. Unparseable locales fall back
// to English grouping.
func New(locale, symbol string) Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return Formatter{tag: tag, symbol: symbol}
}

func Default() Formatter {
	return New(DefaultLocale, DefaultSymbol)
}

func (f Formatter) Symbol() string {
	return f.symbol
}

// Currency formats an amount with no fraction digits, e.g. ₹17,500.
func (f Formatter) Currency(amount float64) string {
	if !finite(amount) {
		return f.symbol + nonFinite(amount)
	}

	whole := decimal.NewFromFloat(amount).Round(0)
	if whole.IsNegative() {
		return "-" + f.symbol + f.group(whole.Neg())
	}
	return f.symbol + f.group(whole)
}

// Count rounds half up, as RoundHalfUp does, and applies locale grouping.
func (f Formatter) Count(v float64) string {
	if !finite(v) {
		return nonFinite(v)
	}

	rounded := decimal.NewFromFloat(RoundHalfUp(v))
	if rounded.IsNegative() {
		return "-" + f.group(rounded.Neg())
	}
	return f.group(rounded)
}

// RoundHalfUp rounds .5 towards positive infinity: 2.5 -> 3, -2.5 -> -2.
func RoundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

// Percent keeps the shortest decimal representation: 3.5 -> "3.5%", 2 -> "2%".
func (f Formatter) Percent(v float64) string {
	if !finite(v) {
		return nonFinite(v) + "%"
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

// PercentFixed renders a percentage with zero decimals.
func (f Formatter) PercentFixed(v float64) string {
	if !finite(v) {
		return nonFinite(v) + "%"
	}
	return decimal.NewFromFloat(v).StringFixed(0) + "%"
}

// group renders a non-negative whole number with locale grouping. x/text
// only takes machine numbers, so it lays out a stand-in with the same digit
// count (2*10^(n-1) stays n digits wide as a float64) and the exact digits
// are written into that layout.
func (f Formatter) group(whole decimal.Decimal) string {
	digits := whole.String()
	standIn := 2 * math.Pow10(len(digits)-1)
	layout := message.NewPrinter(f.tag).Sprint(number.Decimal(standIn, number.MaxFractionDigits(0)))

	var b strings.Builder
	zero, i := rune(-1), 0
	for _, r := range layout {
		if !unicode.IsDigit(r) || i >= len(digits) {
			b.WriteRune(r)
			continue
		}
		// The stand-in leads with 2; its script's zero is two code points below.
		if zero < 0 {
			zero = r - 2
		}
		b.WriteRune(zero + rune(digits[i]-'0'))
		i++
	}
	return b.String()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func nonFinite(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	default:
		return "-Infinity"
	}
}
