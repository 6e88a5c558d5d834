// Package money handles pt-BR monetary text such as "1.234,56".
//
// Values stay as text in extracted rows; they are parsed into decimals only
// when summed or reformatted.
package money

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	strictRe = regexp.MustCompile(`^\d{1,3}(?:\.\d{3})*,\d{2}$`)
	anyRe    = regexp.MustCompile(`\d{1,3}(?:\.\d{3})*,\d{2}`)
)

// IsMonetary reports whether s is exactly one monetary value.
func IsMonetary(s string) bool {
	return strictRe.MatchString(s)
}

// StripAll replaces every monetary substring of s with a space.
func StripAll(s string) string {
	return anyRe.ReplaceAllString(s, " ")
}

// Parse converts "1.234,56" to 1234.56.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("parsing amount: empty")
	}
	plain := strings.Replace(strings.ReplaceAll(s, ".", ""), ",", ".", 1)
	d, err := decimal.NewFromString(plain)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return d, nil
}

// Amount is Parse with zero for empty or malformed text.
func Amount(s string) decimal.Decimal {
	d, err := Parse(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Format renders d with dot thousands and comma decimals: "1.234,56".
func Format(d decimal.Decimal) string {
	sign, intPart, frac := split(d)
	var b strings.Builder
	b.WriteString(sign)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(frac)
	return b.String()
}

// FormatPlain renders d without grouping: "1234,56". Used for clipboard text.
func FormatPlain(d decimal.Decimal) string {
	sign, intPart, frac := split(d)
	return sign + intPart + "," + frac
}

func split(d decimal.Decimal) (sign, intPart, frac string) {
	s := d.StringFixed(2)
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ = strings.Cut(s, ".")
	return sign, intPart, frac
}
