package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Round2 rounds an amount to cents for persistence and display. The pricing
// engine itself works on unrounded values; only the rendered documents round.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatEUR formats an amount as a string like "1.234,56 EUR": dot as
// thousands separator, comma as decimal separator.
func FormatEUR(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	cents := int64(math.Round(amount * 100))
	whole := cents / 100
	frac := cents % 100

	s := strconv.FormatInt(whole, 10)
	var b strings.Builder
	b.Grow(len(s) + len(s)/3 + 8)
	if neg {
		b.WriteByte('-')
	}

	rem := len(s) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(s[:rem])
	for i := rem; i < len(s); i += 3 {
		b.WriteByte('.')
		b.WriteString(s[i : i+3])
	}

	b.WriteString(fmt.Sprintf(",%02d EUR", frac))
	return b.String()
}
