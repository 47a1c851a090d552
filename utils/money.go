package utils

import (
	"math"
	"strconv"
	"strings"
)

// FormatUSD formats a dollar amount as a string like "$1,234.50".
// Uses comma as thousands separator and always prints cents.
func FormatUSD(amount float64) string {
	neg := amount < 0
	cents := int64(math.Round(math.Abs(amount) * 100))

	whole := strconv.FormatInt(cents/100, 10)
	frac := cents % 100

	var b strings.Builder
	b.Grow(len(whole) + len(whole)/3 + 5)
	if neg && cents > 0 {
		b.WriteString("-$")
	} else {
		b.WriteString("$")
	}

	// Insert separators from the left.
	rem := len(whole) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(whole[:rem])
	for i := rem; i < len(whole); i += 3 {
		b.WriteByte(',')
		b.WriteString(whole[i : i+3])
	}

	b.WriteByte('.')
	if frac < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.FormatInt(frac, 10))
	return b.String()
}

