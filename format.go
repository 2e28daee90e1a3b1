package coin

import (
	"fmt"
	"math/big"
	"strings"
)

// A Formatter renders an amount as text.
type Formatter func(a Amount) string

// A SegmentFormatter renders the sign and the derived display segments of
// an amount as text. The segments are the non-negative magnitudes returned
// by [Amount.Segments].
type SegmentFormatter func(neg bool, gold *big.Int, silver, copper int64) string

// FormatSegments is the default [SegmentFormatter]. It produces the
// canonical form: the gold segment with thousands grouping, the silver and
// copper segments zero-padded to two digits, and a single leading sign,
// for example "-1,234g 56s 78c".
func FormatSegments(neg bool, gold *big.Int, silver, copper int64) string {
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	digits := "0"
	if gold != nil {
		digits = gold.String()
	}
	b.WriteString(groupThousands(digits))
	fmt.Fprintf(&b, "g %02ds %02dc", silver, copper)
	return b.String()
}

// String implements the [fmt.Stringer] interface and returns the canonical
// string form of the amount, produced by [FormatSegments]. Any fractional
// copper is dropped from the display; use [Amount.Decimal] for the exact
// quantity.
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (a Amount) String() string {
	return FormatSegments(a.Segments())
}

// groupThousands inserts commas between groups of three digits, counting
// from the right.
func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	b.Grow(n + (n-1)/3)
	lead := n % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < n; i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
