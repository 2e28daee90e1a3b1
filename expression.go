package coin

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Expression represents a named grammar for one textual shape of a currency
// amount: an anchored, case-insensitive pattern together with a pure
// converter from a successful match's captures to an exact copper value.
// Expressions are immutable and safe for concurrent use by multiple
// goroutines.
type Expression struct {
	name string
	re   *regexp.Regexp
	eval func(m []string) (decimal.Decimal, bool)
}

// Building blocks shared by the expression patterns.
// An integer accepts digit groups of exactly three separated uniformly by
// either commas or underscores, or a plain digit run.
const (
	reSign = `(-?)`
	reInt  = `(\d{1,3}(?:,\d{3})+|\d{1,3}(?:_\d{3})+|\d+)`
	reNote = `([gkmb])`
	reSeg  = `(\d{1,2})`
)

// Predefined expressions. [ExplicitGold] and [ExplicitOnlyGold] are not part
// of the default search order because [GenericGold] structurally subsumes
// them; they are reachable only through [WithExpression].
var (
	// ExplicitCopper matches an optionally fractional copper amount, such
	// as "12c" or "29475839.99c". It is the only expression that allows a
	// fractional copper part and copper magnitudes outside 0-99.
	ExplicitCopper = &Expression{
		name: "ExplicitCopper",
		re:   regexp.MustCompile(`(?i)^` + reSign + reInt + `(?:\.(\d+))?c$`),
		eval: func(m []string) (decimal.Decimal, bool) {
			d, ok := decFromCaptures(m[2], m[3])
			if !ok {
				return decimal.Decimal{}, false
			}
			return applySign(m[1], d), true
		},
	}

	// SilverAndCopper matches a mandatory silver-then-copper pair with one
	// or two digits per segment, such as "12s 34c".
	SilverAndCopper = &Expression{
		name: "SilverAndCopper",
		re:   regexp.MustCompile(`(?i)^` + reSign + reSeg + `s\s*` + reSeg + `c$`),
		eval: func(m []string) (decimal.Decimal, bool) {
			s, ok := decFromSegment(m[2])
			if !ok {
				return decimal.Decimal{}, false
			}
			c, ok := decFromSegment(m[3])
			if !ok {
				return decimal.Decimal{}, false
			}
			return applySign(m[1], s.Mul(silverUnit).Add(c)), true
		},
	}

	// SilverOrCopper matches exactly one of a silver or a copper segment
	// with one or two digits, such as "7s" or "42c".
	SilverOrCopper = &Expression{
		name: "SilverOrCopper",
		re:   regexp.MustCompile(`(?i)^` + reSign + `(?:` + reSeg + `s|` + reSeg + `c)$`),
		eval: func(m []string) (decimal.Decimal, bool) {
			if m[2] != "" {
				s, ok := decFromSegment(m[2])
				if !ok {
					return decimal.Decimal{}, false
				}
				return applySign(m[1], s.Mul(silverUnit)), true
			}
			c, ok := decFromSegment(m[3])
			if !ok {
				return decimal.Decimal{}, false
			}
			return applySign(m[1], c), true
		},
	}

	// ExplicitOnlyGold matches an integral gold amount with a mandatory
	// notation letter and nothing else, such as "15g" or "2k".
	ExplicitOnlyGold = &Expression{
		name: "ExplicitOnlyGold",
		re:   regexp.MustCompile(`(?i)^` + reSign + reInt + reNote + `$`),
		eval: func(m []string) (decimal.Decimal, bool) {
			d, ok := decFromCaptures(m[2], "")
			if !ok {
				return decimal.Decimal{}, false
			}
			mul, ok := notationMultiplier(m[3])
			if !ok {
				return decimal.Decimal{}, false
			}
			return applySign(m[1], d.Mul(mul).Mul(goldUnit)), true
		},
	}

	// ExplicitGold matches an optionally fractional gold amount with a
	// mandatory notation letter, such as "1.5g" or "2.25k".
	ExplicitGold = &Expression{
		name: "ExplicitGold",
		re:   regexp.MustCompile(`(?i)^` + reSign + reInt + `(?:\.(\d+))?` + reNote + `$`),
		eval: func(m []string) (decimal.Decimal, bool) {
			d, ok := decFromCaptures(m[2], m[3])
			if !ok {
				return decimal.Decimal{}, false
			}
			mul, ok := notationMultiplier(m[4])
			if !ok {
				return decimal.Decimal{}, false
			}
			return applySign(m[1], d.Mul(mul).Mul(goldUnit)), true
		},
	}

	// GenericGold matches a gold amount with optional fraction, optional
	// notation, and an optional silver/copper suffix, such as "5g 12s 34c".
	// The suffix alternation is nested inside the fraction-free branch and
	// is reachable only through a notation capture, so a bare or fractional
	// gold part never admits a suffix, and a fractional gold part blocks
	// the suffix even when a notation letter is present.
	GenericGold = &Expression{
		name: "GenericGold",
		re: regexp.MustCompile(`(?i)^` + reSign + reInt +
			`(?:\.(\d+)` + reNote + `?` +
			`|(?:` + reNote + `(?:\s*(?:` + reSeg + `s\s*` + reSeg + `c|` + reSeg + `s|` + reSeg + `c))?)?` +
			`)$`),
		eval: func(m []string) (decimal.Decimal, bool) {
			// Captures: 2 gold, 3 fraction, 4 notation after a fraction,
			// 5 notation, 6/7 silver and copper pair, 8 silver, 9 copper.
			d, ok := decFromCaptures(m[2], m[3])
			if !ok {
				return decimal.Decimal{}, false
			}
			mul := decimal.NewFromInt(1)
			if note := m[4] + m[5]; note != "" {
				mul, ok = notationMultiplier(note)
				if !ok {
					return decimal.Decimal{}, false
				}
			}
			total := d.Mul(mul).Mul(goldUnit)
			if sv := m[6] + m[8]; sv != "" {
				s, ok := decFromSegment(sv)
				if !ok {
					return decimal.Decimal{}, false
				}
				total = total.Add(s.Mul(silverUnit))
			}
			if cv := m[7] + m[9]; cv != "" {
				c, ok := decFromSegment(cv)
				if !ok {
					return decimal.Decimal{}, false
				}
				total = total.Add(c)
			}
			return applySign(m[1], total), true
		},
	}
)

// defaultExpressions is the ordered search used when no expression is
// pinned. The order matters: "12c" structurally satisfies more than one
// grammar and must be classified as explicit copper, not generic gold.
var defaultExpressions = []*Expression{
	ExplicitCopper,
	SilverAndCopper,
	SilverOrCopper,
	GenericGold,
}

// notationMultipliers maps a lowercase notation letter to its gold
// multiplier.
var notationMultipliers = map[byte]decimal.Decimal{
	'g': decimal.NewFromInt(1),
	'k': decimal.NewFromInt(1_000),
	'm': decimal.NewFromInt(1_000_000),
	'b': decimal.NewFromInt(1_000_000_000),
}

// Name returns the name of the expression.
func (x *Expression) Name() string {
	return x.name
}

// String implements the [fmt.Stringer] interface and returns the name of
// the expression.
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (x *Expression) String() string {
	return x.name
}

// Match reports whether the input satisfies this expression's grammar.
// The input is matched as is; leading and trailing whitespace is not
// trimmed. See also function [MatchString].
func (x *Expression) Match(s string) bool {
	return x.re.MatchString(s)
}

// parse attempts the anchored match and converts the captures to an exact
// copper value. A failed match yields no value, not an error.
func (x *Expression) parse(s string) (decimal.Decimal, bool) {
	m := x.re.FindStringSubmatch(s)
	if m == nil {
		return decimal.Decimal{}, false
	}
	return x.eval(m)
}

// parseConfig carries the options accepted by [Parse] and [MatchString].
type parseConfig struct {
	expr   *Expression
	noTrim bool
}

// A ParseOption configures [Parse], [ParseValue], and [MatchString].
type ParseOption func(*parseConfig)

// WithExpression pins matching and parsing to a single expression instead
// of the default ordered search.
func WithExpression(x *Expression) ParseOption {
	return func(cfg *parseConfig) {
		cfg.expr = x
	}
}

// NoTrim suppresses the trimming of leading and trailing whitespace before
// matching.
func NoTrim() ParseOption {
	return func(cfg *parseConfig) {
		cfg.noTrim = true
	}
}

func newParseConfig(opts []ParseOption) parseConfig {
	var cfg parseConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func (cfg parseConfig) order() []*Expression {
	if cfg.expr != nil {
		return []*Expression{cfg.expr}
	}
	return defaultExpressions
}

// Parse converts a currency string to an amount.
// Unless [NoTrim] is given, leading and trailing whitespace is trimmed
// first. The expressions are tried in the default order unless one is
// pinned with [WithExpression]; the first structural match wins.
//
// Parse returns [ErrMalformedExpression] if no expression matches.
func Parse(s string, opts ...ParseOption) (Amount, error) {
	cfg := newParseConfig(opts)
	if !cfg.noTrim {
		s = strings.TrimSpace(s)
	}
	for _, x := range cfg.order() {
		if d, ok := x.parse(s); ok {
			return Amount{value: d}, nil
		}
	}
	return Amount{}, errors.Wrapf(ErrMalformedExpression, "parsing %q", s)
}

// MustParse is like [Parse] but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables holding amounts.
func MustParse(s string, opts ...ParseOption) Amount {
	a, err := Parse(s, opts...)
	if err != nil {
		panic(fmt.Sprintf("MustParse(%q) failed: %v", s, err))
	}
	return a
}

// ParseValue is like [Parse] but accepts loosely typed input.
// It converts strings, byte slices, and values implementing [fmt.Stringer]
// to text before parsing.
//
// ParseValue returns [ErrInvalidExpression] if the input is nil and
// [ErrTypeMismatch] if the input cannot be converted to text.
func ParseValue(v any, opts ...ParseOption) (Amount, error) {
	switch v := v.(type) {
	case nil:
		return Amount{}, errors.Wrap(ErrInvalidExpression, "parsing nil input")
	case string:
		return Parse(v, opts...)
	case []byte:
		return Parse(string(v), opts...)
	case fmt.Stringer:
		return Parse(v.String(), opts...)
	default:
		return Amount{}, errors.Wrapf(ErrTypeMismatch, "parsing value of type %T", v)
	}
}

// MatchString reports whether the input satisfies any expression in the
// default order, or the pinned expression if [WithExpression] is given.
// Unless [NoTrim] is given, leading and trailing whitespace is trimmed
// first. MatchString uses the same ordered search as [Parse].
func MatchString(s string, opts ...ParseOption) bool {
	cfg := newParseConfig(opts)
	if !cfg.noTrim {
		s = strings.TrimSpace(s)
	}
	for _, x := range cfg.order() {
		if x.Match(s) {
			return true
		}
	}
	return false
}

// applySign negates the value if the captured sign is a minus.
func applySign(sign string, d decimal.Decimal) decimal.Decimal {
	if sign == "-" {
		return d.Neg()
	}
	return d
}

// stripSeparators removes digit-group separators from a captured integer.
func stripSeparators(s string) string {
	if !strings.ContainsAny(s, ",_") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == ',' || s[i] == '_' {
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// decFromCaptures converts captured integer and fractional digit runs to an
// exact decimal. The fractional part may be empty.
func decFromCaptures(intPart, fracPart string) (decimal.Decimal, bool) {
	if intPart == "" {
		return decimal.Decimal{}, false
	}
	s := stripSeparators(intPart)
	if fracPart != "" {
		s = s + "." + fracPart
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// decFromSegment converts a captured one or two digit segment to a decimal.
func decFromSegment(s string) (decimal.Decimal, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return decimal.NewFromInt(n), true
}

// notationMultiplier returns the gold multiplier for a captured notation
// letter, matching case-insensitively.
func notationMultiplier(note string) (decimal.Decimal, bool) {
	if len(note) != 1 {
		return decimal.Decimal{}, false
	}
	mul, ok := notationMultipliers[note[0]|0x20]
	return mul, ok
}
