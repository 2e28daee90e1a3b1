package coin

import "github.com/pkg/errors"

// Sentinel errors returned by parsing, construction, and arithmetic.
// Failures are wrapped with context; match them with [errors.Is].
var (
	// ErrInvalidExpression indicates that a parse was attempted on nil or
	// otherwise absent input. This is a caller contract violation, not a
	// parse failure.
	ErrInvalidExpression = errors.New("invalid expression")

	// ErrMalformedExpression indicates that no configured expression
	// matched the input.
	ErrMalformedExpression = errors.New("malformed expression")

	// ErrNaNValue indicates a not-a-number segment input.
	ErrNaNValue = errors.New("NaN value")

	// ErrInfiniteValue indicates an infinite segment input.
	ErrInfiniteValue = errors.New("infinite value")

	// ErrUnsafeNumber indicates a float segment outside the exactly
	// representable integer range, or a bounded integer conversion outside
	// its target 64-bit domain.
	ErrUnsafeNumber = errors.New("unsafe number")

	// ErrTypeMismatch indicates a segment input whose dynamic type is not
	// one of the accepted numeric representations.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrDivisionByZero indicates a zero divisor passed to Div or Mod.
	ErrDivisionByZero = errors.New("division by zero")
)
