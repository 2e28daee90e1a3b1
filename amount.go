package coin

import (
	"math"
	"math/big"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Unit ratios of the currency system.
// Copper is the smallest unit and the canonical storage unit.
const (
	// CopperPerSilver is the number of copper in one silver.
	CopperPerSilver = 100
	// CopperPerGold is the number of copper in one gold.
	CopperPerGold = 10_000
)

// maxSafeFloat is the largest float64 magnitude whose integers are all
// exactly representable (2^53 - 1). Float inputs beyond it are rejected
// as unsafe.
const maxSafeFloat = float64(1<<53 - 1)

var (
	silverUnit = decimal.NewFromInt(CopperPerSilver)
	goldUnit   = decimal.NewFromInt(CopperPerGold)
)

// Amount represents an exact currency amount as a single signed,
// arbitrary-precision quantity of copper, which may be fractional.
// The gold, silver, and copper display segments are always derived from
// this quantity and are never stored independently.
// The zero value of Amount is a zero amount and is ready to use.
//
// Amounts are plain values: methods with a value receiver never modify the
// receiver, and sharing an Amount between goroutines is safe as long as no
// goroutine calls the Apply family on it. Concurrent Apply calls against
// the same Amount are a data race and must be serialized by the caller.
type Amount struct {
	value decimal.Decimal // copper quantity
}

// New returns an amount holding the given copper quantity.
// The decimal primitive is self-validated, so no range checks are applied.
// See also constructor [FromCopper].
func New(copper decimal.Decimal) Amount {
	return Amount{value: copper}
}

// FromCopper converts a raw copper quantity to an amount.
// The input may be an [Amount], a [decimal.Decimal], a [*big.Int], any Go
// integer kind, or a float.
//
// FromCopper returns an error if:
//   - the input is a NaN or infinite float ([ErrNaNValue], [ErrInfiniteValue]);
//   - the input is a float outside the exactly representable integer range
//     ([ErrUnsafeNumber]); arbitrary-precision and big-integer inputs are
//     exempt from this check;
//   - the dynamic type of the input is not an accepted numeric
//     representation ([ErrTypeMismatch]).
func FromCopper(v any) (Amount, error) {
	d, err := toDecimal(v)
	if err != nil {
		return Amount{}, errors.Wrap(err, "converting copper total")
	}
	return Amount{value: d}, nil
}

// Parts carries the optional gold, silver, and copper segments accepted by
// [FromParts]. A nil field contributes nothing to the total.
type Parts struct {
	Gold   any
	Silver any
	Copper any
}

// FromParts converts gold, silver, and copper segments to an amount through
// the copper total. Missing segments default to a zero contribution, and an
// empty Parts yields a zero amount without error. Segment values are not
// range-checked: a silver segment of 150 folds upward into one gold and
// fifty silver, because the amount stores only the copper total.
//
// Each present segment is validated as in [FromCopper].
func FromParts(p Parts) (Amount, error) {
	var total decimal.Decimal
	if p.Gold != nil {
		d, err := toDecimal(p.Gold)
		if err != nil {
			return Amount{}, errors.Wrap(err, "converting gold segment")
		}
		total = total.Add(d.Mul(goldUnit))
	}
	if p.Silver != nil {
		d, err := toDecimal(p.Silver)
		if err != nil {
			return Amount{}, errors.Wrap(err, "converting silver segment")
		}
		total = total.Add(d.Mul(silverUnit))
	}
	if p.Copper != nil {
		d, err := toDecimal(p.Copper)
		if err != nil {
			return Amount{}, errors.Wrap(err, "converting copper segment")
		}
		total = total.Add(d)
	}
	return Amount{value: total}, nil
}

// toDecimal converts an accepted numeric representation to its exact
// decimal value, interpreted as a copper quantity.
func toDecimal(v any) (decimal.Decimal, error) {
	switch v := v.(type) {
	case Amount:
		return v.value, nil
	case decimal.Decimal:
		return v, nil
	case *big.Int:
		if v == nil {
			return decimal.Decimal{}, errors.Wrap(ErrTypeMismatch, "nil big integer")
		}
		return decimal.NewFromBigInt(v, 0), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int8:
		return decimal.NewFromInt(int64(v)), nil
	case int16:
		return decimal.NewFromInt(int64(v)), nil
	case int32:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case uint:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(v)), 0), nil
	case uint8:
		return decimal.NewFromInt(int64(v)), nil
	case uint16:
		return decimal.NewFromInt(int64(v)), nil
	case uint32:
		return decimal.NewFromInt(int64(v)), nil
	case uint64:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0), nil
	case float32:
		return floatToDecimal(float64(v))
	case float64:
		return floatToDecimal(v)
	default:
		return decimal.Decimal{}, errors.Wrapf(ErrTypeMismatch, "value of type %T", v)
	}
}

// floatToDecimal validates and converts a float input.
func floatToDecimal(f float64) (decimal.Decimal, error) {
	switch {
	case math.IsNaN(f):
		return decimal.Decimal{}, ErrNaNValue
	case math.IsInf(f, 0):
		return decimal.Decimal{}, ErrInfiniteValue
	case math.Abs(f) > maxSafeFloat:
		return decimal.Decimal{}, errors.Wrapf(ErrUnsafeNumber, "float %v", f)
	}
	return decimal.NewFromFloat(f), nil
}

// Decimal returns the copper quantity of the amount.
func (a Amount) Decimal() decimal.Decimal {
	return a.value
}

// Segments returns the sign and the derived gold, silver, and copper
// display segments of the amount. The segments are non-negative magnitudes:
// gold is floor(|a| / 10000), silver is floor((|a| mod 10000) / 100), and
// copper is floor(|a| mod 100). Silver and copper are always in the range
// 0 through 99 regardless of the sign or magnitude of the amount.
func (a Amount) Segments() (neg bool, gold *big.Int, silver, copper int64) {
	neg = a.value.IsNegative()
	mag := a.value.Abs().Truncate(0)
	g, r := mag.QuoRem(goldUnit, 0)
	s, c := r.QuoRem(silverUnit, 0)
	return neg, g.BigInt(), s.IntPart(), c.IntPart()
}

// Gold returns the derived gold segment of the amount as a non-negative
// magnitude. See also method [Amount.Segments].
func (a Amount) Gold() *big.Int {
	_, g, _, _ := a.Segments()
	return g
}

// Silver returns the derived silver segment of the amount, always in the
// range 0 through 99. See also method [Amount.Segments].
func (a Amount) Silver() int64 {
	_, _, s, _ := a.Segments()
	return s
}

// Copper returns the derived copper segment of the amount, always in the
// range 0 through 99. The sub-copper fraction, if any, is dropped.
// See also method [Amount.Segments].
func (a Amount) Copper() int64 {
	_, _, _, c := a.Segments()
	return c
}

// Sign returns:
//
//	-1 if a < 0
//	 0 if a = 0
//	+1 if a > 0
func (a Amount) Sign() int {
	return a.value.Sign()
}

// IsZero returns:
//
//	true  if a = 0
//	false otherwise
func (a Amount) IsZero() bool {
	return a.value.IsZero()
}

// IsNegative returns:
//
//	true  if a < 0
//	false otherwise
func (a Amount) IsNegative() bool {
	return a.value.IsNegative()
}

// IsPositive returns:
//
//	true  if a > 0
//	false otherwise
func (a Amount) IsPositive() bool {
	return a.value.IsPositive()
}

// IsInt returns true if the amount has no fractional copper.
func (a Amount) IsInt() bool {
	return a.value.IsInteger()
}

// Neg returns an amount with the opposite sign.
func (a Amount) Neg() Amount {
	return Amount{value: a.value.Neg()}
}

// Abs returns the absolute value of the amount.
func (a Amount) Abs() Amount {
	return Amount{value: a.value.Abs()}
}

// Add returns the sum of amount a and value v.
// The value may be another [Amount] or any numeric representation accepted
// by [FromCopper], interpreted as a copper quantity.
//
// Add returns an error if the value cannot be converted.
func (a Amount) Add(v any) (Amount, error) {
	d, err := toDecimal(v)
	if err != nil {
		return Amount{}, errors.Wrapf(err, "computing [%v + %v]", a, v)
	}
	return Amount{value: a.value.Add(d)}, nil
}

// Sub returns the difference between amount a and value v.
// The value is interpreted as in [Amount.Add].
//
// Sub returns an error if the value cannot be converted.
func (a Amount) Sub(v any) (Amount, error) {
	d, err := toDecimal(v)
	if err != nil {
		return Amount{}, errors.Wrapf(err, "computing [%v - %v]", a, v)
	}
	return Amount{value: a.value.Sub(d)}, nil
}

// Mul returns the product of amount a and factor v.
// The value is interpreted as in [Amount.Add].
//
// Mul returns an error if the value cannot be converted.
func (a Amount) Mul(v any) (Amount, error) {
	d, err := toDecimal(v)
	if err != nil {
		return Amount{}, errors.Wrapf(err, "computing [%v * %v]", a, v)
	}
	return Amount{value: a.value.Mul(d)}, nil
}

// Div returns the quotient of amount a and divisor v, rounded to
// [decimal.DivisionPrecision] fractional digits when the division does not
// terminate. The value is interpreted as in [Amount.Add].
//
// Div returns an error if the value cannot be converted or the divisor
// is zero ([ErrDivisionByZero]).
func (a Amount) Div(v any) (Amount, error) {
	d, err := toDecimal(v)
	if err != nil {
		return Amount{}, errors.Wrapf(err, "computing [%v / %v]", a, v)
	}
	if d.IsZero() {
		return Amount{}, errors.Wrapf(ErrDivisionByZero, "computing [%v / %v]", a, v)
	}
	return Amount{value: a.value.Div(d)}, nil
}

// Mod returns the remainder of dividing amount a by divisor v.
// The sign of the result follows the sign of a.
// The value is interpreted as in [Amount.Add].
//
// Mod returns an error if the value cannot be converted or the divisor
// is zero ([ErrDivisionByZero]).
func (a Amount) Mod(v any) (Amount, error) {
	d, err := toDecimal(v)
	if err != nil {
		return Amount{}, errors.Wrapf(err, "computing [%v mod %v]", a, v)
	}
	if d.IsZero() {
		return Amount{}, errors.Wrapf(ErrDivisionByZero, "computing [%v mod %v]", a, v)
	}
	return Amount{value: a.value.Mod(d)}, nil
}

// Clamp returns:
//
//	min if a < min
//	max if a > max
//	  a otherwise
//
// The bounds are interpreted as in [Amount.Add].
//
// Clamp returns an error if a bound cannot be converted or min is greater
// than max.
func (a Amount) Clamp(min, max any) (Amount, error) {
	lo, err := toDecimal(min)
	if err != nil {
		return Amount{}, errors.Wrapf(err, "clamping %v", a)
	}
	hi, err := toDecimal(max)
	if err != nil {
		return Amount{}, errors.Wrapf(err, "clamping %v", a)
	}
	if lo.GreaterThan(hi) {
		return Amount{}, errors.Errorf("clamping %v: invalid range", a)
	}
	switch {
	case a.value.LessThan(lo):
		return Amount{value: lo}, nil
	case a.value.GreaterThan(hi):
		return Amount{value: hi}, nil
	}
	return a, nil
}

// Round returns the amount rounded to a whole number of copper using
// rounding half away from zero.
// See also method [Amount.RoundToGold].
func (a Amount) Round() Amount {
	return Amount{value: a.value.Round(0)}
}

// Floor returns the amount rounded down to a whole number of copper using
// rounding toward negative infinity.
// See also method [Amount.FloorToGold].
func (a Amount) Floor() Amount {
	return Amount{value: a.value.Floor()}
}

// Ceil returns the amount rounded up to a whole number of copper using
// rounding toward positive infinity.
// See also method [Amount.CeilToGold].
func (a Amount) Ceil() Amount {
	return Amount{value: a.value.Ceil()}
}

// Trunc returns the amount truncated to a whole number of copper using
// rounding toward zero.
// See also method [Amount.TruncToGold].
func (a Amount) Trunc() Amount {
	return Amount{value: a.value.Truncate(0)}
}

// RoundToGold returns the amount rounded to a whole number of gold using
// rounding half away from zero.
// See also method [Amount.Round].
func (a Amount) RoundToGold() Amount {
	return Amount{value: a.value.DivRound(goldUnit, 0).Mul(goldUnit)}
}

// FloorToGold returns the amount rounded down to a whole number of gold
// using rounding toward negative infinity.
// See also method [Amount.Floor].
func (a Amount) FloorToGold() Amount {
	q, r := a.value.QuoRem(goldUnit, 0)
	if r.IsNegative() {
		q = q.Sub(decimal.NewFromInt(1))
	}
	return Amount{value: q.Mul(goldUnit)}
}

// CeilToGold returns the amount rounded up to a whole number of gold using
// rounding toward positive infinity.
// See also method [Amount.Ceil].
func (a Amount) CeilToGold() Amount {
	q, r := a.value.QuoRem(goldUnit, 0)
	if r.IsPositive() {
		q = q.Add(decimal.NewFromInt(1))
	}
	return Amount{value: q.Mul(goldUnit)}
}

// TruncToGold returns the amount truncated to a whole number of gold using
// rounding toward zero.
// See also method [Amount.Trunc].
func (a Amount) TruncToGold() Amount {
	q, _ := a.value.QuoRem(goldUnit, 0)
	return Amount{value: q.Mul(goldUnit)}
}

// Min returns the smaller of amounts a and b.
func (a Amount) Min(b Amount) Amount {
	if a.value.LessThanOrEqual(b.value) {
		return a
	}
	return b
}

// Max returns the larger of amounts a and b.
func (a Amount) Max(b Amount) Amount {
	if a.value.GreaterThanOrEqual(b.value) {
		return a
	}
	return b
}

// Cmp compares the copper quantities of amounts and returns:
//
//	-1 if a < b
//	 0 if a = b
//	+1 if a > b
func (a Amount) Cmp(b Amount) int {
	return a.value.Cmp(b.value)
}

// Equal returns true if the amounts hold the same copper quantity.
func (a Amount) Equal(b Amount) bool {
	return a.value.Equal(b.value)
}

// LessThan returns true if a < b.
func (a Amount) LessThan(b Amount) bool {
	return a.value.LessThan(b.value)
}

// LessThanOrEqual returns true if a <= b.
func (a Amount) LessThanOrEqual(b Amount) bool {
	return a.value.LessThanOrEqual(b.value)
}

// GreaterThan returns true if a > b.
func (a Amount) GreaterThan(b Amount) bool {
	return a.value.GreaterThan(b.value)
}

// GreaterThanOrEqual returns true if a >= b.
func (a Amount) GreaterThanOrEqual(b Amount) bool {
	return a.value.GreaterThanOrEqual(b.value)
}

// Sum returns the sum of the given amounts.
// Sum is equivalent to folding [Amount.Add] over the amounts.
func Sum(first Amount, rest ...Amount) Amount {
	total := first.value
	for _, a := range rest {
		total = total.Add(a.value)
	}
	return Amount{value: total}
}

// BigInt returns the copper quantity as a big integer, truncating any
// fractional copper toward zero.
// See also methods [Amount.Int64] and [Amount.Uint64].
func (a Amount) BigInt() *big.Int {
	return a.value.Truncate(0).BigInt()
}

// Int64 returns the truncated copper quantity validated against the signed
// 64-bit domain.
//
// Int64 returns [ErrUnsafeNumber] if the truncated quantity is outside
// the range -2^63 through 2^63-1.
func (a Amount) Int64() (int64, error) {
	b := a.BigInt()
	if !b.IsInt64() {
		return 0, errors.Wrapf(ErrUnsafeNumber, "converting %v to int64", a)
	}
	return b.Int64(), nil
}

// Uint64 returns the truncated copper quantity validated against the
// unsigned 64-bit domain.
//
// Uint64 returns [ErrUnsafeNumber] if the truncated quantity is outside
// the range 0 through 2^64-1.
func (a Amount) Uint64() (uint64, error) {
	b := a.BigInt()
	if !b.IsUint64() {
		return 0, errors.Wrapf(ErrUnsafeNumber, "converting %v to uint64", a)
	}
	return b.Uint64(), nil
}

// ApplyAdd adds value v to the amount in place.
// See also method [Amount.Add].
func (a *Amount) ApplyAdd(v any) error {
	b, err := a.Add(v)
	if err != nil {
		return err
	}
	*a = b
	return nil
}

// ApplySub subtracts value v from the amount in place.
// See also method [Amount.Sub].
func (a *Amount) ApplySub(v any) error {
	b, err := a.Sub(v)
	if err != nil {
		return err
	}
	*a = b
	return nil
}

// ApplyMul multiplies the amount by factor v in place.
// See also method [Amount.Mul].
func (a *Amount) ApplyMul(v any) error {
	b, err := a.Mul(v)
	if err != nil {
		return err
	}
	*a = b
	return nil
}

// ApplyDiv divides the amount by divisor v in place.
// See also method [Amount.Div].
func (a *Amount) ApplyDiv(v any) error {
	b, err := a.Div(v)
	if err != nil {
		return err
	}
	*a = b
	return nil
}

// ApplyMod replaces the amount with the remainder of dividing it by
// divisor v. See also method [Amount.Mod].
func (a *Amount) ApplyMod(v any) error {
	b, err := a.Mod(v)
	if err != nil {
		return err
	}
	*a = b
	return nil
}

// ApplyClamp clamps the amount to the given bounds in place.
// See also method [Amount.Clamp].
func (a *Amount) ApplyClamp(min, max any) error {
	b, err := a.Clamp(min, max)
	if err != nil {
		return err
	}
	*a = b
	return nil
}

// ApplyNeg negates the amount in place.
func (a *Amount) ApplyNeg() {
	*a = a.Neg()
}

// ApplyAbs replaces the amount with its absolute value.
func (a *Amount) ApplyAbs() {
	*a = a.Abs()
}

// ApplyRound rounds the amount to a whole number of copper in place.
func (a *Amount) ApplyRound() {
	*a = a.Round()
}

// ApplyFloor rounds the amount down to a whole number of copper in place.
func (a *Amount) ApplyFloor() {
	*a = a.Floor()
}

// ApplyCeil rounds the amount up to a whole number of copper in place.
func (a *Amount) ApplyCeil() {
	*a = a.Ceil()
}

// ApplyTrunc truncates the amount to a whole number of copper in place.
func (a *Amount) ApplyTrunc() {
	*a = a.Trunc()
}

// ApplyRoundToGold rounds the amount to a whole number of gold in place.
func (a *Amount) ApplyRoundToGold() {
	*a = a.RoundToGold()
}

// ApplyFloorToGold rounds the amount down to a whole number of gold in place.
func (a *Amount) ApplyFloorToGold() {
	*a = a.FloorToGold()
}

// ApplyCeilToGold rounds the amount up to a whole number of gold in place.
func (a *Amount) ApplyCeilToGold() {
	*a = a.CeilToGold()
}

// ApplyTruncToGold truncates the amount to a whole number of gold in place.
func (a *Amount) ApplyTruncToGold() {
	*a = a.TruncToGold()
}
