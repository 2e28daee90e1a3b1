/*
Package coin implements exact parsing, arithmetic, and formatting of
game-currency amounts denominated in gold, silver, and copper.

It combines a family of anchored expression grammars for human-written
currency text (such as "1,234g 12s 05c", "923s", or "29475839.99c") with an
[Amount] value type that stores a single signed, arbitrary-precision quantity
of copper, the smallest unit.

# Units

The unit ratios are fixed: 1 silver is 100 copper, and 1 gold is 100 silver,
so 1 gold is 10,000 copper. Gold amounts additionally support single-letter
bulk notation: g multiplies by 1, k by 1,000, m by 1,000,000, and b by
1,000,000,000 gold.

# Representation

An Amount holds one [decimal.Decimal] value in copper; the gold, silver, and
copper display segments are always derived from it, never stored separately.
All arithmetic is performed in the decimal domain, so parsing and computation
never pass through binary floating point and never lose precision.

# Expressions

Each textual shape is described by an [Expression]: an immutable named
grammar paired with a converter from its captures to an exact copper value.
Six expressions are predefined ([ExplicitCopper], [SilverAndCopper],
[SilverOrCopper], [ExplicitOnlyGold], [ExplicitGold], and [GenericGold]).
When no expression is pinned, [Parse] and [MatchString] try ExplicitCopper,
SilverAndCopper, SilverOrCopper, and GenericGold in that order, and the first
structural match wins.

# Operations

Amount provides pure arithmetic methods (Add, Sub, Mul, Div, Mod, Clamp,
rounding to copper or to whole gold) that return a new Amount, and an
explicit Apply family that mutates the receiver in place. Comparisons
operate on the signed copper quantity. Amounts are plain values: sharing an
Amount between goroutines is safe as long as no goroutine uses the Apply
family on it.

# Errors

Parsing and construction surface sentinel errors such as
[ErrMalformedExpression], [ErrUnsafeNumber], and [ErrTypeMismatch];
all failures are reported to the caller, and no operation ever returns a
partially constructed Amount.
*/
package coin
