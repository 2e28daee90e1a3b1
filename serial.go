package coin

import (
	"database/sql/driver"

	"github.com/pkg/errors"
)

// text returns the exact, lossless textual form of the amount: the copper
// quantity followed by the copper unit letter, for example "1234.5c".
// Unlike the canonical form produced by [Amount.String], this form keeps
// any fractional copper.
func (a Amount) text() string {
	return a.value.String() + "c"
}

// MarshalText implements the [encoding.TextMarshaler] interface.
// MarshalText always emits the exact explicit-copper form, which
// [UnmarshalText] and [Parse] accept.
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (a Amount) MarshalText() ([]byte, error) {
	return []byte(a.text()), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
// The input may be any string the default expressions accept.
// See also function [Parse].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (a *Amount) UnmarshalText(text []byte) error {
	b, err := Parse(string(text))
	if err != nil {
		return errors.Wrapf(err, "unmarshaling %T", a)
	}
	*a = b
	return nil
}

// MarshalJSON implements the [json.Marshaler] interface.
// MarshalJSON always returns the quoted explicit-copper form.
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (a Amount) MarshalJSON() ([]byte, error) {
	s := a.text()
	text := make([]byte, 0, len(s)+2)
	text = append(text, '"')
	text = append(text, s...)
	text = append(text, '"')
	return text, nil
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// A JSON null leaves the amount unchanged.
// See also function [Parse].
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (a *Amount) UnmarshalJSON(text []byte) error {
	if string(text) == "null" {
		return nil
	}
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		text = text[1 : len(text)-1]
	}
	return a.UnmarshalText(text)
}

// Scan implements the [sql.Scanner] interface.
// Strings and byte slices are parsed with the default expressions;
// integer and float values are interpreted as copper quantities.
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (a *Amount) Scan(value any) error {
	var b Amount
	var err error
	switch value := value.(type) {
	case string:
		b, err = Parse(value)
	case []byte:
		b, err = Parse(string(value))
	case int64:
		b, err = FromCopper(value)
	case float64:
		b, err = FromCopper(value)
	case nil:
		err = errors.Errorf("%T does not support null values", a)
	default:
		err = errors.Wrapf(ErrTypeMismatch, "value of type %T", value)
	}
	if err != nil {
		return errors.Wrapf(err, "converting from %T to %T", value, a)
	}
	*a = b
	return nil
}

// Value implements the [driver.Valuer] interface.
// Value always returns the exact explicit-copper form.
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (a Amount) Value() (driver.Value, error) {
	return a.text(), nil
}
