// Package jsonx contains small JSON decoding helpers shared by the input
// document packages.
package jsonx

import (
	"bytes"
	"fmt"
	"strconv"
)

// Float is a float64 that also accepts quoted numeric strings when
// decoding, since real-world asset and event feeds frequently quote
// their numbers.
type Float float64

// UnmarshalJSON implements json.Unmarshaler.
func (f *Float) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	if b[0] == '"' {
		s, err := strconv.Unquote(string(b))
		if err != nil {
			return fmt.Errorf("invalid numeric string: %s", b)
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid numeric string: %q", s)
		}
		*f = Float(v)
		return nil
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("invalid number: %s", b)
	}
	*f = Float(v)
	return nil
}

// Value returns the wrapped float64, or def when f is nil. Used to apply
// document-level defaults for optional fields.
func (f *Float) Value(def float64) float64 {
	if f == nil {
		return def
	}
	return float64(*f)
}
