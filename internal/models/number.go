package models

import (
	"math"
	"strconv"
)

// Number is a loosely parsed numeric field. NaN marks a missing or
// unparseable value and encodes as null.
type Number float64

// NaN returns the missing-value Number.
func NaN() Number {
	return Number(math.NaN())
}

// Valid reports whether n holds a real value.
func (n Number) Valid() bool {
	return !math.IsNaN(float64(n))
}

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, f, 'f', -1, 64), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*n = NaN()
		return nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	*n = Number(f)
	return nil
}
