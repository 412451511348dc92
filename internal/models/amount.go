package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Amount is a monetary or numeric field of the persisted document.
//
// Decoding is lenient: numbers and numeric strings are accepted as-is, while
// null, booleans, empty or non-numeric strings decode as 0. Non-finite values
// never survive a decode or an encode.
type Amount float64

// Float64 returns the amount as a float64, mapping non-finite values to 0.
func (a Amount) Float64() float64 {
	f := float64(a)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// MarshalJSON encodes the amount as a plain JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(a.Float64(), 'f', -1, 64)), nil
}

// UnmarshalJSON decodes numbers, numeric strings and null.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch x := v.(type) {
	case float64:
		*a = Amount(x)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			*a = 0
			return nil
		}
		*a = Amount(f)
	default:
		*a = 0
	}
	*a = Amount(a.Float64())
	return nil
}
