package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// FieldMap is an inbound JSON object keyed by wire field names.
// Accessors report presence separately from the value so that a zero
// value is never mistaken for an absent field.
type FieldMap map[string]any

// Has reports whether the field is present, even with a null value
func (f FieldMap) Has(name string) bool {
	_, ok := f[name]
	return ok
}

// String returns a string field
func (f FieldMap) String(name string) (string, bool, error) {
	raw, ok := f[name]
	if !ok || raw == nil {
		return "", false, nil
	}
	s, isString := raw.(string)
	if !isString {
		return "", true, NewValidationError("attribute `%s` must be a string", name)
	}
	return s, true, nil
}

// Float returns a numeric field. JSON numbers and numeric strings are accepted;
// NaN and infinities are not numbers here.
func (f FieldMap) Float(name string) (float64, bool, error) {
	raw, ok := f[name]
	if !ok || raw == nil {
		return 0, false, nil
	}

	var n float64
	var err error
	switch v := raw.(type) {
	case float64:
		n = v
	case float32:
		n = float64(v)
	case int:
		n = float64(v)
	case int64:
		n = float64(v)
	case json.Number:
		n, err = v.Float64()
	case string:
		n, err = strconv.ParseFloat(strings.TrimSpace(v), 64)
	default:
		err = ErrInvalidInput
	}

	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, true, NewValidationError("attribute `%s` must be a number", name)
	}
	return n, true, nil
}

// Bool returns a boolean field. The strings "true" and "false" are accepted in any case.
func (f FieldMap) Bool(name string) (bool, bool, error) {
	raw, ok := f[name]
	if !ok || raw == nil {
		return false, false, nil
	}

	switch v := raw.(type) {
	case bool:
		return v, true, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true":
			return true, true, nil
		case "false":
			return false, true, nil
		}
	}
	return false, true, NewValidationError("attribute `%s` must be true or false", name)
}

// IsBlank reports whether a present value carries nothing: null or a whitespace-only string
func (f FieldMap) IsBlank(name string) bool {
	raw, ok := f[name]
	if !ok {
		return false
	}
	if raw == nil {
		return true
	}
	if s, isString := raw.(string); isString {
		return strings.TrimSpace(s) == ""
	}
	return false
}
