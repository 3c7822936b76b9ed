package domain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldMap_Float(t *testing.T) {
	fields := FieldMap{
		"json":    12.5,
		"int":     3,
		"number":  json.Number("7.25"),
		"text":    " 4.5 ",
		"invalid": "abc",
		"null":    nil,
	}

	tests := []struct {
		key     string
		want    float64
		present bool
	}{
		{"json", 12.5, true},
		{"int", 3, true},
		{"number", 7.25, true},
		{"text", 4.5, true},
		{"null", 0, false},
		{"absent", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok, err := fields.Float(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.present, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok, err := fields.Float("invalid")
	assert.True(t, ok)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.EqualError(t, err, "attribute `invalid` must be a number")
}

func TestFieldMap_Float_RejectsNonFinite(t *testing.T) {
	tests := []struct {
		name string
		raw  any
	}{
		{"nan string", "NaN"},
		{"inf string", "Inf"},
		{"negative infinity string", "-Infinity"},
		{"overflow string", "1e400"},
		{"overflow json number", json.Number("1e400")},
		{"nan float", math.NaN()},
		{"inf float", math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok, err := FieldMap{"preco": tt.raw}.Float("preco")

			assert.True(t, ok)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.EqualError(t, err, "attribute `preco` must be a number")
		})
	}
}

func TestFieldMap_Bool(t *testing.T) {
	fields := FieldMap{"a": true, "b": "FALSE", "c": "yes", "d": 1.0}

	v, ok, err := fields.Bool("a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, v)

	v, ok, err = fields.Bool("b")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, v)

	_, _, err = fields.Bool("c")
	assert.EqualError(t, err, "attribute `c` must be true or false")

	_, _, err = fields.Bool("d")
	assert.Error(t, err)
}

func TestFieldMap_String(t *testing.T) {
	fields := FieldMap{"nome": "Lamp", "preco": 1.0}

	v, ok, err := fields.String("nome")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Lamp", v)

	_, _, err = fields.String("preco")
	assert.EqualError(t, err, "attribute `preco` must be a string")

	_, ok, err = fields.String("descricao")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFieldMap_IsBlank(t *testing.T) {
	fields := FieldMap{"empty": "", "spaces": " \t", "null": nil, "zero": 0.0, "no": false, "text": "x"}

	assert.True(t, fields.IsBlank("empty"))
	assert.True(t, fields.IsBlank("spaces"))
	assert.True(t, fields.IsBlank("null"))
	assert.False(t, fields.IsBlank("zero"))
	assert.False(t, fields.IsBlank("no"))
	assert.False(t, fields.IsBlank("text"))
	assert.False(t, fields.IsBlank("absent"))
	assert.True(t, fields.Has("null"))
	assert.False(t, fields.Has("absent"))
}
