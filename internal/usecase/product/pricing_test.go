package product

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/domain"
)

func TestComputeNewPrice(t *testing.T) {
	tests := []struct {
		name      string
		current   float64
		operation string
		operand   float64
		want      float64
	}{
		{"fixed", 100, "fixo", 50, 50},
		{"fixed to zero", 100, "fixo", 0, 0},
		{"increase value", 100, "aumentar-valor", 10, 110},
		{"decrease value", 100, "diminuir-valor", 10, 90},
		{"decrease value to zero", 100, "diminuir-valor", 100, 0},
		{"increase percent", 100, "aumentar-percentualmente", 10, 110},
		{"decrease percent", 100, "diminuir-percentualmente", 10, 90},
		{"decrease full percent", 80, "diminuir-percentualmente", 100, 0},
		{"case insensitive", 100, "Aumentar-Valor", 5, 105},
		{"no float drift", 0.1, "aumentar-valor", 0.2, 0.3},
		{"fractional percent", 19.99, "aumentar-percentualmente", 10, 21.989},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeNewPrice(tt.current, tt.operation, tt.operand)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeNewPrice_InvalidOperation(t *testing.T) {
	_, err := ComputeNewPrice(100, "bogus", 1)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.EqualError(t, err, "invalid operation `bogus`")
}

func TestComputeNewPrice_NegativeResult(t *testing.T) {
	tests := []struct {
		operation string
		operand   float64
	}{
		{"diminuir-valor", 100.01},
		{"diminuir-percentualmente", 150},
	}

	for _, tt := range tests {
		t.Run(tt.operation, func(t *testing.T) {
			_, err := ComputeNewPrice(100, tt.operation, tt.operand)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.EqualError(t, err, "new price cannot be negative")
		})
	}
}

func TestComputeNewStock(t *testing.T) {
	got, err := ComputeNewStock(5, 3)
	require.NoError(t, err)
	assert.Equal(t, 8.0, got)

	got, err = ComputeNewStock(5, -5)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)

	_, err = ComputeNewStock(5, -10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.EqualError(t, err, "new stock cannot be negative")
}

func TestCompute_NonFiniteInputIsRejected(t *testing.T) {
	values := []float64{math.NaN(), math.Inf(1), math.Inf(-1)}

	for _, v := range values {
		assert.NotPanics(t, func() {
			_, err := ComputeNewPrice(100, domain.OperationFixed, v)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)

			_, err = ComputeNewPrice(v, domain.OperationIncreaseValue, 1)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)

			_, err = ComputeNewStock(5, v)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
