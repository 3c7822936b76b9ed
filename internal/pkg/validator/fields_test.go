package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/domain"
)

func TestFields(t *testing.T) {
	tests := []struct {
		name    string
		fields  domain.FieldMap
		schema  domain.Schema
		wantErr string
	}{
		{
			name:   "valid batch stock",
			fields: domain.FieldMap{"hash": "abc", "valor": 2.0},
			schema: domain.BatchStock,
		},
		{
			name:    "first missing in schema order",
			fields:  domain.FieldMap{"valor": 1.0},
			schema:  domain.BatchPrice,
			wantErr: "missing required attribute `hash`",
		},
		{
			name:    "missing wins over not allowed",
			fields:  domain.FieldMap{"extra": 1, "hash": "abc"},
			schema:  domain.BatchStock,
			wantErr: "missing required attribute `valor`",
		},
		{
			name:    "not allowed reported in sorted order",
			fields:  domain.FieldMap{"zeta": 1, "alpha": 2},
			schema:  domain.Updatable,
			wantErr: "attribute `alpha` not allowed",
		},
		{
			name:    "not allowed wins over blank",
			fields:  domain.FieldMap{"descricao": "", "nome": "x"},
			schema:  domain.Updatable,
			wantErr: "attribute `nome` not allowed",
		},
		{
			name:    "blank string",
			fields:  domain.FieldMap{"lativo": "  "},
			schema:  domain.Status,
			wantErr: "attribute `lativo` is empty",
		},
		{
			name:    "null value",
			fields:  domain.FieldMap{"preco": nil},
			schema:  domain.Updatable,
			wantErr: "attribute `preco` is empty",
		},
		{
			name:   "zero and false are not blank",
			fields: domain.FieldMap{"lativo": false},
			schema: domain.Status,
		},
		{
			name:   "empty partial update",
			fields: domain.FieldMap{},
			schema: domain.Updatable,
		},
		{
			name:    "names are case sensitive",
			fields:  domain.FieldMap{"Lativo": true},
			schema:  domain.Status,
			wantErr: "missing required attribute `lativo`",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Fields(tt.fields, tt.schema)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestStruct(t *testing.T) {
	type sample struct {
		Price float64 `json:"preco" validate:"gte=0"`
		Name  string  `json:"nome" validate:"required"`
		Delta float64 `json:"valor" validate:"ne=0"`
	}

	assert.NoError(t, Struct(sample{Price: 0, Name: "x", Delta: 1}))
	assert.EqualError(t, Struct(sample{Price: -1, Name: "x", Delta: 1}), "attribute `preco` cannot be negative")
	assert.EqualError(t, Struct(sample{Name: "", Delta: 1}), "attribute `nome` is empty")
	assert.EqualError(t, Struct(sample{Name: "x"}), "attribute `valor` cannot be zero")
}
