package product

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/domain"
)

func TestRulesValidator_ValidateCreate(t *testing.T) {
	valid := CreateInput{Name: "Lamp", Ean13: "123", Price: 10, Quantity: 1, StockMinimum: 0}

	t.Run("valid", func(t *testing.T) {
		repo := new(MockProductRepository)
		repo.On("ExistsByNameOrEan13", mock.Anything, "Lamp", "123").Return(false, nil)

		assert.NoError(t, NewRulesValidator(repo).ValidateCreate(context.Background(), valid))
		repo.AssertExpectations(t)
	})

	t.Run("blank ean13 skips lookup", func(t *testing.T) {
		repo := new(MockProductRepository)
		in := valid
		in.Ean13 = " "

		err := NewRulesValidator(repo).ValidateCreate(context.Background(), in)

		assert.EqualError(t, err, "attribute `ean13` is empty")
		repo.AssertNotCalled(t, "ExistsByNameOrEan13", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("duplicate reported before negatives", func(t *testing.T) {
		repo := new(MockProductRepository)
		repo.On("ExistsByNameOrEan13", mock.Anything, "Lamp", "123").Return(true, nil)
		in := valid
		in.Price = -1

		err := NewRulesValidator(repo).ValidateCreate(context.Background(), in)

		assert.EqualError(t, err, "a product with the same name or ean13 already exists")
	})

	t.Run("first negative field wins", func(t *testing.T) {
		repo := new(MockProductRepository)
		repo.On("ExistsByNameOrEan13", mock.Anything, "Lamp", "123").Return(false, nil)
		in := valid
		in.Quantity = -1
		in.StockMinimum = -1

		err := NewRulesValidator(repo).ValidateCreate(context.Background(), in)

		assert.EqualError(t, err, "attribute `quantidade` cannot be negative")
	})

	t.Run("repository error unchanged", func(t *testing.T) {
		repo := new(MockProductRepository)
		dbErr := errors.New("boom")
		repo.On("ExistsByNameOrEan13", mock.Anything, "Lamp", "123").Return(false, dbErr)

		err := NewRulesValidator(repo).ValidateCreate(context.Background(), valid)

		assert.Same(t, dbErr, err)
	})
}

func TestRulesValidator_ValidateUpdate(t *testing.T) {
	rules := NewRulesValidator(new(MockProductRepository))
	zero, negative := 0.0, -0.5

	assert.NoError(t, rules.ValidateUpdate(UpdateInput{}))
	assert.NoError(t, rules.ValidateUpdate(UpdateInput{Price: &zero, Quantity: &zero}))
	assert.EqualError(t, rules.ValidateUpdate(UpdateInput{StockMinimum: &negative}),
		"attribute `estoqueMin` cannot be negative")
}

func TestParseHash(t *testing.T) {
	want := uuid.New()

	got, err := ParseHash(want.String())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = ParseHash("1234")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.EqualError(t, err, "invalid hash format")
}

func TestEnsureActive(t *testing.T) {
	assert.NoError(t, EnsureActive(&domain.Product{Active: true}))

	err := EnsureActive(&domain.Product{})
	var stateErr *domain.StateError
	assert.ErrorAs(t, err, &stateErr)
	assert.NotErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOperandChecks(t *testing.T) {
	assert.NoError(t, ValidatePriceOperand(0))
	assert.EqualError(t, ValidatePriceOperand(-1), "attribute `valor` cannot be negative")

	assert.NoError(t, ValidateStockOperand(-1))
	assert.EqualError(t, ValidateStockOperand(0), "attribute `valor` cannot be zero")
}
