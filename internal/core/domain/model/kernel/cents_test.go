package kernel_test

import (
	"testing"

	"forwarding/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCents(t *testing.T) {
	t.Run("valid amount", func(t *testing.T) {
		c, err := kernel.NewCents(800)
		require.NoError(t, err)
		assert.Equal(t, int64(800), c.Amount())
		require.NoError(t, c.Validate())
	})

	t.Run("zero amount is valid", func(t *testing.T) {
		c, err := kernel.NewCents(0)
		require.NoError(t, err)
		assert.Equal(t, int64(0), c.Amount())
	})

	t.Run("negative amount is rejected", func(t *testing.T) {
		_, err := kernel.NewCents(-1)
		require.Error(t, err)
	})
}

func TestCents_Validate(t *testing.T) {
	t.Run("zero value fails validation", func(t *testing.T) {
		var c kernel.Cents
		require.Error(t, c.Validate())
	})
}

func TestCents_IsEqual(t *testing.T) {
	a, _ := kernel.NewCents(500)
	b, _ := kernel.NewCents(500)
	c, _ := kernel.NewCents(800)

	equal, err := a.IsEqual(b)
	require.NoError(t, err)
	assert.True(t, equal)

	equal, err = a.IsEqual(c)
	require.NoError(t, err)
	assert.False(t, equal)

	t.Run("unconstructed operand fails", func(t *testing.T) {
		var zero kernel.Cents
		_, err := a.IsEqual(zero)
		require.Error(t, err)
	})
}

func TestCents_IsLessThan(t *testing.T) {
	cost, _ := kernel.NewCents(500)
	price, _ := kernel.NewCents(800)

	less, err := cost.IsLessThan(price)
	require.NoError(t, err)
	assert.True(t, less)

	less, err = price.IsLessThan(cost)
	require.NoError(t, err)
	assert.False(t, less)

	less, err = cost.IsLessThan(cost)
	require.NoError(t, err)
	assert.False(t, less)
}

func TestCents_String(t *testing.T) {
	c, _ := kernel.NewCents(800)
	assert.Equal(t, "800¢", c.String())
}
