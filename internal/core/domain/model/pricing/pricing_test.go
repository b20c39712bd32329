package pricing_test

import (
	"testing"
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cents(t *testing.T, amount int64) kernel.Cents {
	t.Helper()
	c, err := kernel.NewCents(amount)
	require.NoError(t, err)
	return c
}

func TestNewAgreement(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	seller := kernel.NewUUID()
	buyer := kernel.NewUUID()

	a, err := pricing.NewAgreement(
		kernel.NewUUID(), seller, buyer, kernel.NewUUID(), kernel.NewUUID(),
		cents(t, 500), true, now)
	require.NoError(t, err)

	assert.Equal(t, int64(500), a.Price().Amount())
	assert.True(t, a.IsActive())
	assert.Equal(t, now, a.EffectiveFrom())
	assert.False(t, a.IsInternal())

	t.Run("internal when seller equals buyer", func(t *testing.T) {
		internal, internalErr := pricing.NewAgreement(
			kernel.NewUUID(), seller, seller, kernel.NewUUID(), kernel.NewUUID(),
			cents(t, 500), true, now)
		require.NoError(t, internalErr)
		assert.True(t, internal.IsInternal())
	})

	t.Run("zero effective from is rejected", func(t *testing.T) {
		_, zeroErr := pricing.NewAgreement(
			kernel.NewUUID(), seller, buyer, kernel.NewUUID(), kernel.NewUUID(),
			cents(t, 500), true, time.Time{})
		require.Error(t, zeroErr)
	})

	t.Run("unconstructed price is rejected", func(t *testing.T) {
		_, priceErr := pricing.NewAgreement(
			kernel.NewUUID(), seller, buyer, kernel.NewUUID(), kernel.NewUUID(),
			kernel.Cents{}, true, now)
		require.Error(t, priceErr)
	})
}

func TestAgreement_ChangePrice(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	a, err := pricing.NewAgreement(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		cents(t, 500), true, now)
	require.NoError(t, err)

	require.NoError(t, a.ChangePrice(cents(t, 650)))
	assert.Equal(t, int64(650), a.Price().Amount())

	require.Error(t, a.ChangePrice(kernel.Cents{}))
	assert.Equal(t, int64(650), a.Price().Amount())
}

func TestAgreement_Validate(t *testing.T) {
	var a *pricing.Agreement
	require.ErrorIs(t, a.Validate(), pricing.ErrAgreementIsNotConstructed)
	require.ErrorIs(t, (&pricing.Agreement{}).Validate(), pricing.ErrAgreementIsNotConstructed)
}

func TestNewShippingRate(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	r, err := pricing.NewShippingRate(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		cents(t, 800), pricing.UnknownScope, true, now)
	require.NoError(t, err)

	assert.Equal(t, int64(800), r.Price().Amount())
	assert.Equal(t, pricing.Public, r.Scope(), "scope defaults to public")
	assert.True(t, r.IsActive())

	t.Run("private scope is preserved", func(t *testing.T) {
		private, privateErr := pricing.NewShippingRate(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			cents(t, 800), pricing.Private, true, now)
		require.NoError(t, privateErr)
		assert.Equal(t, pricing.Private, private.Scope())
	})

	t.Run("zero agreement id is rejected", func(t *testing.T) {
		_, linkErr := pricing.NewShippingRate(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.UUID{},
			cents(t, 800), pricing.Public, true, now)
		require.Error(t, linkErr)
	})
}

func TestShippingRate_SetActive(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	r, err := pricing.NewShippingRate(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		cents(t, 800), pricing.Public, true, now)
	require.NoError(t, err)

	r.SetActive(false)
	assert.False(t, r.IsActive())
	r.SetActive(true)
	assert.True(t, r.IsActive())
}

func TestScope(t *testing.T) {
	assert.Equal(t, "PUBLIC", pricing.Public.String())
	assert.Equal(t, "PRIVATE", pricing.Private.String())
	assert.Equal(t, "UNKNOWN", pricing.UnknownScope.String())
	require.Error(t, pricing.UnknownScope.Validate())
	require.NoError(t, pricing.Public.Validate())
}
