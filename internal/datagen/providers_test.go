package datagen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviders(t *testing.T) {
	t.Parallel()

	g := NewSeeded(60)
	providers := g.Providers(40, testDay)
	require.Len(t, providers, 40)

	hospitals := 0
	for _, p := range providers {
		assert.Regexp(t, `^\d{6}[A-Z]$`, p.ProviderNumber)
		assert.NotEmpty(t, p.ProviderName)
		assert.NotEmpty(t, p.ProviderType)
		assert.Regexp(t, `^\d{4}$`, p.PostCode)
		assert.True(t, p.IsActive)

		if p.ProviderType == "Hospital" {
			hospitals++
		}
		if p.IsPreferredProvider {
			assert.False(t, p.AgreementStartDate.IsZero(),
				"preferred providers carry an agreement start")
		}
		if !p.AgreementEndDate.IsZero() {
			assert.True(t, p.AgreementEndDate.After(p.AgreementStartDate))
		}
	}
	assert.Greater(t, hospitals, 0, "the mix always includes at least one hospital")
}

func TestUpdateProviderDetails(t *testing.T) {
	t.Parallel()

	g := NewSeeded(61)
	providers := g.Providers(30, testDay)

	for i := range providers {
		before := providers[i]
		g.UpdateProviderDetails(&providers[i], testDay)
		after := providers[i]

		changed := before.Phone != after.Phone ||
			before.Email != after.Email ||
			before.IsPreferredProvider != after.IsPreferredProvider
		assert.True(t, changed)

		assert.Equal(t, before.ProviderNumber, after.ProviderNumber)
		assert.Equal(t, before.ProviderName, after.ProviderName)
	}
}
