package pet

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AabiaAli/Evora/internal/config"
)

func testConfig() config.PetConfig {
	cfg := config.PetConfig{}
	cfg.ApplyDefaults()
	return cfg
}

func TestDefaultPetAndBoost(t *testing.T) {
	repo := NewMemoryRepo(testConfig())
	ctx := context.Background()

	p, err := repo.Get(ctx, "2025-09-04")
	require.NoError(t, err)
	assert.Equal(t, TypeLuna, p.Type)
	assert.Equal(t, 80, p.Happiness)

	p, err = repo.Boost(ctx, "2025-09-04")
	require.NoError(t, err)
	assert.Equal(t, 85, p.Happiness)
}

func TestHappinessDecaysPerDayAway(t *testing.T) {
	repo := NewMemoryRepo(testConfig())
	ctx := context.Background()

	_, err := repo.Get(ctx, "2025-09-04")
	require.NoError(t, err)

	p, err := repo.Get(ctx, "2025-09-07")
	require.NoError(t, err)
	assert.Equal(t, 80-3*3, p.Happiness, "three days away, three days of decay")
	assert.Equal(t, "2025-09-07", p.LastSeenDay)

	// Same day again: no double decay.
	p, err = repo.Get(ctx, "2025-09-07")
	require.NoError(t, err)
	assert.Equal(t, 71, p.Happiness)
}

func TestHappinessClamps(t *testing.T) {
	repo := NewMemoryRepo(testConfig())
	ctx := context.Background()

	_, err := repo.Get(ctx, "2025-01-01")
	require.NoError(t, err)

	p, err := repo.Get(ctx, "2025-12-31")
	require.NoError(t, err)
	assert.Equal(t, 0, p.Happiness, "long absences bottom out at zero")

	for i := 0; i < 25; i++ {
		p, err = repo.Boost(ctx, "2025-12-31")
		require.NoError(t, err)
	}
	assert.Equal(t, 100, p.Happiness, "boosts cap at one hundred")
}

func TestSetTypeResetsHappiness(t *testing.T) {
	repo := NewMemoryRepo(testConfig())
	ctx := context.Background()

	_, err := repo.Boost(ctx, "2025-09-04")
	require.NoError(t, err)

	p, err := repo.SetType(ctx, TypeEmber, "2025-09-04")
	require.NoError(t, err)
	assert.Equal(t, TypeEmber, p.Type)
	assert.Equal(t, "Ember", p.Name)
	assert.Equal(t, 80, p.Happiness)

	_, err = repo.SetType(ctx, "gremlin", "2025-09-04")
	assert.ErrorIs(t, err, ErrUnknownType)
}
