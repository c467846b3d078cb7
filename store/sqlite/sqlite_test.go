package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proaptus/pricing-engine/pricing"
	"github.com/proaptus/pricing-engine/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err, "failed to create store")
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleConfig() pricing.Inputs {
	return pricing.Inputs{
		ClientRate:          1000,
		SoldDays:            50,
		AccountManagerParty: "RPG",
		RoleWeights:         map[string]float64{"Development": 1.0, "QA": 0.8},
		Deliverables: []pricing.Deliverable{
			{ID: "d1", Name: "Discovery", Owner: "RPG", Role: "Development", Days: 5},
			{ID: "d2", Name: "Build", Owner: "Proaptus", Role: "Development", Days: 10,
				AcceptanceCriteria: "Deployed to staging"},
		},
	}
}

func TestStore_SaveAndGetRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.SaveProject(ctx, sqlite.Project{
		ID:     "proj-1",
		Name:   "Acme rollout",
		Config: sampleConfig(),
	})
	require.NoError(t, err)

	got, err := store.GetProject(ctx, "proj-1")
	require.NoError(t, err)

	assert.Equal(t, "Acme rollout", got.Name)
	assert.Equal(t, sampleConfig(), got.Config, "config should round-trip unchanged")
	assert.False(t, got.CreatedAt.IsZero())

	// A reloaded config recomputes to the same split.
	m := pricing.ComputeModel(got.Config)
	assert.True(t, m.TotalRevenue.Equal(pricing.ComputeModel(sampleConfig()).TotalRevenue))
}

func TestStore_SaveExistingUpdates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := sqlite.Project{ID: "proj-1", Name: "Draft", Config: sampleConfig()}
	require.NoError(t, store.SaveProject(ctx, first))

	updated := sampleConfig()
	updated.SoldDays = 60
	require.NoError(t, store.SaveProject(ctx, sqlite.Project{
		ID: "proj-1", Name: "Final", Config: updated,
	}))

	got, err := store.GetProject(ctx, "proj-1")
	require.NoError(t, err)
	assert.Equal(t, "Final", got.Name)
	assert.Equal(t, 60.0, got.Config.SoldDays)

	all, err := store.ListProjects(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1, "update must not create a second row")
}

func TestStore_GetMissingProject(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetProject(context.Background(), "nope")
	assert.ErrorIs(t, err, sqlite.ErrProjectNotFound)
}

func TestStore_ListProjects(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.SaveProject(ctx, sqlite.Project{
			ID: id, Name: "Project " + id, Config: sampleConfig(),
		}))
	}

	all, err := store.ListProjects(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestStore_DeleteProject(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveProject(ctx, sqlite.Project{
		ID: "proj-1", Name: "Doomed", Config: sampleConfig(),
	}))

	require.NoError(t, store.DeleteProject(ctx, "proj-1"))

	_, err := store.GetProject(ctx, "proj-1")
	assert.ErrorIs(t, err, sqlite.ErrProjectNotFound)

	assert.ErrorIs(t, store.DeleteProject(ctx, "proj-1"), sqlite.ErrProjectNotFound)
}

func TestStore_Reset(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveProject(ctx, sqlite.Project{
		ID: "proj-1", Name: "P", Config: sampleConfig(),
	}))
	require.NoError(t, store.Reset(ctx))

	all, err := store.ListProjects(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
