package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractRun(id string) *domain.Run {
	return &domain.Run{
		ID:        id,
		Algorithm: domain.AlgorithmBubble,
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Steps: []domain.Step{
			{Array: domain.NewArray(2, 1), Comparisons: 1, Operation: "Comparing 2 and 1"},
			{
				Table:       domain.Table{{{Value: domain.IntPtr(3), State: domain.CellOptimal}, {State: domain.CellDefault}}},
				Comparisons: 1,
				Swaps:       1,
				Operation:   "done",
			},
		},
	}
}

// RunRunStoreContract runs a suite of tests to verify that a RunStore implementation
// adheres to the defined interface contract.
func RunRunStoreContract(t *testing.T, store RunStore) {
	ctx := context.Background()
	runID := "contract-test-run-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		run := contractRun(runID)
		require.NoError(t, store.Save(ctx, run), "Save should not return error")

		loaded, err := store.Load(ctx, runID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, run.ID, loaded.ID)
		assert.Equal(t, run.Algorithm, loaded.Algorithm)
		assert.True(t, run.CreatedAt.Equal(loaded.CreatedAt))
		assert.Equal(t, run.Steps, loaded.Steps)
	})

	t.Run("Load Returns Independent Copy", func(t *testing.T) {
		run := contractRun(runID)
		require.NoError(t, store.Save(ctx, run))
		run.Steps[0].Array[0].Value = 999

		loaded, err := store.Load(ctx, runID)
		require.NoError(t, err)
		assert.Equal(t, 2, loaded.Steps[0].Array[0].Value)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, contractRun(runID)))
		require.NoError(t, store.Delete(ctx, runID), "Delete should not return error")

		_, err := store.Load(ctx, runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound, "Load after Delete should return ErrRunNotFound")
		assert.NoError(t, store.Delete(ctx, runID), "Deleting twice is not an error")
	})

	t.Run("List", func(t *testing.T) {
		id1, id2 := runID+"-1", runID+"-2"
		_ = store.Save(ctx, contractRun(id1))
		_ = store.Save(ctx, contractRun(id2))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}

// RunSettingsStoreContract verifies the SettingsStore contract.
func RunSettingsStoreContract(t *testing.T, store SettingsStore) {
	ctx := context.Background()

	t.Run("Missing Key", func(t *testing.T) {
		_, err := store.Get(ctx, "contract-missing")
		assert.ErrorIs(t, err, domain.ErrSettingNotFound)
	})

	t.Run("Set Get Overwrite", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, SettingAPIKey, "sk-one"))
		v, err := store.Get(ctx, SettingAPIKey)
		require.NoError(t, err)
		assert.Equal(t, "sk-one", v)

		require.NoError(t, store.Set(ctx, SettingAPIKey, "sk-two"))
		v, err = store.Get(ctx, SettingAPIKey)
		require.NoError(t, err)
		assert.Equal(t, "sk-two", v)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "contract-delete", "x"))
		require.NoError(t, store.Delete(ctx, "contract-delete"))
		_, err := store.Get(ctx, "contract-delete")
		assert.ErrorIs(t, err, domain.ErrSettingNotFound)
	})
}
