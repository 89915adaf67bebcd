package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simplici0/gpcalc/internal/db"
	"github.com/Simplici0/gpcalc/internal/migrations"
	"github.com/Simplici0/gpcalc/internal/pricing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	conn, err := db.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, migrations.Up(conn, ""))

	store := NewStore(conn)
	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return store
}

func compute(t *testing.T, in pricing.Input) pricing.Result {
	t.Helper()
	res, err := pricing.Compute(in)
	require.NoError(t, err)
	return res
}

func TestStore_AddAndListNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	first, err := store.Add(ctx, "s1", compute(t, pricing.SpiritsInput{Product: "Gin", SizeCl: 70, Cost: 20, TargetGP: 70}))
	require.NoError(t, err)
	second, err := store.Add(ctx, "s1", compute(t, pricing.SoftDrinksInput{Product: "Cola", CaseSize: 24, CaseCost: 12, TargetGP: 70}))
	require.NoError(t, err)
	_, err = store.Add(ctx, "s2", compute(t, pricing.WineInput{Cost: 5, TargetGP: 65}))
	require.NoError(t, err)

	entries, err := store.List(ctx, "s1", "")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, second.ID, entries[0].ID)
	assert.Equal(t, first.ID, entries[1].ID)

	assert.Equal(t, pricing.FamilySpirits, entries[1].Family)
	assert.Equal(t, "Gin", entries[1].Product)
	assert.Equal(t, first.CreatedAt, entries[1].CreatedAt)
	sale, ok := entries[1].Details.Get("Recommended 25ml")
	require.True(t, ok)
	assert.Equal(t, "£2.90", sale)
}

func TestStore_ListFiltersByProductOrFamily(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.Add(ctx, "s1", compute(t, pricing.SpiritsInput{Product: "London Gin", SizeCl: 70, Cost: 20, TargetGP: 70}))
	require.NoError(t, err)
	_, err = store.Add(ctx, "s1", compute(t, pricing.WineInput{Product: "Rioja", Cost: 5, TargetGP: 65}))
	require.NoError(t, err)

	byProduct, err := store.List(ctx, "s1", "gin")
	require.NoError(t, err)
	require.Len(t, byProduct, 1)
	assert.Equal(t, "London Gin", byProduct[0].Product)

	byFamily, err := store.List(ctx, "s1", "wine")
	require.NoError(t, err)
	require.Len(t, byFamily, 1)
	assert.Equal(t, "Rioja", byFamily[0].Product)
}

func TestStore_DeleteIsScopedToSession(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	entry, err := store.Add(ctx, "s1", compute(t, pricing.WineInput{Cost: 5, TargetGP: 65}))
	require.NoError(t, err)

	assert.ErrorIs(t, store.Delete(ctx, "s2", entry.ID), ErrNotFound)
	require.NoError(t, store.Delete(ctx, "s1", entry.ID))
	assert.ErrorIs(t, store.Delete(ctx, "s1", entry.ID), ErrNotFound)
}

func TestStore_Clear(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	for i := 0; i < 3; i++ {
		_, err := store.Add(ctx, "s1", compute(t, pricing.WineInput{Cost: 5, TargetGP: 65}))
		require.NoError(t, err)
	}
	_, err := store.Add(ctx, "s2", compute(t, pricing.WineInput{Cost: 5, TargetGP: 65}))
	require.NoError(t, err)

	n, err := store.Clear(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	left, err := store.List(ctx, "s1", "")
	require.NoError(t, err)
	assert.Empty(t, left)

	other, err := store.List(ctx, "s2", "")
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestStore_AddRequiresSession(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Add(context.Background(), "", compute(t, pricing.WineInput{Cost: 5, TargetGP: 65}))
	assert.Error(t, err)
}
