package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID        string    `bson:"id"`
	Name      string    `bson:"name"`
	Status    string    `bson:"status"`
	Qty       int       `bson:"qty"`
	Price     float64   `bson:"price"`
	Featured  bool      `bson:"featured"`
	Version   int64     `bson:"version"`
	CreatedAt time.Time `bson:"created_at"`
}

func seed(t *testing.T) Collection {
	t.Helper()
	ctx := context.Background()
	coll := NewMemoryStore().Collection("items")
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	items := []item{
		{ID: "a", Name: "flour", Status: "open", Qty: 5, Price: 1.5, CreatedAt: base},
		{ID: "b", Name: "cheese", Status: "closed", Qty: 0, Price: 9, Featured: true, CreatedAt: base.Add(time.Hour)},
		{ID: "c", Name: "basil", Status: "open", Qty: 12, Price: 3, Featured: true, CreatedAt: base.Add(2 * time.Hour)},
	}
	for _, it := range items {
		require.NoError(t, coll.Create(ctx, it.ID, it))
	}
	return coll
}

func TestMemoryGetCreateDelete(t *testing.T) {
	ctx := context.Background()
	coll := seed(t)

	var got item
	require.NoError(t, coll.Get(ctx, "a", &got))
	assert.Equal(t, "flour", got.Name)
	assert.True(t, got.CreatedAt.Equal(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)))

	assert.ErrorIs(t, coll.Create(ctx, "a", item{ID: "a"}), ErrAlreadyExists)
	assert.ErrorIs(t, coll.Get(ctx, "zzz", &got), ErrNotFound)

	require.NoError(t, coll.Delete(ctx, "a"))
	assert.ErrorIs(t, coll.Delete(ctx, "a"), ErrNotFound)
}

func TestMemoryFindFiltersOrdersAndLimits(t *testing.T) {
	ctx := context.Background()
	coll := seed(t)

	var open []item
	require.NoError(t, coll.Find(ctx, Query{}.Where("status", OpEq, "open").OrderBy("qty", true), &open))
	require.Len(t, open, 2)
	assert.Equal(t, "c", open[0].ID)
	assert.Equal(t, "a", open[1].ID)

	var ranged []*item
	q := Query{}.Where("qty", OpGte, 1).Where("qty", OpLt, 12).OrderBy("name", false)
	require.NoError(t, coll.Find(ctx, q, &ranged))
	require.Len(t, ranged, 1)
	assert.Equal(t, "a", ranged[0].ID)

	var in []item
	require.NoError(t, coll.Find(ctx, Query{}.Where("name", OpIn, []string{"cheese", "basil"}).OrderBy("created_at", true).Take(1), &in))
	require.Len(t, in, 1)
	assert.Equal(t, "c", in[0].ID)

	var since []item
	cutoff := time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC)
	require.NoError(t, coll.Find(ctx, Query{}.Where("created_at", OpGte, cutoff), &since))
	assert.Len(t, since, 2)

	n, err := coll.Count(ctx, Query{}.Where("featured", OpEq, true))
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestMemoryUpdateIfVersion(t *testing.T) {
	ctx := context.Background()
	coll := seed(t)

	require.NoError(t, coll.UpdateIfVersion(ctx, "a", 0, map[string]any{"status": "closed"}))

	var got item
	require.NoError(t, coll.Get(ctx, "a", &got))
	assert.Equal(t, "closed", got.Status)
	assert.EqualValues(t, 1, got.Version)

	assert.ErrorIs(t, coll.UpdateIfVersion(ctx, "a", 0, map[string]any{"status": "open"}), ErrVersionConflict)
	assert.ErrorIs(t, coll.UpdateIfVersion(ctx, "missing", 0, nil), ErrNotFound)

	require.NoError(t, coll.Get(ctx, "a", &got))
	assert.Equal(t, "closed", got.Status)
}

func TestMemoryUpdate(t *testing.T) {
	ctx := context.Background()
	coll := seed(t)

	when := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, coll.Update(ctx, "b", map[string]any{"qty": 7, "created_at": when}))

	var got item
	require.NoError(t, coll.Get(ctx, "b", &got))
	assert.Equal(t, 7, got.Qty)
	assert.True(t, got.CreatedAt.Equal(when))

	assert.ErrorIs(t, coll.Update(ctx, "nope", map[string]any{"qty": 1}), ErrNotFound)
}

func TestFindRejectsNonSliceDestination(t *testing.T) {
	coll := seed(t)
	var single item
	assert.Error(t, coll.Find(context.Background(), Query{}, &single))
}
