package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type note struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Category  string             `bson:"category,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func TestSetAndGetRoundTrip(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	require.NoError(t, st.Set(ctx, "notes", "pinned", note{Title: "hello"}, false))

	var got note
	found, err := st.Get(ctx, "notes", "pinned", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "hello", got.Title)

	found, err = st.Get(ctx, "notes", "missing", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSetMergePreservesOtherFields(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	require.NoError(t, st.Set(ctx, "notes", "pinned",
		map[string]any{"title": "hello", "category": "work"}, false))
	require.NoError(t, st.Set(ctx, "notes", "pinned",
		map[string]any{"title": "updated"}, true))

	var got note
	found, err := st.Get(ctx, "notes", "pinned", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "updated", got.Title)
	assert.Equal(t, "work", got.Category)
}

func TestInsertAssignsRetrievableID(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	id, err := st.Insert(ctx, "notes", note{Title: "first"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	var got note
	found, err := st.Get(ctx, "notes", id, &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "first", got.Title)
}

func TestQueryFilterSortAndLimit(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, n := range []note{
		{Title: "a", Category: "work"},
		{Title: "b", Category: "play"},
		{Title: "c", Category: "work"},
	} {
		n.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		_, err := st.Insert(ctx, "notes", n)
		require.NoError(t, err)
	}

	var all []note
	require.NoError(t, st.Query(ctx, "notes", nil, &all,
		QueryOpts{SortBy: "createdAt", Desc: true}))
	require.Len(t, all, 3)
	assert.Equal(t, "c", all[0].Title)
	assert.Equal(t, "a", all[2].Title)

	var work []note
	require.NoError(t, st.Query(ctx, "notes", map[string]any{"category": "work"}, &work,
		QueryOpts{SortBy: "createdAt", Desc: false}))
	require.Len(t, work, 2)
	assert.Equal(t, "a", work[0].Title)

	var limited []note
	require.NoError(t, st.Query(ctx, "notes", nil, &limited,
		QueryOpts{SortBy: "createdAt", Desc: true, Limit: 1}))
	require.Len(t, limited, 1)
	assert.Equal(t, "c", limited[0].Title)
}

func TestQueryOnUnknownCollectionIsEmpty(t *testing.T) {
	st := NewMemory()

	var out []note
	require.NoError(t, st.Query(context.Background(), "nothing", nil, &out, QueryOpts{}))
	assert.Empty(t, out)
}
