package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opengrama/gramasurvey/internal/core/domain"
)

func TestSyncLogStore_LastEmpty(t *testing.T) {
	store := NewSyncLogStore()
	_, err := store.Last(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSyncLogStore_RecordAndLast(t *testing.T) {
	store := NewSyncLogStore()
	ctx := context.Background()

	base := time.Now()
	require.NoError(t, store.Record(ctx, domain.SyncLogEntry{
		DraftID: "d1", HouseholdID: "h1", SyncedAt: base,
	}))
	require.NoError(t, store.Record(ctx, domain.SyncLogEntry{
		DraftID: "d2", HouseholdID: "h2", SyncedAt: base.Add(time.Minute),
	}))

	last, err := store.Last(ctx)
	require.NoError(t, err)
	assert.Equal(t, "h2", last.HouseholdID)
}

func TestSyncLogStore_List_NewestFirst(t *testing.T) {
	store := NewSyncLogStore()
	ctx := context.Background()

	for _, id := range []string{"h1", "h2", "h3"} {
		require.NoError(t, store.Record(ctx, domain.SyncLogEntry{HouseholdID: id}))
	}

	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "h3", all[0].HouseholdID)
	assert.Equal(t, "h1", all[2].HouseholdID)

	limited, err := store.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "h3", limited[0].HouseholdID)
}
