package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opengrama/gramasurvey/internal/adapters/driven/storage/memory"
	"github.com/opengrama/gramasurvey/internal/core/domain"
)

func TestCapture_Current_StartsFresh(t *testing.T) {
	capture := NewCapture(memory.NewDraftStore())

	d, err := capture.Current(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, d.ID)
	assert.True(t, d.IsEmpty())
}

func TestCapture_Current_LoadsStored(t *testing.T) {
	store := memory.NewDraftStore()
	ctx := context.Background()

	stored := domain.NewDraft()
	require.NoError(t, stored.SetField("", "headName", "Chomi"))
	require.NoError(t, store.Save(ctx, stored))

	capture := NewCapture(store)
	d, err := capture.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, d.ID)
	assert.Equal(t, "Chomi", d.Identity["headName"])
}

func TestCapture_SetField_PersistsImmediately(t *testing.T) {
	store := memory.NewDraftStore()
	ctx := context.Background()

	capture := NewCapture(store)
	require.NoError(t, capture.SetField(ctx, "", "wardNumber", "7"))
	require.NoError(t, capture.SetField(ctx, "waterSources", "hasWell", true))

	// A second service over the same store sees every mutation, as a new
	// process invocation would.
	other := NewCapture(store)
	d, err := other.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "7", d.Identity["wardNumber"])
	assert.Equal(t, true, d.Object("waterSources")["hasWell"])
}

func TestCapture_SetField_Invalid_NothingPersisted(t *testing.T) {
	store := memory.NewDraftStore()
	ctx := context.Background()

	capture := NewCapture(store)
	err := capture.SetField(ctx, "", "notAField", "x")
	assert.ErrorIs(t, err, domain.ErrUnknownField)

	err = capture.SetField(ctx, "noSuchSection", "roofType", "tile")
	assert.ErrorIs(t, err, domain.ErrUnknownSection)

	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrNoDraft)
}

func TestCapture_RepeatableFlow(t *testing.T) {
	store := memory.NewDraftStore()
	ctx := context.Background()

	capture := NewCapture(store)
	idx, err := capture.AppendItem(ctx, "familyMembers")
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	require.NoError(t, capture.SetItemField(ctx, "familyMembers", idx, "name", "Velli"))

	idx2, err := capture.AppendItem(ctx, "familyMembers")
	require.NoError(t, err)
	assert.Equal(t, 1, idx2)

	d, err := capture.Current(ctx)
	require.NoError(t, err)
	items := d.Items("familyMembers")
	require.Len(t, items, 2)
	assert.Equal(t, "Velli", items[0]["name"])
}

func TestCapture_AppendItem_SingularSection(t *testing.T) {
	capture := NewCapture(memory.NewDraftStore())
	_, err := capture.AppendItem(context.Background(), "housingDetails")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCapture_Replace(t *testing.T) {
	store := memory.NewDraftStore()
	ctx := context.Background()

	capture := NewCapture(store)
	require.NoError(t, capture.SetField(ctx, "", "headName", "Old"))

	incoming := domain.NewDraft()
	require.NoError(t, incoming.SetField("", "headName", "New"))
	require.NoError(t, capture.Replace(ctx, incoming))

	d, err := capture.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, incoming.ID, d.ID)
	assert.Equal(t, "New", d.Identity["headName"])

	stored, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, incoming.ID, stored.ID)
}

func TestCapture_Replace_Nil(t *testing.T) {
	capture := NewCapture(memory.NewDraftStore())
	err := capture.Replace(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCapture_Reset(t *testing.T) {
	store := memory.NewDraftStore()
	ctx := context.Background()

	capture := NewCapture(store)
	require.NoError(t, capture.SetField(ctx, "", "headName", "Chomi"))
	require.NoError(t, capture.Reset(ctx))

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrNoDraft)

	// The next draft is a fresh one, not the discarded data.
	d, err := capture.Current(ctx)
	require.NoError(t, err)
	assert.True(t, d.IsEmpty())
}
