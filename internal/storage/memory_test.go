package storage

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/hyperbolic-time-chamber-sub000/internal"
)

func TestMemoryStoreStartsEmpty(t *testing.T) {
	store := NewMemoryStore()
	entries, err := store.Load(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	entries := sampleEntries()

	require.NoError(t, store.Save(ctx, entries))
	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, entries, loaded)
}

func TestMemoryStoreLoadReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, sampleEntries()))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	loaded[0].ExerciseName = "mutated"

	again, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bench Press", again[0].ExerciseName)
}

func TestMemoryStoreExportStaysOffDisk(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	entries := sampleEntries()

	location, err := store.Export(ctx, entries)
	require.NoError(t, err)
	assert.Equal(t, MemoryExportPath, location)

	var decoded []internal.ExerciseEntry
	require.NoError(t, json.Unmarshal(store.ExportedData(), &decoded))
	assertEntriesEqual(t, entries, decoded)
}

func TestMemoryStoreExportNilEncodesEmptyArray(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.Export(context.Background(), nil)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(store.ExportedData()))
}
