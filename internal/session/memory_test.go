package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	data := Data{UserID: "u1", AnalyticsID: "sess_abc", CSRFToken: "tok"}
	require.NoError(t, store.Save(ctx, "id-1", data))

	got, err := store.Get(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestMemoryStore_MissingID(t *testing.T) {
	store := NewMemoryStore(time.Minute)

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore(-time.Second)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "id-1", Data{UserID: "u1"}))

	_, err := store.Get(ctx, "id-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "id-1", Data{UserID: "u1"}))
	require.NoError(t, store.Delete(ctx, "id-1"))

	_, err := store.Get(ctx, "id-1")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting an absent session is not an error.
	assert.NoError(t, store.Delete(ctx, "id-1"))
}

func TestPopFlash(t *testing.T) {
	data := Data{Error: "bad", Success: "good"}

	errMsg, successMsg := data.PopFlash()
	assert.Equal(t, "bad", errMsg)
	assert.Equal(t, "good", successMsg)

	errMsg, successMsg = data.PopFlash()
	assert.Empty(t, errMsg)
	assert.Empty(t, successMsg)
}
