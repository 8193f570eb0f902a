package session

import (
	"context"
	"strings"
	"testing"
	"time"

	"bookline/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSession(id string) *models.SearchSession {
	return &models.SearchSession{
		SessionID: id,
		Intent: models.AppointmentIntent{
			ServiceType: "dentist",
			Status:      models.IntentSearching,
		},
		CreatedAt: time.Now(),
	}
}

func TestMemoryStore_PutGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, testSession("s1")))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", got.SessionID)
	assert.Equal(t, "dentist", got.Intent.ServiceType)

	_, err = store.Get(ctx, "unknown")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_LastTracksMostRecent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Last(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Put(ctx, testSession("s1")))
	require.NoError(t, store.Put(ctx, testSession("s2")))

	last, err := store.Last(ctx)
	require.NoError(t, err)
	assert.Equal(t, "s2", last.SessionID)
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, testSession("s1")))
	require.NoError(t, store.Delete(ctx, "s1"))

	_, err := store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Last(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, testSession("s1")))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	got.Intent.Status = models.IntentBooked

	again, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, models.IntentSearching, again.Intent.Status)
}

func TestNewSessionID_Shape(t *testing.T) {
	a := NewSessionID()
	b := NewSessionID()

	assert.True(t, strings.HasPrefix(a, "search-"))
	assert.NotEqual(t, a, b)
}
