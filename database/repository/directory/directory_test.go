package directoryRepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"bookline/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)
	}
}

func TestSyntheticDirectory_ResolvesIDConvention(t *testing.T) {
	d := NewSyntheticDirectoryAt(fixedClock())

	p, err := d.GetProvider(context.Background(), "synthetic-dentist-3")
	require.NoError(t, err)
	assert.Equal(t, "synthetic-dentist-3", p.ID)
	assert.Equal(t, "dentist", p.Category)
	assert.Equal(t, "Dentist Office 3", p.Name)

	// Two canned slots: today 14:00 and tomorrow 10:00.
	require.Len(t, p.AvailableSlots, 2)
	assert.Equal(t, "2025-03-14T14:00:00", p.AvailableSlots[0].String())
	assert.Equal(t, "2025-03-15T10:00:00", p.AvailableSlots[1].String())
}

func TestSyntheticDirectory_Deterministic(t *testing.T) {
	d := NewSyntheticDirectoryAt(fixedClock())

	first, err := d.GetProvider(context.Background(), "synthetic-car_repair-7")
	require.NoError(t, err)
	second, err := d.GetProvider(context.Background(), "synthetic-car_repair-7")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSyntheticDirectory_VariantFixesRatingTier(t *testing.T) {
	d := NewSyntheticDirectoryAt(fixedClock())

	tests := []struct {
		id     string
		rating float64
	}{
		{id: "synthetic-dentist-0", rating: 3.5},
		{id: "synthetic-dentist-1", rating: 4.0},
		{id: "synthetic-dentist-2", rating: 4.5},
		{id: "synthetic-dentist-3", rating: 3.5},
	}
	for _, tt := range tests {
		p, err := d.GetProvider(context.Background(), tt.id)
		require.NoError(t, err)
		assert.Equal(t, tt.rating, p.Rating, "id %s", tt.id)
	}
}

func TestSyntheticDirectory_RejectsForeignIDs(t *testing.T) {
	d := NewSyntheticDirectoryAt(fixedClock())

	for _, id := range []string{"dentist-1", "synthetic-", "synthetic-dentist", "synthetic-dentist-x"} {
		_, err := d.GetProvider(context.Background(), id)
		assert.ErrorIs(t, err, ErrNotFound, "id %s", id)
	}
}

func TestMemoryDirectory_ListByCategoryKeepsInsertionOrder(t *testing.T) {
	d := NewMemoryDirectory(
		models.Provider{ID: "a", Category: models.CategoryDentist},
		models.Provider{ID: "b", Category: models.CategoryHairdresser},
		models.Provider{ID: "c", Category: models.CategoryDentist},
	)

	dentists, err := d.ListByCategory(context.Background(), models.CategoryDentist)
	require.NoError(t, err)
	require.Len(t, dentists, 2)
	assert.Equal(t, "a", dentists[0].ID)
	assert.Equal(t, "c", dentists[1].ID)

	all, err := d.ListByCategory(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestChain_FallsThroughToSynthetic(t *testing.T) {
	real := NewMemoryDirectory(models.Provider{ID: "stored", Name: "Stored", Category: models.CategoryDentist})
	chain := NewChain(real, NewSyntheticDirectoryAt(fixedClock()))

	p, err := chain.GetProvider(context.Background(), "stored")
	require.NoError(t, err)
	assert.Equal(t, "Stored", p.Name)

	p, err = chain.GetProvider(context.Background(), "synthetic-hairdresser-2")
	require.NoError(t, err)
	assert.Equal(t, "hairdresser", p.Category)

	_, err = chain.GetProvider(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestChain_PropagatesRealErrors(t *testing.T) {
	boom := errors.New("directory unavailable")
	chain := NewChain(failingResolver{err: boom}, NewSyntheticDirectoryAt(fixedClock()))

	_, err := chain.GetProvider(context.Background(), "synthetic-dentist-1")
	assert.ErrorIs(t, err, boom)
}

type failingResolver struct{ err error }

func (f failingResolver) GetProvider(ctx context.Context, id string) (*models.Provider, error) {
	return nil, f.err
}
