package directoryRepo

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"bookline/models"
)

const syntheticIDPrefix = "synthetic-"

// SyntheticDirectory resolves ids of the form "synthetic-<category>-<variant>"
// into deterministic on-demand provider records, so negotiations can run
// against providers that were never stored anywhere. The variant digit fixes
// the rating, which in turn fixes the receptionist personality.
type SyntheticDirectory struct {
	now func() time.Time
}

func NewSyntheticDirectory() *SyntheticDirectory {
	return &SyntheticDirectory{now: time.Now}
}

// NewSyntheticDirectoryAt fixes the clock used for the canned slots.
func NewSyntheticDirectoryAt(now func() time.Time) *SyntheticDirectory {
	return &SyntheticDirectory{now: now}
}

func (d *SyntheticDirectory) GetProvider(ctx context.Context, id string) (*models.Provider, error) {
	category, variant, ok := parseSyntheticID(id)
	if !ok {
		return nil, ErrNotFound
	}

	// Rating cycles through the three receptionist tiers.
	rating := 3.5 + float64(variant%3)*0.5

	// Two canned slots: today 14:00 and tomorrow 10:00, local date.
	today := d.now()
	y, m, day := today.Date()
	slotToday := models.MustParseLocalTime(
		time.Date(y, m, day, 14, 0, 0, 0, time.UTC).Format("2006-01-02T15:04:05"))
	slotTomorrow := models.MustParseLocalTime(
		time.Date(y, m, day, 10, 0, 0, 0, time.UTC).AddDate(0, 0, 1).Format("2006-01-02T15:04:05"))

	p := &models.Provider{
		ID:             id,
		Name:           fmt.Sprintf("%s Office %d", titleCategory(category), variant),
		Phone:          fmt.Sprintf("+1-555-01%02d", variant%100),
		Category:       category,
		Rating:         rating,
		DistanceMiles:  float64(variant%5) + 0.5,
		AvailableSlots: []models.LocalTime{slotToday, slotTomorrow},
	}
	return p, nil
}

// parseSyntheticID splits "synthetic-<category>-<variant>"; the category may
// itself contain hyphens, the variant is the trailing number.
func parseSyntheticID(id string) (category string, variant int, ok bool) {
	if !strings.HasPrefix(id, syntheticIDPrefix) {
		return "", 0, false
	}
	rest := id[len(syntheticIDPrefix):]
	i := strings.LastIndexByte(rest, '-')
	if i <= 0 {
		return "", 0, false
	}
	n, err := strconv.Atoi(rest[i+1:])
	if err != nil || n < 0 {
		return "", 0, false
	}
	return rest[:i], n, true
}

func titleCategory(category string) string {
	parts := strings.FieldsFunc(category, func(r rune) bool { return r == '_' || r == '-' })
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}
