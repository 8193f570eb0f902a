package directoryRepo

import (
	"context"
	"sync"

	"bookline/models"
)

// MemoryDirectory is an in-memory Directory, used by tests and the seeded
// development configuration.
type MemoryDirectory struct {
	mu        sync.RWMutex
	providers map[string]models.Provider
	order     []string
}

func NewMemoryDirectory(providers ...models.Provider) *MemoryDirectory {
	d := &MemoryDirectory{providers: make(map[string]models.Provider)}
	for _, p := range providers {
		d.put(p)
	}
	return d
}

func (d *MemoryDirectory) put(p models.Provider) {
	if _, exists := d.providers[p.ID]; !exists {
		d.order = append(d.order, p.ID)
	}
	d.providers[p.ID] = p
}

// Seed adds or replaces providers.
func (d *MemoryDirectory) Seed(providers ...models.Provider) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, p := range providers {
		d.put(p)
	}
}

func (d *MemoryDirectory) GetProvider(ctx context.Context, id string) (*models.Provider, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	p, ok := d.providers[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

// ListByCategory returns providers of the given category in insertion order;
// an empty category matches everything.
func (d *MemoryDirectory) ListByCategory(ctx context.Context, category string) ([]models.Provider, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var out []models.Provider
	for _, id := range d.order {
		p := d.providers[id]
		if category == "" || p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}
