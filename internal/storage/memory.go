package storage

import (
	"context"
	"sync"

	"github.com/guttosm/shipregistry/internal/domain/apperr"
	"github.com/guttosm/shipregistry/internal/domain/models"
	"github.com/guttosm/shipregistry/internal/query"
)

// memoryShipsRepository keeps ships in process memory. It backs the
// STORAGE_DRIVER=memory mode used for local runs and is the collaborator
// of choice in service and handler tests.
type memoryShipsRepository struct {
	mu     sync.RWMutex
	ships  map[int64]models.Ship
	nextID int64
}

// NewMemoryShipsRepository returns an empty in-memory repository, optionally seeded.
// Seeded ships keep their id when they carry one; the others are assigned the
// next free id. A later seed with the same id replaces the earlier one.
func NewMemoryShipsRepository(seed ...models.Ship) ShipsRepository {
	r := &memoryShipsRepository{ships: make(map[int64]models.Ship), nextID: 1}
	for _, s := range seed {
		r.seed(s)
	}
	return r
}

func (r *memoryShipsRepository) seed(s models.Ship) {
	if s.ID == 0 {
		s.ID = r.nextID
	}
	if s.ID >= r.nextID {
		r.nextID = s.ID + 1
	}
	r.ships[s.ID] = s
}

func (r *memoryShipsRepository) ExistsByID(_ context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.ships[id]
	return ok, nil
}

func (r *memoryShipsRepository) FindByID(_ context.Context, id int64) (*models.Ship, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.ships[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *memoryShipsRepository) FindAll(_ context.Context, spec query.Spec, order query.Order, page query.Page) ([]models.Ship, error) {
	all := r.snapshot()
	out := query.Apply(all, spec, order, page)
	if out == nil {
		out = []models.Ship{}
	}
	return out, nil
}

func (r *memoryShipsRepository) Count(_ context.Context, spec query.Spec) (int64, error) {
	return int64(len(query.Filter(r.snapshot(), spec))), nil
}

func (r *memoryShipsRepository) Save(_ context.Context, s models.Ship) (models.Ship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == 0 {
		s.ID = r.nextID
		r.nextID++
	} else if _, ok := r.ships[s.ID]; !ok {
		return models.Ship{}, apperr.NotFound("Ship", s.ID)
	}
	r.ships[s.ID] = s
	return s, nil
}

func (r *memoryShipsRepository) SaveAndFlush(ctx context.Context, s models.Ship) (models.Ship, error) {
	return r.Save(ctx, s)
}

func (r *memoryShipsRepository) DeleteByID(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ships[id]; !ok {
		return apperr.NotFound("Ship", id)
	}
	delete(r.ships, id)
	return nil
}

func (r *memoryShipsRepository) snapshot() []models.Ship {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Ship, 0, len(r.ships))
	for _, s := range r.ships {
		out = append(out, s)
	}
	return out
}
