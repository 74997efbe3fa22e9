package memory

import (
	"github.com/casavidal/ferreteria-api/internal/domain/entity"
	"github.com/casavidal/ferreteria-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*movementRepo)(nil)

// movementRepo libro de movimientos en memoria. Append-only: la slice por
// producto solo crece y las entradas devueltas son copias.
type movementRepo struct {
	s *Store
}

func cloneMovement(m *entity.InventoryMovement) *entity.InventoryMovement {
	c := *m
	return &c
}

func (r *movementRepo) Create(m *entity.InventoryMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.movements[m.ProductID] = append(r.s.movements[m.ProductID], cloneMovement(m))
	return nil
}

// ListByProduct devuelve movimientos en orden de creación ascendente.
// Con limit > 0 devuelve los últimos limit, preservando el orden.
func (r *movementRepo) ListByProduct(productID string, limit int) ([]*entity.InventoryMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	src := r.s.movements[productID]
	if limit > 0 && limit < len(src) {
		src = src[len(src)-limit:]
	}
	out := make([]*entity.InventoryMovement, 0, len(src))
	for _, m := range src {
		out = append(out, cloneMovement(m))
	}
	return out, nil
}

func (r *movementRepo) CountByProduct(productID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.movements[productID]), nil
}
