package memory

import (
	"sort"

	"github.com/casavidal/ferreteria-api/internal/domain"
	"github.com/casavidal/ferreteria-api/internal/domain/entity"
	"github.com/casavidal/ferreteria-api/internal/domain/repository"
	"github.com/casavidal/ferreteria-api/pkg/textutil"
)

var _ repository.ProductRepository = (*productRepo)(nil)

type productRepo struct {
	s *Store
}

func cloneProduct(p *entity.Product) *entity.Product {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

// Create inserta un producto verificando unicidad de SKU y barcode.
func (r *productRepo) Create(product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.SKU == product.SKU {
			return &domain.DuplicateError{Field: "sku", Value: product.SKU}
		}
		if product.Barcode != "" && p.Barcode == product.Barcode {
			return &domain.DuplicateError{Field: "barcode", Value: product.Barcode}
		}
	}
	r.s.products[product.ID] = cloneProduct(product)
	return nil
}

func (r *productRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return cloneProduct(r.s.products[id]), nil
}

func (r *productRepo) GetBySKU(sku string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.products {
		if p.SKU == sku {
			return cloneProduct(p), nil
		}
	}
	return nil, nil
}

func (r *productRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	if barcode == "" {
		return nil, nil
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.products {
		if p.Barcode == barcode {
			return cloneProduct(p), nil
		}
	}
	return nil, nil
}

func (r *productRepo) GetByCode(code string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.products {
		if p.SKU == code || (code != "" && p.Barcode == code) {
			return cloneProduct(p), nil
		}
	}
	return nil, nil
}

// GetForUpdate en memoria no bloquea nada por sí mismo: el TxRunner ya tomó
// el mutex del producto antes de llegar acá.
func (r *productRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *productRepo) UpdateStock(id string, stock int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.CurrentStock = stock
	return nil
}

// Update persiste campos descriptivos preservando CurrentStock.
func (r *productRepo) Update(product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.products[product.ID]
	if !ok {
		return domain.ErrNotFound
	}
	for _, p := range r.s.products {
		if p.ID != product.ID && product.Barcode != "" && p.Barcode == product.Barcode {
			return &domain.DuplicateError{Field: "barcode", Value: product.Barcode}
		}
	}
	stock := current.CurrentStock
	updated := cloneProduct(product)
	updated.CurrentStock = stock
	r.s.products[product.ID] = updated
	return nil
}

func (r *productRepo) SetActive(id string, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.IsActive = active
	return nil
}

func matchProduct(p *entity.Product, f repository.ProductFilter) bool {
	if f.IsActive == nil {
		if !p.IsActive {
			return false
		}
	} else if p.IsActive != *f.IsActive {
		return false
	}
	if f.CategoryID != "" && p.CategoryID != f.CategoryID {
		return false
	}
	if f.LowStock && p.CurrentStock > p.MinStock {
		return false
	}
	if f.Search != "" {
		if !textutil.Contains(p.Name, f.Search) &&
			!textutil.Contains(p.SKU, f.Search) &&
			!textutil.Contains(p.Barcode, f.Search) &&
			!textutil.Contains(p.Description, f.Search) {
			return false
		}
	}
	return true
}

// List filtra, ordena (menos stock primero, luego nombre) y pagina.
func (r *productRepo) List(f repository.ProductFilter) ([]*entity.Product, int, error) {
	r.s.mu.RLock()
	var all []*entity.Product
	for _, p := range r.s.products {
		if matchProduct(p, f) {
			all = append(all, cloneProduct(p))
		}
	}
	r.s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].CurrentStock != all[j].CurrentStock {
			return all[i].CurrentStock < all[j].CurrentStock
		}
		return all[i].Name < all[j].Name
	})
	total := len(all)
	all = paginate(all, f.Limit, f.Offset)
	return all, total, nil
}

func (r *productRepo) ListLowStock() ([]*entity.Product, error) {
	r.s.mu.RLock()
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.IsActive && p.CurrentStock <= p.MinStock {
			out = append(out, cloneProduct(p))
		}
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CurrentStock < out[j].CurrentStock })
	return out, nil
}

func (r *productRepo) ListOutOfStock() ([]*entity.Product, error) {
	r.s.mu.RLock()
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.IsActive && p.CurrentStock == 0 {
			out = append(out, cloneProduct(p))
		}
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *productRepo) ListVariants(parentID string) ([]*entity.Product, error) {
	r.s.mu.RLock()
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.IsActive && p.ParentProductID == parentID {
			out = append(out, cloneProduct(p))
		}
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *productRepo) Stats() (*repository.ProductStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	st := &repository.ProductStats{}
	for _, p := range r.s.products {
		st.TotalProducts++
		if !p.IsActive {
			continue
		}
		st.ActiveProducts++
		st.TotalUnits += p.CurrentStock
		if p.CurrentStock <= p.MinStock {
			st.LowStockCount++
		}
		if p.CurrentStock == 0 {
			st.OutOfStockCount++
		}
	}
	return st, nil
}

func paginate[T any](in []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(in) {
			return nil
		}
		in = in[offset:]
	}
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}
