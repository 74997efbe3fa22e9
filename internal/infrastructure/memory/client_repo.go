package memory

import (
	"sort"

	"github.com/casavidal/ferreteria-api/internal/domain"
	"github.com/casavidal/ferreteria-api/internal/domain/entity"
	"github.com/casavidal/ferreteria-api/internal/domain/repository"
	"github.com/casavidal/ferreteria-api/pkg/textutil"
)

var _ repository.ClientRepository = (*clientRepo)(nil)

type clientRepo struct {
	s *Store
}

func cloneClient(c *entity.Client) *entity.Client {
	if c == nil {
		return nil
	}
	cp := *c
	if c.LastPurchaseAt != nil {
		t := *c.LastPurchaseAt
		cp.LastPurchaseAt = &t
	}
	return &cp
}

// Create inserta un cliente verificando unicidad de documento y RIF entre
// activos e inactivos.
func (r *clientRepo) Create(client *entity.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.clients {
		if client.Document != "" && c.Document == client.Document {
			return &domain.DuplicateError{Field: "document", Value: client.Document}
		}
		if client.RIF != "" && c.RIF == client.RIF {
			return &domain.DuplicateError{Field: "rif", Value: client.RIF}
		}
	}
	r.s.clients[client.ID] = cloneClient(client)
	return nil
}

func (r *clientRepo) GetByID(id string) (*entity.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return cloneClient(r.s.clients[id]), nil
}

func (r *clientRepo) GetByDocument(document string) (*entity.Client, error) {
	if document == "" {
		return nil, nil
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.clients {
		if c.Document == document {
			return cloneClient(c), nil
		}
	}
	return nil, nil
}

func (r *clientRepo) GetByRIF(rif string) (*entity.Client, error) {
	if rif == "" {
		return nil, nil
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.clients {
		if c.RIF == rif {
			return cloneClient(c), nil
		}
	}
	return nil, nil
}

func (r *clientRepo) Update(client *entity.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.clients[client.ID]; !ok {
		return domain.ErrNotFound
	}
	for _, c := range r.s.clients {
		if c.ID == client.ID {
			continue
		}
		if client.Document != "" && c.Document == client.Document {
			return &domain.DuplicateError{Field: "document", Value: client.Document}
		}
		if client.RIF != "" && c.RIF == client.RIF {
			return &domain.DuplicateError{Field: "rif", Value: client.RIF}
		}
	}
	r.s.clients[client.ID] = cloneClient(client)
	return nil
}

func (r *clientRepo) SetActive(id string, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.clients[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.IsActive = active
	return nil
}

func (r *clientRepo) AddLoyaltyPoints(id string, points int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.clients[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.LoyaltyPoints += points
	return nil
}

func matchClient(c *entity.Client, f repository.ClientFilter) bool {
	if f.IsActive != nil && c.IsActive != *f.IsActive {
		return false
	}
	if f.Category != "" && c.Category != f.Category {
		return false
	}
	if f.ClientType != "" && c.ClientType != f.ClientType {
		return false
	}
	if f.Search != "" {
		if !textutil.Contains(c.FirstName, f.Search) &&
			!textutil.Contains(c.LastName, f.Search) &&
			!textutil.Contains(c.CompanyName, f.Search) &&
			!textutil.Contains(c.Email, f.Search) &&
			!textutil.Contains(c.Phone, f.Search) {
			return false
		}
	}
	return true
}

// List filtra, ordena (categoría asc, compra más reciente primero) y pagina.
func (r *clientRepo) List(f repository.ClientFilter) ([]*entity.Client, int, error) {
	r.s.mu.RLock()
	var all []*entity.Client
	for _, c := range r.s.clients {
		if matchClient(c, f) {
			all = append(all, cloneClient(c))
		}
	}
	r.s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].Category != all[j].Category {
			return all[i].Category < all[j].Category
		}
		li, lj := all[i].LastPurchaseAt, all[j].LastPurchaseAt
		switch {
		case li == nil && lj == nil:
			return all[i].DisplayName() < all[j].DisplayName()
		case li == nil:
			return false
		case lj == nil:
			return true
		default:
			return li.After(*lj)
		}
	})
	total := len(all)
	all = paginate(all, f.Limit, f.Offset)
	return all, total, nil
}

func (r *clientRepo) ListVIP(limit int) ([]*entity.Client, error) {
	r.s.mu.RLock()
	var out []*entity.Client
	for _, c := range r.s.clients {
		if c.IsActive && c.Category == entity.ClientCategoryVIP {
			out = append(out, cloneClient(c))
		}
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		return out[i].TotalPurchases.GreaterThan(out[j].TotalPurchases)
	})
	return paginate(out, limit, 0), nil
}

func (r *clientRepo) ListTopScoring(limit int) ([]*entity.Client, error) {
	r.s.mu.RLock()
	type scored struct {
		c     *entity.Client
		score float64
	}
	var out []scored
	for _, c := range r.s.clients {
		if !c.IsActive {
			continue
		}
		sc := r.s.scorings[c.ID]
		if sc == nil {
			continue
		}
		out = append(out, scored{c: cloneClient(c), score: sc.Score})
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].score > out[j].score })
	clients := make([]*entity.Client, 0, len(out))
	for _, s := range out {
		clients = append(clients, s.c)
	}
	return paginate(clients, limit, 0), nil
}

func (r *clientRepo) ListChurnRisk(threshold float64) ([]*entity.Client, error) {
	r.s.mu.RLock()
	type atRisk struct {
		c     *entity.Client
		churn float64
	}
	var out []atRisk
	for _, c := range r.s.clients {
		if !c.IsActive {
			continue
		}
		sc := r.s.scorings[c.ID]
		if sc == nil || sc.ChurnProbability < threshold {
			continue
		}
		out = append(out, atRisk{c: cloneClient(c), churn: sc.ChurnProbability})
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].churn > out[j].churn })
	clients := make([]*entity.Client, 0, len(out))
	for _, a := range out {
		clients = append(clients, a.c)
	}
	return clients, nil
}

func (r *clientRepo) Stats() (*repository.ClientStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	st := &repository.ClientStats{}
	for _, c := range r.s.clients {
		if !c.IsActive {
			st.Inactivos++
			continue
		}
		st.Total++
		st.TotalVentas = st.TotalVentas.Add(c.TotalPurchases)
		switch c.Category {
		case entity.ClientCategoryNuevo:
			st.Nuevos++
		case entity.ClientCategoryVIP:
			st.VIP++
		case entity.ClientCategoryMayorista:
			st.Mayoristas++
		}
	}
	return st, nil
}
