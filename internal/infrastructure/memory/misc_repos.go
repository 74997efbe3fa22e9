package memory

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/casavidal/ferreteria-api/internal/domain"
	"github.com/casavidal/ferreteria-api/internal/domain/entity"
	"github.com/casavidal/ferreteria-api/internal/domain/repository"
)

var _ repository.ClientScoringRepository = (*scoringRepo)(nil)
var _ repository.CategoryRepository = (*categoryRepo)(nil)
var _ repository.UserRepository = (*userRepo)(nil)

type scoringRepo struct {
	s *Store
}

func cloneScoring(s *entity.ClientScoring) *entity.ClientScoring {
	if s == nil {
		return nil
	}
	c := *s
	c.RecommendedProducts = append([]string(nil), s.RecommendedProducts...)
	return &c
}

func (r *scoringRepo) Create(s *entity.ClientScoring) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.scorings[s.ClientID]; ok {
		return &domain.DuplicateError{Field: "clientId", Value: s.ClientID}
	}
	r.s.scorings[s.ClientID] = cloneScoring(s)
	return nil
}

func (r *scoringRepo) GetByClient(clientID string) (*entity.ClientScoring, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return cloneScoring(r.s.scorings[clientID]), nil
}

func (r *scoringRepo) Update(s *entity.ClientScoring) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.scorings[s.ClientID]; !ok {
		return domain.ErrNotFound
	}
	r.s.scorings[s.ClientID] = cloneScoring(s)
	return nil
}

type categoryRepo struct {
	s *Store
}

func cloneCategory(c *entity.Category) *entity.Category {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// UpsertByName encuentra-o-crea bajo el lock del store: idempotente contra
// re-ejecuciones del seed.
func (r *categoryRepo) UpsertByName(name, icon string) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.categories {
		if c.Name == name {
			return cloneCategory(c), nil
		}
	}
	cat := &entity.Category{
		ID:        uuid.New().String(),
		Name:      name,
		Icon:      icon,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	r.s.categories[cat.ID] = cat
	return cloneCategory(cat), nil
}

func (r *categoryRepo) GetByID(id string) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return cloneCategory(r.s.categories[id]), nil
}

func (r *categoryRepo) ListActive() ([]*entity.Category, error) {
	r.s.mu.RLock()
	var out []*entity.Category
	for _, c := range r.s.categories {
		if c.IsActive {
			out = append(out, cloneCategory(c))
		}
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type userRepo struct {
	s *Store
}

func cloneUser(u *entity.User) *entity.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

func (r *userRepo) Create(user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return &domain.DuplicateError{Field: "email", Value: user.Email}
		}
	}
	r.s.users[user.ID] = cloneUser(user)
	return nil
}

func (r *userRepo) GetByID(id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return cloneUser(r.s.users[id]), nil
}

func (r *userRepo) GetByEmail(email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *userRepo) UpsertByEmail(user *entity.User) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return cloneUser(u), nil
		}
	}
	r.s.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}
