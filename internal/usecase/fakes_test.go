package usecase

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/estilourbano/tienda/internal/domain"
)

type fakeOrderRepo struct {
	mu          sync.Mutex
	orders      map[uuid.UUID]*domain.Order
	lastCreated time.Time
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[uuid.UUID]*domain.Order{}}
}

func (r *fakeOrderRepo) Create(ctx context.Context, o *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *o
	if cp.CreatedAt.IsZero() {
		// Strictly increasing timestamps so listing order is deterministic.
		cp.CreatedAt = time.Now()
		if !cp.CreatedAt.After(r.lastCreated) {
			cp.CreatedAt = r.lastCreated.Add(time.Nanosecond)
		}
		r.lastCreated = cp.CreatedAt
	}
	o.CreatedAt = cp.CreatedAt
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) Save(ctx context.Context, o *domain.Order) error {
	return r.Create(ctx, o)
}

func (r *fakeOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o, ok := r.orders[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (r *fakeOrderRepo) FindByNumber(ctx context.Context, number string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.Number == number {
			cp := *o
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeOrderRepo) ListByEmail(ctx context.Context, email string) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Order
	for _, o := range r.orders {
		if strings.EqualFold(o.Email, email) {
			out = append(out, *o)
		}
	}
	sortOrdersNewestFirst(out)
	return out, nil
}

func (r *fakeOrderRepo) ListAll(ctx context.Context) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Order
	for _, o := range r.orders {
		out = append(out, *o)
	}
	sortOrdersNewestFirst(out)
	return out, nil
}

func sortOrdersNewestFirst(out []domain.Order) {
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*domain.User{}}
}

func (r *fakeUserRepo) Save(ctx context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeUserRepo) List(ctx context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

type fakeCustomRepo struct {
	mu          sync.Mutex
	orders      map[uuid.UUID]*domain.CustomOrder
	lastCreated time.Time
}

func newFakeCustomRepo() *fakeCustomRepo {
	return &fakeCustomRepo{orders: map[uuid.UUID]*domain.CustomOrder{}}
}

func (r *fakeCustomRepo) Create(ctx context.Context, o *domain.CustomOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *o
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
		if !cp.CreatedAt.After(r.lastCreated) {
			cp.CreatedAt = r.lastCreated.Add(time.Nanosecond)
		}
		r.lastCreated = cp.CreatedAt
	}
	o.CreatedAt = cp.CreatedAt
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeCustomRepo) Save(ctx context.Context, o *domain.CustomOrder) error {
	return r.Create(ctx, o)
}

func (r *fakeCustomRepo) FindByNumber(ctx context.Context, number string) (*domain.CustomOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.Number == number {
			cp := *o
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeCustomRepo) ListAll(ctx context.Context) ([]domain.CustomOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.CustomOrder
	for _, o := range r.orders {
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeCustomRepo) Delete(ctx context.Context, o *domain.CustomOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.orders, o.ID)
	return nil
}

// fakeStorage records saved and deleted assets; URLs follow the localfs shape.
type fakeStorage struct {
	mu      sync.Mutex
	saved   []string
	deleted []string
}

func (s *fakeStorage) Save(ctx context.Context, name string, r io.Reader) (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = append(s.saved, name)
	return "/uploads/" + name, name, nil
}

func (s *fakeStorage) Delete(ctx context.Context, assetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, assetID)
	return nil
}
