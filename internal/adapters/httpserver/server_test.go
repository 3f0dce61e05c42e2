package httpserver

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/estilourbano/tienda/internal/adapters/payments/simulated"
	"github.com/estilourbano/tienda/internal/domain"
	"github.com/estilourbano/tienda/internal/usecase"
)

type memOrderRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*domain.Order
}

func (r *memOrderRepo) Create(ctx context.Context, o *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *memOrderRepo) Save(ctx context.Context, o *domain.Order) error { return r.Create(ctx, o) }

func (r *memOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o, ok := r.orders[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (r *memOrderRepo) FindByNumber(ctx context.Context, number string) (*domain.Order, error) {
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

func (r *memOrderRepo) ListByEmail(ctx context.Context, email string) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Order{}
	for _, o := range r.orders {
		if strings.EqualFold(o.Email, email) {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *memOrderRepo) ListAll(ctx context.Context) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Order{}
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, nil
}

type memUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User
}

func (r *memUserRepo) Save(ctx context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
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

func (r *memUserRepo) List(ctx context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.User{}
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *memUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

type memCustomRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*domain.CustomOrder
}

func (r *memCustomRepo) Create(ctx context.Context, o *domain.CustomOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *memCustomRepo) Save(ctx context.Context, o *domain.CustomOrder) error {
	return r.Create(ctx, o)
}

func (r *memCustomRepo) FindByNumber(ctx context.Context, number string) (*domain.CustomOrder, error) {
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

func (r *memCustomRepo) ListAll(ctx context.Context) ([]domain.CustomOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.CustomOrder{}
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (r *memCustomRepo) Delete(ctx context.Context, o *domain.CustomOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.orders, o.ID)
	return nil
}

type memProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*domain.Product
}

func (r *memProductRepo) Save(ctx context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (r *memProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Product{}
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *memProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}

type memStorage struct{}

func (memStorage) Save(ctx context.Context, name string, rd io.Reader) (string, string, error) {
	return "/uploads/" + name, name, nil
}

func (memStorage) Delete(ctx context.Context, assetID string) error { return nil }

type testEnv struct {
	handler  http.Handler
	orders   *memOrderRepo
	users    *memUserRepo
	customs  *memCustomRepo
	products *memProductRepo
}

func newTestEnv() *testEnv {
	orders := &memOrderRepo{orders: map[uuid.UUID]*domain.Order{}}
	users := &memUserRepo{users: map[uuid.UUID]*domain.User{}}
	customs := &memCustomRepo{orders: map[uuid.UUID]*domain.CustomOrder{}}
	products := &memProductRepo{products: map[uuid.UUID]*domain.Product{}}
	storage := memStorage{}

	orderUC := &usecase.OrderUC{Orders: orders, Users: users, Gateway: simulated.NewGateway()}
	customUC := &usecase.CustomOrderUC{Customs: customs, Users: users, Storage: storage}
	productUC := &usecase.ProductUC{Products: products, Storage: storage}
	userUC := &usecase.UserUC{Users: users}

	return &testEnv{
		handler:  New(orderUC, customUC, productUC, userUC, storage, nil, "uploads"),
		orders:   orders,
		users:    users,
		customs:  customs,
		products: products,
	}
}

// sessionCookie mints a signed session the same way the login handlers do.
func sessionCookie(email string, role domain.Role) *http.Cookie {
	rec := httptest.NewRecorder()
	writeUserSession(rec, &sessionUser{Email: email, Name: "Test", Role: role})
	return rec.Result().Cookies()[0]
}

func (e *testEnv) do(req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}
