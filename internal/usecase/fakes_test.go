package usecase

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/cfarhan/shopping/internal/entity"
)

// In-memory ports for the server-side use case tests.

type memCartRepo struct {
	mu    sync.Mutex
	items map[string][]domain.CartItem
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{items: map[string][]domain.CartItem{}}
}

func (r *memCartRepo) Get(ctx context.Context, userID string) ([]domain.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.CartItem(nil), r.items[userID]...), nil
}

func (r *memCartRepo) Save(ctx context.Context, userID string, items []domain.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[userID] = append([]domain.CartItem(nil), items...)
	return nil
}

func (r *memCartRepo) Clear(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, userID)
	return nil
}

type memProductRepo struct {
	products map[string]domain.Product
}

func (r *memProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

type memOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*OrderRecord
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: map[string]*OrderRecord{}}
}

func (r *memOrderRepo) Create(ctx context.Context, o *OrderRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *memOrderRepo) GetByID(ctx context.Context, id string) (*OrderRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *memOrderRepo) GetByIntentID(ctx context.Context, intentID string) (*OrderRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.IntentID == intentID {
			cp := *o
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memOrderRepo) UpdateStatusIf(ctx context.Context, id, fromStatus, toStatus string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.Status != fromStatus {
		return false, nil
	}
	o.Status = toStatus
	return true, nil
}

type memIdemStore struct {
	mu     sync.Mutex
	locks  map[string]bool
	values map[string]string
}

func newMemIdemStore() *memIdemStore {
	return &memIdemStore{locks: map[string]bool{}, values: map[string]string{}}
}

func (s *memIdemStore) TryLock(ctx context.Context, scope, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := scope + ":" + key
	if s.locks[k] {
		return false, nil
	}
	s.locks[k] = true
	return true, nil
}

func (s *memIdemStore) Unlock(ctx context.Context, scope, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locks, scope+":"+key)
	return nil
}

func (s *memIdemStore) Remember(ctx context.Context, scope, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[scope+":"+key] = value
	return nil
}

func (s *memIdemStore) Recall(ctx context.Context, scope, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[scope+":"+key]
	return v, ok, nil
}

type memEvents struct {
	mu   sync.Mutex
	msgs []SettledMsg
	err  error
}

func (e *memEvents) PublishSettled(ctx context.Context, msg SettledMsg) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return e.err
	}
	e.msgs = append(e.msgs, msg)
	return nil
}

type seqIssuer struct {
	n int
}

func (i *seqIssuer) CreateIntent(ctx context.Context, amount domain.Money, orderID string) (domain.PaymentIntent, error) {
	i.n++
	return domain.PaymentIntent{
		ClientSecret: fmt.Sprintf("pi_%d_secret_t%d", i.n, i.n),
		Status:       domain.IntentCreated,
	}, nil
}
