package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/phrazzld/shop-api/internal/domain"
	"github.com/phrazzld/shop-api/internal/events"
	"github.com/phrazzld/shop-api/internal/store"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memProductStore is an in-memory store.ProductStore.
type memProductStore struct {
	mu       sync.Mutex
	products map[domain.ProductID]*domain.Product

	// adjustErr, when set, is returned by AdjustOrderCount for that product.
	adjustErr map[domain.ProductID]error
}

func newMemProductStore() *memProductStore {
	return &memProductStore{
		products:  make(map[domain.ProductID]*domain.Product),
		adjustErr: make(map[domain.ProductID]error),
	}
}

func (m *memProductStore) seed(name string, price float64) *domain.Product {
	p, err := domain.NewProduct(name, "", price, "general", 0)
	if err != nil {
		panic(err)
	}
	if err := m.Create(context.Background(), p); err != nil {
		panic(err)
	}
	return p
}

func (m *memProductStore) count(id domain.ProductID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.products[id].TotalOrdersCount
}

func (m *memProductStore) Create(ctx context.Context, p *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.products {
		if existing.Name == p.Name {
			return store.ErrProductNameExists
		}
	}
	p.ID = domain.ProductIDFromObjectID(primitive.NewObjectID())
	cp := *p
	m.products[p.ID] = &cp
	return nil
}

func (m *memProductStore) List(ctx context.Context, category string) ([]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Product, 0)
	for _, p := range m.products {
		if category == "" || p.Category == category {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memProductStore) GetByID(ctx context.Context, id domain.ProductID) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, store.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memProductStore) Update(ctx context.Context, id domain.ProductID, patch domain.ProductPatch) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, store.ErrProductNotFound
	}
	if patch.Name != nil {
		for otherID, other := range m.products {
			if otherID != id && other.Name == *patch.Name {
				return nil, store.ErrProductNameExists
			}
		}
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	p.UpdatedAt = time.Now().UTC()
	cp := *p
	return &cp, nil
}

func (m *memProductStore) Delete(ctx context.Context, id domain.ProductID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return store.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *memProductStore) AdjustOrderCount(ctx context.Context, id domain.ProductID, delta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.adjustErr[id]; err != nil {
		return err
	}
	p, ok := m.products[id]
	if !ok {
		return store.ErrProductNotFound
	}
	p.TotalOrdersCount += delta
	return nil
}

// memOrderStore is an in-memory store.OrderStore.
type memOrderStore struct {
	mu        sync.Mutex
	nextID    int64
	orders    map[int64]*domain.Order
	createErr error
	updateErr error

	// afterCreate, when set, runs once a row has been stored.
	afterCreate func()
}

func newMemOrderStore() *memOrderStore {
	return &memOrderStore{orders: make(map[int64]*domain.Order)}
}

func (m *memOrderStore) Create(ctx context.Context, o *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	o.ID = m.nextID
	o.OrderDate = time.Now().UTC()
	cp := *o
	m.orders[o.ID] = &cp
	if m.afterCreate != nil {
		m.afterCreate()
	}
	return nil
}

func (m *memOrderStore) List(ctx context.Context, productID *domain.ProductID) ([]*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Order, 0)
	for _, o := range m.orders {
		if productID == nil || o.ProductID == *productID {
			cp := *o
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memOrderStore) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, store.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *memOrderStore) Update(ctx context.Context, o *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.orders[o.ID]; !ok {
		return store.ErrOrderNotFound
	}
	cp := *o
	m.orders[o.ID] = &cp
	return nil
}

func (m *memOrderStore) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[id]; !ok {
		return store.ErrOrderNotFound
	}
	delete(m.orders, id)
	return nil
}

// MockEventEmitter mocks events.EventEmitter.
type MockEventEmitter struct {
	mock.Mock
}

func (m *MockEventEmitter) EmitEvent(ctx context.Context, event *events.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockTaskStore mocks store.TaskStore.
type MockTaskStore struct {
	mock.Mock
}

func (m *MockTaskStore) Create(ctx context.Context, t *domain.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Task), args.Error(1)
}

func (m *MockTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskStore) Update(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTodoStore mocks store.TodoStore.
type MockTodoStore struct {
	mock.Mock
}

func (m *MockTodoStore) Create(ctx context.Context, t *domain.Todo) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTodoStore) List(ctx context.Context, completed *bool) ([]*domain.Todo, error) {
	args := m.Called(ctx, completed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Todo), args.Error(1)
}

func (m *MockTodoStore) GetByID(ctx context.Context, id int64) (*domain.Todo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Todo), args.Error(1)
}

func (m *MockTodoStore) Update(ctx context.Context, id int64, patch domain.TodoPatch) (*domain.Todo, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Todo), args.Error(1)
}

func (m *MockTodoStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
