package board

import (
	"context"
	"sync"

	"github.com/appetiteclub/apt/events"
	"github.com/google/uuid"
)

// MockPublisher is a mock implementation of events.Publisher for testing
type MockPublisher struct {
	mu          sync.Mutex
	Published   [][]byte
	Topics      []string
	PublishFunc func(ctx context.Context, topic string, msg []byte) error
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, msg []byte) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, msg)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Published = append(m.Published, msg)
	m.Topics = append(m.Topics, topic)
	return nil
}

// MockSubscriber is a mock implementation of events.Subscriber for testing
type MockSubscriber struct {
	Handlers      map[string]events.HandlerFunc
	SubscribeFunc func(ctx context.Context, topic string, handler events.HandlerFunc) error
}

func NewMockSubscriber() *MockSubscriber {
	return &MockSubscriber{
		Handlers: make(map[string]events.HandlerFunc),
	}
}

func (m *MockSubscriber) Subscribe(ctx context.Context, topic string, handler events.HandlerFunc) error {
	if m.SubscribeFunc != nil {
		return m.SubscribeFunc(ctx, topic, handler)
	}
	m.Handlers[topic] = handler
	return nil
}

// Deliver simulates a broker delivery on a subscribed topic.
func (m *MockSubscriber) Deliver(ctx context.Context, topic string, msg []byte) error {
	handler, ok := m.Handlers[topic]
	if !ok {
		return nil
	}
	return handler(ctx, msg)
}

// MockLedgerRepo is a mock implementation of LedgerRepo for testing
type MockLedgerRepo struct {
	mu      sync.RWMutex
	orders  map[uuid.UUID]*Order
	Patches []PatchRef

	CreateFunc func(ctx context.Context, o *Order) error
	GetFunc    func(ctx context.Context, id uuid.UUID) (*Order, error)
	ListFunc   func(ctx context.Context) ([]*Order, error)
	PatchFunc  func(ctx context.Context, id uuid.UUID, fields Patch) error
	DeleteFunc func(ctx context.Context, id uuid.UUID) error
}

func NewMockLedgerRepo() *MockLedgerRepo {
	return &MockLedgerRepo{
		orders: make(map[uuid.UUID]*Order),
	}
}

func (m *MockLedgerRepo) Create(ctx context.Context, o *Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, o)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[o.ID] = o
	return nil
}

func (m *MockLedgerRepo) Get(ctx context.Context, id uuid.UUID) (*Order, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, nil
	}
	return o, nil
}

func (m *MockLedgerRepo) List(ctx context.Context) ([]*Order, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*Order
	for _, o := range m.orders {
		result = append(result, o)
	}
	return result, nil
}

func (m *MockLedgerRepo) ListByDate(ctx context.Context, businessDate string) ([]*Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*Order
	for _, o := range m.orders {
		if o.BusinessDate == businessDate {
			result = append(result, o)
		}
	}
	return result, nil
}

func (m *MockLedgerRepo) Patch(ctx context.Context, id uuid.UUID, fields Patch) error {
	if m.PatchFunc != nil {
		return m.PatchFunc(ctx, id, fields)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Patches = append(m.Patches, PatchRef{ID: id, Fields: fields})
	if o, ok := m.orders[id]; ok {
		applyPatchToOrder(o, fields)
	}
	return nil
}

func (m *MockLedgerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.orders, id)
	return nil
}

// applyPatchToOrder mirrors the store's $set merge for the fields the board
// actually patches.
func applyPatchToOrder(o *Order, fields Patch) {
	for k, v := range fields {
		switch k {
		case "status":
			o.Status = v.(string)
		case "cook":
			o.Cook = v.(string)
		case "courier":
			o.Courier = v.(string)
		case "items_text":
			o.ItemsText = v.(string)
		case "route":
			o.Route = v.(string)
		case "route_position":
			o.RoutePosition = v.(int)
		case "route_notes":
			o.RouteNotes = v.(string)
		case "just_created":
			o.JustCreated = v.(bool)
		}
	}
}

// MockCounterRepo is a mock implementation of CounterRepo for testing
type MockCounterRepo struct {
	mu               sync.Mutex
	counters         map[string]int
	NextSequenceFunc func(ctx context.Context, businessDate string) (int, error)
}

func NewMockCounterRepo() *MockCounterRepo {
	return &MockCounterRepo{
		counters: make(map[string]int),
	}
}

func (m *MockCounterRepo) NextSequence(ctx context.Context, businessDate string) (int, error) {
	if m.NextSequenceFunc != nil {
		return m.NextSequenceFunc(ctx, businessDate)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[businessDate]++
	return m.counters[businessDate], nil
}

// MockDirectoryRepo is a mock implementation of DirectoryRepo for testing
type MockDirectoryRepo struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]*Client
	order   []uuid.UUID

	CreateFunc func(ctx context.Context, c *Client) error
	GetFunc    func(ctx context.Context, id uuid.UUID) (*Client, error)
	ListFunc   func(ctx context.Context) ([]*Client, error)
}

func NewMockDirectoryRepo() *MockDirectoryRepo {
	return &MockDirectoryRepo{
		clients: make(map[uuid.UUID]*Client),
	}
}

func (m *MockDirectoryRepo) Create(ctx context.Context, c *Client) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clients[c.ID] = c
	m.order = append(m.order, c.ID)
	return nil
}

func (m *MockDirectoryRepo) CreateMany(ctx context.Context, clients []*Client) error {
	for _, c := range clients {
		if err := m.Create(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (m *MockDirectoryRepo) Get(ctx context.Context, id uuid.UUID) (*Client, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.clients[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}

func (m *MockDirectoryRepo) List(ctx context.Context) ([]*Client, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*Client, 0, len(m.order))
	for _, id := range m.order {
		result = append(result, m.clients[id])
	}
	return result, nil
}

func (m *MockDirectoryRepo) Save(ctx context.Context, c *Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clients[c.ID] = c
	return nil
}

// MockNotifier counts cue firings.
type MockNotifier struct {
	mu    sync.Mutex
	Calls int
	Err   error
}

func (m *MockNotifier) Notify(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = m.Calls + 1
	return m.Err
}

func (m *MockNotifier) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls
}
