package commands_test

import (
	"context"
	"errors"
	"sync"

	"ordertracking/internal/core/application/usecases/commands"
	"ordertracking/internal/core/domain/model/order"
	"ordertracking/internal/core/ports"
	"ordertracking/internal/pkg/errs"
)

// memoryStore is a transactional in-memory order store. Each unit of work
// reads copies and publishes its writes on Commit only.
type memoryStore struct {
	mu     sync.Mutex
	orders map[order.ID]order.State
	nextID order.ID
}

func newMemoryStore(orders ...*order.Order) *memoryStore {
	s := &memoryStore{orders: make(map[order.ID]order.State), nextID: 100}
	for _, o := range orders {
		s.orders[o.ID()] = stateOf(o)
	}
	return s
}

func stateOf(o *order.Order) order.State {
	return order.State{
		ID:              o.ID(),
		RestaurantID:    o.RestaurantID(),
		Recipient:       o.Recipient(),
		Status:          o.Status(),
		DeliveryCode:    o.DeliveryCode(),
		Delivery:        o.Delivery(),
		Items:           o.Items(),
		TotalPriceCents: o.TotalPriceCents(),
		CreatedAt:       o.CreatedAt(),
	}
}

func (s *memoryStore) Create() commands.OrderUoW {
	return &memoryUoW{store: s}
}

func (s *memoryStore) status(id order.ID) order.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders[id].Status
}

type memoryUoW struct {
	store   *memoryStore
	active  bool
	pending map[order.ID]order.State
}

func (u *memoryUoW) Begin(context.Context) error {
	u.active = true
	u.pending = make(map[order.ID]order.State)
	return nil
}

func (u *memoryUoW) Commit(context.Context) error {
	if !u.active {
		return errors.New("no active transaction")
	}
	u.store.mu.Lock()
	for id, state := range u.pending {
		u.store.orders[id] = state
	}
	u.store.mu.Unlock()
	u.active = false
	return nil
}

func (u *memoryUoW) Rollback(context.Context) error {
	if !u.active {
		return errors.New("no active transaction")
	}
	u.active = false
	u.pending = nil
	return nil
}

func (u *memoryUoW) OrderRepository() ports.OrderRepository {
	return &memoryRepo{uow: u}
}

type memoryRepo struct {
	uow *memoryUoW
}

func (r *memoryRepo) NextID(context.Context) (order.ID, error) {
	s := r.uow.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	return s.nextID, nil
}

func (r *memoryRepo) Add(_ context.Context, o *order.Order) error {
	r.uow.pending[o.ID()] = stateOf(o)
	return nil
}

func (r *memoryRepo) Update(_ context.Context, o *order.Order) error {
	r.uow.pending[o.ID()] = stateOf(o)
	return nil
}

func (r *memoryRepo) Get(_ context.Context, id order.ID) (*order.Order, error) {
	s := r.uow.store
	s.mu.Lock()
	state, ok := s.orders[id]
	s.mu.Unlock()
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderID", int64(id))
	}
	return order.RestoreOrder(state)
}

func (r *memoryRepo) GetForUpdate(ctx context.Context, id order.ID) (*order.Order, error) {
	return r.Get(ctx, id)
}
