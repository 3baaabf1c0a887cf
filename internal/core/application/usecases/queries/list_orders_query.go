package queries

import (
	"errors"

	"ordertracking/internal/pkg/guard"
)

const (
	DefaultListOrdersLimit = 50
	MaxListOrdersLimit     = 500
)

var ErrListOrdersQueryIsNotConstructed = errors.New("ListOrdersQuery must be created via NewListOrdersQuery constructor")

// ListOrdersQuery feeds the restaurant panel: orders newest first, optionally
// narrowed to one restaurant and to orders that are not yet terminal.
//
// Example:
//
//	query := NewListOrdersQuery("place-123", true, 0)
//	snapshots, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	restaurantID string
	activeOnly   bool
	limit        int

	guard guard.ConstructorGuard
}

// NewListOrdersQuery clamps limit into [1, MaxListOrdersLimit]; zero or a
// negative value selects DefaultListOrdersLimit. An empty restaurantID lists
// every restaurant.
func NewListOrdersQuery(restaurantID string, activeOnly bool, limit int) ListOrdersQuery {
	switch {
	case limit <= 0:
		limit = DefaultListOrdersLimit
	case limit > MaxListOrdersLimit:
		limit = MaxListOrdersLimit
	}

	return ListOrdersQuery{
		restaurantID: restaurantID,
		activeOnly:   activeOnly,
		limit:        limit,
		guard:        guard.NewConstructorGuard(),
	}
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) RestaurantID() string {
	return q.restaurantID
}

func (q ListOrdersQuery) ActiveOnly() bool {
	return q.activeOnly
}

func (q ListOrdersQuery) Limit() int {
	return q.limit
}
