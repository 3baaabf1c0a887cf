package queries

import (
	"context"
	"strings"

	"ordertracking/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler lists order snapshots for the restaurant panel.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle returns the newest orders first (highest id first). The result is
// never nil.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]order.Snapshot, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var (
		where []string
		args  []any
	)
	if query.RestaurantID() != "" {
		where = append(where, "restaurant_id = ?")
		args = append(args, query.RestaurantID())
	}
	if query.ActiveOnly() {
		where = append(where, "status NOT IN (?, ?)")
		args = append(args, order.Completed.Code(), order.Cancelled.Code())
	}

	sql := "SELECT " + snapshotColumns + " FROM orders"
	if len(where) > 0 {
		sql += " WHERE " + strings.Join(where, " AND ")
	}
	sql += " ORDER BY id DESC LIMIT ?"
	args = append(args, query.Limit())

	return selectSnapshots(ctx, h.db, sql, args...)
}
