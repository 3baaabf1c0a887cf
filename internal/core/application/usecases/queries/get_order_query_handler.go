package queries

import (
	"context"

	"ordertracking/internal/core/domain/model/order"
	"ordertracking/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler reads order snapshots straight from the database,
// bypassing the aggregate. Recipient and delivery code are never selected.
//
// Example:
//
//	handler := NewGetOrderQueryHandler(db)
//	query, _ := NewGetOrderQuery(42)
//	snapshot, err := handler.Handle(ctx, query)
type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns an ObjectNotFoundError when the order does not exist.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (order.Snapshot, error) {
	if err := query.Validate(); err != nil {
		return order.Snapshot{}, err
	}

	snapshots, err := selectSnapshots(ctx, h.db, `
		SELECT `+snapshotColumns+`
		FROM orders
		WHERE id = ?
	`, int64(query.OrderID()))
	if err != nil {
		return order.Snapshot{}, err
	}

	if len(snapshots) == 0 {
		return order.Snapshot{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}
	return snapshots[0], nil
}
