package queries

import (
	"context"
	"time"

	"ordertracking/internal/core/domain/model/order"

	"gorm.io/gorm"
)

const snapshotColumns = `
	id,
	restaurant_id,
	status,
	delivery_type,
	scheduled_time,
	total_price_cents,
	created_at`

// selectSnapshots runs a query over snapshotColumns and attaches the items of
// every returned order with one extra query.
func selectSnapshots(ctx context.Context, db *gorm.DB, sql string, args ...any) ([]order.Snapshot, error) {
	rows, err := db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snapshots := make([]order.Snapshot, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		var (
			id               int64
			statusCode       string
			deliveryTypeCode string
			createdAt        time.Time
			snapshot         order.Snapshot
		)

		if err = rows.Scan(
			&id,
			&snapshot.RestaurantID,
			&statusCode,
			&deliveryTypeCode,
			&snapshot.ScheduledTime,
			&snapshot.TotalPriceCents,
			&createdAt,
		); err != nil {
			return nil, err
		}

		if snapshot.Status, err = order.ParseStatus(statusCode); err != nil {
			return nil, err
		}
		if snapshot.DeliveryType, err = order.ParseDeliveryType(deliveryTypeCode); err != nil {
			return nil, err
		}
		snapshot.ID = order.ID(id)
		snapshot.CreatedAt = createdAt.UTC()
		snapshot.Items = make([]order.ItemSnapshot, 0)

		snapshots = append(snapshots, snapshot)
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return snapshots, nil
	}

	items, err := selectItems(ctx, db, ids)
	if err != nil {
		return nil, err
	}
	for i := range snapshots {
		if lines, ok := items[snapshots[i].ID]; ok {
			snapshots[i].Items = lines
		}
	}

	return snapshots, nil
}

func selectItems(ctx context.Context, db *gorm.DB, orderIDs []int64) (map[order.ID][]order.ItemSnapshot, error) {
	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			product_id,
			quantity,
			unit_price_cents
		FROM order_items
		WHERE order_id IN ?
		ORDER BY order_id, id
	`, orderIDs).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[order.ID][]order.ItemSnapshot)
	for rows.Next() {
		var (
			orderID int64
			item    order.ItemSnapshot
		)
		if err = rows.Scan(&orderID, &item.ProductID, &item.Quantity, &item.UnitPriceCents); err != nil {
			return nil, err
		}
		item.SubtotalCents = int64(item.Quantity) * item.UnitPriceCents
		items[order.ID(orderID)] = append(items[order.ID(orderID)], item)
	}

	return items, rows.Err()
}
