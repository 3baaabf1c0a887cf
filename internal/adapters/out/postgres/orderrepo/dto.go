// Package orderrepo maps the order aggregate onto the orders and order_items
// tables and implements ports.OrderRepository with GORM.
package orderrepo

import (
	"time"

	"ordertracking/internal/core/domain/model/order"
)

// OrderDTO is one row of the orders table. Status and delivery type are
// stored as their wire codes so the table reads the same as the API.
type OrderDTO struct {
	ID              int64 `gorm:"primaryKey;autoIncrement:false"`
	RestaurantID    string
	Recipient       string
	Status          string
	DeliveryType    string
	ScheduledTime   string
	DeliveryCode    string
	TotalPriceCents int64
	CreatedAt       time.Time
	Items           []OrderItemDTO `gorm:"foreignKey:OrderID"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one product line with its snapshotted unit price.
type OrderItemDTO struct {
	ID             int64 `gorm:"primaryKey"`
	OrderID        int64
	ProductID      int64
	Quantity       int
	UnitPriceCents int64
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, OrderItemDTO{
			OrderID:        int64(o.ID()),
			ProductID:      item.ProductID(),
			Quantity:       item.Quantity(),
			UnitPriceCents: item.UnitPriceCents(),
		})
	}

	return OrderDTO{
		ID:              int64(o.ID()),
		RestaurantID:    o.RestaurantID(),
		Recipient:       o.Recipient(),
		Status:          o.Status().Code(),
		DeliveryType:    o.Delivery().Type().String(),
		ScheduledTime:   o.Delivery().ScheduledTime(),
		DeliveryCode:    o.DeliveryCode().String(),
		TotalPriceCents: o.TotalPriceCents(),
		CreatedAt:       o.CreatedAt(),
		Items:           items,
	}
}

// toDomain rebuilds the aggregate with RestoreOrder; the stored total is kept as is.
func toDomain(dto OrderDTO) (*order.Order, error) {
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	deliveryType, err := order.ParseDeliveryType(dto.DeliveryType)
	if err != nil {
		return nil, err
	}

	delivery, err := order.NewDelivery(deliveryType, dto.ScheduledTime)
	if err != nil {
		return nil, err
	}

	code, err := order.ParseDeliveryCode(dto.DeliveryCode)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := order.NewItem(itemDTO.ProductID, itemDTO.Quantity, itemDTO.UnitPriceCents)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(order.State{
		ID:              order.ID(dto.ID),
		RestaurantID:    dto.RestaurantID,
		Recipient:       dto.Recipient,
		Status:          status,
		DeliveryCode:    code,
		Delivery:        delivery,
		Items:           items,
		TotalPriceCents: dto.TotalPriceCents,
		CreatedAt:       dto.CreatedAt,
	})
}
