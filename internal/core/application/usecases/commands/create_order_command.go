package commands

import (
	"errors"
	"fmt"
	"strings"

	"ordertracking/internal/core/domain/model/order"
	"ordertracking/internal/pkg/errs"
	"ordertracking/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrCartIsEmpty = errors.New("cart is empty")
)

// CartItem is one line of the customer's cart with the catalog price at
// checkout time.
type CartItem struct {
	ProductID      int64
	Quantity       int
	UnitPriceCents int64
}

// CreateOrderCommand represents a customer checking out a cart.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(
//	    "place-123",
//	    "ana@example.com",
//	    order.Express,
//	    "",
//	    []CartItem{{ProductID: 7, Quantity: 2, UnitPriceCents: 3990}},
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	snapshot, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	restaurantID string
	recipient    string
	delivery     order.Delivery
	items        []order.Item

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the delivery choice and every cart line.
// Returns all failures joined.
func NewCreateOrderCommand(
	restaurantID string,
	recipient string,
	deliveryType order.DeliveryType,
	scheduledTime string,
	cart []CartItem,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRestaurantID(restaurantID),
		cmd.setRecipient(recipient),
		cmd.setDelivery(deliveryType, scheduledTime),
		cmd.setItems(cart),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) RestaurantID() string {
	return c.restaurantID
}

// Recipient returns the customer e-mail; placeholder addresses are accepted.
func (c CreateOrderCommand) Recipient() string {
	return c.recipient
}

func (c CreateOrderCommand) Delivery() order.Delivery {
	return c.delivery
}

// Items returns a copy of the validated order lines.
func (c CreateOrderCommand) Items() []order.Item {
	return append([]order.Item(nil), c.items...)
}

func (c *CreateOrderCommand) setRestaurantID(restaurantID string) error {
	if restaurantID == "" {
		return errs.NewValueIsRequiredError("restaurant id")
	}
	c.restaurantID = restaurantID
	return nil
}

func (c *CreateOrderCommand) setRecipient(recipient string) error {
	if !strings.Contains(recipient, "@") {
		return errs.NewValueIsInvalidErrorWithCause("recipient", fmt.Errorf("%q is not an e-mail address", recipient))
	}
	c.recipient = recipient
	return nil
}

func (c *CreateOrderCommand) setDelivery(deliveryType order.DeliveryType, scheduledTime string) error {
	delivery, err := order.NewDelivery(deliveryType, scheduledTime)
	if err != nil {
		return err
	}
	c.delivery = delivery
	return nil
}

func (c *CreateOrderCommand) setItems(cart []CartItem) error {
	if len(cart) == 0 {
		return ErrCartIsEmpty
	}

	items := make([]order.Item, 0, len(cart))
	var itemErrs []error
	for i, line := range cart {
		item, err := order.NewItem(line.ProductID, line.Quantity, line.UnitPriceCents)
		if err != nil {
			itemErrs = append(itemErrs, fmt.Errorf("item %d: %w", i, err))
			continue
		}
		items = append(items, item)
	}
	if len(itemErrs) > 0 {
		return errors.Join(itemErrs...)
	}

	c.items = items
	return nil
}
